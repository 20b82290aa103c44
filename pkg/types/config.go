package types

import (
	"errors"
	"strings"
)

// Config holds the settings resolved at the command boundary and handed to
// the bootstrap procedure.
type Config struct {
	DBPath      string `json:"db_path" yaml:"db_path"`
	Snapshot    string `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	FixturesDir string `json:"fixtures_dir,omitempty" yaml:"fixtures_dir,omitempty"`
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Default settings.
const (
	DefaultDBPath   = "workshop.db"
	DefaultLogLevel = "info"
)

// Config validation errors.
var (
	ErrDBPathEmpty      = errors.New("database path must not be empty")
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrSnapshotIDFormat = errors.New("snapshot id must look like <era>/<name>")
)

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. An empty Snapshot means
// the latest snapshot and an empty LogLevel means DefaultLogLevel.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return ErrDBPathEmpty
	}
	if c.LogLevel != "" && !knownLogLevels[strings.ToLower(c.LogLevel)] {
		return ErrLogLevelUnknown
	}
	if c.Snapshot != "" {
		era, name, ok := strings.Cut(c.Snapshot, "/")
		if !ok || era == "" || name == "" || strings.Contains(name, "/") {
			return ErrSnapshotIDFormat
		}
	}
	return nil
}
