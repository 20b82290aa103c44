// Package paths resolves the configuration directory, database path and
// fixtures directory. Defaults are relative to the working directory, since
// the workshop database lives next to the notebook.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative defaults.
const (
	DefaultConfigDirName = ".driftlab"
	DefaultDBFileName    = "workshop.db"
)

// Environment variable names for overrides.
const (
	EnvConfigDir   = "DRIFTLAB_CONFIG_DIR"
	EnvDBPath      = "DRIFTLAB_DB_PATH"
	EnvFixturesDir = "DRIFTLAB_FIXTURES_DIR"
)

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > DRIFTLAB_CONFIG_DIR env > $(CWD)/.driftlab.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return cwdJoin(DefaultConfigDirName)
}

// ResolveDBPath returns the database file path following the precedence
// chain: flag > configYAMLValue > DRIFTLAB_DB_PATH env > $(CWD)/workshop.db.
func ResolveDBPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	return cwdJoin(DefaultDBFileName)
}

// ResolveFixturesDir returns the fixtures directory following the
// precedence chain: flag > configYAMLValue > DRIFTLAB_FIXTURES_DIR env.
// An empty result means the embedded fixtures.
func ResolveFixturesDir(flag, configYAMLValue string) (string, error) {
	for _, v := range []string{flag, configYAMLValue, os.Getenv(EnvFixturesDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	return "", nil
}

func cwdJoin(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, name), nil
}
