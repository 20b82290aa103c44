package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/driftlab/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDBPath      = "db_path"
	cfgKeySnapshot    = "snapshot"
	cfgKeyFixturesDir = "fixtures_dir"
	cfgKeyLogLevel    = "log_level"
)

// loadConfig reads config.yaml from configDir using Viper. A missing
// directory or file is not an error. snapshot and log_level may also be set
// through DRIFTLAB_SNAPSHOT and DRIFTLAB_LOG_LEVEL, which win over the file;
// db_path and fixtures_dir env overrides are resolved by package paths.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.BindEnv(cfgKeySnapshot, "DRIFTLAB_SNAPSHOT"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.BindEnv(cfgKeyLogLevel, "DRIFTLAB_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml holding cfg if the file does not
// exist. If it already exists, the function returns false (idempotent).
func writeConfigIfMissing(path string, cfg types.Config) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	header := []byte("# driftlab configuration\n# db_path and fixtures_dir are overridden by --db and --fixtures-dir.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), a.cfg)
			}
			data, err := yaml.Marshal(&a.cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# config dir: %s\n%s", a.configDir, data)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.configDir, 0o755); err != nil {
				return fmt.Errorf("%w: create config directory: %v", types.ErrIO, err)
			}

			path := filepath.Join(a.configDir, configFileExt)
			cfg := types.Config{
				DBPath:   types.DefaultDBPath,
				LogLevel: types.DefaultLogLevel,
			}
			created, err := writeConfigIfMissing(path, cfg)
			if err != nil {
				return fmt.Errorf("%w: write config: %v", types.ErrIO, err)
			}

			if created {
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "config already present:", path)
			}
			return nil
		},
	})
	return cmd
}
