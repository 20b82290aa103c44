// Package cli implements the driftlab command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/driftlab/internal/fixtures"
	"github.com/mesh-intelligence/driftlab/internal/logging"
	"github.com/mesh-intelligence/driftlab/internal/paths"
	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir   string
	dbPath      string
	fixturesDir string
	logLevel    string
	verbose     bool
	jsonMode    bool
	noColor     bool
}

// app carries the state resolved once in PersistentPreRunE. Defaults are
// applied here and nowhere below.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *slog.Logger
}

// NewRootCmd creates the top-level "driftlab" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "driftlab",
		Short: "Schema drift fixtures and database bootstrap for the bike rental workshop",
		Long: "driftlab holds the bike_rental schema snapshots used in the data quality\n" +
			"workshop and materializes one of them into a local SQLite database.",
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.driftlab)")
	pf.StringVar(&a.flags.dbPath, "db", "", "database file (default: $(CWD)/workshop.db)")
	pf.StringVar(&a.flags.fixturesDir, "fixtures-dir", "", "load snapshots from this directory instead of the built-in set")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (default: info)")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "shorthand for --log-level=debug")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(a.newBootstrapCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newShowCmd())
	root.AddCommand(a.newInspectCmd())
	root.AddCommand(a.newStatusCmd())
	root.AddCommand(a.newDiffCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command against the process arguments and exits
// with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "driftlab:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// exitCode maps an error to a process exit code. Filesystem and schema
// failures are system errors; everything else, including unknown
// snapshots and bad arguments, is a user error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrIO), errors.Is(err, types.ErrSchema):
		return exitSysError
	default:
		return exitUserError
	}
}

// setup resolves configuration, builds the logger and applies output flags.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	// Skip setup for the version command.
	if cmd.Name() == "version" {
		return nil
	}
	if a.flags.noColor || a.flags.jsonMode {
		color.NoColor = true
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	dbPath, err := paths.ResolveDBPath(a.flags.dbPath, v.GetString(cfgKeyDBPath))
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	fixturesDir, err := paths.ResolveFixturesDir(a.flags.fixturesDir, v.GetString(cfgKeyFixturesDir))
	if err != nil {
		return fmt.Errorf("resolve fixtures dir: %w", err)
	}

	level := v.GetString(cfgKeyLogLevel)
	if a.flags.logLevel != "" {
		level = a.flags.logLevel
	}
	if a.flags.verbose {
		level = "debug"
	}

	a.cfg = types.Config{
		DBPath:      dbPath,
		Snapshot:    v.GetString(cfgKeySnapshot),
		FixturesDir: fixturesDir,
		LogLevel:    level,
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), level)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration resolved",
		"config_dir", configDir,
		"db_path", a.cfg.DBPath,
		"fixtures_dir", a.cfg.FixturesDir,
		"snapshot", a.cfg.Snapshot,
	)
	return nil
}

// catalog loads the embedded fixtures or the configured fixtures directory.
func (a *app) catalog() (*fixtures.Catalog, error) {
	if a.cfg.FixturesDir == "" {
		return fixtures.Default()
	}
	a.logger.Debug("loading fixtures from disk", "dir", a.cfg.FixturesDir)
	return fixtures.LoadDir(a.cfg.FixturesDir)
}
