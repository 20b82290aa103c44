package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/driftlab/internal/sqlite"
	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// testEnv isolates a CLI run in a temporary directory.
type testEnv struct {
	dir       string
	configDir string
	dbPath    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	for _, k := range []string{"DRIFTLAB_CONFIG_DIR", "DRIFTLAB_DB_PATH", "DRIFTLAB_FIXTURES_DIR", "DRIFTLAB_SNAPSHOT", "DRIFTLAB_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	return &testEnv{
		dir:       dir,
		configDir: filepath.Join(dir, ".driftlab"),
		dbPath:    filepath.Join(dir, "workshop.db"),
	}
}

// run executes the CLI and returns exit code, stdout and stderr.
func (e *testEnv) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	full := append([]string{"--config-dir", e.configDir, "--db", e.dbPath, "--no-color"}, args...)
	code := Run(full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestBootstrapCommand(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, stderr := env.run("bootstrap", "0_spring_2011/0")
	require.Equal(t, exitSuccess, code, stderr)
	assert.Contains(t, stdout, "created")
	assert.Contains(t, stdout, "0_spring_2011/0")

	cols, err := sqlite.Inspect(env.dbPath, types.DefaultTable)
	require.NoError(t, err)
	assert.Len(t, cols, 17)

	code, stdout, _ = env.run("bootstrap", "0_spring_2011/0")
	assert.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "nothing to do")
}

func TestBootstrapCommandDefaultsToLatest(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, stderr := env.run("--json", "bootstrap")
	require.Equal(t, exitSuccess, code, stderr)

	var res types.BootstrapResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, types.OutcomeCreated, res.Outcome)
	assert.Equal(t, "3_winter_2012/0", res.Snapshot)
	assert.Equal(t, env.dbPath, res.Path)
}

func TestBootstrapCommandUsesConfiguredSnapshot(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(env.configDir, "config.yaml"),
		[]byte("snapshot: 2_autumn_2011/0\n"),
		0o644,
	))

	code, stdout, stderr := env.run("--json", "bootstrap")
	require.Equal(t, exitSuccess, code, stderr)

	var res types.BootstrapResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "2_autumn_2011/0", res.Snapshot)
}

func TestBootstrapCommandUnknownSnapshot(t *testing.T) {
	env := newTestEnv(t)

	code, _, stderr := env.run("bootstrap", "9_nonexistent/0")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "not found")

	_, err := os.Stat(env.dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestBootstrapCommandUnwritablePath(t *testing.T) {
	env := newTestEnv(t)
	env.dbPath = filepath.Join(env.dir, "missing", "workshop.db")

	code, _, stderr := env.run("bootstrap")
	assert.Equal(t, exitSysError, code)
	assert.Contains(t, stderr, "i/o failure")
}

func TestBootstrapCommandFixturesDir(t *testing.T) {
	env := newTestEnv(t)
	fixtures := filepath.Join(env.dir, "data")
	require.NoError(t, os.MkdirAll(filepath.Join(fixtures, "0_local"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(fixtures, "0_local", "0.yaml"),
		[]byte("table: bike_rental\ncolumns:\n  - {name: hum, type: doubel}\n"),
		0o644,
	))

	code, _, stderr := env.run("--fixtures-dir", fixtures, "bootstrap")
	assert.Equal(t, exitSysError, code)
	assert.Contains(t, stderr, "invalid schema")
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, _ := env.run("list")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "1_summer_2011")
	assert.Contains(t, stdout, "3_winter_2012/0 (latest)")
}

func TestShowCommand(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, _ := env.run("--json", "show", "1_summer_2011/0")
	require.Equal(t, exitSuccess, code)

	var out struct {
		ID      string         `json:"id"`
		Columns []types.Column `json:"columns"`
		DDL     string         `json:"ddl"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "1_summer_2011/0", out.ID)
	assert.Len(t, out.Columns, 17)
	assert.Contains(t, out.DDL, `"humidity" TEXT`)

	code, _, _ = env.run("show", "9_nonexistent")
	assert.Equal(t, exitUserError, code)
}

func TestInspectAndStatusCommands(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, _ := env.run("--json", "status")
	require.Equal(t, exitSuccess, code)
	var status statusOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.Equal(t, stateAbsent, status.State)
	assert.Equal(t, 5, status.Snapshots)

	code, _, _ = env.run("inspect")
	assert.Equal(t, exitUserError, code)

	code, _, _ = env.run("bootstrap", "2_autumn_2011/0")
	require.Equal(t, exitSuccess, code)

	code, stdout, _ = env.run("--json", "status")
	require.Equal(t, exitSuccess, code)
	require.NoError(t, json.Unmarshal([]byte(stdout), &status))
	assert.Equal(t, statePresent, status.State)
	assert.Equal(t, []string{types.DefaultTable}, status.Tables)
	assert.Equal(t, []string{"2_autumn_2011/0"}, status.Matches)

	code, stdout, _ = env.run("--json", "inspect")
	require.Equal(t, exitSuccess, code)
	var inspect inspectOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &inspect))
	assert.Equal(t, []string{"2_autumn_2011/0"}, inspect.Matches)
	assert.Equal(t, "yr", inspect.Columns[3].Name)
}

func TestDiffCommand(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, _ := env.run("diff", "0_spring_2011/0", "2_autumn_2011/0")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "removed  year integer")
	assert.Contains(t, stdout, "added    yr integer")
	assert.Contains(t, stdout, "retyped  weekday text -> integer")

	code, stdout, _ = env.run("diff", "0_spring_2011/0", "0_spring_2011/0")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "no drift")

	code, _, _ = env.run("diff", "0_spring_2011/0")
	assert.Equal(t, exitUserError, code)
}

func TestConfigCommands(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, _ := env.run("config", "init")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "wrote")
	assert.FileExists(t, filepath.Join(env.configDir, "config.yaml"))

	code, stdout, _ = env.run("config", "init")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "already present")

	code, stdout, _ = env.run("--json", "config")
	require.Equal(t, exitSuccess, code)
	var cfg types.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, env.dbPath, cfg.DBPath)
	assert.Equal(t, types.DefaultLogLevel, cfg.LogLevel)
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)

	code, _, stderr := env.run("--log-level", "loud", "list")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "unknown log level")
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	code, stdout, _ := env.run("version")
	require.Equal(t, exitSuccess, code)
	assert.Contains(t, stdout, "driftlab v"+Version)
}
