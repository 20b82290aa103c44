package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/driftlab/internal/sqlite"
	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// TestMain builds the driftlab binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "driftlab-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	driftlabBin = filepath.Join(tmpDir, "driftlab")

	cmd := exec.Command("go", "build", "-o", driftlabBin, "./cmd/driftlab")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestBootstrapFreshPath(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("--json", "bootstrap", "0_spring_2011/0")
	res := ParseJSON[types.BootstrapResult](t, result.Stdout)
	assert.Equal(t, types.OutcomeCreated, res.Outcome)

	cols, err := sqlite.Inspect(env.DBPath, types.DefaultTable)
	require.NoError(t, err)
	require.Len(t, cols, 17)
	assert.Equal(t, "felt_temp", cols[11].Name)
	assert.Equal(t, types.ColumnDouble, cols[11].Type)

	tables, err := sqlite.Tables(env.DBPath)
	require.NoError(t, err)
	assert.Equal(t, []string{types.DefaultTable}, tables)
}

func TestBootstrapTwiceIsNoOp(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("bootstrap")
	before, err := os.ReadFile(env.DBPath)
	require.NoError(t, err)

	result := env.MustRun("--json", "bootstrap")
	res := ParseJSON[types.BootstrapResult](t, result.Stdout)
	assert.Equal(t, types.OutcomeNoOp, res.Outcome)

	after, err := os.ReadFile(env.DBPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestBootstrapUnknownSnapshotExitsNonZero(t *testing.T) {
	env := NewTestEnv(t)

	result := env.Run("bootstrap", "9_nonexistent")
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "not found")

	_, err := os.Stat(env.DBPath)
	assert.True(t, os.IsNotExist(err))
}

func TestBootstrapWritesOnlyTheDatabase(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("bootstrap")

	entries, err := os.ReadDir(env.TempDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"workshop.db"}, names)
}

func TestStatusAfterBootstrap(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("bootstrap", "1_summer_2011/1")
	result := env.MustRun("status")
	assert.Contains(t, result.Stdout, "present")
	assert.Contains(t, result.Stdout, "1_summer_2011/1")
}
