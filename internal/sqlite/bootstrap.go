package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// SnapshotSource resolves snapshot ids. An empty id means the latest snapshot.
type SnapshotSource interface {
	Resolve(id string) (types.Snapshot, error)
}

// Bootstrapper creates a database file from a snapshot if, and only if, no
// file exists at the destination yet.
//
// Bootstrap is not safe for concurrent use against the same destination:
// two runs racing on an absent path both build a file and the last rename
// wins.
type Bootstrapper struct {
	logger *slog.Logger
}

// NewBootstrapper returns a Bootstrapper that logs to logger. A nil logger
// discards log output.
func NewBootstrapper(logger *slog.Logger) *Bootstrapper {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bootstrapper{logger: logger}
}

// Bootstrap is shorthand for NewBootstrapper(nil).Bootstrap.
func Bootstrap(path string, snap types.Snapshot) (types.BootstrapResult, error) {
	return NewBootstrapper(nil).Bootstrap(path, snap)
}

// BootstrapID resolves id through src and bootstraps the result. An
// unknown id fails before the filesystem is touched.
func (b *Bootstrapper) BootstrapID(src SnapshotSource, id, path string) (types.BootstrapResult, error) {
	snap, err := src.Resolve(id)
	if err != nil {
		return types.BootstrapResult{Path: path, Snapshot: id}, err
	}
	return b.Bootstrap(path, snap)
}

// Bootstrap ensures a database exists at path. If any file already exists
// there it is left untouched and the result is OutcomeNoOp. Otherwise the
// snapshot's table is built in a temporary file next to path, checked
// against the snapshot and renamed into place. On failure no file is left
// at path.
//
// Errors wrap types.ErrSchema for an invalid snapshot or a rejected CREATE
// TABLE, and types.ErrIO for filesystem failures.
func (b *Bootstrapper) Bootstrap(path string, snap types.Snapshot) (types.BootstrapResult, error) {
	result := types.BootstrapResult{
		Path:     path,
		Snapshot: snap.ID,
		RunID:    newRunID(),
	}
	log := b.logger.With("run_id", result.RunID, "path", path, "snapshot", snap.ID)

	if err := snap.Validate(); err != nil {
		return result, err
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return result, fmt.Errorf("%w: %s is a directory", types.ErrIO, path)
	case err == nil:
		log.Info("database already present, nothing to do")
		result.Outcome = types.OutcomeNoOp
		return result, nil
	case !errors.Is(err, fs.ErrNotExist):
		return result, fmt.Errorf("%w: stat %s: %v", types.ErrIO, path, err)
	}

	tmp := filepath.Join(filepath.Dir(path), ".driftlab-"+result.RunID+".db.tmp")
	log.Debug("building database", "tmp", tmp, "columns", len(snap.Columns))

	if err := materialize(tmp, snap); err != nil {
		removeArtifacts(tmp)
		return result, err
	}
	if err := os.Rename(tmp, path); err != nil {
		removeArtifacts(tmp)
		return result, fmt.Errorf("%w: rename into place: %v", types.ErrIO, err)
	}

	log.Info("database created", "table", snap.Table, "columns", len(snap.Columns))
	result.Outcome = types.OutcomeCreated
	return result, nil
}

// materialize creates a fresh database file at path holding the snapshot's
// table and verifies the realized columns.
func materialize(path string, snap types.Snapshot) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", types.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", types.ErrIO, path, err)
	}

	db, err := openDB(path)
	if err != nil {
		return err
	}

	if _, err := db.Exec(CreateTableSQL(snap)); err != nil {
		db.Close()
		return fmt.Errorf("%w: create table %s: %v", types.ErrSchema, snap.Table, err)
	}

	cols, err := tableColumns(db, snap.Table)
	if err != nil {
		db.Close()
		return err
	}
	if !snap.SameColumns(cols) {
		db.Close()
		return fmt.Errorf("%w: realized table %s does not match snapshot %s", types.ErrSchema, snap.Table, snap.ID)
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("%w: close database: %v", types.ErrIO, err)
	}
	return nil
}

// openDB opens a SQLite database with a single connection.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", types.ErrIO, path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: open %s: %v", types.ErrIO, path, err)
	}
	return db, nil
}

// removeArtifacts deletes a temporary database and its journal.
func removeArtifacts(path string) {
	_ = os.Remove(path)
	_ = os.Remove(path + "-journal")
}

// newRunID generates a UUID v7 identifying one bootstrap run.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
