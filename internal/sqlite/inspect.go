package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// Inspect returns the realized columns of table in the database at path,
// in physical order. A missing file or table returns ErrNotFound.
func Inspect(path, table string) ([]types.Column, error) {
	db, err := openExisting(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return tableColumns(db, table)
}

// Tables lists the user tables in the database at path, sorted by name.
func Tables(path string) ([]string, error) {
	db, err := openExisting(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%w: listing tables: %v", types.ErrIO, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: scanning table name: %v", types.ErrIO, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing tables: %v", types.ErrIO, err)
	}
	return names, nil
}

// openExisting opens the database at path without creating it.
func openExisting(path string) (*sql.DB, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: database %s", types.ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", types.ErrIO, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", types.ErrIO, path)
	}
	return openDB(path)
}

// tableColumns reads column names and declared types from PRAGMA table_info.
func tableColumns(db *sql.DB, table string) ([]types.Column, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading table %s: %v", types.ErrIO, table, err)
	}
	defer rows.Close()

	var cols []types.Column
	for rows.Next() {
		var (
			cid       int
			name      string
			declType  string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("%w: scanning column of %s: %v", types.ErrIO, table, err)
		}
		t, err := types.ParseColumnType(declType)
		if err != nil {
			return nil, fmt.Errorf("table %s column %s: %w", table, name, err)
		}
		cols = append(cols, types.Column{Name: name, Type: t})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading table %s: %v", types.ErrIO, table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %s", types.ErrNotFound, table)
	}
	return cols, nil
}
