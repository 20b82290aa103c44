package types

import "fmt"

// DefaultTable is the table every workshop snapshot defines.
const DefaultTable = "bike_rental"

// Snapshot is one version of the bike_rental table. Column order is the
// physical order of the created table. Snapshots are not required to be
// compatible with each other.
type Snapshot struct {
	ID          string   `json:"id" yaml:"-"`
	Table       string   `json:"table" yaml:"table"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Columns     []Column `json:"columns" yaml:"columns"`
}

// Validate checks the invariants of a single snapshot: a valid table name,
// at least one column, valid columns and unique column names. It says
// nothing about other snapshots.
func (s Snapshot) Validate() error {
	if !ValidIdentifier(s.Table) {
		return fmt.Errorf("%w: snapshot %s: invalid table name %q", ErrSchema, s.ID, s.Table)
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("%w: snapshot %s: no columns", ErrSchema, s.ID)
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("snapshot %s: %w", s.ID, err)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: snapshot %s: duplicate column %q", ErrSchema, s.ID, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// Column returns the column with the given name.
func (s Snapshot) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declared order.
func (s Snapshot) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// SameColumns reports whether cols matches the snapshot's columns by
// name, order and type.
func (s Snapshot) SameColumns(cols []Column) bool {
	if len(cols) != len(s.Columns) {
		return false
	}
	for i := range cols {
		if cols[i] != s.Columns[i] {
			return false
		}
	}
	return true
}
