// Package drift compares two schema snapshots and reports how the columns
// moved between them. It reports raw differences only: a rename shows up
// as one removed and one added column, and columns with the same meaning
// under different names are never merged.
package drift

import "github.com/mesh-intelligence/driftlab/pkg/types"

// Kind classifies a single change.
type Kind string

// Change kinds.
const (
	Added   Kind = "added"
	Removed Kind = "removed"
	Retyped Kind = "retyped"
	Moved   Kind = "moved"
)

// Change is one difference between two snapshots. From and To hold the
// type (for retyped) or position (for moved) before and after.
type Change struct {
	Kind     Kind             `json:"kind"`
	Column   string           `json:"column"`
	Type     types.ColumnType `json:"type,omitempty"`
	FromType types.ColumnType `json:"from_type,omitempty"`
	ToType   types.ColumnType `json:"to_type,omitempty"`
	FromPos  int              `json:"from_pos,omitempty"`
	ToPos    int              `json:"to_pos,omitempty"`
}

// Report lists every change from one snapshot to another.
type Report struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	TableRenamed bool     `json:"table_renamed,omitempty"`
	Changes      []Change `json:"changes"`
}

// Empty reports whether the two snapshots are structurally identical.
func (r Report) Empty() bool {
	return !r.TableRenamed && len(r.Changes) == 0
}

// Count returns the number of changes of the given kind.
func (r Report) Count(k Kind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Compare reports the changes needed to turn from into to. Changes are
// listed removed first (in from order), then added, retyped and moved (in
// to order). Positions are 1-based. A column counts as moved when its
// position among the columns both snapshots share changes.
func Compare(from, to types.Snapshot) Report {
	r := Report{
		From:         from.ID,
		To:           to.ID,
		TableRenamed: from.Table != to.Table,
		Changes:      []Change{},
	}

	fromIdx := index(from.Columns)
	toIdx := index(to.Columns)

	for _, c := range from.Columns {
		if _, ok := toIdx[c.Name]; !ok {
			r.Changes = append(r.Changes, Change{Kind: Removed, Column: c.Name, Type: c.Type})
		}
	}
	for _, c := range to.Columns {
		if _, ok := fromIdx[c.Name]; !ok {
			r.Changes = append(r.Changes, Change{Kind: Added, Column: c.Name, Type: c.Type})
		}
	}
	for _, c := range to.Columns {
		i, ok := fromIdx[c.Name]
		if !ok {
			continue
		}
		if old := from.Columns[i]; old.Type != c.Type {
			r.Changes = append(r.Changes, Change{Kind: Retyped, Column: c.Name, FromType: old.Type, ToType: c.Type})
		}
	}

	fromShared := shared(from.Columns, toIdx)
	toShared := shared(to.Columns, fromIdx)
	for pos, name := range toShared {
		if oldPos := position(fromShared, name); oldPos != pos {
			r.Changes = append(r.Changes, Change{Kind: Moved, Column: name, FromPos: oldPos + 1, ToPos: pos + 1})
		}
	}
	return r
}

func index(cols []types.Column) map[string]int {
	m := make(map[string]int, len(cols))
	for i, c := range cols {
		m[c.Name] = i
	}
	return m
}

// shared returns the names of cols that also appear in other, in cols order.
func shared(cols []types.Column, other map[string]int) []string {
	var names []string
	for _, c := range cols {
		if _, ok := other[c.Name]; ok {
			names = append(names, c.Name)
		}
	}
	return names
}

func position(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
