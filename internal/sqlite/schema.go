// Package sqlite materializes schema snapshots into SQLite database files
// and reads realized schemas back.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// CreateTableSQL renders the CREATE TABLE statement for a snapshot. Columns
// appear in declared order; identifiers are always quoted. The snapshot is
// assumed valid.
func CreateTableSQL(snap types.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", quoteIdent(snap.Table))
	for i, c := range snap.Columns {
		fmt.Fprintf(&b, "    %s %s", quoteIdent(c.Name), c.Type.SQL())
		if i < len(snap.Columns)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(");")
	return b.String()
}

// quoteIdent wraps an identifier in double quotes, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
