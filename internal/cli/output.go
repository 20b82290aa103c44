package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/mesh-intelligence/driftlab/pkg/types"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	badColor   = color.New(color.FgRed)
	faintColor = color.New(color.Faint)
	nameColor  = color.New(color.FgCyan)
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeColumns prints a numbered column listing.
func writeColumns(w io.Writer, cols []types.Column) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, c := range cols {
		fmt.Fprintf(tw, "%3d\t%s\t%s\n", i+1, c.Name, faintColor.Sprint(c.Type))
	}
	return tw.Flush()
}
