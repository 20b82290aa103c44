package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/driftlab/internal/sqlite"
	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// inspectOutput is the JSON shape of the inspect command.
type inspectOutput struct {
	Path    string         `json:"path"`
	Table   string         `json:"table"`
	Columns []types.Column `json:"columns"`
	Matches []string       `json:"matches"`
}

func (a *app) newInspectCmd() *cobra.Command {
	var table string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the realized columns of the table in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := sqlite.Inspect(a.cfg.DBPath, table)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}

			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			out := inspectOutput{
				Path:    a.cfg.DBPath,
				Table:   table,
				Columns: cols,
				Matches: catalog.Match(table, cols),
			}
			if out.Matches == nil {
				out.Matches = []string{}
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, out)
			}

			fmt.Fprintf(w, "%s  table %s, %d columns\n\n", out.Path, table, len(cols))
			if err := writeColumns(w, cols); err != nil {
				return err
			}
			fmt.Fprintln(w)
			if len(out.Matches) == 0 {
				badColor.Fprintln(w, "matches no known snapshot")
				return nil
			}
			fmt.Fprintf(w, "matches %s\n", nameColor.Sprint(strings.Join(out.Matches, ", ")))
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", types.DefaultTable, "table to inspect")
	return cmd
}
