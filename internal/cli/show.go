package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/driftlab/internal/sqlite"
	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// showOutput is the JSON shape of the show command.
type showOutput struct {
	types.Snapshot
	DDL string `json:"ddl"`
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [snapshot-id]",
		Short: "Show the declared columns and DDL of a snapshot (default: latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}

			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			snap, err := catalog.Resolve(id)
			if err != nil {
				return err
			}

			ddl := sqlite.CreateTableSQL(snap)
			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, showOutput{Snapshot: snap, DDL: ddl})
			}

			fmt.Fprintf(w, "%s  table %s, %d columns\n", nameColor.Sprint(snap.ID), snap.Table, len(snap.Columns))
			if snap.Description != "" {
				fmt.Fprintln(w, faintColor.Sprint(snap.Description))
			}
			fmt.Fprintln(w)
			if err := writeColumns(w, snap.Columns); err != nil {
				return err
			}
			fmt.Fprintf(w, "\n%s\n", ddl)
			return nil
		},
	}
}
