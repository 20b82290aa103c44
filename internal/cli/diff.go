package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/driftlab/internal/drift"
)

func (a *app) newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <from-id> <to-id>",
		Short: "Report schema drift between two snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			from, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			to, err := catalog.Get(args[1])
			if err != nil {
				return err
			}

			report := drift.Compare(from, to)
			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, report)
			}

			fmt.Fprintf(w, "%s -> %s\n", nameColor.Sprint(report.From), nameColor.Sprint(report.To))
			if report.Empty() {
				fmt.Fprintln(w, okColor.Sprint("no drift"))
				return nil
			}
			if report.TableRenamed {
				fmt.Fprintf(w, "  table    %s -> %s\n", from.Table, to.Table)
			}
			for _, c := range report.Changes {
				switch c.Kind {
				case drift.Removed:
					fmt.Fprintf(w, "  %s  %s %s\n", badColor.Sprint("removed"), c.Column, c.Type)
				case drift.Added:
					fmt.Fprintf(w, "  %s    %s %s\n", okColor.Sprint("added"), c.Column, c.Type)
				case drift.Retyped:
					fmt.Fprintf(w, "  %s  %s %s -> %s\n", warnColor.Sprint("retyped"), c.Column, c.FromType, c.ToType)
				case drift.Moved:
					fmt.Fprintf(w, "  %s    %s %d -> %d\n", faintColor.Sprint("moved"), c.Column, c.FromPos, c.ToPos)
				}
			}
			return nil
		},
	}
}
