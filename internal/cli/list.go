package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshot ids grouped by era",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			eras := catalog.Eras()
			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, eras)
			}

			if len(eras) == 0 {
				fmt.Fprintln(w, "no snapshots found")
				return nil
			}
			latest, err := catalog.Latest()
			if err != nil {
				return err
			}
			for _, era := range eras {
				fmt.Fprintln(w, nameColor.Sprint(era.Name))
				for _, id := range era.IDs {
					if id == latest.ID {
						fmt.Fprintf(w, "  %s %s\n", id, okColor.Sprint("(latest)"))
						continue
					}
					fmt.Fprintf(w, "  %s\n", id)
				}
			}
			return nil
		},
	}
}
