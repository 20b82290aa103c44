package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/driftlab/internal/sqlite"
	"github.com/mesh-intelligence/driftlab/pkg/types"
)

func (a *app) newBootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap [snapshot-id]",
		Short: "Create the workshop database if it does not exist",
		Long: "Create the database file from a snapshot (default: the configured\n" +
			"snapshot, else the latest). An existing file is left untouched.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.cfg.Snapshot
			if len(args) == 1 {
				id = args[0]
			}

			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			res, err := sqlite.NewBootstrapper(a.logger).BootstrapID(catalog, id, a.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, res)
			}
			switch res.Outcome {
			case types.OutcomeCreated:
				okColor.Fprint(w, "created ")
				fmt.Fprintf(w, "%s from %s\n", res.Path, nameColor.Sprint(res.Snapshot))
			case types.OutcomeNoOp:
				warnColor.Fprint(w, "exists ")
				fmt.Fprintf(w, "%s, nothing to do\n", res.Path)
			}
			return nil
		},
	}
}
