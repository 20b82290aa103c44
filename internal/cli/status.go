package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/driftlab/internal/sqlite"
	"github.com/mesh-intelligence/driftlab/pkg/types"
)

// Database states reported by status.
const (
	stateAbsent  = "absent"
	statePresent = "present"
)

// statusOutput is the JSON shape of the status command.
type statusOutput struct {
	Path      string   `json:"path"`
	State     string   `json:"state"`
	Tables    []string `json:"tables"`
	Matches   []string `json:"matches"`
	Snapshots int      `json:"snapshots"`
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the database exists and which snapshot it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.catalog()
			if err != nil {
				return err
			}

			out := statusOutput{
				Path:      a.cfg.DBPath,
				State:     stateAbsent,
				Tables:    []string{},
				Matches:   []string{},
				Snapshots: catalog.Len(),
			}

			tables, err := sqlite.Tables(a.cfg.DBPath)
			switch {
			case errors.Is(err, types.ErrNotFound):
			case err != nil:
				return fmt.Errorf("status: %w", err)
			default:
				out.State = statePresent
				if tables != nil {
					out.Tables = tables
				}
				cols, err := sqlite.Inspect(a.cfg.DBPath, types.DefaultTable)
				if err == nil {
					if m := catalog.Match(types.DefaultTable, cols); m != nil {
						out.Matches = m
					}
				} else if !errors.Is(err, types.ErrNotFound) && !errors.Is(err, types.ErrSchema) {
					return fmt.Errorf("status: %w", err)
				}
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, out)
			}

			fmt.Fprintf(w, "database:  %s\n", out.Path)
			if out.State == stateAbsent {
				fmt.Fprintf(w, "state:     %s\n", warnColor.Sprint(out.State))
				fmt.Fprintf(w, "snapshots: %d available\n", out.Snapshots)
				return nil
			}
			fmt.Fprintf(w, "state:     %s\n", okColor.Sprint(out.State))
			fmt.Fprintf(w, "tables:    %s\n", strings.Join(out.Tables, ", "))
			if len(out.Matches) == 0 {
				fmt.Fprintf(w, "snapshot:  %s\n", badColor.Sprint("no match"))
			} else {
				fmt.Fprintf(w, "snapshot:  %s\n", nameColor.Sprint(strings.Join(out.Matches, ", ")))
			}
			fmt.Fprintf(w, "snapshots: %d available\n", out.Snapshots)
			return nil
		},
	}
}
