// src/commands/runs.go
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCommand(deps *Deps) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := deps.Store.ImportRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No import runs recorded.")
				return nil
			}
			for _, run := range runs {
				line := fmt.Sprintf("%s  %-9s  %s  accepted=%d rejected=%d sales=%d purchases=%d",
					run.StartedAt.Local().Format(time.DateTime), run.Status, run.FileName,
					run.Accepted, run.Rejected, run.Sales, run.Purchases)
				if run.Error != "" {
					line += "  error=" + run.Error
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to show")
	return cmd
}
