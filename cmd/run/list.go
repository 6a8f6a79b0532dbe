package run

import (
	"github.com/markusressel/pid2go/internal/report"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pers, err := openPersistence()
		if err != nil {
			return err
		}

		runs, err := pers.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			ui.Info("No stored runs, use 'pid2go simulate --save' to store one.")
			return nil
		}

		return report.WriteRuns(cmd.OutOrStdout(), runs, reportOptions())
	},
}

func init() {
	Command.AddCommand(listCmd)
}
