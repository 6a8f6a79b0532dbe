package run

import (
	"errors"
	"fmt"
	"os"

	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/report"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the step table and summary of a stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pers, err := openPersistence()
		if err != nil {
			return err
		}

		id := args[0]
		run, err := pers.LoadRun(id)
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no run with id found: %s", id)
		} else if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		options := reportOptions()
		if err := report.Write(out, run.Trace, options); err != nil {
			return err
		}
		summary := analysis.Summarize(run.Config, run.Trace, analysis.Options{
			Tolerance: configuration.CurrentConfig.Analysis.Tolerance,
			Window:    configuration.CurrentConfig.Analysis.Window,
		})
		return report.WriteSummary(out, summary, options)
	},
}

func init() {
	Command.AddCommand(showCmd)
}
