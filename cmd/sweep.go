package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/report"
	"github.com/markusressel/pid2go/internal/sweep"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate every combination of the given gains and rank them",
	Long: `Runs one simulation per combination of the Kp, Ki and Kd lists, using the
configured target, initial height, steps and interval, and prints the results
ranked by settling time and final error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		sweepConfig := configuration.CurrentConfig.Sweep
		grid := sweep.Grid{
			Kp: sweepConfig.Kp,
			Ki: sweepConfig.Ki,
			Kd: sweepConfig.Kd,
		}
		ui.Info("Simulating %d gain combinations using %d workers", grid.Size(), sweepConfig.Workers)

		results, err := sweep.Run(ctx, configuration.CurrentConfig.Simulation.ToPid(), grid, sweepConfig.Workers, analysisOptions())
		if err != nil {
			ui.Error("Sweep failed: %v", err)
			return err
		}

		return report.WriteSweep(cmd.OutOrStdout(), results, report.Options{
			Precision: configuration.CurrentConfig.Report.Precision,
			Color:     !global.NoColor,
		})
	},
}

func init() {
	flags := sweepCmd.Flags()
	flags.String("kp", "", "Comma separated list of proportional gains")
	flags.String("ki", "", "Comma separated list of integral gains")
	flags.String("kd", "", "Comma separated list of derivative gains")
	flags.Int("workers", 0, "Number of concurrent simulations")

	for _, key := range []string{"kp", "ki", "kd", "workers"} {
		if err := viper.BindPFlag("sweep."+key, flags.Lookup(key)); err != nil {
			ui.Fatal("Unable to bind flag %s: %v", key, err)
		}
	}

	rootCmd.AddCommand(sweepCmd)
}
