package cmd

import (
	"errors"

	"github.com/markusressel/pid2go/cmd/global"
	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/chart"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/input"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/report"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	interactive bool
	saveRun     bool
	noChart     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate the PID loop and print every step",
	Long: `Runs the PID recurrence with the configured gains, target, initial height,
number of steps and time interval, then prints the step table, a summary
and a smoothed chart of the height.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		printHeader()

		config := configuration.CurrentConfig.Simulation.ToPid()
		if interactive {
			var err error
			config, err = input.NewPrompter().Configuration()
			if err != nil {
				return err
			}
		}

		trace, err := pid.Simulate(config)
		if err != nil {
			ui.Error("Simulation failed: %v", err)
			return err
		}

		out := cmd.OutOrStdout()
		reportOptions := report.Options{
			Precision: configuration.CurrentConfig.Report.Precision,
			Color:     !global.NoColor,
		}
		if err := report.Write(out, trace, reportOptions); err != nil {
			return err
		}

		summary := analysis.Summarize(config, trace, analysisOptions())
		if summary.Diverged {
			ui.Warning("The simulation diverged, the state left the finite range")
		}
		if err := report.WriteSummary(out, summary, reportOptions); err != nil {
			return err
		}

		chartConfig := configuration.CurrentConfig.Chart
		if chartConfig.Enabled && !noChart {
			printChart(trace, config.Target, chartConfig)
		}
		if len(chartConfig.Png) > 0 {
			err := chart.SavePNG(chartConfig.Png, trace.States, config.Target, chartConfig.Samples)
			if errors.Is(err, chart.ErrNonFiniteTrace) {
				ui.Warning("Skipping chart image: %v", err)
			} else if err != nil {
				return err
			} else {
				ui.Success("Chart saved to %s", chartConfig.Png)
			}
		}

		if saveRun {
			run := persistence.NewRun(config, trace)
			if err := storeRun(run); err != nil {
				return err
			}
			ui.Success("Saved run %s", run.ID)
		}

		return nil
	},
}

func printChart(trace pid.Trace, target float64, config configuration.ChartConfig) {
	graph, err := chart.RenderASCII(trace.States, target, chart.Options{
		Height:  config.Height,
		Width:   config.Width,
		Samples: config.Samples,
		Color:   !global.NoColor,
	})
	if err != nil {
		ui.Warning("Skipping chart: %v", err)
		return
	}
	ui.Printfln("")
	ui.Printfln("%s", graph)
}

func storeRun(run persistence.Run) error {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		return err
	}
	return pers.SaveRun(run)
}

func analysisOptions() analysis.Options {
	return analysis.Options{
		Tolerance: configuration.CurrentConfig.Analysis.Tolerance,
		Window:    configuration.CurrentConfig.Analysis.Window,
	}
}

func init() {
	flags := simulateCmd.Flags()
	flags.Float64("kp", 0, "Proportional gain")
	flags.Float64("ki", 0, "Integral gain")
	flags.Float64("kd", 0, "Derivative gain")
	flags.Float64("target", 0, "Target height")
	flags.Float64("initial", 0, "Initial height")
	flags.Int("steps", 0, "Number of steps to simulate")
	flags.Float64("interval", 0, "Time interval between two steps")
	flags.String("png", "", "Render the chart to the given image file (.png, .svg, .pdf, .jpg)")

	flags.BoolVarP(&interactive, "interactive", "i", false, "Prompt for all simulation values")
	flags.BoolVarP(&saveRun, "save", "", false, "Store the run in the database")
	flags.BoolVarP(&noChart, "no-chart", "", false, "Do not print the console chart")

	bindings := map[string]string{
		"simulation.kp":           "kp",
		"simulation.ki":           "ki",
		"simulation.kd":           "kd",
		"simulation.target":       "target",
		"simulation.initialState": "initial",
		"simulation.stepCount":    "steps",
		"simulation.interval":     "interval",
		"chart.png":               "png",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			ui.Fatal("Unable to bind flag %s: %v", flag, err)
		}
	}

	rootCmd.AddCommand(simulateCmd)
	// the root command simulates too, so it accepts the same flags
	rootCmd.Flags().AddFlagSet(flags)
}
