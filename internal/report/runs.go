package report

import (
	"io"
	"strconv"
	"time"

	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/sweep"
	"github.com/tomlazar/table"
)

var (
	RunHeaders   = []string{"ID", "Created", "Kp", "Ki", "Kd", "Target", "Initial Height", "Steps", "Interval", "Final Height"}
	SweepHeaders = []string{"#", "Kp", "Ki", "Kd", "Settled", "Final Error", "Overshoot", "Diverged"}
)

// WriteRuns renders one row per stored run
func WriteRuns(w io.Writer, runs []persistence.Run, options Options) error {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			FormatFloat(run.Config.Kp, options.Precision),
			FormatFloat(run.Config.Ki, options.Precision),
			FormatFloat(run.Config.Kd, options.Precision),
			FormatFloat(run.Config.Target, options.Precision),
			FormatFloat(run.Config.InitialState, options.Precision),
			strconv.Itoa(run.Config.StepCount),
			FormatFloat(run.Config.Interval, options.Precision),
			FormatFloat(run.Trace.FinalState(), options.Precision),
		})
	}
	return writeTable(w, table.Table{Headers: RunHeaders, Rows: rows}, options.Color)
}

// WriteSweep renders ranked sweep results, best first
func WriteSweep(w io.Writer, results []sweep.Result, options Options) error {
	rows := make([][]string, 0, len(results))
	for i, result := range results {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			FormatFloat(result.Config.Kp, options.Precision),
			FormatFloat(result.Config.Ki, options.Precision),
			FormatFloat(result.Config.Kd, options.Precision),
			settledText(result.Summary.SettledAt),
			FormatFloat(result.Summary.FinalError, options.Precision),
			FormatFloat(result.Summary.Overshoot, options.Precision),
			strconv.FormatBool(result.Summary.Diverged),
		})
	}
	return writeTable(w, table.Table{Headers: SweepHeaders, Rows: rows}, options.Color)
}
