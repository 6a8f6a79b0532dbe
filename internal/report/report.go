package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

var Headers = []string{
	"t",
	"e(t)",
	"Cumulative Error",
	"Rate of Change of Error",
	"u(t)",
	"Current Height (after PID)",
}

type Options struct {
	// number of decimal places of all values
	Precision int
	Color     bool
}

func tableConfig(color bool) *table.Config {
	return &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}
}

// Rows returns one row per simulated step, the last column
// is the state after the step was applied.
func Rows(trace pid.Trace, precision int) [][]string {
	rows := make([][]string, 0, trace.Len())
	for _, step := range trace.Steps() {
		rows = append(rows, []string{
			strconv.Itoa(step.Index),
			FormatFloat(step.Error, precision),
			FormatFloat(step.IntegralError, precision),
			FormatFloat(step.DerivativeError, precision),
			FormatFloat(step.ControlOutput, precision),
			FormatFloat(step.State, precision),
		})
	}
	return rows
}

func FormatFloat(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// Write renders the step table of the given trace
func Write(w io.Writer, trace pid.Trace, options Options) error {
	tab := table.Table{
		Headers: Headers,
		Rows:    Rows(trace, options.Precision),
	}
	return writeTable(w, tab, options.Color)
}

// WriteSummary renders a two column table of the given summary
func WriteSummary(w io.Writer, summary analysis.Summary, options Options) error {
	tab := table.Table{
		Headers: []string{"", ""},
		Rows: [][]string{
			{"Final Height", FormatFloat(summary.FinalState, options.Precision)},
			{"Final Error", FormatFloat(summary.FinalError, options.Precision)},
			{"Peak Height", FormatFloat(summary.PeakState, options.Precision)},
			{"Overshoot", FormatFloat(summary.Overshoot, options.Precision)},
			{"Settled", settledText(summary.SettledAt)},
			{"Diverged", strconv.FormatBool(summary.Diverged)},
		},
	}
	return writeTable(w, tab, options.Color)
}

func settledText(settledAt int) string {
	if settledAt < 0 {
		return "never"
	}
	return fmt.Sprintf("t = %d", settledAt)
}

func writeTable(w io.Writer, tab table.Table, color bool) error {
	var buf bytes.Buffer
	if err := tab.WriteTable(&buf, tableConfig(color)); err != nil {
		return fmt.Errorf("error printing table: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
