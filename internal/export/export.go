package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"

	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/report"
	"github.com/natefinch/atomic"
)

// WriteJSON atomically writes the given run as indented JSON to path.
func WriteJSON(path string, run persistence.Run) error {
	if !run.Trace.Finite() {
		return persistence.ErrNonFiniteTrace
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return atomic.WriteFile(path, bytes.NewReader(data))
}

// WriteCSV atomically writes one line per step of trace to path,
// using the same column names as the console report.
func WriteCSV(path string, trace pid.Trace) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(report.Headers); err != nil {
		return err
	}
	for _, step := range trace.Steps() {
		record := []string{
			strconv.Itoa(step.Index),
			formatFloat(step.Error),
			formatFloat(step.IntegralError),
			formatFloat(step.DerivativeError),
			formatFloat(step.ControlOutput),
			formatFloat(step.State),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	return atomic.WriteFile(path, &buf)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
