package api

import (
	"strconv"

	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/util"
)

// number is a float64 that encodes NaN and +/-Inf as null
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	if !util.IsFinite(float64(n)) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(n), 'g', -1, 64), nil
}

func numbers(values []float64) []number {
	result := make([]number, len(values))
	for i, v := range values {
		result[i] = number(v)
	}
	return result
}

type divergedTrace struct {
	States           []number `json:"states"`
	Errors           []number `json:"errors"`
	IntegralErrors   []number `json:"integralErrors"`
	DerivativeErrors []number `json:"derivativeErrors"`
	ControlOutputs   []number `json:"controlOutputs"`
}

type divergedSummary struct {
	FinalState number `json:"finalState"`
	FinalError number `json:"finalError"`
	PeakState  number `json:"peakState"`
	Overshoot  number `json:"overshoot"`
	SettledAt  int    `json:"settledAt"`
	Diverged   bool   `json:"diverged"`
}

// DivergedResponse is returned for a simulation whose state left the finite
// range. Non-finite values are encoded as null, such runs are not kept.
type DivergedResponse struct {
	Config  pid.Configuration `json:"config"`
	Trace   divergedTrace     `json:"trace"`
	Summary divergedSummary   `json:"summary"`
}

func newDivergedResponse(config pid.Configuration, trace pid.Trace, summary analysis.Summary) DivergedResponse {
	return DivergedResponse{
		Config: config,
		Trace: divergedTrace{
			States:           numbers(trace.States),
			Errors:           numbers(trace.Errors),
			IntegralErrors:   numbers(trace.IntegralErrors),
			DerivativeErrors: numbers(trace.DerivativeErrors),
			ControlOutputs:   numbers(trace.ControlOutputs),
		},
		Summary: divergedSummary{
			FinalState: number(summary.FinalState),
			FinalError: number(summary.FinalError),
			PeakState:  number(summary.PeakState),
			Overshoot:  number(summary.Overshoot),
			SettledAt:  summary.SettledAt,
			Diverged:   summary.Diverged,
		},
	}
}
