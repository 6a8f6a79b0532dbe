package analysis

import (
	"math"

	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/util"
)

type Options struct {
	// maximum absolute error for the loop to be considered settled
	Tolerance float64
	// number of consecutive residuals that have to be within Tolerance
	Window int
}

// Summary describes the outcome of a single simulation run.
type Summary struct {
	FinalState float64 `json:"finalState"`
	FinalError float64 `json:"finalError"`
	PeakState  float64 `json:"peakState"`
	// how far the state went past the target, in the direction of approach
	Overshoot float64 `json:"overshoot"`
	// index into the state sequence at which the loop settled, -1 if it never did
	SettledAt int  `json:"settledAt"`
	Diverged  bool `json:"diverged"`
}

func (s Summary) Settled() bool {
	return s.SettledAt >= 0
}

// Summarize computes a Summary of the given trace, which must have been
// produced by simulating config.
func Summarize(config pid.Configuration, trace pid.Trace, options Options) Summary {
	states := trace.States
	final := trace.FinalState()

	summary := Summary{
		FinalState: final,
		FinalError: config.Target - final,
		PeakState:  util.Max(states),
		SettledAt:  -1,
		Diverged:   !util.AllFinite(states),
	}
	if summary.Diverged {
		return summary
	}

	summary.Overshoot = overshoot(config, states)
	summary.SettledAt = settledAt(config.Target, states, options)
	return summary
}

func overshoot(config pid.Configuration, states []float64) float64 {
	switch {
	case config.InitialState < config.Target:
		return math.Max(0, util.Max(states)-config.Target)
	case config.InitialState > config.Target:
		return math.Max(0, config.Target-util.Min(states))
	default:
		return math.Max(util.Max(states)-config.Target, config.Target-util.Min(states))
	}
}

// settledAt returns the first index k, at which the residuals
// |target - states[j]| for j in (k-window..k] are all within tolerance.
func settledAt(target float64, states []float64, options Options) int {
	window := options.Window
	if window < 1 {
		window = 1
	}
	residuals := util.CreateRollingWindow(window)
	for i, state := range states {
		residuals.Append(math.Abs(target - state))
		if i+1 < window {
			continue
		}
		if util.GetWindowMax(residuals) <= options.Tolerance {
			return i
		}
	}
	return -1
}
