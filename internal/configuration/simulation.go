package configuration

import "github.com/markusressel/pid2go/internal/pid"

// MaxStepCount is the largest number of steps accepted from a config file,
// flags or the REST API, a full trace of this length takes about 40 MB.
const MaxStepCount = 1_000_000

type SimulationConfig struct {
	Kp           float64 `json:"kp"`
	Ki           float64 `json:"ki"`
	Kd           float64 `json:"kd"`
	Target       float64 `json:"target"`
	InitialState float64 `json:"initialState"`
	StepCount    int     `json:"stepCount"`
	Interval     float64 `json:"interval"`
}

func (c SimulationConfig) ToPid() pid.Configuration {
	return pid.Configuration{
		Kp:           c.Kp,
		Ki:           c.Ki,
		Kd:           c.Kd,
		Target:       c.Target,
		InitialState: c.InitialState,
		StepCount:    c.StepCount,
		Interval:     c.Interval,
	}
}

type ReportConfig struct {
	// number of decimal places
	Precision int `json:"precision"`
}

type ChartConfig struct {
	Enabled bool `json:"enabled"`
	Height  int  `json:"height"`
	Width   int  `json:"width"`
	// number of points the smoothed curve is sampled at
	Samples int `json:"samples"`
	// optional path of a PNG file to render the chart to
	Png string `json:"png"`
}

type AnalysisConfig struct {
	// maximum absolute error for the loop to be considered settled
	Tolerance float64 `json:"tolerance"`
	// number of consecutive samples that have to be within tolerance
	Window int `json:"window"`
}

type SweepConfig struct {
	Kp      []float64 `json:"kp"`
	Ki      []float64 `json:"ki"`
	Kd      []float64 `json:"kd"`
	Workers int       `json:"workers"`
}
