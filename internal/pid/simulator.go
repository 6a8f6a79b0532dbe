package pid

import "math"

// Configuration holds the fixed parameters of a single simulation run.
type Configuration struct {
	// Proportional gain
	Kp float64 `json:"kp"`
	// Integral gain
	Ki float64 `json:"ki"`
	// Derivative gain
	Kd float64 `json:"kd"`

	Target       float64 `json:"target"`
	InitialState float64 `json:"initialState"`

	// number of steps to simulate
	StepCount int `json:"stepCount"`
	// time between two steps, divisor of the derivative term
	Interval float64 `json:"interval"`
}

// Validate checks whether the configuration can be simulated at all.
// Gains, target and initial state are accepted as-is.
func (c Configuration) Validate() error {
	if c.Interval == 0 {
		return &ConfigurationError{Field: "interval", Err: ErrZeroInterval}
	}
	if c.StepCount < 0 {
		return &ConfigurationError{Field: "stepCount", Err: ErrNegativeStepCount}
	}
	return nil
}

// Trace is the full per-step record of one simulation run.
// It must be treated as read-only once returned by Simulate.
type Trace struct {
	// States has one more entry than all other sequences,
	// States[0] is the initial state.
	States           []float64 `json:"states"`
	Errors           []float64 `json:"errors"`
	IntegralErrors   []float64 `json:"integralErrors"`
	DerivativeErrors []float64 `json:"derivativeErrors"`
	ControlOutputs   []float64 `json:"controlOutputs"`
}

// Step is a single row of a Trace.
type Step struct {
	Index           int
	Error           float64
	IntegralError   float64
	DerivativeError float64
	ControlOutput   float64
	// State after the control output of this step has been applied
	State float64
}

// Len returns the number of simulated steps
func (t Trace) Len() int {
	return len(t.Errors)
}

func (t Trace) Step(i int) Step {
	return Step{
		Index:           i,
		Error:           t.Errors[i],
		IntegralError:   t.IntegralErrors[i],
		DerivativeError: t.DerivativeErrors[i],
		ControlOutput:   t.ControlOutputs[i],
		State:           t.States[i+1],
	}
}

func (t Trace) Steps() []Step {
	steps := make([]Step, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		steps = append(steps, t.Step(i))
	}
	return steps
}

// FinalState returns the state after the last step, or the initial state
// if no steps were simulated.
func (t Trace) FinalState() float64 {
	return t.States[len(t.States)-1]
}

// Finite reports whether every value of the trace is a finite number.
func (t Trace) Finite() bool {
	for _, values := range [][]float64{t.States, t.Errors, t.IntegralErrors, t.DerivativeErrors, t.ControlOutputs} {
		for _, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// maxPreallocatedSteps bounds the capacity reserved up front,
// longer runs grow their sequences while simulating.
const maxPreallocatedSteps = 1 << 16

func preallocation(stepCount int) int {
	return min(stepCount, maxPreallocatedSteps)
}

// accumulator is the mutable loop state of a single run
type accumulator struct {
	state         float64
	previousError float64
	integral      float64
}

// Simulate runs the PID recurrence for config.StepCount steps.
//
// The previous error is initialized to Target - InitialState, which makes
// the first derivative sample always 0.
func Simulate(config Configuration) (Trace, error) {
	if err := config.Validate(); err != nil {
		return Trace{}, err
	}

	n := config.StepCount
	c := preallocation(n)
	trace := Trace{
		States:           make([]float64, 0, c+1),
		Errors:           make([]float64, 0, c),
		IntegralErrors:   make([]float64, 0, c),
		DerivativeErrors: make([]float64, 0, c),
		ControlOutputs:   make([]float64, 0, c),
	}
	trace.States = append(trace.States, config.InitialState)

	acc := accumulator{
		state:         config.InitialState,
		previousError: config.Target - config.InitialState,
	}
	for i := 0; i < n; i++ {
		currentError := config.Target - acc.state
		trace.Errors = append(trace.Errors, currentError)

		acc.integral += currentError
		trace.IntegralErrors = append(trace.IntegralErrors, acc.integral)

		derivativeError := (acc.previousError - currentError) / config.Interval
		trace.DerivativeErrors = append(trace.DerivativeErrors, derivativeError)

		output := config.Kp*currentError + config.Ki*acc.integral + config.Kd*derivativeError
		trace.ControlOutputs = append(trace.ControlOutputs, output)

		acc.state += output
		trace.States = append(trace.States, acc.state)

		acc.previousError = currentError
	}

	return trace, nil
}
