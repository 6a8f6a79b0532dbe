package pid

import (
	"errors"
	"fmt"
)

var (
	ErrZeroInterval      = errors.New("interval must not be zero")
	ErrNegativeStepCount = errors.New("step count must not be negative")
)

// ConfigurationError is returned by Simulate when the given Configuration
// cannot be simulated. No partial Trace is produced in that case.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
