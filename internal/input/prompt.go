package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/pterm/pterm"
)

// LineReader shows the given prompt and returns a single line of user input.
type LineReader func(prompt string) (string, error)

// Prompter collects numeric values from the user, asking again until the input is valid.
type Prompter struct {
	readLine LineReader
}

// NewPrompter creates a Prompter reading from the terminal.
func NewPrompter() *Prompter {
	return NewPrompterWithReader(func(prompt string) (string, error) {
		return pterm.DefaultInteractiveTextInput.Show(strings.TrimSuffix(strings.TrimSpace(prompt), ":"))
	})
}

func NewPrompterWithReader(reader LineReader) *Prompter {
	return &Prompter{readLine: reader}
}

// Float asks for a finite float64
func (p *Prompter) Float(prompt string) (float64, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil || !util.IsFinite(value) {
			ui.Warning("Invalid input. Please enter a valid float.")
			continue
		}
		return value, nil
	}
}

// Int asks for an integer
func (p *Prompter) Int(prompt string) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}
		value, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			ui.Warning("Invalid input. Please enter a valid int.")
			continue
		}
		return value, nil
	}
}

// Configuration asks for all simulation parameters. Values the simulator
// would reject are asked for again.
func (p *Prompter) Configuration() (config pid.Configuration, err error) {
	fields := []struct {
		prompt string
		target *float64
	}{
		{"Enter Kp Value: ", &config.Kp},
		{"Enter Ki Value: ", &config.Ki},
		{"Enter Kd Value: ", &config.Kd},
		{"Enter target height: ", &config.Target},
		{"Enter initial height: ", &config.InitialState},
	}
	for _, field := range fields {
		if *field.target, err = p.Float(field.prompt); err != nil {
			return config, err
		}
	}
	if config.StepCount, err = p.Int("Enter Total Timesteps: "); err != nil {
		return config, err
	}
	if config.Interval, err = p.Float("Enter Time interval: "); err != nil {
		return config, err
	}

	for {
		err = config.Validate()
		var configErr *pid.ConfigurationError
		if err == nil || !errors.As(err, &configErr) {
			return config, err
		}

		ui.Warning("%s, please try again.", capitalize(configErr.Err.Error()))
		switch {
		case errors.Is(err, pid.ErrZeroInterval):
			config.Interval, err = p.Float("Enter Time interval: ")
		case errors.Is(err, pid.ErrNegativeStepCount):
			config.StepCount, err = p.Int("Enter Total Timesteps: ")
		default:
			return config, fmt.Errorf("unexpected configuration error: %w", configErr)
		}
		if err != nil {
			return config, err
		}
	}
}

func capitalize(text string) string {
	if len(text) <= 0 {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
