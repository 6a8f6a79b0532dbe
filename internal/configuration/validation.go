package configuration

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/markusressel/pid2go/internal/ui"
	"golang.org/x/exp/slices"
)

const maxPrecision = 12

var supportedChartFormats = []string{".png", ".svg", ".pdf", ".jpg", ".jpeg"}

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if err := ValidateSimulation(config.Simulation); err != nil {
		return err
	}
	if err := validateReport(config); err != nil {
		return err
	}
	if err := validateChart(config); err != nil {
		return err
	}
	if err := validateAnalysis(config); err != nil {
		return err
	}
	if err := validateSweep(config); err != nil {
		return err
	}
	if err := validateApi(config); err != nil {
		return err
	}
	return validateStatistics(config)
}

// ValidateSimulation checks the simulation parameters, as they would be
// rejected by the simulator, plus non-finite values which the simulator would accept.
func ValidateSimulation(sim SimulationConfig) error {
	values := map[string]float64{
		"kp":           sim.Kp,
		"ki":           sim.Ki,
		"kd":           sim.Kd,
		"target":       sim.Target,
		"initialState": sim.InitialState,
		"interval":     sim.Interval,
	}
	for _, key := range []string{"kp", "ki", "kd", "target", "initialState", "interval"} {
		value := values[key]
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("simulation: %s must be a finite number, got %v", key, value)
		}
	}

	if err := sim.ToPid().Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if sim.StepCount > MaxStepCount {
		return fmt.Errorf("simulation: stepCount must be at most %d, got %d", MaxStepCount, sim.StepCount)
	}

	if sim.Kp == 0 && sim.Ki == 0 && sim.Kd == 0 {
		ui.Warning("Simulation: all PID constants are zero, the state will never change")
	}
	return nil
}

func validateReport(config *Configuration) error {
	if config.Report.Precision < 0 || config.Report.Precision > maxPrecision {
		return fmt.Errorf("report: precision must be in [0..%d], got %d", maxPrecision, config.Report.Precision)
	}
	return nil
}

func validateChart(config *Configuration) error {
	chart := config.Chart
	if chart.Height <= 0 {
		return fmt.Errorf("chart: height must be > 0, got %d", chart.Height)
	}
	if chart.Width <= 0 {
		return fmt.Errorf("chart: width must be > 0, got %d", chart.Width)
	}
	if chart.Samples < 2 {
		return fmt.Errorf("chart: samples must be >= 2, got %d", chart.Samples)
	}
	if len(chart.Png) > 0 {
		ext := strings.ToLower(filepath.Ext(chart.Png))
		if !slices.Contains(supportedChartFormats, ext) {
			return fmt.Errorf("chart: unsupported file format '%s', use one of: %s", ext, strings.Join(supportedChartFormats, " | "))
		}
		if !chart.Enabled {
			ui.Warning("Chart: png output is configured, but the chart is disabled")
		}
	}
	return nil
}

func validateAnalysis(config *Configuration) error {
	analysis := config.Analysis
	if math.IsNaN(analysis.Tolerance) || analysis.Tolerance < 0 {
		return fmt.Errorf("analysis: tolerance must be >= 0, got %v", analysis.Tolerance)
	}
	if analysis.Window < 1 {
		return fmt.Errorf("analysis: window must be >= 1, got %d", analysis.Window)
	}
	return nil
}

func validateSweep(config *Configuration) error {
	sweep := config.Sweep
	lists := map[string][]float64{
		"kp": sweep.Kp,
		"ki": sweep.Ki,
		"kd": sweep.Kd,
	}
	for _, key := range []string{"kp", "ki", "kd"} {
		values := lists[key]
		if len(values) <= 0 {
			return fmt.Errorf("sweep: %s must contain at least one value", key)
		}
		for _, value := range values {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("sweep: %s contains a non-finite value: %v", key, value)
			}
		}
	}
	if sweep.Workers < 1 {
		return fmt.Errorf("sweep: workers must be >= 1, got %d", sweep.Workers)
	}
	return nil
}

func validateApi(config *Configuration) error {
	if !config.Api.Enabled {
		return nil
	}
	if !isValidPort(config.Api.Port) {
		return fmt.Errorf("api: invalid port %d", config.Api.Port)
	}
	if config.Api.Timeout < 0 {
		return fmt.Errorf("api: timeout must not be negative, got %s", config.Api.Timeout)
	}
	return nil
}

func validateStatistics(config *Configuration) error {
	if !config.Statistics.Enabled {
		return nil
	}
	if !isValidPort(config.Statistics.Port) {
		return fmt.Errorf("statistics: invalid port %d", config.Statistics.Port)
	}
	if config.Api.Enabled && config.Api.Port == config.Statistics.Port {
		return fmt.Errorf("statistics: port %d is already used by the api", config.Statistics.Port)
	}
	return nil
}

func isValidPort(port int) bool {
	return port > 0 && port < 65536
}
