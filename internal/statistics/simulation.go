package statistics

import (
	"errors"
	"sync"

	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/util"
	"github.com/prometheus/client_golang/prometheus"
)

const simulationSubsystem = "simulation"

// SimulationStatistics keeps track of all simulations run by this process
type SimulationStatistics struct {
	mu sync.Mutex

	runs           uint64
	errors         uint64
	diverged       uint64
	lastFinalState float64
	lastStepCount  int
}

// Record adds the outcome of a single call to pid.Simulate.
func (s *SimulationStatistics) Record(trace pid.Trace, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs++
	var configErr *pid.ConfigurationError
	if errors.As(err, &configErr) {
		s.errors++
		return
	}
	if err != nil {
		return
	}

	if !util.AllFinite(trace.States) {
		s.diverged++
	}
	s.lastFinalState = trace.FinalState()
	s.lastStepCount = trace.Len()
}

type simulationSnapshot struct {
	runs           uint64
	errors         uint64
	diverged       uint64
	lastFinalState float64
	lastStepCount  int
}

func (s *SimulationStatistics) snapshot() simulationSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return simulationSnapshot{
		runs:           s.runs,
		errors:         s.errors,
		diverged:       s.diverged,
		lastFinalState: s.lastFinalState,
		lastStepCount:  s.lastStepCount,
	}
}

type SimulationCollector struct {
	statistics *SimulationStatistics

	runs           *prometheus.Desc
	errors         *prometheus.Desc
	diverged       *prometheus.Desc
	lastFinalState *prometheus.Desc
	lastStepCount  *prometheus.Desc
}

func NewSimulationCollector(statistics *SimulationStatistics) *SimulationCollector {
	return &SimulationCollector{
		statistics: statistics,
		runs: prometheus.NewDesc(prometheus.BuildFQName(namespace, simulationSubsystem, "runs_total"),
			"Number of simulations that have been requested",
			nil, nil,
		),
		errors: prometheus.NewDesc(prometheus.BuildFQName(namespace, simulationSubsystem, "errors_total"),
			"Number of simulations rejected because of an invalid configuration",
			nil, nil,
		),
		diverged: prometheus.NewDesc(prometheus.BuildFQName(namespace, simulationSubsystem, "diverged_total"),
			"Number of simulations whose state left the finite range",
			nil, nil,
		),
		lastFinalState: prometheus.NewDesc(prometheus.BuildFQName(namespace, simulationSubsystem, "last_final_state"),
			"Final state of the most recent successful simulation",
			nil, nil,
		),
		lastStepCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, simulationSubsystem, "last_step_count"),
			"Number of steps of the most recent successful simulation",
			nil, nil,
		),
	}
}

func (collector *SimulationCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.runs
	ch <- collector.errors
	ch <- collector.diverged
	ch <- collector.lastFinalState
	ch <- collector.lastStepCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *SimulationCollector) Collect(ch chan<- prometheus.Metric) {
	s := collector.statistics.snapshot()
	ch <- prometheus.MustNewConstMetric(collector.runs, prometheus.CounterValue, float64(s.runs))
	ch <- prometheus.MustNewConstMetric(collector.errors, prometheus.CounterValue, float64(s.errors))
	ch <- prometheus.MustNewConstMetric(collector.diverged, prometheus.CounterValue, float64(s.diverged))
	ch <- prometheus.MustNewConstMetric(collector.lastFinalState, prometheus.GaugeValue, s.lastFinalState)
	ch <- prometheus.MustNewConstMetric(collector.lastStepCount, prometheus.GaugeValue, float64(s.lastStepCount))
}
