package sweep

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/exp/slices"
)

var ErrEmptyGrid = errors.New("gain grid must contain at least one value per gain")

// Grid lists the gain values to combine, every combination of
// Kp x Ki x Kd is simulated once.
type Grid struct {
	Kp []float64
	Ki []float64
	Kd []float64
}

func (g Grid) Size() int {
	return len(g.Kp) * len(g.Ki) * len(g.Kd)
}

type Result struct {
	Label   string            `json:"label"`
	Config  pid.Configuration `json:"config"`
	Summary analysis.Summary  `json:"summary"`
}

// Label identifies a gain combination
func Label(config pid.Configuration) string {
	return strings.Join([]string{
		"kp=" + formatGain(config.Kp),
		"ki=" + formatGain(config.Ki),
		"kd=" + formatGain(config.Kd),
	}, " ")
}

func formatGain(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// Run simulates every gain combination of grid on top of base using at most
// workers concurrent simulations and returns the results ranked best first.
func Run(ctx context.Context, base pid.Configuration, grid Grid, workers int, options analysis.Options) ([]Result, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if grid.Size() == 0 {
		return nil, ErrEmptyGrid
	}
	if workers < 1 {
		workers = 1
	}

	results := cmap.New[Result]()
	jobs := make(chan pid.Configuration)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for config := range jobs {
				trace, err := pid.Simulate(config)
				if err != nil {
					ui.Warning("Skipping %s: %v", Label(config), err)
					continue
				}
				result := Result{
					Label:   Label(config),
					Config:  config,
					Summary: analysis.Summarize(config, trace, options),
				}
				results.Set(result.Label, result)
			}
		}()
	}

	dispatch(ctx, base, grid, jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranked := results.Items()
	out := make([]Result, 0, len(ranked))
	for _, result := range ranked {
		out = append(out, result)
	}
	slices.SortFunc(out, compare)
	return out, nil
}

func dispatch(ctx context.Context, base pid.Configuration, grid Grid, jobs chan<- pid.Configuration) {
	defer close(jobs)
	for _, kp := range grid.Kp {
		for _, ki := range grid.Ki {
			for _, kd := range grid.Kd {
				config := base
				config.Kp = kp
				config.Ki = ki
				config.Kd = kd
				select {
				case <-ctx.Done():
					return
				case jobs <- config:
				}
			}
		}
	}
}

// compare orders settled runs by settling time, then all remaining runs by
// the magnitude of their final error, with diverged runs last.
func compare(a, b Result) int {
	if a.Summary.Settled() != b.Summary.Settled() {
		if a.Summary.Settled() {
			return -1
		}
		return 1
	}
	if a.Summary.Settled() && a.Summary.SettledAt != b.Summary.SettledAt {
		return a.Summary.SettledAt - b.Summary.SettledAt
	}

	ea, eb := finalErrorMagnitude(a), finalErrorMagnitude(b)
	switch {
	case ea < eb:
		return -1
	case ea > eb:
		return 1
	}
	return strings.Compare(a.Label, b.Label)
}

func finalErrorMagnitude(result Result) float64 {
	value := math.Abs(result.Summary.FinalError)
	if result.Summary.Diverged || math.IsNaN(value) {
		return math.Inf(1)
	}
	return value
}
