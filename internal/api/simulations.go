package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
)

type SimulationResponse struct {
	Run     persistence.Run  `json:"run"`
	Summary analysis.Summary `json:"summary"`
}

func (s *service) registerSimulationEndpoints(rest *echo.Echo) {
	group := rest.Group("/simulation")

	group.POST("/", s.createSimulation)
}

func (s *service) createSimulation(c echo.Context) error {
	var config pid.Configuration
	if err := c.Bind(&config); err != nil {
		return returnBadRequest(c, errors.New("request body must be a simulation configuration"))
	}
	if config.StepCount > configuration.MaxStepCount {
		return returnBadRequest(c, fmt.Errorf("stepCount must be at most %d, got %d", configuration.MaxStepCount, config.StepCount))
	}

	trace, err := pid.Simulate(config)
	s.statistics.Record(trace, err)
	if err != nil {
		var configErr *pid.ConfigurationError
		if errors.As(err, &configErr) {
			return returnBadRequest(c, err)
		}
		return returnError(c, err)
	}

	summary := analysis.Summarize(config, trace, s.analysis)
	if !trace.Finite() {
		return c.JSONPretty(http.StatusOK, newDivergedResponse(config, trace, summary), indentationChar)
	}

	run := persistence.NewRun(config, trace)
	if s.store != nil {
		if err := s.store.SaveRun(run); err != nil {
			ui.Warning("Unable to persist run %s: %v", run.ID, err)
			return returnError(c, err)
		}
	}
	s.runs.Set(run.ID, run)

	return c.JSONPretty(http.StatusOK, &SimulationResponse{
		Run:     run,
		Summary: summary,
	}, indentationChar)
}
