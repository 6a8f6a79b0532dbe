package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/statistics"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "

	metricsSubsystem = "api"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

type Options struct {
	// Store persists every simulated run, may be nil
	Store      persistence.Persistence
	Statistics *statistics.SimulationStatistics
	Analysis   analysis.Options
	// Registerer for request metrics, defaults to the prometheus default registerer
	Registerer prometheus.Registerer
}

type service struct {
	store      persistence.Persistence
	statistics *statistics.SimulationStatistics
	analysis   analysis.Options

	// runs simulated by this process
	runs cmap.ConcurrentMap[string, persistence.Run]
}

func CreateRestService(options Options) *echo.Echo {
	echoRest := newWebserver()

	registerer := options.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "pid2go",
		Subsystem:  metricsSubsystem,
		Registerer: registerer,
	}))

	s := &service{
		store:      options.Store,
		statistics: options.Statistics,
		analysis:   options.Analysis,
		runs:       cmap.New[persistence.Run](),
	}
	if s.statistics == nil {
		s.statistics = &statistics.SimulationStatistics{}
	}

	echoRest.GET("/alive/", isAlive)

	s.registerSimulationEndpoints(echoRest)
	s.registerRunEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}

// return a "bad request" message
func returnBadRequest(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusBadRequest, &Result{
		Name:    "Bad Request",
		Message: e.Error(),
	}, indentationChar)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}
