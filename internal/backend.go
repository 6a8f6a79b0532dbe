package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/pid2go/internal/analysis"
	"github.com/markusressel/pid2go/internal/api"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/persistence"
	"github.com/markusressel/pid2go/internal/statistics"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunServer serves the REST API and, if enabled, the prometheus metrics
// endpoint until the process receives SIGINT or SIGTERM.
func RunServer() {
	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence at %s: %v", config.DbPath, err)
	}

	simulationStatistics := &statistics.SimulationStatistics{}

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		statistics.Register(statistics.NewSimulationCollector(simulationStatistics))

		server := newStatisticsServer(config.Statistics.Port)
		g.Add(func() error {
			ui.Info("Serving metrics on %s/metrics", server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				return err
			}
			return nil
		}, func(err error) {
			if err := shutdown(server.Shutdown, config.Api.Timeout); err != nil {
				ui.Warning("Error stopping statistics server: " + err.Error())
			} else {
				ui.Info("Statistics server stopped.")
			}
		})
	}
	if config.Api.Enabled {
		// === REST API
		rest := api.CreateRestService(api.Options{
			Store:      pers,
			Statistics: simulationStatistics,
			Analysis: analysis.Options{
				Tolerance: config.Analysis.Tolerance,
				Window:    config.Analysis.Window,
			},
		})
		address := listenAddress(config.Api.Host, config.Api.Port)

		g.Add(func() error {
			ui.Info("Serving REST API on %s", address)
			if err := rest.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			if err := shutdown(rest.Shutdown, config.Api.Timeout); err != nil {
				ui.Warning("Error stopping REST API: %v", err)
			} else {
				ui.Info("REST API stopped.")
			}
		})
	}
	if !config.Api.Enabled && !config.Statistics.Enabled {
		ui.Fatal("Neither the REST API nor statistics are enabled, nothing to serve.")
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		stop := make(chan struct{})

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-stop:
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			close(stop)
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

func newStatisticsServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              listenAddress("", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func listenAddress(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}

func shutdown(fn func(ctx context.Context) error, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx)
}
