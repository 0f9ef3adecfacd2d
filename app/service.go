// Package app wires configuration, metrics sinks, the event bus and the HTTP
// boundary into a runnable service.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/registrarlab/regsim/api/simulate"
	"github.com/registrarlab/regsim/config"
	"github.com/registrarlab/regsim/core/allocator"
	"github.com/registrarlab/regsim/core/engine"
	coremetrics "github.com/registrarlab/regsim/core/metrics"
	"github.com/registrarlab/regsim/core/scheduler"
	"github.com/registrarlab/regsim/core/workload"
	"github.com/registrarlab/regsim/infra/logger"
	inframetrics "github.com/registrarlab/regsim/infra/metrics"
	"github.com/registrarlab/regsim/internal/eventbus"
)

// Service hosts the simulation API and forwards run results to the
// configured metrics sinks.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.Sink
	bus  *eventbus.Bus[coremetrics.RunResult]
	mux  *http.ServeMux
}

// New builds a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	inframetrics.RegisterBuiltins()
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sinks: %w", err)
	}

	catalog := workload.BuiltinProfiles()
	if cfg.Engine.ScenarioCatalog != "" {
		catalog, err = workload.LoadCatalog(cfg.Engine.ScenarioCatalog)
		if err != nil {
			return nil, fmt.Errorf("scenario catalog: %w", err)
		}
	}

	bus := eventbus.New[coremetrics.RunResult]()
	engines := engineFactory(cfg.Engine.Seed, catalog)
	handler := simulate.NewHandler(engines, bus, logger.New("api"),
		scheduler.Kind(cfg.Engine.Scheduler), allocator.Kind(cfg.Engine.Allocator))

	mux := http.NewServeMux()
	mux.Handle("/api/simulate", handler)
	mux.Handle("/api/health", simulate.NewHealthHandler())

	return &Service{cfg: cfg, log: logg, sink: sink, bus: bus, mux: mux}, nil
}

// engineFactory builds one engine per simulation request. A non-zero seed
// makes every run reproducible; otherwise each engine gets its own
// time-seeded source.
func engineFactory(seed int64, catalog map[workload.Scenario]workload.Profile) simulate.EngineFactory {
	return func(sched scheduler.Kind, alloc allocator.Kind) *engine.Engine {
		opts := []engine.Option{
			engine.WithProfiles(catalog),
			engine.WithLogger(logger.New("engine")),
		}
		if seed != 0 {
			opts = append(opts, engine.WithRand(rand.New(rand.NewSource(seed))))
		}
		return engine.New(sched, alloc, opts...)
	}
}

// Run serves the API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	go s.forwardRunResults()
	if s.cfg.Metrics.PrometheusAddr != "" {
		go func() {
			if err := startPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prometheus server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()

	s.log.Infof("serving simulation API on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// forwardRunResults drains the bus into the metrics sink.
func (s *Service) forwardRunResults() {
	sub := s.bus.Subscribe()
	for res := range sub {
		if err := s.sink.RecordRun(res); err != nil {
			s.log.Errorf("record run %s: %v", res.Report.RunID, err)
		}
	}
}

// Close releases service resources.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}

// Handler exposes the service mux, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.mux
}

// startPromServer exposes /metrics on its own mux so the Prometheus
// endpoint never interferes with the API routes.
func startPromServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
