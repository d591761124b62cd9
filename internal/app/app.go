// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/internal/ctxlog"
	"github.com/katalvlaran/gridpath/internal/scenario"
	"github.com/katalvlaran/gridpath/session"
)

// App is one configured gridpath run.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	registry *prometheus.Registry
	metrics  *session.Metrics
}

// NewApp returns an App that renders to outW and logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	logger.Debug("Logger configured.", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		registry: reg,
		metrics:  session.NewMetrics(reg),
	}
}

// Run loads the grid, searches it and prints the outcome.
// A cancelled animation is reported, not returned as an error.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "mode", a.cfg.Mode)

	sc, err := a.loadScenario(ctx)
	if err != nil {
		return err
	}
	g, err := sc.Build()
	if err != nil {
		return fmt.Errorf("failed to build grid: %w", err)
	}

	if a.cfg.MetricsAddr != "" {
		stop := a.startMetricsServer(a.cfg.MetricsAddr)
		defer stop()
	}

	opts := []session.Option{
		session.WithLogger(a.logger),
		session.WithMetrics(a.metrics),
	}
	if a.cfg.Mode == ModeAnimate {
		r := newRenderer(a.outW)
		opts = append(opts, session.WithInterval(a.cfg.Interval), session.WithObserver(r.frame))
	} else {
		opts = append(opts, session.WithInterval(0))
	}
	s, err := session.New(g, opts...)
	if err != nil {
		return err
	}

	if err := s.ApplyContext(ctx, session.BeginSearch()); err != nil {
		return fmt.Errorf("failed to start search: %w", err)
	}
	a.logger.Info("Search started.", "size", sc.Size, "start", sc.Start.String(), "goal", sc.Goal.String())

	err = s.Run(ctx, nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("search failed: %w", err)
	}

	a.report(s)
	a.logger.Debug("App.Run finished.")
	return nil
}

func (a *App) loadScenario(ctx context.Context) (*scenario.Scenario, error) {
	if a.cfg.ScenarioPath == "" {
		return scenario.Default(a.cfg.Size), nil
	}
	sc, err := scenario.Load(ctx, a.cfg.ScenarioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}
	return sc, nil
}

// report prints the final grid and a one-line summary.
func (a *App) report(s *session.Session) {
	fmt.Fprintln(a.outW, s.Snapshot())
	st := s.Stats()
	switch s.EngineState() {
	case astar.Succeeded:
		path, _ := s.CurrentPath()
		fmt.Fprintf(a.outW, "path length: %d (expanded %d cells)\n", len(path)-1, st.Expanded)
	case astar.Failed:
		fmt.Fprintf(a.outW, "no path (expanded %d cells)\n", st.Expanded)
	case astar.Cancelled:
		fmt.Fprintf(a.outW, "cancelled after %d steps\n", st.Steps)
	}
}
