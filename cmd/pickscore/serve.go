package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickscore/internal/api"
	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/health"
	"github.com/yourusername/pickscore/internal/metrics"
	"github.com/yourusername/pickscore/internal/scheduler"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scoring API, health server and registry refresh job",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func runServer(ctx context.Context) error {
	p, closeProvider, err := buildPipeline(ctx)
	defer closeProvider()
	if err != nil {
		return err
	}

	checks := map[string]health.Pinger{}
	if pinger, ok := p.provider.(datasource.Pinger); ok {
		checks["provider"] = pinger
	}
	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Health.Port),
		Logger:      log,
		Checks:      checks,
	}
	if cfg.Metrics.Enabled {
		healthCfg.MetricsPath = cfg.Metrics.Path
		healthCfg.MetricsHandler = metrics.Handler()
	}
	healthServer := health.NewServer(healthCfg)
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.NewScheduler(log)
		if err := sched.ScheduleRegistryRefresh(cfg.Scheduler.RegistryRefresh, p.resolver); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		// Warm the registry so the first fallback lookup is served from cache
		go func() {
			if n, err := p.resolver.RefreshRegistry(ctx); err != nil {
				log.WithError(err).Warn("Initial player registry load failed")
			} else {
				log.WithField("players", n).Info("Player registry loaded")
			}
		}()
	}

	handler := api.NewHandler(p.service, p.resolver, api.Defaults{
		Lookback: cfg.Query.DefaultLookback,
		Season:   cfg.Query.DefaultSeason,
	}, log)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      api.NewRouter(handler, cfg.Server.AllowedOrigins, log),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("API server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	healthServer.SetReady(true)

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			healthServer.SetReady(false)
			return fmt.Errorf("api server failed: %w", err)
		}
	}

	healthServer.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	log.Info("API server stopped")
	return nil
}
