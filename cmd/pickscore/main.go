// Package main provides the pickscore command line front end and API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pickscore/internal/config"
	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/features"
	"github.com/yourusername/pickscore/internal/gamelog"
	"github.com/yourusername/pickscore/internal/logger"
	"github.com/yourusername/pickscore/internal/metrics"
	"github.com/yourusername/pickscore/internal/resolver"
	"github.com/yourusername/pickscore/internal/scoring"
	"github.com/yourusername/pickscore/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(scoreCmd, resolveCmd, serveCmd, mirrorCmd)
}

var rootCmd = &cobra.Command{
	Use:           "pickscore",
	Short:         "Score player prop picks from recent game logs",
	Long:          `Resolves a player, fetches their recent game log and turns it into a 0-100 confidence score, probability and label for a prop line.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		// Stdout belongs to command output
		log.SetOutput(os.Stderr)
		metrics.InitRegistry()
		return nil
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.LoadSecretsFromAWS(ctx, cfg); err != nil {
		return err
	}
	return config.Validate(cfg)
}

// pipeline holds the wired core components for one process
type pipeline struct {
	provider datasource.Provider
	resolver *resolver.Resolver
	fetcher  *gamelog.Fetcher
	service  *service.PickService
}

// buildPipeline wires provider, caches and scoring. The returned closer is never nil.
func buildPipeline(ctx context.Context) (*pipeline, func(), error) {
	provider, closeProvider, err := datasource.NewFactory(cfg, log).NewProvider(ctx)
	if err != nil {
		return nil, closeProvider, fmt.Errorf("failed to create provider: %w", err)
	}

	res := resolver.New(provider, cfg.PlayerCacheTTL(), log)
	fetcher := gamelog.NewFetcher(provider, cfg.GameLogCacheTTL(), cfg.FetchTimeout(), log)
	svc := service.NewPickService(res, fetcher, features.NewExtractor(), scoring.NewEngine(), log)

	return &pipeline{
		provider: provider,
		resolver: res,
		fetcher:  fetcher,
		service:  svc,
	}, closeProvider, nil
}

// exitError carries a process exit code without printing anything further
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
