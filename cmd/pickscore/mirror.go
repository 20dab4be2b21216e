package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickscore/internal/database"
	"github.com/yourusername/pickscore/internal/datasource"
	"github.com/yourusername/pickscore/internal/models"
	"github.com/yourusername/pickscore/internal/repository"
	"github.com/yourusername/pickscore/internal/resolver"
	"github.com/yourusername/pickscore/internal/service"
)

var (
	mirrorSeason   string
	mirrorRegistry bool
	mirrorPlayers  []string
)

func init() {
	mirrorCmd.Flags().StringVar(&mirrorSeason, "season", "", "Season to mirror, e.g. 2025-26 (default: current season)")
	mirrorCmd.Flags().BoolVar(&mirrorRegistry, "registry", false, "Mirror the full player registry")
	mirrorCmd.Flags().StringArrayVar(&mirrorPlayers, "player", nil, "Player whose game log to mirror (repeatable)")
}

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Copy players and game logs from the HTTP provider into Postgres",
	Long:  `Fills the Postgres mirror used by provider.type=postgres. The HTTP provider settings are used as the source regardless of provider.type.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !mirrorRegistry && len(mirrorPlayers) == 0 {
			return fmt.Errorf("nothing to mirror: pass --registry and/or --player")
		}
		season := mirrorSeason
		if season == "" {
			season = models.SeasonFor(time.Now())
		}

		ctx := cmd.Context()
		source, closeSource := datasource.NewFactory(cfg, log).NewHTTPProvider()
		defer closeSource()

		db, err := database.NewDB(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			return err
		}

		repos, err := repository.NewRepositories(db)
		if err != nil {
			return err
		}
		mirror := service.NewMirrorService(source, repos, log)
		out := cmd.OutOrStdout()

		if mirrorRegistry {
			n, err := mirror.SyncRegistry(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "registry\t%d players\n", n)
		}

		res := resolver.New(source, cfg.PlayerCacheTTL(), log)
		var firstErr error
		for _, name := range mirrorPlayers {
			player, err := res.Resolve(ctx, strings.TrimSpace(name))
			if err == nil {
				var n int
				n, err = mirror.SyncGameLog(ctx, player, season)
				if err == nil {
					fmt.Fprintf(out, "%s\t%s\t%d games\n", player.FullName, season, n)
					continue
				}
			}
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(out, "%s\t%s\terror: %v\n", name, season, err)
		}

		if firstErr != nil {
			return &exitError{code: max(exitCodeFor(models.ClassifyError(firstErr)), 1)}
		}
		return nil
	},
}
