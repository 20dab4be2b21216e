package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/pickscore/internal/models"
)

type scoreFlags struct {
	player    string
	stat      string
	line      float64
	direction string
	lookback  int
	role      string
	blowout   string
	season    string
	asJSON    bool
}

var scoreOpts scoreFlags

func init() {
	f := scoreCmd.Flags()
	f.StringVarP(&scoreOpts.player, "player", "p", "", "Player name (partial names and missing accents are fine)")
	f.StringVarP(&scoreOpts.stat, "stat", "s", string(models.StatPoints), "Stat category: "+models.StatCategoryList())
	f.Float64VarP(&scoreOpts.line, "line", "l", 0, "Prop line")
	f.StringVarP(&scoreOpts.direction, "direction", "d", string(models.DirectionMore), "MORE or LESS")
	f.IntVarP(&scoreOpts.lookback, "lookback", "n", 0, "Games averaged, 5-15 (default from config)")
	f.StringVar(&scoreOpts.role, "role", string(models.RoleStarter), "Estrella, Titular normal or Jugador de rol")
	f.StringVar(&scoreOpts.blowout, "blowout", string(models.BlowoutLow), "Blowout risk: Bajo, Medio or Alto")
	f.StringVar(&scoreOpts.season, "season", "", "Season as YYYY-YY (default from config, then the current season)")
	f.BoolVar(&scoreOpts.asJSON, "json", false, "Print the full evaluation as JSON")
	_ = scoreCmd.MarkFlagRequired("player")
	_ = scoreCmd.MarkFlagRequired("line")
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one prop pick",
	Example: `  pickscore score --player "Jokic" --stat Points --line 25.5 --direction MORE
  pickscore score -p "Luka Doncic" -s PRA -l 48.5 -d LESS --role Estrella --blowout Alto`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := scoreOpts.query(cfg.Query.DefaultLookback, cfg.Query.DefaultSeason, time.Now())
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid query: %v\n", err)
			return &exitError{code: exitCodeFor(models.OutcomeInvalidQuery)}
		}
		if !query.Active() {
			fmt.Fprintln(cmd.OutOrStdout(), "Enter a player name and a line above zero to score a pick")
			return &exitError{code: exitCodeFor(models.OutcomeInvalidQuery)}
		}

		p, closeProvider, err := buildPipeline(cmd.Context())
		defer closeProvider()
		if err != nil {
			return err
		}

		eval, evalErr := p.service.Evaluate(cmd.Context(), query)
		if eval == nil {
			return evalErr
		}

		if scoreOpts.asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(eval); err != nil {
				return err
			}
		} else {
			renderEvaluation(cmd.OutOrStdout(), eval, evalErr)
		}

		if code := exitCodeFor(eval.Outcome); code != 0 {
			return &exitError{code: code}
		}
		return nil
	},
}

// query builds a PickQuery from the flags. Enumerations are parsed strictly.
func (f scoreFlags) query(defaultLookback int, defaultSeason string, now time.Time) (models.PickQuery, error) {
	var errs []error

	stat, err := models.ParseStatCategory(f.stat)
	errs = append(errs, err)
	direction, err := models.ParseDirection(f.direction)
	errs = append(errs, err)
	role, err := models.ParseRole(f.role)
	errs = append(errs, err)
	blowout, err := models.ParseBlowoutRisk(f.blowout)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return models.PickQuery{}, err
	}

	lookback := f.lookback
	if lookback == 0 {
		lookback = defaultLookback
	}
	if lookback == 0 {
		lookback = models.DefaultLookback
	}
	season := strings.TrimSpace(f.season)
	if season == "" {
		season = defaultSeason
	}
	if season == "" {
		season = models.SeasonFor(now)
	}

	return models.PickQuery{
		PlayerName: f.player,
		Stat:       stat,
		Line:       f.line,
		Direction:  direction,
		Lookback:   lookback,
		Role:       role,
		Blowout:    blowout,
		Season:     season,
	}, nil
}

// exitCodeFor is zero for outcomes the user can act on as an answer
func exitCodeFor(outcome models.Outcome) int {
	switch outcome {
	case models.OutcomeScored, models.OutcomeNoGameData:
		return 0
	case models.OutcomeInvalidQuery:
		return 2
	case models.OutcomePlayerNotFound:
		return 3
	case models.OutcomeUpstreamUnavailable:
		return 4
	case models.OutcomeMalformedRecord:
		return 5
	default:
		return 1
	}
}

func renderEvaluation(w io.Writer, eval *models.Evaluation, err error) {
	q := eval.Query

	switch eval.Outcome {
	case models.OutcomeScored:
	case models.OutcomeInvalidQuery:
		fmt.Fprintf(w, "Invalid query: %v\n", err)
		return
	case models.OutcomePlayerNotFound:
		fmt.Fprintf(w, "No player matches %q\n", strings.TrimSpace(q.PlayerName))
		return
	case models.OutcomeNoGameData:
		fmt.Fprintf(w, "%s has no games in %s\n", playerName(eval), q.Season)
		return
	case models.OutcomeUpstreamUnavailable:
		fmt.Fprintln(w, "Stats provider is unavailable right now, try again in a moment")
		return
	case models.OutcomeMalformedRecord:
		fmt.Fprintf(w, "Stats provider returned an unreadable game log: %v\n", err)
		return
	default:
		fmt.Fprintf(w, "Evaluation failed: %v\n", err)
		return
	}

	fs := eval.Features
	res := eval.Result

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Player:\t%s\n", playerName(eval))
	fmt.Fprintf(tw, "Pick:\t%s %s %s (%s)\n", q.Stat, q.Direction, round(q.Line, 1), q.Season)
	fmt.Fprintf(tw, "Average:\t%s over last %d games\n", round(fs.AvgN, 1), fs.GamesUsed)
	fmt.Fprintf(tw, "Hits:\t%d of last %d\n", fs.Hits5, fs.HitsWindow)
	minutes := round(fs.EstimatedMinutes, 1)
	if fs.MinutesDefaulted {
		minutes += " (default)"
	}
	fmt.Fprintf(tw, "Minutes:\t%s\n", minutes)
	fmt.Fprintf(tw, "Edge:\t%s\n", signed(fs.Edge))
	fmt.Fprintf(tw, "Score:\t%s\n", round(res.Score, 1))
	fmt.Fprintf(tw, "Probability:\t%s%%\n", round(res.Probability, 2))
	fmt.Fprintf(tw, "Verdict:\t%s\n", res.Label)
	_ = tw.Flush()
}

func playerName(eval *models.Evaluation) string {
	if eval.Player != nil {
		return eval.Player.FullName
	}
	return strings.TrimSpace(eval.Query.PlayerName)
}

func round(v float64, places int32) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func signed(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	d := decimal.NewFromFloat(v).Round(1)
	if d.IsPositive() {
		return "+" + d.StringFixed(1)
	}
	return d.StringFixed(1)
}
