// Package cli wires the seasonrun command line: file-based season runs
// that can print their outputs or persist them to the warehouse.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/fortuna/pennant/internal/cache"
	"github.com/fortuna/pennant/internal/gamelog"
	"github.com/fortuna/pennant/internal/ingest/almanac"
	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/pipeline"
	"github.com/fortuna/pennant/internal/publisher"
	"github.com/fortuna/pennant/internal/report"
	"github.com/fortuna/pennant/internal/runerr"
	"github.com/fortuna/pennant/internal/schedule"
	"github.com/fortuna/pennant/internal/store"
	"github.com/fortuna/pennant/internal/store/repository"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagSeason    int
	flagLeague    int
	flagTeamsFile string
	flagScoresDir string
	flagGridFile  string
	flagFormat    string
	flagDSN       string
	flagRedisURL  string
	flagMaxSkip   float64
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seasonrun",
		Short: "Mine a season's almanac pages into event tables",
		Long: `Runs the season pipeline over saved almanac HTML: daily scoreboard
pages and the team schedule grid. Outputs the ledger, calendar buckets,
series, and schedule events, either printed or persisted.`,
	}

	cmd.PersistentFlags().IntVar(&flagSeason, "season", 0, "Season year, e.g. 1975 (required)")
	cmd.PersistentFlags().IntVar(&flagLeague, "league", 1, "League ID")
	cmd.PersistentFlags().StringVar(&flagTeamsFile, "teams-file", "", "Path to reference teams JSON (required)")
	cmd.PersistentFlags().StringVar(&flagScoresDir, "scores-dir", "", "Directory of daily scoreboard pages named scores_YYYY-MM-DD.html (required)")
	cmd.PersistentFlags().StringVar(&flagGridFile, "grid-file", "", "Path to the season schedule grid page (required)")
	cmd.PersistentFlags().Float64Var(&flagMaxSkip, "max-skip-fraction", 0.05, "Abort when more than this fraction of rows fail to parse")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.MarkPersistentFlagRequired("season")
	cmd.MarkPersistentFlagRequired("teams-file")
	cmd.MarkPersistentFlagRequired("scores-dir")
	cmd.MarkPersistentFlagRequired("grid-file")

	cmd.AddCommand(newRunCmd(), newBriefCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline and print or persist the four tables",
		RunE:  runRun,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagDSN, "warehouse-dsn", "", "Postgres DSN; when set, results are persisted instead of printed")
	cmd.Flags().StringVar(&flagRedisURL, "redis-url", "", "Redis URL for cache invalidation and run events (optional, with --warehouse-dsn)")
	return cmd
}

func newBriefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brief",
		Short: "Run the pipeline and print the markdown season brief",
		RunE:  runBrief,
	}
}

// runRun is the main pipeline command logic
func runRun(cmd *cobra.Command, args []string) error {
	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	idx, res, err := execute()
	if err != nil {
		return err
	}

	if flagDSN == "" {
		return WriteOutput(os.Stdout, idx, res, format)
	}
	return persist(cmd.Context(), idx, res)
}

// runBrief renders the markdown brief from a fresh file run
func runBrief(cmd *cobra.Command, args []string) error {
	idx, res, err := execute()
	if err != nil {
		return err
	}

	brief := report.Render(report.Input{
		SeasonYear: flagSeason,
		LeagueID:   flagLeague,
		Teams:      idx,
		Buckets:    res.Buckets,
		Series:     res.Series,
		Events:     res.Events,
	})
	fmt.Fprint(os.Stdout, brief)
	return nil
}

// execute loads the almanac inputs and runs the pipeline.
func execute() (*league.Index, *pipeline.Result, error) {
	teams, err := league.LoadTeamsFile(flagTeamsFile)
	if err != nil {
		return nil, nil, err
	}
	idx, err := league.NewIndex(teams)
	if err != nil {
		return nil, nil, fmt.Errorf("building team index: %w", err)
	}

	summary := &runerr.RunSummary{}

	games, err := loadScoreboards(idx, summary)
	if err != nil {
		return nil, nil, err
	}
	cells, err := loadGrid(idx, summary)
	if err != nil {
		return nil, nil, err
	}

	cfg := pipeline.DefaultConfig(flagSeason, flagLeague)
	cfg.MaxSkipFraction = flagMaxSkip

	res, err := pipeline.Run(games, cells, cfg, summary)
	if err != nil {
		return nil, nil, err
	}
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Parsed %d rows, skipped %d\n", summary.RowsSeen, summary.RowsSkipped)
	}
	return idx, res, nil
}

var scoresFilePattern = regexp.MustCompile(`scores_(\d{4}-\d{2}-\d{2})\.html?$`)

// loadScoreboards parses every daily scoreboard page in the scores
// directory. The game date comes from the filename.
func loadScoreboards(idx *league.Index, summary *runerr.RunSummary) ([]gamelog.GameRecord, error) {
	entries, err := os.ReadDir(flagScoresDir)
	if err != nil {
		return nil, fmt.Errorf("reading scores directory: %w", err)
	}

	parser := &almanac.ScoreboardParser{
		SeasonYear: flagSeason,
		LeagueID:   flagLeague,
		Teams:      idx,
	}

	var games []gamelog.GameRecord
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := scoresFilePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		date, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			continue
		}

		path := filepath.Join(flagScoresDir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		dayGames, err := parser.ParseDay(f, date, summary)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		games = append(games, dayGames...)

		if flagVerbose {
			fmt.Fprintf(os.Stderr, "%s: %d games\n", entry.Name(), len(dayGames))
		}
	}
	return games, nil
}

func loadGrid(idx *league.Index, summary *runerr.RunSummary) ([]schedule.Cell, error) {
	f, err := os.Open(flagGridFile)
	if err != nil {
		return nil, fmt.Errorf("opening grid file: %w", err)
	}
	defer f.Close()

	parser := &almanac.GridParser{SeasonYear: flagSeason, Teams: idx}
	cells, err := parser.ParseGrid(f, summary)
	if err != nil {
		return nil, fmt.Errorf("parsing grid file: %w", err)
	}
	return cells, nil
}

// persist writes the run into the warehouse the same way the service
// does, including cache invalidation and the run-completed event. The
// reference teams go in first so the read API can resolve IDs to names.
func persist(ctx context.Context, idx *league.Index, res *pipeline.Result) error {
	db, err := store.NewDatabase(flagDSN)
	if err != nil {
		return fmt.Errorf("connecting to warehouse: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	teamRepo := repository.NewTeamRepository(db)
	for _, team := range idx.Teams() {
		if err := teamRepo.Upsert(ctx, team); err != nil {
			return fmt.Errorf("upserting team %d: %w", team.TeamID, err)
		}
	}

	var briefCache *cache.RedisCache
	var pub *publisher.RunPublisher
	if flagRedisURL != "" {
		if briefCache, err = cache.NewRedisCache(flagRedisURL); err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer briefCache.Close()
		if pub, err = publisher.NewRunPublisher(flagRedisURL); err != nil {
			return fmt.Errorf("creating run publisher: %w", err)
		}
		defer pub.Close()
	}

	cfg := pipeline.DefaultConfig(flagSeason, flagLeague)
	cfg.MaxSkipFraction = flagMaxSkip
	if err := pipeline.NewPersister(db, briefCache, pub).Persist(ctx, cfg, res); err != nil {
		return err
	}

	fmt.Printf("Persisted season %d league %d: %d ledger rows, %d series\n",
		flagSeason, flagLeague, len(res.Ledger), len(res.Series))
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
