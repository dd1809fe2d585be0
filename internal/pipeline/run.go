// Package pipeline sequences one season run: normalize the game log,
// aggregate calendar buckets, detect series, and mine schedule events.
// Every stage is a pure function of its inputs; persistence happens only
// after the whole run has succeeded, so a failed run writes nothing.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/pennant/internal/cache"
	"github.com/fortuna/pennant/internal/calendar"
	"github.com/fortuna/pennant/internal/gamelog"
	"github.com/fortuna/pennant/internal/publisher"
	"github.com/fortuna/pennant/internal/runerr"
	"github.com/fortuna/pennant/internal/schedule"
	"github.com/fortuna/pennant/internal/series"
	"github.com/fortuna/pennant/internal/store"
	"github.com/fortuna/pennant/internal/store/repository"
)

// Config is the full configuration surface of one season run. Values,
// not files: the binaries resolve flags and environment before this
// struct is built.
type Config struct {
	SeasonYear int
	LeagueID   int

	Series   series.Config
	Schedule schedule.Config

	// MaxSkipFraction is the parse-failure budget across all inputs.
	MaxSkipFraction float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig(seasonYear, leagueID int) Config {
	return Config{
		SeasonYear:      seasonYear,
		LeagueID:        leagueID,
		Series:          series.DefaultConfig(),
		Schedule:        schedule.DefaultConfig(),
		MaxSkipFraction: 0.05,
	}
}

// Result bundles the four output tables of one run.
type Result struct {
	Ledger  []gamelog.TeamGameEntry
	Buckets *calendar.BucketSet
	Series  []series.Summary
	Events  *schedule.EventSet
	Summary *runerr.RunSummary
}

// Run executes the compute stages over already-extracted inputs. Fatal
// errors abort immediately; parse skips recorded on summary count
// against the configured budget.
func Run(games []gamelog.GameRecord, cells []schedule.Cell, cfg Config, summary *runerr.RunSummary) (*Result, error) {
	if summary == nil {
		summary = &runerr.RunSummary{}
	}
	if len(games) == 0 {
		return nil, &runerr.MissingInputError{Table: "game_records"}
	}

	if err := summary.CheckBudget(cfg.MaxSkipFraction); err != nil {
		return nil, err
	}

	ledger, err := gamelog.Normalize(games)
	if err != nil {
		return nil, fmt.Errorf("normalizing game log: %w", err)
	}
	log.Printf("Normalized %d games into %d ledger entries", len(games), len(ledger))

	baselines := calendar.BuildBaselines(ledger)
	buckets, err := calendar.Aggregate(ledger, baselines)
	if err != nil {
		return nil, fmt.Errorf("aggregating calendar buckets: %w", err)
	}
	log.Printf("Built %d monthly, %d weekly, %d half buckets",
		len(buckets.Monthly), len(buckets.Weekly), len(buckets.Halves))

	detected := series.Detect(games, cfg.Series)
	log.Printf("Detected %d series", len(detected))

	events, err := schedule.Detect(schedule.NewGrid(cells), cfg.Schedule)
	if err != nil {
		return nil, fmt.Errorf("detecting schedule events: %w", err)
	}
	log.Printf("Schedule events: opening %s, final %s, %d playoff spans, all-star detected=%v",
		events.OpeningDay.Format("2006-01-02"), events.FinalDay.Format("2006-01-02"),
		len(events.PlayoffSpans), events.AllStar != nil)

	return &Result{
		Ledger:  ledger,
		Buckets: buckets,
		Series:  detected,
		Events:  events,
		Summary: summary,
	}, nil
}

// Persister writes one run's outputs to the warehouse and notifies
// downstream consumers. Cache and publisher are optional.
type Persister struct {
	ledgerRepo *repository.LedgerRepository
	bucketRepo *repository.BucketRepository
	seriesRepo *repository.SeriesRepository
	eventRepo  *repository.EventRepository
	cache      *cache.RedisCache
	pub        *publisher.RunPublisher
}

// NewPersister creates a persister over the warehouse. cache and pub may
// be nil when the run is file-only.
func NewPersister(db *store.Database, c *cache.RedisCache, p *publisher.RunPublisher) *Persister {
	return &Persister{
		ledgerRepo: repository.NewLedgerRepository(db),
		bucketRepo: repository.NewBucketRepository(db),
		seriesRepo: repository.NewSeriesRepository(db),
		eventRepo:  repository.NewEventRepository(db),
		cache:      c,
		pub:        p,
	}
}

// Persist writes all four tables, records the run summary, invalidates
// the cached brief, and publishes the run-completed event.
func (p *Persister) Persist(ctx context.Context, cfg Config, res *Result) error {
	if err := p.ledgerRepo.ReplaceSeason(ctx, cfg.SeasonYear, cfg.LeagueID, res.Ledger); err != nil {
		return err
	}
	if err := p.bucketRepo.ReplaceSeason(ctx, cfg.SeasonYear, cfg.LeagueID, res.Buckets); err != nil {
		return err
	}
	if err := p.seriesRepo.ReplaceSeason(ctx, cfg.SeasonYear, cfg.LeagueID, res.Series); err != nil {
		return err
	}
	if err := p.eventRepo.ReplaceSeason(ctx, cfg.SeasonYear, cfg.LeagueID, res.Events); err != nil {
		return err
	}
	if err := p.eventRepo.RecordRunSummary(ctx, cfg.SeasonYear, cfg.LeagueID, res.Summary); err != nil {
		return err
	}

	if p.cache != nil {
		if err := p.cache.InvalidateBrief(ctx, cfg.SeasonYear, cfg.LeagueID); err != nil {
			log.Printf("⚠️  Brief cache invalidation failed: %v (continuing)", err)
		}
	}
	if p.pub != nil {
		bucketRows := len(res.Buckets.Monthly) + len(res.Buckets.Weekly) + len(res.Buckets.Halves)
		event := publisher.RunCompleted{
			SeasonYear:  cfg.SeasonYear,
			LeagueID:    cfg.LeagueID,
			LedgerRows:  len(res.Ledger),
			BucketRows:  bucketRows,
			SeriesRows:  len(res.Series),
			RowsSkipped: res.Summary.RowsSkipped,
			FinishedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := p.pub.PublishRunCompleted(ctx, event); err != nil {
			log.Printf("⚠️  Run-completed publish failed: %v (continuing)", err)
		}
	}
	return nil
}
