package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/pennant/internal/calendar"
	"github.com/fortuna/pennant/internal/store"
)

// BucketRepository handles the calendar bucket table.
type BucketRepository struct {
	db *store.Database
}

// NewBucketRepository creates a new bucket repository.
func NewBucketRepository(db *store.Database) *BucketRepository {
	return &BucketRepository{db: db}
}

// ReplaceSeason swaps in a freshly computed bucket set for one season
// and league inside a single transaction.
func (r *BucketRepository) ReplaceSeason(ctx context.Context, seasonYear, leagueID int, set *calendar.BucketSet) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning bucket replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM calendar_buckets WHERE season_year = $1 AND league_id = $2`,
		seasonYear, leagueID); err != nil {
		return fmt.Errorf("clearing buckets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO calendar_buckets (season_year, league_id, team_id, bucket_kind,
			bucket_label, week_index, games, wins, losses, ties, runs_for,
			runs_against, run_diff, win_pct, season_win_pct, season_run_diff,
			win_pct_delta_vs_season, run_diff_delta_vs_season)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`)
	if err != nil {
		return fmt.Errorf("preparing bucket insert: %w", err)
	}
	defer stmt.Close()

	for _, group := range [][]calendar.Bucket{set.Monthly, set.Weekly, set.Halves} {
		for _, b := range group {
			winPct := nullFloat(b.WinPct)
			winPctDelta := nullFloat(b.WinPctDeltaVsSeason)
			if _, err := stmt.ExecContext(ctx, seasonYear, leagueID, b.TeamID,
				string(b.Kind), b.Label, b.WeekIndex, b.Games, b.Wins, b.Losses,
				b.Ties, b.RunsFor, b.RunsAgainst, b.RunDiff, winPct,
				b.SeasonWinPct, b.SeasonRunDiff, winPctDelta,
				b.RunDiffDeltaVsSeason); err != nil {
				return fmt.Errorf("inserting bucket %d/%s/%s: %w", b.TeamID, b.Kind, b.Label, err)
			}
		}
	}

	return tx.Commit()
}

// GetSeason returns all bucket rows of one kind for a season, ordered by
// team then label.
func (r *BucketRepository) GetSeason(ctx context.Context, seasonYear, leagueID int, kind calendar.Kind) ([]*store.BucketRow, error) {
	query := `
		SELECT id, season_year, league_id, team_id, bucket_kind, bucket_label,
			week_index, games, wins, losses, ties, runs_for, runs_against,
			run_diff, win_pct, season_win_pct, season_run_diff,
			win_pct_delta_vs_season, run_diff_delta_vs_season, created_at
		FROM calendar_buckets
		WHERE season_year = $1 AND league_id = $2 AND bucket_kind = $3
		ORDER BY team_id, week_index, bucket_label
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear, leagueID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("querying buckets: %w", err)
	}
	defer rows.Close()

	var out []*store.BucketRow
	for rows.Next() {
		row := &store.BucketRow{}
		err := rows.Scan(
			&row.ID, &row.SeasonYear, &row.LeagueID, &row.TeamID, &row.BucketKind,
			&row.BucketLabel, &row.WeekIndex, &row.Games, &row.Wins, &row.Losses,
			&row.Ties, &row.RunsFor, &row.RunsAgainst, &row.RunDiff, &row.WinPct,
			&row.SeasonWinPct, &row.SeasonRunDiff, &row.WinPctDeltaVsSeason,
			&row.RunDiffDeltaVsSeason, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning bucket row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
