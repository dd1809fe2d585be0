package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/pennant/internal/series"
	"github.com/fortuna/pennant/internal/store"
)

// SeriesRepository handles the series summary table.
type SeriesRepository struct {
	db *store.Database
}

// NewSeriesRepository creates a new series repository.
func NewSeriesRepository(db *store.Database) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// ReplaceSeason swaps in freshly detected series for one season and
// league inside a single transaction.
func (r *SeriesRepository) ReplaceSeason(ctx context.Context, seasonYear, leagueID int, summaries []series.Summary) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning series replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM series_summaries WHERE season_year = $1 AND league_id = $2`,
		seasonYear, leagueID); err != nil {
		return fmt.Errorf("clearing series: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO series_summaries (season_year, league_id, series_id,
			home_team_id, away_team_id, start_date, end_date, num_games,
			home_series_wins, home_series_losses, home_runs_scored,
			home_runs_allowed, home_run_diff, sweep, avoided_sweep, split, decisive)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`)
	if err != nil {
		return fmt.Errorf("preparing series insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range summaries {
		if _, err := stmt.ExecContext(ctx, seasonYear, leagueID, s.SeriesID,
			s.HomeTeamID, s.AwayTeamID, s.StartDate, s.EndDate, s.NumGames,
			s.HomeWins, s.HomeLosses, s.HomeRuns, s.HomeRunsAllowed,
			s.HomeRunDiff, s.Sweep, s.AvoidedSweep, s.Split, s.Decisive); err != nil {
			return fmt.Errorf("inserting series %s: %w", s.SeriesID, err)
		}
	}

	return tx.Commit()
}

// GetSeason returns all series rows for a season in start-date order.
func (r *SeriesRepository) GetSeason(ctx context.Context, seasonYear, leagueID int) ([]*store.SeriesRow, error) {
	query := `
		SELECT id, season_year, league_id, series_id, home_team_id, away_team_id,
			start_date, end_date, num_games, home_series_wins, home_series_losses,
			home_runs_scored, home_runs_allowed, home_run_diff, sweep,
			avoided_sweep, split, decisive, created_at
		FROM series_summaries
		WHERE season_year = $1 AND league_id = $2
		ORDER BY start_date, home_team_id, away_team_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, seasonYear, leagueID)
	if err != nil {
		return nil, fmt.Errorf("querying series: %w", err)
	}
	defer rows.Close()

	var out []*store.SeriesRow
	for rows.Next() {
		row := &store.SeriesRow{}
		err := rows.Scan(
			&row.ID, &row.SeasonYear, &row.LeagueID, &row.SeriesID,
			&row.HomeTeamID, &row.AwayTeamID, &row.StartDate, &row.EndDate,
			&row.NumGames, &row.HomeWins, &row.HomeLosses, &row.HomeRuns,
			&row.HomeRunsAllowed, &row.HomeRunDiff, &row.Sweep,
			&row.AvoidedSweep, &row.Split, &row.Decisive, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning series row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
