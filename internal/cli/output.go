package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/pipeline"
)

// OutputFormat is the CLI output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// jsonResult is the stable shape of `seasonrun run --format json`.
type jsonResult struct {
	SeasonYear  int              `json:"season_year"`
	LeagueID    int              `json:"league_id"`
	GeneratedAt time.Time        `json:"generated_at"`
	Result      *pipeline.Result `json:"result"`
}

// WriteOutput writes the run result in the requested format
func WriteOutput(w io.Writer, idx *league.Index, res *pipeline.Result, format OutputFormat) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonResult{
			SeasonYear:  flagSeason,
			LeagueID:    flagLeague,
			GeneratedAt: time.Now().UTC(),
			Result:      res,
		})
	}

	fmt.Fprintf(w, "Season %d, league %d\n", flagSeason, flagLeague)
	fmt.Fprintf(w, "  Ledger entries: %d\n", len(res.Ledger))
	fmt.Fprintf(w, "  Buckets: %d monthly, %d weekly, %d halves\n",
		len(res.Buckets.Monthly), len(res.Buckets.Weekly), len(res.Buckets.Halves))
	fmt.Fprintf(w, "  Series: %d\n", len(res.Series))

	ev := res.Events
	fmt.Fprintf(w, "  Opening day: %s\n", ev.OpeningDay.Format("2006-01-02"))
	fmt.Fprintf(w, "  Final day:   %s\n", ev.FinalDay.Format("2006-01-02"))
	if ev.AllStar != nil {
		fmt.Fprintf(w, "  All-Star game: %s\n", ev.AllStar.Game.Format("2006-01-02"))
	}
	for _, span := range ev.PlayoffSpans {
		fmt.Fprintf(w, "  Playoffs %s: %s to %s\n", span.Round,
			span.Start.Format("2006-01-02"), span.End.Format("2006-01-02"))
	}
	for _, s := range ev.BrutalStretches {
		name := fmt.Sprintf("team %d", s.TeamID)
		if t, ok := idx.ByID(s.TeamID); ok {
			name = t.FullName()
		}
		fmt.Fprintf(w, "  Stretch: %s, %d games in %d days from %s\n",
			name, s.Games, s.WindowDays, s.StartDate.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "  Rows seen %d, skipped %d\n", res.Summary.RowsSeen, res.Summary.RowsSkipped)
	return nil
}
