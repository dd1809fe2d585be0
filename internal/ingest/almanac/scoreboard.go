package almanac

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/pennant/internal/gamelog"
	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/runerr"
)

// ScoreboardParser turns one daily scoreboard page into GameRecord rows.
// Team labels resolve through the league index; rows with labels the
// index does not know are skipped and counted, not guessed at.
type ScoreboardParser struct {
	SeasonYear int
	LeagueID   int
	Teams      *league.Index
}

// ParseDay extracts every completed game from one scoreboard page. The
// page date comes from the caller (it is part of the file name upstream,
// not the markup). Skipped rows land on the summary.
func (p *ScoreboardParser) ParseDay(r io.Reader, date time.Time, summary *runerr.RunSummary) ([]gamelog.GameRecord, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading scoreboard page: %w", err)
	}

	var games []gamelog.GameRecord
	for idx, table := range FindTables(doc, ClassLinescore) {
		game, perr := p.parseLinescore(table, date, idx)
		if perr != nil {
			summary.Record(perr)
			continue
		}
		summary.Record(nil)
		games = append(games, *game)
	}
	return games, nil
}

// parseLinescore reads one away/home linescore table. Row 0 is the
// visiting club, row 1 the home club; the R column holds final runs.
func (p *ScoreboardParser) parseLinescore(table *goquery.Selection, date time.Time, idx int) (*gamelog.GameRecord, *runerr.ParseError) {
	rowID := fmt.Sprintf("%s#%d", date.Format("2006-01-02"), idx)

	headers := headerCells(table)
	runsCol := -1
	for i, h := range headers {
		if h == "R" {
			runsCol = i
			break
		}
	}
	if runsCol < 1 {
		return nil, &runerr.ParseError{Table: "scoreboard", Row: rowID, Reason: "no R column"}
	}

	type side struct {
		teamID int
		runs   int
	}
	var sides []side
	var rowErr *runerr.ParseError
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 || rowErr != nil || i > 2 {
			return
		}
		cells := row.Find("th, td")
		label := strings.TrimSpace(cells.Eq(0).Text())
		team, err := p.Teams.Resolve(label)
		if err != nil {
			rowErr = &runerr.ParseError{Table: "scoreboard", Row: rowID, Reason: err.Error()}
			return
		}
		runs, err := strconv.Atoi(strings.TrimSpace(cells.Eq(runsCol).Text()))
		if err != nil {
			rowErr = &runerr.ParseError{Table: "scoreboard", Row: rowID, Reason: "unparseable runs: " + err.Error()}
			return
		}
		sides = append(sides, side{teamID: team.TeamID, runs: runs})
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(sides) != 2 {
		return nil, &runerr.ParseError{Table: "scoreboard", Row: rowID,
			Reason: fmt.Sprintf("expected 2 linescore rows, got %d", len(sides))}
	}

	away, home := sides[0], sides[1]
	return &gamelog.GameRecord{
		GameID:     fmt.Sprintf("%d_%s_%d", p.SeasonYear, date.Format("0102"), idx),
		SeasonYear: p.SeasonYear,
		LeagueID:   p.LeagueID,
		Date:       date,
		HomeTeamID: home.teamID,
		AwayTeamID: away.teamID,
		HomeRuns:   home.runs,
		AwayRuns:   away.runs,
	}, nil
}
