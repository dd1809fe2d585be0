package almanac

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/runerr"
	"github.com/fortuna/pennant/internal/schedule"
)

// GridParser turns the season schedule-grid page into played cells: one
// row per team, one column per calendar date, cells like "@ATL W 5-3".
type GridParser struct {
	SeasonYear int
	Teams      *league.Index
}

// gridCell matches "W 5-3", "L 2-10" result fragments (en dash tolerated).
var gridResult = regexp.MustCompile(`([WLT])\s*(\d+)[-–](\d+)`)

// gridOpponent matches the leading opponent abbreviation, "@" for road games.
var gridOpponent = regexp.MustCompile(`^(@?)([A-Z]{2,3})`)

// ParseGrid extracts the full team-by-date grid. Teams whose row label
// cannot be resolved are skipped and counted; unparseable date headers
// fail the whole page since every cell under them would be lost.
func (p *GridParser) ParseGrid(r io.Reader, summary *runerr.RunSummary) ([]schedule.Cell, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading schedule grid page: %w", err)
	}
	table, err := FindTable(doc, ClassScheduleGrid)
	if err != nil {
		return nil, err
	}

	headers := headerCells(table)
	dates := make([]time.Time, len(headers))
	for i, h := range headers[1:] {
		d, err := parseGridDate(h, p.SeasonYear)
		if err != nil {
			return nil, fmt.Errorf("schedule grid column %d: %w", i+1, err)
		}
		dates[i+1] = d
	}

	var cells []schedule.Cell
	table.Find("tr").Each(func(rowIdx int, row *goquery.Selection) {
		if rowIdx == 0 {
			return
		}
		rowCells := row.Find("th, td")
		label := strings.TrimSpace(rowCells.Eq(0).Text())
		team, err := p.Teams.Resolve(label)
		if err != nil {
			summary.Record(&runerr.ParseError{Table: "schedule_grid", Row: label, Reason: err.Error()})
			return
		}
		summary.Record(nil)

		rowCells.Each(func(colIdx int, cell *goquery.Selection) {
			if colIdx == 0 || colIdx >= len(dates) {
				return
			}
			cells = append(cells, p.parseCell(cell.Text(), team.TeamID, dates[colIdx]))
		})
	})
	return cells, nil
}

// parseCell reads one grid cell. Blank cells are idle days; anything with
// an opponent abbreviation counts as played even when the result fragment
// is missing (the grid sometimes omits scores for completed games).
func (p *GridParser) parseCell(raw string, teamID int, date time.Time) schedule.Cell {
	text := strings.TrimSpace(raw)
	cell := schedule.Cell{TeamID: teamID, Date: date}
	if text == "" || strings.EqualFold(text, "off") {
		return cell
	}

	if m := gridOpponent.FindStringSubmatch(text); m != nil {
		cell.Played = true
		home := m[1] != "@"
		cell.HomeGame = &home
		if opp, err := p.Teams.Resolve(m[2]); err == nil {
			oppID := opp.TeamID
			cell.OpponentID = &oppID
		}
		return cell
	}
	if gridResult.MatchString(text) {
		cell.Played = true
	}
	return cell
}

// parseGridDate reads grid column headers: "Apr 1", "4/1", or "04-01".
func parseGridDate(label string, seasonYear int) (time.Time, error) {
	label = strings.TrimSpace(label)
	for _, layout := range []string{"Jan 2", "Jan. 2", "1/2", "01-02"} {
		if d, err := time.Parse(layout, label); err == nil {
			return time.Date(seasonYear, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date header %q", label)
}
