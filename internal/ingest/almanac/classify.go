// Package almanac extracts tabular data out of the league almanac's
// static HTML pages: daily scoreboard pages and the season schedule
// grid. Table selection is an explicit, testable rule here at the edge;
// nothing downstream ever scores or guesses tables.
package almanac

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableClass labels what a table on an almanac page holds.
type TableClass string

const (
	// ClassLinescore is a two-row away/home linescore with R/H/E columns.
	ClassLinescore TableClass = "linescore"
	// ClassScheduleGrid is the team-by-date grid: one row per team, one
	// column per calendar date.
	ClassScheduleGrid TableClass = "schedule_grid"
	// ClassOther is any table the extractor does not consume.
	ClassOther TableClass = "other"
)

// Classify inspects a single table and names it. The rules are fixed:
// a linescore has R, H, and E header cells and exactly two data rows;
// a schedule grid has at least eight rows and a leading non-date label
// column followed by three or more date columns.
func Classify(table *goquery.Selection) TableClass {
	headers := headerCells(table)
	rows := table.Find("tr").Length()

	if hasAll(headers, "R", "H", "E") && dataRows(table) == 2 {
		return ClassLinescore
	}
	if rows >= 8 && len(headers) >= 4 {
		dateCols := 0
		for _, h := range headers[1:] {
			if looksLikeDate(h) {
				dateCols++
			}
		}
		if dateCols >= 3 {
			return ClassScheduleGrid
		}
	}
	return ClassOther
}

// FindTable returns the first table of the wanted class on the page. The
// failure enumerates what was actually found so a layout change on the
// upstream site surfaces immediately.
func FindTable(doc *goquery.Document, want TableClass) (*goquery.Selection, error) {
	var found *goquery.Selection
	var seen []string
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		class := Classify(table)
		seen = append(seen, string(class))
		if class == want {
			found = table
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("no %s table on page (saw %d tables: %s)",
			want, len(seen), strings.Join(seen, ", "))
	}
	return found, nil
}

// FindTables returns every table of the wanted class, in page order.
func FindTables(doc *goquery.Document, want TableClass) []*goquery.Selection {
	var out []*goquery.Selection
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		if Classify(table) == want {
			out = append(out, table)
		}
	})
	return out
}

func headerCells(table *goquery.Selection) []string {
	var headers []string
	row := table.Find("tr").First()
	row.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(cell.Text()))
	})
	return headers
}

// dataRows counts rows after the header row.
func dataRows(table *goquery.Selection) int {
	n := table.Find("tr").Length()
	if n == 0 {
		return 0
	}
	return n - 1
}

func hasAll(headers []string, want ...string) bool {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[h] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

// looksLikeDate accepts grid column labels like "Apr 1", "4/1", "04-01".
func looksLikeDate(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return false
	}
	for _, m := range monthPrefixes {
		if strings.HasPrefix(label, m) {
			return true
		}
	}
	digits := 0
	seps := 0
	for _, r := range label {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '/' || r == '-':
			seps++
		default:
			return false
		}
	}
	return digits >= 2 && seps == 1
}

var monthPrefixes = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}
