package almanac

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/runerr"
	"github.com/fortuna/pennant/internal/schedule"
)

func gridIndex(t *testing.T) *league.Index {
	t.Helper()
	teams := []league.Team{
		{TeamID: 1, Abbreviation: "ATL", City: "Atlanta", Nickname: "Kings"},
		{TeamID: 2, Abbreviation: "BOS", City: "Boston", Nickname: "Harbormen"},
		{TeamID: 3, Abbreviation: "CHI", City: "Chicago", Nickname: "Blues"},
		{TeamID: 4, Abbreviation: "DET", City: "Detroit", Nickname: "Motors"},
		{TeamID: 5, Abbreviation: "HOU", City: "Houston", Nickname: "Comets"},
		{TeamID: 6, Abbreviation: "MIN", City: "Minneapolis", Nickname: "Lakers"},
		{TeamID: 7, Abbreviation: "PHI", City: "Philadelphia", Nickname: "Founders"},
		{TeamID: 8, Abbreviation: "STL", City: "St. Louis", Nickname: "Arches"},
	}
	idx, err := league.NewIndex(teams)
	if err != nil {
		t.Fatalf("building grid index: %v", err)
	}
	return idx
}

// buildGridPage renders a grid page with one row per label, reusing the
// same three cells per row.
func buildGridPage(labels []string, cells [3]string) string {
	var b strings.Builder
	b.WriteString("<table>\n<tr><th>Team</th><th>Apr 7</th><th>Apr 8</th><th>Apr 9</th></tr>\n")
	for _, label := range labels {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			label, cells[0], cells[1], cells[2])
	}
	b.WriteString("</table>")
	return b.String()
}

func allLabels() []string {
	return []string{
		"Atlanta Kings", "Boston Harbormen", "Chicago Blues", "Detroit Motors",
		"Houston Comets", "Minneapolis Lakers", "Philadelphia Founders", "St. Louis Arches",
	}
}

func TestParseGrid(t *testing.T) {
	page := buildGridPage(allLabels(), [3]string{"BOS W 5-3", "", "@CHI L 2-4"})

	parser := &GridParser{SeasonYear: 1975, Teams: gridIndex(t)}
	summary := &runerr.RunSummary{}
	cells, err := parser.ParseGrid(strings.NewReader(page), summary)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}

	// 8 teams x 3 dates.
	if len(cells) != 24 {
		t.Fatalf("expected 24 cells, got %d", len(cells))
	}
	if summary.RowsSeen != 8 || summary.RowsSkipped != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	byKey := make(map[string]schedule.Cell)
	for _, c := range cells {
		byKey[fmt.Sprintf("%d_%s", c.TeamID, c.Date.Format("01-02"))] = c
	}

	home := byKey["1_04-07"]
	if !home.Played || home.HomeGame == nil || !*home.HomeGame {
		t.Errorf("Apr 7 should be a home game: %+v", home)
	}
	if home.OpponentID == nil || *home.OpponentID != 2 {
		t.Errorf("opponent should resolve to BOS: %+v", home)
	}
	if !home.Date.Equal(time.Date(1975, time.April, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date header not applied: %+v", home)
	}

	idle := byKey["1_04-08"]
	if idle.Played {
		t.Errorf("blank cell should be idle: %+v", idle)
	}

	road := byKey["1_04-09"]
	if !road.Played || road.HomeGame == nil || *road.HomeGame {
		t.Errorf("@CHI should be a road game: %+v", road)
	}
	if road.OpponentID == nil || *road.OpponentID != 3 {
		t.Errorf("opponent should resolve to CHI: %+v", road)
	}
}

func TestParseGridSkipsUnknownTeamRows(t *testing.T) {
	labels := allLabels()
	labels[7] = "Seattle Rains"
	page := buildGridPage(labels, [3]string{"off", "", "BOS W 1-0"})

	parser := &GridParser{SeasonYear: 1975, Teams: gridIndex(t)}
	summary := &runerr.RunSummary{}
	cells, err := parser.ParseGrid(strings.NewReader(page), summary)
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}

	if len(cells) != 21 {
		t.Fatalf("unknown row should drop its 3 cells, got %d", len(cells))
	}
	if summary.RowsSkipped != 1 {
		t.Errorf("skip not recorded: %+v", summary)
	}
}

func TestParseGridBadDateHeaderIsFatal(t *testing.T) {
	var b strings.Builder
	b.WriteString("<table>\n<tr><th>Team</th><th>Apr 7</th><th>Apr 8</th><th>Apr 9</th><th>whenever</th></tr>\n")
	for _, label := range allLabels() {
		fmt.Fprintf(&b, "<tr><td>%s</td><td></td><td></td><td></td><td></td></tr>\n", label)
	}
	b.WriteString("</table>")

	parser := &GridParser{SeasonYear: 1975, Teams: gridIndex(t)}
	if _, err := parser.ParseGrid(strings.NewReader(b.String()), &runerr.RunSummary{}); err == nil {
		t.Fatal("expected a fatal error for an unparseable date header")
	}
}

func TestParseCellVariants(t *testing.T) {
	parser := &GridParser{SeasonYear: 1975, Teams: gridIndex(t)}
	date := time.Date(1975, time.April, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		raw    string
		played bool
		home   *bool
	}{
		{"", false, nil},
		{"off", false, nil},
		{"OFF", false, nil},
		{"BOS W 5-3", true, boolPtr(true)},
		{"@BOS L 2-10", true, boolPtr(false)},
		{"DET", true, boolPtr(true)},
		{"W 4–2", true, nil}, // en dash, no opponent label
	}

	for _, tt := range tests {
		cell := parser.parseCell(tt.raw, 1, date)
		if cell.Played != tt.played {
			t.Errorf("parseCell(%q).Played = %v, want %v", tt.raw, cell.Played, tt.played)
		}
		if (cell.HomeGame == nil) != (tt.home == nil) {
			t.Errorf("parseCell(%q).HomeGame = %v, want %v", tt.raw, cell.HomeGame, tt.home)
			continue
		}
		if cell.HomeGame != nil && *cell.HomeGame != *tt.home {
			t.Errorf("parseCell(%q) home = %v, want %v", tt.raw, *cell.HomeGame, *tt.home)
		}
	}
}

func boolPtr(v bool) *bool { return &v }
