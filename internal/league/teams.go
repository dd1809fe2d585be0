// Package league holds team reference data and the one place where raw
// team labels from upstream pages are normalized to canonical IDs. Every
// component takes reference data as an explicit parameter; nothing here
// is cached at package level.
package league

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Team is one club's reference row.
type Team struct {
	TeamID       int    `json:"team_id" db:"team_id"`
	LeagueID     int    `json:"league_id" db:"league_id"`
	Abbreviation string `json:"abbreviation" db:"abbreviation"`
	City         string `json:"city" db:"city"`
	Nickname     string `json:"nickname" db:"nickname"`
	Conference   string `json:"conference" db:"conference"`
	Division     string `json:"division" db:"division"`
}

// FullName returns the display label, e.g. "Atlanta Kings".
func (t Team) FullName() string {
	if t.City == "" {
		return t.Nickname
	}
	return t.City + " " + t.Nickname
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
var parenthetical = regexp.MustCompile(`\(.*?\)`)

// normalizeLabel collapses a raw label to a match key: parentheticals
// (state suffixes like "Atlanta(Georgia)") dropped, lowercased, stripped
// to alphanumerics.
func normalizeLabel(label string) string {
	s := parenthetical.ReplaceAllString(label, "")
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// Index resolves upstream team labels to canonical teams. It is built
// once from reference rows at the edge of the system; resolution of an
// unknown label is an explicit error, never a silent passthrough.
type Index struct {
	byKey map[string]Team
	byID  map[int]Team
}

// NewIndex builds an Index over the given teams. Each team registers its
// abbreviation, city, nickname, and the label spellings the almanac pages
// use. Conflicting aliases across two teams are rejected.
func NewIndex(teams []Team) (*Index, error) {
	idx := &Index{
		byKey: make(map[string]Team),
		byID:  make(map[int]Team),
	}
	for _, t := range teams {
		if _, dup := idx.byID[t.TeamID]; dup {
			return nil, fmt.Errorf("duplicate team id %d in reference data", t.TeamID)
		}
		idx.byID[t.TeamID] = t

		city := strings.TrimSpace(parenthetical.ReplaceAllString(t.City, ""))
		aliases := []string{
			t.Abbreviation,
			t.City,
			city,
			t.Nickname,
			t.FullName(),
			city + " " + t.Nickname,
			fmt.Sprintf("%s (%s)", t.Nickname, t.Abbreviation),
		}
		for _, alias := range aliases {
			key := normalizeLabel(alias)
			if key == "" {
				continue
			}
			if prev, ok := idx.byKey[key]; ok && prev.TeamID != t.TeamID {
				return nil, fmt.Errorf("alias %q is ambiguous between team %d and team %d",
					alias, prev.TeamID, t.TeamID)
			}
			idx.byKey[key] = t
		}
	}
	return idx, nil
}

// Resolve maps a raw label to its canonical team.
func (idx *Index) Resolve(label string) (Team, error) {
	key := normalizeLabel(label)
	if key == "" {
		return Team{}, fmt.Errorf("empty team label %q", label)
	}
	t, ok := idx.byKey[key]
	if !ok {
		return Team{}, fmt.Errorf("unknown team label %q (no registered alias matches)", label)
	}
	return t, nil
}

// ByID looks up a team by canonical ID.
func (idx *Index) ByID(teamID int) (Team, bool) {
	t, ok := idx.byID[teamID]
	return t, ok
}

// Teams returns all reference teams ordered by ID.
func (idx *Index) Teams() []Team {
	out := make([]Team, 0, len(idx.byID))
	for _, t := range idx.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}
