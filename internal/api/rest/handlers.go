package rest

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/pennant/internal/cache"
	"github.com/fortuna/pennant/internal/calendar"
	"github.com/fortuna/pennant/internal/league"
	"github.com/fortuna/pennant/internal/report"
	"github.com/fortuna/pennant/internal/series"
	"github.com/fortuna/pennant/internal/store"
	"github.com/fortuna/pennant/internal/store/repository"
	"github.com/gorilla/mux"
)

const briefCacheTTL = 6 * time.Hour

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db         *store.Database
	briefCache *cache.RedisCache

	teamRepo   *repository.TeamRepository
	ledgerRepo *repository.LedgerRepository
	bucketRepo *repository.BucketRepository
	seriesRepo *repository.SeriesRepository
	eventRepo  *repository.EventRepository
}

// NewHandler creates a new handler. briefCache may be nil; briefs are
// then rendered on every request.
func NewHandler(db *store.Database, briefCache *cache.RedisCache) *Handler {
	return &Handler{
		db:         db,
		briefCache: briefCache,
		teamRepo:   repository.NewTeamRepository(db),
		ledgerRepo: repository.NewLedgerRepository(db),
		bucketRepo: repository.NewBucketRepository(db),
		seriesRepo: repository.NewSeriesRepository(db),
		eventRepo:  repository.NewEventRepository(db),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "pennant",
		"version": "1.0.0",
	})
}

// GetTeams returns the reference teams for one league
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	leagueID, err := queryInt(r, "league", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid league ID", err)
		return
	}

	teams, err := h.teamRepo.GetByLeague(r.Context(), leagueID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetLedger returns the team-game ledger for a season. An optional
// ?team= parameter narrows it to one club.
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	year, leagueID, ok := seasonVars(w, r)
	if !ok {
		return
	}

	var rows []*store.LedgerRow
	var err error
	if teamStr := r.URL.Query().Get("team"); teamStr != "" {
		teamID, convErr := strconv.Atoi(teamStr)
		if convErr != nil {
			respondError(w, http.StatusBadRequest, "Invalid team ID", convErr)
			return
		}
		rows, err = h.ledgerRepo.GetTeamSeason(r.Context(), year, leagueID, teamID)
	} else {
		rows, err = h.ledgerRepo.GetSeason(r.Context(), year, leagueID)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch ledger", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ledger": rows,
		"count":  len(rows),
	})
}

// GetBuckets returns calendar buckets for a season. ?kind= selects
// month, week, or half; month is the default.
func (h *Handler) GetBuckets(w http.ResponseWriter, r *http.Request) {
	year, leagueID, ok := seasonVars(w, r)
	if !ok {
		return
	}

	kind := calendar.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = calendar.KindMonth
	}
	switch kind {
	case calendar.KindMonth, calendar.KindWeek, calendar.KindHalf:
	default:
		respondError(w, http.StatusBadRequest, "Invalid bucket kind (use month, week, or half)", nil)
		return
	}

	rows, err := h.bucketRepo.GetSeason(r.Context(), year, leagueID, kind)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch buckets", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":    kind,
		"buckets": rows,
		"count":   len(rows),
	})
}

// GetSeries returns every detected series for a season
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	year, leagueID, ok := seasonVars(w, r)
	if !ok {
		return
	}

	rows, err := h.seriesRepo.GetSeason(r.Context(), year, leagueID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch series", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"series": rows,
		"count":  len(rows),
	})
}

// GetEvents returns the schedule event set for a season
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	year, leagueID, ok := seasonVars(w, r)
	if !ok {
		return
	}

	set, err := h.eventRepo.GetSeason(r.Context(), year, leagueID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Schedule events not found", err)
		return
	}

	respondJSON(w, http.StatusOK, set)
}

// GetBrief renders the markdown season brief, serving from cache when
// possible.
func (h *Handler) GetBrief(w http.ResponseWriter, r *http.Request) {
	year, leagueID, ok := seasonVars(w, r)
	if !ok {
		return
	}

	if h.briefCache != nil {
		if brief, err := h.briefCache.GetBrief(r.Context(), year, leagueID); err == nil {
			respondMarkdown(w, brief)
			return
		}
	}

	brief, err := h.renderBrief(r, year, leagueID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render brief", err)
		return
	}

	if h.briefCache != nil {
		if err := h.briefCache.SetBrief(r.Context(), year, leagueID, brief, briefCacheTTL); err != nil {
			log.Printf("⚠️  Brief cache write failed: %v", err)
		}
	}
	respondMarkdown(w, brief)
}

func (h *Handler) renderBrief(r *http.Request, year, leagueID int) (string, error) {
	ctx := r.Context()

	teams, err := h.teamRepo.GetByLeague(ctx, leagueID)
	if err != nil {
		return "", err
	}
	idx, err := league.NewIndex(teams)
	if err != nil {
		return "", err
	}

	set, err := h.eventRepo.GetSeason(ctx, year, leagueID)
	if err != nil {
		return "", err
	}

	var buckets calendar.BucketSet
	monthRows, err := h.bucketRepo.GetSeason(ctx, year, leagueID, calendar.KindMonth)
	if err != nil {
		return "", err
	}
	for _, row := range monthRows {
		buckets.Monthly = append(buckets.Monthly, bucketFromRow(row))
	}

	seriesRows, err := h.seriesRepo.GetSeason(ctx, year, leagueID)
	if err != nil {
		return "", err
	}
	summaries := make([]series.Summary, 0, len(seriesRows))
	for _, row := range seriesRows {
		summaries = append(summaries, seriesFromRow(row))
	}

	return report.Render(report.Input{
		SeasonYear: year,
		LeagueID:   leagueID,
		Teams:      idx,
		Buckets:    &buckets,
		Series:     summaries,
		Events:     set,
	}), nil
}

func bucketFromRow(row *store.BucketRow) calendar.Bucket {
	b := calendar.Bucket{
		TeamID:               row.TeamID,
		Kind:                 calendar.Kind(row.BucketKind),
		Label:                row.BucketLabel,
		WeekIndex:            row.WeekIndex,
		Games:                row.Games,
		Wins:                 row.Wins,
		Losses:               row.Losses,
		Ties:                 row.Ties,
		RunsFor:              row.RunsFor,
		RunsAgainst:          row.RunsAgainst,
		RunDiff:              row.RunDiff,
		SeasonWinPct:         row.SeasonWinPct,
		SeasonRunDiff:        row.SeasonRunDiff,
		RunDiffDeltaVsSeason: row.RunDiffDeltaVsSeason,
	}
	if row.WinPct.Valid {
		v := row.WinPct.Float64
		b.WinPct = &v
	}
	if row.WinPctDeltaVsSeason.Valid {
		v := row.WinPctDeltaVsSeason.Float64
		b.WinPctDeltaVsSeason = &v
	}
	return b
}

func seriesFromRow(row *store.SeriesRow) series.Summary {
	return series.Summary{
		SeriesID:        row.SeriesID,
		HomeTeamID:      row.HomeTeamID,
		AwayTeamID:      row.AwayTeamID,
		StartDate:       row.StartDate,
		EndDate:         row.EndDate,
		NumGames:        row.NumGames,
		HomeWins:        row.HomeWins,
		HomeLosses:      row.HomeLosses,
		HomeRuns:        row.HomeRuns,
		HomeRunsAllowed: row.HomeRunsAllowed,
		HomeRunDiff:     row.HomeRunDiff,
		Sweep:           row.Sweep,
		AvoidedSweep:    row.AvoidedSweep,
		Split:           row.Split,
		Decisive:        row.Decisive,
	}
}

// seasonVars pulls the season year and league ID out of the route.
func seasonVars(w http.ResponseWriter, r *http.Request) (year, leagueID int, ok bool) {
	vars := mux.Vars(r)

	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season year", err)
		return 0, 0, false
	}
	leagueID, err = strconv.Atoi(vars["leagueID"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid league ID", err)
		return 0, 0, false
	}
	return year, leagueID, true
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMarkdown(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
