package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/pennant/internal/cache"
	"github.com/fortuna/pennant/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, briefCache *cache.RedisCache) *Server {
	handler := NewHandler(db, briefCache)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")

	// Season tables
	season := api.PathPrefix("/seasons/{year}/leagues/{leagueID}").Subrouter()
	season.HandleFunc("/ledger", handler.GetLedger).Methods("GET")
	season.HandleFunc("/buckets", handler.GetBuckets).Methods("GET")
	season.HandleFunc("/series", handler.GetSeries).Methods("GET")
	season.HandleFunc("/events", handler.GetEvents).Methods("GET")
	season.HandleFunc("/brief", handler.GetBrief).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
