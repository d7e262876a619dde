package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/casgest/internal/config"
	"github.com/dgallion1/casgest/internal/fetch"
	"github.com/dgallion1/casgest/internal/pathstore"
	"github.com/dgallion1/casgest/internal/pipeline"
	"github.com/dgallion1/casgest/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Fetcher downloads a month of bulletins into a store.
type Fetcher interface {
	Sync(ctx context.Context, year, month int, dest fetch.Depositor) (*fetch.SyncResult, error)
}

// Records reads and removes published booklet records.
type Records interface {
	ListBooklets(ctx context.Context, limit int) ([]pathstore.Meta, error)
	GetMeta(ctx context.Context, key string) (*pathstore.Meta, error)
	DeleteBooklet(ctx context.Context, key, contentHash string) error
}

// Server is the HTTP API server for casgest.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	fetcher      Fetcher
	records      Records
	store        *store.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. fetcher and records
// may be nil; their endpoints then answer 503.
func NewServer(orch *pipeline.Orchestrator, st *store.Store, fetcher Fetcher, records Records, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		fetcher:      fetcher,
		records:      records,
		store:        st,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.CasgestAPIKey, s.log))

		r.Post("/api/extract", s.handleExtract)
		r.Post("/api/extract/batch", s.handleBatchExtract)
		r.Get("/api/extract/{jobID}/status", s.handleExtractStatus)
		r.Get("/api/stats/extract", s.handleExtractStats)

		r.Get("/api/booklets/{jobID}", s.handleBooklet)
		r.Get("/api/booklets/{jobID}/report", s.handleBookletReport)

		r.Post("/api/fetch", s.handleFetch)
		r.Get("/api/stored", s.handleListStored)

		r.Get("/api/records", s.handleListRecords)
		r.Delete("/api/records/{key}", s.handleDeleteRecord)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
