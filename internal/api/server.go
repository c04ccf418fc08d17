package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/canvasdoc/internal/config"
	"github.com/dgallion1/canvasdoc/internal/export"
	"github.com/dgallion1/canvasdoc/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for canvasdoc.
type Server struct {
	router       chi.Router
	orchestrator *export.Orchestrator
	store        *store.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *export.Orchestrator, st *store.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
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
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/stories", s.handleCreateStory)
		r.Put("/api/stories/{storyID}/canvases/{canvasID}", s.handleSaveCanvas)
		r.Get("/api/stories/{storyID}/hierarchy", s.handleHierarchy)

		r.Post("/api/stories/{storyID}/export", s.handleExport)
		r.Get("/api/export/{jobID}/status", s.handleExportStatus)
		r.Get("/api/export/{jobID}/download", s.handleExportDownload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
