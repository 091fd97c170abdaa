package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/savegress/ledgermatch/internal/config"
	"github.com/savegress/ledgermatch/internal/reconciliation"
)

// Server represents the API server
type Server struct {
	config   *config.Config
	router   chi.Router
	handlers *Handlers
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, recon *reconciliation.Engine) *Server {
	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		handlers: NewHandlers(cfg, recon),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handlers.HealthCheck)

	s.router.Route("/api/v1/ledgermatch", func(r chi.Router) {
		// Reconciliation batches
		r.Route("/batches", func(r chi.Router) {
			r.Get("/", s.handlers.ListBatches)
			r.Post("/", s.handlers.CreateBatch)
			r.Get("/{id}", s.handlers.GetBatch)
			r.Get("/{id}/results", s.handlers.GetBatchResults)
		})

		// Feed file diagnostics
		r.Get("/files/tail", s.handlers.TailFeedFile)

		// Stats
		r.Get("/stats", s.handlers.GetStats)
	})
}

// Router returns the chi router
func (s *Server) Router() http.Handler {
	return s.router
}
