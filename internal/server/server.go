package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/rpecalc/internal/rpe"
	"github.com/meltforce/rpecalc/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	est     *rpe.Estimator
	store   *storage.Store
	log     *slog.Logger
	apiKey  string
	version string
	router  chi.Router
}

// New creates a new Server with all routes configured. store may be nil to
// disable history recording (used by tests and the stateless MCP client
// path). An empty apiKey leaves the calculation routes unauthenticated.
func New(est *rpe.Estimator, store *storage.Store, apiKey, version string, log *slog.Logger) *Server {
	s := &Server{
		est:     est,
		store:   store,
		log:     log,
		apiKey:  apiKey,
		version: version,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Calculation endpoints (API key required when configured)
	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/calculate-warmup", s.handleCalculateWarmup)
		r.Post("/api/max-reps", s.handleMaxReps)
	})

	// Read-only endpoints (always open)
	s.router.Get("/api/v1/chart", s.handleChart)
	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/healthz", s.handleHealthz)
}
