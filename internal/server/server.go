package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aarthiksaathi/aarthik-be/internal/auth"
	"github.com/aarthiksaathi/aarthik-be/internal/catalog"
	"github.com/aarthiksaathi/aarthik-be/internal/config"
	"github.com/aarthiksaathi/aarthik-be/internal/events"
	"github.com/aarthiksaathi/aarthik-be/internal/http/handlers"
	"github.com/aarthiksaathi/aarthik-be/internal/http/respond"
	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/middleware"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Store     storage.Store
	Catalog   *catalog.Catalog
	Publisher events.Publisher
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          slog.NewLogLogger(deps.Logger.Handler(), slog.LevelError),
	}

	return &Server{inner: httpServer}
}

// NewRouter builds the full route tree.
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	if deps.Publisher == nil {
		deps.Publisher = events.Discard{}
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	r := chi.NewRouter()
	r.Use(
		chimw.RequestID,
		chimw.RealIP,
		middleware.Logging(deps.Logger, deps.Metrics),
		chimw.Recoverer,
		middleware.CORS(cfg.CORSOrigins),
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	handlers.NewHealthHandler(time.Now(), deps.Catalog, deps.Store).Register(r)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	handlers.NewAuthHandler(deps.Store, deps.Store, tokens, deps.Logger, deps.Metrics).Register(r)

	catalogs := handlers.NewCatalogHandler(deps.Catalog, deps.Store, deps.Logger, deps.Metrics)
	catalogs.RegisterPublic(r)
	handlers.NewTaxHandler(deps.Logger, deps.Metrics).Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(tokens, deps.Logger))
		catalogs.RegisterPersonalised(r)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, deps.Logger))
		handlers.NewProfileHandler(deps.Store, deps.Publisher, deps.Logger, deps.Metrics).Register(r)
	})

	return r
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
