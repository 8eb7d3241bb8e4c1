package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aarthiksaathi/aarthik-be/internal/catalog"
	"github.com/aarthiksaathi/aarthik-be/internal/http/respond"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

// Pinger is implemented by storage backends that hold a network connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler returns uptime, storage reachability and catalog sizes.
type HealthHandler struct {
	startedAt time.Time
	catalog   *catalog.Catalog
	store     storage.Store
}

// NewHealthHandler creates a health endpoint handler. store is pinged when it
// implements Pinger.
func NewHealthHandler(startedAt time.Time, c *catalog.Catalog, store storage.Store) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, catalog: c, store: store}
}

// Register wires the handler into a router.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	reachability := "ok"
	if p, ok := h.store.(Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			status, code, reachability = "degraded", http.StatusServiceUnavailable, "unreachable"
		}
	}
	respond.JSON(w, code, status, map[string]any{
		"status":  status,
		"uptime":  time.Since(h.startedAt).Truncate(time.Second).String(),
		"storage": reachability,
		"catalog": map[string]int{
			"schemes":     len(h.catalog.Schemes),
			"provisions":  len(h.catalog.Provisions),
			"investments": len(h.catalog.Investments),
			"resources":   len(h.catalog.Resources),
		},
	})
}
