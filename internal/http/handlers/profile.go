package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aarthiksaathi/aarthik-be/internal/events"
	"github.com/aarthiksaathi/aarthik-be/internal/http/respond"
	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/middleware"
	"github.com/aarthiksaathi/aarthik-be/internal/models/dto"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

// ProfileHandler serves the authenticated user's own profile. Routes must be
// mounted behind middleware.RequireAuth.
type ProfileHandler struct {
	store     storage.ProfileStore
	publisher events.Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewProfileHandler(store storage.ProfileStore, publisher events.Publisher, logger *slog.Logger, m *metrics.Metrics) *ProfileHandler {
	return &ProfileHandler{store: store, publisher: publisher, logger: logger, metrics: m, now: time.Now}
}

func (h *ProfileHandler) Register(r chi.Router) {
	r.Get("/profile", h.handleGet)
	r.Put("/profile", h.handlePut)
}

func (h *ProfileHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	p, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "load profile failed",
			"error", err,
			"user_id", userID,
			"request_id", chimw.GetReqID(r.Context()),
		)
		respond.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	respond.JSON(w, http.StatusOK, "profile", p)
}

func (h *ProfileHandler) handlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := middleware.UserID(ctx)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req dto.ProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	form := req.Form()
	if err := form.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	saved, err := h.store.UpsertProfile(ctx, userID, form)
	if errors.Is(err, storage.ErrNotFound) {
		respond.Error(w, http.StatusNotFound, "account not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "save profile failed",
			"error", err,
			"user_id", userID,
			"request_id", chimw.GetReqID(ctx),
		)
		respond.Error(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	h.metrics.IncrementProfilesSaved()

	event := events.ProfileSaved(saved, chimw.GetReqID(ctx), h.now())
	if err := h.publisher.Emit(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "emit profile event failed", "error", err, "user_id", userID)
	}
	h.logger.InfoContext(ctx, "profile saved", "user_id", userID, "profile_id", saved.ID)
	respond.JSON(w, http.StatusOK, "profile saved", saved)
}
