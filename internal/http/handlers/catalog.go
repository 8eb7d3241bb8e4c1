package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aarthiksaathi/aarthik-be/internal/catalog"
	"github.com/aarthiksaathi/aarthik-be/internal/eligibility"
	"github.com/aarthiksaathi/aarthik-be/internal/http/respond"
	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/middleware"
	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/models/dto"
	"github.com/aarthiksaathi/aarthik-be/internal/search"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

// CatalogHandler lists schemes, provisions, investments and resources.
// Personalised routes read the caller's profile when one is available and
// must be mounted behind middleware.OptionalAuth.
type CatalogHandler struct {
	catalog  *catalog.Catalog
	profiles storage.ProfileStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewCatalogHandler(c *catalog.Catalog, profiles storage.ProfileStore, logger *slog.Logger, m *metrics.Metrics) *CatalogHandler {
	return &CatalogHandler{catalog: c, profiles: profiles, logger: logger, metrics: m}
}

// RegisterPersonalised attaches the routes whose results depend on the caller.
func (h *CatalogHandler) RegisterPersonalised(r chi.Router) {
	r.Get("/schemes", h.handleSchemes)
	r.Get("/schemes/{id}/eligibility", h.handleSchemeEligibility)
	r.Get("/provisions", h.handleProvisions)
}

// RegisterPublic attaches the routes that never look at a profile.
func (h *CatalogHandler) RegisterPublic(r chi.Router) {
	r.Get("/investments", h.handleInvestments)
	r.Get("/resources", h.handleResources)
}

func (h *CatalogHandler) handleSchemes(w http.ResponseWriter, r *http.Request) {
	view, ok := parseView(r.URL.Query().Get("view"), "eligible")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "view must be eligible or all")
		return
	}
	q := query(r, view, catalog.FacetMinistry, catalog.FacetCategory)
	profile := h.profileFor(r.Context(), view)
	res := search.Filter(h.catalog.Schemes, catalog.SchemeSpec, profile, q)
	h.observeNeedsProfile("schemes", res.NeedsProfile)

	respond.JSON(w, http.StatusOK, "schemes", dto.ListResponse[catalog.Scheme]{
		Items:        res.Items,
		NeedsProfile: res.NeedsProfile,
		Facets:       facets(h.catalog.Schemes, catalog.SchemeSpec, catalog.FacetMinistry, catalog.FacetCategory),
	})
}

func (h *CatalogHandler) handleSchemeEligibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scheme, ok := h.catalog.Scheme(id)
	if !ok {
		respond.Error(w, http.StatusNotFound, "scheme not found")
		return
	}
	resp := dto.EligibilityResponse{SchemeID: scheme.ID, Failed: []eligibility.Criterion{}}
	profile := h.profileFor(r.Context(), search.ViewRelevant)
	if profile == nil {
		resp.NeedsProfile = true
		h.observeNeedsProfile("schemes", true)
		respond.JSON(w, http.StatusOK, "eligibility", resp)
		return
	}
	if failed := eligibility.Evaluate(*profile, scheme.Eligibility); failed != nil {
		resp.Failed = failed
	}
	resp.Eligible = len(resp.Failed) == 0
	respond.JSON(w, http.StatusOK, "eligibility", resp)
}

func (h *CatalogHandler) handleProvisions(w http.ResponseWriter, r *http.Request) {
	view, ok := parseView(r.URL.Query().Get("view"), "relevant")
	if !ok {
		respond.Error(w, http.StatusBadRequest, "view must be relevant or all")
		return
	}
	q := query(r, view, catalog.FacetSector, catalog.FacetImpact)
	// Impact counts describe the caller's relevant set whichever view is shown.
	profile := h.profileFor(r.Context(), search.ViewRelevant)
	res := search.Filter(h.catalog.Provisions, catalog.ProvisionSpec, profile, q)
	h.observeNeedsProfile("provisions", res.NeedsProfile)

	resp := dto.ListResponse[catalog.Provision]{
		Items:        res.Items,
		NeedsProfile: res.NeedsProfile,
		Facets:       facets(h.catalog.Provisions, catalog.ProvisionSpec, catalog.FacetSector, catalog.FacetImpact),
	}
	if profile != nil {
		relevant := search.Filter(h.catalog.Provisions, catalog.ProvisionSpec, profile, search.Query{View: search.ViewRelevant})
		counts := catalog.ImpactCounts(relevant.Items)
		resp.ImpactCounts = &counts
	}
	respond.JSON(w, http.StatusOK, "provisions", resp)
}

func (h *CatalogHandler) handleInvestments(w http.ResponseWriter, r *http.Request) {
	q := query(r, search.ViewAll, catalog.FacetType, catalog.FacetRisk, catalog.FacetSector)
	res := search.Filter(h.catalog.Investments, catalog.InvestmentSpec, nil, q)
	respond.JSON(w, http.StatusOK, "investments", dto.ListResponse[catalog.Investment]{
		Items:  res.Items,
		Facets: facets(h.catalog.Investments, catalog.InvestmentSpec, catalog.FacetType, catalog.FacetRisk, catalog.FacetSector),
	})
}

func (h *CatalogHandler) handleResources(w http.ResponseWriter, r *http.Request) {
	q := query(r, search.ViewAll, catalog.FacetType, catalog.FacetCategory)
	res := search.Filter(h.catalog.Resources, catalog.ResourceSpec, nil, q)
	respond.JSON(w, http.StatusOK, "resources", dto.ListResponse[catalog.Resource]{
		Items:  res.Items,
		Facets: facets(h.catalog.Resources, catalog.ResourceSpec, catalog.FacetType, catalog.FacetCategory),
	})
}

// profileFor loads the caller's profile for the relevant view. Anonymous
// callers, callers without a saved profile and store failures all yield nil.
func (h *CatalogHandler) profileFor(ctx context.Context, view search.View) *models.Profile {
	if view != search.ViewRelevant {
		return nil
	}
	userID, ok := middleware.UserID(ctx)
	if !ok {
		return nil
	}
	p, err := h.profiles.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.logger.ErrorContext(ctx, "load profile for catalog failed",
				"error", err,
				"user_id", userID,
				"request_id", chimw.GetReqID(ctx),
			)
		}
		return nil
	}
	return &p
}

func (h *CatalogHandler) observeNeedsProfile(catalogName string, needed bool) {
	if needed {
		h.metrics.IncrementProfileRequired(catalogName)
	}
}

// parseView maps the view query parameter. "eligible" and "relevant" are
// synonyms so each screen can use its own wording.
func parseView(raw, def string) (search.View, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		v = def
	}
	switch v {
	case "eligible", "relevant":
		return search.ViewRelevant, true
	case "all":
		return search.ViewAll, true
	default:
		return "", false
	}
}

func query(r *http.Request, view search.View, facetNames ...string) search.Query {
	values := r.URL.Query()
	q := search.Query{
		Text:   values.Get("q"),
		View:   view,
		Facets: make(map[string]string, len(facetNames)),
	}
	for _, name := range facetNames {
		q.Facets[name] = values.Get(name)
	}
	return q
}

func facets[T any](items []T, spec search.Spec[T], names ...string) map[string][]string {
	out := make(map[string][]string, len(names))
	for _, name := range names {
		out[name] = search.Values(items, spec, name)
	}
	return out
}
