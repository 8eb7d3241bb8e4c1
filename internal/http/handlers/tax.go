package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aarthiksaathi/aarthik-be/internal/http/respond"
	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/models/dto"
	"github.com/aarthiksaathi/aarthik-be/internal/taxcalc"
)

// TaxHandler exposes the income-tax calculator. It needs no account.
type TaxHandler struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewTaxHandler(logger *slog.Logger, m *metrics.Metrics) *TaxHandler {
	return &TaxHandler{logger: logger, metrics: m}
}

func (h *TaxHandler) Register(r chi.Router) {
	r.Post("/tax/calculate", h.handleCalculate)
}

func (h *TaxHandler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req dto.TaxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.DebugContext(r.Context(), "rejecting tax request", "error", err)
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload or amount")
		return
	}

	if err := req.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	in := req.Input()
	switch in.EntityType {
	case "":
		in.EntityType = taxcalc.EntityIndividual
	case taxcalc.EntityIndividual, taxcalc.EntityProprietorship, taxcalc.EntityPartnership, taxcalc.EntityDomesticCompany:
	default:
		respond.Error(w, http.StatusBadRequest, "entity_type must be individual, proprietorship, partnership or company-domestic")
		return
	}
	switch in.Regime {
	case "":
		in.Regime = taxcalc.RegimeNew
	case taxcalc.RegimeNew, taxcalc.RegimeOld:
	default:
		respond.Error(w, http.StatusBadRequest, "regime must be new or old")
		return
	}

	breakdown := taxcalc.Compute(in)
	h.metrics.IncrementTaxCalculations(string(in.EntityType))

	regime := in.Regime
	if in.EntityType != taxcalc.EntityIndividual {
		regime = ""
	}
	respond.JSON(w, http.StatusOK, "tax calculated", dto.NewTaxResponse(in.EntityType, regime, breakdown))
}
