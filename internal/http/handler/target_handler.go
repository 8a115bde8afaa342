package handler

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

// TargetHandler handles sales target CRUD, achievement tables and pro-rating previews
type TargetHandler struct {
	targetService *service.TargetService
	logger        *zap.Logger
}

func NewTargetHandler(targetService *service.TargetService, logger *zap.Logger) *TargetHandler {
	return &TargetHandler{
		targetService: targetService,
		logger:        logger,
	}
}

// List godoc
// @Summary List sales targets
// @Description Lists targets assigned to profiles in the caller's scope. Without period parameters every target is returned.
// @Tags Targets
// @Produce json
// @Param period query string false "Quarter label, e.g. Q1 2026"
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD)"
// @Success 200 {array} domain.SalesTargetDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets [get]
func (h *TargetHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter *period.Period
	q := r.URL.Query()
	if q.Get("period") != "" || q.Get("start") != "" || q.Get("end") != "" {
		p, ok := periodQuery(w, r)
		if !ok {
			return
		}
		filter = &p
	}

	targets, err := h.targetService.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list targets")
		return
	}
	respondJSON(w, http.StatusOK, targets)
}

// Create godoc
// @Summary Create sales target
// @Description Assigns a target to a profile. Only admins, heads and managers may assign, and only inside their scope.
// @Tags Targets
// @Accept json
// @Produce json
// @Param request body domain.CreateSalesTargetRequest true "Target data"
// @Success 201 {object} domain.SalesTargetDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets [post]
func (h *TargetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSalesTargetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	target, err := h.targetService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create target")
		return
	}

	w.Header().Set("Location", "/api/v1/targets/"+target.ID.String())
	respondJSON(w, http.StatusCreated, target)
}

// Update godoc
// @Summary Update sales target
// @Tags Targets
// @Accept json
// @Produce json
// @Param id path string true "Target ID" format(uuid)
// @Param request body domain.UpdateSalesTargetRequest true "Target data"
// @Success 200 {object} domain.SalesTargetDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/{id} [put]
func (h *TargetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateSalesTargetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	target, err := h.targetService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update target")
		return
	}
	respondJSON(w, http.StatusOK, target)
}

// Delete godoc
// @Summary Delete sales target
// @Tags Targets
// @Param id path string true "Target ID" format(uuid)
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/{id} [delete]
func (h *TargetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.targetService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete target")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Achievement godoc
// @Summary Target achievement table
// @Description One row per profile in scope with revenue and margin achievement.
// @Description Managers are measured on their team's won business; totals exclude manager rows.
// @Tags Targets
// @Produce json
// @Param period query string false "Quarter label, e.g. Q1 2026 (defaults to the current quarter)"
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.AchievementReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/achievement [get]
func (h *TargetHandler) Achievement(w http.ResponseWriter, r *http.Request) {
	p, ok := periodQuery(w, r)
	if !ok {
		return
	}

	report, err := h.targetService.Achievement(r.Context(), p)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute achievement")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// ProRate godoc
// @Summary Pro-rate a target amount
// @Description Spreads an amount over an inclusive date range and returns the monthly and quarterly equivalents
// @Tags Targets
// @Produce json
// @Param amount query number true "Target amount"
// @Param start query string true "Period start (YYYY-MM-DD)"
// @Param end query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.ProRateDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /targets/prorate [get]
func (h *TargetHandler) ProRate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	start, err := time.Parse(period.DateLayout, q.Get("start"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid start date. Use YYYY-MM-DD")
		return
	}
	end, err := time.Parse(period.DateLayout, q.Get("end"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid end date. Use YYYY-MM-DD")
		return
	}

	result, err := h.targetService.ProRate(amount, start, end)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to pro-rate target")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
