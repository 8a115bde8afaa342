package handler

import (
	"net/http"

	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

// ReportHandler serves dashboard summaries and archived revenue reports
type ReportHandler struct {
	summaryService *service.SummaryService
	targetService  *service.TargetService
	logger         *zap.Logger
}

func NewReportHandler(summaryService *service.SummaryService, targetService *service.TargetService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		summaryService: summaryService,
		targetService:  targetService,
		logger:         logger,
	}
}

// Summary godoc
// @Summary Sales summary
// @Description Revenue, margin, deal counts, top performers and pipeline for the caller's scope
// @Tags Reports
// @Produce json
// @Param period query string false "Quarter label, e.g. Q1 2026 (defaults to the current quarter)"
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.SalesSummaryDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	p, ok := periodQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.summaryService.SalesSummary(r.Context(), p)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to build sales summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// ManagerArchived godoc
// @Summary Archived revenue per manager
// @Description With managerId, returns that manager's team totals. Without it, returns one row per manager visible to the caller.
// @Tags Reports
// @Produce json
// @Param managerId query string false "Manager profile ID" format(uuid)
// @Param period query string false "Quarter label, e.g. Q1 2026 (defaults to the current quarter)"
// @Param start query string false "Period start (YYYY-MM-DD)"
// @Param end query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.ManagerArchivedReportDTO
// @Success 200 {object} domain.ManagerArchivedDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/manager-archived [get]
func (h *ReportHandler) ManagerArchived(w http.ResponseWriter, r *http.Request) {
	p, ok := periodQuery(w, r)
	if !ok {
		return
	}
	managerID, ok := optionalUUIDQuery(w, r, "managerId")
	if !ok {
		return
	}

	if managerID != nil {
		row, err := h.targetService.ManagerArchived(r.Context(), *managerID, p)
		if err != nil {
			respondServiceError(w, h.logger, err, "Failed to build manager report")
			return
		}
		respondJSON(w, http.StatusOK, row)
		return
	}

	report, err := h.targetService.HeadManagerArchived(r.Context(), p)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to build manager report")
		return
	}
	respondJSON(w, http.StatusOK, report)
}
