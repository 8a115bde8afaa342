package handler

import (
	"net/http"
	"strconv"

	"github.com/straye-as/sales-crm-api/internal/repository"
	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

const maxListLimit = 500

// OpportunityHandler serves scoped opportunity listings and the dropdown sources that drive drill-down
type OpportunityHandler struct {
	visibilityService *service.VisibilityService
	logger            *zap.Logger
}

func NewOpportunityHandler(visibilityService *service.VisibilityService, logger *zap.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		visibilityService: visibilityService,
		logger:            logger,
	}
}

// List godoc
// @Summary List opportunities
// @Description Lists non-archived opportunities owned by profiles in the caller's scope.
// @Description A repId or managerId outside the scope yields an empty list, not an error.
// @Tags Opportunities
// @Produce json
// @Param repId query string false "Narrow to one account manager (auth user ID)" format(uuid)
// @Param managerId query string false "Narrow to one manager's team (profile ID)" format(uuid)
// @Param stage query string false "Filter by stage"
// @Param excludePipelined query bool false "Hide opportunities already converted to pipeline items"
// @Param sortBy query string false "Sort field (name, amount, stage, expectedCloseDate, createdAt, updatedAt)"
// @Param sortOrder query string false "Sort order (asc, desc)" default(desc)
// @Param limit query int false "Maximum rows (max 500)"
// @Success 200 {array} domain.OpportunityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /opportunities [get]
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	dd, ok := drillDownQuery(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := service.OpportunityQuery{
		DrillDown: dd,
		Stage:     q.Get("stage"),
		Sort: repository.SortConfig{
			Field: q.Get("sortBy"),
			Order: repository.ParseSortOrder(q.Get("sortOrder")),
		},
	}

	if raw := q.Get("excludePipelined"); raw != "" {
		exclude, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid excludePipelined")
			return
		}
		query.ExcludePipelined = exclude
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		query.Limit = limit
	}

	opportunities, err := h.visibilityService.ListOpportunities(r.Context(), query)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list opportunities")
		return
	}
	respondJSON(w, http.StatusOK, opportunities)
}

// Pipeline godoc
// @Summary Team pipeline overview
// @Description Groups open opportunities in the caller's scope by stage
// @Tags Opportunities
// @Produce json
// @Param repId query string false "Narrow to one account manager (auth user ID)" format(uuid)
// @Param managerId query string false "Narrow to one manager's team (profile ID)" format(uuid)
// @Success 200 {object} domain.PipelineOverviewDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /pipeline/overview [get]
func (h *OpportunityHandler) Pipeline(w http.ResponseWriter, r *http.Request) {
	dd, ok := drillDownQuery(w, r)
	if !ok {
		return
	}

	overview, err := h.visibilityService.TeamPipeline(r.Context(), dd)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load pipeline overview")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// Reps godoc
// @Summary Available account managers
// @Description Account managers the caller may filter by. IDs are auth user IDs.
// @Tags Opportunities
// @Produce json
// @Success 200 {array} domain.OptionDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reps [get]
func (h *OpportunityHandler) Reps(w http.ResponseWriter, r *http.Request) {
	options, err := h.visibilityService.AvailableReps(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list account managers")
		return
	}
	respondJSON(w, http.StatusOK, options)
}

// Managers godoc
// @Summary Available managers
// @Description Managers the caller may drill into. IDs are profile IDs. Empty for account managers.
// @Tags Opportunities
// @Produce json
// @Success 200 {array} domain.OptionDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /managers [get]
func (h *OpportunityHandler) Managers(w http.ResponseWriter, r *http.Request) {
	options, err := h.visibilityService.AvailableManagers(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list managers")
		return
	}
	respondJSON(w, http.StatusOK, options)
}
