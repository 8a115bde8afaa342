package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

// ActivityHandler handles HTTP requests for sales activities (meetings, calls, visits)
type ActivityHandler struct {
	activityService *service.ActivityService
	logger          *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(activityService *service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// List godoc
// @Summary List activities
// @Description Lists non-archived activities created by profiles in the caller's scope
// @Tags Activities
// @Produce json
// @Param repId query string false "Narrow to one account manager (auth user ID)" format(uuid)
// @Param managerId query string false "Narrow to one manager's team (profile ID)" format(uuid)
// @Param type query string false "Filter by activity type"
// @Param from query string false "Activities starting on or after this date (YYYY-MM-DD)"
// @Param to query string false "Activities starting on or before this date (YYYY-MM-DD), inclusive until 23:59:59"
// @Param limit query int false "Maximum rows (max 500)"
// @Success 200 {array} domain.SalesActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	dd, ok := drillDownQuery(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := service.ActivityQuery{
		DrillDown: dd,
		Type:      q.Get("type"),
	}

	if raw := q.Get("from"); raw != "" {
		from, err := time.Parse(period.DateLayout, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid from date. Use YYYY-MM-DD")
			return
		}
		query.From = &from
	}

	if raw := q.Get("to"); raw != "" {
		to, err := time.Parse(period.DateLayout, raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid to date. Use YYYY-MM-DD")
			return
		}
		// exclusive bound at the start of the following day
		to = to.AddDate(0, 0, 1)
		query.To = &to
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

	activities, err := h.activityService.List(r.Context(), query)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list activities")
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// GetByID godoc
// @Summary Get activity by ID
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Success 200 {object} domain.SalesActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [get]
func (h *ActivityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	activity, err := h.activityService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get activity")
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// Create godoc
// @Summary Create activity
// @Description Creates an activity authored by the caller
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body domain.CreateActivityRequest true "Activity data"
// @Success 201 {object} domain.SalesActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities [post]
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateActivityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	activity, err := h.activityService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create activity")
		return
	}

	w.Header().Set("Location", "/api/v1/activities/"+activity.ID.String())
	respondJSON(w, http.StatusCreated, activity)
}

// Update godoc
// @Summary Update activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID" format(uuid)
// @Param request body domain.UpdateActivityRequest true "Activity data"
// @Success 200 {object} domain.SalesActivityDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateActivityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	activity, err := h.activityService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update activity")
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// Delete godoc
// @Summary Delete activity
// @Tags Activities
// @Param id path string true "Activity ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.activityService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete activity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
