package handler

import (
	"net/http"

	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

// MeHandler serves the caller's own profile, assignment state and visibility scope
type MeHandler struct {
	userService       *service.UserService
	visibilityService *service.VisibilityService
	logger            *zap.Logger
}

func NewMeHandler(userService *service.UserService, visibilityService *service.VisibilityService, logger *zap.Logger) *MeHandler {
	return &MeHandler{
		userService:       userService,
		visibilityService: visibilityService,
		logger:            logger,
	}
}

// Me godoc
// @Summary Get current user profile
// @Description Returns the caller's profile with entity, team and manager names resolved
// @Tags Me
// @Produce json
// @Success 200 {object} domain.UserProfileDTO
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /me [get]
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.Me(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Assignment godoc
// @Summary Get current assignment state
// @Description Reports whether the caller is pending and which organizational fields are missing for the role
// @Tags Me
// @Produce json
// @Success 200 {object} domain.AssignmentDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /me/assignment [get]
func (h *MeHandler) Assignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.userService.MyAssignment(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load assignment")
		return
	}
	respondJSON(w, http.StatusOK, assignment)
}

// Scope godoc
// @Summary Get visibility scope
// @Description Lists the profiles whose data the caller may see and how each one entered the scope
// @Tags Me
// @Produce json
// @Success 200 {object} domain.ScopeDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /me/scope [get]
func (h *MeHandler) Scope(w http.ResponseWriter, r *http.Request) {
	scope, err := h.visibilityService.Scope(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to resolve scope")
		return
	}
	respondJSON(w, http.StatusOK, scope)
}
