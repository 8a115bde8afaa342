package handler

import (
	"net/http"

	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

// UserHandler serves the user administration endpoints
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// List godoc
// @Summary List users with profiles
// @Description Admins see every profile. Heads and managers see their scope plus profiles not yet placed in an entity.
// @Tags Users
// @Produce json
// @Param query query string false "Case-insensitive match on name or email"
// @Param role query string false "Filter by role (admin, head, manager, account_manager, staff, pending)"
// @Success 200 {array} domain.UserProfileDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.userService.ListUsers(r.Context(), q.Get("query"), q.Get("role"))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Pending godoc
// @Summary List pending users
// @Description Profiles whose role is unset or whose entity, team or manager is missing for the role
// @Tags Users
// @Produce json
// @Success 200 {array} domain.UserProfileDTO
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/users/pending [get]
func (h *UserHandler) Pending(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.PendingUsers(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list pending users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// UpdateProfile godoc
// @Summary Assign role and organization
// @Description Admins may assign any role. Managers may place account managers inside their own entity and team.
// @Description Missing fields for the role are reported with code missing_role_fields.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "Profile ID" format(uuid)
// @Param request body domain.UpdateUserProfileRequest true "Assignment"
// @Success 200 {object} domain.UpdateUserProfileResultDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/users/{id}/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateUserProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.userService.UpdateProfile(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update profile")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete user
// @Description Admin only. Self deletion and deleting other admins are refused.
// @Tags Users
// @Param id path string true "Profile ID" format(uuid)
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
