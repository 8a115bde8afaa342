package handler

import (
	"net/http"
	"strconv"

	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

// OrgHandler manages entities, teams and manager team mappings
type OrgHandler struct {
	orgService *service.OrgService
	logger     *zap.Logger
}

func NewOrgHandler(orgService *service.OrgService, logger *zap.Logger) *OrgHandler {
	return &OrgHandler{
		orgService: orgService,
		logger:     logger,
	}
}

// ListEntities godoc
// @Summary List entities
// @Tags Organization
// @Produce json
// @Param activeOnly query bool false "Only active entities"
// @Success 200 {array} domain.EntityDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /entities [get]
func (h *OrgHandler) ListEntities(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("activeOnly"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid activeOnly")
			return
		}
		activeOnly = v
	}

	entities, err := h.orgService.ListEntities(r.Context(), activeOnly)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list entities")
		return
	}
	respondJSON(w, http.StatusOK, entities)
}

// CreateEntity godoc
// @Summary Create entity
// @Description Admin only. Entity codes are unique.
// @Tags Organization
// @Accept json
// @Produce json
// @Param request body domain.CreateEntityRequest true "Entity data"
// @Success 201 {object} domain.EntityDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /entities [post]
func (h *OrgHandler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEntityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entity, err := h.orgService.CreateEntity(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create entity")
		return
	}

	w.Header().Set("Location", "/api/v1/entities/"+entity.ID.String())
	respondJSON(w, http.StatusCreated, entity)
}

// UpdateEntity godoc
// @Summary Update entity
// @Tags Organization
// @Accept json
// @Produce json
// @Param id path string true "Entity ID" format(uuid)
// @Param request body domain.UpdateEntityRequest true "Entity data"
// @Success 200 {object} domain.EntityDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /entities/{id} [put]
func (h *OrgHandler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateEntityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entity, err := h.orgService.UpdateEntity(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update entity")
		return
	}
	respondJSON(w, http.StatusOK, entity)
}

// DeleteEntity godoc
// @Summary Delete entity
// @Description Refused with code in_use while teams or profiles still reference the entity
// @Tags Organization
// @Param id path string true "Entity ID" format(uuid)
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /entities/{id} [delete]
func (h *OrgHandler) DeleteEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.orgService.DeleteEntity(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete entity")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTeams godoc
// @Summary List teams
// @Tags Organization
// @Produce json
// @Param entityId query string false "Only teams of this entity" format(uuid)
// @Success 200 {array} domain.TeamDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /teams [get]
func (h *OrgHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	entityID, ok := optionalUUIDQuery(w, r, "entityId")
	if !ok {
		return
	}

	teams, err := h.orgService.ListTeams(r.Context(), entityID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list teams")
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

// CreateTeam godoc
// @Summary Create team
// @Tags Organization
// @Accept json
// @Produce json
// @Param request body domain.CreateTeamRequest true "Team data"
// @Success 201 {object} domain.TeamDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /teams [post]
func (h *OrgHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateTeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	team, err := h.orgService.CreateTeam(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create team")
		return
	}

	w.Header().Set("Location", "/api/v1/teams/"+team.ID.String())
	respondJSON(w, http.StatusCreated, team)
}

// UpdateTeam godoc
// @Summary Update team
// @Tags Organization
// @Accept json
// @Produce json
// @Param id path string true "Team ID" format(uuid)
// @Param request body domain.UpdateTeamRequest true "Team data"
// @Success 200 {object} domain.TeamDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /teams/{id} [put]
func (h *OrgHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.UpdateTeamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	team, err := h.orgService.UpdateTeam(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update team")
		return
	}
	respondJSON(w, http.StatusOK, team)
}

// DeleteTeam godoc
// @Summary Delete team
// @Description Members of the team become unplaced
// @Tags Organization
// @Param id path string true "Team ID" format(uuid)
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /teams/{id} [delete]
func (h *OrgHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.orgService.DeleteTeam(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete team")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMembers godoc
// @Summary List mapped team members of a manager
// @Tags Organization
// @Produce json
// @Param id path string true "Manager profile ID" format(uuid)
// @Success 200 {array} domain.ManagerMemberDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /managers/{id}/members [get]
func (h *OrgHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	managerID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	members, err := h.orgService.ListManagerMembers(r.Context(), managerID)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list team members")
		return
	}
	respondJSON(w, http.StatusOK, members)
}

// AddMember godoc
// @Summary Map an account manager to a manager
// @Tags Organization
// @Accept json
// @Produce json
// @Param id path string true "Manager profile ID" format(uuid)
// @Param request body domain.AddManagerMemberRequest true "Member"
// @Success 201 {object} domain.ManagerMemberDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /managers/{id}/members [post]
func (h *OrgHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	managerID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req domain.AddManagerMemberRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	member, err := h.orgService.AddManagerMember(r.Context(), managerID, &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to add team member")
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

// RemoveMember godoc
// @Summary Remove a manager team mapping
// @Tags Organization
// @Param id path string true "Manager profile ID" format(uuid)
// @Param memberId path string true "Account manager profile ID" format(uuid)
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /managers/{id}/members/{memberId} [delete]
func (h *OrgHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	managerID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	memberID, ok := uuidParam(w, r, "memberId")
	if !ok {
		return
	}

	if err := h.orgService.RemoveManagerMember(r.Context(), managerID, memberID); err != nil {
		respondServiceError(w, h.logger, err, "Failed to remove team member")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
