package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/mapper"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"go.uber.org/zap"
)

// Org service errors
var (
	ErrEntityNotFound       = errors.New("entity not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrMappingNotFound      = errors.New("manager team mapping not found")
	ErrDuplicateEntityCode  = errors.New("entity code already in use")
	ErrMappingAlreadyExists = errors.New("account manager already mapped to manager")
)

// OrgService manages entities, teams and explicit manager team mappings.
// Every successful mutation publishes an org-units-changed event.
type OrgService struct {
	resolver    *ScopeResolver
	authorizer  *authz.Authorizer
	entityRepo  *repository.EntityRepository
	teamRepo    *repository.TeamRepository
	profileRepo *repository.ProfileRepository
	mappingRepo *repository.ManagerTeamRepository
	publisher   events.Publisher
	logger      *zap.Logger
}

// NewOrgService creates a new OrgService instance
func NewOrgService(
	resolver *ScopeResolver,
	authorizer *authz.Authorizer,
	entityRepo *repository.EntityRepository,
	teamRepo *repository.TeamRepository,
	profileRepo *repository.ProfileRepository,
	mappingRepo *repository.ManagerTeamRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) *OrgService {
	return &OrgService{
		resolver:    resolver,
		authorizer:  authorizer,
		entityRepo:  entityRepo,
		teamRepo:    teamRepo,
		profileRepo: profileRepo,
		mappingRepo: mappingRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *OrgService) authorize(ctx context.Context, object, action string) (*Viewer, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if !s.authorizer.Allowed(v.Role(), object, action) {
		if action == authz.ActionView {
			return nil, fmt.Errorf("%w: %s may not view %s", ErrPermissionDenied, v.Role(), object)
		}
		return nil, newError(ErrPermissionDenied, CodeForbiddenAdminOnly, "only admins can %s %s", action, strings.ReplaceAll(object, "_", " "))
	}
	return v, nil
}

// ListEntities returns entities ordered by name
func (s *OrgService) ListEntities(ctx context.Context, activeOnly bool) ([]domain.EntityDTO, error) {
	if _, err := s.authorize(ctx, authz.ObjectEntity, authz.ActionView); err != nil {
		return nil, err
	}
	entities, err := s.entityRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.EntityDTO, len(entities))
	for i := range entities {
		dtos[i] = mapper.ToEntityDTO(&entities[i])
	}
	return dtos, nil
}

// CreateEntity adds an entity with a unique code
func (s *OrgService) CreateEntity(ctx context.Context, req *domain.CreateEntityRequest) (*domain.EntityDTO, error) {
	v, err := s.authorize(ctx, authz.ObjectEntity, authz.ActionCreate)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if err := s.ensureCodeFree(ctx, code, nil); err != nil {
		return nil, err
	}

	entity := &domain.Entity{
		Name:        strings.TrimSpace(req.Name),
		Code:        code,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.entityRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}

	s.logger.Info("entity created", zap.String("entity_id", entity.ID.String()), zap.String("code", entity.Code))
	s.publish(ctx, v, events.KindCreated, "entity", entity.ID, &entity.ID, nil)

	dto := mapper.ToEntityDTO(entity)
	return &dto, nil
}

// UpdateEntity rewrites an entity
func (s *OrgService) UpdateEntity(ctx context.Context, id uuid.UUID, req *domain.UpdateEntityRequest) (*domain.EntityDTO, error) {
	v, err := s.authorize(ctx, authz.ObjectEntity, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	entity, err := s.entityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrEntityNotFound)
	}
	code := strings.TrimSpace(req.Code)
	if err := s.ensureCodeFree(ctx, code, &id); err != nil {
		return nil, err
	}

	entity.Name = strings.TrimSpace(req.Name)
	entity.Code = code
	entity.Description = req.Description
	if req.IsActive != nil {
		entity.IsActive = *req.IsActive
	}
	if err := s.entityRepo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to update entity: %w", err)
	}

	s.publish(ctx, v, events.KindUpdated, "entity", entity.ID, &entity.ID, nil)
	dto := mapper.ToEntityDTO(entity)
	return &dto, nil
}

// DeleteEntity removes an entity that no team or profile references
func (s *OrgService) DeleteEntity(ctx context.Context, id uuid.UUID) error {
	v, err := s.authorize(ctx, authz.ObjectEntity, authz.ActionDelete)
	if err != nil {
		return err
	}

	if _, err := s.entityRepo.GetByID(ctx, id); err != nil {
		return translate(err, ErrEntityNotFound)
	}
	teams, err := s.teamRepo.CountByEntity(ctx, id)
	if err != nil {
		return err
	}
	profiles, err := s.profileRepo.CountByEntity(ctx, id)
	if err != nil {
		return err
	}
	if teams > 0 || profiles > 0 {
		return newError(ErrConflict, CodeInUse,
			"entity is still used by %d team(s) and %d user(s)", teams, profiles)
	}

	if err := s.entityRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrEntityNotFound)
	}

	s.logger.Info("entity deleted", zap.String("entity_id", id.String()))
	s.publish(ctx, v, events.KindDeleted, "entity", id, &id, nil)
	return nil
}

func (s *OrgService) ensureCodeFree(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.entityRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %v", ErrConflict, ErrDuplicateEntityCode)
	}
	return nil
}

// ListTeams returns teams, optionally within one entity
func (s *OrgService) ListTeams(ctx context.Context, entityID *uuid.UUID) ([]domain.TeamDTO, error) {
	if _, err := s.authorize(ctx, authz.ObjectTeam, authz.ActionView); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.List(ctx, entityID)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.TeamDTO, len(teams))
	for i := range teams {
		dtos[i] = mapper.ToTeamDTO(&teams[i])
	}
	return dtos, nil
}

// CreateTeam adds a team, optionally under an existing entity
func (s *OrgService) CreateTeam(ctx context.Context, req *domain.CreateTeamRequest) (*domain.TeamDTO, error) {
	v, err := s.authorize(ctx, authz.ObjectTeam, authz.ActionCreate)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEntity(ctx, req.EntityID); err != nil {
		return nil, err
	}

	team := &domain.Team{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		EntityID:    req.EntityID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.logger.Info("team created", zap.String("team_id", team.ID.String()))
	s.publish(ctx, v, events.KindCreated, "team", team.ID, team.EntityID, &team.ID)

	dto := mapper.ToTeamDTO(team)
	return &dto, nil
}

// UpdateTeam rewrites a team
func (s *OrgService) UpdateTeam(ctx context.Context, id uuid.UUID, req *domain.UpdateTeamRequest) (*domain.TeamDTO, error) {
	v, err := s.authorize(ctx, authz.ObjectTeam, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrTeamNotFound)
	}
	if err := s.ensureEntity(ctx, req.EntityID); err != nil {
		return nil, err
	}

	team.Name = strings.TrimSpace(req.Name)
	team.Description = req.Description
	team.EntityID = req.EntityID
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	s.publish(ctx, v, events.KindUpdated, "team", team.ID, team.EntityID, &team.ID)
	dto := mapper.ToTeamDTO(team)
	return &dto, nil
}

// DeleteTeam removes a team; profiles placed in it lose their team
func (s *OrgService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	v, err := s.authorize(ctx, authz.ObjectTeam, authz.ActionDelete)
	if err != nil {
		return err
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return translate(err, ErrTeamNotFound)
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrTeamNotFound)
	}

	s.logger.Info("team deleted", zap.String("team_id", id.String()))
	s.publish(ctx, v, events.KindDeleted, "team", id, team.EntityID, &id)
	return nil
}

func (s *OrgService) ensureEntity(ctx context.Context, entityID *uuid.UUID) error {
	if entityID == nil {
		return nil
	}
	if _, err := s.entityRepo.GetByID(ctx, *entityID); err != nil {
		return translate(err, fmt.Errorf("%w: entity does not exist", ErrInvalidInput))
	}
	return nil
}

// ListManagerMembers returns the explicit mappings of a manager visible to the caller
func (s *OrgService) ListManagerMembers(ctx context.Context, managerID uuid.UUID) ([]domain.ManagerMemberDTO, error) {
	v, err := s.authorize(ctx, authz.ObjectManagerTeam, authz.ActionView)
	if err != nil {
		return nil, err
	}
	if !v.Scope.Contains(managerID) {
		return nil, ErrManagerNotFound
	}

	members, err := s.mappingRepo.ListForManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	dtos := make([]domain.ManagerMemberDTO, len(members))
	for i := range members {
		dtos[i] = mapper.ToManagerMemberDTO(&members[i], assigneeName(v.Dir, members[i].AccountManagerID))
	}
	return dtos, nil
}

// AddManagerMember maps an account manager to a manager
func (s *OrgService) AddManagerMember(ctx context.Context, managerID uuid.UUID, req *domain.AddManagerMemberRequest) (*domain.ManagerMemberDTO, error) {
	v, err := s.authorize(ctx, authz.ObjectManagerTeam, authz.ActionCreate)
	if err != nil {
		return nil, err
	}

	mgr, err := s.profileRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, translate(err, ErrManagerNotFound)
	}
	if mgr.RoleOrUnset() != domain.RoleManager {
		return nil, ErrManagerNotFound
	}
	member, err := s.profileRepo.GetByID(ctx, req.AccountManagerID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	if member.Role == nil || !member.Role.IsContributor() {
		return nil, fmt.Errorf("%w: only account managers can be mapped to a manager", ErrInvalidInput)
	}

	exists, err := s.mappingRepo.Exists(ctx, managerID, member.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %v", ErrConflict, ErrMappingAlreadyExists)
	}

	mapping := &domain.ManagerTeamMember{ManagerID: managerID, AccountManagerID: member.ID}
	if err := s.mappingRepo.Add(ctx, mapping); err != nil {
		return nil, fmt.Errorf("failed to add manager team member: %w", err)
	}

	s.logger.Info("manager team member added",
		zap.String("manager_id", managerID.String()),
		zap.String("account_manager_id", member.ID.String()),
	)
	s.publish(ctx, v, events.KindCreated, "manager_team_member", mapping.ID, mgr.EntityID, mgr.DivisionID)

	dto := mapper.ToManagerMemberDTO(mapping, member.DisplayName())
	return &dto, nil
}

// RemoveManagerMember deletes an explicit mapping
func (s *OrgService) RemoveManagerMember(ctx context.Context, managerID, memberID uuid.UUID) error {
	v, err := s.authorize(ctx, authz.ObjectManagerTeam, authz.ActionDelete)
	if err != nil {
		return err
	}
	if err := s.mappingRepo.Remove(ctx, managerID, memberID); err != nil {
		return translate(err, ErrMappingNotFound)
	}

	s.publish(ctx, v, events.KindDeleted, "manager_team_member", memberID, nil, nil)
	return nil
}

func (s *OrgService) publish(ctx context.Context, v *Viewer, kind events.Kind, resource string, id uuid.UUID, entityID, teamID *uuid.UUID) {
	s.resolver.Invalidate()
	ev := events.New(events.OrgUnitsChanged, kind, resource, id)
	ev.ActorID = v.User.UserID
	ev.EntityID = entityID
	ev.TeamID = teamID
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish org event", zap.Error(err))
	}
}
