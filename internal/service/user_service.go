package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/mapper"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService manages user profiles: sign-up, role assignment and deletion
type UserService struct {
	resolver    *ScopeResolver
	authorizer  *authz.Authorizer
	profileRepo *repository.ProfileRepository
	entityRepo  *repository.EntityRepository
	teamRepo    *repository.TeamRepository
	publisher   events.Publisher
	logger      *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(
	resolver *ScopeResolver,
	authorizer *authz.Authorizer,
	profileRepo *repository.ProfileRepository,
	entityRepo *repository.EntityRepository,
	teamRepo *repository.TeamRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		resolver:    resolver,
		authorizer:  authorizer,
		profileRepo: profileRepo,
		entityRepo:  entityRepo,
		teamRepo:    teamRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// LoadProfile implements auth.ProfileLoader
func (s *UserService) LoadProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, auth.ErrNoProfile
	}
	return profile, err
}

// SignUp creates the default profile of a new user. Calling it again for the
// same user returns the existing profile.
func (s *UserService) SignUp(ctx context.Context, userID uuid.UUID, email, fullName string) (*domain.UserProfile, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := &domain.UserProfile{
		UserID:   userID,
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
		Role:     domain.RolePtr(domain.RoleAccountManager),
		IsActive: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("profile created on sign-up",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()),
	)
	ev := events.New(events.ProfilesChanged, events.KindCreated, "user_profile", profile.ID)
	ev.ActorID = userID
	s.publish(ctx, ev)
	return profile, nil
}

// Me returns the caller's own profile
func (s *UserService) Me(ctx context.Context) (*domain.UserProfileDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.orgNames(ctx, v.Dir)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToUserProfileDTO(&v.Profile, names)
	return &dto, nil
}

// MyAssignment reports whether the caller is still waiting for an org assignment
func (s *UserService) MyAssignment(ctx context.Context) (*domain.AssignmentDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if v.User.IsSystem {
		return &domain.AssignmentDTO{Role: domain.RoleAdmin}, nil
	}
	dto := mapper.ToAssignmentDTO(hierarchy.Classify(v.Profile))
	return &dto, nil
}

// ListUsers returns profiles matching query and role. The role "pending"
// selects profiles with an incomplete assignment. Admins see everyone; heads
// and managers see their scope plus pending profiles not yet placed in any entity.
func (s *UserService) ListUsers(ctx context.Context, query, role string) ([]domain.UserProfileDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectUserProfile, authz.ActionView); err != nil {
		return nil, translate(err, ErrUserNotFound)
	}

	filter := repository.ProfileFilter{Query: query}
	pendingOnly := false
	if role != "" {
		r, err := domain.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRole, err)
		}
		switch r.Normalize() {
		case domain.RolePending:
			pendingOnly = true
		case domain.RoleAccountManager:
			filter.Roles = []domain.Role{domain.RoleAccountManager, domain.RoleSales}
		default:
			filter.Roles = []domain.Role{r}
		}
	}

	profiles, err := s.profileRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names, err := s.orgNames(ctx, v.Dir)
	if err != nil {
		return nil, err
	}

	dtos := []domain.UserProfileDTO{}
	for i := range profiles {
		p := &profiles[i]
		if !v.Scope.Contains(p.ID) && !unplacedAndPending(p) {
			continue
		}
		dto := mapper.ToUserProfileDTO(p, names)
		if pendingOnly && !dto.Pending {
			continue
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// PendingUsers lists profiles waiting for an org assignment
func (s *UserService) PendingUsers(ctx context.Context) ([]domain.UserProfileDTO, error) {
	return s.ListUsers(ctx, "", string(domain.RolePending))
}

// CountPending counts active profiles with an incomplete assignment, across the whole organization
func (s *UserService) CountPending(ctx context.Context) (int, error) {
	profiles, err := s.profileRepo.List(ctx, repository.ProfileFilter{ActiveOnly: true})
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range profiles {
		if hierarchy.Classify(profiles[i]).Pending {
			n++
		}
	}
	return n, nil
}

// UpdateProfile writes a role and org assignment. Nothing is written when the
// requested values equal the stored ones; the result then reports Changed=false.
func (s *UserService) UpdateProfile(ctx context.Context, profileID uuid.UUID, req *domain.UpdateUserProfileRequest) (*domain.UpdateUserProfileResultDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	target, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}

	role := req.Role.Normalize()
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, req.Role)
	}
	if err := s.authorizeAssignment(v, target, role, req); err != nil {
		return nil, err
	}

	if missing := hierarchy.MissingFields(role, req.EntityID, req.TeamID, req.ManagerID); len(missing) > 0 {
		e := newError(ErrInvalidInput, CodeMissingRoleFields,
			"role %s requires %s", role, strings.Join(missing, ", "))
		e.Fields = missing
		return nil, e
	}
	if err := s.validateReferences(ctx, target, req); err != nil {
		return nil, err
	}

	names, err := s.orgNames(ctx, v.Dir)
	if err != nil {
		return nil, err
	}

	if !assignmentChanged(target, role, req) {
		return &domain.UpdateUserProfileResultDTO{
			Profile: mapper.ToUserProfileDTO(target, names),
			Changed: false,
		}, nil
	}

	if err := s.profileRepo.UpdateAssignment(ctx, target.ID, repository.Assignment{
		Role:      domain.RolePtr(role),
		EntityID:  req.EntityID,
		TeamID:    req.TeamID,
		ManagerID: req.ManagerID,
	}); err != nil {
		return nil, translate(err, ErrUserNotFound)
	}

	updated, err := s.profileRepo.GetByID(ctx, target.ID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound)
	}

	s.logger.Info("profile assignment updated",
		zap.String("profile_id", updated.ID.String()),
		zap.String("role", string(role)),
		zap.String("actor_id", v.User.UserID.String()),
	)
	ev := events.New(events.ProfilesChanged, events.KindUpdated, "user_profile", updated.ID)
	ev.ActorID = v.User.UserID
	ev.EntityID = updated.EntityID
	ev.TeamID = updated.DivisionID
	s.publish(ctx, ev)

	return &domain.UpdateUserProfileResultDTO{
		Profile: mapper.ToUserProfileDTO(updated, names),
		Changed: true,
	}, nil
}

// authorizeAssignment lets admins assign anything. Managers may place account
// managers in their own entity and team, reporting to themselves, and only
// touch profiles in their scope or pending ones not yet placed anywhere.
// Admin profiles are never editable by anyone else.
func (s *UserService) authorizeAssignment(v *Viewer, target *domain.UserProfile, role domain.Role, req *domain.UpdateUserProfileRequest) error {
	if v.Role() == domain.RoleAdmin {
		return nil
	}
	if !s.authorizer.Allowed(v.Role(), authz.ObjectUserProfile, authz.ActionAssign) {
		return newError(ErrPermissionDenied, CodeForbiddenAdminOnly, "only admins can update user profiles")
	}
	if !role.IsContributor() {
		return newError(ErrPermissionDenied, CodeForbiddenAdminOnly, "only admins can assign the %s role", role)
	}
	if target.RoleOrUnset() == domain.RoleAdmin {
		return newError(ErrPermissionDenied, CodeForbiddenAdminOnly, "only admins can change an admin profile")
	}
	if !v.Scope.Contains(target.ID) && !unplacedAndPending(target) {
		return newError(ErrPermissionDenied, CodeOutsideTeam, "profile is outside your team")
	}
	mgr := &v.Profile
	if !sameIDPtr(req.EntityID, mgr.EntityID) || !sameIDPtr(req.TeamID, mgr.DivisionID) ||
		req.ManagerID == nil || *req.ManagerID != mgr.ID {
		return newError(ErrPermissionDenied, CodeOutsideTeam, "managers can only assign account managers to their own team")
	}
	return nil
}

// unplacedAndPending reports whether p has no entity yet and still awaits an
// assignment. Such profiles are open to every head and manager.
func unplacedAndPending(p *domain.UserProfile) bool {
	return p.EntityID == nil && hierarchy.Classify(*p).Pending
}

func (s *UserService) validateReferences(ctx context.Context, target *domain.UserProfile, req *domain.UpdateUserProfileRequest) error {
	if req.EntityID != nil {
		if _, err := s.entityRepo.GetByID(ctx, *req.EntityID); err != nil {
			return translate(err, fmt.Errorf("%w: entity does not exist", ErrInvalidInput))
		}
	}
	if req.TeamID != nil {
		team, err := s.teamRepo.GetByID(ctx, *req.TeamID)
		if err != nil {
			return translate(err, fmt.Errorf("%w: team does not exist", ErrInvalidInput))
		}
		if team.EntityID != nil && !sameIDPtr(team.EntityID, req.EntityID) {
			return fmt.Errorf("%w: team belongs to another entity", ErrInvalidInput)
		}
	}
	if req.ManagerID != nil {
		if *req.ManagerID == target.ID {
			return fmt.Errorf("%w: a profile cannot manage itself", ErrInvalidInput)
		}
		mgr, err := s.profileRepo.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return translate(err, fmt.Errorf("%w: manager does not exist", ErrInvalidInput))
		}
		if mgr.RoleOrUnset() != domain.RoleManager {
			return fmt.Errorf("%w: assigned manager does not have the manager role", ErrInvalidInput)
		}
	}
	return nil
}

func assignmentChanged(p *domain.UserProfile, role domain.Role, req *domain.UpdateUserProfileRequest) bool {
	return p.RoleOrUnset() != role ||
		!sameIDPtr(p.EntityID, req.EntityID) ||
		!sameIDPtr(p.DivisionID, req.TeamID) ||
		!sameIDPtr(p.ManagerID, req.ManagerID)
}

// sameIDPtr treats two nils as equal
func sameIDPtr(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// DeleteUser removes a profile and everything assigned to it. Admins only;
// nobody may delete themselves or another admin.
func (s *UserService) DeleteUser(ctx context.Context, profileID uuid.UUID) error {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	if !s.authorizer.Allowed(v.Role(), authz.ObjectUserProfile, authz.ActionDelete) {
		return newError(ErrPermissionDenied, CodeForbiddenAdminOnly, "only admins can delete users")
	}

	target, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return translate(err, ErrUserNotFound)
	}
	if target.UserID == v.User.UserID {
		return newError(ErrPermissionDenied, CodeSelfDelete, "you cannot delete your own account")
	}
	if target.RoleOrUnset() == domain.RoleAdmin {
		return newError(ErrPermissionDenied, CodeAdminDelete, "admin accounts cannot be deleted")
	}

	if err := s.profileRepo.Delete(ctx, profileID); err != nil {
		return translate(err, ErrUserNotFound)
	}

	s.logger.Info("user deleted",
		zap.String("profile_id", profileID.String()),
		zap.String("actor_id", v.User.UserID.String()),
	)
	ev := events.New(events.ProfilesChanged, events.KindDeleted, "user_profile", profileID)
	ev.ActorID = v.User.UserID
	ev.EntityID = target.EntityID
	ev.TeamID = target.DivisionID
	s.publish(ctx, ev)
	return nil
}

func (s *UserService) orgNames(ctx context.Context, dir *hierarchy.Directory) (mapper.OrgNames, error) {
	names := mapper.OrgNames{
		Entities: make(map[uuid.UUID]string),
		Teams:    make(map[uuid.UUID]string),
		Profiles: make(map[uuid.UUID]string),
	}
	entities, err := s.entityRepo.List(ctx, false)
	if err != nil {
		return names, err
	}
	for _, e := range entities {
		names.Entities[e.ID] = e.Name
	}
	teams, err := s.teamRepo.List(ctx, nil)
	if err != nil {
		return names, err
	}
	for _, t := range teams {
		names.Teams[t.ID] = t.Name
	}
	for _, p := range dir.Profiles() {
		names.Profiles[p.ID] = p.DisplayName()
	}
	return names, nil
}

func (s *UserService) publish(ctx context.Context, ev events.Event) {
	s.resolver.Invalidate()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish profile event", zap.Error(err))
	}
}
