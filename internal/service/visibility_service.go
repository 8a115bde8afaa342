package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/mapper"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"go.uber.org/zap"
)

// DirectorySource hands out hierarchy snapshots, normally a *DirectoryCache
type DirectorySource interface {
	Directory(ctx context.Context) (*hierarchy.Directory, error)
}

// Viewer is the caller of a request with their resolved visibility
type Viewer struct {
	User    *auth.UserContext
	Profile domain.UserProfile
	Scope   hierarchy.Scope
	Dir     *hierarchy.Directory
}

// Role returns the viewer's normalized role
func (v *Viewer) Role() domain.Role {
	return v.Profile.RoleOrUnset()
}

// ScopeResolver turns the request user into a Viewer
type ScopeResolver struct {
	directory DirectorySource
	opts      hierarchy.Options
}

// NewScopeResolver creates a resolver over a directory source
func NewScopeResolver(directory DirectorySource, opts hierarchy.Options) *ScopeResolver {
	return &ScopeResolver{directory: directory, opts: opts}
}

// Options returns the hierarchy options in effect
func (r *ScopeResolver) Options() hierarchy.Options {
	return r.opts
}

// Invalidator drops cached hierarchy state
type Invalidator interface {
	Invalidate()
}

// Invalidate drops the cached directory when the source keeps one, so the
// next Resolve sees a mutation that has just been committed.
func (r *ScopeResolver) Invalidate() {
	if inv, ok := r.directory.(Invalidator); ok {
		inv.Invalidate()
	}
}

// Resolve loads the directory and computes the caller's scope.
// The directory copy of the caller's profile wins over the request copy.
func (r *ScopeResolver) Resolve(ctx context.Context) (*Viewer, error) {
	user, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	dir, err := r.directory.Directory(ctx)
	if err != nil {
		return nil, err
	}

	profile := user.Profile()
	if stored, ok := dir.ProfileByUserID(user.UserID); ok {
		profile = *stored
	}

	scope := hierarchy.Resolve(profile, dir, r.opts)
	if user.IsSystem {
		scope = hierarchy.UnrestrictedScope(profile.ID)
	}

	return &Viewer{User: user, Profile: profile, Scope: scope, Dir: dir}, nil
}

// DrillDown narrows a listing below the viewer's scope.
// RepID is an identity subject; ManagerID is a manager's profile ID.
type DrillDown struct {
	RepID     *uuid.UUID
	ManagerID *uuid.UUID
}

// owners computes the owner restriction for a drill-down. Every failed
// check yields an empty restriction rather than an error.
func (r *ScopeResolver) owners(v *Viewer, dd DrillDown) repository.Owners {
	if dd.ManagerID == nil {
		if dd.RepID == nil {
			return repository.ScopeOwners(v.Scope)
		}
		if v.Scope.ContainsUser(*dd.RepID) {
			return repository.OwnersOf(*dd.RepID)
		}
		return repository.OwnersOf()
	}

	mgr, ok := v.Dir.Profile(*dd.ManagerID)
	if !ok || mgr.RoleOrUnset() != domain.RoleManager || !v.Scope.Contains(mgr.ID) {
		return repository.OwnersOf()
	}
	if v.Role() == domain.RoleHead && !sameOrgUnitAsHead(mgr, &v.Profile) {
		return repository.OwnersOf()
	}

	ids := []uuid.UUID{mgr.UserID}
	for _, m := range hierarchy.TeamOf(*mgr, v.Dir, r.opts) {
		// members the viewer cannot see stay hidden even if the manager can
		if v.Scope.ContainsUser(m.UserID) {
			ids = append(ids, m.UserID)
		}
	}

	if dd.RepID != nil {
		for _, id := range ids {
			if id == *dd.RepID {
				return repository.OwnersOf(id)
			}
		}
		return repository.OwnersOf()
	}
	return repository.OwnersOf(ids...)
}

// sameOrgUnitAsHead checks a drilled profile against the head's team, or the
// head's entity when the head has no team.
func sameOrgUnitAsHead(p, head *domain.UserProfile) bool {
	if head.DivisionID != nil {
		return p.DivisionID != nil && *p.DivisionID == *head.DivisionID
	}
	return head.EntityID != nil && p.EntityID != nil && *p.EntityID == *head.EntityID
}

// VisibilityService answers "what may this viewer see" for opportunities,
// dropdown sources and pipeline overviews.
type VisibilityService struct {
	resolver        *ScopeResolver
	opportunityRepo *repository.OpportunityRepository
	logger          *zap.Logger
}

// NewVisibilityService creates a new VisibilityService instance
func NewVisibilityService(
	resolver *ScopeResolver,
	opportunityRepo *repository.OpportunityRepository,
	logger *zap.Logger,
) *VisibilityService {
	return &VisibilityService{
		resolver:        resolver,
		opportunityRepo: opportunityRepo,
		logger:          logger,
	}
}

// ScopeFor returns the resolved scope of the caller
func (s *VisibilityService) ScopeFor(ctx context.Context) (hierarchy.Scope, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return hierarchy.Scope{}, err
	}
	return v.Scope, nil
}

// Scope returns the caller's scope with member names
func (s *VisibilityService) Scope(ctx context.Context) (*domain.ScopeDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToScopeDTO(v.Scope, v.Dir)
	return &dto, nil
}

// OpportunityQuery filters opportunity listings
type OpportunityQuery struct {
	DrillDown
	Stage            string
	ExcludePipelined bool
	Sort             repository.SortConfig
	Limit            int
}

// ListOpportunities returns non-archived opportunities owned inside the caller's scope
func (s *VisibilityService) ListOpportunities(ctx context.Context, q OpportunityQuery) ([]domain.OpportunityDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	owners := s.resolver.owners(v, q.DrillDown)
	if !owners.All && len(owners.IDs) == 0 && (q.RepID != nil || q.ManagerID != nil) {
		s.logger.Info("drill-down outside scope returned no rows",
			zap.String("viewer_id", v.Profile.ID.String()),
			zap.String("role", string(v.Role())),
		)
	}

	opps, err := s.opportunityRepo.List(ctx, repository.OpportunityFilter{
		Owners:           owners,
		Stage:            q.Stage,
		ExcludePipelined: q.ExcludePipelined,
		Sort:             q.Sort,
		Limit:            q.Limit,
	})
	if err != nil {
		return nil, err
	}
	return mapper.ToOpportunityDTOs(opps), nil
}

// TeamPipeline groups the open opportunities in scope by stage
func (s *VisibilityService) TeamPipeline(ctx context.Context, dd DrillDown) (*domain.PipelineOverviewDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	opps, err := s.opportunityRepo.ListOpen(ctx, s.resolver.owners(v, dd))
	if err != nil {
		return nil, err
	}
	overview := pipelineByStage(opps)
	return &overview, nil
}

func pipelineByStage(opps []domain.Opportunity) domain.PipelineOverviewDTO {
	type bucket struct {
		count int
		value decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	total := decimal.Zero
	for i := range opps {
		b, ok := buckets[opps[i].Stage]
		if !ok {
			b = &bucket{}
			buckets[opps[i].Stage] = b
		}
		b.count++
		b.value = b.value.Add(opps[i].Amount)
		total = total.Add(opps[i].Amount)
	}

	overview := domain.PipelineOverviewDTO{
		Stages:     make([]domain.PipelineStageDTO, 0, len(buckets)),
		TotalCount: len(opps),
		TotalValue: mapper.Money(total),
	}
	for stage, b := range buckets {
		overview.Stages = append(overview.Stages, domain.PipelineStageDTO{
			Stage: stage,
			Count: b.count,
			Value: mapper.Money(b.value),
		})
	}
	sort.Slice(overview.Stages, func(i, j int) bool {
		return overview.Stages[i].Stage < overview.Stages[j].Stage
	})
	return overview
}

// AvailableReps lists the account managers the caller may filter by.
// Option IDs are identity subjects, matching opportunity owners.
func (s *VisibilityService) AvailableReps(ctx context.Context) ([]domain.OptionDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	options := []domain.OptionDTO{}
	for _, p := range visibleProfiles(v) {
		if p.Role != nil && p.Role.IsContributor() {
			options = append(options, domain.OptionDTO{ID: p.UserID, Name: p.DisplayName()})
		}
	}
	sortOptions(options)
	return options, nil
}

// AvailableManagers lists the managers the caller may drill into.
// Option IDs are profile IDs.
func (s *VisibilityService) AvailableManagers(ctx context.Context) ([]domain.OptionDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	options := []domain.OptionDTO{}
	if v.Role().IsContributor() || v.Role() == domain.RoleUnset {
		return options, nil
	}
	for _, p := range visibleProfiles(v) {
		if p.RoleOrUnset() != domain.RoleManager {
			continue
		}
		if v.Role() == domain.RoleHead && !sameOrgUnitAsHead(p, &v.Profile) {
			continue
		}
		options = append(options, domain.OptionDTO{ID: p.ID, Name: p.DisplayName()})
	}
	sortOptions(options)
	return options, nil
}

// visibleProfiles returns the active profiles of the viewer's scope
func visibleProfiles(v *Viewer) []*domain.UserProfile {
	var out []*domain.UserProfile
	if v.Scope.Unrestricted {
		all := v.Dir.Profiles()
		for i := range all {
			if all[i].IsActive {
				out = append(out, &all[i])
			}
		}
		return out
	}
	for _, m := range v.Scope.Members() {
		if p, ok := v.Dir.Profile(m.ProfileID); ok && p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

func sortOptions(options []domain.OptionDTO) {
	sort.Slice(options, func(i, j int) bool {
		return options[i].Name < options[j].Name
	})
}
