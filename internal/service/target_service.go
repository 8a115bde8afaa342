package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/mapper"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Target service errors
var (
	ErrTargetNotFound  = errors.New("sales target not found")
	ErrManagerNotFound = errors.New("manager not found")
)

// TargetService manages sales targets and measures achievement against them
type TargetService struct {
	resolver   *ScopeResolver
	authorizer *authz.Authorizer
	targetRepo *repository.SalesTargetRepository
	ledgers    *ledgerReader
	publisher  events.Publisher
	logger     *zap.Logger
}

// NewTargetService creates a new TargetService instance
func NewTargetService(
	resolver *ScopeResolver,
	authorizer *authz.Authorizer,
	targetRepo *repository.SalesTargetRepository,
	opportunityRepo *repository.OpportunityRepository,
	projectRepo *repository.ProjectRepository,
	pipelineItemRepo *repository.PipelineItemRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) *TargetService {
	return &TargetService{
		resolver:   resolver,
		authorizer: authorizer,
		targetRepo: targetRepo,
		ledgers: &ledgerReader{
			opportunityRepo:  opportunityRepo,
			projectRepo:      projectRepo,
			pipelineItemRepo: pipelineItemRepo,
		},
		publisher: publisher,
		logger:    logger,
	}
}

// List returns targets assigned inside the caller's scope, optionally overlapping p
func (s *TargetService) List(ctx context.Context, p *period.Period) ([]domain.SalesTargetDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	filter := repository.SalesTargetFilter{Period: p}
	if !v.Scope.Unrestricted {
		filter.Assignees = v.Scope.ProfileIDs()
	}
	targets, err := s.targetRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.SalesTargetDTO, len(targets))
	for i := range targets {
		dtos[i] = mapper.ToSalesTargetDTO(&targets[i], assigneeName(v.Dir, targets[i].AssignedTo))
	}
	return dtos, nil
}

// Create assigns a new target to a profile inside the caller's scope
func (s *TargetService) Create(ctx context.Context, req *domain.CreateSalesTargetRequest) (*domain.SalesTargetDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectSalesTarget, authz.ActionCreate); err != nil {
		return nil, translate(err, ErrTargetNotFound)
	}

	createdBy := v.User.UserID
	target := &domain.SalesTarget{CreatedBy: &createdBy}
	if err := s.applyRequest(v, target, req); err != nil {
		return nil, err
	}

	if err := s.targetRepo.Create(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to create sales target: %w", err)
	}

	s.logger.Info("sales target created",
		zap.String("target_id", target.ID.String()),
		zap.String("assigned_to", target.AssignedTo.String()),
		zap.String("measure", string(target.Measure)),
	)
	s.publish(ctx, v, events.KindCreated, target)

	dto := mapper.ToSalesTargetDTO(target, assigneeName(v.Dir, target.AssignedTo))
	return &dto, nil
}

// Update rewrites a target; both the old and the new assignee must be in scope
func (s *TargetService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateSalesTargetRequest) (*domain.SalesTargetDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectSalesTarget, authz.ActionUpdate); err != nil {
		return nil, translate(err, ErrTargetNotFound)
	}

	target, err := s.visibleTarget(ctx, v, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyRequest(v, target, req); err != nil {
		return nil, err
	}

	if err := s.targetRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update sales target: %w", err)
	}
	s.publish(ctx, v, events.KindUpdated, target)

	dto := mapper.ToSalesTargetDTO(target, assigneeName(v.Dir, target.AssignedTo))
	return &dto, nil
}

// Delete removes a target assigned inside the caller's scope
func (s *TargetService) Delete(ctx context.Context, id uuid.UUID) error {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectSalesTarget, authz.ActionDelete); err != nil {
		return translate(err, ErrTargetNotFound)
	}

	target, err := s.visibleTarget(ctx, v, id)
	if err != nil {
		return err
	}
	if err := s.targetRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrTargetNotFound)
	}

	s.logger.Info("sales target deleted", zap.String("target_id", id.String()))
	s.publish(ctx, v, events.KindDeleted, target)
	return nil
}

// ProRate previews how an amount spreads over [start, end]
func (s *TargetService) ProRate(amount decimal.Decimal, start, end time.Time) (*domain.ProRateDTO, error) {
	p, err := period.New(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	dto := mapper.ToProRateDTO(period.ProRate(amount, p.Start, p.End))
	return &dto, nil
}

func (s *TargetService) visibleTarget(ctx context.Context, v *Viewer, id uuid.UUID) (*domain.SalesTarget, error) {
	target, err := s.targetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrTargetNotFound)
	}
	if !v.Scope.Contains(target.AssignedTo) {
		return nil, ErrTargetNotFound
	}
	return target, nil
}

func (s *TargetService) applyRequest(v *Viewer, target *domain.SalesTarget, req *domain.CreateSalesTargetRequest) error {
	if !req.Measure.IsValid() {
		return fmt.Errorf("%w: unknown measure %q", ErrInvalidInput, req.Measure)
	}
	amount := decimal.NewFromFloat(req.Amount)
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	p, err := period.Parse("", req.PeriodStart, req.PeriodEnd, time.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	assignee, ok := v.Dir.Profile(req.AssignedTo)
	if !ok || !v.Scope.Contains(req.AssignedTo) {
		return fmt.Errorf("%w: assignee", ErrUserNotFound)
	}
	if !assignee.IsActive {
		return fmt.Errorf("%w: assignee is deactivated", ErrInvalidInput)
	}

	target.AssignedTo = assignee.ID
	target.Measure = req.Measure
	target.Amount = amount
	target.PeriodStart = p.Start
	target.PeriodEnd = p.End
	return nil
}

func (s *TargetService) publish(ctx context.Context, v *Viewer, kind events.Kind, target *domain.SalesTarget) {
	ev := events.New(events.TargetsChanged, kind, "sales_target", target.ID)
	ev.ActorID = v.User.UserID
	if p, ok := v.Dir.Profile(target.AssignedTo); ok {
		ev.EntityID = p.EntityID
		ev.TeamID = p.DivisionID
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish target event", zap.Error(err))
	}
}

func assigneeName(dir *hierarchy.Directory, profileID uuid.UUID) string {
	if p, ok := dir.Profile(profileID); ok {
		return p.DisplayName()
	}
	return ""
}

// targetSums are the pro-rated target amounts of one profile
type targetSums struct {
	revenue period.Breakdown
	margin  period.Breakdown
}

func sumTargets(targets []domain.SalesTarget) map[uuid.UUID]*targetSums {
	sums := make(map[uuid.UUID]*targetSums)
	for i := range targets {
		t := &targets[i]
		ts, ok := sums[t.AssignedTo]
		if !ok {
			ts = &targetSums{}
			sums[t.AssignedTo] = ts
		}
		b := period.TableProRate(t.Amount, t.PeriodStart, t.PeriodEnd)
		dst := &ts.revenue
		if t.Measure == domain.TargetMeasureMargin {
			dst = &ts.margin
		}
		dst.Monthly = dst.Monthly.Add(b.Monthly)
		dst.Quarterly = dst.Quarterly.Add(b.Quarterly)
	}
	return sums
}

func measure(target period.Breakdown, achieved decimal.Decimal) domain.MeasureAchievementDTO {
	pct, _ := period.Percentage(achieved, target.Quarterly).Round(1).Float64()
	return domain.MeasureAchievementDTO{
		Target:          mapper.Money(target.Quarterly),
		Achieved:        mapper.Money(achieved),
		Gap:             mapper.Money(target.Quarterly.Sub(achieved)),
		Percentage:      pct,
		Status:          period.TargetStatus(target.Quarterly, achieved),
		MonthlyTarget:   mapper.Money(target.Monthly),
		QuarterlyTarget: mapper.Money(target.Quarterly),
	}
}

// achievementRow is one profile's line before it is rendered
type achievementRow struct {
	profile  *domain.UserProfile
	role     domain.Role
	targets  targetSums
	achieved figures
}

// Achievement measures every visible head, manager and account manager against
// their targets for p. Managers are measured on the sum of their resolved team;
// everyone else on their own won opportunities.
func (s *TargetService) Achievement(ctx context.Context, p period.Period) (*domain.AchievementReportDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectReport, authz.ActionView); err != nil {
		return nil, translate(err, ErrNotFound)
	}

	opts := s.resolver.Options()
	var rows []*achievementRow
	teams := make(map[uuid.UUID][]uuid.UUID)
	owners := make(map[uuid.UUID]bool)
	profileIDs := []uuid.UUID{}

	for _, prof := range visibleProfiles(v) {
		role := prof.RoleOrUnset()
		if role != domain.RoleHead && role != domain.RoleManager && !role.IsContributor() {
			continue
		}
		rows = append(rows, &achievementRow{profile: prof, role: role})
		profileIDs = append(profileIDs, prof.ID)

		if role == domain.RoleManager {
			var members []uuid.UUID
			for _, m := range hierarchy.TeamOf(*prof, v.Dir, opts) {
				members = append(members, m.UserID)
				owners[m.UserID] = true
			}
			teams[prof.ID] = members
			continue
		}
		owners[prof.UserID] = true
	}

	ownerIDs := make([]uuid.UUID, 0, len(owners))
	for id := range owners {
		ownerIDs = append(ownerIDs, id)
	}

	var (
		l       *ledger
		targets []domain.SalesTarget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		l, err = s.ledgers.read(gctx, repository.OwnersOf(ownerIDs...), p)
		return err
	})
	g.Go(func() error {
		var err error
		targets, err = s.targetRepo.List(gctx, repository.SalesTargetFilter{
			Assignees: profileIDs,
			Period:    &p,
		})
		if err != nil {
			return fmt.Errorf("failed to load targets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sums := sumTargets(targets)
	var totalTargets targetSums
	var totalAchieved figures
	for _, row := range rows {
		if ts, ok := sums[row.profile.ID]; ok {
			row.targets = *ts
		}
		if row.role == domain.RoleManager {
			row.achieved = l.sum(teams[row.profile.ID])
			continue
		}
		row.achieved = l.of(row.profile.UserID)
		// manager figures are derived from these rows and would count twice
		totalTargets.revenue = addBreakdown(totalTargets.revenue, row.targets.revenue)
		totalTargets.margin = addBreakdown(totalTargets.margin, row.targets.margin)
		totalAchieved = totalAchieved.add(row.achieved)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].role.Rank(), rows[j].role.Rank()
		if ri != rj {
			return ri < rj
		}
		qi, qj := rows[i].targets.revenue.Quarterly, rows[j].targets.revenue.Quarterly
		if !qi.Equal(qj) {
			return qi.GreaterThan(qj)
		}
		return rows[i].profile.DisplayName() < rows[j].profile.DisplayName()
	})

	report := &domain.AchievementReportDTO{
		Period:  mapper.ToPeriodDTO(p),
		Rows:    make([]domain.AchievementRowDTO, 0, len(rows)),
		Revenue: measure(totalTargets.revenue, totalAchieved.Revenue),
		Margin:  measure(totalTargets.margin, totalAchieved.Margin),
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, domain.AchievementRowDTO{
			ProfileID: row.profile.ID,
			Name:      row.profile.DisplayName(),
			Role:      row.role,
			Revenue:   measure(row.targets.revenue, row.achieved.Revenue),
			Margin:    measure(row.targets.margin, row.achieved.Margin),
		})
	}
	return report, nil
}

// ManagerArchived reports realized revenue and margin of one manager's team
func (s *TargetService) ManagerArchived(ctx context.Context, managerID uuid.UUID, p period.Period) (*domain.ManagerArchivedDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectReport, authz.ActionView); err != nil {
		return nil, translate(err, ErrNotFound)
	}

	mgr, ok := v.Dir.Profile(managerID)
	if !ok || mgr.RoleOrUnset() != domain.RoleManager || !v.Scope.Contains(mgr.ID) {
		return nil, ErrManagerNotFound
	}
	if v.Role() == domain.RoleHead && !sameOrgUnitAsHead(mgr, &v.Profile) {
		return nil, ErrManagerNotFound
	}

	members := s.teamUserIDs(mgr, v.Dir)
	l, err := s.ledgers.read(ctx, repository.OwnersOf(members...), p)
	if err != nil {
		return nil, err
	}
	row := managerArchivedRow(mgr, l.sum(members))
	return &row, nil
}

// HeadManagerArchived reports one row per manager visible to a head or admin
func (s *TargetService) HeadManagerArchived(ctx context.Context, p period.Period) (*domain.ManagerArchivedReportDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if v.Role() != domain.RoleAdmin && v.Role() != domain.RoleHead {
		return nil, newError(ErrPermissionDenied, CodeForbiddenAdminOnly, "only heads and admins can view manager reports")
	}

	var managers []*domain.UserProfile
	teams := make(map[uuid.UUID][]uuid.UUID)
	var owners []uuid.UUID
	for _, prof := range visibleProfiles(v) {
		if prof.RoleOrUnset() != domain.RoleManager {
			continue
		}
		if v.Role() == domain.RoleHead && !sameOrgUnitAsHead(prof, &v.Profile) {
			continue
		}
		managers = append(managers, prof)
		teams[prof.ID] = s.teamUserIDs(prof, v.Dir)
		owners = append(owners, teams[prof.ID]...)
	}

	l, err := s.ledgers.read(ctx, repository.OwnersOf(owners...), p)
	if err != nil {
		return nil, err
	}

	report := &domain.ManagerArchivedReportDTO{
		Period:   mapper.ToPeriodDTO(p),
		Managers: make([]domain.ManagerArchivedDTO, 0, len(managers)),
	}
	var revenue, margin decimal.Decimal
	for _, mgr := range managers {
		f := l.sum(teams[mgr.ID])
		report.Managers = append(report.Managers, managerArchivedRow(mgr, f))
		revenue = revenue.Add(f.Revenue)
		margin = margin.Add(f.Margin)
		report.TotalProjects += f.Projects
	}
	sort.SliceStable(report.Managers, func(i, j int) bool {
		return report.Managers[i].Revenue > report.Managers[j].Revenue
	})
	report.TotalRevenue = mapper.Money(revenue)
	report.TotalMargin = mapper.Money(margin)
	return report, nil
}

func (s *TargetService) teamUserIDs(mgr *domain.UserProfile, dir *hierarchy.Directory) []uuid.UUID {
	var ids []uuid.UUID
	for _, m := range hierarchy.TeamOf(*mgr, dir, s.resolver.Options()) {
		ids = append(ids, m.UserID)
	}
	return ids
}

func managerArchivedRow(mgr *domain.UserProfile, f figures) domain.ManagerArchivedDTO {
	pct, _ := f.MarginPercentage().Round(1).Float64()
	return domain.ManagerArchivedDTO{
		ManagerID:        mgr.ID,
		ManagerName:      mgr.DisplayName(),
		EntityID:         mgr.EntityID,
		TeamID:           mgr.DivisionID,
		Revenue:          mapper.Money(f.Revenue),
		Cost:             mapper.Money(f.Cost),
		Margin:           mapper.Money(f.Margin),
		MarginPercentage: pct,
		ProjectCount:     f.Projects,
	}
}

func addBreakdown(a, b period.Breakdown) period.Breakdown {
	return period.Breakdown{
		Months:    a.Months.Add(b.Months),
		Monthly:   a.Monthly.Add(b.Monthly),
		Quarterly: a.Quarterly.Add(b.Quarterly),
	}
}
