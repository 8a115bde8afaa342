package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/mapper"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// topPerformerCount is how many performers the summary lists
const topPerformerCount = 5

// SummaryService computes the sales dashboard for the caller's scope
type SummaryService struct {
	resolver        *ScopeResolver
	authorizer      *authz.Authorizer
	opportunityRepo *repository.OpportunityRepository
	projectRepo     *repository.ProjectRepository
	targetRepo      *repository.SalesTargetRepository
	ledgers         *ledgerReader
	logger          *zap.Logger
}

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(
	resolver *ScopeResolver,
	authorizer *authz.Authorizer,
	opportunityRepo *repository.OpportunityRepository,
	projectRepo *repository.ProjectRepository,
	pipelineItemRepo *repository.PipelineItemRepository,
	targetRepo *repository.SalesTargetRepository,
	logger *zap.Logger,
) *SummaryService {
	return &SummaryService{
		resolver:        resolver,
		authorizer:      authorizer,
		opportunityRepo: opportunityRepo,
		projectRepo:     projectRepo,
		targetRepo:      targetRepo,
		ledgers: &ledgerReader{
			opportunityRepo:  opportunityRepo,
			projectRepo:      projectRepo,
			pipelineItemRepo: pipelineItemRepo,
		},
		logger: logger,
	}
}

// SalesSummary aggregates realized sales, targets and pipeline for p
func (s *SummaryService) SalesSummary(ctx context.Context, p period.Period) (*domain.SalesSummaryDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectReport, authz.ActionView); err != nil {
		return nil, translate(err, ErrNotFound)
	}

	owners := repository.ScopeOwners(v.Scope)
	targetFilter := repository.SalesTargetFilter{Period: &p, Measure: domain.TargetMeasureRevenue}
	if !v.Scope.Unrestricted {
		targetFilter.Assignees = v.Scope.ProfileIDs()
	}

	var (
		l        *ledger
		open     []domain.Opportunity
		projects []domain.Project
		targets  []domain.SalesTarget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		l, err = s.ledgers.read(gctx, owners, p)
		return err
	})
	g.Go(func() error {
		var err error
		open, err = s.opportunityRepo.ListOpen(gctx, owners)
		if err != nil {
			return fmt.Errorf("failed to load open opportunities: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		projects, err = s.projectRepo.CreatedInPeriod(gctx, owners, p)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		targets, err = s.targetRepo.List(gctx, targetFilter)
		if err != nil {
			return fmt.Errorf("failed to load targets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := l.total()
	targetAmount := decimal.Zero
	for i := range targets {
		b := period.TableProRate(targets[i].Amount, targets[i].PeriodStart, targets[i].PeriodEnd)
		targetAmount = targetAmount.Add(b.Quarterly)
	}

	summary := &domain.SalesSummaryDTO{
		Period:          mapper.ToPeriodDTO(p),
		TotalRevenue:    mapper.Money(total.Revenue),
		TotalMargin:     mapper.Money(total.Margin),
		DealsClosed:     total.Deals,
		TopPerformers:   topPerformers(l, v),
		RevenueByMonth:  revenueByMonth(projects, p),
		PipelineByStage: pipelineByStage(open).Stages,
	}
	summary.MarginPercentage = round1(total.MarginPercentage())
	summary.TargetAchievement = round1(period.Percentage(total.Revenue, targetAmount))
	if total.Deals > 0 {
		summary.AverageDealSize = mapper.Money(total.Revenue.Div(decimal.NewFromInt(int64(total.Deals))))
	}
	if len(open) > 0 {
		summary.ConversionRate = round1(period.Percentage(
			decimal.NewFromInt(int64(total.Deals)),
			decimal.NewFromInt(int64(len(open))),
		))
	}
	return summary, nil
}

func topPerformers(l *ledger, v *Viewer) []domain.PerformerDTO {
	performers := []domain.PerformerDTO{}
	revenues := make(map[uuid.UUID]decimal.Decimal)
	for userID, f := range l.byOwner {
		p, ok := v.Dir.ProfileByUserID(userID)
		if !ok {
			continue
		}
		revenues[p.ID] = f.Revenue
		performers = append(performers, domain.PerformerDTO{
			ProfileID: p.ID,
			Name:      p.DisplayName(),
			Revenue:   mapper.Money(f.Revenue),
			Deals:     f.Deals,
		})
	}
	sort.Slice(performers, func(i, j int) bool {
		ri, rj := revenues[performers[i].ProfileID], revenues[performers[j].ProfileID]
		if !ri.Equal(rj) {
			return ri.GreaterThan(rj)
		}
		return performers[i].Name < performers[j].Name
	})
	if len(performers) > topPerformerCount {
		performers = performers[:topPerformerCount]
	}
	return performers
}

// revenueByMonth buckets project PO amounts by creation month, listing every month of p
func revenueByMonth(projects []domain.Project, p period.Period) []domain.MonthValueDTO {
	byMonth := make(map[string]decimal.Decimal)
	for i := range projects {
		key := projects[i].CreatedAt.UTC().Format("2006-01")
		byMonth[key] = byMonth[key].Add(projects[i].PoAmount)
	}

	months := []domain.MonthValueDTO{}
	first := time.Date(p.Start.Year(), p.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := first; !m.After(p.End); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		months = append(months, domain.MonthValueDTO{Month: key, Revenue: mapper.Money(byMonth[key])})
	}
	return months
}

func round1(d decimal.Decimal) float64 {
	f, _ := d.Round(1).Float64()
	return f
}
