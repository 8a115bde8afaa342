package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"golang.org/x/sync/errgroup"
)

// figures are the realized sales numbers of one owner or group
type figures struct {
	Revenue  decimal.Decimal
	Cost     decimal.Decimal
	Margin   decimal.Decimal
	Projects int
	Deals    int
}

func (f figures) add(o figures) figures {
	return figures{
		Revenue:  f.Revenue.Add(o.Revenue),
		Cost:     f.Cost.Add(o.Cost),
		Margin:   f.Margin.Add(o.Margin),
		Projects: f.Projects + o.Projects,
		Deals:    f.Deals + o.Deals,
	}
}

// MarginPercentage is margin over revenue, zero unless both are positive
func (f figures) MarginPercentage() decimal.Decimal {
	if !f.Revenue.IsPositive() || !f.Margin.IsPositive() {
		return decimal.Zero
	}
	return period.Percentage(f.Margin, f.Revenue)
}

// ledger is the realized revenue and margin of won opportunities in a period, per owner
type ledger struct {
	byOwner map[uuid.UUID]figures
	won     []domain.Opportunity
}

func (l *ledger) of(userID uuid.UUID) figures {
	return l.byOwner[userID]
}

func (l *ledger) sum(userIDs []uuid.UUID) figures {
	var total figures
	for _, id := range userIDs {
		total = total.add(l.byOwner[id])
	}
	return total
}

func (l *ledger) total() figures {
	var total figures
	for _, f := range l.byOwner {
		total = total.add(f)
	}
	return total
}

// ledgerReader builds ledgers from opportunities, projects and pipeline costs
type ledgerReader struct {
	opportunityRepo  *repository.OpportunityRepository
	projectRepo      *repository.ProjectRepository
	pipelineItemRepo *repository.PipelineItemRepository
}

// read computes the ledger for owners over p.
//
// Revenue is the PO amount of projects linked to won opportunities; an
// opportunity without a project contributes nothing. Margin is counted only
// where a project exists and won pipeline items carry a positive cost, and is
// floored at zero per opportunity before it is summed.
func (r *ledgerReader) read(ctx context.Context, owners repository.Owners, p period.Period) (*ledger, error) {
	won, err := r.opportunityRepo.WonInPeriod(ctx, owners, p)
	if err != nil {
		return nil, fmt.Errorf("failed to load won opportunities: %w", err)
	}

	l := &ledger{byOwner: make(map[uuid.UUID]figures), won: won}
	if len(won) == 0 {
		return l, nil
	}

	ids := make([]uuid.UUID, len(won))
	for i := range won {
		ids[i] = won[i].ID
	}

	var (
		projects []domain.Project
		costs    map[uuid.UUID]decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = r.projectRepo.ByOpportunityIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		costs, err = r.pipelineItemRepo.WonCostsByOpportunityIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load pipeline costs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	poByOpp := make(map[uuid.UUID]decimal.Decimal)
	projectsByOpp := make(map[uuid.UUID]int)
	for _, pr := range projects {
		poByOpp[pr.OpportunityID] = poByOpp[pr.OpportunityID].Add(pr.PoAmount)
		projectsByOpp[pr.OpportunityID]++
	}

	for i := range won {
		o := &won[i]
		f := figures{Deals: 1}
		if n := projectsByOpp[o.ID]; n > 0 {
			f.Revenue = poByOpp[o.ID]
			f.Projects = n
			if cost, ok := costs[o.ID]; ok && cost.IsPositive() {
				f.Cost = cost
				f.Margin = decimal.Max(f.Revenue.Sub(cost), decimal.Zero)
			}
		}
		l.byOwner[o.OwnerID] = l.byOwner[o.OwnerID].add(f)
	}
	return l, nil
}
