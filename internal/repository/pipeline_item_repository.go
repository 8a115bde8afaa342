package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"gorm.io/gorm"
)

type PipelineItemRepository struct {
	db *gorm.DB
}

func NewPipelineItemRepository(db *gorm.DB) *PipelineItemRepository {
	return &PipelineItemRepository{db: db}
}

func (r *PipelineItemRepository) Create(ctx context.Context, item *domain.PipelineItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// WonCostsByOpportunityIDs sums the cost breakdown of won pipeline items per
// opportunity. Items without any cost data are left out, so an opportunity is
// present in the result only when its costs are known.
func (r *PipelineItemRepository) WonCostsByOpportunityIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	costs := make(map[uuid.UUID]decimal.Decimal)
	if len(ids) == 0 {
		return costs, nil
	}

	var items []domain.PipelineItem
	err := r.db.WithContext(ctx).
		Where("opportunity_id IN ?", ids).
		Where("status = ?", domain.PipelineItemStatusWon).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	for i := range items {
		total := items[i].TotalCost()
		if !total.IsPositive() {
			continue
		}
		costs[items[i].OpportunityID] = costs[items[i].OpportunityID].Add(total)
	}
	return costs, nil
}
