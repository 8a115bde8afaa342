package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"gorm.io/gorm"
)

// OpportunityFilter narrows opportunity listings
type OpportunityFilter struct {
	Owners Owners
	Stage  string
	// Statuses restricts to these statuses; empty means any status except archived
	Statuses []domain.OpportunityStatus
	// ExcludePipelined drops opportunities that already have a pipeline item
	ExcludePipelined bool
	Sort             SortConfig
	Limit            int
}

var opportunitySortFields = map[string]string{
	"name":              "name",
	"amount":            "amount",
	"stage":             "stage",
	"expectedCloseDate": "expected_close_date",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

func (r *OpportunityRepository) Create(ctx context.Context, opportunity *domain.Opportunity) error {
	return r.db.WithContext(ctx).Create(opportunity).Error
}

func (r *OpportunityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Opportunity, error) {
	var opportunity domain.Opportunity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&opportunity).Error; err != nil {
		return nil, err
	}
	return &opportunity, nil
}

// List returns opportunities matching filter. Archived rows are never returned
// unless explicitly requested through Statuses.
func (r *OpportunityRepository) List(ctx context.Context, filter OpportunityFilter) ([]domain.Opportunity, error) {
	var opportunities []domain.Opportunity

	query := r.db.WithContext(ctx).Model(&domain.Opportunity{})
	query = filter.Owners.Apply(query, "owner_id")

	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	} else {
		query = query.Where("status <> ?", domain.OpportunityStatusArchived)
	}
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}
	if filter.ExcludePipelined {
		query = query.Where("id NOT IN (?)", r.db.Model(&domain.PipelineItem{}).Select("opportunity_id"))
	}

	limit := filter.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	order := BuildOrderClause(filter.Sort, opportunitySortFields, "created_at")
	err := query.Order(order).Limit(limit).Find(&opportunities).Error
	return opportunities, err
}

// WonInPeriod returns won, non-archived opportunities whose expected close
// date falls inside p. Won means is_won or the Closed Won stage.
func (r *OpportunityRepository) WonInPeriod(ctx context.Context, owners Owners, p period.Period) ([]domain.Opportunity, error) {
	var opportunities []domain.Opportunity

	query := r.db.WithContext(ctx).Model(&domain.Opportunity{})
	query = owners.Apply(query, "owner_id")
	err := query.
		Where("status <> ?", domain.OpportunityStatusArchived).
		Where("is_won = ? OR stage = ?", true, domain.StageClosedWon).
		Where("expected_close_date >= ? AND expected_close_date < ?", p.Start, p.EndExclusive()).
		Find(&opportunities).Error
	return opportunities, err
}

// ListOpen returns opportunities still in play
func (r *OpportunityRepository) ListOpen(ctx context.Context, owners Owners) ([]domain.Opportunity, error) {
	var opportunities []domain.Opportunity

	query := r.db.WithContext(ctx).Model(&domain.Opportunity{})
	query = owners.Apply(query, "owner_id")
	err := query.
		Where("status = ?", domain.OpportunityStatusOpen).
		Where("is_closed = ?", false).
		Order("stage ASC").
		Find(&opportunities).Error
	return opportunities, err
}
