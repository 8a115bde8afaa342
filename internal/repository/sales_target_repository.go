package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"gorm.io/gorm"
)

// SalesTargetFilter narrows target listings
type SalesTargetFilter struct {
	// Assignees restricts by profile ID; nil means every profile, empty means none
	Assignees []uuid.UUID
	// Period keeps targets overlapping it
	Period  *period.Period
	Measure domain.TargetMeasure
}

type SalesTargetRepository struct {
	db *gorm.DB
}

func NewSalesTargetRepository(db *gorm.DB) *SalesTargetRepository {
	return &SalesTargetRepository{db: db}
}

func (r *SalesTargetRepository) Create(ctx context.Context, target *domain.SalesTarget) error {
	return r.db.WithContext(ctx).Create(target).Error
}

func (r *SalesTargetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesTarget, error) {
	var target domain.SalesTarget
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&target).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *SalesTargetRepository) Update(ctx context.Context, target *domain.SalesTarget) error {
	return r.db.WithContext(ctx).Save(target).Error
}

func (r *SalesTargetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.SalesTarget{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns targets newest first
func (r *SalesTargetRepository) List(ctx context.Context, filter SalesTargetFilter) ([]domain.SalesTarget, error) {
	var targets []domain.SalesTarget

	query := r.db.WithContext(ctx).Model(&domain.SalesTarget{})
	if filter.Assignees != nil {
		query = OwnersOf(filter.Assignees...).Apply(query, "assigned_to")
	}
	if filter.Period != nil {
		query = query.Where("period_start < ? AND period_end >= ?", filter.Period.EndExclusive(), filter.Period.Start)
	}
	if filter.Measure != "" {
		query = query.Where("measure = ?", filter.Measure)
	}

	err := query.Order("created_at DESC").Find(&targets).Error
	return targets, err
}
