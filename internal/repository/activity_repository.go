package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityFilter narrows activity listings
type ActivityFilter struct {
	Owners Owners
	Type   string
	From   *time.Time
	To     *time.Time
	Limit  int
}

// ActivityRepository handles sales_activity_v2 rows.
// Rows are keyed to their author through created_by (an identity subject).
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *domain.SalesActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *ActivityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesActivity, error) {
	var activity domain.SalesActivity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// Update saves every field, keeping the original author and creation time
func (r *ActivityRepository) Update(ctx context.Context, activity *domain.SalesActivity) error {
	return r.db.WithContext(ctx).Omit("created_by", "created_at").Save(activity).Error
}

func (r *ActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.SalesActivity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns non-archived activities ordered by start time
func (r *ActivityRepository) List(ctx context.Context, filter ActivityFilter) ([]domain.SalesActivity, error) {
	var activities []domain.SalesActivity

	query := r.db.WithContext(ctx).Model(&domain.SalesActivity{})
	query = filter.Owners.Apply(query, "created_by")
	query = query.Where("status <> ?", domain.ActivityStatusArchived)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.From != nil {
		query = query.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at < ?", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	err := query.Order("starts_at ASC").Limit(limit).Find(&activities).Error
	return activities, err
}
