package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"gorm.io/gorm"
)

type EntityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) Create(ctx context.Context, entity *domain.Entity) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *EntityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	var entity domain.Entity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *EntityRepository) Update(ctx context.Context, entity *domain.Entity) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *EntityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Entity{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns entities ordered by name
func (r *EntityRepository) List(ctx context.Context, activeOnly bool) ([]domain.Entity, error) {
	var entities []domain.Entity
	query := r.db.WithContext(ctx).Model(&domain.Entity{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&entities).Error
	return entities, err
}

// ExistsByCode reports whether another entity already uses code
func (r *EntityRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Entity{}).Where("LOWER(code) = LOWER(?)", code)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}
