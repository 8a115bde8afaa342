package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"gorm.io/gorm"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	var team domain.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Save(team).Error
}

// Delete removes a team and detaches every profile placed in it
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.UserProfile{}).Where("division_id = ?", id).Update("division_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Team{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List returns teams ordered by name, optionally within one entity
func (r *TeamRepository) List(ctx context.Context, entityID *uuid.UUID) ([]domain.Team, error) {
	var teams []domain.Team
	query := r.db.WithContext(ctx).Model(&domain.Team{})
	if entityID != nil {
		query = query.Where("entity_id = ?", *entityID)
	}
	err := query.Order("name ASC").Find(&teams).Error
	return teams, err
}

// CountByEntity counts teams under an entity
func (r *TeamRepository) CountByEntity(ctx context.Context, entityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Team{}).Where("entity_id = ?", entityID).Count(&count).Error
	return count, err
}
