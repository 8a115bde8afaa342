package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"gorm.io/gorm"
)

// ProfileFilter narrows profile listings. Zero fields are ignored.
type ProfileFilter struct {
	Query      string
	Roles      []domain.Role
	EntityID   *uuid.UUID
	TeamID     *uuid.UUID
	ManagerID  *uuid.UUID
	ActiveOnly bool
}

// Assignment is the org placement written by admins and managers
type Assignment struct {
	Role      *domain.Role
	EntityID  *uuid.UUID
	TeamID    *uuid.UUID
	ManagerID *uuid.UUID
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List returns profiles matching filter ordered by name
func (r *ProfileRepository) List(ctx context.Context, filter ProfileFilter) ([]domain.UserProfile, error) {
	var profiles []domain.UserProfile

	query := r.db.WithContext(ctx).Model(&domain.UserProfile{})

	if filter.Query != "" {
		pattern := likePattern(filter.Query)
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	if len(filter.Roles) > 0 {
		query = query.Where("role IN ?", filter.Roles)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.TeamID != nil {
		query = query.Where("division_id = ?", *filter.TeamID)
	}
	if filter.ManagerID != nil {
		query = query.Where("manager_id = ?", *filter.ManagerID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	err := query.Order("full_name ASC").Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

// UpdateAssignment writes role and org placement, including clearing fields to NULL
func (r *ProfileRepository) UpdateAssignment(ctx context.Context, id uuid.UUID, a Assignment) error {
	result := r.db.WithContext(ctx).Model(&domain.UserProfile{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":        a.Role,
			"entity_id":   a.EntityID,
			"division_id": a.TeamID,
			"manager_id":  a.ManagerID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a profile with its targets, manager mappings and authored
// activities in one transaction. Direct reports lose their manager.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile domain.UserProfile
		if err := tx.Where("id = ?", id).First(&profile).Error; err != nil {
			return err
		}
		if err := tx.Where("assigned_to = ?", id).Delete(&domain.SalesTarget{}).Error; err != nil {
			return err
		}
		if err := tx.Where("manager_id = ? OR account_manager_id = ?", id, id).Delete(&domain.ManagerTeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("created_by = ?", profile.UserID).Delete(&domain.SalesActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.UserProfile{}).Where("manager_id = ?", id).Update("manager_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.UserProfile{}, "id = ?", id).Error
	})
}

// CountByEntity counts profiles placed in an entity
func (r *ProfileRepository) CountByEntity(ctx context.Context, entityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserProfile{}).Where("entity_id = ?", entityID).Count(&count).Error
	return count, err
}

// LoadDirectory snapshots every profile and manager mapping
func (r *ProfileRepository) LoadDirectory(ctx context.Context) (*hierarchy.Directory, error) {
	var profiles []domain.UserProfile
	if err := r.db.WithContext(ctx).Find(&profiles).Error; err != nil {
		return nil, err
	}
	var mappings []domain.ManagerTeamMember
	if err := r.db.WithContext(ctx).Find(&mappings).Error; err != nil {
		return nil, err
	}
	return hierarchy.NewDirectory(profiles, mappings), nil
}
