package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"gorm.io/gorm"
)

// ManagerTeamRepository stores explicit manager to account manager mappings
type ManagerTeamRepository struct {
	db *gorm.DB
}

func NewManagerTeamRepository(db *gorm.DB) *ManagerTeamRepository {
	return &ManagerTeamRepository{db: db}
}

func (r *ManagerTeamRepository) ListForManager(ctx context.Context, managerID uuid.UUID) ([]domain.ManagerTeamMember, error) {
	var members []domain.ManagerTeamMember
	err := r.db.WithContext(ctx).Where("manager_id = ?", managerID).Order("created_at ASC").Find(&members).Error
	return members, err
}

func (r *ManagerTeamRepository) Exists(ctx context.Context, managerID, memberID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ManagerTeamMember{}).
		Where("manager_id = ? AND account_manager_id = ?", managerID, memberID).
		Count(&count).Error
	return count > 0, err
}

func (r *ManagerTeamRepository) Add(ctx context.Context, member *domain.ManagerTeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Remove deletes one mapping; gorm.ErrRecordNotFound when it did not exist
func (r *ManagerTeamRepository) Remove(ctx context.Context, managerID, memberID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("manager_id = ? AND account_manager_id = ?", managerID, memberID).
		Delete(&domain.ManagerTeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
