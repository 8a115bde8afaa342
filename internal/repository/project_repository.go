package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// ByOpportunityIDs returns every project linked to the given opportunities
func (r *ProjectRepository) ByOpportunityIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Project, error) {
	var projects []domain.Project
	if len(ids) == 0 {
		return projects, nil
	}
	err := r.db.WithContext(ctx).Where("opportunity_id IN ?", ids).Find(&projects).Error
	return projects, err
}

// CreatedInPeriod returns projects created inside p whose opportunity is owned
// by owners and not archived
func (r *ProjectRepository) CreatedInPeriod(ctx context.Context, owners Owners, p period.Period) ([]domain.Project, error) {
	var projects []domain.Project

	query := r.db.WithContext(ctx).Model(&domain.Project{}).
		Joins("JOIN opportunities ON opportunities.id = projects.opportunity_id").
		Where("opportunities.status <> ?", domain.OpportunityStatusArchived).
		Where("projects.created_at >= ? AND projects.created_at < ?", p.Start, p.EndExclusive())
	query = owners.Apply(query, "opportunities.owner_id")

	err := query.Order("projects.created_at ASC").Find(&projects).Error
	return projects, err
}
