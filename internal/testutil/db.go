// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/database"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory sqlite database with every table migrated.
// The pool is pinned to one connection because each sqlite memory connection
// is its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Date returns midnight UTC for the given day
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CreateEntity inserts an active entity
func CreateEntity(t *testing.T, db *gorm.DB, name string) *domain.Entity {
	t.Helper()
	e := &domain.Entity{Name: name, Code: name + "-" + uuid.NewString()[:8], IsActive: true}
	require.NoError(t, db.Create(e).Error)
	return e
}

// CreateTeam inserts a team under entity
func CreateTeam(t *testing.T, db *gorm.DB, name string, entityID *uuid.UUID) *domain.Team {
	t.Helper()
	team := &domain.Team{Name: name, EntityID: entityID}
	require.NoError(t, db.Create(team).Error)
	return team
}

// ProfileOption customizes a fixture profile
type ProfileOption func(*domain.UserProfile)

// InOrg places the profile in an entity and team
func InOrg(entityID, teamID *uuid.UUID) ProfileOption {
	return func(p *domain.UserProfile) {
		p.EntityID = entityID
		p.DivisionID = teamID
	}
}

// ReportsTo sets the direct manager profile
func ReportsTo(managerID uuid.UUID) ProfileOption {
	return func(p *domain.UserProfile) {
		p.ManagerID = &managerID
	}
}

// Inactive marks the profile inactive
func Inactive() ProfileOption {
	return func(p *domain.UserProfile) {
		p.IsActive = false
	}
}

// CreateProfile inserts an active profile with the given role
func CreateProfile(t *testing.T, db *gorm.DB, name string, role domain.Role, opts ...ProfileOption) *domain.UserProfile {
	t.Helper()
	p := &domain.UserProfile{
		UserID:   uuid.New(),
		FullName: name,
		Email:    name + "@example.com",
		IsActive: true,
	}
	if role != domain.RoleUnset {
		p.Role = domain.RolePtr(role)
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// MapMember adds an explicit manager mapping
func MapMember(t *testing.T, db *gorm.DB, managerID, memberID uuid.UUID) {
	t.Helper()
	require.NoError(t, db.Create(&domain.ManagerTeamMember{ManagerID: managerID, AccountManagerID: memberID}).Error)
}

// CreateOpportunity inserts an opportunity owned by ownerUserID
func CreateOpportunity(t *testing.T, db *gorm.DB, ownerUserID uuid.UUID, stage string, status domain.OpportunityStatus, closeDate *time.Time, amount int64) *domain.Opportunity {
	t.Helper()
	o := &domain.Opportunity{
		Name:              "Deal " + uuid.NewString()[:8],
		Amount:            decimal.NewFromInt(amount),
		Currency:          "USD",
		ExpectedCloseDate: closeDate,
		Status:            status,
		Stage:             stage,
		IsWon:             status == domain.OpportunityStatusWon,
		IsClosed:          status == domain.OpportunityStatusWon || status == domain.OpportunityStatusLost,
		OwnerID:           ownerUserID,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

// CreateProject inserts a project for an opportunity
func CreateProject(t *testing.T, db *gorm.DB, opportunityID uuid.UUID, poAmount int64) *domain.Project {
	t.Helper()
	p := &domain.Project{OpportunityID: opportunityID, Name: "Project", PoAmount: decimal.NewFromInt(poAmount)}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreatePipelineItem inserts a cost breakdown for an opportunity
func CreatePipelineItem(t *testing.T, db *gorm.DB, opportunityID uuid.UUID, status domain.PipelineItemStatus, goods, services, other int64) *domain.PipelineItem {
	t.Helper()
	p := &domain.PipelineItem{
		OpportunityID: opportunityID,
		Status:        status,
		CostOfGoods:   decimal.NewFromInt(goods),
		ServiceCosts:  decimal.NewFromInt(services),
		OtherExpenses: decimal.NewFromInt(other),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// CreateTarget inserts a sales target for a profile
func CreateTarget(t *testing.T, db *gorm.DB, profileID uuid.UUID, measure domain.TargetMeasure, amount int64, start, end time.Time) *domain.SalesTarget {
	t.Helper()
	st := &domain.SalesTarget{
		AssignedTo:  profileID,
		Measure:     measure,
		Amount:      decimal.NewFromInt(amount),
		PeriodStart: start,
		PeriodEnd:   end,
	}
	require.NoError(t, db.Create(st).Error)
	return st
}

// CreateActivity inserts an activity authored by createdBy
func CreateActivity(t *testing.T, db *gorm.DB, createdBy uuid.UUID, subject string, status domain.ActivityStatus, startsAt time.Time) *domain.SalesActivity {
	t.Helper()
	a := &domain.SalesActivity{
		Subject:   subject,
		Type:      "meeting",
		Status:    status,
		StartsAt:  startsAt,
		CreatedBy: createdBy,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}
