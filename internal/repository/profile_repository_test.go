package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProfileRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	entity := testutil.CreateEntity(t, db, "Acme")
	team := testutil.CreateTeam(t, db, "Enterprise", &entity.ID)

	mgr := testutil.CreateProfile(t, db, "Maria Manager", domain.RoleManager, testutil.InOrg(&entity.ID, &team.ID))
	testutil.CreateProfile(t, db, "Adam Account", domain.RoleAccountManager, testutil.InOrg(&entity.ID, &team.ID), testutil.ReportsTo(mgr.ID))
	testutil.CreateProfile(t, db, "Old Sales", domain.RoleSales, testutil.Inactive())
	testutil.CreateProfile(t, db, "New Person", domain.RoleUnset)

	all, err := repo.List(ctx, repository.ProfileFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "Adam Account", all[0].FullName)

	byQuery, err := repo.List(ctx, repository.ProfileFilter{Query: "  MARIA "})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, mgr.ID, byQuery[0].ID)

	contributors, err := repo.List(ctx, repository.ProfileFilter{Roles: domain.ContributorRoles, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, contributors, 1)
	assert.Equal(t, "Adam Account", contributors[0].FullName)

	inTeam, err := repo.List(ctx, repository.ProfileFilter{TeamID: &team.ID, ManagerID: &mgr.ID})
	require.NoError(t, err)
	assert.Len(t, inTeam, 1)
}

func TestProfileRepository_UpdateAssignmentClearsFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	entity := testutil.CreateEntity(t, db, "Acme")
	team := testutil.CreateTeam(t, db, "Enterprise", &entity.ID)
	p := testutil.CreateProfile(t, db, "Adam", domain.RoleAccountManager, testutil.InOrg(&entity.ID, &team.ID))

	err := repo.UpdateAssignment(ctx, p.ID, repository.Assignment{Role: domain.RolePtr(domain.RoleHead), EntityID: &entity.ID})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHead, got.RoleOrUnset())
	assert.Equal(t, entity.ID, *got.EntityID)
	assert.Nil(t, got.DivisionID)
	assert.Nil(t, got.ManagerID)

	err = repo.UpdateAssignment(ctx, uuid.New(), repository.Assignment{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProfileRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	mgr := testutil.CreateProfile(t, db, "Maria", domain.RoleManager)
	am := testutil.CreateProfile(t, db, "Adam", domain.RoleAccountManager, testutil.ReportsTo(mgr.ID))
	other := testutil.CreateProfile(t, db, "Other", domain.RoleAccountManager)

	testutil.MapMember(t, db, mgr.ID, am.ID)
	testutil.CreateTarget(t, db, mgr.ID, domain.TargetMeasureRevenue, 1000, testutil.Date(2026, 1, 1), testutil.Date(2026, 3, 31))
	testutil.CreateTarget(t, db, other.ID, domain.TargetMeasureRevenue, 1000, testutil.Date(2026, 1, 1), testutil.Date(2026, 3, 31))
	testutil.CreateActivity(t, db, mgr.UserID, "Kickoff", domain.ActivityStatusScheduled, testutil.Date(2026, 2, 1))

	require.NoError(t, repo.Delete(ctx, mgr.ID))

	_, err := repo.GetByID(ctx, mgr.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.SalesTarget{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&domain.ManagerTeamMember{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&domain.SalesActivity{}).Count(&count).Error)
	assert.Zero(t, count)

	reloaded, err := repo.GetByID(ctx, am.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ManagerID)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), gorm.ErrRecordNotFound)
}

func TestProfileRepository_LoadDirectory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewProfileRepository(db)

	mgr := testutil.CreateProfile(t, db, "Maria", domain.RoleManager)
	am := testutil.CreateProfile(t, db, "Adam", domain.RoleAccountManager)
	testutil.MapMember(t, db, mgr.ID, am.ID)

	dir, err := repo.LoadDirectory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, dir.Len())
	assert.Equal(t, []uuid.UUID{am.ID}, dir.MappedMembers(mgr.ID))
	p, ok := dir.ProfileByUserID(am.UserID)
	require.True(t, ok)
	assert.Equal(t, am.ID, p.ID)
}
