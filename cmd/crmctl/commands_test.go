package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func execute(t *testing.T, open dbOpener, args ...string) (string, error) {
	t.Helper()
	if open == nil {
		open = func() (*gorm.DB, error) { return nil, errors.New("no database") }
	}
	cmd := newRootCmd(open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuarterCmd(t *testing.T) {
	out, err := execute(t, nil, "quarter", "Q2 2026")
	require.NoError(t, err)
	assert.Equal(t, "Q2 2026\t2026-04-01\t2026-06-30\n", out)

	out, err = execute(t, nil, "quarter", "--date", "2026-11-30")
	require.NoError(t, err)
	assert.Equal(t, "Q4 2026\t2026-10-01\t2026-12-31\n", out)

	_, err = execute(t, nil, "quarter", "Q5 2026")
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
}

func TestProRateCmd(t *testing.T) {
	out, err := execute(t, nil, "prorate", "300000", "2026-01-01", "2026-03-31")
	require.NoError(t, err)
	assert.Contains(t, out, "3.000")
	assert.Contains(t, out, "100000.00")
	assert.Contains(t, out, "300000.00")

	out, err = execute(t, nil, "prorate", "--table", "120000", "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, "12.000")
	assert.Contains(t, out, "10000.00")
	assert.Contains(t, out, "30000.00")

	_, err = execute(t, nil, "prorate", "-5", "2026-01-01", "2026-03-31")
	assert.Error(t, err)
	_, err = execute(t, nil, "prorate", "100", "2026-03-31", "2026-01-01")
	assert.ErrorIs(t, err, period.ErrInvalidPeriod)
	_, err = execute(t, nil, "prorate", "100")
	assert.Error(t, err)
}

func TestPendingCmd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	entity := testutil.CreateEntity(t, db, "Straye")
	team := testutil.CreateTeam(t, db, "North", &entity.ID)
	org := testutil.InOrg(&entity.ID, &team.ID)

	testutil.CreateProfile(t, db, "Mona", domain.RoleManager, org)
	testutil.CreateProfile(t, db, "Newbie", domain.RoleUnset)
	testutil.CreateProfile(t, db, "Floater", domain.RoleAccountManager, org)
	testutil.CreateProfile(t, db, "Gone", domain.RoleUnset, testutil.Inactive())

	out, err := execute(t, func() (*gorm.DB, error) { return db, nil }, "pending")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, out, "Newbie")
	assert.Contains(t, out, "role")
	assert.Contains(t, out, "Floater")
	assert.Contains(t, out, "manager")
	assert.NotContains(t, out, "Mona")
	assert.NotContains(t, out, "Gone")
	assert.Equal(t, "2 pending", lines[3])
}

func TestPendingCmd_DatabaseError(t *testing.T) {
	_, err := execute(t, nil, "pending")
	assert.EqualError(t, err, "no database")
}
