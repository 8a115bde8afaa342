package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"github.com/straye-as/sales-crm-api/internal/service"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeHandler(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, f.ann, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me domain.UserProfileDTO
	decode(t, rec, &me)
	assert.Equal(t, "North", me.TeamName)
	assert.Equal(t, "Mona", me.ManagerName)

	rec = f.do(t, nil, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, f.outsider, http.MethodGet, "/me/assignment", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var assignment domain.AssignmentDTO
	decode(t, rec, &assignment)
	assert.True(t, assignment.Pending)

	rec = f.do(t, f.mgr, http.MethodGet, "/me/scope", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var scope domain.ScopeDTO
	decode(t, rec, &scope)
	assert.False(t, scope.Unrestricted)
	assert.Len(t, scope.Members, 3)
}

func TestOpportunityHandler_DrillDown(t *testing.T) {
	f := newFixture(t)
	testutil.CreateOpportunity(t, f.db, f.ann.UserID, "Proposal", domain.OpportunityStatusOpen, nil, 1000)
	testutil.CreateOpportunity(t, f.db, f.bob.UserID, "Proposal", domain.OpportunityStatusOpen, nil, 2000)
	testutil.CreateOpportunity(t, f.db, f.outsider.UserID, "Lead", domain.OpportunityStatusOpen, nil, 3000)

	var opps []domain.OpportunityDTO
	rec := f.do(t, f.mgr, http.MethodGet, "/opportunities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &opps)
	assert.Len(t, opps, 2)

	rec = f.do(t, f.mgr, http.MethodGet, "/opportunities?repId="+f.ann.UserID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &opps)
	require.Len(t, opps, 1)
	assert.Equal(t, f.ann.UserID, opps[0].OwnerID)

	// outside the scope is an empty list, never an error
	rec = f.do(t, f.mgr, http.MethodGet, "/opportunities?repId="+f.outsider.UserID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = f.do(t, f.mgr, http.MethodGet, "/opportunities?repId=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, f.mgr, http.MethodGet, "/opportunities?excludePipelined=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, f.admin, http.MethodGet, "/pipeline/overview", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var overview domain.PipelineOverviewDTO
	decode(t, rec, &overview)
	assert.Equal(t, 3, overview.TotalCount)
	assert.Equal(t, 6000.0, overview.TotalValue)

	rec = f.do(t, f.ann, http.MethodGet, "/managers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestActivityHandler_CRUD(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, f.ann, http.MethodPost, "/activities", map[string]interface{}{
		"subject":  "Kickoff",
		"type":     "meeting",
		"startsAt": "2026-03-02T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.SalesActivityDTO
	decode(t, rec, &created)
	assert.Equal(t, "/api/v1/activities/"+created.ID.String(), rec.Header().Get("Location"))

	rec = f.do(t, f.ann, http.MethodPost, "/activities", map[string]interface{}{"type": "call"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr domain.APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, domain.ErrorTypeValidation, apiErr.Type)
	assert.Contains(t, apiErr.Errors, "subject")
	assert.Contains(t, apiErr.Errors, "startsAt")

	rec = f.do(t, f.mgr, http.MethodGet, "/activities/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, f.bob, http.MethodGet, "/activities/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, f.mgr, http.MethodGet, "/activities?from=2026-03-02&to=2026-03-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []domain.SalesActivityDTO
	decode(t, rec, &listed)
	assert.Len(t, listed, 1)

	rec = f.do(t, f.mgr, http.MethodGet, "/activities?from=03/02/2026", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, f.ann, http.MethodDelete, "/activities/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, f.ann, http.MethodDelete, "/activities/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTargetHandler(t *testing.T) {
	f := newFixture(t)
	q1 := period.Quarter(2026, 1)
	closed := testutil.Date(2026, time.February, 10)
	won := testutil.CreateOpportunity(t, f.db, f.ann.UserID, "Closed Won", domain.OpportunityStatusWon, &closed, 600000)
	testutil.CreateProject(t, f.db, won.ID, 600000)
	testutil.CreateTarget(t, f.db, f.ann.ID, domain.TargetMeasureRevenue, 500000, q1.Start, q1.End)

	t.Run("achievement", func(t *testing.T) {
		rec := f.do(t, f.mgr, http.MethodGet, "/targets/achievement?period=Q1%202026", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var report domain.AchievementReportDTO
		decode(t, rec, &report)
		assert.Equal(t, "Q1 2026", report.Period.Label)

		var ann *domain.AchievementRowDTO
		for i := range report.Rows {
			if report.Rows[i].ProfileID == f.ann.ID {
				ann = &report.Rows[i]
			}
		}
		require.NotNil(t, ann)
		assert.Equal(t, 600000.0, ann.Revenue.Achieved)
		assert.Equal(t, period.StatusAhead, ann.Revenue.Status)
	})

	t.Run("bad period", func(t *testing.T) {
		rec := f.do(t, f.mgr, http.MethodGet, "/targets/achievement?start=2026-03-01&end=2026-01-01", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("account managers cannot assign", func(t *testing.T) {
		rec := f.do(t, f.ann, http.MethodPost, "/targets", map[string]interface{}{
			"assignedTo":  f.ann.ID,
			"measure":     "revenue",
			"amount":      1000,
			"periodStart": "2026-04-01",
			"periodEnd":   "2026-06-30",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("manager assigns inside the team", func(t *testing.T) {
		rec := f.do(t, f.mgr, http.MethodPost, "/targets", map[string]interface{}{
			"assignedTo":  f.bob.ID,
			"measure":     "margin",
			"amount":      1000,
			"periodStart": "2026-04-01",
			"periodEnd":   "2026-06-30",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var target domain.SalesTargetDTO
		decode(t, rec, &target)

		rec = f.do(t, f.mgr, http.MethodGet, "/targets?period=Q2%202026", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var targets []domain.SalesTargetDTO
		decode(t, rec, &targets)
		require.Len(t, targets, 1)
		assert.Equal(t, target.ID, targets[0].ID)

		rec = f.do(t, f.mgr, http.MethodDelete, "/targets/"+target.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = f.do(t, f.mgr, http.MethodDelete, "/targets/"+target.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("validation", func(t *testing.T) {
		rec := f.do(t, f.mgr, http.MethodPost, "/targets", map[string]interface{}{
			"assignedTo":  f.bob.ID,
			"measure":     "profit",
			"amount":      0,
			"periodStart": "April",
			"periodEnd":   "2026-06-30",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var apiErr domain.APIError
		decode(t, rec, &apiErr)
		assert.Contains(t, apiErr.Errors, "measure")
		assert.Contains(t, apiErr.Errors, "amount")
		assert.Contains(t, apiErr.Errors, "periodStart")
	})

	t.Run("prorate", func(t *testing.T) {
		rec := f.do(t, f.ann, http.MethodGet, "/targets/prorate?amount=1200&start=2026-01-01&end=2026-12-31", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var pr domain.ProRateDTO
		decode(t, rec, &pr)
		assert.Greater(t, pr.MonthlyTarget, 0.0)

		rec = f.do(t, f.ann, http.MethodGet, "/targets/prorate?amount=abc&start=2026-01-01&end=2026-12-31", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = f.do(t, f.ann, http.MethodGet, "/targets/prorate?amount=10&start=2026-12-31&end=2026-01-01", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReportHandler(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, f.admin, http.MethodGet, "/reports/summary?period=Q1%202026", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary domain.SalesSummaryDTO
	decode(t, rec, &summary)
	assert.Equal(t, "Q1 2026", summary.Period.Label)

	rec = f.do(t, f.head, http.MethodGet, "/reports/manager-archived?period=Q1%202026", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report domain.ManagerArchivedReportDTO
	decode(t, rec, &report)
	require.Len(t, report.Managers, 1)
	assert.Equal(t, "Mona", report.Managers[0].ManagerName)

	rec = f.do(t, f.head, http.MethodGet, "/reports/manager-archived?period=Q1%202026&managerId="+f.mgr.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var row domain.ManagerArchivedDTO
	decode(t, rec, &row)
	assert.Equal(t, f.mgr.ID, row.ManagerID)

	rec = f.do(t, f.head, http.MethodGet, "/reports/summary?period=Q5%202026", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrgHandler(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, f.head, http.MethodPost, "/entities", map[string]interface{}{"name": "X", "code": "X"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	var apiErr domain.APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, service.CodeForbiddenAdminOnly, apiErr.Code)

	rec = f.do(t, f.admin, http.MethodDelete, "/entities/"+f.entity.ID.String(), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	decode(t, rec, &apiErr)
	assert.Equal(t, service.CodeInUse, apiErr.Code)

	rec = f.do(t, f.admin, http.MethodPost, "/teams", map[string]interface{}{"name": "South", "entityId": f.entity.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, f.ann, http.MethodGet, "/teams?entityId="+f.entity.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var teams []domain.TeamDTO
	decode(t, rec, &teams)
	assert.Len(t, teams, 2)

	rec = f.do(t, f.admin, http.MethodPut, "/teams/"+uuid.NewString(), map[string]interface{}{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, f.admin, http.MethodPost, "/managers/"+f.mgr.ID.String()+"/members",
		map[string]interface{}{"accountManagerId": f.outsider.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, f.admin, http.MethodPost, "/managers/"+f.mgr.ID.String()+"/members",
		map[string]interface{}{"accountManagerId": f.outsider.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, f.admin, http.MethodDelete, "/managers/"+f.mgr.ID.String()+"/members/"+f.outsider.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, f.admin, http.MethodDelete, "/managers/"+f.mgr.ID.String()+"/members/"+f.outsider.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, f.admin, http.MethodGet, "/admin/users/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []domain.UserProfileDTO
	decode(t, rec, &pending)
	names := make([]string, len(pending))
	for i, p := range pending {
		names[i] = p.FullName
	}
	assert.Contains(t, names, "Olga")
	assert.Contains(t, names, "Bob")

	rec = f.do(t, f.ann, http.MethodGet, "/admin/users", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, f.admin, http.MethodPut, "/admin/users/"+f.outsider.ID.String()+"/profile", map[string]interface{}{
		"role":     "account_manager",
		"entityId": f.entity.ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var apiErr domain.APIError
	decode(t, rec, &apiErr)
	assert.Equal(t, service.CodeMissingRoleFields, apiErr.Code)
	assert.Contains(t, apiErr.Errors, "team")
	assert.Contains(t, apiErr.Errors, "manager")

	rec = f.do(t, f.mgr, http.MethodPut, "/admin/users/"+f.outsider.ID.String()+"/profile", map[string]interface{}{
		"role":      "account_manager",
		"entityId":  f.entity.ID,
		"teamId":    f.north.ID,
		"managerId": f.mgr.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.UpdateUserProfileResultDTO
	decode(t, rec, &result)
	assert.True(t, result.Changed)

	rec = f.do(t, f.admin, http.MethodDelete, "/admin/users/"+f.admin.ID.String(), nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	decode(t, rec, &apiErr)
	assert.Equal(t, service.CodeSelfDelete, apiErr.Code)

	rec = f.do(t, f.admin, http.MethodDelete, "/admin/users/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
