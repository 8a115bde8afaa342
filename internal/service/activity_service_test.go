package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_List(t *testing.T) {
	h := newHarness(t, hierarchy.Options{})
	o := seedOrg(t, h.db)

	jan := testutil.Date(2026, time.January, 15)
	testutil.CreateActivity(t, h.db, o.ann.UserID, "Ann call", domain.ActivityStatusScheduled, jan)
	testutil.CreateActivity(t, h.db, o.bob.UserID, "Bob visit", domain.ActivityStatusCompleted, jan.AddDate(0, 1, 0))
	testutil.CreateActivity(t, h.db, o.mgr2.UserID, "Max lunch", domain.ActivityStatusScheduled, jan)
	testutil.CreateActivity(t, h.db, o.ann.UserID, "Old", domain.ActivityStatusArchived, jan)

	subjects := func(dtos []domain.SalesActivityDTO) []string {
		out := make([]string, len(dtos))
		for i, d := range dtos {
			out[i] = d.Subject
		}
		return out
	}

	got, err := h.activities.List(as(o.mgr), ActivityQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann call", "Bob visit"}, subjects(got))

	got, err = h.activities.List(as(o.mgr), ActivityQuery{DrillDown: DrillDown{RepID: &o.bob.UserID}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob visit"}, subjects(got))

	got, err = h.activities.List(as(o.mgr), ActivityQuery{DrillDown: DrillDown{RepID: &o.mgr2.UserID}})
	require.NoError(t, err)
	assert.Empty(t, got)

	feb := testutil.Date(2026, time.February, 1)
	got, err = h.activities.List(as(o.admin), ActivityQuery{From: &feb})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob visit"}, subjects(got))
}

func TestActivityService_CRUD(t *testing.T) {
	h := newHarness(t, hierarchy.Options{})
	o := seedOrg(t, h.db)

	end := "2026-03-02T11:00:00Z"
	created, err := h.activities.Create(as(o.ann), &domain.CreateActivityRequest{
		Subject:  " Demo ",
		Type:     "meeting",
		StartsAt: "2026-03-02T10:00:00Z",
		EndsAt:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "Demo", created.Subject)
	assert.Equal(t, o.ann.UserID, created.CreatedBy)
	assert.Equal(t, domain.ActivityStatusScheduled, created.Status)

	t.Run("end before start", func(t *testing.T) {
		early := "2026-03-01"
		_, err := h.activities.Create(as(o.ann), &domain.CreateActivityRequest{
			Subject:  "Bad",
			StartsAt: "2026-03-02",
			EndsAt:   &early,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("visible to the manager, hidden from others", func(t *testing.T) {
		_, err := h.activities.GetByID(as(o.mgr), created.ID)
		require.NoError(t, err)

		_, err = h.activities.GetByID(as(o.mgr2), created.ID)
		assert.ErrorIs(t, err, ErrActivityNotFound)

		_, err = h.activities.GetByID(as(o.bob), created.ID)
		assert.ErrorIs(t, err, ErrActivityNotFound)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := h.activities.Update(as(o.mgr), created.ID, &domain.UpdateActivityRequest{
			Subject:  "Demo v2",
			Status:   domain.ActivityStatusCompleted,
			StartsAt: "2026-03-02",
		})
		require.NoError(t, err)
		assert.Equal(t, "Demo v2", updated.Subject)
		assert.Nil(t, updated.EndsAt)
	})

	t.Run("delete", func(t *testing.T) {
		assert.ErrorIs(t, h.activities.Delete(as(o.bob), created.ID), ErrActivityNotFound)
		require.NoError(t, h.activities.Delete(as(o.ann), created.ID))
		assert.ErrorIs(t, h.activities.Delete(as(o.ann), created.ID), ErrActivityNotFound)
		assert.ErrorIs(t, h.activities.Delete(as(o.ann), uuid.New()), ErrActivityNotFound)
	})
}
