package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := metrics.New()

	m.ObserveRequest(http.MethodGet, "/api/v1/targets", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/targets", http.StatusNoContent, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/targets", http.StatusForbidden, time.Millisecond)

	count, err := testutil.GatherAndCount(m.Registry(), "sales_crm_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGaugesAndJobs(t *testing.T) {
	m := metrics.New()

	m.SetPendingProfiles(3)
	m.SetAchievement("revenue", 1000, 250)
	m.ObserveJob("pending-assignments", time.Second, nil)
	m.ObserveJob("pending-assignments", time.Second, errors.New("db down"))
	m.EventPublished("targets-changed")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "sales_crm_pending_profiles 3")
	assert.Contains(t, text, `sales_crm_achieved_amount{measure="revenue"} 250`)
	assert.Contains(t, text, `sales_crm_target_amount{measure="revenue"} 1000`)
	assert.Contains(t, text, `sales_crm_jobs_runs_total{job="pending-assignments",result="error"} 1`)
	assert.Contains(t, text, `sales_crm_events_published_total{topic="targets-changed"} 1`)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, events.Event) error {
	return errors.New("broker down")
}

func TestCountPublished(t *testing.T) {
	m := metrics.New()
	ctx := context.Background()
	ev := events.New(events.TargetsChanged, events.KindCreated, "sales_target", uuid.New())

	require.NoError(t, m.CountPublished(events.NopPublisher{}).Publish(ctx, ev))
	require.NoError(t, m.CountPublished(events.NopPublisher{}).Publish(ctx, ev))
	require.Error(t, m.CountPublished(failingPublisher{}).Publish(ctx, ev))

	expected := `
# HELP sales_crm_events_published_total Change events published by topic.
# TYPE sales_crm_events_published_total counter
sales_crm_events_published_total{topic="targets-changed"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "sales_crm_events_published_total"))
}
