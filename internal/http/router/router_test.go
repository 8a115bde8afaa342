package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/config"
	"github.com/straye-as/sales-crm-api/internal/http/middleware"
	"github.com/straye-as/sales-crm-api/internal/http/router"
	"github.com/straye-as/sales-crm-api/internal/metrics"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*router.Router, *metrics.Metrics) {
	t.Helper()

	cfg := &config.Config{
		App:       config.AppConfig{Environment: "development"},
		Server:    config.ServerConfig{RequestTimeout: 5},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Auth:      config.AuthConfig{JWTSecret: "secret"},
	}
	logger := zap.NewNop()
	m := metrics.New()

	rt := router.NewRouter(
		cfg,
		logger,
		testutil.SetupTestDB(t),
		auth.NewMiddleware(cfg, nil, logger),
		middleware.NewRateLimiter(&cfg.RateLimit, logger),
		m,
		router.Handlers{},
	)
	return rt, m
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Health(t *testing.T) {
	rt, _ := newRouter(t)
	h := rt.Setup()

	w := get(h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = get(h, "/health/db")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "open_connections")
}

func TestRouter_Readiness(t *testing.T) {
	rt, _ := newRouter(t)
	rt.AddReadinessCheck("cache", func(ctx context.Context) error { return nil })
	h := rt.Setup()

	w := get(h, "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)

	rt.AddReadinessCheck("redis", func(ctx context.Context) error { return errors.New("dial tcp: refused") })
	w = get(h, "/health/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string                       `json:"status"`
		Checks map[string]map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"]["status"])
	assert.Equal(t, "healthy", body.Checks["cache"]["status"])
	assert.Equal(t, "unhealthy", body.Checks["redis"]["status"])
}

func TestRouter_APIRequiresAuthentication(t *testing.T) {
	rt, _ := newRouter(t)
	h := rt.Setup()

	for _, path := range []string{"/api/v1/me", "/api/v1/targets", "/api/v1/events"} {
		assert.Equal(t, http.StatusUnauthorized, get(h, path).Code, path)
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	rt, _ := newRouter(t)
	h := rt.Setup()

	get(h, "/health")
	w := get(h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sales_crm_http_requests_total{method="GET",route="/health",status="2xx"} 1`)
}
