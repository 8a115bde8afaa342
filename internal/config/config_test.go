package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HIERARCHY_MANAGERMODE", "strict")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "sales_crm", cfg.Database.Name)
	assert.Equal(t, "strict", cfg.Hierarchy.ManagerMode)
	assert.Equal(t, 5*time.Minute, cfg.Hierarchy.DirectoryCacheTTLDuration())
	assert.Equal(t, 64, cfg.Events.BufferSize)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Auth.AutoSignUp)
	assert.Equal(t, "0 */15 * * * *", cfg.Jobs.AchievementSnapshotSchedule)
	assert.Equal(t, 2*time.Minute, cfg.Jobs.TimeoutDuration())
}

func TestConnectionString(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "crm", SSLMode: "require"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=crm sslmode=require", d.ConnectionString())
}

type mapSource map[string]string

func (m mapSource) GetSecretOrEnv(_ context.Context, secretName, _ string) (string, error) {
	if v, ok := m[secretName]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{}
	err := ApplySecrets(context.Background(), cfg, mapSource{
		"POSTGRES-MAIN-PASSWORD": "pw",
		"crm-jwt-secret":         "jwt",
		"admin-api-key":          "key",
	})
	require.NoError(t, err)

	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "jwt", cfg.Auth.JWTSecret)
	assert.Equal(t, "key", cfg.ApiKey.Value)
	assert.Empty(t, cfg.Redis.Password)
}

func TestApplySecrets_RequiresJWTSecret(t *testing.T) {
	err := ApplySecrets(context.Background(), &Config{}, mapSource{})
	assert.ErrorContains(t, err, "JWT secret")
}
