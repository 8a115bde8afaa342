package migrations

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_AreSequentialAndReversible(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for i, name := range names {
		assert.True(t, strings.HasPrefix(name, fmt.Sprintf("%05d_", i+1)), name)

		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		up := strings.Index(string(body), "-- +goose Up")
		down := strings.Index(string(body), "-- +goose Down")
		assert.GreaterOrEqual(t, up, 0, name)
		assert.Greater(t, down, up, name)
	}
}

func TestMigrations_CoverEveryTable(t *testing.T) {
	var all strings.Builder
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	for _, name := range names {
		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		all.Write(body)
	}

	for _, table := range []string{
		"entities", "divisions", "user_profiles", "manager_team_members",
		"opportunities", "projects", "pipeline_items", "sales_targets", "sales_activity_v2",
	} {
		assert.Contains(t, all.String(), "CREATE TABLE "+table+" (", table)
		assert.Contains(t, all.String(), "DROP TABLE IF EXISTS "+table+";", table)
	}
}
