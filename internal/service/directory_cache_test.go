package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type countingLoader struct {
	loads atomic.Int32
	err   error
}

func (l *countingLoader) LoadDirectory(context.Context) (*hierarchy.Directory, error) {
	l.loads.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return hierarchy.NewDirectory(nil, nil), nil
}

func TestDirectoryCache_TTL(t *testing.T) {
	loader := &countingLoader{}
	cache := NewDirectoryCache(loader, time.Minute, zap.NewNop())
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := cache.Directory(ctx)
	require.NoError(t, err)
	second, err := cache.Directory(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.EqualValues(t, 1, loader.loads.Load())

	now = now.Add(2 * time.Minute)
	_, err = cache.Directory(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, loader.loads.Load())

	cache.Invalidate()
	_, err = cache.Directory(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, loader.loads.Load())
}

func TestDirectoryCache_LoadError(t *testing.T) {
	boom := errors.New("db down")
	cache := NewDirectoryCache(&countingLoader{err: boom}, 0, zap.NewNop())

	_, err := cache.Directory(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDirectoryCache_Watch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	loader := &countingLoader{}
	cache := NewDirectoryCache(loader, 0, zap.NewNop())
	bus := events.NewBus(8, zap.NewNop())
	defer bus.Close()

	stop := cache.Watch(bus)
	ctx := context.Background()

	_, err := cache.Directory(ctx)
	require.NoError(t, err)

	// target changes do not touch the hierarchy
	require.NoError(t, bus.Publish(ctx, events.New(events.TargetsChanged, events.KindCreated, "sales_target", uuid.New())))
	require.NoError(t, bus.Publish(ctx, events.New(events.ProfilesChanged, events.KindUpdated, "user_profile", uuid.New())))

	assert.Eventually(t, func() bool {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		return cache.dir == nil
	}, time.Second, 5*time.Millisecond)

	_, err = cache.Directory(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, loader.loads.Load())

	stop()
	stop()
	assert.Equal(t, 0, bus.Subscribers())
}

func TestScopeResolver_MutationInvalidatesCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	o := seedOrg(t, db)
	newbie := testutil.CreateProfile(t, db, "Newbie", domain.RoleAccountManager)

	profileRepo := repository.NewProfileRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	// no expiry and no bus watcher: only the service can drop the snapshot
	resolver := NewScopeResolver(NewDirectoryCache(profileRepo, 0, logger), hierarchy.Options{})
	authorizer := authz.MustNew()
	users := NewUserService(resolver, authorizer, profileRepo, entityRepo, teamRepo, events.NopPublisher{}, logger)
	org := NewOrgService(resolver, authorizer, entityRepo, teamRepo, profileRepo,
		repository.NewManagerTeamRepository(db), events.NopPublisher{}, logger)

	v, err := resolver.Resolve(as(o.mgr))
	require.NoError(t, err)
	assert.False(t, v.Scope.Contains(newbie.ID))

	_, err = users.UpdateProfile(as(o.admin), newbie.ID, &domain.UpdateUserProfileRequest{
		Role:      domain.RoleAccountManager,
		EntityID:  &o.entity.ID,
		TeamID:    &o.north.ID,
		ManagerID: &o.mgr.ID,
	})
	require.NoError(t, err)

	v, err = resolver.Resolve(as(o.mgr))
	require.NoError(t, err)
	assert.True(t, v.Scope.Contains(newbie.ID))

	require.NoError(t, org.RemoveManagerMember(as(o.admin), o.mgr.ID, o.cat.ID))
	v, err = resolver.Resolve(as(o.mgr))
	require.NoError(t, err)
	assert.False(t, v.Scope.Contains(o.cat.ID))
}
