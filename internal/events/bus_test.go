package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return events.Event{}
	}
}

func TestBus_DeliversToMatchingSubscribers(t *testing.T) {
	bus := events.NewBus(4, zap.NewNop())
	defer bus.Close()

	orgCh, cancelOrg := bus.Subscribe(events.OrgUnitsChanged)
	defer cancelOrg()
	allCh, cancelAll := bus.Subscribe()
	defer cancelAll()

	id := uuid.New()
	require.NoError(t, bus.Publish(context.Background(), events.New(events.TargetsChanged, events.KindCreated, "sales_target", id)))
	require.NoError(t, bus.Publish(context.Background(), events.New(events.OrgUnitsChanged, events.KindUpdated, "team", id)))

	assert.Equal(t, events.TargetsChanged, receive(t, allCh).Topic)
	assert.Equal(t, events.OrgUnitsChanged, receive(t, allCh).Topic)

	got := receive(t, orgCh)
	assert.Equal(t, events.OrgUnitsChanged, got.Topic)
	assert.Equal(t, id, got.ResourceID)
	assert.Empty(t, orgCh)
}

func TestBus_DropsWhenSubscriberFull(t *testing.T) {
	bus := events.NewBus(1, zap.NewNop())
	defer bus.Close()

	ch, cancel := bus.Subscribe(events.ProfilesChanged)
	defer cancel()

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(context.Background(), events.New(events.ProfilesChanged, events.KindUpdated, "user_profile", uuid.New())))
	}

	assert.Equal(t, uint64(2), bus.Dropped())
	assert.Len(t, ch, 1)
}

func TestBus_CancelClosesChannel(t *testing.T) {
	bus := events.NewBus(0, zap.NewNop())
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	assert.Equal(t, 1, bus.Subscribers())

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, bus.Subscribers())
}

func TestBus_Close(t *testing.T) {
	bus := events.NewBus(0, zap.NewNop())
	ch, cancel := bus.Subscribe()

	bus.Close()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	err := bus.Publish(context.Background(), events.New(events.OrgUnitsChanged, events.KindDeleted, "entity", uuid.New()))
	assert.ErrorIs(t, err, events.ErrBusClosed)

	late, _ := bus.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}

func TestBus_ConsumerGoroutineStops(t *testing.T) {
	bus := events.NewBus(8, zap.NewNop())
	ch, cancel := bus.Subscribe(events.TargetsChanged)

	seen := make(chan int)
	go func() {
		n := 0
		for range ch {
			n++
		}
		seen <- n
	}()

	for i := 0; i < 3; i++ {
		require.NoError(t, bus.Publish(context.Background(), events.New(events.TargetsChanged, events.KindUpdated, "sales_target", uuid.New())))
	}
	cancel()

	assert.Equal(t, 3, <-seen)
	bus.Close()
}

type failingPublisher struct {
	calls int
}

func (f *failingPublisher) Publish(context.Context, events.Event) error {
	f.calls++
	return errors.New("broker unavailable")
}

func TestMultiPublisher_SwallowsErrors(t *testing.T) {
	bus := events.NewBus(4, zap.NewNop())
	defer bus.Close()
	ch, cancel := bus.Subscribe()
	defer cancel()

	failing := &failingPublisher{}
	multi := events.NewMultiPublisher(zap.NewNop(), failing, nil, bus)

	err := multi.Publish(context.Background(), events.New(events.OrgUnitsChanged, events.KindCreated, "entity", uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, events.OrgUnitsChanged, receive(t, ch).Topic)
}

func TestRedisPublisher_ReturnsConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	pub := events.NewRedisPublisher(client)
	err := pub.Publish(context.Background(), events.New(events.TargetsChanged, events.KindCreated, "sales_target", uuid.New()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "crm:events:org-units-changed", events.Channel(events.OrgUnitsChanged))
	assert.Equal(t, "crm:events:all", events.AllChannel)
}
