package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"go.uber.org/zap"
)

// DirectoryLoader reads a fresh hierarchy snapshot from storage
type DirectoryLoader interface {
	LoadDirectory(ctx context.Context) (*hierarchy.Directory, error)
}

// DirectoryCache keeps the last directory snapshot until it expires or an
// org or profile change event arrives.
type DirectoryCache struct {
	loader DirectoryLoader
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	dir      *hierarchy.Directory
	loadedAt time.Time
}

// NewDirectoryCache creates a cache. A ttl <= 0 keeps snapshots until invalidated.
func NewDirectoryCache(loader DirectoryLoader, ttl time.Duration, logger *zap.Logger) *DirectoryCache {
	return &DirectoryCache{
		loader: loader,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Directory returns the cached snapshot, loading it when missing or stale
func (c *DirectoryCache) Directory(ctx context.Context) (*hierarchy.Directory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dir != nil && (c.ttl <= 0 || c.now().Sub(c.loadedAt) < c.ttl) {
		return c.dir, nil
	}

	dir, err := c.loader.LoadDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load directory: %w", err)
	}
	c.dir = dir
	c.loadedAt = c.now()
	c.logger.Debug("directory loaded", zap.Int("profiles", dir.Len()))
	return dir, nil
}

// Invalidate drops the cached snapshot
func (c *DirectoryCache) Invalidate() {
	c.mu.Lock()
	c.dir = nil
	c.mu.Unlock()
}

// Watch invalidates the cache whenever the bus carries an org or profile
// change, covering mutations made outside this process's services. The
// returned stop func unsubscribes and waits for the watcher to exit.
func (c *DirectoryCache) Watch(bus *events.Bus) (stop func()) {
	ch, cancel := bus.Subscribe(events.OrgUnitsChanged, events.ProfilesChanged)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for ev := range ch {
			c.Invalidate()
			c.logger.Debug("directory invalidated",
				zap.String("topic", string(ev.Topic)),
				zap.String("resource", ev.Resource),
			)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
