// Package events carries change notifications between services, the directory
// cache and connected clients.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Topic names a stream of related changes
type Topic string

const (
	// OrgUnitsChanged fires when entities, teams or manager mappings change
	OrgUnitsChanged Topic = "org-units-changed"
	// ProfilesChanged fires when a profile is created, reassigned or deleted
	ProfilesChanged Topic = "profiles-changed"
	// TargetsChanged fires when a sales target is written
	TargetsChanged Topic = "targets-changed"
)

// Topics lists every topic the bus knows about
var Topics = []Topic{OrgUnitsChanged, ProfilesChanged, TargetsChanged}

// Kind describes what happened to the resource
type Kind string

const (
	KindCreated Kind = "created"
	KindUpdated Kind = "updated"
	KindDeleted Kind = "deleted"
)

// Event is a single change notification
type Event struct {
	Topic      Topic      `json:"topic"`
	Kind       Kind       `json:"kind"`
	Resource   string     `json:"resource"`
	ResourceID uuid.UUID  `json:"resourceId"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	TeamID     *uuid.UUID `json:"teamId,omitempty"`
	ActorID    uuid.UUID  `json:"actorId"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// New builds an event stamped with the current UTC time
func New(topic Topic, kind Kind, resource string, id uuid.UUID) Event {
	return Event{
		Topic:      topic,
		Kind:       kind,
		Resource:   resource,
		ResourceID: id,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to interested parties
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event
type NopPublisher struct{}

// Publish implements Publisher
func (NopPublisher) Publish(context.Context, Event) error { return nil }
