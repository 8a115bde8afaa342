package events

import (
	"context"

	"go.uber.org/zap"
)

// MultiPublisher fans an event out to several publishers. Failures are logged
// and never returned, so a broken broker cannot fail the mutation that
// produced the event.
type MultiPublisher struct {
	publishers []Publisher
	logger     *zap.Logger
}

// NewMultiPublisher skips nil publishers
func NewMultiPublisher(logger *zap.Logger, publishers ...Publisher) *MultiPublisher {
	m := &MultiPublisher{logger: logger}
	for _, p := range publishers {
		if p != nil {
			m.publishers = append(m.publishers, p)
		}
	}
	return m
}

// Publish implements Publisher
func (m *MultiPublisher) Publish(ctx context.Context, event Event) error {
	for _, p := range m.publishers {
		if err := p.Publish(ctx, event); err != nil {
			m.logger.Warn("failed to publish event",
				zap.String("topic", string(event.Topic)),
				zap.String("kind", string(event.Kind)),
				zap.String("resource_id", event.ResourceID.String()),
				zap.Error(err))
		}
	}
	return nil
}
