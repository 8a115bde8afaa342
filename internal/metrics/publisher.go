package metrics

import (
	"context"

	"github.com/straye-as/sales-crm-api/internal/events"
)

type countingPublisher struct {
	next    events.Publisher
	metrics *Metrics
}

// CountPublished wraps next so every successfully published event is counted by topic
func (m *Metrics) CountPublished(next events.Publisher) events.Publisher {
	return &countingPublisher{next: next, metrics: m}
}

func (p *countingPublisher) Publish(ctx context.Context, event events.Event) error {
	if err := p.next.Publish(ctx, event); err != nil {
		return err
	}
	p.metrics.EventPublished(string(event.Topic))
	return nil
}
