package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix prefixes every redis channel the publisher writes to
const ChannelPrefix = "crm:events:"

// AllChannel receives a copy of every event
const AllChannel = ChannelPrefix + "all"

// RedisPublisher forwards events to redis pub/sub so other instances and
// external consumers can follow changes.
type RedisPublisher struct {
	client redis.UniversalClient
}

// NewRedisPublisher wraps a redis client
func NewRedisPublisher(client redis.UniversalClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Channel returns the redis channel for a topic
func Channel(topic Topic) string {
	return ChannelPrefix + string(topic)
}

// Publish writes the event as JSON to its topic channel and to the all channel
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, Channel(event.Topic), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	if err := p.client.Publish(ctx, AllChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to all channel: %w", err)
	}
	return nil
}
