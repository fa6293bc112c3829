package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/triage-engine/internal/domain"
)

// RedisSink publishes audit events to a Redis channel so downstream
// consumers (queues, dashboards) can react to finalized tickets.
type RedisSink struct {
	client  *redis.Client
	channel string
}

// NewRedisSink constructs a sink publishing to the given channel.
func NewRedisSink(client *redis.Client, channel string) *RedisSink {
	return &RedisSink{client: client, channel: channel}
}

// Write publishes one event as JSON.
func (s *RedisSink) Write(ctx context.Context, event domain.AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	if err := s.client.Publish(ctx, s.channel, data).Err(); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}
