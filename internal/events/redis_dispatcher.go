package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher is the subset of *redis.Client used for fan-out.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// redisDispatcher runs local handlers and then publishes the event as JSON
// on a Redis channel for out-of-process consumers.
type redisDispatcher struct {
	local   Dispatcher
	client  Publisher
	channel string
}

// NewRedisDispatcher wraps local so every event is also published on channel.
func NewRedisDispatcher(local Dispatcher, client Publisher, channel string) Dispatcher {
	return &redisDispatcher{local: local, client: client, channel: channel}
}

func (d *redisDispatcher) Publish(ctx context.Context, event Event) error {
	localErr := d.local.Publish(ctx, event)

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Join(localErr, fmt.Errorf("encode event %s: %w", event.Type, err))
	}
	if err := d.client.Publish(ctx, d.channel, payload).Err(); err != nil {
		return errors.Join(localErr, fmt.Errorf("publish event %s: %w", event.Type, err))
	}
	return localErr
}

func (d *redisDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.local.Subscribe(eventType, handler)
}
