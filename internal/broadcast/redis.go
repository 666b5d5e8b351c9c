package broadcast

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisChannel is the production Channel: one Redis pub/sub channel
// per duel, shared by both clients.
type RedisChannel struct {
	client *redis.Client
	duelID string
	sub    *redis.PubSub
}

// ChannelName returns the pub/sub channel for a duel.
func ChannelName(duelID string) string {
	return fmt.Sprintf("duel:%s:state", duelID)
}

// NewRedisChannel wraps an existing client for one duel.
func NewRedisChannel(client *redis.Client, duelID string) *RedisChannel {
	return &RedisChannel{client: client, duelID: duelID}
}

// Publish sends a snapshot to the duel channel. Serialization errors
// are returned; there is no delivery acknowledgment.
func (c *RedisChannel) Publish(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.client.Publish(ctx, ChannelName(c.duelID), data).Err()
}

// Subscribe starts consuming snapshots from the duel channel. The
// returned channel closes when ctx is cancelled or the subscription
// drops. Malformed payloads are logged and skipped.
func (c *RedisChannel) Subscribe(ctx context.Context) (<-chan Snapshot, error) {
	c.sub = c.client.Subscribe(ctx, ChannelName(c.duelID))
	// Force the subscription to be established before returning.
	if _, err := c.sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", ChannelName(c.duelID), err)
	}

	out := make(chan Snapshot)
	go func() {
		defer close(out)
		msgs := c.sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var snap Snapshot
				if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
					logrus.WithError(err).WithField("duel_id", c.duelID).
						Warn("dropping malformed snapshot")
					continue
				}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Close tears down the subscription, if any.
func (c *RedisChannel) Close() error {
	if c.sub != nil {
		return c.sub.Close()
	}
	return nil
}
