package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// channelPrefix namespaces the per-trip pub/sub channels.
const channelPrefix = "trip:"

// RedisBroker publishes and subscribes trip change events over Redis pub/sub.
// One channel per trip keeps fan-out server-side; every API instance relays
// only the trips its own SSE clients are watching.
type RedisBroker struct {
	client *redis.Client
}

// NewRedisBroker constructs a broker on the given Redis client and verifies
// the connection with a ping.
func NewRedisBroker(ctx context.Context, client *redis.Client) (*RedisBroker, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisBroker{client: client}, nil
}

// TripChanged publishes an event to the trip's channel.
// Errors are logged and swallowed; change notification is best-effort.
func (b *RedisBroker) TripChanged(ctx context.Context, tripID uuid.UUID, table string) {
	payload, err := json.Marshal(Event{TripID: tripID, Table: table})
	if err != nil {
		slog.ErrorContext(ctx, "realtime: marshal event", "error", err)
		return
	}
	if err := b.client.Publish(ctx, channelPrefix+tripID.String(), payload).Err(); err != nil {
		slog.ErrorContext(ctx, "realtime: publish", "trip_id", tripID, "error", err)
	}
}

// Subscribe returns a channel of events for the trip until ctx is done.
func (b *RedisBroker) Subscribe(ctx context.Context, tripID uuid.UUID) (<-chan Event, error) {
	sub := b.client.Subscribe(ctx, channelPrefix+tripID.String())
	// Force the subscription onto the wire before we report success, so a
	// client that connects and immediately mutates sees its own event.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					slog.Error("realtime: unmarshal event", "error", err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// compile-time checks.
var (
	_ Notifier   = (*RedisBroker)(nil)
	_ Subscriber = (*RedisBroker)(nil)
)
