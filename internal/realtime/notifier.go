// Package realtime propagates trip content changes to connected clients.
//
// The model is subscribe-and-refetch: after any mutation the service layer
// publishes a small event naming the trip and the table that changed, and
// subscribed clients refetch that table. Events carry no row data and no
// diffs; concurrent edits resolve last-write-wins in the database.
package realtime

import (
	"context"

	"github.com/google/uuid"
)

// Event is one change notification for a trip.
type Event struct {
	TripID uuid.UUID `json:"trip_id"`
	// Table names what changed: "pins", "categories", "list_items",
	// "collaborators", or "trips".
	Table string `json:"table"`
}

// Notifier publishes change events for a trip.
// Publish failures are logged by implementations, never returned: a missed
// refetch hint must not fail the mutation that triggered it.
type Notifier interface {
	TripChanged(ctx context.Context, tripID uuid.UUID, table string)
}

// Subscriber delivers change events for a single trip until ctx is done.
type Subscriber interface {
	// Subscribe returns a channel of events for the trip. The channel is
	// closed when ctx is canceled.
	Subscribe(ctx context.Context, tripID uuid.UUID) (<-chan Event, error)
}

// NoopNotifier satisfies Notifier without doing anything.
// Used when REDIS_URL is not configured.
type NoopNotifier struct{}

// TripChanged discards the event.
func (NoopNotifier) TripChanged(context.Context, uuid.UUID, string) {}
