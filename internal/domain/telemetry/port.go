package telemetry

import "context"

// Sink port (where flushed events go)
type Sink interface {
	Write(ctx context.Context, events []Event) error
	Close() error
}

// Tracker is the narrow interface use cases depend on.
type Tracker interface {
	Track(e Event)
}

// Pinger is implemented by sinks that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}
