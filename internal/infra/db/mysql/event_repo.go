package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/videomaster/internal/domain/telemetry"
)

const createEvents = `
CREATE TABLE IF NOT EXISTS analytics_events (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  name VARCHAR(64) NOT NULL,
  session_id VARCHAR(64) NOT NULL,
  props JSON NOT NULL,
  occurred_at DATETIME(3) NOT NULL,
  KEY idx_events_name_time (name, occurred_at)
)`

// EventRepository is a telemetry sink backed by the analytics_events table.
type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Migrate creates the events table when missing.
func (r *EventRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createEvents)
	return err
}

// Write inserts the batch with a single multi-row statement.
func (r *EventRepository) Write(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	args := make([]any, 0, len(events)*4)
	for _, e := range events {
		props, err := encodeProps(e.Props)
		if err != nil {
			return fmt.Errorf("encode props for %s: %w", e.Name, err)
		}
		args = append(args, e.Name, stringOrDash(e.SessionID), props, e.At.UTC())
	}
	_, err := r.db.ExecContext(ctx, insertQuery(len(events)), args...)
	return err
}

func (r *EventRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *EventRepository) Close() error { return r.db.Close() }

func insertQuery(rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO analytics_events (name, session_id, props, occurred_at) VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?,?,?,?)")
	}
	return b.String()
}
