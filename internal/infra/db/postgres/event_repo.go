package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/videomaster/internal/domain/telemetry"
)

const createEvents = `
CREATE TABLE IF NOT EXISTS analytics_events (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  session_id TEXT NOT NULL,
  props JSONB NOT NULL DEFAULT '{}'::jsonb,
  occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_name_time ON analytics_events (name, occurred_at);`

type EventRepository struct{ db *sql.DB }

func NewEventRepository(db *sql.DB) *EventRepository { return &EventRepository{db: db} }

func (r *EventRepository) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createEvents)
	return err
}

func (r *EventRepository) Write(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	args := make([]any, 0, len(events)*4)
	for _, e := range events {
		props := []byte("{}")
		if len(e.Props) > 0 {
			b, err := json.Marshal(e.Props)
			if err != nil {
				return fmt.Errorf("encode props for %s: %w", e.Name, err)
			}
			props = b
		}
		session := e.SessionID
		if strings.TrimSpace(session) == "" {
			session = "-"
		}
		args = append(args, e.Name, session, string(props), e.At.UTC())
	}
	_, err := r.db.ExecContext(ctx, insertQuery(len(events)), args...)
	return err
}

func (r *EventRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *EventRepository) Close() error { return r.db.Close() }

// insertQuery numbers placeholders $1..$n across all rows.
func insertQuery(rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO analytics_events (name, session_id, props, occurred_at) VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		n := i * 4
		fmt.Fprintf(&b, "($%d,$%d,$%d::jsonb,$%d)", n+1, n+2, n+3, n+4)
	}
	return b.String()
}
