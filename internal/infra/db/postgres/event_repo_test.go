package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertQuery(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO analytics_events (name, session_id, props, occurred_at) VALUES ($1,$2,$3::jsonb,$4)",
		insertQuery(1))
	assert.Equal(t,
		"INSERT INTO analytics_events (name, session_id, props, occurred_at) VALUES ($1,$2,$3::jsonb,$4),($5,$6,$7::jsonb,$8)",
		insertQuery(2))
}
