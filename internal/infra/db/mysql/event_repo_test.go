package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertQuery(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO analytics_events (name, session_id, props, occurred_at) VALUES (?,?,?,?)",
		insertQuery(1))
	assert.Contains(t, insertQuery(3), "(?,?,?,?),(?,?,?,?),(?,?,?,?)")
}

func TestEncodeProps(t *testing.T) {
	s, err := encodeProps(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", s)

	s, err = encodeProps(map[string]string{"kind": "invalid_input"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"invalid_input"}`, s)
}

func TestStringOrDash(t *testing.T) {
	assert.Equal(t, "-", stringOrDash("  "))
	assert.Equal(t, "abc", stringOrDash("abc"))
}
