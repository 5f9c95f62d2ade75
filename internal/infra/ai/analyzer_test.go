package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a, err := New(context.Background(), "gemini", "", "", "")
	require.NoError(t, err)
	assert.False(t, a.HasCredential())

	a, err = New(context.Background(), "OpenAI", "sk-test", "", "")
	require.NoError(t, err)
	assert.True(t, a.HasCredential())

	_, err = New(context.Background(), "claude", "k", "", "")
	assert.Error(t, err)
}
