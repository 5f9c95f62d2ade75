package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_NextWraps(t *testing.T) {
	s := NewSequence([]string{"a", "b", "c"})
	var got []string
	for i := 0; i < 7; i++ {
		got = append(got, s.Next())
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c", "a"}, got)

	s.Reset()
	assert.Equal(t, "a", s.Next())
}

func TestSequence_Empty(t *testing.T) {
	s := NewSequence(nil)
	assert.Equal(t, "", s.Next())

	ch := s.Tick(context.Background(), time.Millisecond)
	_, ok := <-ch
	assert.False(t, ok)
}

func TestSequence_InputIsCopied(t *testing.T) {
	in := []string{"a", "b"}
	s := NewSequence(in)
	in[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Messages())
}

func TestSequence_Tick(t *testing.T) {
	s := NewSequence([]string{"one", "two"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Tick(ctx, 5*time.Millisecond)
	var got []string
	for len(got) < 3 {
		select {
		case m := <-ch:
			got = append(got, m)
		case <-time.After(time.Second):
			t.Fatal("tick did not emit")
		}
	}
	assert.Equal(t, []string{"one", "two", "one"}, got)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
