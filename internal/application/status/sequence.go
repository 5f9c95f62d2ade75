// Package status cycles the cosmetic messages shown while an analysis is
// pending. It knows nothing about when the analysis finishes.
package status

import (
	"context"
	"sync"
	"time"
)

// Sequence is a deterministic generator over a fixed ordered list.
type Sequence struct {
	mu   sync.Mutex
	msgs []string
	next int
}

func NewSequence(msgs []string) *Sequence {
	return &Sequence{msgs: append([]string(nil), msgs...)}
}

// Next returns the current message and advances, wrapping at the end.
// An empty sequence always yields "".
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.msgs) == 0 {
		return ""
	}
	m := s.msgs[s.next]
	s.next = (s.next + 1) % len(s.msgs)
	return m
}

// Reset rewinds to the first message.
func (s *Sequence) Reset() {
	s.mu.Lock()
	s.next = 0
	s.mu.Unlock()
}

// Messages returns a copy of the full list.
func (s *Sequence) Messages() []string {
	return append([]string(nil), s.msgs...)
}

// Tick emits the first message immediately and then one per interval until
// ctx is done. The channel is closed on return.
func (s *Sequence) Tick(ctx context.Context, interval time.Duration) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		if len(s.msgs) == 0 {
			return
		}
		if interval <= 0 {
			interval = time.Second
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		msg := s.Next()
		for {
			select {
			case <-ctx.Done():
				return
			case out <- msg:
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				msg = s.Next()
			}
		}
	}()
	return out
}
