package console

import (
	"sync"
	"sync/atomic"

	"github.com/aretw0/zconv/pkg/ports"
)

// sequencer orders the responses of one operation kind.
// Each request takes a number from next; commit runs the render only if no
// newer response has been rendered yet.
type sequencer struct {
	operation string
	enabled   bool
	observer  ports.Observer

	issued atomic.Uint64

	mu       sync.Mutex
	rendered uint64
}

func newSequencer(operation string, o options) *sequencer {
	return &sequencer{
		operation: operation,
		enabled:   o.staleGuard,
		observer:  o.observer,
	}
}

func (s *sequencer) next() uint64 {
	return s.issued.Add(1)
}

// commit runs render under the guard lock and reports whether it ran.
func (s *sequencer) commit(seq uint64, render func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled && seq < s.rendered {
		s.observer.ObserveDiscard(s.operation)
		return false
	}
	if seq > s.rendered {
		s.rendered = seq
	}
	render()
	return true
}
