package loop

import (
	"time"

	"github.com/tomz197/braindots/internal/object"
)

type deferredKind int

const (
	deferredRemove deferredKind = iota // Drop a resolved obstacle
	deferredEnd                        // End the run after a mismatch
)

// deferred is a fire-once event tagged with the generation it was scheduled in.
type deferred struct {
	due        time.Time
	generation uint64
	kind       deferredKind
	obstacle   *object.Obstacle
}

// schedule queues an event for the current generation.
func (s *Session) schedule(due time.Time, kind deferredKind, ob *object.Obstacle) {
	s.events = append(s.events, deferred{
		due:        due,
		generation: s.Generation,
		kind:       kind,
		obstacle:   ob,
	})
}

// takeDue removes and returns every event due at now, in scheduling order.
// Stale events (older generation) are dropped here without being returned.
func (s *Session) takeDue(now time.Time) []deferred {
	var due []deferred
	kept := s.events[:0]
	for _, ev := range s.events {
		switch {
		case now.Before(ev.due):
			kept = append(kept, ev)
		case ev.generation == s.Generation:
			due = append(due, ev)
		}
	}
	clear(s.events[len(kept):])
	s.events = kept
	return due
}

// Pending returns the number of queued deferred events.
func (s *Session) Pending() int {
	return len(s.events)
}
