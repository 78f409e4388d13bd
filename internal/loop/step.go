package loop

import (
	"time"

	"github.com/tomz197/braindots/internal/loop/config"
	"github.com/tomz197/braindots/internal/object"
	"github.com/tomz197/braindots/internal/physics"
)

// Resolution describes one obstacle meeting its wheel.
type Resolution struct {
	Obstacle *object.Obstacle
	Side     object.Side
	Wheel    object.Color // Colour the wheel faced at the moment of contact
	Matched  bool
}

// Step advances the session by one tick and returns the collisions it resolved.
// Callers gate it with Session.Running; now stamps any deferred events.
func Step(s *Session, spawner *object.ObstacleSpawner, now time.Time) []Resolution {
	s.Hub.Advance()

	s.Frames++
	if shouldSpawn(s.Frames, s.Level) {
		s.Frames = 0
		s.Obstacles = append(s.Obstacles, spawner.Spawn(s.Score, s.Screen, s.Hub))
	}

	s.Level = max(s.Level, LevelForScore(s.Score))

	ctx := object.UpdateContext{Screen: s.Screen}
	var resolved []Resolution

	kept := s.Obstacles[:0] // reuse backing array
	for _, ob := range s.Obstacles {
		if offscreen, _ := ob.Update(ctx); offscreen {
			continue
		}
		kept = append(kept, ob)

		if s.Over || ob.Resolved {
			continue
		}
		if r, hit := collide(s, ob, now); hit {
			resolved = append(resolved, r)
		}
	}
	clear(s.Obstacles[len(kept):])
	s.Obstacles = kept

	return resolved
}

// collide checks ob against its target wheel and resolves it on contact.
func collide(s *Session, ob *object.Obstacle, now time.Time) (Resolution, bool) {
	wheel := s.Wheel(ob.Side)
	if !physics.CirclesOverlap(ob.X, ob.Y, ob.Size, wheel.X, wheel.Y, wheel.Radius) {
		return Resolution{}, false
	}

	facing := object.ColorForWheel(wheel, ob.Side)
	r := Resolution{Obstacle: ob, Side: ob.Side, Wheel: facing}

	due := now.Add(config.ResolveDelay)
	if facing.Matches(ob.Color) {
		s.Score++
		r.Matched = true
	} else {
		s.Over = true
		s.schedule(due, deferredEnd, nil)
	}

	ob.Resolve()
	s.schedule(due, deferredRemove, ob)
	return r, true
}
