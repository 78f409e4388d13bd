package loop

import "github.com/tomz197/braindots/internal/object"

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	State     GameState
	Screen    object.Screen
	Hub       object.Hub
	Left      object.Wheel
	Right     object.Wheel
	Obstacles []object.Obstacle

	Score     int
	Best      int
	LastScore int
	Played    bool
	Level     float64
	Tutorial  bool
	Over      bool
}

// Snapshot copies the current session state.
func (c *Controller) Snapshot() Snapshot {
	s := c.session
	snap := Snapshot{
		State:     s.State,
		Screen:    s.Screen,
		Hub:       *s.Hub,
		Left:      *s.Left,
		Right:     *s.Right,
		Obstacles: make([]object.Obstacle, len(s.Obstacles)),
		Score:     s.Score,
		Best:      s.Best,
		LastScore: s.LastScore,
		Played:    s.Played,
		Level:     s.Level,
		Tutorial:  s.Tutorial,
		Over:      s.Over,
	}
	for i, ob := range s.Obstacles {
		snap.Obstacles[i] = *ob
	}
	return snap
}

// Objects returns the drawable entities in paint order: hub, obstacles, wheels.
func (s *Snapshot) Objects() []object.Object {
	objs := make([]object.Object, 0, len(s.Obstacles)+3)
	objs = append(objs, &s.Hub)
	for i := range s.Obstacles {
		objs = append(objs, &s.Obstacles[i])
	}
	return append(objs, &s.Left, &s.Right)
}
