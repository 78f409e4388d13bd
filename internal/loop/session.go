// Package loop runs the game: the session state machine, the per-frame
// simulation step and the deferred events that follow a collision.
package loop

import (
	"github.com/google/uuid"
	"github.com/tomz197/braindots/internal/loop/config"
	"github.com/tomz197/braindots/internal/object"
)

// GameState represents the current game phase.
type GameState int

const (
	GameStateStart   GameState = iota // Title screen
	GameStatePlaying                  // Active run
	GameStateOver                     // Run ended, final score shown
)

func (g GameState) String() string {
	switch g {
	case GameStateStart:
		return "start"
	case GameStatePlaying:
		return "playing"
	case GameStateOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Session holds all mutable state of one player's game.
// It is owned by a Controller and never shared between goroutines.
type Session struct {
	ID     uuid.UUID // Current run, regenerated on every Play
	Screen object.Screen

	Hub       *object.Hub
	Left      *object.Wheel
	Right     *object.Wheel
	Obstacles []*object.Obstacle

	Score     int
	Best      int
	LastScore int
	Played    bool // A run has finished since startup; LastScore is meaningful

	Level  float64
	Frames int // Ticks since the last spawn

	State    GameState
	Tutorial bool // Tutorial overlay showing; the simulation waits for it
	Over     bool // Mismatch happened; the run ends once the delay passes

	// Generation increments on every Play. Deferred events from an older
	// generation are dropped.
	Generation uint64

	events []deferred
}

// NewSession creates a session on the start screen.
func NewSession(screen object.Screen) *Session {
	return &Session{
		Screen: screen,
		Hub:    object.NewHub(screen),
		Left:   object.NewWheel(object.SideLeft, screen),
		Right:  object.NewWheel(object.SideRight, screen),
		Level:  config.InitialLevel,
		State:  GameStateStart,
	}
}

// Wheel returns the wheel guarding side.
func (s *Session) Wheel(side object.Side) *object.Wheel {
	if side == object.SideLeft {
		return s.Left
	}
	return s.Right
}

// Running reports whether the simulation step should run this frame.
func (s *Session) Running() bool {
	return s.State == GameStatePlaying && !s.Tutorial && !s.Over
}

// reset prepares a fresh run.
func (s *Session) reset() {
	s.ID = uuid.New()
	s.Generation++
	s.Score = 0
	s.Level = config.InitialLevel
	s.Frames = 0
	s.Obstacles = s.Obstacles[:0]
	s.Tutorial = true
	s.Over = false
	s.Left.Reset(s.Screen)
	s.Right.Reset(s.Screen)
	s.Hub.Place(s.Screen)
}

// resize stores a new screen and recomputes geometry, keeping rotations.
func (s *Session) resize(screen object.Screen) {
	s.Screen = screen
	s.Left.Place(screen)
	s.Right.Place(screen)
	s.Hub.Place(screen)
}

// removeObstacle drops ob from the active set if it is still there.
func (s *Session) removeObstacle(ob *object.Obstacle) {
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		if o != ob {
			kept = append(kept, o)
		}
	}
	clear(s.Obstacles[len(kept):])
	s.Obstacles = kept
}
