package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/braindots/internal/audio"
	"github.com/tomz197/braindots/internal/object"
	"github.com/tomz197/braindots/internal/store"
)

// Options configures a Controller. Zero values fall back to defaults:
// in-memory scores, no sound, math/rand, the wall clock and a discarding logger.
type Options struct {
	Scores  store.Scores
	Key     string // Best-score key, store.DefaultKey if empty
	Sound   audio.Player
	Random  object.Random
	Now     func() time.Time
	Logger  *log.Logger
	Context context.Context // Used for store calls
}

// Controller owns a Session and drives it through start, playing and gameOver.
// It is not safe for concurrent use; input, Frame and rendering must run on
// the same goroutine.
type Controller struct {
	session *Session
	spawner *object.ObstacleSpawner
	scores  store.Scores
	key     string
	sound   audio.Player
	now     func() time.Time
	logger  *log.Logger
	ctx     context.Context
}

// NewController creates a controller on the start screen for a canvas of
// width x height and loads the best score.
func NewController(width, height float64, opts Options) *Controller {
	c := &Controller{
		session: NewSession(object.NewScreen(width, height)),
		spawner: object.NewObstacleSpawner(opts.Random),
		scores:  opts.Scores,
		key:     opts.Key,
		sound:   opts.Sound,
		now:     opts.Now,
		logger:  opts.Logger,
		ctx:     opts.Context,
	}
	if c.scores == nil {
		c.scores = store.NewMemory()
	}
	if c.key == "" {
		c.key = store.DefaultKey
	}
	if c.sound == nil {
		c.sound = audio.Silent{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}

	best, err := c.scores.Best(c.ctx, c.key)
	if err != nil {
		c.logger.Warn("could not load best score", "key", c.key, "err", err)
	}
	c.session.Best = best
	return c
}

// Session exposes the underlying session. Callers must not retain it across frames.
func (c *Controller) Session() *Session {
	return c.session
}

// State returns the current game phase.
func (c *Controller) State() GameState {
	return c.session.State
}

// Play starts a new run. Only valid from the start screen.
func (c *Controller) Play() bool {
	s := c.session
	if s.State != GameStateStart {
		return false
	}
	s.reset()
	s.State = GameStatePlaying
	c.logger.Debug("run started", "run", s.ID, "best", s.Best)
	return true
}

// Restart returns from the game over screen to the start screen.
func (c *Controller) Restart() bool {
	if c.session.State != GameStateOver {
		return false
	}
	c.session.State = GameStateStart
	return true
}

// Frame runs due deferred events and then, if the run is active, one
// simulation step. Sounds for resolved collisions are played in order.
func (c *Controller) Frame() []Resolution {
	s := c.session
	now := c.now()

	for _, ev := range s.takeDue(now) {
		switch ev.kind {
		case deferredRemove:
			s.removeObstacle(ev.obstacle)
		case deferredEnd:
			c.endGame()
		}
	}

	if !s.Running() {
		return nil
	}

	resolved := Step(s, c.spawner, now)
	for _, r := range resolved {
		if r.Matched {
			c.sound.Play(audio.SoundScore)
		} else {
			c.sound.Play(audio.SoundPunch)
		}
	}
	return resolved
}

// endGame moves a run that hit a mismatch to the game over screen.
func (c *Controller) endGame() {
	s := c.session
	if s.State != GameStatePlaying {
		return
	}
	s.State = GameStateOver
	s.LastScore = s.Score
	s.Played = true

	newBest := s.Score > s.Best
	if newBest {
		s.Best = s.Score
		if err := c.scores.SaveBest(c.ctx, c.key, s.Best); err != nil {
			c.logger.Error("could not save best score", "key", c.key, "err", err)
		}
	}
	c.logger.Info("run ended", "run", s.ID, "score", s.Score, "best", s.Best, "level", s.Level, "new_best", newBest)
}

// Resize updates the canvas size and recomputes wheel and hub geometry.
// Rotations and obstacles are kept.
func (c *Controller) Resize(width, height float64) {
	screen := object.NewScreen(width, height)
	if screen == c.session.Screen {
		return
	}
	c.session.resize(screen)
}

// Playing reports whether a run is in progress (including its final delay).
func (c *Controller) Playing() bool {
	return c.session.State == GameStatePlaying
}

// TutorialVisible reports whether the tutorial overlay is showing.
func (c *Controller) TutorialVisible() bool {
	return c.session.Tutorial
}

// DismissTutorial hides the tutorial; the simulation starts on the next frame.
func (c *Controller) DismissTutorial() {
	c.session.Tutorial = false
}

// Over reports whether the current run hit a mismatch.
func (c *Controller) Over() bool {
	return c.session.Over
}

// Width returns the canvas width in logical units.
func (c *Controller) Width() float64 {
	return c.session.Screen.Width
}

// Wheel returns the wheel for side.
func (c *Controller) Wheel(side object.Side) *object.Wheel {
	return c.session.Wheel(side)
}
