// Command desktop runs the game in a window with mouse and multi-touch input.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/braindots/internal/audio"
	"github.com/tomz197/braindots/internal/config"
	"github.com/tomz197/braindots/internal/input"
	"github.com/tomz197/braindots/internal/loop"
	lconfig "github.com/tomz197/braindots/internal/loop/config"
	"github.com/tomz197/braindots/internal/object"
	"github.com/tomz197/braindots/internal/store"
)

const (
	windowWidth  = 960
	windowHeight = 600
)

// Game adapts the controller to ebiten's update/draw cycle.
type Game struct {
	game    *loop.Controller
	mapper  *input.Mapper
	touches []ebiten.TouchID
	width   int
	height  int
}

func newGame(opts loop.Options) *Game {
	g := &Game{width: windowWidth, height: windowHeight}
	g.game = loop.NewController(windowWidth, windowHeight, opts)
	g.mapper = input.NewMapper(g.game)
	return g
}

// Update applies input and advances one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.updateKeys()
	g.updateMouse()
	g.updateTouches()
	g.game.Frame()
	return nil
}

func (g *Game) updateKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.confirm()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.game.State() == loop.GameStateOver {
		g.game.Restart()
	}

	nudges := []struct {
		key  ebiten.Key
		side object.Side
		down bool
	}{
		{ebiten.KeyW, object.SideLeft, false},
		{ebiten.KeyS, object.SideLeft, true},
		{ebiten.KeyI, object.SideRight, false},
		{ebiten.KeyK, object.SideRight, true},
		{ebiten.KeyArrowUp, object.SideRight, false},
		{ebiten.KeyArrowDown, object.SideRight, true},
	}
	for _, n := range nudges {
		if inpututil.IsKeyJustPressed(n.key) {
			g.mapper.Nudge(n.side, n.down)
		}
	}
}

// confirm starts, dismisses or restarts depending on the screen.
func (g *Game) confirm() {
	switch g.game.State() {
	case loop.GameStateStart:
		g.mapper.Reset()
		g.game.Play()
	case loop.GameStatePlaying:
		if g.game.TutorialVisible() {
			g.game.DismissTutorial()
		}
	case loop.GameStateOver:
		g.game.Restart()
	}
}

func (g *Game) updateMouse() {
	x, y := ebiten.CursorPosition()
	p := g.toCanvas(x, y)

	if g.game.State() != loop.GameStatePlaying {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.confirm()
		}
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.mapper.MouseDown(p)
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.mapper.MouseMove(p)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.mapper.MouseUp(p)
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		side := object.Screen{Width: g.game.Width()}.SideAt(p.X)
		g.mapper.Nudge(side, dy < 0)
	}
}

func (g *Game) updateTouches() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		if g.game.State() != loop.GameStatePlaying {
			g.confirm()
			continue
		}
		g.mapper.TouchStart(int(id), g.toCanvas(x, y))
	}

	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		x, y := ebiten.TouchPosition(id)
		g.mapper.TouchMove(int(id), g.toCanvas(x, y))
	}

	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		g.mapper.TouchEnd(int(id))
	}
}

// toCanvas maps a layout position to game coordinates.
func (g *Game) toCanvas(x, y int) input.Point {
	rect := input.Rect{Width: float64(g.width), Height: float64(g.height)}
	return input.ToCanvas(input.Point{X: float64(x), Y: float64(y)}, rect, g.game.Width(), float64(g.height))
}

// Layout uses the window size as the game size and rescales on change.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.width || h != g.height {
		g.width, g.height = w, h
		g.game.Resize(float64(w), float64(h))
	}
	return w, h
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "desktop"})
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	var scores store.Scores = store.NewMemory()
	if cfg.Store.Path != "" {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			logger.Warn("best score will not be saved", "path", cfg.Store.Path, "err", err)
		} else {
			defer db.Close()
			scores = db
		}
	}

	var sound audio.Player = audio.Silent{}
	if cfg.Audio.Enabled {
		sp, err := audio.NewSpeaker(cfg.Audio.Volume)
		if err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sp.Close()
			sound = sp
		}
	}

	g := newGame(loop.Options{
		Scores: scores,
		Sound:  sound,
		Logger: logger,
	})

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Brain Dots - Colors")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(lconfig.TargetFPS)

	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
