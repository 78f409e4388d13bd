// Package client runs one terminal frontend: it reads keys and mouse reports,
// drives a game controller once per frame and renders it as half-block art.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/braindots/internal/audio"
	"github.com/tomz197/braindots/internal/draw"
	"github.com/tomz197/braindots/internal/input"
	"github.com/tomz197/braindots/internal/loop"
	"github.com/tomz197/braindots/internal/loop/config"
	"github.com/tomz197/braindots/internal/loop/server"
	"github.com/tomz197/braindots/internal/object"
	"github.com/tomz197/braindots/internal/store"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	game         *loop.Controller
	mapper       *input.Mapper
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	idleTimeout  bool
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Scores       store.Scores // Best score store, in memory if nil
	Sound        audio.Player
	Logger       *log.Logger
	Context      context.Context
	IdleTimeout  bool // Warn and then disconnect inactive players
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("session", handle.SessionID)

	key := store.DefaultKey
	if opts.Username != "" {
		key = store.KeyFor(opts.Username)
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	logicalWidth, logicalHeight := logicalSize(renderWidth, renderHeight)

	game := loop.NewController(logicalWidth, logicalHeight, loop.Options{
		Scores:  opts.Scores,
		Key:     key,
		Sound:   opts.Sound,
		Logger:  logger,
		Context: opts.Context,
	})

	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, logicalWidth, logicalHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	state := NewClientState()
	state.tooSmall = termWidth < config.MinTermWidth || termHeight < config.MinTermHeight

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		game:         game,
		mapper:       input.NewMapper(game),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		idleTimeout:  opts.IdleTimeout,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	defer c.server.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		if c.state.shuttingDown {
			c.updateShutdownState()
		} else if !c.state.tooSmall {
			c.game.Frame()
			c.trackRunEnd()
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads pending input and applies it.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)
	c.state.Input = in

	if in.Closed || in.Quit {
		c.state.Running = false
	}
	c.trackActivity(in.Active)

	if c.state.shuttingDown || c.state.tooSmall {
		return
	}
	if in.Active && c.state.isInactive {
		c.state.isInactive = false
		return // The waking key press is swallowed
	}
	c.applyInput(in)
}

// trackActivity updates the inactivity warning and disconnects idle clients.
func (c *Client) trackActivity(active bool) {
	if active {
		c.lastInput = time.Now()
		return
	}
	if !c.idleTimeout {
		return
	}
	idle := time.Since(c.lastInput).Seconds()
	if idle > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client", "user", c.username)
		c.state.Running = false
	} else if idle > config.InactivityWarnUser {
		c.state.isInactive = true
	}
}

// applyInput turns one frame of input into game actions.
func (c *Client) applyInput(in input.Input) {
	if in.Space || in.Enter {
		c.confirm()
	}
	if in.Escape && c.game.State() == loop.GameStateOver {
		c.game.Restart()
	}
	for _, n := range in.Nudges {
		c.mapper.Nudge(n.Side, n.Down)
	}
	for _, ev := range in.Mouse {
		c.applyMouse(ev)
	}
}

// confirm is the Space/Enter action for the current screen.
func (c *Client) confirm() {
	switch c.game.State() {
	case loop.GameStateStart:
		c.startGame()
	case loop.GameStatePlaying:
		if c.game.TutorialVisible() {
			c.game.DismissTutorial()
		}
	case loop.GameStateOver:
		c.game.Restart()
	}
}

// applyMouse dispatches one mouse report. Clicks on the start and game over
// screens act like confirm; during play they drive the wheels.
func (c *Client) applyMouse(ev input.MouseEvent) {
	p := c.toLogical(ev.Col, ev.Row)

	switch c.game.State() {
	case loop.GameStateStart, loop.GameStateOver:
		if ev.Action == input.MousePress {
			c.confirm()
		}
		return
	}

	switch ev.Action {
	case input.MousePress:
		c.mapper.MouseDown(p)
	case input.MouseDrag:
		c.mapper.MouseMove(p)
	case input.MouseRelease:
		c.mapper.MouseUp(p)
	case input.MouseScrollUp:
		c.mapper.Nudge(c.sideAt(p.X), false)
	case input.MouseScrollDown:
		c.mapper.Nudge(c.sideAt(p.X), true)
	}
}

// toLogical converts a 1-based terminal cell to logical canvas coordinates,
// taking the centre of the cell.
func (c *Client) toLogical(col, row int) input.Point {
	rect := input.Rect{
		X:      float64(c.canvas.OffsetCol()),
		Y:      float64(c.canvas.OffsetRow()),
		Width:  float64(c.canvas.TerminalWidth()),
		Height: float64(c.canvas.TerminalHeight()),
	}
	p := input.Point{X: float64(col) - 0.5, Y: float64(row) - 0.5}
	return input.ToCanvas(p, rect, c.canvas.LogicalWidth(), c.canvas.LogicalHeight())
}

func (c *Client) sideAt(x float64) object.Side {
	return object.Screen{Width: c.game.Width()}.SideAt(x)
}

// startGame starts a new run with fresh pointer tracking.
func (c *Client) startGame() {
	c.mapper.Reset()
	c.game.Play()
}

// trackRunEnd reports a finished run to the server once.
func (c *Client) trackRunEnd() {
	st := c.game.State()
	if st == loop.GameStateOver && c.state.prevGameState != loop.GameStateOver {
		c.server.ReportScore(c.handle.ID, c.game.Snapshot().LastScore)
	}
	c.state.prevGameState = st
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area and rescales the game.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	c.state.tooSmall = termWidth < config.MinTermWidth || termHeight < config.MinTermHeight

	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}

	draw.ClearScreen(c.writer)
	logicalWidth, logicalHeight := logicalSize(renderWidth, renderHeight)
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetLogicalSize(logicalWidth, logicalHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	c.game.Resize(logicalWidth, logicalHeight)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, config.MaxTermWidth), 1)
	renderHeight = max(min(termHeight, config.MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// logicalSize returns the game's coordinate space for a render area. Each
// half-block sub-pixel is LogicalScale units square.
func logicalSize(cols, rows int) (width, height float64) {
	return float64(cols * config.LogicalScale), float64(rows * 2 * config.LogicalScale)
}
