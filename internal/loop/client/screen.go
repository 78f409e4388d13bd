package client

import (
	"fmt"
	"time"

	"github.com/tomz197/braindots/internal/draw"
	"github.com/tomz197/braindots/internal/loop"
	"github.com/tomz197/braindots/internal/loop/config"
	"github.com/tomz197/braindots/internal/object"
)

var (
	textColor   = draw.Hex("#FFFFFF")
	dimColor    = draw.Hex("#999999")
	accentColor = draw.Hex(object.Yellow.Display)
)

// leaderboardSize is how many entries the start screen lists.
const leaderboardSize = 5

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	c.canvas.Clear()

	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth/2 + 1
	centerY := termHeight/2 + 1

	if c.state.tooSmall {
		c.canvas.Render(c.chunkWriter)
		c.chunkWriter.WriteCentered(centerX, centerY, "Terminal too small", textColor)
		return c.chunkWriter.Flush()
	}

	snap := c.game.Snapshot()
	ctx := object.DrawContext{Canvas: c.canvas}
	if snap.State != loop.GameStateStart {
		for _, obj := range snap.Objects() {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	c.drawUI(&snap, centerX, centerY)

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(snap *loop.Snapshot, centerX, centerY int) {
	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch snap.State {
	case loop.GameStateStart:
		c.drawStartScreen(snap, centerX, centerY)
	case loop.GameStatePlaying:
		c.drawPlayingHUD(snap, centerX, centerY)
	case loop.GameStateOver:
		c.drawGameOverScreen(snap, centerX, centerY)
	}
}

// blinkOn toggles a few times a second for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawTitle writes "BRAIN DOTS" with the subtitle letters in the four colours.
func (c *Client) drawTitle(centerX, row int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, row, "B R A I N   D O T S", textColor)

	subtitle := "C O L O R S"
	col := centerX - len(subtitle)/2
	for i, r := range subtitle {
		if r == ' ' {
			continue
		}
		colour := object.Colors[(i/2)%len(object.Colors)]
		cw.WriteColored(col+i, row+1, string(r), draw.Hex(colour.Display))
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(snap *loop.Snapshot, centerX, centerY int) {
	cw := c.chunkWriter
	top := centerY - 7
	c.drawTitle(centerX, top)

	cw.WriteCentered(centerX, top+3, fmt.Sprintf("Best: %d", snap.Best), accentColor)
	if snap.Played {
		cw.WriteCentered(centerX, top+4, fmt.Sprintf("Last: %d", snap.LastScore), dimColor)
	}

	controls := []string{
		"Drag on a half . . Spin that wheel",
		"W / S  . . . . . . . . Left wheel",
		"I / K  . . . . . . .  Right wheel",
		"Q  . . . . . . . . . . . . . Quit",
	}
	for i, line := range controls {
		cw.WriteCentered(centerX, top+6+i, line, dimColor)
	}

	row := top + 7 + len(controls)
	if blinkOn() {
		cw.WriteCentered(centerX, row, ">>  Press SPACE or click to Play  <<", textColor)
	}

	if c.server.ActiveClients() > 1 {
		c.drawLeaderboard(centerX, row+2)
	}
}

// drawLeaderboard lists the best runs of connected players.
func (c *Client) drawLeaderboard(centerX, row int) {
	top := c.server.TopScores(leaderboardSize)
	if len(top) == 0 {
		return
	}
	cw := c.chunkWriter
	cw.WriteCentered(centerX, row, "Online now", textColor)
	for i, entry := range top {
		name := entry.Username
		if len(name) > config.MaxUsernameLength {
			name = name[:config.MaxUsernameLength]
		}
		line := fmt.Sprintf("%d. %-*s %4d", i+1, config.MaxUsernameLength, name, entry.Score)
		col := dimColor
		if entry.Username == c.username {
			col = accentColor
		}
		cw.WriteCentered(centerX, row+1+i, line, col)
	}
}

// drawPlayingHUD draws the score and, until the first gesture, the tutorial.
func (c *Client) drawPlayingHUD(snap *loop.Snapshot, centerX, centerY int) {
	cw := c.chunkWriter

	col, row := c.canvas.LogicalToTerminal(snap.Screen.Width/2, snap.Screen.Height/4)
	cw.WriteCentered(col, row, fmt.Sprintf("%d", snap.Score), textColor)

	if players := c.server.ActiveClients(); players > 1 {
		text := fmt.Sprintf("Players: %-4d", players)
		cw.WriteAt(c.canvas.TerminalWidth()-len(text), c.canvas.TerminalHeight(), text)
	}

	if snap.Tutorial {
		lines := []string{
			"Spin each wheel so the dot",
			"hits the quarter of its colour",
			"",
			"Drag up or down on a half of the screen",
			"or use W/S and I/K",
		}
		for i, line := range lines {
			cw.WriteCentered(centerX, centerY+2+i, line, textColor)
		}
		if blinkOn() {
			cw.WriteCentered(centerX, centerY+3+len(lines), "Tap anywhere to begin", accentColor)
		}
	}
}

// drawGameOverScreen draws the final score.
func (c *Client) drawGameOverScreen(snap *loop.Snapshot, centerX, centerY int) {
	cw := c.chunkWriter
	top := centerY - 3

	cw.WriteCentered(centerX, top, "G A M E   O V E R", draw.Hex(object.Red.Display))
	cw.WriteCentered(centerX, top+2, fmt.Sprintf("Score: %d", snap.LastScore), textColor)
	if snap.LastScore > 0 && snap.LastScore == snap.Best {
		cw.WriteCentered(centerX, top+3, "New best!", accentColor)
	} else {
		cw.WriteCentered(centerX, top+3, fmt.Sprintf("Best: %d", snap.Best), dimColor)
	}

	if blinkOn() {
		cw.WriteCentered(centerX, top+5, ">>  Press SPACE to Continue  <<", textColor)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-2, "INACTIVITY WARNING", accentColor)

	msg := fmt.Sprintf(
		"You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteCentered(centerX, centerY, msg, textColor)
	cw.WriteCentered(centerX, centerY+2, "Press any key to continue", dimColor)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	cw.WriteCentered(centerX, centerY-3, "SERVER SHUTTING DOWN", accentColor)
	cw.WriteCentered(centerX, centerY-1, "The server is restarting for maintenance.", textColor)
	cw.WriteCentered(centerX, centerY, "Please reconnect in a moment.", textColor)

	remaining := int(c.state.shutdownTimer) + 1
	cw.WriteCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), textColor)
	cw.WriteCentered(centerX, centerY+4, "Press Q to disconnect now", dimColor)
}
