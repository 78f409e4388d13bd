package client

import (
	"time"

	"github.com/tomz197/braindots/internal/input"
	"github.com/tomz197/braindots/internal/loop"
)

// ClientState holds per-connection presentation state. Game state lives in
// the controller; this only tracks what the frontend itself needs.
type ClientState struct {
	Input         input.Input
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	prevGameState loop.GameState
	shuttingDown  bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state
	tooSmall      bool    // Terminal below the minimum playable size
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:       true,
		prevGameState: loop.GameStateStart,
	}
}
