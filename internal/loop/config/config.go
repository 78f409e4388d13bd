// Package config centralizes all tunable game parameters.
package config

import "time"

// Frame timing. The simulation is frame-count driven: one step per frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Difficulty and spawning
const (
	InitialLevel = 1.5 // Difficulty multiplier until the score passes 10
	SpawnBase    = 240 // Spawn when frames*level >= SpawnBase/level
)

// ResolveDelay is how long a resolved obstacle lingers before removal,
// and how long a mismatch waits before the run ends.
const ResolveDelay = 500 * time.Millisecond

// Terminal rendering.
// Each terminal cell is LogicalScale logical units wide and 2*LogicalScale
// high, so the game always works in a fine-grained coordinate space.
const (
	LogicalScale  = 8
	MaxTermWidth  = 160 // Columns; larger terminals get a border
	MaxTermHeight = 50  // Rows
	MinTermWidth  = 20
	MinTermHeight = 8
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// MaxUsernameLength caps usernames shown on screen and used as store keys.
const MaxUsernameLength = 16
