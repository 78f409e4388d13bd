// Package audio renders the game's named sound events.
package audio

import (
	"io"
	"time"
)

// Sound is a named game event with an associated tone.
type Sound string

const (
	SoundScore Sound = "score" // Obstacle caught with the matching colour
	SoundPunch Sound = "punch" // Mismatch, the run is about to end
)

// Tone is a single sine beep.
type Tone struct {
	Freq     float64 // Hz
	Duration time.Duration
	Gain     float64 // Linear, 0..1
}

// Tones maps each sound to the beep that renders it.
var Tones = map[Sound]Tone{
	SoundScore: {Freq: 800, Duration: 100 * time.Millisecond, Gain: 0.1},
	SoundPunch: {Freq: 200, Duration: 200 * time.Millisecond, Gain: 0.2},
}

// Player renders sound events. Play must not block the frame.
type Player interface {
	Play(Sound)
}

// Silent discards every sound.
type Silent struct{}

func (Silent) Play(Sound) {}

// Bell rings the terminal bell on a punch. Used where no audio device is
// available, such as remote terminals.
type Bell struct {
	W io.Writer
}

func (b Bell) Play(s Sound) {
	if s == SoundPunch && b.W != nil {
		io.WriteString(b.W, "\a")
	}
}
