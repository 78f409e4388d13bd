package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays tones on the local audio device through beep.
type Speaker struct {
	mu     sync.Mutex
	volume float64 // Master volume multiplied into every tone's gain
	closed bool
}

// NewSpeaker initialises the audio device. Only one Speaker may exist per process.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Speaker{volume: volume}, nil
}

// Play starts the tone for s without waiting for it to finish.
// Unknown sounds are ignored.
func (sp *Speaker) Play(s Sound) {
	tone, ok := Tones[s]
	if !ok {
		return
	}

	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.closed {
		return
	}

	streamer, err := Stream(tone, sampleRate, sp.volume)
	if err != nil {
		return
	}
	speaker.Play(streamer)
}

// Close stops all playing sounds. Further Play calls are ignored.
func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if sp.closed {
		return
	}
	sp.closed = true
	speaker.Clear()
}

// Stream builds a finite streamer for tone at the given rate, scaled by volume.
func Stream(tone Tone, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, tone.Freq)
	if err != nil {
		return nil, fmt.Errorf("sine %.0f Hz: %w", tone.Freq, err)
	}
	return newVolume(beep.Take(rate.N(tone.Duration), sine), tone.Gain*volume), nil
}

// newVolume wraps s in a volume effect. log2(0) is -Inf, so zero volume is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
