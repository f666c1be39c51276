// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Chirp plays a short sine tone per elimination. A nil or uninitialized Chirp is silent.
type Chirp struct {
	enabled bool
}

// NewChirp opens the speaker. On failure it returns a silent Chirp and the error;
// callers can keep running without sound.
func NewChirp() (*Chirp, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Chirp{}, err
	}
	return &Chirp{enabled: true}, nil
}

// Play sounds one elimination. Mutual fights use a lower pitch.
func (c *Chirp) Play(mutual bool) {
	if c == nil || !c.enabled {
		return
	}

	freq := 880.0
	if mutual {
		freq = 660.0
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(50*time.Millisecond), sine))
}

// Close releases the speaker.
func (c *Chirp) Close() {
	if c == nil || !c.enabled {
		return
	}
	speaker.Close()
	c.enabled = false
}
