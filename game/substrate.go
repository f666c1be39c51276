package game

import "github.com/pthm-cable/dinos/config"

// Substrate is the engine the simulation runs inside. It reports the visible play
// area and the rendered footprint of each identity.
type Substrate interface {
	Viewport() (w, h float32)
	Footprint(name string) (w, h float32)
}

// Headless is a Substrate with a fixed viewport and a uniform footprint.
type Headless struct {
	Width, Height          float32
	FootprintW, FootprintH float32
}

// NewHeadless sizes a headless substrate from the screen and sprite configuration.
func NewHeadless(cfg *config.Config) Headless {
	return Headless{
		Width:      cfg.Derived.PlayWidth,
		Height:     cfg.Derived.PlayHeight,
		FootprintW: cfg.Derived.FootprintW,
		FootprintH: cfg.Derived.FootprintH,
	}
}

func (h Headless) Viewport() (float32, float32) { return h.Width, h.Height }

func (h Headless) Footprint(string) (float32, float32) { return h.FootprintW, h.FootprintH }
