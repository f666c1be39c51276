// Package sprites tracks per-actor animation playback over sprite sheet clips.
package sprites

import (
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/pthm-cable/dinos/components"
	"github.com/pthm-cable/dinos/config"
)

// SheetPath returns the sprite sheet file for an identity.
func SheetPath(dir, name string) string {
	return filepath.Join(dir, strings.ToLower(name)+".png")
}

type playback struct {
	anim    components.Anim
	frame   int // absolute sheet frame
	elapsed float64
	seen    bool
}

// Animator advances one clip per actor id. Switching clips restarts at the clip's
// first frame; clips loop.
type Animator struct {
	clips  map[components.Anim]config.ClipConfig
	fps    float64
	states map[ulid.ULID]*playback
}

// NewAnimator builds an animator from the sprite configuration.
func NewAnimator(cfg *config.Config) *Animator {
	a := &Animator{
		clips:  make(map[components.Anim]config.ClipConfig, 3),
		fps:    cfg.Sprites.FPS,
		states: make(map[ulid.ULID]*playback),
	}
	for _, anim := range []components.Anim{components.AnimIdle, components.AnimWalk, components.AnimCharge} {
		a.clips[anim] = cfg.Derived.ClipByName[anim.String()]
	}
	return a
}

// Begin starts a frame. Actors not passed to Frame before End are forgotten.
func (a *Animator) Begin() {
	for _, s := range a.states {
		s.seen = false
	}
}

// Frame advances the actor's playback by dt seconds and returns the sheet frame to draw.
func (a *Animator) Frame(id ulid.ULID, anim components.Anim, dt float64) int {
	clip := a.clips[anim]
	s, ok := a.states[id]
	if !ok || s.anim != anim {
		s = &playback{anim: anim, frame: clip.From}
		a.states[id] = s
	}
	s.seen = true

	if a.fps <= 0 {
		return s.frame
	}
	s.elapsed += dt
	step := 1 / a.fps
	for s.elapsed >= step {
		s.elapsed -= step
		s.frame++
		if s.frame > clip.To {
			s.frame = clip.From
		}
	}
	return s.frame
}

// End drops playback state for actors that were not drawn this frame.
func (a *Animator) End() {
	for id, s := range a.states {
		if !s.seen {
			delete(a.states, id)
		}
	}
}

// Len returns the number of tracked actors.
func (a *Animator) Len() int {
	return len(a.states)
}
