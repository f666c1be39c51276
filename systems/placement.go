package systems

import (
	"errors"
	"math/rand"

	"github.com/samber/oops"

	"github.com/pthm-cable/dinos/components"
	"github.com/pthm-cable/dinos/config"
)

// ErrPlacementExhausted means no position satisfies the spacing constraint.
// It indicates a configuration that is too dense for the play area.
var ErrPlacementExhausted = errors.New("no position satisfies minimum spacing")

// Placer samples spawn positions that keep every live actor more than MinSpacing apart.
type Placer struct {
	Area        PlayArea
	MinSpacing  float32
	MaxAttempts int
}

// Placement reports where an actor went and how.
type Placement struct {
	Pos      components.Position
	Attempts int  // rejection samples drawn
	Fallback bool // true when the grid scan produced the position
}

// Place draws uniform positions inside the area, inset by fp, until one is more than
// MinSpacing from every position in others. After MaxAttempts rejections it scans a
// grid whose pitch exceeds MinSpacing and returns the first admissible point.
func (p Placer) Place(rng *rand.Rand, fp components.Footprint, others []components.Position) (Placement, error) {
	minX, minY, maxX, maxY := p.Area.Inset(fp)

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		pos := components.Position{
			X: RandRange(rng, minX, maxX),
			Y: RandRange(rng, minY, maxY),
		}
		if p.Admissible(pos, others) {
			return Placement{Pos: pos, Attempts: attempt}, nil
		}
	}

	if pos, ok := p.gridScan(minX, minY, maxX, maxY, others); ok {
		return Placement{Pos: pos, Attempts: p.MaxAttempts, Fallback: true}, nil
	}

	return Placement{Attempts: p.MaxAttempts}, oops.Code("PLACEMENT_EXHAUSTED").
		With("min_spacing", p.MinSpacing).
		With("area_w", p.Area.W).
		With("area_h", p.Area.H).
		With("others", len(others)).
		Wrap(ErrPlacementExhausted)
}

// Admissible reports whether pos is more than MinSpacing from every other position.
func (p Placer) Admissible(pos components.Position, others []components.Position) bool {
	for _, o := range others {
		if Distance(pos, o) <= p.MinSpacing {
			return false
		}
	}
	return true
}

// Feasible checks that n actors of footprint fp fit at the configured spacing.
func (p Placer) Feasible(cfg *config.Config, fp components.Footprint) error {
	return cfg.ValidateLayout(float64(p.Area.W), float64(p.Area.H), float64(fp.W), float64(fp.H))
}

// gridScan walks grid points row by row from the top-left of the inset rectangle.
func (p Placer) gridScan(minX, minY, maxX, maxY float32, others []components.Position) (components.Position, bool) {
	step := float32(config.GridStep(float64(p.MinSpacing)))
	for y := minY; y <= maxY; y += step {
		for x := minX; x <= maxX; x += step {
			pos := components.Position{X: x, Y: y}
			if p.Admissible(pos, others) {
				return pos, true
			}
		}
	}
	return components.Position{}, false
}
