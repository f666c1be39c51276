package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/dinos/components"
)

// SteerParams holds the per-tick pursuit constants.
type SteerParams struct {
	StopEpsilon  float32 // at or below this distance the actor idles
	ChargeRadius float32 // below this distance the charge clip plays
	Step         float32 // distance covered this tick
}

// PursuitStep converts a speed factor into a per-tick step. Speed scales with the
// play-area diagonal so behavior is the same at any viewport size.
func PursuitStep(area PlayArea, speedFactor, dt float32) float32 {
	return area.Diagonal() * speedFactor * dt
}

// Steer points an actor at target and advances it by at most p.Step.
// Returns false, with orientation reset and the idle clip selected, when the actor is
// already within StopEpsilon of the target.
func Steer(pos *components.Position, rot *components.Orientation, vis *components.Visual, target mgl32.Vec2, p SteerParams) bool {
	delta := target.Sub(Vec(*pos))
	dist := delta.Len()
	if dist <= p.StopEpsilon {
		rot.Angle = 0
		vis.Anim = components.AnimIdle
		return false
	}

	vis.Anim = components.AnimWalk
	if dist < p.ChargeRadius {
		vis.Anim = components.AnimCharge
	}

	bearing := float32(math.Atan2(float64(delta.Y()), float64(delta.X())))
	vis.FlipX = delta.X() < 0
	rot.Angle = FacingAngle(bearing, vis.FlipX)

	// Never overshoot: landing exactly on the target lets the next tick idle.
	step := min(p.Step, dist)
	next := Vec(*pos).Add(delta.Mul(step / dist))
	pos.X, pos.Y = next.X(), next.Y()
	return true
}

// FacingAngle is the sprite rotation that points a right-facing sprite along bearing.
// A mirrored sprite already faces left, so its rotation is offset by Pi and stays upright.
func FacingAngle(bearing float32, mirrored bool) float32 {
	if mirrored {
		return normalizeAngle(bearing - math.Pi)
	}
	return bearing
}
