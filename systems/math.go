// Package systems holds the pure simulation rules: placement, targeting, steering and combat.
package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/dinos/components"
)

// PlayArea is the visible region actors live in, with the origin at the top-left.
type PlayArea struct {
	W, H float32
}

// Center returns the geometric center of the area.
func (a PlayArea) Center() mgl32.Vec2 {
	return mgl32.Vec2{a.W / 2, a.H / 2}
}

// Diagonal returns the length of the area's diagonal.
func (a PlayArea) Diagonal() float32 {
	return float32(math.Hypot(float64(a.W), float64(a.H)))
}

// Inset returns the rectangle a footprint's center may occupy while the footprint
// stays fully inside the area. A footprint larger than the area collapses to the center.
func (a PlayArea) Inset(fp components.Footprint) (minX, minY, maxX, maxY float32) {
	minX, maxX = fp.W/2, a.W-fp.W/2
	if minX > maxX {
		minX, maxX = a.W/2, a.W/2
	}
	minY, maxY = fp.H/2, a.H-fp.H/2
	if minY > maxY {
		minY, maxY = a.H/2, a.H/2
	}
	return minX, minY, maxX, maxY
}

// Clamp keeps a footprint inside the area.
func (a PlayArea) Clamp(pos *components.Position, fp components.Footprint) {
	minX, minY, maxX, maxY := a.Inset(fp)
	pos.X = clampFloat(pos.X, minX, maxX)
	pos.Y = clampFloat(pos.Y, minY, maxY)
}

// Vec converts a position to a vector.
func Vec(p components.Position) mgl32.Vec2 {
	return mgl32.Vec2{p.X, p.Y}
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b components.Position) float32 {
	return Vec(b).Sub(Vec(a)).Len()
}

// Overlaps reports whether two center-anchored footprints intersect.
// Touching edges do not count as contact.
func Overlaps(aPos components.Position, aFp components.Footprint, bPos components.Position, bFp components.Footprint) bool {
	dx := float32(math.Abs(float64(aPos.X - bPos.X)))
	dy := float32(math.Abs(float64(aPos.Y - bPos.Y)))
	return dx < (aFp.W+bFp.W)/2 && dy < (aFp.H+bFp.H)/2
}

// Contains reports whether a point lies inside a center-anchored footprint.
func Contains(pos components.Position, fp components.Footprint, x, y float32) bool {
	return x >= pos.X-fp.W/2 && x <= pos.X+fp.W/2 &&
		y >= pos.Y-fp.H/2 && y <= pos.Y+fp.H/2
}

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeAngle wraps an angle to [-Pi, Pi].
func normalizeAngle(angle float32) float32 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
