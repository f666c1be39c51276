package components

// Position is the center of an actor's footprint in play-area coordinates.
type Position struct {
	X, Y float32
}

// Orientation is the sprite rotation derived from movement each tick.
// Zero is the neutral, upright pose.
type Orientation struct {
	Angle float32 // radians
}

// Footprint is the rendered size of an actor, centered on its Position.
type Footprint struct {
	W, H float32
}
