package components

// Anim names the clip the visual collaborator should play.
type Anim uint8

const (
	AnimIdle Anim = iota
	AnimWalk
	AnimCharge
)

// String returns the clip name used in the sprite configuration.
func (a Anim) String() string {
	switch a {
	case AnimWalk:
		return "walk"
	case AnimCharge:
		return "charge"
	default:
		return "idle"
	}
}

// Visual holds the presentation state the steering controller drives.
type Visual struct {
	Anim  Anim
	FlipX bool // mirrored to face left
}
