package systems

import (
	"math/rand"

	"github.com/pthm-cable/dinos/components"
)

// CycleTarget advances the actor's target to the next roster slot, wrapping at n.
func CycleTarget(a *components.Actor, n int) {
	a.TargetIndex = (a.TargetIndex + 1) % n
}

// RandomTarget returns a uniformly random roster slot.
func RandomTarget(rng *rand.Rand, n int) int {
	return rng.Intn(n)
}

// ValidTarget reports whether the actor's target is another, currently occupied slot.
func ValidTarget(a *components.Actor, occupied func(slot int) bool) bool {
	return a.TargetIndex != a.Slot && occupied(a.TargetIndex)
}
