package systems

import (
	"math/rand"

	"github.com/pthm-cable/dinos/components"
)

// Mutual reports whether two actors are each other's current target.
func Mutual(a, b *components.Actor) bool {
	return a.TargetIndex == b.Slot && b.TargetIndex == a.Slot
}

// LoserCandidates returns the slots that may lose when attacker touches its target.
// The target is always a candidate; the attacker joins only under mutual targeting.
func LoserCandidates(attacker, target *components.Actor) []int {
	candidates := []int{target.Slot}
	if Mutual(attacker, target) {
		candidates = append(candidates, attacker.Slot)
	}
	return candidates
}

// ResolveCombat picks the loser uniformly from the candidates and awards the winner
// one point. The caller removes the loser.
func ResolveCombat(rng *rand.Rand, attacker, target *components.Actor) (winner, loser *components.Actor) {
	loserSlot := Choose(rng, LoserCandidates(attacker, target))
	if loserSlot == attacker.Slot {
		winner, loser = target, attacker
	} else {
		winner, loser = attacker, target
	}
	winner.Score++
	return winner, loser
}
