// Package components defines ECS components for the simulation.
package components

import "github.com/oklog/ulid/v2"

// Actor is the typed record for one roster occupant.
// ID changes on every respawn; Name, Slot and Score carry over to the reborn actor.
type Actor struct {
	ID          ulid.ULID
	Name        string
	Slot        int
	Score       int
	TargetIndex int
}
