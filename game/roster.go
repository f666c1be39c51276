package game

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/oklog/ulid/v2"
)

// Roster is the fixed set of identity slots. A slot is either occupied by one live
// entity or vacant while its respawn is pending.
type Roster struct {
	slots []rosterSlot
}

type rosterSlot struct {
	name     string
	entity   ecs.Entity
	occupied bool
	lastID   ulid.ULID // most recent occupant, alive or not
	score    int       // score at the last vacancy
}

// NewRoster creates an empty roster with one slot per name.
func NewRoster(names []string) *Roster {
	r := &Roster{slots: make([]rosterSlot, len(names))}
	for i, name := range names {
		r.slots[i].name = name
	}
	return r
}

// Len returns the number of slots.
func (r *Roster) Len() int {
	return len(r.slots)
}

// Name returns the identity bound to a slot.
func (r *Roster) Name(slot int) string {
	return r.slots[slot].name
}

// Occupied reports whether the slot holds a live actor. Out-of-range slots are vacant.
func (r *Roster) Occupied(slot int) bool {
	return slot >= 0 && slot < len(r.slots) && r.slots[slot].occupied
}

// Entity returns the slot's live entity.
func (r *Roster) Entity(slot int) (ecs.Entity, bool) {
	if !r.Occupied(slot) {
		return ecs.Entity{}, false
	}
	return r.slots[slot].entity, true
}

// LastID returns the id of the slot's most recent occupant.
func (r *Roster) LastID(slot int) ulid.ULID {
	return r.slots[slot].lastID
}

// VacantScore returns the score recorded when the slot was last vacated.
func (r *Roster) VacantScore(slot int) int {
	return r.slots[slot].score
}

// LiveCount returns the number of occupied slots.
func (r *Roster) LiveCount() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].occupied {
			n++
		}
	}
	return n
}

func (r *Roster) occupy(slot int, e ecs.Entity, id ulid.ULID) {
	s := &r.slots[slot]
	s.entity = e
	s.occupied = true
	s.lastID = id
}

func (r *Roster) vacate(slot int, score int) {
	s := &r.slots[slot]
	s.entity = ecs.Entity{}
	s.occupied = false
	s.score = score
}
