package game

import "github.com/pthm-cable/dinos/systems"

// ActorAt returns the slot whose footprint contains the point. Later slots are drawn
// on top, so they win ties.
func (g *Game) ActorAt(x, y float32) (int, bool) {
	for slot := g.roster.Len() - 1; slot >= 0; slot-- {
		e, ok := g.roster.Entity(slot)
		if !ok {
			continue
		}
		if systems.Contains(*g.posMap.Get(e), *g.fpMap.Get(e), x, y) {
			return slot, true
		}
	}
	return 0, false
}

// HoverAt opens the tooltip of the actor under the cursor, if any.
func (g *Game) HoverAt(x, y float32) {
	if slot, ok := g.ActorAt(x, y); ok {
		g.Hover(slot)
	}
}

// ClickAt cycles the target of the actor under the cursor, if any.
func (g *Game) ClickAt(x, y float32) {
	if slot, ok := g.ActorAt(x, y); ok {
		g.CycleTarget(slot)
	}
}
