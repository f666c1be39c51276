package game

import "github.com/oklog/ulid/v2"

// tooltipBarRatio is the tooltip height as a fraction of the actor's footprint height.
const tooltipBarRatio = 5

// Tooltip is a label drawn above a hovered actor. X and Y are the top-left corner
// of the background bar, recomputed from the actor's current position.
type Tooltip struct {
	Slot int
	Text string
	X, Y float32
	W, H float32
}

type tooltipState struct {
	id      uint64
	actorID ulid.ULID
}

// Hover shows the slot's tooltip for the configured duration. A hover while the
// tooltip is still showing is ignored. Returns whether a tooltip was opened.
func (g *Game) Hover(slot int) bool {
	if g.closed {
		return false
	}
	e, ok := g.roster.Entity(slot)
	if !ok {
		return false
	}
	if _, active := g.tooltips[slot]; active {
		return false
	}

	g.nextTooltipID++
	id := g.actorMap.Get(e).ID
	g.tooltips[slot] = tooltipState{id: g.nextTooltipID, actorID: id}
	g.sched.After(g.cfg.Tooltip.Duration, Event{
		Kind:      EventTooltipExpire,
		Slot:      slot,
		ActorID:   id,
		TooltipID: g.nextTooltipID,
	})
	return true
}

// Tooltips returns the visible tooltips in slot order.
func (g *Game) Tooltips() []Tooltip {
	var out []Tooltip
	for slot := 0; slot < g.roster.Len(); slot++ {
		state, ok := g.tooltips[slot]
		if !ok {
			continue
		}
		e, ok := g.roster.Entity(slot)
		if !ok || g.roster.LastID(slot) != state.actorID {
			continue
		}
		pos, fp := g.posMap.Get(e), g.fpMap.Get(e)
		h := fp.H / tooltipBarRatio
		out = append(out, Tooltip{
			Slot: slot,
			Text: g.roster.Name(slot),
			X:    pos.X - fp.W/2,
			Y:    pos.Y - fp.H/2 - h,
			W:    fp.W,
			H:    h,
		})
	}
	return out
}

func (g *Game) expireTooltip(ev Event) {
	if state, ok := g.tooltips[ev.Slot]; ok && state.id == ev.TooltipID {
		delete(g.tooltips, ev.Slot)
	}
}

func (g *Game) clearTooltip(slot int) {
	delete(g.tooltips, slot)
}
