package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dinos/systems"
	"github.com/pthm-cable/dinos/telemetry"
)

// updateSteering moves every live actor one step toward its target, in slot order.
func (g *Game) updateSteering() {
	for slot := 0; slot < g.roster.Len(); slot++ {
		e, ok := g.roster.Entity(slot)
		if !ok {
			continue
		}

		dest, alive := g.resolveDestination(slot, e)
		if !alive {
			// Lost a contact triggered by re-targeting
			continue
		}

		pos, rot, fp, vis, _ := g.actorMapper.Get(e)
		systems.Steer(pos, rot, vis, dest, g.steer)
		g.area.Clamp(pos, *fp)
	}
}

// resolveDestination returns the point the actor pursues this tick. An invalid
// target is cycled at most once, and only while another actor is alive; otherwise
// the actor heads for the center of the play area. alive is false when the
// re-target produced a contact the actor lost.
func (g *Game) resolveDestination(slot int, e ecs.Entity) (dest mgl32.Vec2, alive bool) {
	actor := g.actorMap.Get(e)
	if !systems.ValidTarget(actor, g.roster.Occupied) && g.roster.LiveCount() > 1 {
		g.cycleTarget(slot, e)
		if !g.roster.Occupied(slot) {
			return mgl32.Vec2{}, false
		}
		// The contact may have moved storage
		actor = g.actorMap.Get(e)
	}

	if systems.ValidTarget(actor, g.roster.Occupied) {
		te, _ := g.roster.Entity(actor.TargetIndex)
		return systems.Vec(*g.posMap.Get(te)), true
	}

	g.collector.Record(telemetry.EventSteerFallback)
	return g.area.Center(), true
}
