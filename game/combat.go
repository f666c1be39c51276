package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dinos/systems"
	"github.com/pthm-cable/dinos/telemetry"
)

// updateCollisions resolves contacts in slot order. A loser is vacated at once, so
// later slots in the same tick no longer see it.
func (g *Game) updateCollisions() {
	for slot := 0; slot < g.roster.Len(); slot++ {
		g.checkContact(slot)
	}
}

// CycleTarget advances the slot's target, as a click does, and resolves combat at
// once if the new target already overlaps. Returns false for a vacant slot.
func (g *Game) CycleTarget(slot int) bool {
	if g.closed {
		return false
	}
	e, ok := g.roster.Entity(slot)
	if !ok {
		return false
	}
	g.cycleTarget(slot, e)
	return true
}

func (g *Game) cycleTarget(slot int, e ecs.Entity) {
	actor := g.actorMap.Get(e)
	systems.CycleTarget(actor, g.roster.Len())
	g.lifetimes.RecordRetarget(actor.ID)
	g.collector.Record(telemetry.EventRetarget)
	g.checkContact(slot)
}

// checkContact resolves combat when the slot's actor overlaps its own live target.
func (g *Game) checkContact(slot int) bool {
	e, ok := g.roster.Entity(slot)
	if !ok {
		return false
	}
	actor := g.actorMap.Get(e)
	if !systems.ValidTarget(actor, g.roster.Occupied) {
		return false
	}
	te, _ := g.roster.Entity(actor.TargetIndex)

	if !systems.Overlaps(*g.posMap.Get(e), *g.fpMap.Get(e), *g.posMap.Get(te), *g.fpMap.Get(te)) {
		return false
	}
	g.resolveContact(e, te)
	return true
}

// resolveContact picks a loser, scores the winner and eliminates the loser.
func (g *Game) resolveContact(attackerEntity, targetEntity ecs.Entity) {
	attacker := g.actorMap.Get(attackerEntity)
	target := g.actorMap.Get(targetEntity)

	mutual := systems.Mutual(attacker, target)
	winner, loser := systems.ResolveCombat(g.rng, attacker, target)
	g.lifetimes.RecordKill(winner.ID)
	life, _ := g.lifetimes.Remove(loser.ID)

	// Copy out before the loser's storage is released
	record := telemetry.CombatRecord{
		Tick:        g.tick,
		SimTimeSec:  g.sched.Now(),
		Winner:      winner.Name,
		WinnerID:    winner.ID.String(),
		WinnerScore: winner.Score,
		Loser:       loser.Name,
		LoserID:     loser.ID.String(),
		LoserScore:  loser.Score,
		Mutual:      mutual,

		LoserLifetime: float64(g.tick-life.BirthTick) * g.cfg.Physics.DT,
		LoserKills:    life.Kills,
	}
	loserSlot := loser.Slot

	g.metrics.SetScore(record.Winner, record.WinnerScore)
	record.RespawnDelay = g.eliminate(loserSlot)

	g.collector.RecordCombat(mutual)
	g.collector.RecordLifetime(record.LoserLifetime)
	g.metrics.ObserveCombat(mutual, record.Loser)
	if err := g.outputManager.WriteCombat(record); err != nil {
		slog.Error("failed to write combat", "error", err)
	}
	if g.logStats {
		slog.Info("combat", "combat", record)
	}
	for _, hook := range g.combatHooks {
		hook(record)
	}
}
