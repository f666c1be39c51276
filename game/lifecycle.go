package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"github.com/oklog/ulid/v2"

	"github.com/pthm-cable/dinos/components"
	"github.com/pthm-cable/dinos/systems"
	"github.com/pthm-cable/dinos/telemetry"
)

// spawnInitialPopulation places one actor per slot, each clear of those placed
// before it. Actor i starts out targeting slot (i+1) mod N.
func (g *Game) spawnInitialPopulation() error {
	n := g.roster.Len()
	placed := make([]components.Position, 0, n)

	for slot := 0; slot < n; slot++ {
		p, err := g.placer.Place(g.rng, g.footprints[slot], placed)
		if err != nil {
			return fmt.Errorf("placing %s: %w", g.roster.Name(slot), err)
		}
		g.spawnActor(slot, p.Pos, 0, (slot+1)%n)
		placed = append(placed, p.Pos)
	}
	return nil
}

// spawnActor creates a new occupant for a slot with a fresh id.
func (g *Game) spawnActor(slot int, pos components.Position, score, target int) ecs.Entity {
	rot := components.Orientation{}
	fp := g.footprints[slot]
	vis := components.Visual{Anim: components.AnimIdle}
	actor := components.Actor{
		ID:          ulid.Make(),
		Name:        g.roster.Name(slot),
		Slot:        slot,
		Score:       score,
		TargetIndex: target,
	}

	entity := g.actorMapper.NewEntity(&pos, &rot, &fp, &vis, &actor)
	g.roster.occupy(slot, entity, actor.ID)
	g.lifetimes.Register(actor.ID, g.tick)

	g.metrics.SetAlive(g.roster.LiveCount())
	g.metrics.SetScore(actor.Name, score)
	return entity
}

// eliminate removes a slot's occupant immediately and schedules its replacement.
// Returns the chosen respawn delay.
func (g *Game) eliminate(slot int) float64 {
	e, ok := g.roster.Entity(slot)
	if !ok {
		return 0
	}
	actor := *g.actorMap.Get(e)

	g.clearTooltip(slot)
	g.world.RemoveEntity(e)
	g.roster.vacate(slot, actor.Score)
	g.metrics.SetAlive(g.roster.LiveCount())

	delay := g.respawnDelay()
	g.sched.After(delay, Event{
		Kind:    EventRespawn,
		Slot:    slot,
		ActorID: actor.ID,
		Score:   actor.Score,
	})

	slog.Info("actor_eliminated",
		"tick", g.tick,
		"name", actor.Name,
		"id", actor.ID.String(),
		"score", actor.Score,
		"respawn_in", delay,
	)
	return delay
}

func (g *Game) respawnDelay() float64 {
	return systems.RandRange64(g.rng, g.cfg.Combat.RespawnMin, g.cfg.Combat.RespawnMax)
}

// handleRespawn places a reborn actor with the dead actor's identity and score.
// A respawn for a closed scene or for a slot already taken by someone newer is ignored.
func (g *Game) handleRespawn(ev Event) {
	if g.closed || g.roster.Occupied(ev.Slot) || g.roster.LastID(ev.Slot) != ev.ActorID {
		g.collector.Record(telemetry.EventRespawnSkipped)
		g.metrics.ObserveRespawn(telemetry.RespawnSkipped)
		slog.Debug("respawn_skipped", "slot", ev.Slot, "id", ev.ActorID.String(), "closed", g.closed)
		return
	}

	p, err := g.placer.Place(g.rng, g.footprints[ev.Slot], g.livePositions())
	if err != nil {
		g.metrics.ObserveRespawn(telemetry.RespawnFailed)
		retry := g.respawnDelay()
		g.sched.After(retry, ev)
		slog.Error("respawn placement failed", "slot", ev.Slot, "retry_in", retry, "error", err)
		return
	}

	target := systems.RandomTarget(g.rng, g.roster.Len())
	e := g.spawnActor(ev.Slot, p.Pos, ev.Score, target)

	g.collector.RecordPlacement(p.Attempts, p.Fallback)
	outcome := telemetry.RespawnPlaced
	if p.Fallback {
		outcome = telemetry.RespawnFallback
	}
	g.metrics.ObserveRespawn(outcome)

	slog.Info("actor_respawned",
		"tick", g.tick,
		"name", g.roster.Name(ev.Slot),
		"id", g.actorMap.Get(e).ID.String(),
		"previous_id", ev.ActorID.String(),
		"score", ev.Score,
		"target", target,
		"attempts", p.Attempts,
		"fallback", p.Fallback,
	)
}

// livePositions collects the positions of every live actor.
func (g *Game) livePositions() []components.Position {
	positions := make([]components.Position, 0, g.roster.Len())
	query := g.actorFilter.Query()
	for query.Next() {
		pos, _, _, _, _ := query.Get()
		positions = append(positions, *pos)
	}
	return positions
}
