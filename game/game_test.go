package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/dinos/components"
	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/systems"
	"github.com/pthm-cable/dinos/telemetry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	cfg := config.Default()
	g, err := NewGame(cfg, NewHeadless(cfg), Options{Seed: seed})
	require.NoError(t, err)
	return g
}

func actorOf(t *testing.T, g *Game, slot int) *components.Actor {
	t.Helper()
	e, ok := g.roster.Entity(slot)
	require.True(t, ok, "slot %d vacant", slot)
	return g.actorMap.Get(e)
}

func positionOf(t *testing.T, g *Game, slot int) *components.Position {
	t.Helper()
	e, ok := g.roster.Entity(slot)
	require.True(t, ok, "slot %d vacant", slot)
	return g.posMap.Get(e)
}

// stack moves slot onto another slot's position.
func stack(t *testing.T, g *Game, slot, onto int) {
	t.Helper()
	*positionOf(t, g, slot) = *positionOf(t, g, onto)
}

// fire advances the scheduler without moving anyone.
func fire(g *Game, seconds float64) {
	for _, ev := range g.sched.Advance(seconds) {
		g.handleEvent(ev)
	}
}

func assertSpaced(t *testing.T, g *Game) {
	t.Helper()
	positions := g.livePositions()
	for i := range positions {
		for j := i + 1; j < len(positions); j++ {
			assert.Greater(t, systems.Distance(positions[i], positions[j]), float32(g.cfg.Placement.MinSpacing))
		}
	}
}

func TestNewGamePlacesRoster(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGame(t, seed)

		require.Equal(t, 4, g.roster.LiveCount())
		assertSpaced(t, g)

		seen := map[string]bool{}
		for _, v := range g.Actors() {
			assert.False(t, seen[v.Name], "duplicate identity %s", v.Name)
			seen[v.Name] = true
			assert.Equal(t, (v.Slot+1)%4, v.Target)
			assert.Equal(t, 0, v.Score)
			assert.GreaterOrEqual(t, v.X, v.W/2)
			assert.LessOrEqual(t, v.X, g.area.W-v.W/2)
			assert.GreaterOrEqual(t, v.Y, v.H/2)
			assert.LessOrEqual(t, v.Y, g.area.H-v.H/2)
		}
	}
}

func TestNewGameRejectsCrowdedViewport(t *testing.T) {
	cfg := config.Default()
	_, err := NewGame(cfg, Headless{Width: 200, Height: 200, FootprintW: 96, FootprintH: 96}, Options{Seed: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestMutualContactEliminatesOne(t *testing.T) {
	losers := map[int]int{}
	for seed := int64(1); seed <= 40; seed++ {
		g := newTestGame(t, seed)
		actorOf(t, g, 1).TargetIndex = 0
		stack(t, g, 1, 0)

		g.updateCollisions()

		require.Equal(t, 3, g.roster.LiveCount())
		loser := 0
		if g.roster.Occupied(0) {
			loser = 1
		}
		winner := 1 - loser
		losers[loser]++

		assert.Equal(t, 1, actorOf(t, g, winner).Score)
		assert.Equal(t, 0, g.roster.VacantScore(loser))

		// Exactly one respawn pending, due within the respawn range
		require.Equal(t, 1, g.sched.Len())
		at, _ := g.sched.Next()
		assert.GreaterOrEqual(t, at, g.cfg.Combat.RespawnMin)
		assert.Less(t, at, g.cfg.Combat.RespawnMax)
	}
	assert.NotZero(t, losers[0], "attacker never lost")
	assert.NotZero(t, losers[1], "target never lost")
}

func TestOneSidedContactTargetLoses(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGame(t, seed)
		// Slot 0 targets 1; slot 1 targets 2
		stack(t, g, 1, 0)

		g.updateCollisions()

		assert.True(t, g.roster.Occupied(0))
		assert.False(t, g.roster.Occupied(1))
		assert.Equal(t, 1, actorOf(t, g, 0).Score)
	}
}

func TestRespawnRestoresIdentityAndScore(t *testing.T) {
	g := newTestGame(t, 7)
	actorOf(t, g, 1).Score = 7
	deadID := actorOf(t, g, 1).ID
	stack(t, g, 1, 0)

	var records []telemetry.CombatRecord
	g.OnCombat(func(r telemetry.CombatRecord) { records = append(records, r) })

	g.updateCollisions()
	require.False(t, g.roster.Occupied(1))
	require.Len(t, records, 1)
	assert.Equal(t, "Mort", records[0].Loser)
	assert.GreaterOrEqual(t, records[0].RespawnDelay, 1.0)
	assert.Less(t, records[0].RespawnDelay, 3.0)

	fire(g, g.cfg.Combat.RespawnMax)

	require.Equal(t, 4, g.roster.LiveCount())
	reborn := actorOf(t, g, 1)
	assert.Equal(t, "Mort", reborn.Name)
	assert.Equal(t, 7, reborn.Score)
	assert.NotEqual(t, deadID, reborn.ID)
	assert.GreaterOrEqual(t, reborn.TargetIndex, 0)
	assert.Less(t, reborn.TargetIndex, 4)
	assertSpaced(t, g)

	names := map[string]bool{}
	for _, v := range g.Actors() {
		names[v.Name] = true
	}
	assert.Len(t, names, 4)
}

func TestRespawnAfterCloseIsIgnored(t *testing.T) {
	g := newTestGame(t, 3)
	stack(t, g, 1, 0)
	g.updateCollisions()
	require.False(t, g.roster.Occupied(1))

	ev := Event{Kind: EventRespawn, Slot: 1, ActorID: g.roster.LastID(1)}
	g.Close()
	assert.Zero(t, g.sched.Len())

	g.handleRespawn(ev)
	assert.False(t, g.roster.Occupied(1))

	tick := g.Tick()
	g.Update()
	assert.Equal(t, tick, g.Tick())
}

func TestDuplicateRespawnIsIgnored(t *testing.T) {
	g := newTestGame(t, 3)
	stack(t, g, 1, 0)
	g.updateCollisions()

	ev := Event{Kind: EventRespawn, Slot: 1, ActorID: g.roster.LastID(1)}
	g.handleRespawn(ev)
	require.True(t, g.roster.Occupied(1))
	first, _ := g.roster.Entity(1)

	g.handleRespawn(ev)
	second, _ := g.roster.Entity(1)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, g.roster.LiveCount())
}

func TestLoserIsInvisibleLaterInTick(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := newTestGame(t, seed)
		actorOf(t, g, 1).TargetIndex = 0
		actorOf(t, g, 2).TargetIndex = 1
		stack(t, g, 1, 0)
		stack(t, g, 2, 0)

		g.updateCollisions()

		vacant := g.roster.Len() - g.roster.LiveCount()
		assert.GreaterOrEqual(t, vacant, 1)
		// One respawn per vacancy: nobody was eliminated twice
		assert.Equal(t, vacant, g.sched.Len())
	}
}

func TestCycleTargetFullLoop(t *testing.T) {
	g := newTestGame(t, 5)
	for slot := 0; slot < 4; slot++ {
		start := actorOf(t, g, slot).TargetIndex
		for i := 0; i < 4; i++ {
			require.True(t, g.CycleTarget(slot))
		}
		assert.Equal(t, start, actorOf(t, g, slot).TargetIndex)
	}
	assert.Equal(t, 4, g.roster.LiveCount())
}

func TestCycleTargetResolvesOverlap(t *testing.T) {
	g := newTestGame(t, 5)
	stack(t, g, 2, 0)

	// 0 -> 2, which sits on top of it and targets 3
	require.True(t, g.CycleTarget(0))

	assert.False(t, g.roster.Occupied(2))
	assert.Equal(t, 1, actorOf(t, g, 0).Score)
	assert.False(t, g.CycleTarget(2), "vacant slot cannot cycle")
}

func TestSteeringCyclesInvalidTarget(t *testing.T) {
	g := newTestGame(t, 11)
	g.eliminate(1)
	actorOf(t, g, 3).TargetIndex = 3

	g.updateSteering()

	assert.Equal(t, 2, actorOf(t, g, 0).TargetIndex, "vacant target skipped")
	assert.Equal(t, 0, actorOf(t, g, 3).TargetIndex, "self target skipped")
}

func TestSteeringFallsBackToCenter(t *testing.T) {
	g := newTestGame(t, 11)
	g.eliminate(1)
	g.eliminate(2)
	g.eliminate(3)

	pos := positionOf(t, g, 0)
	pos.X, pos.Y = 100, 100
	center := g.area.Center()
	before := systems.Vec(*pos).Sub(center).Len()

	g.updateSteering()

	after := systems.Vec(*positionOf(t, g, 0)).Sub(center).Len()
	assert.InDelta(t, before-g.steer.Step, after, 0.01)
	assert.Equal(t, 1, actorOf(t, g, 0).TargetIndex, "no re-target without other live actors")
}

func TestSteeringIdlesOnTarget(t *testing.T) {
	g := newTestGame(t, 2)
	stack(t, g, 0, 1)
	e, _ := g.roster.Entity(0)
	g.rotMap.Get(e).Angle = 1
	before := *positionOf(t, g, 0)

	g.updateSteering()

	assert.Equal(t, before, *positionOf(t, g, 0))
	assert.Zero(t, g.rotMap.Get(e).Angle)
	assert.Equal(t, components.AnimIdle, g.visMap.Get(e).Anim)
}

func TestTooltipLifecycle(t *testing.T) {
	g := newTestGame(t, 4)

	require.True(t, g.Hover(0))
	assert.False(t, g.Hover(0), "hover ignored while showing")

	tips := g.Tooltips()
	require.Len(t, tips, 1)
	assert.Equal(t, "Doux", tips[0].Text)
	assert.InDelta(t, 96, tips[0].W, 1e-4)
	assert.InDelta(t, 19.2, tips[0].H, 1e-4)

	// Follows the actor
	pos := positionOf(t, g, 0)
	pos.X += 10
	assert.InDelta(t, pos.X-48, g.Tooltips()[0].X, 1e-4)

	fire(g, 0.2)
	assert.Len(t, g.Tooltips(), 1)
	fire(g, 0.1)
	assert.Empty(t, g.Tooltips())
	assert.True(t, g.Hover(0))
}

func TestTooltipClearedOnElimination(t *testing.T) {
	g := newTestGame(t, 4)
	require.True(t, g.Hover(1))

	g.eliminate(1)
	assert.Empty(t, g.Tooltips())

	// The orphaned expiry is harmless
	fire(g, 0.5)
	assert.Empty(t, g.Tooltips())
}

func TestActorAt(t *testing.T) {
	g := newTestGame(t, 9)
	pos := positionOf(t, g, 2)

	slot, ok := g.ActorAt(pos.X+10, pos.Y-10)
	require.True(t, ok)
	assert.Equal(t, 2, slot)

	_, ok = g.ActorAt(-10, -10)
	assert.False(t, ok)

	g.HoverAt(pos.X, pos.Y)
	require.Len(t, g.Tooltips(), 1)
	assert.Equal(t, 2, g.Tooltips()[0].Slot)
}

func TestUpdateSpeedAndPause(t *testing.T) {
	g := newTestGame(t, 1)

	g.SetSpeed(3)
	g.Update()
	assert.Equal(t, int32(3), g.Tick())

	g.TogglePause()
	g.Update()
	assert.Equal(t, int32(3), g.Tick())
	g.TogglePause()

	g.SetSpeed(50)
	assert.Equal(t, MaxSpeed, g.Speed())
	g.SetSpeed(0)
	assert.Equal(t, 1, g.Speed())
}

func TestLongRunConservesScore(t *testing.T) {
	cfg := config.Default()
	g, err := NewGame(cfg, NewHeadless(cfg), Options{Seed: 99, StatsWindowSec: 5})
	require.NoError(t, err)

	combats := 0
	g.OnCombat(func(telemetry.CombatRecord) { combats++ })
	windows := 0
	g.SetStatsCallback(func(telemetry.WindowStats) { windows++ })

	for i := 0; i < 3600; i++ {
		g.Update()

		// Every vacancy has exactly one pending respawn
		vacant := g.roster.Len() - g.roster.LiveCount()
		require.Equal(t, vacant, g.sched.Len(), "tick %d", g.Tick())
	}

	total := 0
	for _, entry := range g.Scoreboard() {
		total += entry.Score
	}
	assert.Equal(t, combats, total)
	assert.Positive(t, combats)
	assert.GreaterOrEqual(t, windows, 11)
}

func TestCombatRecordCarriesLoserLife(t *testing.T) {
	g := newTestGame(t, 5)
	var records []telemetry.CombatRecord
	g.OnCombat(func(r telemetry.CombatRecord) { records = append(records, r) })

	// Slot 0 beats slot 1, then slot 2 beats slot 0 two seconds later
	stack(t, g, 1, 0)
	g.updateCollisions()
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].LoserKills)

	g.tick += 120
	actorOf(t, g, 2).TargetIndex = 0
	stack(t, g, 2, 0)
	g.checkContact(2)

	require.Len(t, records, 2)
	assert.Equal(t, "Doux", records[1].Loser)
	assert.Equal(t, 1, records[1].LoserKills)
	assert.InDelta(t, 2.0, records[1].LoserLifetime, 1e-3)
	assert.Equal(t, g.roster.LiveCount(), g.lifetimes.Count())
}
