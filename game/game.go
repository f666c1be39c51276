package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"github.com/oklog/ulid/v2"

	"github.com/pthm-cable/dinos/components"
	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/systems"
	"github.com/pthm-cable/dinos/telemetry"
)

// MaxSpeed is the highest simulation speed multiplier.
const MaxSpeed = 10

// Options configures a new game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 uses config
	StepsPerUpdate int
	Output         *telemetry.OutputManager
	Metrics        *telemetry.Metrics
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	actorMapper *ecs.Map5[
		components.Position,
		components.Orientation,
		components.Footprint,
		components.Visual,
		components.Actor,
	]
	actorFilter *ecs.Filter5[
		components.Position,
		components.Orientation,
		components.Footprint,
		components.Visual,
		components.Actor,
	]

	posMap   *ecs.Map1[components.Position]
	rotMap   *ecs.Map1[components.Orientation]
	fpMap    *ecs.Map1[components.Footprint]
	visMap   *ecs.Map1[components.Visual]
	actorMap *ecs.Map1[components.Actor]

	roster     *Roster
	sched      *Scheduler
	footprints []components.Footprint // per slot, from the substrate

	area   systems.PlayArea
	placer systems.Placer
	steer  systems.SteerParams

	tooltips      map[int]tooltipState
	nextTooltipID uint64

	// State
	tick   int32
	paused bool
	speed  int // ticks per Update call
	closed bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	lifetimes     *telemetry.LifetimeTracker
	outputManager *telemetry.OutputManager
	metrics       *telemetry.Metrics
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	combatHooks   []func(telemetry.CombatRecord)
}

// ActorView is a read-only snapshot of one live actor for frontends.
type ActorView struct {
	Slot   int
	ID     ulid.ULID
	Name   string
	Score  int
	Target int
	X, Y   float32
	W, H   float32
	Angle  float32
	Anim   components.Anim
	FlipX  bool
}

// ScoreEntry is one roster line for scoreboards.
type ScoreEntry struct {
	Slot  int
	Name  string
	Score int
	Alive bool
}

// NewGame builds the world and places the initial roster. It fails when the
// substrate's viewport cannot hold the roster at the configured spacing.
func NewGame(cfg *config.Config, sub Substrate, opts Options) (*Game, error) {
	world := ecs.NewWorld()

	w, h := sub.Viewport()
	area := systems.PlayArea{W: w, H: h}

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	speed := opts.StepsPerUpdate
	if speed < 1 {
		speed = 1
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		actorMapper: ecs.NewMap5[
			components.Position,
			components.Orientation,
			components.Footprint,
			components.Visual,
			components.Actor,
		](world),
		actorFilter: ecs.NewFilter5[
			components.Position,
			components.Orientation,
			components.Footprint,
			components.Visual,
			components.Actor,
		](world),
		posMap:   ecs.NewMap1[components.Position](world),
		rotMap:   ecs.NewMap1[components.Orientation](world),
		fpMap:    ecs.NewMap1[components.Footprint](world),
		visMap:   ecs.NewMap1[components.Visual](world),
		actorMap: ecs.NewMap1[components.Actor](world),

		roster: NewRoster(cfg.Roster.Names),
		sched:  NewScheduler(),
		area:   area,
		placer: systems.Placer{
			Area:        area,
			MinSpacing:  float32(cfg.Placement.MinSpacing),
			MaxAttempts: cfg.Placement.MaxAttempts,
		},
		steer: systems.SteerParams{
			StopEpsilon:  float32(cfg.Steering.StopEpsilon),
			ChargeRadius: float32(cfg.Steering.ChargeRadius),
			Step:         systems.PursuitStep(area, float32(cfg.Steering.SpeedFactor), cfg.Derived.DT32),
		},
		tooltips: make(map[int]tooltipState),
		speed:    speed,

		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perfCollector: telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		lifetimes:     telemetry.NewLifetimeTracker(),
		outputManager: opts.Output,
		metrics:       opts.Metrics,
		logStats:      opts.LogStats,
	}

	// Check feasibility against the real viewport and the largest footprint
	var maxW, maxH float32
	g.footprints = make([]components.Footprint, g.roster.Len())
	for slot := range g.footprints {
		fw, fh := sub.Footprint(g.roster.Name(slot))
		g.footprints[slot] = components.Footprint{W: fw, H: fh}
		maxW, maxH = max(maxW, fw), max(maxH, fh)
	}
	if err := g.placer.Feasible(cfg, components.Footprint{W: maxW, H: maxH}); err != nil {
		return nil, fmt.Errorf("checking layout: %w", err)
	}

	if err := g.spawnInitialPopulation(); err != nil {
		return nil, err
	}

	slog.Info("scene started",
		"actors", g.roster.Len(),
		"play_w", w,
		"play_h", h,
		"step", g.steer.Step,
		"seed", opts.Seed,
	)

	return g, nil
}

// Update runs one or more simulation steps based on the speed setting.
func (g *Game) Update() {
	if g.closed || g.paused {
		return
	}
	for i := 0; i < g.speed; i++ {
		g.step()
	}
}

// step runs a single tick of the simulation.
func (g *Game) step() {
	g.perfCollector.StartTick()

	// 1. Fire due timers
	g.perfCollector.StartPhase(telemetry.PhaseScheduler)
	for _, ev := range g.sched.Advance(g.cfg.Physics.DT) {
		g.handleEvent(ev)
	}

	// 2. Targeting and pursuit
	g.perfCollector.StartPhase(telemetry.PhaseSteering)
	g.updateSteering()

	// 3. Contacts in slot order
	g.perfCollector.StartPhase(telemetry.PhaseCollisions)
	g.updateCollisions()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.metrics.ObserveTick(g.perfCollector.EndTick())
	g.tick++
}

func (g *Game) handleEvent(ev Event) {
	switch ev.Kind {
	case EventRespawn:
		g.handleRespawn(ev)
	case EventTooltipExpire:
		g.expireTooltip(ev)
	}
}

// Close tears the scene down. Pending timers are dropped and any that still fire
// are ignored.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.sched.Clear()
	clear(g.tooltips)
	slog.Info("scene closed", "tick", g.tick)
}

// Closed reports whether Close has been called.
func (g *Game) Closed() bool {
	return g.closed
}

// TogglePause pauses or resumes the simulation.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Speed returns the number of ticks run per Update.
func (g *Game) Speed() int {
	return g.speed
}

// SetSpeed sets the ticks per Update, clamped to [1, MaxSpeed].
func (g *Game) SetSpeed(n int) {
	g.speed = min(max(n, 1), MaxSpeed)
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns elapsed simulation seconds.
func (g *Game) SimTime() float64 {
	return g.sched.Now()
}

// Area returns the play area.
func (g *Game) Area() systems.PlayArea {
	return g.area
}

// Roster returns the identity slots.
func (g *Game) Roster() *Roster {
	return g.roster
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// OnCombat registers a function called after every resolved contact.
func (g *Game) OnCombat(fn func(telemetry.CombatRecord)) {
	g.combatHooks = append(g.combatHooks, fn)
}

// RecordFrame feeds frame timing from a rendering frontend.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Actors returns the live actors in slot order.
func (g *Game) Actors() []ActorView {
	views := make([]ActorView, 0, g.roster.Len())
	for slot := 0; slot < g.roster.Len(); slot++ {
		e, ok := g.roster.Entity(slot)
		if !ok {
			continue
		}
		pos, rot, fp, vis, actor := g.actorMapper.Get(e)
		views = append(views, ActorView{
			Slot:   slot,
			ID:     actor.ID,
			Name:   actor.Name,
			Score:  actor.Score,
			Target: actor.TargetIndex,
			X:      pos.X,
			Y:      pos.Y,
			W:      fp.W,
			H:      fp.H,
			Angle:  rot.Angle,
			Anim:   vis.Anim,
			FlipX:  vis.FlipX,
		})
	}
	return views
}

// Scoreboard returns every slot's score, including vacant slots awaiting respawn.
func (g *Game) Scoreboard() []ScoreEntry {
	entries := make([]ScoreEntry, g.roster.Len())
	for slot := range entries {
		entries[slot] = ScoreEntry{Slot: slot, Name: g.roster.Name(slot), Score: g.roster.VacantScore(slot)}
		if e, ok := g.roster.Entity(slot); ok {
			entries[slot].Score = g.actorMap.Get(e).Score
			entries[slot].Alive = true
		}
	}
	return entries
}
