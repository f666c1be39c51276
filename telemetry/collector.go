package telemetry

import "math"

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	combats            int
	mutualCombats      int
	respawns           int
	respawnsSkipped    int
	retargets          int
	steerFallbacks     int
	placementAttempts  int
	placementFallbacks int
	lifetimeSum        float64
	lifetimes          int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record counts a single event.
func (c *Collector) Record(t EventType) {
	switch t {
	case EventCombat:
		c.combats++
	case EventRespawn:
		c.respawns++
	case EventRespawnSkipped:
		c.respawnsSkipped++
	case EventRetarget:
		c.retargets++
	case EventSteerFallback:
		c.steerFallbacks++
	}
}

// RecordCombat records a resolved contact.
func (c *Collector) RecordCombat(mutual bool) {
	c.Record(EventCombat)
	if mutual {
		c.mutualCombats++
	}
}

// RecordPlacement records how many samples a respawn placement needed.
func (c *Collector) RecordPlacement(attempts int, fallback bool) {
	c.Record(EventRespawn)
	c.placementAttempts += attempts
	if fallback {
		c.placementFallbacks++
	}
}

// RecordLifetime records the length of a life that just ended, in seconds.
func (c *Collector) RecordLifetime(sec float64) {
	c.lifetimeSum += sec
	c.lifetimes++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// alive is the number of occupied slots; scores holds one entry per roster slot.
func (c *Collector) Flush(currentTick int32, alive int, scores []float64) WindowStats {
	var mutualRate, meanAttempts, meanLifetime float64
	if c.combats > 0 {
		mutualRate = float64(c.mutualCombats) / float64(c.combats)
	}
	if c.respawns > 0 {
		meanAttempts = float64(c.placementAttempts) / float64(c.respawns)
	}
	if c.lifetimes > 0 {
		meanLifetime = c.lifetimeSum / float64(c.lifetimes)
	}

	mean, std, p50, maxScore := ComputeScoreStats(scores)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Alive: alive,

		Combats:         c.combats,
		MutualCombats:   c.mutualCombats,
		MutualRate:      mutualRate,
		Respawns:        c.respawns,
		RespawnsSkipped: c.respawnsSkipped,
		Retargets:       c.retargets,
		SteerFallbacks:  c.steerFallbacks,

		MeanPlacementAttempts: meanAttempts,
		PlacementFallbacks:    c.placementFallbacks,
		MeanLifetime:          meanLifetime,

		ScoreMean: mean,
		ScoreStd:  std,
		ScoreP50:  p50,
		ScoreMax:  maxScore,
	}

	c.windowStartTick = currentTick
	c.combats = 0
	c.mutualCombats = 0
	c.respawns = 0
	c.respawnsSkipped = 0
	c.retargets = 0
	c.steerFallbacks = 0
	c.placementAttempts = 0
	c.placementFallbacks = 0
	c.lifetimeSum = 0
	c.lifetimes = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
