package telemetry

import "github.com/oklog/ulid/v2"

// LifetimeStats tracks one actor's life, from spawn to elimination.
type LifetimeStats struct {
	BirthTick int32
	Kills     int
	Retargets int
}

// LifetimeTracker manages per-life statistics keyed by actor id.
// A respawn gets a new id and starts a new life.
type LifetimeTracker struct {
	stats map[ulid.ULID]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[ulid.ULID]*LifetimeStats),
	}
}

// Register starts a life.
func (lt *LifetimeTracker) Register(id ulid.ULID, birthTick int32) {
	lt.stats[id] = &LifetimeStats{BirthTick: birthTick}
}

// Get returns the stats for a live actor, or nil if not found.
func (lt *LifetimeTracker) Get(id ulid.ULID) *LifetimeStats {
	return lt.stats[id]
}

// RecordKill credits a win.
func (lt *LifetimeTracker) RecordKill(id ulid.ULID) {
	if s := lt.stats[id]; s != nil {
		s.Kills++
	}
}

// RecordRetarget counts a target change.
func (lt *LifetimeTracker) RecordRetarget(id ulid.ULID) {
	if s := lt.stats[id]; s != nil {
		s.Retargets++
	}
}

// Remove ends a life and returns its final stats.
func (lt *LifetimeTracker) Remove(id ulid.ULID) (LifetimeStats, bool) {
	s, ok := lt.stats[id]
	if !ok {
		return LifetimeStats{}, false
	}
	delete(lt.stats, id)
	return *s, true
}

// Count returns the number of tracked lives.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
