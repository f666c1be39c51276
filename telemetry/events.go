// Package telemetry provides combat tracking, window statistics and metrics export.
package telemetry

import "log/slog"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventCombat EventType = iota
	EventRespawn
	EventRespawnSkipped
	EventRetarget
	EventSteerFallback
)

func (t EventType) String() string {
	switch t {
	case EventCombat:
		return "combat"
	case EventRespawn:
		return "respawn"
	case EventRespawnSkipped:
		return "respawn_skipped"
	case EventRetarget:
		return "retarget"
	case EventSteerFallback:
		return "steer_fallback"
	default:
		return "unknown"
	}
}

// CombatRecord describes one resolved contact. One row per record in combat.csv.
type CombatRecord struct {
	Tick         int32   `csv:"tick"`
	SimTimeSec   float64 `csv:"sim_time"`
	Winner       string  `csv:"winner"`
	WinnerID     string  `csv:"winner_id"`
	WinnerScore  int     `csv:"winner_score"`
	Loser        string  `csv:"loser"`
	LoserID      string  `csv:"loser_id"`
	LoserScore   int     `csv:"loser_score"`
	Mutual       bool    `csv:"mutual"`
	RespawnDelay float64 `csv:"respawn_delay"`

	// The loser's life that just ended
	LoserLifetime float64 `csv:"loser_lifetime"`
	LoserKills    int     `csv:"loser_kills"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r CombatRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(r.Tick)),
		slog.Float64("sim_time", r.SimTimeSec),
		slog.String("winner", r.Winner),
		slog.Int("winner_score", r.WinnerScore),
		slog.String("loser", r.Loser),
		slog.Int("loser_score", r.LoserScore),
		slog.Bool("mutual", r.Mutual),
		slog.Float64("respawn_delay", r.RespawnDelay),
		slog.Float64("loser_lifetime", r.LoserLifetime),
		slog.Int("loser_kills", r.LoserKills),
	)
}
