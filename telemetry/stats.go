package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Occupied slots at window end
	Alive int `csv:"alive"`

	// Events during window
	Combats         int     `csv:"combats"`
	MutualCombats   int     `csv:"mutual_combats"`
	MutualRate      float64 `csv:"mutual_rate"`
	Respawns        int     `csv:"respawns"`
	RespawnsSkipped int     `csv:"respawns_skipped"`
	Retargets       int     `csv:"retargets"`
	SteerFallbacks  int     `csv:"steer_fallbacks"`

	// Placement effort
	MeanPlacementAttempts float64 `csv:"placement_attempts_mean"`
	PlacementFallbacks    int     `csv:"placement_fallbacks"`

	// Mean length of lives that ended in the window, seconds
	MeanLifetime float64 `csv:"lifetime_mean"`

	// Score distribution across the roster (sampled at window end)
	ScoreMean float64 `csv:"score_mean"`
	ScoreStd  float64 `csv:"score_std"`
	ScoreP50  float64 `csv:"score_p50"`
	ScoreMax  float64 `csv:"score_max"`
}

// ComputeScoreStats returns the population mean, standard deviation, median and
// maximum of the given scores. Returns zeros for an empty slice.
func ComputeScoreStats(values []float64) (mean, std, p50, maxVal float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	// Quantile needs ascending input
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	maxVal = sorted[n-1]

	return mean, std, p50, maxVal
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.Alive),
		slog.Int("combats", s.Combats),
		slog.Int("mutual_combats", s.MutualCombats),
		slog.Float64("mutual_rate", s.MutualRate),
		slog.Int("respawns", s.Respawns),
		slog.Int("respawns_skipped", s.RespawnsSkipped),
		slog.Int("retargets", s.Retargets),
		slog.Int("steer_fallbacks", s.SteerFallbacks),
		slog.Float64("placement_attempts_mean", s.MeanPlacementAttempts),
		slog.Int("placement_fallbacks", s.PlacementFallbacks),
		slog.Float64("lifetime_mean", s.MeanLifetime),
		slog.Float64("score_mean", s.ScoreMean),
		slog.Float64("score_std", s.ScoreStd),
		slog.Float64("score_p50", s.ScoreP50),
		slog.Float64("score_max", s.ScoreMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
