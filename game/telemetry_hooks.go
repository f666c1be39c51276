package game

import "log/slog"

// flushTelemetry emits the stats window once it has elapsed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.roster.LiveCount(), g.scores())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// scores samples one score per slot, vacant slots included.
func (g *Game) scores() []float64 {
	board := g.Scoreboard()
	out := make([]float64, len(board))
	for i, entry := range board {
		out[i] = float64(entry.Score)
	}
	return out
}
