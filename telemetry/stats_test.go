package telemetry

import (
	"math"
	"testing"
)

func TestComputeScoreStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
		wantP50  float64
		wantMax  float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{4}, 4, 0, 4, 4},
		{"unsorted odd", []float64{5, 1, 3}, 3, math.Sqrt(8.0 / 3.0), 3, 5},
		{"all zero", []float64{0, 0, 0, 0}, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, maxVal := ComputeScoreStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-9 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
			if p50 != tt.wantP50 {
				t.Errorf("p50 = %v, want %v", p50, tt.wantP50)
			}
			if maxVal != tt.wantMax {
				t.Errorf("max = %v, want %v", maxVal, tt.wantMax)
			}
		})
	}
}

func TestComputeScoreStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeScoreStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered to %v", values)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1)
	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window = %d ticks, want 10", c.WindowDurationTicks())
	}

	c.RecordCombat(true)
	c.RecordCombat(false)
	c.RecordCombat(false)
	c.RecordCombat(true)
	c.RecordPlacement(3, false)
	c.RecordPlacement(5, true)
	c.Record(EventRespawnSkipped)
	c.Record(EventRetarget)
	c.Record(EventSteerFallback)
	c.RecordLifetime(2)
	c.RecordLifetime(4)

	if c.ShouldFlush(9) {
		t.Error("flush requested before the window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("flush not requested at window end")
	}

	stats := c.Flush(10, 3, []float64{1, 2, 0, 1})

	if stats.Combats != 4 || stats.MutualCombats != 2 {
		t.Errorf("combats = %d/%d mutual, want 4/2", stats.Combats, stats.MutualCombats)
	}
	if stats.MutualRate != 0.5 {
		t.Errorf("mutual rate = %v, want 0.5", stats.MutualRate)
	}
	if stats.Respawns != 2 || stats.PlacementFallbacks != 1 || stats.MeanPlacementAttempts != 4 {
		t.Errorf("respawns = %d, fallbacks = %d, attempts = %v", stats.Respawns, stats.PlacementFallbacks, stats.MeanPlacementAttempts)
	}
	if stats.RespawnsSkipped != 1 || stats.Retargets != 1 || stats.SteerFallbacks != 1 {
		t.Errorf("skipped/retargets/fallbacks = %d/%d/%d, want 1/1/1", stats.RespawnsSkipped, stats.Retargets, stats.SteerFallbacks)
	}
	if stats.MeanLifetime != 3 {
		t.Errorf("mean lifetime = %v, want 3", stats.MeanLifetime)
	}
	if stats.Alive != 3 || stats.ScoreMax != 2 {
		t.Errorf("alive = %d, max score = %v", stats.Alive, stats.ScoreMax)
	}
	if math.Abs(stats.SimTimeSec-1.0) > 1e-6 {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}

	// Counters reset for the next window
	next := c.Flush(20, 4, nil)
	if next.Combats != 0 || next.Respawns != 0 || next.WindowStartTick != 10 {
		t.Errorf("second window not reset: %+v", next)
	}
}
