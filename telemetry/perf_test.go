package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSteering)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseCollisions)
		time.Sleep(100 * time.Microsecond)
		if d := pc.EndTick(); d <= 0 {
			t.Fatal("expected positive tick duration")
		}
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 || stats.TicksPerSecond <= 0 {
		t.Error("expected positive tick timing")
	}
	if _, ok := stats.PhasePct[PhaseSteering]; !ok {
		t.Error("steering phase not tracked")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v above max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 || row.SteeringPct <= 0 {
		t.Errorf("csv row = %+v", row)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTickDuration != 0 || stats.PhasePct == nil {
		t.Errorf("empty stats = %+v", stats)
	}
}
