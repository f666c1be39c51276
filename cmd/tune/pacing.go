package main

import (
	"sync"

	"github.com/pthm-cable/dinos/config"
	"github.com/pthm-cable/dinos/game"
	"github.com/pthm-cable/dinos/telemetry"
)

// PacingEvaluator runs headless arenas and scores how far their combat rate is
// from a target number of combats per minute.
type PacingEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	seeds      []int64
	maxTicks   int32
	target     float64 // combats per minute

	mu       sync.Mutex
	lastRate float64
}

// NewPacingEvaluator creates a new evaluator.
func NewPacingEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, maxTicks int32, target float64) *PacingEvaluator {
	return &PacingEvaluator{
		params:     params,
		baseConfig: baseCfg,
		seeds:      seeds,
		maxTicks:   maxTicks,
		target:     target,
	}
}

// LastRate returns the mean combat rate from the most recent Evaluate call.
func (pe *PacingEvaluator) LastRate() float64 {
	pe.mu.Lock()
	defer pe.mu.Unlock()
	return pe.lastRate
}

// Evaluate returns the squared relative error of the mean combat rate (lower = better).
func (pe *PacingEvaluator) Evaluate(raw []float64) float64 {
	rate := pe.Measure(raw)

	pe.mu.Lock()
	pe.lastRate = rate
	pe.mu.Unlock()

	rel := (rate - pe.target) / pe.target
	return rel * rel
}

// Measure runs every seed in parallel and returns the mean combats per minute.
func (pe *PacingEvaluator) Measure(raw []float64) float64 {
	cfg := pe.copyConfig()
	pe.params.ApplyToConfig(cfg, raw)

	rates := make([]float64, len(pe.seeds))
	var wg sync.WaitGroup
	for i, seed := range pe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			rates[idx] = pe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range rates {
		total += r
	}
	return total / float64(len(rates))
}

// runSimulation returns combats per simulated minute for one seed.
func (pe *PacingEvaluator) runSimulation(cfg *config.Config, seed int64) float64 {
	g, err := game.NewGame(cfg, game.NewHeadless(cfg), game.Options{Seed: seed})
	if err != nil {
		return 0
	}
	defer g.Close()

	combats := 0
	g.OnCombat(func(telemetry.CombatRecord) { combats++ })

	for g.Tick() < pe.maxTicks {
		g.Update()
	}

	minutes := g.SimTime() / 60
	if minutes <= 0 {
		return 0
	}
	return float64(combats) / minutes
}

// copyConfig copies the scalar sections. Slices and derived values are shared
// read-only between runs.
func (pe *PacingEvaluator) copyConfig() *config.Config {
	c := *pe.baseConfig
	return &c
}
