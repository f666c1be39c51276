package main

import "github.com/pthm-cable/dinos/config"

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name string  // Column name in the log
	Path string  // Config path for logging
	Min  float64 // Lower bound
	Max  float64 // Upper bound
}

// ParamVector holds the set of tunable pacing parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the pacing parameter set.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "speed_factor", Path: "steering.speed_factor", Min: 0.01, Max: 0.3},
			{Name: "respawn_min", Path: "combat.respawn_min", Min: 0.2, Max: 4.0},
			// Added to respawn_min so the range never inverts
			{Name: "respawn_span", Path: "combat.respawn_max", Min: 0.0, Max: 4.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// FromConfig reads the current raw values.
func (pv *ParamVector) FromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Steering.SpeedFactor,
		cfg.Combat.RespawnMin,
		cfg.Combat.RespawnMax - cfg.Combat.RespawnMin,
	}
}

// ApplyToConfig writes clamped raw values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	x := pv.Clamp(raw)
	cfg.Steering.SpeedFactor = x[0]
	cfg.Combat.RespawnMin = x[1]
	cfg.Combat.RespawnMax = x[1] + x[2]
}

// Clamp restricts raw values to their bounds.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = min(max(v, pv.Specs[i].Min), pv.Specs[i].Max)
	}
	return out
}

// Normalize maps raw values to [0, 1].
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		s := pv.Specs[i]
		out[i] = (v - s.Min) / (s.Max - s.Min)
	}
	return out
}

// Denormalize maps [0, 1] values back to raw values.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		s := pv.Specs[i]
		out[i] = s.Min + v*(s.Max-s.Min)
	}
	return out
}
