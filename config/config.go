// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Roster    RosterConfig    `yaml:"roster"`
	Placement PlacementConfig `yaml:"placement"`
	Steering  SteeringConfig  `yaml:"steering"`
	Combat    CombatConfig    `yaml:"combat"`
	Tooltip   TooltipConfig   `yaml:"tooltip"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Sprites   SpritesConfig   `yaml:"sprites"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// Width and height double as the play area for headless runs.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
	HUDHeight int `yaml:"hud_height"` // strip reserved below the play area
}

// RosterConfig holds the fixed identity set. One slot per name.
type RosterConfig struct {
	Names []string `yaml:"names"`
}

// PlacementConfig holds spawn placement parameters.
type PlacementConfig struct {
	MinSpacing  float64 `yaml:"min_spacing"`  // MIN_SPACING between any two live actors
	MaxAttempts int     `yaml:"max_attempts"` // Rejection samples before the grid fallback
}

// SteeringConfig holds pursuit parameters.
type SteeringConfig struct {
	SpeedFactor  float64 `yaml:"speed_factor"`  // Fraction of the play-area diagonal travelled per second
	StopEpsilon  float64 `yaml:"stop_epsilon"`  // Distance at or below which an actor idles
	ChargeRadius float64 `yaml:"charge_radius"` // Distance below which the charge clip plays
}

// CombatConfig holds combat resolution parameters.
type CombatConfig struct {
	RespawnMin float64 `yaml:"respawn_min"` // RESPAWN_RANGE lower bound, seconds
	RespawnMax float64 `yaml:"respawn_max"` // RESPAWN_RANGE upper bound, seconds
}

// TooltipConfig holds hover tooltip parameters.
type TooltipConfig struct {
	Duration float64 `yaml:"duration"`  // Seconds a tooltip stays visible
	TextSize int     `yaml:"text_size"` // Font size in pixels
}

// PhysicsConfig holds simulation timing.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// SpritesConfig describes the dino sprite sheets.
type SpritesConfig struct {
	Dir         string       `yaml:"dir"`
	FrameWidth  int          `yaml:"frame_width"`
	FrameHeight int          `yaml:"frame_height"`
	Frames      int          `yaml:"frames"` // Frames per sheet row
	Scale       float64      `yaml:"scale"`
	FPS         float64      `yaml:"fps"`
	Clips       []ClipConfig `yaml:"clips"`
}

// ClipConfig names an inclusive frame range within a sheet.
type ClipConfig struct {
	Name string `yaml:"name"`
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
}

// TerminalConfig holds the terminal frontend's world-to-cell mapping.
type TerminalConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight float64 `yaml:"cell_height"` // World units per terminal row
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32 // Physics.DT as float32
	N           int     // Roster size
	FootprintW  float32 // Sprite frame width * scale
	FootprintH  float32 // Sprite frame height * scale
	PlayWidth   float32 // Screen.Width as float32
	PlayHeight  float32 // Screen.Height minus the HUD strip
	ClipByName  map[string]ClipConfig
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// Default returns the embedded defaults. Panics if they fail to parse.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.N = len(c.Roster.Names)
	c.Derived.FootprintW = float32(float64(c.Sprites.FrameWidth) * c.Sprites.Scale)
	c.Derived.FootprintH = float32(float64(c.Sprites.FrameHeight) * c.Sprites.Scale)
	c.Derived.PlayWidth = float32(c.Screen.Width)
	c.Derived.PlayHeight = float32(c.Screen.Height - c.Screen.HUDHeight)

	c.Derived.ClipByName = make(map[string]ClipConfig, len(c.Sprites.Clips))
	for _, clip := range c.Sprites.Clips {
		c.Derived.ClipByName[clip.Name] = clip
	}
}

// Validate rejects configurations the simulation cannot run with.
// Placement feasibility is checked against the configured screen and sprite footprint;
// frontends with a different viewport re-check at scene start.
func (c *Config) Validate() error {
	invalid := func(field string, value any, format string, args ...any) error {
		return oops.Code("INVALID_CONFIG").
			With("field", field).
			With("value", value).
			Wrapf(ErrInvalidConfig, format, args...)
	}

	if len(c.Roster.Names) < 2 {
		return invalid("roster.names", c.Roster.Names, "need at least two identities, got %d", len(c.Roster.Names))
	}
	seen := make(map[string]bool, len(c.Roster.Names))
	for _, name := range c.Roster.Names {
		if name == "" {
			return invalid("roster.names", c.Roster.Names, "empty identity name")
		}
		if seen[name] {
			return invalid("roster.names", name, "duplicate identity %q", name)
		}
		seen[name] = true
	}

	if c.Physics.DT <= 0 {
		return invalid("physics.dt", c.Physics.DT, "dt must be positive")
	}
	if c.Placement.MinSpacing < 0 {
		return invalid("placement.min_spacing", c.Placement.MinSpacing, "min spacing must not be negative")
	}
	if c.Placement.MaxAttempts <= 0 {
		return invalid("placement.max_attempts", c.Placement.MaxAttempts, "max attempts must be positive")
	}
	if c.Steering.SpeedFactor <= 0 {
		return invalid("steering.speed_factor", c.Steering.SpeedFactor, "speed factor must be positive")
	}
	if c.Steering.StopEpsilon < 0 {
		return invalid("steering.stop_epsilon", c.Steering.StopEpsilon, "stop epsilon must not be negative")
	}
	if c.Combat.RespawnMin <= 0 || c.Combat.RespawnMax < c.Combat.RespawnMin {
		return invalid("combat.respawn_min", c.Combat.RespawnMin,
			"respawn range [%g, %g] must be positive and ordered", c.Combat.RespawnMin, c.Combat.RespawnMax)
	}
	if c.Tooltip.Duration <= 0 {
		return invalid("tooltip.duration", c.Tooltip.Duration, "tooltip duration must be positive")
	}
	if c.Sprites.FrameWidth <= 0 || c.Sprites.FrameHeight <= 0 || c.Sprites.Scale <= 0 {
		return invalid("sprites", c.Sprites, "sprite frame size and scale must be positive")
	}
	for _, clip := range c.Sprites.Clips {
		if clip.From < 0 || clip.To < clip.From || clip.To >= c.Sprites.Frames {
			return invalid("sprites.clips", clip.Name, "clip %q frames [%d, %d] outside sheet of %d", clip.Name, clip.From, clip.To, c.Sprites.Frames)
		}
	}

	return c.ValidateLayout(float64(c.Derived.PlayWidth), float64(c.Derived.PlayHeight),
		float64(c.Derived.FootprintW), float64(c.Derived.FootprintH))
}

// ValidateLayout checks that N actors of the given footprint fit into a w x h play area
// with more than MinSpacing between every pair.
func (c *Config) ValidateLayout(w, h, footprintW, footprintH float64) error {
	spacing := c.Placement.MinSpacing
	areaW := math.Max(w-footprintW, 0)
	areaH := math.Max(h-footprintH, 0)
	diagonal := math.Hypot(areaW, areaH)

	if spacing >= diagonal {
		return oops.Code("INVALID_CONFIG").
			With("min_spacing", spacing).
			With("diagonal", diagonal).
			Wrapf(ErrInvalidConfig, "min spacing %.1f is not below the play-area diagonal %.1f", spacing, diagonal)
	}

	capacity := GridCapacity(areaW, areaH, spacing)
	if n := len(c.Roster.Names); capacity < n {
		return oops.Code("INVALID_CONFIG").
			With("min_spacing", spacing).
			With("capacity", capacity).
			With("actors", n).
			Wrapf(ErrInvalidConfig, "play area %.0fx%.0f holds %d actors at spacing %.1f, need %d", w, h, capacity, spacing, n)
	}
	return nil
}

// GridCapacity returns how many points a grid with step just above spacing fits into
// an areaW x areaH rectangle. Such a grid always satisfies the spacing constraint.
func GridCapacity(areaW, areaH, spacing float64) int {
	step := GridStep(spacing)
	cols := int(areaW/step) + 1
	rows := int(areaH/step) + 1
	return cols * rows
}

// GridStep returns the fallback grid pitch for a minimum spacing.
func GridStep(spacing float64) float64 {
	const minStep = 1.0
	step := spacing * 1.001
	if step < spacing+0.01 {
		step = spacing + 0.01
	}
	return math.Max(step, minStep)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
