// Package config holds the animation defaults and the optional YAML overlay.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Color Splash - P: pick color, R: random, C: reset, Esc/Q: quit"

	// Formation switch and eviction cap (cap = 2 * FormationThreshold)
	FormationThreshold = 15

	// Free regime
	BaseSpeed         = 2
	GravityThreshold  = 100
	GravityMultiplier = 1.5
	GravityRadius     = 200
	Restitution       = 0.8

	// Formation regime
	StreamlineSpeed = 1
	StreamlineScale = 0.01
	FormationRadius = 150
	RotationSpeed   = 0.02
	MinPolygonSides = 3

	// Spawning
	SpawnMargin = 50
	MinRadius   = 20
	RadiusRange = 30

	// Rendering
	GlowBlur       = 15
	RingAlpha      = 51 // rgba(255,255,255,0.2)
	TerminalCellW  = 8
	TerminalCellH  = 16
	TargetTPS      = 60
	ButtonWidth    = 120
	ButtonHeight   = 32
	ButtonX        = 20
	ButtonY        = 40
	ButtonSpacing  = 12
	LevelMeterSize = 120

	// Audio
	SampleRate    = 44100
	ChimeMillis   = 220
	ChimeVolume   = 0.25
	LevelRingSize = 4096

	// Telemetry
	SampleEvery = 30
)

// Config is the full set of tunables. Default() mirrors the constants above;
// a YAML file only overrides the keys it names.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Render    RenderConfig    `yaml:"render"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// PhysicsConfig holds both motion regimes.
type PhysicsConfig struct {
	FormationThreshold int     `yaml:"formation_threshold"`
	BaseSpeed          float64 `yaml:"base_speed"`
	GravityThreshold   int     `yaml:"gravity_threshold"`  // energy a splash needs to attract others
	GravityMultiplier  float64 `yaml:"gravity_multiplier"`
	GravityRadius      float64 `yaml:"gravity_radius"`
	Restitution        float64 `yaml:"restitution"`
	StreamlineSpeed    float64 `yaml:"streamline_speed"`   // scaled by StreamlineScale per tick
	FormationRadius    float64 `yaml:"formation_radius"`
	RotationSpeed      float64 `yaml:"rotation_speed"`
	MinPolygonSides    int     `yaml:"min_polygon_sides"`
}

// SpawnConfig controls where and how big new splashes are.
type SpawnConfig struct {
	Margin      float64 `yaml:"margin"`
	MinRadius   int     `yaml:"min_radius"`
	RadiusRange int     `yaml:"radius_range"`
}

// RenderConfig holds drawing parameters shared by both renderers.
type RenderConfig struct {
	GlowBlur  float64 `yaml:"glow_blur"`
	RingAlpha uint8   `yaml:"ring_alpha"`
	CellW     int     `yaml:"terminal_cell_width"`
	CellH     int     `yaml:"terminal_cell_height"`
}

// AudioConfig holds the spawn chime settings.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRate  int     `yaml:"sample_rate"`
	ChimeMillis int     `yaml:"chime_millis"`
	Volume      float64 `yaml:"volume"`
	LevelRing   int     `yaml:"level_ring"`
}

// TelemetryConfig holds CSV sampling settings.
type TelemetryConfig struct {
	SampleEvery int `yaml:"sample_every"` // ticks between frame rows
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
			TPS:    TargetTPS,
		},
		Physics: PhysicsConfig{
			FormationThreshold: FormationThreshold,
			BaseSpeed:          BaseSpeed,
			GravityThreshold:   GravityThreshold,
			GravityMultiplier:  GravityMultiplier,
			GravityRadius:      GravityRadius,
			Restitution:        Restitution,
			StreamlineSpeed:    StreamlineSpeed,
			FormationRadius:    FormationRadius,
			RotationSpeed:      RotationSpeed,
			MinPolygonSides:    MinPolygonSides,
		},
		Spawn: SpawnConfig{
			Margin:      SpawnMargin,
			MinRadius:   MinRadius,
			RadiusRange: RadiusRange,
		},
		Render: RenderConfig{
			GlowBlur:  GlowBlur,
			RingAlpha: RingAlpha,
			CellW:     TerminalCellW,
			CellH:     TerminalCellH,
		},
		Audio: AudioConfig{
			Enabled:     true,
			SampleRate:  SampleRate,
			ChimeMillis: ChimeMillis,
			Volume:      ChimeVolume,
			LevelRing:   LevelRingSize,
		},
		Telemetry: TelemetryConfig{
			SampleEvery: SampleEvery,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Cap is the hard collection limit.
func (c *Config) Cap() int {
	return 2 * c.Physics.FormationThreshold
}

// Validate reports the first setting the simulation cannot run with.
func (c *Config) Validate() error {
	p := c.Physics
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.TPS <= 0:
		return errors.New("window: tps must be positive")
	case p.FormationThreshold < 1:
		return fmt.Errorf("physics: formation_threshold must be >= 1, got %d", p.FormationThreshold)
	case p.Restitution < 0 || p.Restitution > 1:
		return fmt.Errorf("physics: restitution must be in [0,1], got %g", p.Restitution)
	case p.GravityRadius < 0:
		return fmt.Errorf("physics: gravity_radius must be >= 0, got %g", p.GravityRadius)
	case p.MinPolygonSides < 3:
		return fmt.Errorf("physics: min_polygon_sides must be >= 3, got %d", p.MinPolygonSides)
	case c.Spawn.MinRadius <= 0:
		return fmt.Errorf("spawn: min_radius must be positive, got %d", c.Spawn.MinRadius)
	case c.Spawn.RadiusRange <= 0:
		return fmt.Errorf("spawn: radius_range must be positive, got %d", c.Spawn.RadiusRange)
	case c.Render.CellW <= 0 || c.Render.CellH <= 0:
		return errors.New("render: terminal cell size must be positive")
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio: sample_rate must be positive, got %d", c.Audio.SampleRate)
	case c.Telemetry.SampleEvery <= 0:
		return fmt.Errorf("telemetry: sample_every must be positive, got %d", c.Telemetry.SampleEvery)
	}
	return nil
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
