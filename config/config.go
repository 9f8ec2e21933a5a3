// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/drive/vehicle"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig               `yaml:"screen"`
	Sim        SimConfig                  `yaml:"sim"`
	Camera     CameraConfig               `yaml:"camera"`
	Archetypes []ArchetypeConfig          `yaml:"archetypes" validate:"min=1,dive"`
	Player     PlayerConfig               `yaml:"player"`
	Traffic    []TrafficConfig            `yaml:"traffic" validate:"dive"`
	Scripts    map[string][]SegmentConfig `yaml:"scripts" validate:"dive,dive"`
	Telemetry  TelemetryConfig            `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width" validate:"gt=0"`
	Height    int `yaml:"height" validate:"gt=0"`
	TargetFPS int `yaml:"target_fps" validate:"gte=0"`
}

// SimConfig holds frame timing parameters.
type SimConfig struct {
	DT             float64 `yaml:"dt" validate:"gt=0"`           // Fixed step for headless runs (seconds)
	MaxFrameDT     float64 `yaml:"max_frame_dt" validate:"gt=0"` // Clamp for host frame time (seconds)
	StepsPerUpdate int     `yaml:"steps_per_update" validate:"gte=1"`
}

// Vec3 is a YAML-friendly 3D vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec converts to a gonum vector.
func (v Vec3) Vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// CameraConfig holds chase camera parameters.
type CameraConfig struct {
	Alpha  float64 `yaml:"alpha" validate:"gt=0,lte=1"` // Lerp fraction per frame
	FovY   float64 `yaml:"fovy" validate:"gt=0,lt=180"`
	Behind Vec3    `yaml:"behind"` // Vehicle-local eye offset for the chase view
	Front  Vec3    `yaml:"front"`  // Vehicle-local eye offset for the front view
}

// ArchetypeConfig is a named vehicle profile: physical constants plus the
// box dimensions used to draw it.
type ArchetypeConfig struct {
	Name    string         `yaml:"name" validate:"required"`
	Vehicle vehicle.Config `yaml:",inline"`
	Body    BodyConfig     `yaml:"body"`
}

// BodyConfig holds render dimensions in meters.
type BodyConfig struct {
	Length float64  `yaml:"length" validate:"gt=0"`
	Width  float64  `yaml:"width" validate:"gt=0"`
	Height float64  `yaml:"height" validate:"gt=0"`
	Color  [3]uint8 `yaml:"color"`
}

// SpawnConfig is an initial pose on the ground plane.
type SpawnConfig struct {
	X   float64 `yaml:"x"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"` // radians
}

// PlayerConfig holds the player vehicle setup.
type PlayerConfig struct {
	Archetype string      `yaml:"archetype" validate:"required"`
	Spawn     SpawnConfig `yaml:"spawn"`
	Script    string      `yaml:"script"` // Driver script used in headless mode (empty = idle)
}

// TrafficConfig describes one scripted non-player vehicle.
type TrafficConfig struct {
	Archetype string      `yaml:"archetype" validate:"required"`
	Spawn     SpawnConfig `yaml:"spawn"`
	Script    string      `yaml:"script" validate:"required"`
	Loop      bool        `yaml:"loop"`
}

// SegmentConfig holds one timed step of a driver script.
type SegmentConfig struct {
	Duration   float64 `yaml:"duration" validate:"gt=0"` // seconds
	Accelerate bool    `yaml:"accelerate"`
	Brake      bool    `yaml:"brake"`
	Left       bool    `yaml:"left"`
	Right      bool    `yaml:"right"`
	Handbrake  bool    `yaml:"handbrake"`
}

// Controls converts the segment into a control snapshot.
func (s SegmentConfig) Controls() vehicle.Controls {
	return vehicle.Controls{
		Accelerate: s.Accelerate,
		Brake:      s.Brake,
		SteerLeft:  s.Left,
		SteerRight: s.Right,
		Handbrake:  s.Handbrake,
	}
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window" validate:"gt=0"` // seconds of sim time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	Trace               bool    `yaml:"trace"`       // write per-frame trace.csv
	TraceEvery          int     `yaml:"trace_every"` // record every Nth frame
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ArchetypeIndex map[string]int   // name -> index into Archetypes
	Models         []*vehicle.Model // one validated model per archetype, same order
}

// global holds the loaded configuration.
var global *Config

var validate = validator.New()

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays YAML data onto cfg. Only fields present in data are
// overwritten; lists such as archetypes are replaced wholesale while
// scripts merge by name.
func Parse(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// computeDerived validates the loaded values and builds lookup tables and
// vehicle models.
func (c *Config) computeDerived() error {
	if c.Telemetry.PerfCollectorWindow <= 0 {
		c.Telemetry.PerfCollectorWindow = 60
	}
	if c.Telemetry.TraceEvery <= 0 {
		c.Telemetry.TraceEvery = 1
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	c.Derived.ArchetypeIndex = make(map[string]int, len(c.Archetypes))
	c.Derived.Models = make([]*vehicle.Model, len(c.Archetypes))
	for i, arch := range c.Archetypes {
		if _, dup := c.Derived.ArchetypeIndex[arch.Name]; dup {
			return fmt.Errorf("validating config: duplicate archetype %q", arch.Name)
		}
		m, err := vehicle.NewModel(arch.Vehicle)
		if err != nil {
			return fmt.Errorf("archetype %q: %w", arch.Name, err)
		}
		c.Derived.ArchetypeIndex[arch.Name] = i
		c.Derived.Models[i] = m
	}

	if _, ok := c.Derived.ArchetypeIndex[c.Player.Archetype]; !ok {
		return fmt.Errorf("validating config: player archetype %q not defined", c.Player.Archetype)
	}
	if c.Player.Script != "" {
		if _, ok := c.Scripts[c.Player.Script]; !ok {
			return fmt.Errorf("validating config: player script %q not defined", c.Player.Script)
		}
	}
	for i, tr := range c.Traffic {
		if _, ok := c.Derived.ArchetypeIndex[tr.Archetype]; !ok {
			return fmt.Errorf("validating config: traffic[%d] archetype %q not defined", i, tr.Archetype)
		}
		if _, ok := c.Scripts[tr.Script]; !ok {
			return fmt.Errorf("validating config: traffic[%d] script %q not defined", i, tr.Script)
		}
	}
	return nil
}

// Archetype returns the archetype profile and model for a name.
func (c *Config) Archetype(name string) (ArchetypeConfig, *vehicle.Model, bool) {
	i, ok := c.Derived.ArchetypeIndex[name]
	if !ok {
		return ArchetypeConfig{}, nil, false
	}
	return c.Archetypes[i], c.Derived.Models[i], true
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
