// Package config provides configuration loading and access for the performance core.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all performance-core configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Spatial   SpatialConfig   `yaml:"spatial"`
	LOD       LODConfig       `yaml:"lod"`
	Quality   QualityConfig   `yaml:"quality"`
	Pool      PoolConfig      `yaml:"pool"`
	Stream    StreamConfig    `yaml:"stream"`
	Atlas     AtlasConfig     `yaml:"atlas"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SpatialConfig holds spatial index parameters.
type SpatialConfig struct {
	CellSize float64 `yaml:"cell_size"` // world units per grid cell
}

// LODConfig holds level-of-detail selection parameters.
// Thresholds are compared against distance * camera scale, ascending.
type LODConfig struct {
	HighDistance   float64 `yaml:"high_distance"`
	MediumDistance float64 `yaml:"medium_distance"`
	LowDistance    float64 `yaml:"low_distance"`

	// Per-kind cull distances; an object beyond its kind's distance is
	// culled regardless of tier thresholds. Zero disables the override.
	CullPlanet   float64 `yaml:"cull_planet"`
	CullRing     float64 `yaml:"cull_ring"`
	CullParticle float64 `yaml:"cull_particle"`
	CullPlayer   float64 `yaml:"cull_player"`
}

// QualityConfig holds the adaptive quality feedback loop parameters.
type QualityConfig struct {
	TargetFrameTimeMS float64 `yaml:"target_frame_time_ms"`
	DropRatio         float64 `yaml:"drop_ratio"`     // shrink thresholds when avg/target exceeds this
	RestoreRatio      float64 `yaml:"restore_ratio"`  // grow thresholds when avg/target falls below this
	DecayFactor       float64 `yaml:"decay_factor"`   // threshold multiplier under load (<1)
	GrowthFactor      float64 `yaml:"growth_factor"`  // threshold multiplier when recovered (>1)
	MinScale          float64 `yaml:"min_scale"`      // floor on threshold scale vs baseline
	MaxScale          float64 `yaml:"max_scale"`      // ceiling on threshold scale vs baseline
	MinQuality        float64 `yaml:"min_quality"`    // floor on the global quality scalar
	RampPerSecond     float64 `yaml:"ramp_per_second"` // max quality change per second
}

// PoolConfig holds bounded pool capacities.
type PoolConfig struct {
	MaxParticles int `yaml:"max_particles"`
	MaxVoices    int `yaml:"max_voices"` // audio playback handles
}

// StreamConfig holds audio stream cache parameters.
type StreamConfig struct {
	MemoryThresholdMB    float64 `yaml:"memory_threshold_mb"`
	MaxConcurrentStreams int     `yaml:"max_concurrent_streams"`
	MaxEvictPasses       int     `yaml:"max_evict_passes"`
	PreemptAgeWeight     float64 `yaml:"preempt_age_weight"` // playback-progress weight in preemption score
	PreloadRange         float64 `yaml:"preload_range"`      // emitter preload radius around player
}

// AtlasConfig holds texture atlas packing parameters.
type AtlasConfig struct {
	MaxSize int `yaml:"max_size"` // page width and height in pixels
	Padding int `yaml:"padding"`  // pixels between placed sprites
}

// TelemetryConfig holds performance monitoring parameters.
type TelemetryConfig struct {
	WindowSize     int     `yaml:"window_size"`      // samples per rolling window
	LogIntervalSec float64 `yaml:"log_interval_sec"` // 0 disables periodic perf logging
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellSize32      float32       // Spatial.CellSize as float32
	ScreenW32       float32       // Screen.Width as float32
	ScreenH32       float32       // Screen.Height as float32
	TargetFrameTime time.Duration // Quality.TargetFrameTimeMS as a duration
	MemoryThreshold int64         // Stream.MemoryThresholdMB in bytes
}

// global holds the loaded configuration.
var global *Config

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the core cannot run with.
func (c *Config) validate() error {
	if c.Spatial.CellSize <= 0 {
		return fmt.Errorf("spatial.cell_size must be > 0, got %v", c.Spatial.CellSize)
	}
	if !(c.LOD.HighDistance < c.LOD.MediumDistance && c.LOD.MediumDistance < c.LOD.LowDistance) {
		return fmt.Errorf("lod distances must be ascending: high=%v medium=%v low=%v",
			c.LOD.HighDistance, c.LOD.MediumDistance, c.LOD.LowDistance)
	}
	if c.Quality.MinQuality <= 0 || c.Quality.MinQuality > 1 {
		return fmt.Errorf("quality.min_quality must be in (0, 1], got %v", c.Quality.MinQuality)
	}
	if c.Quality.DecayFactor >= 1 || c.Quality.DecayFactor <= 0 {
		return fmt.Errorf("quality.decay_factor must be in (0, 1), got %v", c.Quality.DecayFactor)
	}
	if c.Quality.GrowthFactor <= 1 {
		return fmt.Errorf("quality.growth_factor must be > 1, got %v", c.Quality.GrowthFactor)
	}
	if c.Quality.MinScale <= 0 || c.Quality.MinScale > 1 || c.Quality.MaxScale < 1 {
		return fmt.Errorf("quality scale clamp invalid: min=%v max=%v",
			c.Quality.MinScale, c.Quality.MaxScale)
	}
	if c.Stream.MaxConcurrentStreams < 1 {
		return fmt.Errorf("stream.max_concurrent_streams must be >= 1, got %d",
			c.Stream.MaxConcurrentStreams)
	}
	if c.Atlas.MaxSize < 1 || c.Atlas.Padding < 0 {
		return fmt.Errorf("atlas config invalid: max_size=%d padding=%d",
			c.Atlas.MaxSize, c.Atlas.Padding)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.CellSize32 = float32(c.Spatial.CellSize)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.TargetFrameTime = time.Duration(c.Quality.TargetFrameTimeMS * float64(time.Millisecond))
	c.Derived.MemoryThreshold = int64(c.Stream.MemoryThresholdMB * 1024 * 1024)

	if c.Telemetry.WindowSize < 1 {
		c.Telemetry.WindowSize = 120
	}
	if c.Stream.MaxEvictPasses < 1 {
		c.Stream.MaxEvictPasses = 64
	}
}

// WriteYAML saves the configuration to a YAML file.
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
