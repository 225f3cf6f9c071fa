// Package game wires the performance core into a playable frame loop.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkrell/stardrift/atlas"
	"github.com/mkrell/stardrift/audio"
	"github.com/mkrell/stardrift/camera"
	"github.com/mkrell/stardrift/components"
	"github.com/mkrell/stardrift/config"
	"github.com/mkrell/stardrift/renderer"
	"github.com/mkrell/stardrift/systems"
	"github.com/mkrell/stardrift/telemetry"
	"github.com/mkrell/stardrift/ui"
)

// Options control game construction.
type Options struct {
	Seed      int64
	Headless  bool
	LogStats  bool
	OutputDir string
}

// Game holds the complete frame-loop state. All systems are explicit
// fields constructed here; there is no hidden shared state, so tests can
// run several instances side by side.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers per archetype
	staticMapper  *ecs.Map3[components.Position, components.Body, components.Detail]
	moverMapper   *ecs.Map4[components.Position, components.Velocity, components.Body, components.Detail]
	emitterMapper *ecs.Map4[components.Position, components.Body, components.Detail, components.Emitter]

	// Filters for per-frame passes
	objFilter     *ecs.Filter3[components.Position, components.Body, components.Detail]
	moverFilter   *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Detail]
	emitterFilter *ecs.Filter2[components.Position, components.Emitter]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	bodyMap   *ecs.Map1[components.Body]
	detailMap *ecs.Map1[components.Detail]
	velMap    *ecs.Map1[components.Velocity]

	// Core systems
	cam       *camera.Camera
	grid      *systems.SpatialIndex
	lod       *systems.LODSelector
	quality   *systems.QualityController
	culler    *systems.Culler
	particles *systems.ParticleSystem
	engine    *audio.Engine
	streams   *audio.Manager
	sprites   *atlas.Atlas
	batcher   *renderer.Batcher
	hud       *ui.Renderer
	registry  *systems.SystemRegistry
	perf      *telemetry.Collector
	insights  *telemetry.InsightTable
	output    *telemetry.OutputManager

	// Visible set of the current frame
	visible *systems.TierSet

	// Player state
	player        ecs.Entity
	playerHeading float32
	thrusting     bool
	thrustStream  uint64

	// Active looping emitter playbacks, keyed by entity
	emitterStreams map[ecs.Entity]uint64

	tick     int64
	paused   bool
	showHUD  bool
	headless bool
	logStats bool

	// Seconds since the last periodic perf log
	logAccum float64

	width, height float32
}

// NewGame creates a game instance from the loaded configuration.
func NewGame(cfg *config.Config, opts Options) *Game {
	world := ecs.NewWorld()

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),

		staticMapper:  ecs.NewMap3[components.Position, components.Body, components.Detail](world),
		moverMapper:   ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Detail](world),
		emitterMapper: ecs.NewMap4[components.Position, components.Body, components.Detail, components.Emitter](world),

		objFilter:     ecs.NewFilter3[components.Position, components.Body, components.Detail](world),
		moverFilter:   ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Detail](world),
		emitterFilter: ecs.NewFilter2[components.Position, components.Emitter](world),

		posMap:    ecs.NewMap1[components.Position](world),
		bodyMap:   ecs.NewMap1[components.Body](world),
		detailMap: ecs.NewMap1[components.Detail](world),
		velMap:    ecs.NewMap1[components.Velocity](world),

		emitterStreams: make(map[ecs.Entity]uint64),
		visible:        &systems.TierSet{},

		headless: opts.Headless,
		logStats: opts.LogStats,
		showHUD:  true,
		width:    cfg.Derived.ScreenW32,
		height:   cfg.Derived.ScreenH32,
	}

	// Camera
	g.cam = camera.New(g.width, g.height)

	// Spatial index and LOD selection
	g.grid = systems.NewSpatialIndex(cfg.Derived.CellSize32)
	g.lod = systems.NewLODSelector(lodParams(cfg))
	g.culler = systems.NewCuller(g.grid, g.lod)

	// Adaptive quality loop
	g.quality = systems.NewQualityController(qualityParams(cfg))

	// Pooled particles
	g.particles = systems.NewParticleSystem(cfg.Pool.MaxParticles, g.rng)

	// Audio stream cache
	g.engine = audio.NewEngine()
	if opts.Headless {
		g.engine.Disable()
	} else {
		g.engine.Init()
	}
	cache := audio.NewCache(cfg.Derived.MemoryThreshold, cfg.Stream.MaxEvictPasses)
	g.streams = audio.NewManager(g.engine, cache, audio.ManagerConfig{
		MaxVoices:            cfg.Pool.MaxVoices,
		MaxConcurrentStreams: cfg.Stream.MaxConcurrentStreams,
		PreemptAgeWeight:     cfg.Stream.PreemptAgeWeight,
	})

	// Telemetry
	g.perf = telemetry.NewCollector(cfg.Telemetry.WindowSize)
	g.insights = telemetry.NewInsightTable()
	g.registry = systems.NewSystemRegistry()

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("disabling CSV output", "error", err)
		} else {
			g.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Warn("writing config snapshot", "error", err)
			}
		}
	}

	// Atlas: pack the static sprite manifest once at init
	g.perf.StartTimer("atlasPack")
	packed, err := atlas.NewPacker(cfg.Atlas.MaxSize, cfg.Atlas.Padding).Pack(spriteManifest())
	if err != nil {
		// A broken manifest is a build-time mistake; run without sprites
		slog.Error("atlas packing failed", "error", err)
		packed, _ = atlas.NewPacker(cfg.Atlas.MaxSize, cfg.Atlas.Padding).Pack(nil)
	}
	if d, mem, ok := g.perf.StopTimer("atlasPack"); ok {
		if in, hit := g.insights.Evaluate("atlasPack", d, mem); hit {
			slog.Warn(in.Message, "remediation", in.Remediation, "duration", d)
		}
	}
	g.sprites = packed
	g.batcher = renderer.NewBatcher(packed, opts.Headless)
	g.hud = ui.NewRenderer()

	g.scatterWorld()
	g.preloadBaseSounds()
	g.streams.Play("music_drift", audio.PlayOptions{Loop: true})

	return g
}

// lodParams converts config values into LOD selector parameters.
func lodParams(cfg *config.Config) systems.LODParams {
	p := systems.LODParams{
		HighDistance:   float32(cfg.LOD.HighDistance),
		MediumDistance: float32(cfg.LOD.MediumDistance),
		LowDistance:    float32(cfg.LOD.LowDistance),
	}
	p.CullDistance[components.KindPlanet] = float32(cfg.LOD.CullPlanet)
	p.CullDistance[components.KindRing] = float32(cfg.LOD.CullRing)
	p.CullDistance[components.KindParticle] = float32(cfg.LOD.CullParticle)
	p.CullDistance[components.KindPlayer] = float32(cfg.LOD.CullPlayer)
	return p
}

// qualityParams converts config values into controller parameters.
func qualityParams(cfg *config.Config) systems.QualityParams {
	return systems.QualityParams{
		TargetFrameTime: cfg.Derived.TargetFrameTime,
		DropRatio:       float32(cfg.Quality.DropRatio),
		RestoreRatio:    float32(cfg.Quality.RestoreRatio),
		DecayFactor:     float32(cfg.Quality.DecayFactor),
		GrowthFactor:    float32(cfg.Quality.GrowthFactor),
		MinScale:        float32(cfg.Quality.MinScale),
		MaxScale:        float32(cfg.Quality.MaxScale),
		MinQuality:      float32(cfg.Quality.MinQuality),
		RampPerSecond:   float32(cfg.Quality.RampPerSecond),
	}
}

// Quality returns the current global quality scalar.
func (g *Game) Quality() float32 {
	return g.quality.Quality()
}

// Tick returns the number of completed frames.
func (g *Game) Tick() int64 {
	return g.tick
}

// Unload releases audio and output resources.
func (g *Game) Unload() {
	g.streams.StopAll()
	g.engine.Close()
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}

	g.DumpReport()
}
