package game

import (
	"fmt"
	"math"

	"github.com/mkrell/stardrift/atlas"
	"github.com/mkrell/stardrift/components"
)

// Demo scene dimensions. The world itself is unbounded; these only bound
// the initial scatter around the origin.
const (
	scatterRadius  = 20000.0
	planetCount    = 48
	ringedCount    = 10
	dustPerCluster = 40
	dustClusters   = 30
)

// spriteManifest lists every sprite the renderer can draw. Sizes are in
// pixels at full detail.
func spriteManifest() []atlas.Sprite {
	sprites := []atlas.Sprite{
		{Name: "ship", W: 48, H: 48},
		{Name: "dust", W: 8, H: 8},
	}
	for i := 0; i < 6; i++ {
		sprites = append(sprites,
			atlas.Sprite{Name: fmt.Sprintf("planet_%d", i), W: 256, H: 256},
			atlas.Sprite{Name: fmt.Sprintf("planet_%d_med", i), W: 96, H: 96},
			atlas.Sprite{Name: fmt.Sprintf("planet_%d_low", i), W: 32, H: 32},
		)
	}
	for i := 0; i < 3; i++ {
		sprites = append(sprites,
			atlas.Sprite{Name: fmt.Sprintf("ring_%d", i), W: 384, H: 128},
			atlas.Sprite{Name: fmt.Sprintf("ring_%d_low", i), W: 96, H: 32},
		)
	}
	return sprites
}

// scatterWorld populates the demo scene: planets with ambient emitters,
// a few ringed giants, dust clusters, and the player ship at the origin.
func (g *Game) scatterWorld() {
	// Planets, some with ambient drones attached
	for i := 0; i < planetCount; i++ {
		x, y := g.scatterPoint(scatterRadius)
		radius := 60 + g.rng.Float32()*180
		sprite := fmt.Sprintf("planet_%d", g.rng.Intn(6))

		if i%4 == 0 {
			g.emitterMapper.NewEntity(
				&components.Position{X: x, Y: y},
				&components.Body{Kind: components.KindPlanet, Radius: radius, Sprite: sprite},
				&components.Detail{Tier: components.TierCulled},
				&components.Emitter{
					Sound: fmt.Sprintf("ambient_drone_%d", i%3),
					Range: radius * 12,
					Loop:  true,
				},
			)
			continue
		}
		g.staticMapper.NewEntity(
			&components.Position{X: x, Y: y},
			&components.Body{Kind: components.KindPlanet, Radius: radius, Sprite: sprite},
			&components.Detail{Tier: components.TierCulled},
		)
	}

	// Ringed giants
	for i := 0; i < ringedCount; i++ {
		x, y := g.scatterPoint(scatterRadius)
		g.staticMapper.NewEntity(
			&components.Position{X: x, Y: y},
			&components.Body{
				Kind:   components.KindRing,
				Radius: 200 + g.rng.Float32()*200,
				Sprite: fmt.Sprintf("ring_%d", g.rng.Intn(3)),
			},
			&components.Detail{Tier: components.TierCulled},
		)
	}

	// Drifting dust, clustered so the spatial index sees uneven density
	for c := 0; c < dustClusters; c++ {
		cx, cy := g.scatterPoint(scatterRadius)
		for i := 0; i < dustPerCluster; i++ {
			ox, oy := g.scatterPoint(600)
			angle := g.rng.Float64() * 2 * math.Pi
			speed := 2 + g.rng.Float32()*8
			g.moverMapper.NewEntity(
				&components.Position{X: cx + ox, Y: cy + oy},
				&components.Velocity{
					X: float32(math.Cos(angle)) * speed,
					Y: float32(math.Sin(angle)) * speed,
				},
				&components.Body{Kind: components.KindParticle, Radius: 2, Sprite: "dust"},
				&components.Detail{Tier: components.TierCulled},
			)
		}
	}

	// Player ship at the origin
	g.player = g.moverMapper.NewEntity(
		&components.Position{},
		&components.Velocity{},
		&components.Body{Kind: components.KindPlayer, Radius: 24, Sprite: "ship"},
		&components.Detail{Tier: components.TierHigh},
	)
}

// scatterPoint returns a uniform point in a disc of the given radius.
func (g *Game) scatterPoint(radius float32) (float32, float32) {
	angle := g.rng.Float64() * 2 * math.Pi
	r := float64(radius) * math.Sqrt(g.rng.Float64())
	return float32(r * math.Cos(angle)), float32(r * math.Sin(angle))
}
