package game

import (
	"math"

	"github.com/mkrell/stardrift/components"
	"github.com/mkrell/stardrift/telemetry"
)

// Update advances simulation state by dt seconds. The phase order is
// fixed: metrics feed the quality controller, quality reshapes the LOD
// thresholds before the spatial rebuild, and culling runs before any
// per-entity work so hidden entities cost nothing downstream.
func (g *Game) Update(dt float32) {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseMetrics)
	stats := g.perf.Stats()

	g.perf.StartPhase(telemetry.PhaseQuality)
	if !g.paused {
		g.quality.Update(stats.AvgFrameTime, dt)
	}
	g.lod.SetScale(g.quality.ThresholdScale())
	g.particles.SetQuality(g.quality.Quality())

	g.perf.StartPhase(telemetry.PhaseSpatial)
	g.culler.Rebuild(g.cam, g.objFilter)

	g.perf.StartPhase(telemetry.PhaseCulling)
	g.visible = g.culler.Cull(g.cam, g.posMap, g.bodyMap, g.detailMap)

	g.perf.StartPhase(telemetry.PhaseParticles)
	if !g.paused {
		g.simulate(dt)
		g.particles.Update(dt)
	}

	g.perf.StartPhase(telemetry.PhaseStreams)
	g.updateAudio()
	g.updateThrustSound()
	g.streams.Update(g.quality.Quality())

	g.tick++
	g.maybeLogStats(dt)
}

// UpdateHeadless runs one frame without a render phase and closes it out.
func (g *Game) UpdateHeadless(dt float32) {
	g.Update(dt)
	g.perf.EndFrame()
}

// simulate moves dust and the player and emits particles where the
// player can see them.
func (g *Game) simulate(dt float32) {
	px, py := g.playerPos()

	query := g.moverFilter.Query()
	for query.Next() {
		pos, vel, body, det := query.Get()
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		// Dust twinkles only at high detail; culled movers do nothing
		if body.Kind == components.KindParticle && det.Tier == components.TierHigh {
			g.particles.EmitTwinkle(pos.X, pos.Y)
		}
	}

	// Player thrust
	if g.thrusting {
		vel := g.velMap.Get(g.player)
		if vel != nil {
			vel.X += float32(math.Cos(float64(g.playerHeading))) * thrustAccel * dt
			vel.Y += float32(math.Sin(float64(g.playerHeading))) * thrustAccel * dt
			g.particles.EmitExhaust(px, py, g.playerHeading)
		}
	}

	// Gentle drag so the ship settles
	if vel := g.velMap.Get(g.player); vel != nil {
		vel.X *= 1 - dragPerSecond*dt
		vel.Y *= 1 - dragPerSecond*dt
	}

	g.cam.Follow(px, py, cameraStiffness, dt)
}

const (
	thrustAccel     = 220.0
	dragPerSecond   = 0.6
	cameraStiffness = 4.0
)

// playerPos returns the player position, falling back to the origin if
// the player entity is gone.
func (g *Game) playerPos() (float32, float32) {
	pos := g.posMap.Get(g.player)
	if pos == nil {
		return 0, 0
	}
	return pos.X, pos.Y
}
