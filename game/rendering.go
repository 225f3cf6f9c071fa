package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/mkrell/stardrift/components"
	"github.com/mkrell/stardrift/renderer"
	"github.com/mkrell/stardrift/telemetry"
)

// LoadPageTextures uploads a placeholder texture per atlas page. Call
// after the window exists; headless runs skip this.
func (g *Game) LoadPageTextures() {
	if g.headless {
		return
	}
	for _, page := range g.sprites.Pages {
		img := rl.GenImageChecked(page.W, page.H, 16, 16,
			rl.NewColor(70, 70, 110, 255), rl.NewColor(40, 40, 70, 255))
		tex := rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		g.batcher.SetPageTexture(page.ID, tex)
	}
}

// Draw renders the current frame and closes out the perf sample.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)

	rl.ClearBackground(rl.NewColor(8, 8, 16, 255))

	g.drawTier(g.visible.High, components.TierHigh)
	g.drawTier(g.visible.Medium, components.TierMedium)
	g.drawTier(g.visible.Low, components.TierLow)
	g.batcher.Flush()

	renderer.DrawParticles(g.cam, g.particles.Particles())

	if g.showHUD {
		g.drawHUD()
	}

	g.perf.EndFrame()
}

// drawTier queues sprites for one detail tier. Lower tiers use smaller
// sprite variants where the atlas has them.
func (g *Game) drawTier(entities []ecs.Entity, tier components.Tier) {
	for _, e := range entities {
		pos := g.posMap.Get(e)
		body := g.bodyMap.Get(e)
		if pos == nil || body == nil {
			continue
		}
		if !g.cam.IsVisible(pos.X, pos.Y, body.Radius) {
			continue
		}

		sx, sy := g.cam.WorldToScreen(pos.X, pos.Y)
		sprite := tierSprite(body.Sprite, tier)
		if _, ok := g.sprites.Lookup(sprite); !ok {
			// Variant not in the atlas, fall back to full detail
			sprite = body.Sprite
		}

		rotation := float32(0)
		if e == g.player {
			rotation = g.playerHeading * 180 / 3.14159265
		}

		g.batcher.Queue(renderer.DrawItem{
			Sprite:   sprite,
			X:        sx,
			Y:        sy,
			Scale:    g.spriteScale(sprite, body.Radius) * g.cam.Zoom,
			Rotation: rotation,
			Tint:     rl.White,
		})
	}
}

// tierSprite maps a base sprite name to its per-tier variant.
func tierSprite(base string, tier components.Tier) string {
	switch tier {
	case components.TierMedium:
		return base + "_med"
	case components.TierLow:
		return base + "_low"
	default:
		return base
	}
}

// spriteScale sizes the sprite so the drawn diameter matches the body
// radius regardless of the variant's pixel size.
func (g *Game) spriteScale(sprite string, radius float32) float32 {
	pl, ok := g.sprites.Lookup(sprite)
	if !ok || pl.W == 0 {
		return 1
	}
	return radius * 2 / float32(pl.W)
}

// drawHUD renders the performance overlay.
func (g *Game) drawHUD() {
	stats := g.perf.Stats()
	cache := g.streams.Cache()

	const panelW, panelH = 260, 470
	g.hud.DrawPanel(10, 10, panelW, panelH)

	x, y := int32(22), int32(20)
	y = g.hud.DrawSectionHeader(x, y, "FRAME")
	y = g.hud.DrawLabelValue(x, y, "fps", fmt.Sprintf("%.1f", stats.FPS))
	y = g.hud.DrawLabelValue(x, y, "avg", stats.AvgFrameTime.Round(10*time.Microsecond).String())
	y = g.hud.DrawLabelValue(x, y, "p95", stats.P95FrameTime.Round(10*time.Microsecond).String())

	y = g.hud.DrawSectionHeader(x, y, "QUALITY")
	y = g.hud.DrawBar(x, y, "quality", g.quality.Quality(), 180)
	y = g.hud.DrawBar(x, y, "lod scale", g.quality.ThresholdScale(), 180)

	y = g.hud.DrawSectionHeader(x, y, "VISIBLE")
	y = g.hud.DrawLabelValue(x, y, "high", fmt.Sprintf("%d", len(g.visible.High)))
	y = g.hud.DrawLabelValue(x, y, "medium", fmt.Sprintf("%d", len(g.visible.Medium)))
	y = g.hud.DrawLabelValue(x, y, "low", fmt.Sprintf("%d", len(g.visible.Low)))
	y = g.hud.DrawLabelValue(x, y, "particles", fmt.Sprintf("%d", g.particles.Count()))

	y = g.hud.DrawSectionHeader(x, y, "PHASES")
	for _, sys := range g.registry.All() {
		pct, ok := stats.PhasePct[sys.ID]
		if !ok {
			continue
		}
		y = g.hud.DrawLabelValue(x, y, sys.Name, fmt.Sprintf("%.1f%%", pct))
	}

	y = g.hud.DrawSectionHeader(x, y, "AUDIO")
	y = g.hud.DrawLabelValue(x, y, "streams",
		fmt.Sprintf("%d/%d", g.streams.ActiveCount(), g.streams.MaxConcurrent()))
	y = g.hud.DrawLabelValue(x, y, "cache",
		fmt.Sprintf("%.1f/%.0f MB",
			float64(cache.TotalMemory())/(1024*1024),
			float64(cache.Threshold())/(1024*1024)))
	g.hud.DrawLabelValue(x, y, "tier", fmt.Sprintf("%d Hz", g.streams.Tier().SampleRate))

	if g.paused {
		rl.DrawText("PAUSED", int32(g.width)/2-40, 20, 20, rl.Yellow)
	}
}
