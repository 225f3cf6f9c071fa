package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrell/stardrift/camera"
	"github.com/mkrell/stardrift/systems"
)

// DrawParticles renders pooled effect particles directly (no atlas; they
// are screen-space primitives). Alpha fades with remaining life.
func DrawParticles(cam *camera.Camera, particles []*systems.Particle) {
	for _, p := range particles {
		if !cam.IsVisible(p.X, p.Y, p.Size) {
			continue
		}
		sx, sy := cam.WorldToScreen(p.X, p.Y)

		frac := float32(0)
		if p.MaxLife > 0 {
			frac = p.Life / p.MaxLife
		}

		var color rl.Color
		switch p.Kind {
		case systems.ParticleExhaust:
			color = rl.Color{R: 255, G: 180, B: 80, A: uint8(200 * frac)}
		case systems.ParticleImpact:
			color = rl.Color{R: 220, G: 220, B: 220, A: uint8(230 * frac)}
		case systems.ParticleTwinkle:
			color = rl.Color{R: 200, G: 210, B: 255, A: uint8(160 * frac)}
		}

		size := p.Size * cam.Zoom
		if size < 1 {
			rl.DrawPixelV(rl.Vector2{X: sx, Y: sy}, color)
		} else {
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
		}
	}
}
