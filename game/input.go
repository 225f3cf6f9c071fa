package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrell/stardrift/audio"
)

const turnRate = 3.0 // radians per second

// HandleInput polls keyboard and mouse state. Windowed mode only.
func (g *Game) HandleInput(dt float32) {
	if g.headless {
		return
	}

	// Ship control
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		g.playerHeading -= turnRate * dt
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		g.playerHeading += turnRate * dt
	}
	g.thrusting = rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp)

	// Free camera pan with the middle mouse button
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		g.cam.Pan(-delta.X/g.cam.Zoom, -delta.Y/g.cam.Zoom)
	}

	// Zoom at the wheel
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
		g.streams.Play("ui_click", audio.PlayOptions{})
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.showHUD = !g.showHUD
		g.streams.Play("ui_click", audio.PlayOptions{})
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.DumpReport()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.cam.Reset()
	}

	// Debug impact burst at the cursor
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		mouse := rl.GetMousePosition()
		wx, wy := g.cam.ScreenToWorld(mouse.X, mouse.Y)
		g.playImpact(wx, wy)
	}
}
