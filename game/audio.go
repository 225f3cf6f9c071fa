package game

import (
	"github.com/mkrell/stardrift/audio"
)

// preloadBaseSounds warms the cache with sounds that can fire on any
// frame, so the first playback never stalls on a cache miss.
func (g *Game) preloadBaseSounds() {
	g.streams.Load("engine_thrust", audio.CategorySFX, audio.LoadOptions{})
	g.streams.Load("impact_small", audio.CategorySFX, audio.LoadOptions{})
	g.streams.Load("ui_click", audio.CategoryUI, audio.LoadOptions{})
	g.streams.Load("music_drift", audio.CategoryMusic, audio.LoadOptions{Freq: 110})
}

// updateAudio keeps emitter playback in sync with player proximity:
// preload ambient streams a bit before they are audible, start looped
// playback inside the emitter range, and stop it on the way out.
func (g *Game) updateAudio() {
	px, py := g.playerPos()
	preload := float32(g.cfg.Stream.PreloadRange)

	query := g.emitterFilter.Query()
	for query.Next() {
		pos, em := query.Get()
		e := query.Entity()

		dx := pos.X - px
		dy := pos.Y - py
		distSq := dx*dx + dy*dy

		inRange := distSq <= em.Range*em.Range
		nearby := distSq <= (em.Range+preload)*(em.Range+preload)

		id, playing := g.emitterStreams[e]

		switch {
		case inRange && !playing:
			g.streams.Load(em.Sound, audio.CategoryAmbient, audio.LoadOptions{})
			if sid, ok := g.streams.Play(em.Sound, audio.PlayOptions{Loop: em.Loop}); ok {
				g.emitterStreams[e] = sid
			}
		case !inRange && playing:
			g.streams.Stop(id)
			delete(g.emitterStreams, e)
		case nearby && !playing:
			// Warm the cache before the emitter becomes audible
			g.streams.Load(em.Sound, audio.CategoryAmbient, audio.LoadOptions{})
		}
	}
}

// updateThrustSound starts the engine loop when thrust begins and stops
// it when thrust ends.
func (g *Game) updateThrustSound() {
	if g.thrusting && g.thrustStream == 0 {
		if id, ok := g.streams.Play("engine_thrust", audio.PlayOptions{Loop: true}); ok {
			g.thrustStream = id
		}
		return
	}
	if !g.thrusting && g.thrustStream != 0 {
		g.streams.Stop(g.thrustStream)
		g.thrustStream = 0
	}
}

// playImpact fires a one-shot impact sound and particle burst.
func (g *Game) playImpact(x, y float32) {
	g.particles.EmitImpact(x, y)
	g.streams.Play("impact_small", audio.PlayOptions{})
}
