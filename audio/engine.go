package audio

import (
	"log/slog"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// mixRate is the speaker mixing rate. Entries loaded at lower tiers are
// resampled up into the mix.
const mixRate = beep.SampleRate(48000)

// Voice is a pooled playback handle. Its zero value is idle; the pool
// reset routine restores it to that state between uses.
type Voice struct {
	ctrl *beep.Ctrl
}

// reset clears all playback state. Called by the pool on release.
func (v *Voice) reset() {
	v.ctrl = nil
}

// Engine owns the speaker and mixer. When no audio backend is available
// (headless or failed device init) it stays disabled: every call becomes a
// no-op returning neutral success, and exactly one warning is logged.
type Engine struct {
	mixer       *beep.Mixer
	initialized bool
	disabled    bool
}

// NewEngine creates an engine. Call Init before playback.
func NewEngine() *Engine {
	return &Engine{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Failure is not an error: the engine degrades to
// silent mode so a headless host keeps running.
func (e *Engine) Init() {
	if e.initialized || e.disabled {
		return
	}
	if err := speaker.Init(mixRate, mixRate.N(time.Millisecond*100)); err != nil {
		slog.Warn("audio backend unavailable, running silent", "error", err)
		e.disabled = true
		return
	}
	speaker.Play(e.mixer)
	e.initialized = true
}

// Disable puts the engine into silent mode without touching the speaker.
// Used by headless hosts that never want a device.
func (e *Engine) Disable() {
	e.disabled = true
}

// Enabled reports whether the engine produces audible output.
func (e *Engine) Enabled() bool {
	return e.initialized && !e.disabled
}

// Close stops all playback.
func (e *Engine) Close() {
	if !e.initialized {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	e.initialized = false
}

// StartVoice begins playback of a stream on the given handle.
// Silent mode still succeeds; the voice just carries no streamer.
func (e *Engine) StartVoice(v *Voice, entry *CachedStream, loop bool) {
	if !e.Enabled() {
		return
	}

	var s beep.Streamer
	if loop {
		s = beep.Loop(-1, newTone(entry))
	} else {
		s = beep.Take(beep.SampleRate(entry.SampleRate).N(entry.Duration), newTone(entry))
	}
	if entry.SampleRate != int(mixRate) {
		s = beep.Resample(3, beep.SampleRate(entry.SampleRate), mixRate, s)
	}

	ctrl := &beep.Ctrl{Streamer: s}
	v.ctrl = ctrl

	speaker.Lock()
	e.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopVoice halts playback on the handle. Safe on idle voices.
func (e *Engine) StopVoice(v *Voice) {
	if v.ctrl == nil {
		return
	}
	if e.Enabled() {
		speaker.Lock()
		v.ctrl.Paused = true
		v.ctrl.Streamer = nil
		speaker.Unlock()
	}
	v.ctrl = nil
}

// tone is a procedural sine voice with a soft attack/decay envelope,
// standing in for decoded sample data.
type tone struct {
	sr    beep.SampleRate
	freq  float64
	total int
	pos   int
}

func newTone(entry *CachedStream) *tone {
	return &tone{
		sr:    beep.SampleRate(entry.SampleRate),
		freq:  entry.Freq,
		total: beep.SampleRate(entry.SampleRate).N(entry.Duration),
	}
}

// Stream implements beep.Streamer.
func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		phase := float64(t.pos) / float64(t.sr)
		v := math.Sin(2 * math.Pi * t.freq * phase)

		// Envelope: 50ms attack, linear decay over the final 20%
		env := 1.0
		attack := float64(t.sr) * 0.05
		if float64(t.pos) < attack {
			env = float64(t.pos) / attack
		} else if t.total > 0 {
			rem := float64(t.total - t.pos)
			tail := float64(t.total) * 0.2
			if rem < tail {
				env = rem / tail
			}
		}

		v *= env * 0.25
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		if t.total > 0 && t.pos >= t.total {
			t.pos = 0 // wrap so Loop keeps a continuous phase
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (t *tone) Err() error {
	return nil
}

// Len, Position and Seek make tone a beep.StreamSeeker so it can loop.

func (t *tone) Len() int {
	return t.total
}

func (t *tone) Position() int {
	return t.pos
}

func (t *tone) Seek(p int) error {
	t.pos = p
	return nil
}
