package systems

import (
	"time"
)

// QualityParams holds the tunables of the adaptive quality feedback loop.
// All ranges are explicit so the controller cannot drift out of bounds
// over long sessions.
type QualityParams struct {
	TargetFrameTime time.Duration

	// Ratio bounds on avg/target frame time. Above DropRatio detail is
	// reduced; below RestoreRatio it is restored.
	DropRatio    float32
	RestoreRatio float32

	// Threshold scale adjustment per reaction, clamped to [MinScale, MaxScale].
	DecayFactor  float32 // < 1
	GrowthFactor float32 // > 1
	MinScale     float32
	MaxScale     float32

	// Global quality scalar, clamped to [MinQuality, 1].
	MinQuality    float32
	RampPerSecond float32 // max quality change per second; avoids popping
}

// QualityController is the closed feedback loop between measured frame time
// and rendering/audio fidelity. It owns two outputs: the LOD threshold scale
// and the global quality scalar. Both are pure functions of the observed
// frame-time history and the configured ranges.
type QualityController struct {
	params QualityParams

	scale   float32 // LOD threshold scale in [MinScale, MaxScale]
	quality float32 // global quality scalar in [MinQuality, 1]
}

// NewQualityController creates a controller at full quality.
func NewQualityController(params QualityParams) *QualityController {
	if params.TargetFrameTime <= 0 {
		params.TargetFrameTime = time.Second / 60
	}
	return &QualityController{
		params:  params,
		scale:   1.0,
		quality: 1.0,
	}
}

// Quality returns the global quality scalar in [MinQuality, 1].
func (c *QualityController) Quality() float32 {
	return c.quality
}

// ThresholdScale returns the current LOD threshold scale.
func (c *QualityController) ThresholdScale() float32 {
	return c.scale
}

// Update runs one control step. avgFrameTime is the rolling average measured
// by the performance monitor; dt is the frame delta in seconds. Applied once
// per frame, at the frame boundary.
func (c *QualityController) Update(avgFrameTime time.Duration, dt float32) {
	if avgFrameTime <= 0 || dt <= 0 {
		return
	}

	ratio := float32(float64(avgFrameTime) / float64(c.params.TargetFrameTime))
	step := c.params.RampPerSecond * dt

	switch {
	case ratio > c.params.DropRatio:
		// Over budget: shrink detail thresholds and ramp quality down.
		c.scale = clamp32(c.scale*c.params.DecayFactor, c.params.MinScale, c.params.MaxScale)
		c.quality = clamp32(c.quality-step, c.params.MinQuality, 1.0)
	case ratio < c.params.RestoreRatio:
		// Headroom: restore detail and ramp quality back up.
		c.scale = clamp32(c.scale*c.params.GrowthFactor, c.params.MinScale, c.params.MaxScale)
		c.quality = clamp32(c.quality+step, c.params.MinQuality, 1.0)
	}
	// Between the bounds the controller holds steady; hysteresis in the
	// band keeps borderline frame times from flapping detail every frame.
}

// clamp32 restricts a value to a range.
func clamp32(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
