package systems

import (
	"github.com/mkrell/stardrift/components"
)

// LODParams holds the baseline detail thresholds and per-kind cull distances.
// Thresholds are ascending: High < Medium < Low. An effective distance below
// High gets full detail; beyond Low the object is culled.
type LODParams struct {
	HighDistance   float32
	MediumDistance float32
	LowDistance    float32

	// CullDistance caps visibility per object kind regardless of tier
	// thresholds. Zero disables the cap for that kind.
	CullDistance [components.KindCount]float32
}

// LODSelector maps distance and camera scale to a detail tier.
// The baseline thresholds are fixed; the QualityController moves detail
// up and down by adjusting the threshold scale.
type LODSelector struct {
	params LODParams
	scale  float32 // current threshold scale in [minScale, maxScale]
}

// NewLODSelector creates a selector with the given baseline parameters.
func NewLODSelector(params LODParams) *LODSelector {
	return &LODSelector{params: params, scale: 1.0}
}

// SetScale sets the threshold scale. Callers (the quality controller)
// are responsible for clamping; the selector only refuses non-positives.
func (s *LODSelector) SetScale(scale float32) {
	if scale <= 0 {
		return
	}
	s.scale = scale
}

// Scale returns the current threshold scale.
func (s *LODSelector) Scale() float32 {
	return s.scale
}

// Thresholds returns the effective (scaled) tier thresholds.
func (s *LODSelector) Thresholds() (high, medium, low float32) {
	return s.params.HighDistance * s.scale,
		s.params.MediumDistance * s.scale,
		s.params.LowDistance * s.scale
}

// Calculate returns the detail tier for an object of the given kind at the
// given distance from the camera. cameraScale is the inverse zoom: zoomed-out
// views raise the effective distance so more objects land in cheap tiers.
// Monotonic: a farther object never gets more detail than a nearer one.
func (s *LODSelector) Calculate(distance, cameraScale float32, kind components.Kind) components.Tier {
	if cull := s.params.CullDistance[kind]; cull > 0 && distance > cull {
		return components.TierCulled
	}

	d := distance * cameraScale
	high, medium, low := s.Thresholds()

	switch {
	case d <= high:
		return components.TierHigh
	case d <= medium:
		return components.TierMedium
	case d <= low:
		return components.TierLow
	default:
		return components.TierCulled
	}
}
