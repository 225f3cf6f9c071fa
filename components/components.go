// Package components defines ECS components for tracked world objects.
package components

// Kind identifies the class of a tracked object. Per-kind cull distances
// and render handling switch on this instead of string tags so a missing
// case is a compile error, not a silent fallthrough.
type Kind uint8

const (
	KindPlanet Kind = iota
	KindRing
	KindParticle
	KindPlayer

	// KindCount is the number of kinds; keep it last.
	KindCount
)

// String returns the kind name for logs and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindRing:
		return "ring"
	case KindParticle:
		return "particle"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Tier is the level of detail assigned to an object each frame.
type Tier uint8

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
	TierCulled
)

// String returns the tier name for logs and diagnostics.
func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	case TierCulled:
		return "culled"
	default:
		return "unknown"
	}
}

// Position represents an object's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an object's velocity.
type Velocity struct {
	X, Y float32
}

// Body holds the physical identity of a tracked object.
type Body struct {
	Kind   Kind
	Radius float32
	Sprite string // atlas sprite name
}

// Detail is the per-frame annotation written by the culling pass.
// Gameplay owns the object; the performance core only updates this.
type Detail struct {
	Distance float32 // distance from camera center, world units
	Tier     Tier
}

// Emitter marks an object as an ambient sound source. Streams for
// emitters near the player are preloaded before they are audible.
type Emitter struct {
	Sound string  // cached stream name
	Range float32 // audible radius in world units
	Loop  bool
}
