// Package audio implements the stream cache: named sound resources with
// memory-budgeted LRU eviction and priority-based playback preemption.
package audio

// Category classifies a cached stream. Priority and streaming mode are
// derived from the category.
type Category uint8

const (
	CategoryAmbient Category = iota
	CategorySFX
	CategoryMusic
	CategoryUI
)

// String returns the category name for logs and diagnostics.
func (c Category) String() string {
	switch c {
	case CategoryAmbient:
		return "ambient"
	case CategorySFX:
		return "sfx"
	case CategoryMusic:
		return "music"
	case CategoryUI:
		return "ui"
	default:
		return "unknown"
	}
}

// Priority returns the preemption priority of the category. Higher values
// survive longer when the concurrent-stream budget is exceeded.
func (c Category) Priority() int {
	switch c {
	case CategoryUI:
		return 4
	case CategoryMusic:
		return 3
	case CategorySFX:
		return 2
	case CategoryAmbient:
		return 1
	default:
		return 0
	}
}

// Streaming reports whether streams of this category decode progressively
// instead of loading upfront. Long-form categories stream.
func (c Category) Streaming() bool {
	return c == CategoryMusic || c == CategoryAmbient
}
