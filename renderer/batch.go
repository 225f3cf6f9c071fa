// Package renderer issues draw calls for the performance core, batching
// sprites by atlas page to minimize backend state switches.
package renderer

import (
	"log/slog"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrell/stardrift/atlas"
)

// DrawItem is one sprite draw request in screen coordinates.
type DrawItem struct {
	Sprite   string
	X, Y     float32 // screen position of the sprite center
	Scale    float32
	Rotation float32 // degrees
	Tint     rl.Color
}

type queuedItem struct {
	item      DrawItem
	placement atlas.Placement
}

// Batcher accumulates draw requests for one frame and flushes them grouped
// by atlas page, so the backend binds each page texture at most once per
// frame. In headless mode every call degrades to a no-op with a single
// warning.
type Batcher struct {
	atlas *atlas.Atlas
	pages map[int]rl.Texture2D

	queue []queuedItem

	headless       bool
	warnedHeadless bool
	warnedMissing  map[string]bool

	// LastSwitches counts texture binds of the last flush, for the HUD.
	LastSwitches int
}

// NewBatcher creates a batcher over a packed atlas.
func NewBatcher(a *atlas.Atlas, headless bool) *Batcher {
	return &Batcher{
		atlas:         a,
		pages:         make(map[int]rl.Texture2D),
		headless:      headless,
		warnedMissing: make(map[string]bool),
	}
}

// SetPageTexture binds the uploaded texture for an atlas page.
func (b *Batcher) SetPageTexture(page int, tex rl.Texture2D) {
	b.pages[page] = tex
}

// Queue adds a draw request. An unknown sprite name logs one warning and
// is skipped; callers never fail on a missing resource.
func (b *Batcher) Queue(item DrawItem) bool {
	placement, ok := b.atlas.Lookup(item.Sprite)
	if !ok {
		if !b.warnedMissing[item.Sprite] {
			slog.Warn("sprite not in atlas, skipping", "sprite", item.Sprite)
			b.warnedMissing[item.Sprite] = true
		}
		return false
	}
	b.queue = append(b.queue, queuedItem{item: item, placement: placement})
	return true
}

// Flush issues all queued draws grouped by page, then clears the queue.
func (b *Batcher) Flush() {
	if b.headless {
		if !b.warnedHeadless {
			slog.Warn("render backend unavailable, draw calls are no-ops")
			b.warnedHeadless = true
		}
		b.queue = b.queue[:0]
		return
	}

	// Group by page so each texture is bound once
	sort.SliceStable(b.queue, func(i, j int) bool {
		return b.queue[i].placement.Page < b.queue[j].placement.Page
	})

	b.LastSwitches = 0
	currentPage := -1

	for _, q := range b.queue {
		if q.placement.Page != currentPage {
			currentPage = q.placement.Page
			b.LastSwitches++
		}

		tex, ok := b.pages[currentPage]
		if !ok {
			continue
		}

		src := rl.Rectangle{
			X:      float32(q.placement.X),
			Y:      float32(q.placement.Y),
			Width:  float32(q.placement.W),
			Height: float32(q.placement.H),
		}
		w := float32(q.placement.W) * q.item.Scale
		h := float32(q.placement.H) * q.item.Scale
		dst := rl.Rectangle{
			X:      q.item.X,
			Y:      q.item.Y,
			Width:  w,
			Height: h,
		}
		origin := rl.Vector2{X: w / 2, Y: h / 2}

		rl.DrawTexturePro(tex, src, dst, origin, q.item.Rotation, q.item.Tint)
	}

	b.queue = b.queue[:0]
}

// QueueLen returns the number of pending draw requests.
func (b *Batcher) QueueLen() int {
	return len(b.queue)
}
