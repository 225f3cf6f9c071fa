// Package atlas packs many small sprites into few large texture pages.
package atlas

import (
	"fmt"
	"log/slog"
	"sort"
)

// Sprite is one entry of the static sprite manifest.
type Sprite struct {
	Name string
	W, H int
}

// Placement records where a sprite landed: pixel rect on its page plus
// normalized UV bounds for draw-time lookup.
type Placement struct {
	Name string
	Page int
	X, Y int
	W, H int

	// Normalized UV bounds relative to the page
	U1, V1, U2, V2 float32
}

// Page is one texture page of the packed atlas.
type Page struct {
	ID         int
	W, H       int
	Placements []Placement
}

// Atlas is the immutable result of packing a sprite manifest.
type Atlas struct {
	Pages  []Page
	byName map[string]Placement
}

// Lookup returns the placement for a sprite name. O(1).
func (a *Atlas) Lookup(name string) (Placement, bool) {
	p, ok := a.byName[name]
	return p, ok
}

// SpriteCount returns the number of packed sprites.
func (a *Atlas) SpriteCount() int {
	return len(a.byName)
}

// Packer places sprites shelf-style onto fixed-size pages.
type Packer struct {
	maxSize int // page width and height
	padding int // pixels between placed sprites
}

// NewPacker creates a packer for pages of maxSize x maxSize pixels.
func NewPacker(maxSize, padding int) *Packer {
	if maxSize < 1 {
		maxSize = 2048
	}
	if padding < 0 {
		padding = 0
	}
	return &Packer{maxSize: maxSize, padding: padding}
}

// Pack places all sprites and returns the atlas. Sprites are sorted by area
// descending, then placed along shelves: advance along the current row while
// the sprite fits, start a new row when it does not, start a new page when
// the page height would be exceeded. Sprites too large for an empty page are
// skipped with a warning; duplicate names are an error.
func (p *Packer) Pack(sprites []Sprite) (*Atlas, error) {
	sorted := make([]Sprite, len(sprites))
	copy(sorted, sprites)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].W*sorted[i].H > sorted[j].W*sorted[j].H
	})

	atlas := &Atlas{byName: make(map[string]Placement, len(sorted))}

	pageID := 0
	cursorX, cursorY, rowH := p.padding, p.padding, 0
	current := Page{ID: pageID, W: p.maxSize, H: p.maxSize}

	flush := func() {
		atlas.Pages = append(atlas.Pages, current)
		pageID++
		current = Page{ID: pageID, W: p.maxSize, H: p.maxSize}
		cursorX, cursorY, rowH = p.padding, p.padding, 0
	}

	for _, s := range sorted {
		if s.W <= 0 || s.H <= 0 {
			slog.Warn("atlas: skipping degenerate sprite", "name", s.Name, "w", s.W, "h", s.H)
			continue
		}
		if _, dup := atlas.byName[s.Name]; dup {
			return nil, fmt.Errorf("atlas: duplicate sprite name %q", s.Name)
		}
		if s.W+2*p.padding > p.maxSize || s.H+2*p.padding > p.maxSize {
			slog.Warn("atlas: sprite exceeds page size, skipping",
				"name", s.Name, "w", s.W, "h", s.H, "max", p.maxSize)
			continue
		}

		// Advance to the next row when the sprite does not fit across
		if cursorX+s.W+p.padding > p.maxSize {
			cursorX = p.padding
			cursorY += rowH + p.padding
			rowH = 0
		}
		// Start a new page when the sprite does not fit down
		if cursorY+s.H+p.padding > p.maxSize {
			flush()
		}

		size := float32(p.maxSize)
		placed := Placement{
			Name: s.Name,
			Page: pageID,
			X:    cursorX,
			Y:    cursorY,
			W:    s.W,
			H:    s.H,
			U1:   float32(cursorX) / size,
			V1:   float32(cursorY) / size,
			U2:   float32(cursorX+s.W) / size,
			V2:   float32(cursorY+s.H) / size,
		}

		current.Placements = append(current.Placements, placed)
		atlas.byName[s.Name] = placed

		cursorX += s.W + p.padding
		if s.H > rowH {
			rowH = s.H
		}
	}

	// Keep the last page if it holds anything, or if nothing was packed at
	// all (an empty manifest still yields one empty page).
	if len(current.Placements) > 0 || len(atlas.Pages) == 0 {
		atlas.Pages = append(atlas.Pages, current)
	}

	return atlas, nil
}
