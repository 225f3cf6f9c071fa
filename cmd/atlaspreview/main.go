// Atlas packing preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/atlaspreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/mkrell/stardrift/atlas"
)

const (
	windowWidth  = 1000
	windowHeight = 760
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

// PackParams holds the packer and manifest knobs exposed on the panel.
type PackParams struct {
	PageSize    int
	Padding     int
	SpriteCount int
	MaxSprite   int
	Seed        int64
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Atlas Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := PackParams{
		PageSize:    2048,
		Padding:     2,
		SpriteCount: 120,
		MaxSprite:   256,
		Seed:        1,
	}

	packed := repack(params)
	page := 0
	needsRepack := false

	for !rl.WindowShouldClose() {
		if needsRepack {
			packed = repack(params)
			if page >= len(packed.Pages) {
				page = len(packed.Pages) - 1
			}
			needsRepack = false
		}

		if rl.IsKeyPressed(rl.KeyRight) && page < len(packed.Pages)-1 {
			page++
		}
		if rl.IsKeyPressed(rl.KeyLeft) && page > 0 {
			page--
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawPage(packed.Pages[page], params.PageSize)

		statsY := int32(previewSize + 25)
		occupied := 0
		for _, pl := range packed.Pages[page].Placements {
			occupied += pl.W * pl.H
		}
		fill := float64(occupied) / float64(params.PageSize*params.PageSize) * 100
		rl.DrawText(fmt.Sprintf("Page %d/%d  Sprites: %d  Fill: %.1f%%",
			page+1, len(packed.Pages), len(packed.Pages[page].Placements), fill),
			15, statsY, 16, rl.DarkGray)
		rl.DrawText("Left/Right: switch page", 15, statsY+20, 16, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Packer Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Page size (px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPage := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"256", "4096",
			float32(params.PageSize), 256, 4096,
		)
		rl.DrawText(fmt.Sprintf("%d", params.PageSize), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newPage) != params.PageSize {
			params.PageSize = int(newPage)
			needsRepack = true
		}
		panelY += 35

		rl.DrawText("Padding (px between sprites)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPad := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "16",
			float32(params.Padding), 0, 16,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Padding), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newPad) != params.Padding {
			params.Padding = int(newPad)
			needsRepack = true
		}
		panelY += 35

		rl.DrawText("Sprite count", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"10", "600",
			float32(params.SpriteCount), 10, 600,
		)
		rl.DrawText(fmt.Sprintf("%d", params.SpriteCount), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCount) != params.SpriteCount {
			params.SpriteCount = int(newCount)
			needsRepack = true
		}
		panelY += 35

		rl.DrawText("Max sprite size (px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newMax := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"16", "1024",
			float32(params.MaxSprite), 16, 1024,
		)
		rl.DrawText(fmt.Sprintf("%d", params.MaxSprite), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newMax) != params.MaxSprite {
			params.MaxSprite = int(newMax)
			needsRepack = true
		}
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 28}, "Reroll sizes") {
			params.Seed++
			needsRepack = true
		}

		rl.EndDrawing()
	}
}

// repack builds a random manifest from params and packs it.
func repack(params PackParams) *atlas.Atlas {
	rng := rand.New(rand.NewSource(params.Seed))
	sprites := make([]atlas.Sprite, params.SpriteCount)
	for i := range sprites {
		w := 8 + rng.Intn(params.MaxSprite-7)
		h := 8 + rng.Intn(params.MaxSprite-7)
		sprites[i] = atlas.Sprite{Name: fmt.Sprintf("sprite_%d", i), W: w, H: h}
	}

	packed, err := atlas.NewPacker(params.PageSize, params.Padding).Pack(sprites)
	if err != nil {
		// Generated names are unique, so this cannot fire
		panic(err)
	}
	return packed
}

// drawPage renders placement rectangles scaled into the preview square.
func drawPage(page atlas.Page, pageSize int) {
	scale := float32(previewSize) / float32(pageSize)

	rl.DrawRectangle(10, 10, previewSize, previewSize, rl.NewColor(240, 240, 245, 255))
	rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

	for i, pl := range page.Placements {
		x := int32(10 + float32(pl.X)*scale)
		y := int32(10 + float32(pl.Y)*scale)
		w := int32(float32(pl.W) * scale)
		h := int32(float32(pl.H) * scale)

		hue := float32(i%12) / 12 * 360
		rl.DrawRectangle(x, y, w, h, rl.ColorFromHSV(hue, 0.5, 0.85))
		rl.DrawRectangleLines(x, y, w, h, rl.DarkGray)
	}
}
