package atlas

import (
	"fmt"
	"testing"
)

func overlaps(a, b Placement) bool {
	if a.Page != b.Page {
		return false
	}
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestPackMixedSizes(t *testing.T) {
	sprites := []Sprite{
		{Name: "big_0", W: 64, H: 64},
		{Name: "big_1", W: 64, H: 64},
		{Name: "small_0", W: 32, H: 32},
		{Name: "small_1", W: 32, H: 32},
		{Name: "small_2", W: 32, H: 32},
	}

	packed, err := NewPacker(2048, 2).Pack(sprites)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if len(packed.Pages) != 1 {
		t.Errorf("pages = %d, want 1 for a handful of small sprites", len(packed.Pages))
	}
	if packed.SpriteCount() != len(sprites) {
		t.Errorf("packed %d sprites, want %d", packed.SpriteCount(), len(sprites))
	}

	// No placement may leave the page
	var all []Placement
	for _, page := range packed.Pages {
		for _, pl := range page.Placements {
			if pl.X < 0 || pl.Y < 0 || pl.X+pl.W > 2048 || pl.Y+pl.H > 2048 {
				t.Errorf("placement %s out of bounds: (%d,%d %dx%d)", pl.Name, pl.X, pl.Y, pl.W, pl.H)
			}
			all = append(all, pl)
		}
	}

	// All pairs disjoint
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if overlaps(all[i], all[j]) {
				t.Errorf("placements %s and %s overlap", all[i].Name, all[j].Name)
			}
		}
	}
}

func TestPackManySpritesNoOverlap(t *testing.T) {
	var sprites []Sprite
	for i := 0; i < 300; i++ {
		// Deterministic varied sizes
		w := 16 + (i*37)%120
		h := 16 + (i*53)%120
		sprites = append(sprites, Sprite{Name: fmt.Sprintf("s%d", i), W: w, H: h})
	}

	packed, err := NewPacker(512, 2).Pack(sprites)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if packed.SpriteCount() != 300 {
		t.Fatalf("packed %d sprites, want 300", packed.SpriteCount())
	}

	var all []Placement
	for _, page := range packed.Pages {
		for _, pl := range page.Placements {
			if pl.X+pl.W > 512 || pl.Y+pl.H > 512 {
				t.Errorf("placement %s out of bounds", pl.Name)
			}
			all = append(all, pl)
		}
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if overlaps(all[i], all[j]) {
				t.Fatalf("placements %s and %s overlap on page %d",
					all[i].Name, all[j].Name, all[i].Page)
			}
		}
	}

	// Every sprite resolvable by name, with matching UVs
	for _, s := range sprites {
		pl, ok := packed.Lookup(s.Name)
		if !ok {
			t.Fatalf("sprite %s missing from lookup", s.Name)
		}
		wantU2 := float32(pl.X+pl.W) / 512
		if pl.U2 != wantU2 {
			t.Errorf("sprite %s U2 = %f, want %f", s.Name, pl.U2, wantU2)
		}
	}
}

func TestPackSpillsToSecondPage(t *testing.T) {
	// Four 100x100 sprites cannot share one 128x128 page
	sprites := []Sprite{
		{Name: "a", W: 100, H: 100},
		{Name: "b", W: 100, H: 100},
		{Name: "c", W: 100, H: 100},
		{Name: "d", W: 100, H: 100},
	}

	packed, err := NewPacker(128, 2).Pack(sprites)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(packed.Pages) != 4 {
		t.Errorf("pages = %d, want 4", len(packed.Pages))
	}
	if packed.SpriteCount() != 4 {
		t.Errorf("packed %d sprites, want 4", packed.SpriteCount())
	}
}

func TestPackSkipsOversizedSprite(t *testing.T) {
	sprites := []Sprite{
		{Name: "fits", W: 64, H: 64},
		{Name: "too_big", W: 300, H: 300},
	}

	packed, err := NewPacker(256, 2).Pack(sprites)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if _, ok := packed.Lookup("too_big"); ok {
		t.Error("oversized sprite was packed")
	}
	if _, ok := packed.Lookup("fits"); !ok {
		t.Error("fitting sprite missing")
	}
}

func TestPackSkipsDegenerateSprite(t *testing.T) {
	packed, err := NewPacker(256, 2).Pack([]Sprite{
		{Name: "empty", W: 0, H: 10},
		{Name: "ok", W: 10, H: 10},
	})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if packed.SpriteCount() != 1 {
		t.Errorf("packed %d sprites, want 1", packed.SpriteCount())
	}
}

func TestPackDuplicateNameFails(t *testing.T) {
	_, err := NewPacker(256, 2).Pack([]Sprite{
		{Name: "dup", W: 10, H: 10},
		{Name: "dup", W: 20, H: 20},
	})
	if err == nil {
		t.Fatal("expected error for duplicate sprite name")
	}
}

func TestPackEmptyManifest(t *testing.T) {
	packed, err := NewPacker(256, 2).Pack(nil)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(packed.Pages) != 1 {
		t.Errorf("pages = %d, want 1 empty page", len(packed.Pages))
	}
	if packed.SpriteCount() != 0 {
		t.Errorf("sprite count = %d, want 0", packed.SpriteCount())
	}
}
