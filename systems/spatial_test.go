package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkrell/stardrift/components"
)

func TestSpatialIndexQueryMatchesBruteForce(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap1[components.Position](world)

	grid := NewSpatialIndex(500)
	rng := rand.New(rand.NewSource(42))

	type placed struct {
		e    ecs.Entity
		x, y float32
	}

	// Scatter across several cells, negative coordinates included
	var all []placed
	for i := 0; i < 400; i++ {
		x := rng.Float32()*8000 - 4000
		y := rng.Float32()*8000 - 4000
		e := mapper.NewEntity(&components.Position{X: x, Y: y})
		grid.Insert(e, x, y)
		all = append(all, placed{e, x, y})
	}

	queries := []struct {
		x, y, radius float32
	}{
		{0, 0, 300},
		{0, 0, 1200},
		{-3500, -3500, 800},
		{2000, -1500, 499},
		{250, 250, 500}, // radius equals cell size
		{100, 100, 0},
	}

	for _, q := range queries {
		got := grid.QueryRadiusInto(nil, q.x, q.y, q.radius, posMap)

		want := make(map[ecs.Entity]bool)
		for _, p := range all {
			dx := p.x - q.x
			dy := p.y - q.y
			if dx*dx+dy*dy <= q.radius*q.radius {
				want[p.e] = true
			}
		}

		if len(got) != len(want) {
			t.Errorf("query (%.0f,%.0f r=%.0f): got %d entities, want %d",
				q.x, q.y, q.radius, len(got), len(want))
		}
		for _, n := range got {
			if !want[n.E] {
				t.Errorf("query (%.0f,%.0f r=%.0f): unexpected entity at distSq=%f",
					q.x, q.y, q.radius, n.DistSq)
			}
		}
	}
}

func TestSpatialIndexBoundaryPoint(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap1[components.Position](world)

	grid := NewSpatialIndex(500)

	// Exactly on a cell boundary
	e := mapper.NewEntity(&components.Position{X: 500, Y: 500})
	grid.Insert(e, 500, 500)

	got := grid.QueryRadiusInto(nil, 500, 500, 1, posMap)
	if len(got) != 1 {
		t.Fatalf("expected boundary entity found once, got %d results", len(got))
	}
}

func TestSpatialIndexNegativeCells(t *testing.T) {
	grid := NewSpatialIndex(500)

	// -0.5 must land in cell -1, not cell 0
	k := grid.cellKey(-0.5, -0.5)
	if k.X != -1 || k.Y != -1 {
		t.Errorf("cellKey(-0.5,-0.5) = (%d,%d), want (-1,-1)", k.X, k.Y)
	}
	k = grid.cellKey(0, 0)
	if k.X != 0 || k.Y != 0 {
		t.Errorf("cellKey(0,0) = (%d,%d), want (0,0)", k.X, k.Y)
	}
	k = grid.cellKey(-500, 499.9)
	if k.X != -1 || k.Y != 0 {
		t.Errorf("cellKey(-500,499.9) = (%d,%d), want (-1,0)", k.X, k.Y)
	}
}

func TestSpatialIndexClearKeepsNothing(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap1[components.Position](world)

	grid := NewSpatialIndex(500)
	e := mapper.NewEntity(&components.Position{X: 10, Y: 10})
	grid.Insert(e, 10, 10)

	grid.Clear()
	if grid.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", grid.Len())
	}
	if got := grid.QueryRadiusInto(nil, 10, 10, 100, posMap); len(got) != 0 {
		t.Errorf("query after Clear returned %d entities", len(got))
	}
}

func TestSpatialIndexReusesDst(t *testing.T) {
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Position](world)
	posMap := ecs.NewMap1[components.Position](world)

	grid := NewSpatialIndex(500)
	for i := 0; i < 10; i++ {
		e := mapper.NewEntity(&components.Position{X: float32(i) * 10, Y: 0})
		grid.Insert(e, float32(i)*10, 0)
	}

	dst := make([]Neighbor, 0, 16)
	dst = grid.QueryRadiusInto(dst, 0, 0, 1000, posMap)
	if len(dst) != 10 {
		t.Fatalf("first query: got %d, want 10", len(dst))
	}

	// Second call with the same backing slice must not accumulate
	dst = grid.QueryRadiusInto(dst[:0], 0, 0, 1000, posMap)
	if len(dst) != 10 {
		t.Errorf("second query: got %d, want 10", len(dst))
	}
}
