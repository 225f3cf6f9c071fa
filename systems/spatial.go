// Package systems provides the per-frame control systems of the performance core.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkrell/stardrift/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
// This avoids recomputing deltas and distance in consumers.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // Delta from query origin
	DistSq float32 // Squared distance (avoid sqrt in hot path)
}

// CellKey addresses one bucket of the spatial index.
// Keys use floor division so bucket assignment is stable at boundaries.
type CellKey struct {
	X, Y int32
}

// SpatialIndex provides sub-linear neighbor lookups over an unbounded world
// using a map-keyed uniform grid. Rebuilt wholesale each frame.
type SpatialIndex struct {
	cellSize float32
	cells    map[CellKey][]ecs.Entity
}

// DefaultCellSize is used when a non-positive cell size is requested.
const DefaultCellSize = 500

// NewSpatialIndex creates a spatial index with the given cell size.
// The cell size is fixed for the lifetime of the index.
func NewSpatialIndex(cellSize float32) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &SpatialIndex{
		cellSize: cellSize,
		cells:    make(map[CellKey][]ecs.Entity, 256),
	}
}

// CellSize returns the configured cell size.
func (g *SpatialIndex) CellSize() float32 {
	return g.cellSize
}

// Clear removes all entities from the index, keeping bucket capacity.
func (g *SpatialIndex) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

// Insert adds an entity to the index at the given position.
func (g *SpatialIndex) Insert(e ecs.Entity, x, y float32) {
	key := g.cellKey(x, y)
	g.cells[key] = append(g.cells[key], e)
}

// QueryRadiusInto finds entities within radius of (x, y) and appends them to dst.
// Returns the updated slice. Reuse dst across calls to avoid allocations.
// Only buckets the radius could intersect are scanned; each candidate is then
// filtered by exact Euclidean distance, so the result matches a brute-force scan.
func (g *SpatialIndex) QueryRadiusInto(dst []Neighbor, x, y, radius float32, posMap *ecs.Map1[components.Position]) []Neighbor {
	if radius < 0 {
		return dst
	}

	cellRadius := int32(radius/g.cellSize) + 1
	center := g.cellKey(x, y)
	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			key := CellKey{X: center.X + dc, Y: center.Y + dr}
			bucket, ok := g.cells[key]
			if !ok {
				continue
			}

			for _, e := range bucket {
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}

				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy

				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// QueryRadius returns all entities within radius of the given position.
// Allocates; prefer QueryRadiusInto in per-frame code.
func (g *SpatialIndex) QueryRadius(x, y, radius float32, posMap *ecs.Map1[components.Position]) []ecs.Entity {
	neighbors := g.QueryRadiusInto(nil, x, y, radius, posMap)
	result := make([]ecs.Entity, len(neighbors))
	for i, n := range neighbors {
		result[i] = n.E
	}
	return result
}

// Len returns the total number of inserted entities.
func (g *SpatialIndex) Len() int {
	n := 0
	for _, bucket := range g.cells {
		n += len(bucket)
	}
	return n
}

// cellKey returns the bucket key for a world position.
func (g *SpatialIndex) cellKey(x, y float32) CellKey {
	return CellKey{
		X: int32(math.Floor(float64(x / g.cellSize))),
		Y: int32(math.Floor(float64(y / g.cellSize))),
	}
}
