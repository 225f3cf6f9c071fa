package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkrell/stardrift/camera"
	"github.com/mkrell/stardrift/components"
)

// TierSet holds the visible entities of one frame, partitioned by detail
// tier. Consumers (render, simulation) iterate tiers instead of the whole
// world.
type TierSet struct {
	High   []ecs.Entity
	Medium []ecs.Entity
	Low    []ecs.Entity
}

// Reset empties all tiers, keeping capacity.
func (t *TierSet) Reset() {
	t.High = t.High[:0]
	t.Medium = t.Medium[:0]
	t.Low = t.Low[:0]
}

// Total returns the number of visible entities across all tiers.
func (t *TierSet) Total() int {
	return len(t.High) + len(t.Medium) + len(t.Low)
}

// Culler runs the per-frame visibility pass: rebuild the spatial index,
// query around the camera, and annotate every visible object with its
// detail tier.
type Culler struct {
	grid *SpatialIndex
	lod  *LODSelector

	visible TierSet
	scratch []Neighbor

	// margin widens the camera query so objects entering the view do not
	// pop in one frame late.
	margin float32
}

// NewCuller creates a culler over the given index and selector.
func NewCuller(grid *SpatialIndex, lod *LODSelector) *Culler {
	return &Culler{
		grid:   grid,
		lod:    lod,
		margin: grid.CellSize(),
	}
}

// Rebuild clears the spatial index and reinserts every tracked object,
// annotating its distance from the camera and resetting its tier to culled.
// Objects the cull pass does not reach stay culled.
func (c *Culler) Rebuild(cam *camera.Camera, filter *ecs.Filter3[components.Position, components.Body, components.Detail]) {
	c.grid.Clear()

	query := filter.Query()
	for query.Next() {
		pos, _, det := query.Get()

		dx := pos.X - cam.X
		dy := pos.Y - cam.Y
		det.Distance = float32(math.Sqrt(float64(dx*dx + dy*dy)))
		det.Tier = components.TierCulled

		c.grid.Insert(query.Entity(), pos.X, pos.Y)
	}
}

// Cull queries the index around the camera and assigns a tier to every
// object in range. Returns the per-tier visible lists, valid until the
// next call.
func (c *Culler) Cull(
	cam *camera.Camera,
	posMap *ecs.Map1[components.Position],
	bodyMap *ecs.Map1[components.Body],
	detailMap *ecs.Map1[components.Detail],
) *TierSet {
	c.visible.Reset()

	camScale := float32(1.0)
	if cam.Zoom > 0 {
		camScale = 1.0 / cam.Zoom
	}

	radius := cam.VisibleRadius(c.margin)
	c.scratch = c.grid.QueryRadiusInto(c.scratch[:0], cam.X, cam.Y, radius, posMap)

	for _, n := range c.scratch {
		body := bodyMap.Get(n.E)
		det := detailMap.Get(n.E)
		if body == nil || det == nil {
			continue
		}

		det.Tier = c.lod.Calculate(det.Distance, camScale, body.Kind)

		switch det.Tier {
		case components.TierHigh:
			c.visible.High = append(c.visible.High, n.E)
		case components.TierMedium:
			c.visible.Medium = append(c.visible.Medium, n.E)
		case components.TierLow:
			c.visible.Low = append(c.visible.Low, n.E)
		case components.TierCulled:
			// Annotated but not drawn
		}
	}

	return &c.visible
}

// Visible returns the tier set from the last Cull call.
func (c *Culler) Visible() *TierSet {
	return &c.visible
}
