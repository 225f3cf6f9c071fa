package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/mkrell/stardrift/camera"
	"github.com/mkrell/stardrift/components"
)

type cullFixture struct {
	world     *ecs.World
	mapper    *ecs.Map3[components.Position, components.Body, components.Detail]
	filter    *ecs.Filter3[components.Position, components.Body, components.Detail]
	posMap    *ecs.Map1[components.Position]
	bodyMap   *ecs.Map1[components.Body]
	detailMap *ecs.Map1[components.Detail]
}

func newCullFixture() *cullFixture {
	world := ecs.NewWorld()
	return &cullFixture{
		world:     world,
		mapper:    ecs.NewMap3[components.Position, components.Body, components.Detail](world),
		filter:    ecs.NewFilter3[components.Position, components.Body, components.Detail](world),
		posMap:    ecs.NewMap1[components.Position](world),
		bodyMap:   ecs.NewMap1[components.Body](world),
		detailMap: ecs.NewMap1[components.Detail](world),
	}
}

func (f *cullFixture) spawn(x, y float32, kind components.Kind) ecs.Entity {
	return f.mapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Body{Kind: kind, Radius: 10},
		&components.Detail{Tier: components.TierCulled},
	)
}

func TestCullerAssignsTiersByDistance(t *testing.T) {
	f := newCullFixture()

	near := f.spawn(100, 0, components.KindPlanet)
	mid := f.spawn(1500, 0, components.KindPlanet)
	far := f.spawn(4000, 0, components.KindPlanet)

	grid := NewSpatialIndex(500)
	lod := NewLODSelector(testLODParams())
	culler := NewCuller(grid, lod)

	// Large viewport so the query radius reaches all three entities
	cam := camera.New(6000, 6000)

	culler.Rebuild(cam, f.filter)
	visible := culler.Cull(cam, f.posMap, f.bodyMap, f.detailMap)

	if got := f.detailMap.Get(near).Tier; got != components.TierHigh {
		t.Errorf("near entity tier = %v, want TierHigh", got)
	}
	if got := f.detailMap.Get(mid).Tier; got != components.TierMedium {
		t.Errorf("mid entity tier = %v, want TierMedium", got)
	}
	if got := f.detailMap.Get(far).Tier; got != components.TierLow {
		t.Errorf("far entity tier = %v, want TierLow", got)
	}

	if visible.Total() != 3 {
		t.Errorf("visible total = %d, want 3", visible.Total())
	}
}

func TestCullerOutOfRangeStaysCulled(t *testing.T) {
	f := newCullFixture()

	distant := f.spawn(100000, 100000, components.KindPlanet)

	grid := NewSpatialIndex(500)
	lod := NewLODSelector(testLODParams())
	culler := NewCuller(grid, lod)
	cam := camera.New(1280, 720)

	culler.Rebuild(cam, f.filter)
	visible := culler.Cull(cam, f.posMap, f.bodyMap, f.detailMap)

	if got := f.detailMap.Get(distant).Tier; got != components.TierCulled {
		t.Errorf("distant entity tier = %v, want TierCulled", got)
	}
	if visible.Total() != 0 {
		t.Errorf("visible total = %d, want 0", visible.Total())
	}
}

func TestCullerDistanceAnnotation(t *testing.T) {
	f := newCullFixture()
	e := f.spawn(300, 400, components.KindPlanet)

	grid := NewSpatialIndex(500)
	lod := NewLODSelector(testLODParams())
	culler := NewCuller(grid, lod)
	cam := camera.New(1280, 720) // centered at origin

	culler.Rebuild(cam, f.filter)

	// 3-4-5 triangle from the origin
	if got := f.detailMap.Get(e).Distance; got < 499.9 || got > 500.1 {
		t.Errorf("annotated distance = %f, want 500", got)
	}
}

func TestCullerTierSetReuse(t *testing.T) {
	f := newCullFixture()
	f.spawn(100, 0, components.KindPlanet)

	grid := NewSpatialIndex(500)
	lod := NewLODSelector(testLODParams())
	culler := NewCuller(grid, lod)
	cam := camera.New(1280, 720)

	culler.Rebuild(cam, f.filter)
	first := culler.Cull(cam, f.posMap, f.bodyMap, f.detailMap)
	firstTotal := first.Total()

	// A second pass must not accumulate entries
	culler.Rebuild(cam, f.filter)
	second := culler.Cull(cam, f.posMap, f.bodyMap, f.detailMap)
	if second.Total() != firstTotal {
		t.Errorf("second cull total = %d, want %d", second.Total(), firstTotal)
	}
}
