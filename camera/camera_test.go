package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720)

	// Should be centered on the origin
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 4000
	cam.Y = -2500

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(4000, -2500)
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 12000
	cam.Y = 8000
	cam.SetZoom(2.0)

	// Test roundtrip at various positions
	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPan(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(2.0)

	// Screen-space pan is divided by zoom in world space
	cam.Pan(200, -100)

	if math.Abs(float64(cam.X-100)) > 0.01 || math.Abs(float64(cam.Y+50)) > 0.01 {
		t.Errorf("expected camera at (100, -50), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(0.01) // Below min
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(10.0) // Above max
	if cam.Zoom != 4.0 {
		t.Errorf("expected zoom clamped to 4.0, got %f", cam.Zoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720)

	// Camera at origin, viewport 1280x720 at zoom 1
	// Visible range: (-640, -360) to (640, 360)

	// Point at camera center should be visible
	if !cam.IsVisible(0, 0, 10) {
		t.Error("center should be visible")
	}

	// Point far outside should not be visible
	if cam.IsVisible(2000, 1500, 10) {
		t.Error("far point should not be visible")
	}

	// Point near edge with large radius should be visible
	if !cam.IsVisible(-700, 0, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestVisibleRadiusCoversViewport(t *testing.T) {
	cam := New(1280, 720)
	cam.SetZoom(0.5)

	r := cam.VisibleRadius(0)

	// The viewport corner is the farthest visible point from center
	cornerX := cam.ViewportW / (2 * cam.Zoom)
	cornerY := cam.ViewportH / (2 * cam.Zoom)
	cornerDist := math.Sqrt(float64(cornerX*cornerX + cornerY*cornerY))

	if float64(r) < cornerDist-0.01 {
		t.Errorf("visible radius %f does not reach viewport corner at %f", r, cornerDist)
	}
}

func TestFollowConverges(t *testing.T) {
	cam := New(1280, 720)

	// Many small steps should bring the camera near the target
	for i := 0; i < 300; i++ {
		cam.Follow(1000, -500, 5.0, 1.0/60.0)
	}

	if math.Abs(float64(cam.X-1000)) > 1 || math.Abs(float64(cam.Y+500)) > 1 {
		t.Errorf("expected camera near (1000, -500), got (%f, %f)", cam.X, cam.Y)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720)
	cam.X = 500
	cam.Y = 500
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
