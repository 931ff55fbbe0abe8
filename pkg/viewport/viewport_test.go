package viewport

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestNew(t *testing.T) {
	s := New(1200, 800)
	if s.ViewBox() != "0.00 0.00 1200.00 800.00" {
		t.Errorf("ViewBox() = %q", s.ViewBox())
	}
	if s.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", s.Scale())
	}
}

func TestZoomKeepsCentre(t *testing.T) {
	s := New(1200, 800)
	s.Zoom(-100)

	if !near(s.Scale(), ZoomStep) {
		t.Errorf("Scale() = %v, want %v", s.Scale(), ZoomStep)
	}
	if !near(s.X+s.Width/2, 600) || !near(s.Y+s.Height/2, 400) {
		t.Errorf("centre moved to (%v, %v)", s.X+s.Width/2, s.Y+s.Height/2)
	}

	s.Zoom(100)
	if !near(s.Scale(), 1) {
		t.Errorf("Scale() after in+out = %v, want 1", s.Scale())
	}

	s.Zoom(0)
	if !near(s.Scale(), 1) {
		t.Errorf("Zoom(0) changed scale to %v", s.Scale())
	}
}

func TestZoomClamp(t *testing.T) {
	s := New(1200, 800)
	s.ZoomSteps(100)
	if !near(s.Scale(), DefaultMaxScale) {
		t.Errorf("Scale() = %v, want %v", s.Scale(), DefaultMaxScale)
	}
	s.ZoomSteps(-100)
	if !near(s.Scale(), DefaultMinScale) {
		t.Errorf("Scale() = %v, want %v", s.Scale(), DefaultMinScale)
	}
}

func TestZoomUnclamped(t *testing.T) {
	s := New(1200, 800)
	s.Clamp = false
	s.ZoomSteps(30)
	if s.Scale() <= DefaultMaxScale {
		t.Errorf("unclamped Scale() = %v, want > %v", s.Scale(), DefaultMaxScale)
	}
}

func TestSetScaleRejectsInvalid(t *testing.T) {
	s := New(100, 100)
	s.SetScale(0)
	s.SetScale(-1)
	s.SetScale(math.NaN())
	if s.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", s.Scale())
	}
}

func TestPan(t *testing.T) {
	s := New(1200, 800)
	// Rendered at half size: one pixel is two drawing units.
	s.Pan(10, -5, 600, 400)
	if !near(s.X, -20) || !near(s.Y, 10) {
		t.Errorf("after pan (X, Y) = (%v, %v), want (-20, 10)", s.X, s.Y)
	}

	before := s
	s.Pan(10, 10, 0, 400)
	if s != before {
		t.Error("Pan with zero pixel width should be ignored")
	}
}

func TestPanResolutionIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		frac := rapid.Float64Range(-1, 1).Draw(t, "frac")
		px := rapid.Float64Range(100, 4000).Draw(t, "px")

		a, b := New(1200, 800), New(1200, 800)
		// The same fraction of the surface dragged at two resolutions.
		a.Pan(frac*px, 0, px, 800)
		b.Pan(frac*px*2, 0, px*2, 800)
		if math.Abs(a.X-b.X) > eps*1e3 {
			t.Fatalf("pan depends on resolution: %v vs %v", a.X, b.X)
		}
	})
}

func TestFit(t *testing.T) {
	s := Fit(Rect{MinX: 0, MinY: 0, MaxX: 600, MaxY: 200}, 1200, 800, 0)
	if !near(s.Scale(), 2) {
		t.Errorf("Scale() = %v, want 2", s.Scale())
	}
	if !near(s.X+s.Width/2, 300) || !near(s.Y+s.Height/2, 100) {
		t.Errorf("Fit not centred: %+v", s)
	}

	empty := Fit(Rect{}, 1200, 800, 0.1)
	if empty != New(1200, 800) {
		t.Errorf("Fit(empty) = %+v, want default", empty)
	}
}

func TestRectUnion(t *testing.T) {
	got := Rect{0, 0, 1, 1}.Union(Rect{-1, 2, 3, 4})
	want := Rect{-1, 0, 3, 4}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}
