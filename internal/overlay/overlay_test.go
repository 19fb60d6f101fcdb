package overlay

import (
	"math"
	"testing"

	"snapframe/internal/transform"
	"snapframe/pkg/geometry"
)

// fixedMeasurer reports every glyph as half the font size wide.
type fixedMeasurer struct{}

func (fixedMeasurer) MeasureText(text, _ string, size float64) float64 {
	return float64(len([]rune(text))) * size / 2
}

func identity(w, h float64) *transform.Mapper {
	return transform.New(transform.IdentityContext(w, h), geometry.NewSize(w, h), transform.Padding{})
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestListOrderAndTopmost(t *testing.T) {
	var l List[*Shape]
	a := l.Add(&Shape{Type: ShapeRectangle})
	b := l.Add(&Shape{Type: ShapeRectangle})
	if a.ID == b.ID {
		t.Fatal("IDs must be unique")
	}
	got, ok := l.Topmost(func(*Shape) bool { return true })
	if !ok || got != b {
		t.Errorf("Topmost = %v, want last added", got)
	}
	if !l.Remove(b.ID) || l.Len() != 1 {
		t.Errorf("Remove failed, len = %d", l.Len())
	}
	if l.Remove(b.ID) {
		t.Error("second Remove should report false")
	}
	l.Replace([]*Shape{{Type: ShapeArrow}, {Type: ShapeCircle}})
	items := l.Items()
	if len(items) != 2 || items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("Replace renumbering = %+v", items)
	}
}

func TestCircleBlurFromDrag(t *testing.T) {
	m := identity(400, 300)
	b := NewBlurFromDrag(BlurCircle, geometry.NewPoint2D(100, 100), geometry.NewPoint2D(130, 100), DefaultBlurIntensity, 5, m)
	if b == nil {
		t.Fatal("expected a blur")
	}
	if !near(b.RelRadius, 30.0/400) || !near(b.RelRadius, m.ToRelativeSize(30)) {
		t.Errorf("RelRadius = %v, want %v", b.RelRadius, 30.0/400)
	}
	if !near(b.RelX, 0.25) || !near(b.RelY, 100.0/300) {
		t.Errorf("center = (%v, %v)", b.RelX, b.RelY)
	}
}

func TestBlurFromShortDragIsRejected(t *testing.T) {
	m := identity(400, 300)
	start := geometry.NewPoint2D(10, 10)
	if NewBlurFromDrag(BlurCircle, start, geometry.NewPoint2D(14, 10), 5, 5, m) != nil {
		t.Error("circle under threshold should be rejected")
	}
	if NewBlurFromDrag(BlurRectangle, start, geometry.NewPoint2D(40, 13), 5, 5, m) != nil {
		t.Error("rectangle with short side should be rejected")
	}
	r := NewBlurFromDrag(BlurRectangle, geometry.NewPoint2D(40, 40), start, 5, 5, m)
	if r == nil {
		t.Fatal("reverse drag should still create a rectangle")
	}
	if got := r.Bounds(m); !near(got.X, 10) || !near(got.Width, 30) {
		t.Errorf("Bounds = %+v", got)
	}
}

func TestBlurResizeGuard(t *testing.T) {
	m := identity(400, 300)
	rect := &Blur{Type: BlurRectangle, RelX: 0.5, RelY: 0.5, RelWidth: 0.25, RelHeight: 0.2}
	c := rect.Center(m)

	if rect.ResizeTo(c.Add(geometry.NewPoint2D(4, 40)), m, 10, 5) {
		t.Error("width below 10px should be rejected")
	}
	if rect.RelWidth != 0.25 || rect.RelHeight != 0.2 {
		t.Errorf("size changed to %v x %v", rect.RelWidth, rect.RelHeight)
	}
	if !rect.ResizeTo(c.Add(geometry.NewPoint2D(20, 30)), m, 10, 5) {
		t.Fatal("valid resize rejected")
	}
	if !near(rect.RelWidth, 40.0/400) || !near(rect.RelHeight, 60.0/300) {
		t.Errorf("resized to %v x %v", rect.RelWidth, rect.RelHeight)
	}

	circle := &Blur{Type: BlurCircle, RelX: 0.5, RelY: 0.5, RelRadius: 0.1}
	if circle.ResizeTo(circle.Center(m).Add(geometry.NewPoint2D(3, 0)), m, 10, 5) {
		t.Error("radius below 5px should be rejected")
	}
	if circle.RelRadius != 0.1 {
		t.Errorf("radius changed to %v", circle.RelRadius)
	}
}

func TestBlurHotspots(t *testing.T) {
	m := identity(400, 300)
	rect := &Blur{Type: BlurRectangle, RelX: 0.5, RelY: 0.5, RelWidth: 0.25, RelHeight: 0.2}
	// 100x60 box centered at (200,150).
	if !rect.HitTestResizeHandle(geometry.NewPoint2D(252, 182), m) {
		t.Error("bottom-right handle not hit")
	}
	if !rect.HitTestDeleteGlyph(geometry.NewPoint2D(250, 114), m) {
		t.Error("top-right delete not hit")
	}
	circle := &Blur{Type: BlurCircle, RelX: 0.5, RelY: 0.5, RelRadius: 0.1}
	// Radius 40 around (200,150).
	if !circle.HitTestResizeHandle(geometry.NewPoint2D(240, 150), m) {
		t.Error("right-edge handle not hit")
	}
	if !circle.HitTestDeleteGlyph(geometry.NewPoint2D(200, 110), m) {
		t.Error("top-edge delete not hit")
	}
	if circle.HitTest(geometry.NewPoint2D(241, 150), m) {
		t.Error("point outside circle hit")
	}
}

func TestShapeHitTests(t *testing.T) {
	m := identity(400, 300)
	mk := func(typ ShapeType) *Shape {
		s := &Shape{Type: typ}
		s.SpanTo(geometry.NewPoint2D(300, 200), geometry.NewPoint2D(100, 100), m)
		return s
	}
	tests := []struct {
		typ  ShapeType
		p    geometry.Point2D
		want bool
	}{
		{ShapeRectangle, geometry.NewPoint2D(110, 190), true},
		{ShapeRoundedRect, geometry.NewPoint2D(310, 150), false},
		{ShapeCircle, geometry.NewPoint2D(200, 150), true},
		{ShapeCircle, geometry.NewPoint2D(110, 110), false},
		{ShapeEllipse, geometry.NewPoint2D(295, 150), true},
		{ShapeEllipse, geometry.NewPoint2D(110, 110), false},
		{ShapeArrow, geometry.NewPoint2D(202, 150), true},
		{ShapeArrow, geometry.NewPoint2D(200, 120), false},
	}
	for _, tt := range tests {
		if got := mk(tt.typ).HitTest(tt.p, m); got != tt.want {
			t.Errorf("%s HitTest(%+v) = %v, want %v", tt.typ, tt.p, got, tt.want)
		}
	}
}

func TestShapeNegativeDragKeepsDirection(t *testing.T) {
	m := identity(400, 300)
	s := &Shape{Type: ShapeArrow}
	s.SpanTo(geometry.NewPoint2D(300, 200), geometry.NewPoint2D(100, 100), m)
	if s.RelWidth >= 0 || s.RelHeight >= 0 {
		t.Errorf("signed size = %v x %v, want negative", s.RelWidth, s.RelHeight)
	}
	tail, head := s.Endpoints(m)
	if !near(tail.X, 300) || !near(head.X, 100) {
		t.Errorf("endpoints = %+v -> %+v", tail, head)
	}
	if b := s.Bounds(m); !near(b.X, 100) || !near(b.Width, 200) {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestShapeResizeAnchorsTopLeft(t *testing.T) {
	m := identity(400, 300)
	s := &Shape{Type: ShapeRectangle}
	s.SpanTo(geometry.NewPoint2D(100, 100), geometry.NewPoint2D(200, 150), m)
	s.ResizeTo(geometry.NewPoint2D(260, 210), m)
	b := s.Bounds(m)
	if !near(b.X, 100) || !near(b.Y, 100) || !near(b.Width, 160) || !near(b.Height, 110) {
		t.Errorf("Bounds = %+v", b)
	}
	if !s.HitTestResizeHandle(geometry.NewPoint2D(265, 215), m) {
		t.Error("resize handle not at new corner")
	}
	if !s.HitTestDeleteGlyph(geometry.NewPoint2D(270, 90), m) {
		t.Error("delete glyph not above top-right corner")
	}
}

func TestShapeResizeKeepsSigns(t *testing.T) {
	m := identity(400, 300)
	s := &Shape{Type: ShapeEllipse}
	s.SpanTo(geometry.NewPoint2D(200, 150), geometry.NewPoint2D(100, 100), m)
	s.ResizeTo(geometry.NewPoint2D(260, 210), m)
	if s.RelWidth >= 0 || s.RelHeight >= 0 {
		t.Errorf("signed size = %v x %v, want negative", s.RelWidth, s.RelHeight)
	}
	b := s.Bounds(m)
	if !near(b.X, 100) || !near(b.Y, 100) || !near(b.Width, 160) || !near(b.Height, 110) {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestArrowResizeHandleOnHead(t *testing.T) {
	m := identity(400, 300)
	s := &Shape{Type: ShapeArrow}
	s.SpanTo(geometry.NewPoint2D(300, 200), geometry.NewPoint2D(100, 100), m)
	if !s.HitTestResizeHandle(geometry.NewPoint2D(102, 98), m) {
		t.Error("arrow handle should sit on the head")
	}
	s.ResizeTo(geometry.NewPoint2D(350, 250), m)
	tail, head := s.Endpoints(m)
	if !near(tail.X, 300) || !near(tail.Y, 200) || !near(head.X, 350) || !near(head.Y, 250) {
		t.Errorf("endpoints = %+v -> %+v", tail, head)
	}
}

func TestTextBoxesAndResize(t *testing.T) {
	m := identity(400, 300)
	ms := fixedMeasurer{}
	txt := &Text{Text: "abcd", FontFamily: DefaultFontFamily}
	txt.MoveTo(geometry.NewPoint2D(200, 150), m)
	txt.SetFontSize(20, m)

	// 4 glyphs x 10px = 40 wide, 20 high.
	b := txt.Bounds(m, ms)
	if !near(b.X, 180) || !near(b.Width, 40) || !near(b.Height, 20) {
		t.Fatalf("Bounds = %+v", b)
	}
	if !txt.HitTest(geometry.NewPoint2D(219, 159), m, ms) {
		t.Error("inside point missed")
	}
	// Outline right edge = 223, top = 137.
	if !txt.HitTestDeleteGlyph(geometry.NewPoint2D(232, 128), m, ms) {
		t.Error("delete glyph missed")
	}
	// Outline bottom-right = (223, 163).
	if !txt.HitTestResizeHandle(geometry.NewPoint2D(227, 167), m, ms) {
		t.Error("resize handle missed")
	}

	txt.ResizeTo(geometry.NewPoint2D(260, 150), m)
	if got := txt.FontSize(m); !near(got, 30) {
		t.Errorf("font size after resize = %v, want 30", got)
	}
	txt.ResizeTo(geometry.NewPoint2D(202, 150), m)
	if got := txt.FontSize(m); got != transform.MinFontSize {
		t.Errorf("font size = %v, want clamp to %v", got, transform.MinFontSize)
	}
}

func TestArrowHead(t *testing.T) {
	l, r := ArrowHead(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(90, 0))
	// Head length is min(20, 30) = 20, barbs at +/-30 degrees.
	if !near(l.X, 90-20*math.Cos(math.Pi/6)) || !near(l.Y, 10) || !near(r.Y, -10) {
		t.Errorf("barbs = %+v %+v", l, r)
	}
}

func TestRoundedCornerRadius(t *testing.T) {
	if RoundedCornerRadius(10, 10) != 5 || RoundedCornerRadius(1000, 500) != 20 || !near(RoundedCornerRadius(60, 80), 12) {
		t.Error("corner radius bounds")
	}
}
