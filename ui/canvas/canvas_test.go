package canvas

import (
	"math"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"snapframe/internal/config"
	"snapframe/internal/editor"
	"snapframe/internal/overlay"
	"snapframe/internal/render"
)

func newCanvas(t *testing.T) (*EditorCanvas, *editor.Editor) {
	t.Helper()
	test.NewApp()
	ed := editor.New(config.DefaultConfig(), render.New(nil, nil))
	return New(ed), ed
}

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func dragTo(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestViewToCanvas(t *testing.T) {
	p := viewToCanvas(fyne.NewPos(60, 60), 2)
	if p.X != 30 || p.Y != 30 {
		t.Errorf("got %v, want (30,30)", p)
	}
	p = viewToCanvas(fyne.NewPos(5, 5), 0)
	if p.X != 5 || p.Y != 5 {
		t.Errorf("zero zoom: got %v, want (5,5)", p)
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0.01, minZoom},
		{1, 1},
		{50, maxZoom},
	}
	for _, tt := range tests {
		if got := clampZoom(tt.in); got != tt.want {
			t.Errorf("clampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFitZoom(t *testing.T) {
	if got := fitZoom(400, 300, fyne.NewSize(200, 300)); math.Abs(got-0.475) > 1e-9 {
		t.Errorf("fitZoom = %v, want 0.475", got)
	}
	if got := fitZoom(0, 300, fyne.NewSize(200, 300)); got != 0 {
		t.Errorf("empty frame: fitZoom = %v, want 0", got)
	}
}

func TestDragCreatesBlur(t *testing.T) {
	ec, ed := newCanvas(t)
	ed.SetTool(editor.ToolBlur)
	ed.SetBlurType(overlay.BlurRectangle)

	ec.content.MouseDown(press(100, 100))
	ec.content.Dragged(dragTo(120, 110))
	ec.content.Dragged(dragTo(150, 140))
	ec.content.DragEnd()
	// The release reported after DragEnd must not end a second gesture.
	ec.content.MouseUp(press(150, 140))

	if n := len(ed.Blurs()); n != 1 {
		t.Fatalf("blurs = %d, want 1", n)
	}
	st := ed.State()
	if st.Selected(editor.ToolBlur) != ed.Blurs()[0].ID {
		t.Error("new blur not selected")
	}
}

func TestPointerHonoursZoom(t *testing.T) {
	ec, ed := newCanvas(t)
	ec.SetZoom(2)
	if ec.Zoom() != 2 {
		t.Fatalf("zoom = %v, want 2", ec.Zoom())
	}
	ed.SetTool(editor.ToolShape)

	ec.content.MouseDown(press(100, 100))
	ec.content.MouseMoved(press(200, 100))
	ec.content.MouseUp(press(200, 100))

	shapes := ed.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("shapes = %d, want 1", len(shapes))
	}
	// A 100 view-pixel drag is 50 canvas pixels at zoom 2.
	w := shapes[0].RelWidth * editor.EmptyWidth
	if math.Abs(w-50) > 1e-6 {
		t.Errorf("shape width = %v px, want 50", w)
	}
}

func TestPointerIgnoresScrollOffset(t *testing.T) {
	ec, ed := newCanvas(t)
	ec.SetZoom(2)
	ec.scroll.scroll.Offset = fyne.NewPos(300, 200)
	ed.SetTool(editor.ToolShape)

	// Positions arrive relative to the scrolled content.
	ec.content.MouseDown(press(100, 100))
	ec.content.MouseMoved(press(200, 100))
	ec.content.MouseUp(press(200, 100))

	shapes := ed.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("shapes = %d, want 1", len(shapes))
	}
	if x := shapes[0].RelX * editor.EmptyWidth; math.Abs(x-75) > 1e-6 {
		t.Errorf("shape center x = %v px, want 75", x)
	}
}

func TestMouseOutEndsGesture(t *testing.T) {
	ec, ed := newCanvas(t)
	ed.SetTool(editor.ToolShape)

	ec.content.MouseDown(press(10, 10))
	ec.content.MouseMoved(press(80, 80))
	ec.content.MouseOut()

	if ed.Gesturing() {
		t.Error("gesture still active after pointer left")
	}
	if n := len(ed.Shapes()); n != 1 {
		t.Errorf("shapes = %d, want 1", n)
	}
}

func TestZoomSteps(t *testing.T) {
	ec, _ := newCanvas(t)
	var seen float64
	ec.OnZoomChange(func(z float64) { seen = z })
	ec.ZoomIn()
	if math.Abs(ec.Zoom()-zoomStep) > 1e-9 || seen != ec.Zoom() {
		t.Errorf("zoom = %v (callback %v), want %v", ec.Zoom(), seen, zoomStep)
	}
	ec.ZoomOut()
	if math.Abs(ec.Zoom()-1) > 1e-9 {
		t.Errorf("zoom = %v, want 1", ec.Zoom())
	}
}
