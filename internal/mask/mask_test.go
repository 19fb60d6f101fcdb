package mask

import (
	"image/color"
	"math"
	"reflect"
	"testing"

	"github.com/gogpu/gg"

	"snapframe/pkg/geometry"
)

type op struct {
	name string
	args []float64
}

// recorder captures path commands and stroke state.
type recorder struct {
	ops     []op
	strokes int
	dash    []float64
	width   float64
	lineCap gg.LineCap
}

func (r *recorder) MoveTo(x, y float64) { r.ops = append(r.ops, op{"move", []float64{x, y}}) }
func (r *recorder) LineTo(x, y float64) { r.ops = append(r.ops, op{"line", []float64{x, y}}) }
func (r *recorder) QuadraticTo(cx, cy, x, y float64) {
	r.ops = append(r.ops, op{"quad", []float64{cx, cy, x, y}})
}
func (r *recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.ops = append(r.ops, op{"cubic", []float64{c1x, c1y, c2x, c2y, x, y}})
}
func (r *recorder) ClosePath()                 { r.ops = append(r.ops, op{name: "close"}) }
func (r *recorder) SetColor(color.Color)       {}
func (r *recorder) SetLineWidth(w float64)     { r.width = w }
func (r *recorder) SetLineCap(c gg.LineCap)    { r.lineCap = c }
func (r *recorder) SetLineJoin(gg.LineJoin)    {}
func (r *recorder) SetDash(lengths ...float64) { r.dash = lengths }
func (r *recorder) ClearDash()                 { r.dash = nil }
func (r *recorder) Stroke() error              { r.strokes++; return nil }

func TestRectangleRadiusClamp(t *testing.T) {
	s := DefaultSettings()
	s.CornerRadius = 100
	box := geometry.NewRect(0, 0, 200, 100)

	rec := &recorder{}
	if !BuildPath(rec, box, s, 0) {
		t.Fatal("rectangle should emit a path")
	}
	first := rec.ops[0]
	if first.name != "move" {
		t.Fatalf("first op = %s, want move", first.name)
	}
	if r := first.args[0] - box.X; r > 50+1e-9 {
		t.Errorf("corner radius = %v, want <= 50", r)
	}
	quads := 0
	for _, o := range rec.ops {
		if o.name == "quad" {
			quads++
		}
	}
	if quads != 4 {
		t.Errorf("quadratic corners = %d, want 4", quads)
	}
}

func TestRectangleWithoutRadiusIsPlain(t *testing.T) {
	rec := &recorder{}
	BuildPath(rec, geometry.NewRect(10, 20, 100, 50), DefaultSettings(), 0)
	want := []op{
		{"move", []float64{10, 20}},
		{"line", []float64{110, 20}},
		{"line", []float64{110, 70}},
		{"line", []float64{10, 70}},
		{name: "close"},
	}
	if !reflect.DeepEqual(rec.ops, want) {
		t.Errorf("ops = %+v, want %+v", rec.ops, want)
	}
}

func TestUnknownAndNoneEmitNothing(t *testing.T) {
	for _, k := range []Kind{KindNone, "spiral"} {
		s := DefaultSettings()
		s.Kind = k
		rec := &recorder{}
		if BuildPath(rec, geometry.NewRect(0, 0, 100, 100), s, 0) {
			t.Errorf("%s: BuildPath reported a path", k)
		}
		if len(rec.ops) != 0 {
			t.Errorf("%s: emitted %d ops", k, len(rec.ops))
		}
	}
}

func TestEveryKindEmitsFinitePath(t *testing.T) {
	box := geometry.NewRect(50, 40, 300, 200)
	for _, k := range Kinds {
		if k == KindNone {
			continue
		}
		for _, inset := range []float64{0, 10, 500} {
			s := DefaultSettings()
			s.Kind = k
			s.CornerRadius = 60
			s.Ratio = 1.5
			rec := &recorder{}
			if !BuildPath(rec, box, s, inset) {
				t.Errorf("%s: no path", k)
				continue
			}
			if rec.ops[0].name != "move" {
				t.Errorf("%s: path starts with %s", k, rec.ops[0].name)
			}
			if rec.ops[len(rec.ops)-1].name != "close" {
				t.Errorf("%s: path not closed", k)
			}
			for _, o := range rec.ops {
				for _, v := range o.args {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("%s inset %v: non-finite coordinate in %s", k, inset, o.name)
					}
				}
			}
		}
	}
}

func TestTicketIsDeterministic(t *testing.T) {
	s := DefaultSettings()
	s.Kind = KindTicket
	box := geometry.NewRect(0, 0, 400, 300)
	a, b := &recorder{}, &recorder{}
	BuildPath(a, box, s, 0)
	BuildPath(b, box, s, 0)
	if !reflect.DeepEqual(a.ops, b.ops) {
		t.Error("ticket path differs between builds")
	}
}

func TestPositionMovesCenter(t *testing.T) {
	s := DefaultSettings()
	s.Size = 50
	s.PositionX = 25
	rec := &recorder{}
	BuildPath(rec, geometry.NewRect(0, 0, 200, 100), s, 0)
	// 100x50 rectangle centered at (50, 50).
	if got := rec.ops[0].args; got[0] != 0 || got[1] != 25 {
		t.Errorf("top-left = %v, want [0 25]", got)
	}
}

func TestBorderOffsets(t *testing.T) {
	s := DefaultSettings()
	s.BorderThickness = 3
	if got := BorderOffsets(s); !reflect.DeepEqual(got, []float64{10}) {
		t.Errorf("solid offsets = %v", got)
	}
	s.BorderStyle = BorderDouble
	if got := BorderOffsets(s); !reflect.DeepEqual(got, []float64{10, 16}) {
		t.Errorf("double offsets = %v", got)
	}
}

func TestStrokeBorder(t *testing.T) {
	box := geometry.NewRect(0, 0, 200, 200)
	tests := []struct {
		name    string
		style   BorderStyle
		thick   float64
		strokes int
	}{
		{"zero thickness", BorderSolid, 0, 0},
		{"solid", BorderSolid, 4, 1},
		{"dashed", BorderDashed, 4, 1},
		{"double", BorderDouble, 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.BorderStyle = tt.style
			s.BorderThickness = tt.thick
			rec := &recorder{}
			if err := StrokeBorder(rec, box, s); err != nil {
				t.Fatalf("StrokeBorder: %v", err)
			}
			if rec.strokes != tt.strokes {
				t.Errorf("strokes = %d, want %d", rec.strokes, tt.strokes)
			}
			if tt.strokes > 0 && rec.lineCap != gg.LineCapRound {
				t.Error("border should use round caps")
			}
		})
	}
}

func TestDash(t *testing.T) {
	if got := Dash(BorderDashed, 2); !reflect.DeepEqual(got, []float64{6, 4}) {
		t.Errorf("dashed = %v", got)
	}
	if got := Dash(BorderDotted, 2); !reflect.DeepEqual(got, []float64{2, 2}) {
		t.Errorf("dotted = %v", got)
	}
	if Dash(BorderDouble, 2) != nil {
		t.Error("double should not dash")
	}
}

func TestNormalizeLegacyBorderEnabled(t *testing.T) {
	off := false
	s := DefaultSettings()
	s.BorderThickness = 5
	s.BorderEnabled = &off
	got := s.Normalize()
	if got.BorderThickness != 0 {
		t.Errorf("BorderThickness = %v, want 0", got.BorderThickness)
	}
	if got.BorderEnabled != nil {
		t.Error("legacy flag should be cleared")
	}
}

func TestNormalizeClamps(t *testing.T) {
	s := Settings{Size: 250, Ratio: math.NaN(), CornerRadius: -3, BorderColor: "nope"}
	got := s.Normalize()
	if got.Kind != KindRectangle || got.Size != 100 || got.Ratio != 1 || got.CornerRadius != 0 {
		t.Errorf("Normalize() = %+v", got)
	}
	if got.BorderColor != "#000000" {
		t.Errorf("BorderColor = %q", got.BorderColor)
	}
}
