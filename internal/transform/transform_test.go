package transform

import (
	"math"
	"testing"

	"snapframe/pkg/geometry"
)

func approx(a, b float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= 1e-6*scale
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		ctx   Context
		image geometry.Size
		pad   Padding
	}{
		{
			name:  "no padding",
			ctx:   Context{SourceWidth: 1000, SourceHeight: 800, DestX: 200, DestY: 300, DestWidth: 1000, DestHeight: 800},
			image: geometry.NewSize(1000, 800),
		},
		{
			name:  "cropped",
			ctx:   Context{SourceX: 100, SourceY: 80, SourceWidth: 800, SourceHeight: 640, DestX: 300, DestY: 380, DestWidth: 800, DestHeight: 640},
			image: geometry.NewSize(1000, 800),
		},
		{
			name:  "non-uniform scale",
			ctx:   Context{SourceX: 10, SourceY: 5, SourceWidth: 500, SourceHeight: 200, DestX: 40, DestY: 60, DestWidth: 250, DestHeight: 300},
			image: geometry.NewSize(520, 210),
		},
		{
			name:  "padding normalization",
			ctx:   Context{SourceWidth: 700, SourceHeight: 500, DestX: 50, DestY: 50, DestWidth: 700, DestHeight: 500},
			image: geometry.NewSize(700, 500),
			pad: Padding{
				Active: true, OriginalWidth: 900, OriginalHeight: 640,
				OffsetX: 50, OffsetY: 50, ContentOffsetX: 150, ContentOffsetY: 120,
			},
		},
		{
			name:  "direct padding",
			ctx:   Context{SourceWidth: 1040, SourceHeight: 840, DestX: 10, DestY: 10, DestWidth: 1040, DestHeight: 840},
			image: geometry.NewSize(1040, 840),
			pad:   Padding{Active: true, OriginalWidth: 1000, OriginalHeight: 800, OffsetX: 20, OffsetY: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.ctx, tt.image, tt.pad)
			d := tt.ctx.Dest()
			for _, p := range []geometry.Point2D{
				d.TopLeft(), d.Center(), d.BottomRight(),
				geometry.NewPoint2D(d.X+d.Width*0.31, d.Y+d.Height*0.77),
			} {
				got := m.ToAbsolute(m.ToRelative(p))
				if !approx(got.X, p.X) || !approx(got.Y, p.Y) {
					t.Errorf("ToAbsolute(ToRelative(%+v)) = %+v", p, got)
				}
			}
			for _, l := range []float64{1, 30, 250.5} {
				if got := m.ToAbsoluteSize(m.ToRelativeSize(l)); !approx(got, l) {
					t.Errorf("size round trip %v -> %v", l, got)
				}
			}
			for _, f := range []float64{8, 24, 119.5} {
				if got := m.ToAbsoluteFontSize(m.ToRelativeFontSize(f)); !approx(got, f) {
					t.Errorf("font round trip %v -> %v", f, got)
				}
			}
		})
	}
}

func TestPaddingRelativeToOriginal(t *testing.T) {
	// Visible image is the content (700x500) plus 50px padding; the content
	// sat at (150,120) inside a 900x640 upload.
	m := New(
		Context{SourceWidth: 800, SourceHeight: 600, DestWidth: 800, DestHeight: 600},
		geometry.NewSize(800, 600),
		Padding{Active: true, OriginalWidth: 900, OriginalHeight: 640, OffsetX: 50, OffsetY: 50, ContentOffsetX: 150, ContentOffsetY: 120},
	)
	got := m.ToRelative(geometry.NewPoint2D(50, 50))
	want := geometry.NewPoint2D(150.0/900, 120.0/640)
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) {
		t.Errorf("content corner = %+v, want %+v", got, want)
	}
	if ref := m.ReferenceSize(); ref != geometry.NewSize(900, 640) {
		t.Errorf("ReferenceSize() = %+v", ref)
	}
}

func TestIdentityCanvasSize(t *testing.T) {
	m := New(IdentityContext(400, 300), geometry.NewSize(400, 300), Padding{})
	if got := m.ToRelativeSize(30); !approx(got, 30.0/400) {
		t.Errorf("ToRelativeSize(30) = %v, want %v", got, 30.0/400)
	}
	if got := m.ToRelative(geometry.NewPoint2D(100, 150)); !approx(got.X, 0.25) || !approx(got.Y, 0.5) {
		t.Errorf("ToRelative = %+v", got)
	}
}

func TestFontSizeClamped(t *testing.T) {
	m := New(IdentityContext(400, 300), geometry.NewSize(400, 300), Padding{})
	if got := m.ToAbsoluteFontSize(1); got != MaxFontSize {
		t.Errorf("ToAbsoluteFontSize(1) = %v, want %v", got, MaxFontSize)
	}
	if got := m.ToAbsoluteFontSize(0.001); got != MinFontSize {
		t.Errorf("ToAbsoluteFontSize(0.001) = %v, want %v", got, MinFontSize)
	}
}

func TestDegenerateIsIdentity(t *testing.T) {
	m := New(Context{}, geometry.Size{}, Padding{})
	p := geometry.NewPoint2D(12, 34)
	if got := m.ToRelative(p); got != p {
		t.Errorf("ToRelative = %+v, want %+v", got, p)
	}
}
