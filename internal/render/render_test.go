package render

import (
	"errors"
	"image"
	"image/color"
	"slices"
	"testing"

	"snapframe/internal/filter"
	"snapframe/internal/layout"
	"snapframe/internal/mask"
	"snapframe/internal/overlay"
	"snapframe/internal/transform"
	"snapframe/pkg/geometry"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -3 && d <= 3
}

func imageScene(img image.Image, params layout.Params) *Scene {
	size := geometry.NewSize(float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
	l := layout.Compute(size, params)
	return &Scene{
		Width:      l.Width,
		Height:     l.Height,
		Image:      img,
		Layout:     l,
		Mapper:     transform.New(l.Context(), size, transform.Padding{}),
		Background: Background{Transparent: true},
		Mask:       mask.Settings{Kind: mask.KindNone},
	}
}

func identityScene(w, h int) *Scene {
	return &Scene{
		Width:      w,
		Height:     h,
		Mapper:     transform.New(transform.IdentityContext(float64(w), float64(h)), geometry.NewSize(float64(w), float64(h)), transform.Padding{}),
		Background: Background{Transparent: true},
		Mask:       mask.Settings{Kind: mask.KindNone},
	}
}

func TestDefaultOrder(t *testing.T) {
	p := New(nil, nil)
	want := []string{"background", "shadow", "image", "border", "text", "blur", "shapes"}
	got := p.Renderers()
	if len(got) != len(want) {
		t.Fatalf("renderers = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("renderer %d = %s, want %s", i, got[i], want[i])
		}
	}
}

type recordRenderer struct {
	name string
	err  error
	ran  *[]string
}

func (r recordRenderer) Name() string { return r.name }
func (r recordRenderer) Render(*Canvas, *Scene) error {
	*r.ran = append(*r.ran, r.name)
	return r.err
}

func TestFailingRendererIsSkipped(t *testing.T) {
	var ran []string
	p := NewWith(
		recordRenderer{name: "a", err: errors.New("boom"), ran: &ran},
		recordRenderer{name: "b", ran: &ran},
	)
	c := p.Render(identityScene(4, 4))
	if len(ran) != 2 || ran[1] != "b" {
		t.Errorf("ran = %v, want both renderers", ran)
	}
	if c.Width() != 4 || c.Height() != 4 {
		t.Errorf("canvas = %dx%d", c.Width(), c.Height())
	}
}

func TestUniformBackground(t *testing.T) {
	s := identityScene(40, 30)
	s.Background = Background{Type: GradientLinear, Color1: "#ff0000", Color2: "#ff0000", Angle: 135}
	img := New(nil, nil).Render(s).Image()
	for _, p := range []image.Point{{0, 0}, {20, 15}, {39, 29}} {
		c := img.RGBAAt(p.X, p.Y)
		if !near(c.R, 255) || !near(c.G, 0) || !near(c.A, 255) {
			t.Errorf("pixel %v = %v, want red", p, c)
		}
	}
}

func TestTransparentBackground(t *testing.T) {
	s := identityScene(10, 10)
	img := New(nil, nil).Render(s).Image()
	if img.RGBAAt(5, 5).A != 0 {
		t.Error("transparent background should leave the canvas clear")
	}
}

func TestLinearGradientDirection(t *testing.T) {
	g := Gradient(100, 10, Background{Type: GradientLinear, Color1: "#000000", Color2: "#ffffff", Angle: 0})
	left := g.NRGBAAt(1, 5).R
	right := g.NRGBAAt(98, 5).R
	if left >= right {
		t.Errorf("left %d should be darker than right %d", left, right)
	}
}

func TestRadialGradientCenter(t *testing.T) {
	g := Gradient(50, 50, Background{Type: GradientRadial, Color1: "#ffffff", Color2: "#000000"})
	if g.NRGBAAt(25, 25).R <= g.NRGBAAt(0, 25).R {
		t.Error("radial gradient should start at the center")
	}
}

func TestImagePlacement(t *testing.T) {
	red := color.RGBA{220, 20, 20, 255}
	s := imageScene(solid(20, 10, red), layout.Params{Aspect: layout.AspectAuto, BackgroundSize: 50})
	if s.Width != 30 || s.Height != 20 {
		t.Fatalf("canvas = %dx%d, want 30x20", s.Width, s.Height)
	}
	img := New(nil, nil).Render(s).Image()
	if c := img.RGBAAt(10, 10); c != red {
		t.Errorf("inside = %v, want %v", c, red)
	}
	if c := img.RGBAAt(1, 1); c.A != 0 {
		t.Errorf("padding = %v, want transparent", c)
	}
}

func TestCropStretchesToDest(t *testing.T) {
	src := solid(40, 40, color.RGBA{0, 0, 255, 255})
	for y := 0; y < 40; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	// A 10% crop removes the red strip on the left.
	s := imageScene(src, layout.Params{Aspect: layout.AspectAuto, Crop: 10})
	img := New(nil, nil).Render(s).Image()
	if c := img.RGBAAt(1, 20); c.R > 30 || c.B < 200 {
		t.Errorf("left edge = %v, want blue after crop", c)
	}
}

func TestEllipseMaskClips(t *testing.T) {
	s := imageScene(solid(60, 60, color.RGBA{0, 200, 0, 255}), layout.Params{Aspect: layout.AspectAuto})
	s.Mask = mask.DefaultSettings()
	s.Mask.Kind = mask.KindEllipse
	img := New(nil, nil).Render(s).Image()
	if img.RGBAAt(1, 1).A != 0 {
		t.Error("corner should be clipped by the ellipse")
	}
	if c := img.RGBAAt(30, 30); c.G != 200 || c.A != 255 {
		t.Errorf("center = %v, want image", c)
	}
}

func TestShadowDarkensPadding(t *testing.T) {
	s := imageScene(solid(40, 40, color.RGBA{255, 255, 255, 255}), layout.Params{Aspect: layout.AspectAuto, BackgroundSize: 50})
	s.Shadow = 20
	img := New(nil, filter.NewResample()).Render(s).Image()
	// Just outside the image edge the shadow is visible.
	if img.RGBAAt(18, 40).A == 0 {
		t.Error("expected shadow next to the image")
	}
	if c := img.RGBAAt(40, 40); c.R != 255 || c.A != 255 {
		t.Errorf("image = %v, want white on top of the shadow", c)
	}
}

func TestShapeStroke(t *testing.T) {
	s := identityScene(100, 100)
	s.Shapes = []*overlay.Shape{{
		ID: 1, Type: overlay.ShapeRectangle,
		RelX: 0.5, RelY: 0.5, RelWidth: 0.6, RelHeight: 0.6,
		Color: "#ff0000", StrokeWidth: 4,
	}}
	img := New(nil, nil).Render(s).Image()
	if c := img.RGBAAt(50, 20); c.A < 128 || c.R < 128 {
		t.Errorf("edge = %v, want red stroke", c)
	}
	if img.RGBAAt(50, 50).A != 0 {
		t.Error("rectangle interior should stay clear")
	}
}

func TestBlurRegionOnly(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 80, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			if x < 40 {
				src.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			} else {
				src.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}
	s := imageScene(src, layout.Params{Aspect: layout.AspectAuto})
	s.Blurs = []*overlay.Blur{{
		ID: 1, Type: overlay.BlurRectangle,
		RelX: 0.5, RelY: 0.5, RelWidth: 0.5, RelHeight: 1,
		Intensity: 6,
	}}
	img := New(nil, filter.NewResample()).Render(s).Image()

	softened := false
	for x := 22; x < 58; x++ {
		if v := img.RGBAAt(x, 20).R; v > 20 && v < 235 {
			softened = true
		}
	}
	if !softened {
		t.Error("edge inside the blur region should be softened")
	}
	if c := img.RGBAAt(2, 20); c.R != 255 {
		t.Errorf("outside region = %v, want untouched white", c)
	}
}

func TestFontsMeasure(t *testing.T) {
	f, err := NewFonts()
	if err != nil {
		t.Fatal(err)
	}
	short := f.MeasureText("hi", "Arial", 24)
	long := f.MeasureText("hello world", "Arial", 24)
	if short <= 0 || long <= short {
		t.Errorf("widths = %v, %v", short, long)
	}
	if f.MeasureText("hi", "Arial", 48) <= short {
		t.Error("larger size should measure wider")
	}
	if got := f.MeasureText("hi", "No Such Font", 24); got != short {
		t.Errorf("fallback width = %v, want %v", got, short)
	}
	fams := f.Families()
	if len(fams) != len(builtinFaces) || !slices.IsSorted(fams) {
		t.Errorf("families = %v", fams)
	}
}

func TestTextDrawn(t *testing.T) {
	f, err := NewFonts()
	if err != nil {
		t.Fatal(err)
	}
	s := identityScene(200, 100)
	s.Texts = []*overlay.Text{{
		ID: 1, Text: "HHHH", RelX: 0.5, RelY: 0.5,
		RelFontSize: 40.0 / 100, FontFamily: "Arial", Color: "#000000",
	}}
	img := New(f, nil).Render(s).Image()
	inked := 0
	for y := 30; y < 70; y++ {
		for x := 50; x < 150; x++ {
			if img.RGBAAt(x, y).A > 0 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("expected glyph pixels around the anchor")
	}
}

func TestPulseAlphaRange(t *testing.T) {
	for _, ms := range []int64{0, 100, 628, 1257, 5000} {
		a := PulseAlpha(timeFromMillis(ms))
		if a < 0.82-1e-9 || a > 1+1e-9 {
			t.Errorf("PulseAlpha(%d) = %v", ms, a)
		}
	}
}
