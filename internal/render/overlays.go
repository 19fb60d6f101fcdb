package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/gogpu/gg"

	"snapframe/internal/filter"
	"snapframe/internal/overlay"
	"snapframe/pkg/colorutil"
	"snapframe/pkg/geometry"
)

// Adornment colors.
var (
	blurOutline     = colorutil.MustParseHex("#3498db")
	handleFill      = colorutil.MustParseHex("#4CA0FF")
	handleStroke    = colorutil.MustParseHex("#0066CC")
	blurDeleteFill  = colorutil.MustParseHex("#FF4C4C")
	blurDeleteRing  = colorutil.MustParseHex("#CC0000")
	shapeGlow       = colorutil.WithAlpha(colorutil.MustParseHex("#2980ff"), 0.3)
	shapeCorner     = colorutil.MustParseHex("#2980ff")
	shapeDeleteFill = colorutil.MustParseHex("#e74c3c")
	textOutline     = colorutil.TextOutline
	textDeleteFill  = color.RGBA{R: 255, A: 255}
)

// Adornment geometry.
const (
	shapeCornerLength = 12.0
	textCornerLength  = 15.0
	deleteCrossMargin = 4.0
)

type textRenderer struct {
	fonts *Fonts
}

func (textRenderer) Name() string { return "text" }

func (r textRenderer) Render(c *Canvas, s *Scene) error {
	if len(s.Texts) == 0 || r.fonts == nil {
		return nil
	}
	return c.Vector(func(sf Surface) error {
		var errs []error
		for _, t := range s.Texts {
			size := t.FontSize(s.Mapper)
			face := r.fonts.Face(t.FontFamily, size)
			center := t.Center(s.Mapper)
			w := r.fonts.MeasureText(t.Text, t.FontFamily, size)
			m := face.Metrics()

			sf.SetFont(face)
			sf.SetColor(colorutil.ParseHexOr(t.Color, colorutil.Black))
			// Center horizontally and vertically on the anchor.
			sf.DrawString(t.Text, center.X-w/2, center.Y+(m.Ascent-m.Descent)/2)

			if t.ID == s.Selection.Text {
				errs = append(errs, drawTextSelection(sf, t.Outline(s.Mapper, r.fonts)))
			}
		}
		return errors.Join(errs...)
	})
}

func drawTextSelection(sf Surface, o geometry.Rect) error {
	var errs []error
	sf.SetColor(textOutline)
	sf.SetLineWidth(2)
	sf.SetDash(6, 3)
	sf.DrawRectangle(o.X, o.Y, o.Width, o.Height)
	errs = append(errs, sf.Stroke())
	sf.ClearDash()

	sf.SetLineWidth(3)
	errs = append(errs, strokeCorners(sf, o, textCornerLength))

	hr := geometry.RectFromCenter(o.BottomRight(), overlay.TextHandleSize, overlay.TextHandleSize)
	sf.SetColor(handleFill)
	sf.DrawRectangle(hr.X, hr.Y, hr.Width, hr.Height)
	errs = append(errs, sf.Fill())

	d := o.TopRight()
	rad := overlay.TextDeleteSize / 2
	sf.DrawCircle(d.X, d.Y, rad)
	sf.SetColor(textDeleteFill)
	errs = append(errs, sf.Fill())
	sf.DrawCircle(d.X, d.Y, rad)
	sf.SetColor(color.White)
	sf.SetLineWidth(2)
	errs = append(errs, sf.Stroke())
	errs = append(errs, strokeCross(sf, d, rad*0.3))
	return errors.Join(errs...)
}

// strokeCorners strokes an L at each corner of r.
func strokeCorners(sf Surface, r geometry.Rect, n float64) error {
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	corners := [][3][2]float64{
		{{x0, y0 + n}, {x0, y0}, {x0 + n, y0}},
		{{x1 - n, y0}, {x1, y0}, {x1, y0 + n}},
		{{x0, y1 - n}, {x0, y1}, {x0 + n, y1}},
		{{x1 - n, y1}, {x1, y1}, {x1, y1 - n}},
	}
	for _, c := range corners {
		sf.MoveTo(c[0][0], c[0][1])
		sf.LineTo(c[1][0], c[1][1])
		sf.LineTo(c[2][0], c[2][1])
	}
	return sf.Stroke()
}

// strokeCross strokes an X of half-size h centered on p in the current
// color.
func strokeCross(sf Surface, p geometry.Point2D, h float64) error {
	sf.MoveTo(p.X-h, p.Y-h)
	sf.LineTo(p.X+h, p.Y+h)
	sf.MoveTo(p.X+h, p.Y-h)
	sf.LineTo(p.X-h, p.Y+h)
	return sf.Stroke()
}

type blurRenderer struct {
	blur filter.Blurrer
}

func (blurRenderer) Name() string { return "blur" }

// Render redraws each region from the image, or from the frame so far when
// no image is loaded, through the blur filter and the region's outline.
func (r blurRenderer) Render(c *Canvas, s *Scene) error {
	if len(s.Blurs) == 0 {
		return nil
	}
	var source image.Image
	if s.HasImage() {
		source = s.Placed()
	} else {
		source = c.Snapshot()
	}

	var errs []error
	for _, b := range s.Blurs {
		bounds := b.Bounds(s.Mapper)
		region := image.Rect(
			int(math.Floor(bounds.X)), int(math.Floor(bounds.Y)),
			int(math.Ceil(bounds.X+bounds.Width)), int(math.Ceil(bounds.Y+bounds.Height)),
		)
		blurred, err := filter.Region(r.blur, source, region, b.Intensity)
		if err != nil {
			errs = append(errs, fmt.Errorf("blur %d: %w", b.ID, err))
			continue
		}
		clip := c.Coverage(func(dc *gg.Context) bool {
			if b.Type == overlay.BlurCircle {
				ctr := b.Center(s.Mapper)
				dc.DrawCircle(ctr.X, ctr.Y, b.Radius(s.Mapper))
			} else {
				dc.DrawRectangle(bounds.X, bounds.Y, bounds.Width, bounds.Height)
			}
			return true
		})
		if clip != nil {
			c.Composite(blurred, clip)
		}
	}

	if sel, ok := selectedBlur(s); ok {
		errs = append(errs, c.Vector(func(sf Surface) error {
			return drawBlurSelection(sf, sel, s)
		}))
	}
	return errors.Join(errs...)
}

func selectedBlur(s *Scene) (*overlay.Blur, bool) {
	if s.Selection.Blur == 0 {
		return nil, false
	}
	for _, b := range s.Blurs {
		if b.ID == s.Selection.Blur {
			return b, true
		}
	}
	return nil, false
}

func drawBlurSelection(sf Surface, b *overlay.Blur, s *Scene) error {
	var errs []error
	sf.SetColor(blurOutline)
	sf.SetLineWidth(2)
	sf.SetDash(5, 5)
	if b.Type == overlay.BlurCircle {
		ctr := b.Center(s.Mapper)
		sf.DrawCircle(ctr.X, ctr.Y, b.Radius(s.Mapper))
	} else {
		r := b.Bounds(s.Mapper)
		sf.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	}
	errs = append(errs, sf.Stroke())
	sf.ClearDash()

	h := b.ResizeHandle(s.Mapper)
	errs = append(errs, dot(sf, h, overlay.BlurHandleRadius, handleFill, handleStroke))

	d := b.DeleteGlyph(s.Mapper)
	errs = append(errs, dot(sf, d, overlay.BlurDeleteRadius, blurDeleteFill, blurDeleteRing))
	sf.SetColor(color.White)
	sf.SetLineWidth(2)
	errs = append(errs, strokeCross(sf, d, 4))
	return errors.Join(errs...)
}

// dot fills a circle and rings it with a 1px stroke.
func dot(sf Surface, p geometry.Point2D, r float64, fill, ring color.Color) error {
	sf.DrawCircle(p.X, p.Y, r)
	sf.SetColor(fill)
	err := sf.Fill()
	sf.DrawCircle(p.X, p.Y, r)
	sf.SetColor(ring)
	sf.SetLineWidth(1)
	return errors.Join(err, sf.Stroke())
}

type shapeRenderer struct{}

func (shapeRenderer) Name() string { return "shapes" }

func (shapeRenderer) Render(c *Canvas, s *Scene) error {
	if len(s.Shapes) == 0 {
		return nil
	}
	return c.Vector(func(sf Surface) error {
		var errs []error
		for _, sh := range s.Shapes {
			errs = append(errs, drawShape(sf, sh, s))
			if sh.ID == s.Selection.Shape {
				errs = append(errs, drawShapeSelection(sf, sh, s))
			}
		}
		return errors.Join(errs...)
	})
}

func drawShape(sf Surface, sh *overlay.Shape, s *Scene) error {
	b := sh.Bounds(s.Mapper)
	sf.SetColor(colorutil.ParseHexOr(sh.Color, colorutil.Black))
	sf.SetLineWidth(sh.StrokeWidth)
	sf.SetLineCap(gg.LineCapButt)
	sf.SetLineJoin(gg.LineJoinMiter)
	sf.ClearDash()

	switch sh.Type {
	case overlay.ShapeRectangle:
		sf.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	case overlay.ShapeRoundedRect:
		sf.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, overlay.RoundedCornerRadius(b.Width, b.Height))
	case overlay.ShapeCircle:
		c := b.Center()
		sf.DrawCircle(c.X, c.Y, math.Min(b.Width, b.Height)/2)
	case overlay.ShapeEllipse:
		c := b.Center()
		sf.DrawEllipse(c.X, c.Y, b.Width/2, b.Height/2)
	case overlay.ShapeArrow:
		tail, head := sh.Endpoints(s.Mapper)
		left, right := overlay.ArrowHead(tail, head)
		sf.MoveTo(tail.X, tail.Y)
		sf.LineTo(head.X, head.Y)
		sf.MoveTo(head.X, head.Y)
		sf.LineTo(left.X, left.Y)
		sf.MoveTo(head.X, head.Y)
		sf.LineTo(right.X, right.Y)
	default:
		return nil
	}
	return sf.Stroke()
}

// PulseAlpha is the opacity of the selected shape's corner marks at t. It
// oscillates between 0.82 and 1.
func PulseAlpha(t time.Time) float64 {
	ms := float64(t.UnixMilli())
	pulse := math.Sin(ms/400)*0.3 + 0.7
	return 0.7 + 0.3*pulse
}

func drawShapeSelection(sf Surface, sh *overlay.Shape, s *Scene) error {
	var errs []error
	b := sh.Bounds(s.Mapper)
	o := b.Inset(-overlay.ShapeOutlinePadding)

	sf.SetColor(shapeGlow)
	sf.SetLineWidth(1)
	sf.DrawRectangle(o.X, o.Y, o.Width, o.Height)
	errs = append(errs, sf.Stroke())

	sf.SetColor(colorutil.WithAlpha(shapeCorner, PulseAlpha(s.Now)))
	sf.SetLineWidth(2)
	errs = append(errs, strokeCorners(sf, o, shapeCornerLength))

	hr := sh.ResizeHandleRect(s.Mapper)
	sf.SetColor(handleFill)
	sf.DrawRectangle(hr.X, hr.Y, hr.Width, hr.Height)
	errs = append(errs, sf.Fill())
	sf.SetColor(handleStroke)
	sf.SetLineWidth(1)
	sf.DrawRectangle(hr.X, hr.Y, hr.Width, hr.Height)
	errs = append(errs, sf.Stroke())

	dr := sh.DeleteGlyphRect(s.Mapper)
	dc := dr.Center()
	sf.SetColor(shapeDeleteFill)
	sf.DrawCircle(dc.X, dc.Y, dr.Width/2)
	errs = append(errs, sf.Fill())
	sf.SetColor(color.White)
	sf.SetLineWidth(2)
	errs = append(errs, strokeCross(sf, dc, dr.Width/2-deleteCrossMargin))
	return errors.Join(errs...)
}
