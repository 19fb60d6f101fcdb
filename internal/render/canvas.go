package render

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/draw"

	"snapframe/internal/bitmap"
)

// Surface is the immediate-mode drawing API renderers paint vector content
// with. *gg.Context implements it.
type Surface interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	NewSubPath()
	DrawRectangle(x, y, w, h float64)
	DrawRoundedRectangle(x, y, w, h, r float64)
	DrawCircle(x, y, r float64)
	DrawEllipse(x, y, rx, ry float64)

	SetColor(c color.Color)
	SetLineWidth(width float64)
	SetLineCap(lineCap gg.LineCap)
	SetLineJoin(join gg.LineJoin)
	SetDash(lengths ...float64)
	ClearDash()
	Fill() error
	Stroke() error

	SetFont(face text.Face)
	DrawString(s string, x, y float64)
}

var _ Surface = (*gg.Context)(nil)

// Canvas is the raster a render composes into. Vector content is drawn on
// transparent gg layers and composited in order, so each renderer sees the
// result of the ones before it.
type Canvas struct {
	frame *image.RGBA
}

// NewCanvas returns a transparent w x h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{frame: image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.frame.Rect.Dx() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.frame.Rect.Dy() }

// Image returns the composed frame. The caller must not modify it.
func (c *Canvas) Image() *image.RGBA { return c.frame }

// Snapshot returns a copy of the current frame.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.frame.Rect)
	copy(out.Pix, c.frame.Pix)
	return out
}

// EncodePNG writes the frame as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return bitmap.EncodePNG(w, c.frame)
}

// Vector runs paint on a fresh transparent layer and composites the layer
// over the frame. The layer is composited even if paint fails part way.
func (c *Canvas) Vector(paint func(s Surface) error) error {
	if c.frame.Rect.Empty() {
		return nil
	}
	dc := gg.NewContext(c.Width(), c.Height())
	defer dc.Close()
	err := paint(dc)
	draw.Draw(c.frame, c.frame.Rect, layerImage(dc), image.Point{}, draw.Over)
	return err
}

// Composite draws src over the frame through the coverage mask m. A nil
// mask composites src everywhere.
func (c *Canvas) Composite(src image.Image, m *image.Alpha) {
	if m == nil {
		draw.Draw(c.frame, c.frame.Rect, src, src.Bounds().Min, draw.Over)
		return
	}
	draw.DrawMask(c.frame, c.frame.Rect, src, src.Bounds().Min, m, image.Point{}, draw.Over)
}

// Coverage rasterizes the filled path that build emits into an alpha mask
// the size of the canvas. It returns nil when build reports no path.
func (c *Canvas) Coverage(build func(dc *gg.Context) bool) *image.Alpha {
	return coverage(c.Width(), c.Height(), build)
}

func coverage(w, h int, build func(dc *gg.Context) bool) *image.Alpha {
	if w <= 0 || h <= 0 {
		return nil
	}
	dc := gg.NewContext(w, h)
	defer dc.Close()
	if !build(dc) {
		return nil
	}
	dc.SetColor(color.White)
	if err := dc.Fill(); err != nil {
		return nil
	}
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Draw(m, m.Rect, layerImage(dc), image.Point{}, draw.Src)
	return m
}

// layerImage returns the pixels of dc. gg pixmaps hold straight alpha, so
// the bytes are read as NRGBA.
func layerImage(dc *gg.Context) image.Image {
	img := dc.Image()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		return img
	}
	return &image.NRGBA{Pix: rgba.Pix, Stride: rgba.Stride, Rect: rgba.Rect}
}

// tinted returns a uniform image of col.
func tinted(col color.Color) image.Image {
	return image.NewUniform(col)
}

// drawMasked composites src over dst through m.
func drawMasked(dst *image.RGBA, src image.Image, m *image.Alpha) {
	draw.DrawMask(dst, dst.Rect, src, src.Bounds().Min, m, image.Point{}, draw.Over)
}
