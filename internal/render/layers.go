package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"snapframe/internal/filter"
	"snapframe/internal/mask"
	"snapframe/pkg/colorutil"
	"snapframe/pkg/geometry"
)

type backgroundRenderer struct{}

func (backgroundRenderer) Name() string { return "background" }

func (backgroundRenderer) Render(c *Canvas, s *Scene) error {
	bg := s.Background
	if bg.Transparent {
		return nil
	}
	w, h := float64(c.Width()), float64(c.Height())
	r := geometry.Clamp(bg.CornerRadius, 0, math.Min(w, h)/2)
	cov := c.Coverage(func(dc *gg.Context) bool {
		if r > 0 {
			dc.DrawRoundedRectangle(0, 0, w, h, r)
		} else {
			dc.DrawRectangle(0, 0, w, h)
		}
		return true
	})
	c.Composite(Gradient(c.Width(), c.Height(), bg), cov)
	return nil
}

// Gradient renders the background gradient at w x h. Linear gradients run
// through the center along Angle over the longer side; radial gradients
// spread from the center to half the longer side.
func Gradient(w, h int, bg Background) *image.NRGBA {
	c1 := gg.FromColor(colorutil.ParseHexOr(bg.Color1, colorutil.Black))
	c2 := gg.FromColor(colorutil.ParseHexOr(bg.Color2, colorutil.Black))
	fw, fh := float64(w), float64(h)
	cx, cy := fw/2, fh/2
	size := math.Max(fw, fh)

	var brush interface{ ColorAt(x, y float64) gg.RGBA }
	if bg.Type == GradientRadial {
		brush = gg.NewRadialGradientBrush(cx, cy, 0, size/2).
			AddColorStop(0, c1).
			AddColorStop(1, c2)
	} else {
		a := bg.Angle * math.Pi / 180
		dx, dy := math.Cos(a)*size/2, math.Sin(a)*size/2
		brush = gg.NewLinearGradientBrush(cx-dx, cy-dy, cx+dx, cy+dy).
			AddColorStop(0, c1).
			AddColorStop(1, c2)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col := brush.ColorAt(float64(x)+0.5, float64(y)+0.5)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = unit8(col.R)
			img.Pix[i+1] = unit8(col.G)
			img.Pix[i+2] = unit8(col.B)
			img.Pix[i+3] = unit8(col.A)
		}
	}
	return img
}

func unit8(v float64) uint8 {
	return uint8(math.Round(geometry.Clamp(v, 0, 1) * 255))
}

// silhouette is the filled outline of the image: the mask path when a mask
// clips, else the destination rectangle.
func silhouette(c *Canvas, s *Scene) *image.Alpha {
	dst := s.Layout.Image
	return c.Coverage(func(dc *gg.Context) bool {
		if s.Mask.Clips() {
			return mask.BuildPath(dc, dst, s.Mask, 0)
		}
		dc.DrawRectangle(dst.X, dst.Y, dst.Width, dst.Height)
		return true
	})
}

type shadowRenderer struct {
	blur filter.Blurrer
}

func (shadowRenderer) Name() string { return "shadow" }

// Render draws a blurred dark copy of the silhouette, then fills the
// silhouette with the padding color so transparent images sit on it.
func (r shadowRenderer) Render(c *Canvas, s *Scene) error {
	if !s.HasImage() || s.Shadow <= 0 {
		return nil
	}
	shape := silhouette(c, s)
	if shape == nil {
		return nil
	}

	alpha := math.Min(s.Shadow/30, 0.7)
	layer := image.NewRGBA(image.Rect(0, 0, c.Width(), c.Height()))
	drawMasked(layer, tinted(color.NRGBA{A: unit8(alpha)}), shape)
	blurred, err := r.blur.Blur(layer, s.Shadow/2)
	if err != nil {
		return fmt.Errorf("shadow blur: %w", err)
	}
	c.Composite(blurred, nil)

	fill := s.PaddingColor
	if fill == nil {
		fill = colorutil.White
	}
	c.Composite(tinted(fill), shape)
	return nil
}

type imageRenderer struct{}

func (imageRenderer) Name() string { return "image" }

func (imageRenderer) Render(c *Canvas, s *Scene) error {
	if !s.HasImage() {
		return nil
	}
	var clip *image.Alpha
	if s.Mask.Clips() {
		clip = c.Coverage(func(dc *gg.Context) bool {
			return mask.BuildPath(dc, s.Layout.Image, s.Mask, 0)
		})
		if clip == nil {
			return nil
		}
	}
	c.Composite(s.Placed(), clip)
	return nil
}

type borderRenderer struct{}

func (borderRenderer) Name() string { return "border" }

func (borderRenderer) Render(c *Canvas, s *Scene) error {
	if !s.HasImage() || s.Mask.BorderThickness <= 0 || !s.Mask.Clips() {
		return nil
	}
	return c.Vector(func(sf Surface) error {
		return mask.StrokeBorder(sf, s.Layout.Image, s.Mask)
	})
}
