// Package layout sizes the canvas around the image for an aspect-ratio
// preset, background padding and crop, and derives the Transform Context
// from the result.
package layout

import (
	"math"

	"snapframe/internal/transform"
	"snapframe/pkg/geometry"
)

// Aspect is a canvas aspect-ratio preset.
type Aspect string

// Aspect-ratio presets.
const (
	AspectAuto       Aspect = "auto"
	AspectSquare     Aspect = "square"
	AspectHorizontal Aspect = "horizontal" // 16:9
	AspectVertical   Aspect = "vertical"   // 9:16
	Aspect4x3        Aspect = "4:3"
	Aspect3x2        Aspect = "3:2"
	Aspect2x1        Aspect = "2:1"
	Aspect21x9       Aspect = "21:9"
	Aspect3x4        Aspect = "3:4"
	Aspect2x3        Aspect = "2:3"
	AspectInstagram  Aspect = "instagram" // 4:5
	AspectFacebook   Aspect = "facebook"  // 1.91:1
)

// Aspects lists the presets in menu order.
var Aspects = []Aspect{
	AspectAuto, AspectSquare, AspectHorizontal, AspectVertical,
	Aspect4x3, Aspect3x2, Aspect2x1, Aspect21x9, Aspect3x4, Aspect2x3,
	AspectInstagram, AspectFacebook,
}

// BaseSize returns the canvas size before padding for an image of the given
// size. Landscape presets widen the image's box, portrait presets heighten
// it; the image always fits. Unknown presets behave like auto.
func BaseSize(a Aspect, img geometry.Size) geometry.Size {
	w, h := img.Width, img.Height
	wide := func(rw, rh float64) geometry.Size {
		bw := math.Max(w, h*rw/rh)
		return geometry.NewSize(bw, bw*rh/rw)
	}
	tall := func(rw, rh float64) geometry.Size {
		bh := math.Max(h, w*rh/rw)
		return geometry.NewSize(bh*rw/rh, bh)
	}

	switch a {
	case AspectSquare:
		m := math.Max(w, h)
		return geometry.NewSize(m, m)
	case AspectHorizontal:
		return wide(16, 9)
	case AspectVertical:
		return tall(9, 16)
	case Aspect4x3:
		return wide(4, 3)
	case Aspect3x2:
		return wide(3, 2)
	case Aspect2x1:
		return wide(2, 1)
	case Aspect21x9:
		return wide(21, 9)
	case Aspect3x4:
		return tall(3, 4)
	case Aspect2x3:
		return tall(2, 3)
	case AspectInstagram:
		bw := math.Max(w, h*4/5)
		return geometry.NewSize(bw, bw*5/4)
	case AspectFacebook:
		bw := math.Max(w, h*1.91)
		return geometry.NewSize(bw, bw/1.91)
	default:
		return img
	}
}

// Params are the control inputs that affect layout.
type Params struct {
	Aspect         Aspect
	BackgroundSize float64 // padding as a percentage of the shorter base side
	Crop           float64 // percentage trimmed from each side, 0-49
}

// Layout is the computed canvas geometry for one render.
type Layout struct {
	Base    geometry.Size
	Padding float64 // pixels of background on each side
	Width   int     // canvas width
	Height  int     // canvas height

	// Image is where the (cropped) image is drawn. It keeps the image's
	// natural size; crop stretches the remaining region to fill it.
	Image geometry.Rect

	// Source is the crop rectangle in image pixels.
	Source geometry.Rect
}

// Compute lays out an image of the given natural size. Layout happens in two
// steps: the base size and padding are fixed first, then the image offset is
// derived from the final canvas size so both agree on rounding.
func Compute(img geometry.Size, p Params) Layout {
	base := BaseSize(p.Aspect, img)
	bg := geometry.Clamp(p.BackgroundSize, 0, 1000)
	padding := math.Round(bg / 100 * math.Min(base.Width, base.Height))

	l := Layout{
		Base:    base,
		Padding: padding,
		Width:   int(math.Round(base.Width + 2*padding)),
		Height:  int(math.Round(base.Height + 2*padding)),
	}

	offX := math.Round(padding + (base.Width-img.Width)/2)
	offY := math.Round(padding + (base.Height-img.Height)/2)
	l.Image = geometry.NewRect(offX, offY, img.Width, img.Height)

	crop := geometry.Clamp(p.Crop, 0, 49) / 100
	cw, ch := crop*img.Width, crop*img.Height
	l.Source = geometry.NewRect(cw, ch, img.Width-2*cw, img.Height-2*ch)
	return l
}

// Context returns the Transform Context for the layout.
func (l Layout) Context() transform.Context {
	return transform.Context{
		SourceX:      l.Source.X,
		SourceY:      l.Source.Y,
		SourceWidth:  l.Source.Width,
		SourceHeight: l.Source.Height,
		DestX:        l.Image.X,
		DestY:        l.Image.Y,
		DestWidth:    l.Image.Width,
		DestHeight:   l.Image.Height,
	}
}
