// Package filter provides the image blur used by blur overlays and the drop
// shadow.
package filter

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Blurrer blurs an image. Sigma is the blur radius in pixels; zero or
// negative sigma returns the input unchanged.
type Blurrer interface {
	Blur(img image.Image, sigma float64) (image.Image, error)
}

// BlurFunc adapts a function to Blurrer.
type BlurFunc func(img image.Image, sigma float64) (image.Image, error)

// Blur calls f.
func (f BlurFunc) Blur(img image.Image, sigma float64) (image.Image, error) {
	return f(img, sigma)
}

// Resample blurs by shrinking the image by a factor tied to sigma and
// scaling it back up with a smooth kernel. Passes repeats the round trip;
// two passes approximate a Gaussian well enough for redaction.
type Resample struct {
	Passes int
}

// NewResample returns a two-pass resample blur.
func NewResample() *Resample {
	return &Resample{Passes: 2}
}

// Blur implements Blurrer.
func (r *Resample) Blur(img image.Image, sigma float64) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("resample blur: nil image")
	}
	b := img.Bounds()
	out := ToRGBA(img)
	if sigma <= 0 || b.Empty() {
		return out, nil
	}

	passes := r.Passes
	if passes < 1 {
		passes = 1
	}
	// Each pass spreads by roughly the shrink factor; split sigma across them.
	factor := math.Max(1, sigma/math.Sqrt(float64(passes)))
	sw := max(1, int(math.Round(float64(b.Dx())/factor)))
	sh := max(1, int(math.Round(float64(b.Dy())/factor)))

	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	for range passes {
		draw.ApproxBiLinear.Scale(small, small.Bounds(), out, out.Bounds(), draw.Src, nil)
		draw.BiLinear.Scale(out, out.Bounds(), small, small.Bounds(), draw.Src, nil)
	}
	return out, nil
}

// ToRGBA returns a copy of img as an *image.RGBA with its origin at zero.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Region blurs only the part of img inside r, returning a canvas-sized image
// that is transparent outside the region. The region is grown by three sigma
// before blurring so edges sample real neighbours.
func Region(b Blurrer, img image.Image, r image.Rectangle, sigma float64) (*image.RGBA, error) {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	pad := int(math.Ceil(3 * math.Max(sigma, 0)))
	src := r.Inset(-pad).Intersect(bounds)
	if src.Empty() {
		return out, nil
	}

	sub := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(sub, sub.Bounds(), img, src.Min, draw.Src)
	blurred, err := b.Blur(sub, sigma)
	if err != nil {
		return nil, err
	}
	draw.Draw(out, src, blurred, blurred.Bounds().Min, draw.Src)
	return out, nil
}
