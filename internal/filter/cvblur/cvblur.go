// Package cvblur implements filter.Blurrer with an OpenCV Gaussian blur.
package cvblur

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"snapframe/internal/filter"
)

// Gaussian blurs with gocv.GaussianBlur. The kernel size is derived from
// sigma by OpenCV.
type Gaussian struct{}

// New returns a Gaussian blurrer.
func New() Gaussian { return Gaussian{} }

var _ filter.Blurrer = Gaussian{}

// Blur implements filter.Blurrer.
func (Gaussian) Blur(img image.Image, sigma float64) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("gaussian blur: nil image")
	}
	rgba := filter.ToRGBA(img)
	if sigma <= 0 || rgba.Bounds().Empty() {
		return rgba, nil
	}
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()

	// RGBA pixels are premultiplied, so blurring all four channels alike
	// keeps edges free of dark fringes.
	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("gaussian blur: mat conversion: %w", err)
	}
	defer mat.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(mat, &blurred, image.Pt(0, 0), sigma, sigma, gocv.BorderReflect101)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(out.Pix, blurred.ToBytes())
	return out, nil
}
