package render

import (
	"image"
	"image/color"
	"sync"
	"time"

	"golang.org/x/image/draw"

	"snapframe/internal/layout"
	"snapframe/internal/mask"
	"snapframe/internal/overlay"
	"snapframe/internal/transform"
)

// GradientType selects the background gradient geometry.
type GradientType string

// Gradient kinds.
const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Background describes the backdrop behind the image.
type Background struct {
	Transparent  bool         `json:"transparent" toml:"transparent"`
	Type         GradientType `json:"type" toml:"type"`
	Color1       string       `json:"color1" toml:"color1"`
	Color2       string       `json:"color2" toml:"color2"`
	Angle        float64      `json:"angle" toml:"angle"` // degrees, linear only
	CornerRadius float64      `json:"cornerRadius" toml:"corner_radius"`
}

// DefaultBackground returns the blue-to-purple diagonal gradient.
func DefaultBackground() Background {
	return Background{
		Type:   GradientLinear,
		Color1: "#3498db",
		Color2: "#9b59b6",
		Angle:  135,
	}
}

// Selection names the entity of each kind that shows its handles. Zero means
// none.
type Selection struct {
	Blur  int
	Shape int
	Text  int
}

// Scene is everything one render reads. It is assembled by the editor for
// every frame and never retained.
type Scene struct {
	Width, Height int

	// Image is the visible image. When nil only the background and
	// overlays are drawn and Layout is ignored.
	Image  image.Image
	Layout layout.Layout
	Mapper *transform.Mapper

	Background   Background
	Shadow       float64
	PaddingColor color.Color
	Mask         mask.Settings

	Texts  []*overlay.Text
	Blurs  []*overlay.Blur
	Shapes []*overlay.Shape

	Selection Selection
	Now       time.Time

	placeOnce sync.Once
	placed    *image.RGBA
}

// Placed returns a canvas-sized image with the cropped source scaled into
// its destination rectangle and transparent elsewhere. It is computed once
// per scene.
func (s *Scene) Placed() *image.RGBA {
	s.placeOnce.Do(func() {
		s.placed = image.NewRGBA(image.Rect(0, 0, max(s.Width, 0), max(s.Height, 0)))
		if s.Image == nil {
			return
		}
		b := s.Image.Bounds()
		src := s.Layout.Source
		sr := image.Rect(
			b.Min.X+int(src.X+0.5), b.Min.Y+int(src.Y+0.5),
			b.Min.X+int(src.X+src.Width+0.5), b.Min.Y+int(src.Y+src.Height+0.5),
		).Intersect(b)
		dst := s.Layout.Image
		dr := image.Rect(int(dst.X), int(dst.Y), int(dst.X+dst.Width), int(dst.Y+dst.Height))
		if sr.Empty() || dr.Empty() {
			return
		}
		if sr.Size() == dr.Size() {
			draw.Draw(s.placed, dr, s.Image, sr.Min, draw.Src)
			return
		}
		draw.CatmullRom.Scale(s.placed, dr, s.Image, sr, draw.Src, nil)
	})
	return s.placed
}

// HasImage reports whether an image is loaded.
func (s *Scene) HasImage() bool { return s.Image != nil }
