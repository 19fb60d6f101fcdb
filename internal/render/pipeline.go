// Package render composes a frame from the background, the masked image
// and the overlay entities.
//
// A Pipeline holds an ordered list of Renderers and runs them front to
// back over a fresh Canvas. The default order is background, shadow, image,
// mask border, text, blur, shapes. A renderer that fails is logged and
// skipped so one bad layer never aborts the frame.
package render

import (
	"log/slog"

	"snapframe/internal/filter"
	"snapframe/internal/logging"
)

// Renderer draws one layer of the frame.
type Renderer interface {
	Name() string
	Render(c *Canvas, s *Scene) error
}

// Pipeline renders scenes through an ordered list of renderers.
type Pipeline struct {
	renderers []Renderer
	fonts     *Fonts
	blur      filter.Blurrer
}

// New returns a Pipeline with the default renderer order.
func New(fonts *Fonts, blur filter.Blurrer) *Pipeline {
	if blur == nil {
		blur = filter.NewResample()
	}
	p := &Pipeline{fonts: fonts, blur: blur}
	p.renderers = []Renderer{
		backgroundRenderer{},
		shadowRenderer{blur: blur},
		imageRenderer{},
		borderRenderer{},
		textRenderer{fonts: fonts},
		blurRenderer{blur: blur},
		shapeRenderer{},
	}
	return p
}

// NewWith returns a Pipeline running exactly the given renderers.
func NewWith(renderers ...Renderer) *Pipeline {
	return &Pipeline{renderers: renderers}
}

// Renderers returns the renderer names in order.
func (p *Pipeline) Renderers() []string {
	names := make([]string, len(p.renderers))
	for i, r := range p.renderers {
		names[i] = r.Name()
	}
	return names
}

// Fonts returns the font registry used for text.
func (p *Pipeline) Fonts() *Fonts { return p.fonts }

// Render draws s onto a new canvas.
func (p *Pipeline) Render(s *Scene) *Canvas {
	c := NewCanvas(s.Width, s.Height)
	for _, r := range p.renderers {
		if err := r.Render(c, s); err != nil {
			logging.Logger().Warn("renderer failed", slog.String("renderer", r.Name()), slog.Any("error", err))
		}
	}
	return c
}
