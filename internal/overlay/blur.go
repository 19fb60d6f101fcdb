package overlay

import (
	"math"

	"snapframe/internal/transform"
	"snapframe/pkg/geometry"
)

// BlurType selects the outline of a blur region.
type BlurType string

// Blur region outlines.
const (
	BlurRectangle BlurType = "rectangle"
	BlurCircle    BlurType = "circle"
)

// DefaultBlurIntensity is the blur strength of new regions.
const DefaultBlurIntensity = 5

// Blur is a region of the image drawn through a blur filter.
// RelX/RelY is the center. Rectangles use RelWidth/RelHeight, circles use
// RelRadius (measured on the X axis).
type Blur struct {
	ID        int      `json:"-"`
	Type      BlurType `json:"type"`
	RelX      float64  `json:"relX"`
	RelY      float64  `json:"relY"`
	RelWidth  float64  `json:"relWidth,omitempty"`
	RelHeight float64  `json:"relHeight,omitempty"`
	RelRadius float64  `json:"relRadius,omitempty"`
	Intensity float64  `json:"intensity"`
}

// EntityID returns the list-assigned identifier.
func (b *Blur) EntityID() int      { return b.ID }
func (b *Blur) setEntityID(id int) { b.ID = id }

// Center returns the center in canvas pixels.
func (b *Blur) Center(m *transform.Mapper) geometry.Point2D {
	return m.ToAbsolute(geometry.NewPoint2D(b.RelX, b.RelY))
}

// Radius returns the circle radius in canvas pixels.
func (b *Blur) Radius(m *transform.Mapper) float64 {
	return m.ToAbsoluteSize(b.RelRadius)
}

// Bounds returns the bounding box in canvas pixels.
func (b *Blur) Bounds(m *transform.Mapper) geometry.Rect {
	c := b.Center(m)
	if b.Type == BlurCircle {
		r := b.Radius(m)
		return geometry.RectFromCenter(c, 2*r, 2*r)
	}
	return geometry.RectFromCenter(c, m.ToAbsoluteSize(b.RelWidth), m.ToAbsoluteSizeY(b.RelHeight))
}

// HitTest reports whether p lies inside the region.
func (b *Blur) HitTest(p geometry.Point2D, m *transform.Mapper) bool {
	if b.Type == BlurCircle {
		return p.Distance(b.Center(m)) <= b.Radius(m)
	}
	return b.Bounds(m).Contains(p)
}

// ResizeHandle returns the center of the resize hotspot: the bottom-right
// corner of a rectangle or the right edge of a circle.
func (b *Blur) ResizeHandle(m *transform.Mapper) geometry.Point2D {
	if b.Type == BlurCircle {
		return b.Center(m).Add(geometry.NewPoint2D(b.Radius(m), 0))
	}
	return b.Bounds(m).BottomRight()
}

// DeleteGlyph returns the center of the delete hotspot: the top-right corner
// of a rectangle or the top edge of a circle.
func (b *Blur) DeleteGlyph(m *transform.Mapper) geometry.Point2D {
	if b.Type == BlurCircle {
		return b.Center(m).Sub(geometry.NewPoint2D(0, b.Radius(m)))
	}
	return b.Bounds(m).TopRight()
}

// HitTestResizeHandle reports whether p is on the resize hotspot.
func (b *Blur) HitTestResizeHandle(p geometry.Point2D, m *transform.Mapper) bool {
	return p.Distance(b.ResizeHandle(m)) <= BlurHandleRadius
}

// HitTestDeleteGlyph reports whether p is on the delete hotspot.
func (b *Blur) HitTestDeleteGlyph(p geometry.Point2D, m *transform.Mapper) bool {
	return p.Distance(b.DeleteGlyph(m)) <= BlurDeleteRadius
}

// MoveTo places the center at the canvas point c.
func (b *Blur) MoveTo(c geometry.Point2D, m *transform.Mapper) {
	rel := m.ToRelative(c)
	b.RelX, b.RelY = rel.X, rel.Y
}

// ResizeTo resizes the region so the resize hotspot follows p, keeping the
// center fixed. Sizes at or below minRect (rectangles) or minRadius (circles)
// are rejected and the previous size is kept. It reports whether the size
// changed.
func (b *Blur) ResizeTo(p geometry.Point2D, m *transform.Mapper, minRect, minRadius float64) bool {
	c := b.Center(m)
	if b.Type == BlurCircle {
		r := p.Distance(c)
		if r <= minRadius {
			return false
		}
		b.RelRadius = m.ToRelativeSize(r)
		return true
	}
	w := 2 * (p.X - c.X)
	h := 2 * (p.Y - c.Y)
	if w <= minRect || h <= minRect {
		return false
	}
	b.RelWidth = m.ToRelativeSize(w)
	b.RelHeight = m.ToRelativeSizeY(h)
	return true
}

// NewBlurFromDrag builds a blur region from a completed drag, or returns nil
// when the drag is too short. Rectangles span start..end; circles are
// centered on start with radius |end-start|.
func NewBlurFromDrag(typ BlurType, start, end geometry.Point2D, intensity, minDrag float64, m *transform.Mapper) *Blur {
	if typ == BlurCircle {
		r := start.Distance(end)
		if r <= minDrag {
			return nil
		}
		rel := m.ToRelative(start)
		return &Blur{Type: BlurCircle, RelX: rel.X, RelY: rel.Y, RelRadius: m.ToRelativeSize(r), Intensity: intensity}
	}

	w := math.Abs(end.X - start.X)
	h := math.Abs(end.Y - start.Y)
	if w <= minDrag || h <= minDrag {
		return nil
	}
	rel := m.ToRelative(start.Midpoint(end))
	return &Blur{
		Type:      BlurRectangle,
		RelX:      rel.X,
		RelY:      rel.Y,
		RelWidth:  m.ToRelativeSize(w),
		RelHeight: m.ToRelativeSizeY(h),
		Intensity: intensity,
	}
}
