package overlay

import (
	"math"

	"snapframe/internal/transform"
	"snapframe/pkg/geometry"
)

// ShapeType selects the primitive a Shape draws.
type ShapeType string

// Shape primitives.
const (
	ShapeRectangle   ShapeType = "rectangle"
	ShapeRoundedRect ShapeType = "roundedRect"
	ShapeCircle      ShapeType = "circle"
	ShapeEllipse     ShapeType = "ellipse"
	ShapeArrow       ShapeType = "arrow"
)

// ShapeTypes lists the primitives in menu order.
var ShapeTypes = []ShapeType{ShapeRectangle, ShapeRoundedRect, ShapeCircle, ShapeEllipse, ShapeArrow}

// Shape defaults.
const (
	DefaultShapeColor  = "#800080"
	DefaultStrokeWidth = 4.0
)

// Shape is a stroked vector primitive. RelX/RelY is the center; RelWidth and
// RelHeight are signed so an arrow remembers which way it was dragged.
type Shape struct {
	ID          int       `json:"-"`
	Type        ShapeType `json:"type"`
	RelX        float64   `json:"relX"`
	RelY        float64   `json:"relY"`
	RelWidth    float64   `json:"relWidth"`
	RelHeight   float64   `json:"relHeight"`
	Color       string    `json:"color"`
	StrokeWidth float64   `json:"strokeWidth"`
}

// EntityID returns the list-assigned identifier.
func (s *Shape) EntityID() int      { return s.ID }
func (s *Shape) setEntityID(id int) { s.ID = id }

// Rect returns the signed rectangle in canvas pixels. X/Y is the drag start
// corner and the extents may be negative.
func (s *Shape) Rect(m *transform.Mapper) geometry.Rect {
	c := m.ToAbsolute(geometry.NewPoint2D(s.RelX, s.RelY))
	return geometry.RectFromCenter(c, m.ToAbsoluteSize(s.RelWidth), m.ToAbsoluteSizeY(s.RelHeight))
}

// Bounds returns the normalized bounding box in canvas pixels.
func (s *Shape) Bounds(m *transform.Mapper) geometry.Rect {
	return s.Rect(m).Normalized()
}

// Endpoints returns the arrow tail and head in canvas pixels.
func (s *Shape) Endpoints(m *transform.Mapper) (tail, head geometry.Point2D) {
	r := s.Rect(m)
	return r.TopLeft(), r.BottomRight()
}

// HitTest reports whether p lies on the shape.
func (s *Shape) HitTest(p geometry.Point2D, m *transform.Mapper) bool {
	b := s.Bounds(m)
	switch s.Type {
	case ShapeRectangle, ShapeRoundedRect:
		return b.Contains(p)
	case ShapeCircle:
		return p.Distance(b.Center()) <= math.Min(b.Width, b.Height)/2
	case ShapeEllipse:
		rx, ry := b.Width/2, b.Height/2
		if rx == 0 || ry == 0 {
			return false
		}
		c := b.Center()
		nx, ny := (p.X-c.X)/rx, (p.Y-c.Y)/ry
		return nx*nx+ny*ny <= 1
	case ShapeArrow:
		tail, head := s.Endpoints(m)
		if tail == head {
			return false
		}
		return geometry.DistanceToSegment(p, tail, head) <= ArrowHitTolerance
	}
	return false
}

// ResizeHandleRect returns the resize hotspot. Arrows carry it on the head;
// other shapes hang it off the bottom-right corner of the bounding box.
func (s *Shape) ResizeHandleRect(m *transform.Mapper) geometry.Rect {
	if s.Type == ShapeArrow {
		_, head := s.Endpoints(m)
		return geometry.RectFromCenter(head, ShapeHandleSize, ShapeHandleSize)
	}
	br := s.Bounds(m).BottomRight()
	return geometry.NewRect(br.X, br.Y, ShapeHandleSize, ShapeHandleSize)
}

// DeleteGlyphRect returns the delete hotspot above the top-right corner of
// the selection outline.
func (s *Shape) DeleteGlyphRect(m *transform.Mapper) geometry.Rect {
	b := s.Bounds(m)
	return geometry.NewRect(
		b.X+b.Width+ShapeOutlinePadding,
		b.Y-ShapeOutlinePadding-ShapeDeleteSize,
		ShapeDeleteSize, ShapeDeleteSize,
	)
}

// HitTestResizeHandle reports whether p is on the resize hotspot.
func (s *Shape) HitTestResizeHandle(p geometry.Point2D, m *transform.Mapper) bool {
	return s.ResizeHandleRect(m).Contains(p)
}

// HitTestDeleteGlyph reports whether p is on the delete hotspot.
func (s *Shape) HitTestDeleteGlyph(p geometry.Point2D, m *transform.Mapper) bool {
	return s.DeleteGlyphRect(m).Contains(p)
}

// MoveTo places the center at the canvas point c.
func (s *Shape) MoveTo(c geometry.Point2D, m *transform.Mapper) {
	rel := m.ToRelative(c)
	s.RelX, s.RelY = rel.X, rel.Y
}

// SpanTo sets the shape to span from the canvas point anchor to p.
func (s *Shape) SpanTo(anchor, p geometry.Point2D, m *transform.Mapper) {
	rel := m.ToRelative(anchor.Midpoint(p))
	s.RelX, s.RelY = rel.X, rel.Y
	s.RelWidth = m.ToRelativeSize(p.X - anchor.X)
	s.RelHeight = m.ToRelativeSizeY(p.Y - anchor.Y)
}

// ResizeTo moves the resize handle to p. An arrow keeps its tail and takes p
// as its new head. Other shapes keep the top-left corner of their bounding
// box and the signs of their extents.
func (s *Shape) ResizeTo(p geometry.Point2D, m *transform.Mapper) {
	if s.Type == ShapeArrow {
		tail, _ := s.Endpoints(m)
		s.SpanTo(tail, p, m)
		return
	}
	flipX, flipY := s.RelWidth < 0, s.RelHeight < 0
	s.SpanTo(s.Bounds(m).TopLeft(), p, m)
	if flipX {
		s.RelWidth = -s.RelWidth
	}
	if flipY {
		s.RelHeight = -s.RelHeight
	}
}

// RoundedCornerRadius returns the corner radius for a rounded rectangle of
// the given size: 20% of the shorter side, kept within [5, 20].
func RoundedCornerRadius(w, h float64) float64 {
	return math.Min(20, math.Max(5, math.Min(w, h)*0.2))
}

// ArrowHead returns the two barb end points for an arrow from tail to head.
func ArrowHead(tail, head geometry.Point2D) (left, right geometry.Point2D) {
	length := math.Min(20, tail.Distance(head)/3)
	angle := math.Atan2(head.Y-tail.Y, head.X-tail.X)
	left = geometry.NewPoint2D(head.X-length*math.Cos(angle-math.Pi/6), head.Y-length*math.Sin(angle-math.Pi/6))
	right = geometry.NewPoint2D(head.X-length*math.Cos(angle+math.Pi/6), head.Y-length*math.Sin(angle+math.Pi/6))
	return left, right
}
