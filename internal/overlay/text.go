package overlay

import (
	"snapframe/internal/transform"
	"snapframe/pkg/geometry"
)

// Fonts offered for text entities.
var FontFamilies = []string{
	"Arial", "Verdana", "Times New Roman", "Georgia",
	"Courier New", "Impact", "Comic Sans MS", "Inter",
}

// Text defaults.
const (
	DefaultFontSize   = 24.0
	DefaultFontFamily = "Arial"
	DefaultTextColor  = "#000000"
)

// Measurer reports the advance width of a string set in a family and pixel
// size. The render package's font registry implements it.
type Measurer interface {
	MeasureText(text, family string, size float64) float64
}

// Text is a single-line label centered on RelX/RelY. Its box is derived from
// measured glyph metrics at draw time and is never stored.
type Text struct {
	ID          int     `json:"-"`
	Text        string  `json:"text"`
	RelX        float64 `json:"relX"`
	RelY        float64 `json:"relY"`
	RelFontSize float64 `json:"relFontSize"`
	FontFamily  string  `json:"fontFamily"`
	Color       string  `json:"color"`
}

// EntityID returns the list-assigned identifier.
func (t *Text) EntityID() int      { return t.ID }
func (t *Text) setEntityID(id int) { t.ID = id }

// Center returns the anchor point in canvas pixels.
func (t *Text) Center(m *transform.Mapper) geometry.Point2D {
	return m.ToAbsolute(geometry.NewPoint2D(t.RelX, t.RelY))
}

// FontSize returns the pixel font size, clamped to the supported range.
func (t *Text) FontSize(m *transform.Mapper) float64 {
	return m.ToAbsoluteFontSize(t.RelFontSize)
}

// Bounds returns the measured text box in canvas pixels. The height is the
// font size.
func (t *Text) Bounds(m *transform.Mapper, ms Measurer) geometry.Rect {
	size := t.FontSize(m)
	w := ms.MeasureText(t.Text, t.FontFamily, size)
	return geometry.RectFromCenter(t.Center(m), w, size)
}

// Outline returns the selection outline, the text box grown by the outline
// padding.
func (t *Text) Outline(m *transform.Mapper, ms Measurer) geometry.Rect {
	b := t.Bounds(m, ms)
	return geometry.NewRect(
		b.X-TextOutlinePadding, b.Y-TextOutlinePadding,
		b.Width+2*TextOutlinePadding, b.Height+2*TextOutlinePadding,
	)
}

// HitTest reports whether p lies inside the text box.
func (t *Text) HitTest(p geometry.Point2D, m *transform.Mapper, ms Measurer) bool {
	return t.Bounds(m, ms).Contains(p)
}

// ResizeHandleRect returns the hotspot centered on the outline's
// bottom-right corner.
func (t *Text) ResizeHandleRect(m *transform.Mapper, ms Measurer) geometry.Rect {
	return geometry.RectFromCenter(t.Outline(m, ms).BottomRight(), TextHandleSize, TextHandleSize)
}

// DeleteGlyphRect returns the hotspot centered on the outline's top-right
// corner.
func (t *Text) DeleteGlyphRect(m *transform.Mapper, ms Measurer) geometry.Rect {
	return geometry.RectFromCenter(t.Outline(m, ms).TopRight(), TextDeleteSize, TextDeleteSize)
}

// HitTestResizeHandle reports whether p is on the resize hotspot.
func (t *Text) HitTestResizeHandle(p geometry.Point2D, m *transform.Mapper, ms Measurer) bool {
	return t.ResizeHandleRect(m, ms).Contains(p)
}

// HitTestDeleteGlyph reports whether p is on the delete hotspot.
func (t *Text) HitTestDeleteGlyph(p geometry.Point2D, m *transform.Mapper, ms Measurer) bool {
	return t.DeleteGlyphRect(m, ms).Contains(p)
}

// MoveTo places the anchor at the canvas point c.
func (t *Text) MoveTo(c geometry.Point2D, m *transform.Mapper) {
	rel := m.ToRelative(c)
	t.RelX, t.RelY = rel.X, rel.Y
}

// SetFontSize stores a pixel font size, clamped to the supported range.
func (t *Text) SetFontSize(size float64, m *transform.Mapper) {
	size = geometry.Clamp(size, transform.MinFontSize, transform.MaxFontSize)
	t.RelFontSize = m.ToRelativeFontSize(size)
}

// ResizeTo sets the font size from the pointer distance to the anchor: half
// the distance, clamped.
func (t *Text) ResizeTo(p geometry.Point2D, m *transform.Mapper) {
	t.SetFontSize(p.Distance(t.Center(m))/2, m)
}
