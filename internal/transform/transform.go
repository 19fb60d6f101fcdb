// Package transform maps points and lengths between canvas pixel space and
// image-relative [0,1] space.
//
// The mapping is composed from two steps. The Context maps canvas pixels to
// pixels of the visible image (after crop and letterboxing). The optional
// Padding adjustment then maps visible-image pixels to pixels of the original
// upload before dividing by the reference dimensions. Both steps are affine,
// so the inverse is computed exactly rather than re-derived by hand.
package transform

import (
	"snapframe/pkg/geometry"
)

// Font sizes produced by ToAbsoluteFontSize are clamped to this range.
const (
	MinFontSize = 8.0
	MaxFontSize = 120.0
)

// Context is the source/dest rectangle pair for the current render.
// Source is the cropped region of the visible image, dest is where that region
// lands on the canvas. Each axis keeps its own scale factor.
type Context struct {
	SourceX      float64 `json:"sourceX"`
	SourceY      float64 `json:"sourceY"`
	SourceWidth  float64 `json:"sourceWidth"`
	SourceHeight float64 `json:"sourceHeight"`
	DestX        float64 `json:"destX"`
	DestY        float64 `json:"destY"`
	DestWidth    float64 `json:"destWidth"`
	DestHeight   float64 `json:"destHeight"`
}

// IdentityContext returns a Context that maps a w x h canvas onto itself.
func IdentityContext(w, h float64) Context {
	return Context{SourceWidth: w, SourceHeight: h, DestWidth: w, DestHeight: h}
}

// Source returns the source rectangle.
func (c Context) Source() geometry.Rect {
	return geometry.NewRect(c.SourceX, c.SourceY, c.SourceWidth, c.SourceHeight)
}

// Dest returns the destination rectangle.
func (c Context) Dest() geometry.Rect {
	return geometry.NewRect(c.DestX, c.DestY, c.DestWidth, c.DestHeight)
}

// canvasToVisible maps canvas pixels to visible-image pixels.
func (c Context) canvasToVisible() geometry.AffineTransform {
	if c.DestWidth == 0 || c.DestHeight == 0 {
		return geometry.Identity()
	}
	return geometry.Translation(c.SourceX, c.SourceY).
		Compose(geometry.Scale(c.SourceWidth/c.DestWidth, c.SourceHeight/c.DestHeight)).
		Compose(geometry.Translation(-c.DestX, -c.DestY))
}

// Padding describes how the visible image relates to the original upload
// when padding normalization or direct padding is active.
type Padding struct {
	Active bool `json:"active"`

	// Original upload dimensions; relative coordinates are fractions of these.
	OriginalWidth  float64 `json:"originalWidth"`
	OriginalHeight float64 `json:"originalHeight"`

	// Padding added around the content in the visible image.
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`

	// Position of the content inside the original upload.
	ContentOffsetX float64 `json:"contentOffsetX"`
	ContentOffsetY float64 `json:"contentOffsetY"`
}

// Mapper converts between canvas and relative coordinates for one render.
type Mapper struct {
	ctx     Context
	padding Padding
	ref     geometry.Size

	forward geometry.AffineTransform // canvas -> relative
	inverse geometry.AffineTransform // relative -> canvas
}

// New builds a Mapper. image is the natural size of the visible image; it is
// the reference size unless the padding adjustment is active. Degenerate
// inputs yield an identity mapping rather than an error.
func New(ctx Context, image geometry.Size, pad Padding) *Mapper {
	m := &Mapper{ctx: ctx, padding: pad, ref: image}

	visibleToOriginal := geometry.Identity()
	if pad.Active && pad.OriginalWidth > 0 && pad.OriginalHeight > 0 {
		m.ref = geometry.NewSize(pad.OriginalWidth, pad.OriginalHeight)
		visibleToOriginal = geometry.Translation(pad.ContentOffsetX-pad.OffsetX, pad.ContentOffsetY-pad.OffsetY)
	}

	if m.ref.Empty() {
		m.forward = geometry.Identity()
		m.inverse = geometry.Identity()
		return m
	}

	m.forward = geometry.Scale(1/m.ref.Width, 1/m.ref.Height).
		Compose(visibleToOriginal).
		Compose(ctx.canvasToVisible())

	inv, ok := m.forward.Inverse()
	if !ok {
		m.forward = geometry.Identity()
		inv = geometry.Identity()
	}
	m.inverse = inv
	return m
}

// Context returns the Transform Context the mapper was built from.
func (m *Mapper) Context() Context { return m.ctx }

// Padding returns the padding adjustment in effect.
func (m *Mapper) Padding() Padding { return m.padding }

// ReferenceSize returns the dimensions relative coordinates are fractions of.
func (m *Mapper) ReferenceSize() geometry.Size { return m.ref }

// ToRelative maps a canvas point to relative coordinates.
func (m *Mapper) ToRelative(p geometry.Point2D) geometry.Point2D {
	return m.forward.Apply(p)
}

// ToAbsolute maps a relative point to canvas coordinates.
func (m *Mapper) ToAbsolute(p geometry.Point2D) geometry.Point2D {
	return m.inverse.Apply(p)
}

// ToRelativeSize converts a canvas length to a relative length on the X axis.
func (m *Mapper) ToRelativeSize(length float64) float64 {
	return length * m.forward.A
}

// ToAbsoluteSize converts a relative length on the X axis to canvas pixels.
func (m *Mapper) ToAbsoluteSize(length float64) float64 {
	return length * m.inverse.A
}

// ToRelativeSizeY converts a canvas length to a relative length on the Y axis.
func (m *Mapper) ToRelativeSizeY(length float64) float64 {
	return length * m.forward.D
}

// ToAbsoluteSizeY converts a relative length on the Y axis to canvas pixels.
func (m *Mapper) ToAbsoluteSizeY(length float64) float64 {
	return length * m.inverse.D
}

// ToRelativeFontSize converts a pixel font size using the Y axis.
func (m *Mapper) ToRelativeFontSize(size float64) float64 {
	return m.ToRelativeSizeY(size)
}

// ToAbsoluteFontSize converts a relative font size to pixels, clamped to
// [MinFontSize, MaxFontSize].
func (m *Mapper) ToAbsoluteFontSize(size float64) float64 {
	return geometry.Clamp(m.ToAbsoluteSizeY(size), MinFontSize, MaxFontSize)
}
