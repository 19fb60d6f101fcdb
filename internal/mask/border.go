package mask

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"

	"snapframe/pkg/colorutil"
	"snapframe/pkg/geometry"
)

// Stroker is the part of the drawing surface the border needs.
type Stroker interface {
	PathBuilder
	SetColor(c color.Color)
	SetLineWidth(width float64)
	SetLineCap(lineCap gg.LineCap)
	SetLineJoin(join gg.LineJoin)
	SetDash(lengths ...float64)
	ClearDash()
	Stroke() error
}

// Dash returns the dash pattern for a border style at the given thickness.
// Solid and double borders return nil.
func Dash(style BorderStyle, thickness float64) []float64 {
	switch style {
	case BorderDashed:
		return []float64{thickness * 3, thickness * 2}
	case BorderDotted:
		return []float64{thickness, thickness}
	default:
		return nil
	}
}

// BorderOffsets returns the inset of each stroke pass. Double borders stroke
// a second path at margin plus twice the thickness.
func BorderOffsets(s Settings) []float64 {
	if s.BorderStyle == BorderDouble {
		return []float64{s.BorderMargin, s.BorderMargin + s.BorderThickness*2}
	}
	return []float64{s.BorderMargin}
}

// StrokeBorder strokes the mask border around image. A zero thickness or a
// kind without a path draws nothing.
func StrokeBorder(st Stroker, image geometry.Rect, s Settings) error {
	if s.BorderThickness <= 0 || !s.Clips() {
		return nil
	}

	st.SetColor(colorutil.ParseHexOr(s.BorderColor, colorutil.Black))
	st.SetLineWidth(s.BorderThickness)
	st.SetLineCap(gg.LineCapRound)
	st.SetLineJoin(gg.LineJoinRound)
	if dash := Dash(s.BorderStyle, s.BorderThickness); dash != nil {
		st.SetDash(dash...)
		defer st.ClearDash()
	} else {
		st.ClearDash()
	}

	for _, offset := range BorderOffsets(s) {
		BuildPath(st, image, s, offset)
		if err := st.Stroke(); err != nil {
			return fmt.Errorf("stroke mask border: %w", err)
		}
	}
	return nil
}
