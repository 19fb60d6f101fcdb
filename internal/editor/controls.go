package editor

import (
	"math"
	"slices"

	"snapframe/internal/config"
	"snapframe/internal/layout"
	"snapframe/internal/overlay"
	"snapframe/internal/render"
	"snapframe/pkg/colorutil"
	"snapframe/pkg/geometry"
)

// Controls are the values bound to the control panel.
type Controls struct {
	Background     render.Background `json:"background"`
	BackgroundSize float64           `json:"backgroundSize"` // percent
	Aspect         layout.Aspect     `json:"aspect"`
	Crop           float64           `json:"crop"`   // percent per side
	Shadow         float64           `json:"shadow"` // blur radius in pixels
	PaddingColor   string            `json:"paddingColor"`

	BlurType      overlay.BlurType `json:"blurType"`
	BlurIntensity float64          `json:"blurIntensity"`

	ShapeType   overlay.ShapeType `json:"shapeType"`
	ShapeColor  string            `json:"shapeColor"`
	ShapeStroke float64           `json:"shapeStroke"`

	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	TextColor  string  `json:"textColor"`
}

// Control ranges.
const (
	MaxBackgroundSize = 100.0
	MaxCrop           = 49.0
	MaxShadow         = 100.0
	MaxBlurIntensity  = 50.0
	MaxStrokeWidth    = 50.0
	MaxCornerRadius   = 500.0
)

// DefaultControls returns the control values for cfg.
func DefaultControls(cfg config.Config) Controls {
	bg := render.DefaultBackground()
	bc := cfg.Background
	if bc.Type != "" {
		bg.Type = render.GradientType(bc.Type)
	}
	if bc.Color1 != "" {
		bg.Color1 = bc.Color1
	}
	if bc.Color2 != "" {
		bg.Color2 = bc.Color2
	}
	bg.Angle = bc.Angle

	return Controls{
		Background:     bg,
		BackgroundSize: bc.Size,
		Aspect:         layout.Aspect(bc.Aspect),
		PaddingColor:   "#ffffff",
		BlurType:       overlay.BlurRectangle,
		BlurIntensity:  cfg.Blur.DefaultIntensity,
		ShapeType:      overlay.ShapeRectangle,
		ShapeColor:     cfg.Shape.DefaultColor,
		ShapeStroke:    cfg.Shape.DefaultStroke,
		FontFamily:     cfg.Text.DefaultFamily,
		FontSize:       cfg.Text.DefaultSize,
		TextColor:      cfg.Text.DefaultColor,
	}.Sanitize()
}

// Sanitize clamps every value into range and replaces unparseable colors.
func (c Controls) Sanitize() Controls {
	def := render.DefaultBackground()
	switch c.Background.Type {
	case render.GradientLinear, render.GradientRadial:
	default:
		c.Background.Type = render.GradientLinear
	}
	c.Background.Color1 = validColor(c.Background.Color1, def.Color1)
	c.Background.Color2 = validColor(c.Background.Color2, def.Color2)
	c.Background.Angle = normalizeAngle(c.Background.Angle)
	c.Background.CornerRadius = geometry.Clamp(c.Background.CornerRadius, 0, MaxCornerRadius)

	c.BackgroundSize = geometry.Clamp(c.BackgroundSize, 0, MaxBackgroundSize)
	if !slices.Contains(layout.Aspects, c.Aspect) {
		c.Aspect = layout.AspectAuto
	}
	c.Crop = geometry.Clamp(c.Crop, 0, MaxCrop)
	c.Shadow = geometry.Clamp(c.Shadow, 0, MaxShadow)
	c.PaddingColor = validColor(c.PaddingColor, "#ffffff")

	if c.BlurType != overlay.BlurCircle {
		c.BlurType = overlay.BlurRectangle
	}
	c.BlurIntensity = geometry.Clamp(c.BlurIntensity, 0, MaxBlurIntensity)

	if !slices.Contains(overlay.ShapeTypes, c.ShapeType) {
		c.ShapeType = overlay.ShapeRectangle
	}
	c.ShapeColor = validColor(c.ShapeColor, overlay.DefaultShapeColor)
	c.ShapeStroke = geometry.Clamp(c.ShapeStroke, 1, MaxStrokeWidth)

	if c.FontFamily == "" {
		c.FontFamily = overlay.DefaultFontFamily
	}
	c.FontSize = geometry.Clamp(c.FontSize, 8, 120)
	c.TextColor = validColor(c.TextColor, overlay.DefaultTextColor)
	return c
}

func validColor(s, fallback string) string {
	if _, err := colorutil.ParseHex(s); err != nil {
		return fallback
	}
	return s
}

// normalizeAngle maps degrees into [0, 360).
func normalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
