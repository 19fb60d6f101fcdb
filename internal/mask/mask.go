// Package mask builds the clip path applied to the base image and the
// decorative border drawn around it.
package mask

import (
	"math"

	"snapframe/pkg/colorutil"
	"snapframe/pkg/geometry"
)

// Kind identifies a mask shape.
type Kind string

// Supported mask kinds.
const (
	KindNone               Kind = "none"
	KindRectangle          Kind = "rectangle"
	KindDiagonalCorners    Kind = "diagonal-corners"
	KindDiagonalCornersAlt Kind = "diagonal-corners-alt"
	KindWave1              Kind = "wave1"
	KindWave2              Kind = "wave2"
	KindWave3              Kind = "wave3"
	KindWave4              Kind = "wave4"
	KindEllipse            Kind = "ellipse"
	KindStar               Kind = "star"
	KindHexagon            Kind = "hexagon"
	KindHeart              Kind = "heart"
	KindVintage            Kind = "vintage"
	KindOrnate             Kind = "ornate"
	KindPuzzle             Kind = "puzzle"
	KindPostage            Kind = "postage"
	KindTicket             Kind = "ticket"
)

// Kinds lists every kind in menu order.
var Kinds = []Kind{
	KindNone, KindRectangle, KindDiagonalCorners, KindDiagonalCornersAlt,
	KindWave1, KindWave2, KindWave3, KindWave4,
	KindEllipse, KindStar, KindHexagon, KindHeart,
	KindVintage, KindOrnate, KindPuzzle, KindPostage, KindTicket,
}

// Known reports whether k has a path builder.
func (k Kind) Known() bool {
	_, ok := builders[k]
	return ok || k == KindNone
}

// BorderStyle is the stroke style of the mask border.
type BorderStyle string

// Border styles.
const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
	BorderDouble BorderStyle = "double"
)

// Settings is the single global mask configuration.
// Size, PositionX, PositionY and CornerRadius are percentages.
type Settings struct {
	Kind            Kind        `json:"type" toml:"type"`
	Size            float64     `json:"size" toml:"size"`
	Ratio           float64     `json:"ratio" toml:"ratio"`
	PositionX       float64     `json:"positionX" toml:"position_x"`
	PositionY       float64     `json:"positionY" toml:"position_y"`
	CornerRadius    float64     `json:"cornerRadius" toml:"corner_radius"`
	BorderStyle     BorderStyle `json:"borderStyle" toml:"border_style"`
	BorderThickness float64     `json:"borderThickness" toml:"border_thickness"`
	BorderColor     string      `json:"borderColor" toml:"border_color"`
	BorderMargin    float64     `json:"borderMargin" toml:"border_margin"`

	// BorderEnabled is read from older saved settings only. A stored false
	// forces BorderThickness to zero in Normalize.
	BorderEnabled *bool `json:"borderEnabled,omitempty" toml:"-"`
}

// DefaultSettings returns the settings of a freshly loaded image.
func DefaultSettings() Settings {
	return Settings{
		Kind:         KindRectangle,
		Size:         100,
		Ratio:        1,
		PositionX:    50,
		PositionY:    50,
		BorderStyle:  BorderSolid,
		BorderColor:  "#000000",
		BorderMargin: 10,
	}
}

// Normalize clamps out-of-range values and folds the legacy BorderEnabled flag.
func (s Settings) Normalize() Settings {
	if s.Kind == "" {
		s.Kind = KindRectangle
	}
	s.Size = geometry.Clamp(s.Size, 0, 100)
	if s.Ratio <= 0 || math.IsNaN(s.Ratio) {
		s.Ratio = 1
	}
	s.PositionX = geometry.Clamp(s.PositionX, 0, 100)
	s.PositionY = geometry.Clamp(s.PositionY, 0, 100)
	s.CornerRadius = geometry.Clamp(s.CornerRadius, 0, 100)
	s.BorderThickness = geometry.Clamp(s.BorderThickness, 0, 1000)
	s.BorderMargin = geometry.Clamp(s.BorderMargin, -1000, 1000)
	if s.BorderStyle == "" {
		s.BorderStyle = BorderSolid
	}
	if _, err := colorutil.ParseHex(s.BorderColor); err != nil {
		s.BorderColor = "#000000"
	}
	if s.BorderEnabled != nil {
		if !*s.BorderEnabled {
			s.BorderThickness = 0
		}
		s.BorderEnabled = nil
	}
	return s
}

// Clips reports whether the settings produce a clip path.
func (s Settings) Clips() bool {
	return s.Kind != KindNone && s.Kind.Known()
}
