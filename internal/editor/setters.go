package editor

import (
	"log/slog"

	"snapframe/internal/layout"
	"snapframe/internal/logging"
	"snapframe/internal/mask"
	"snapframe/internal/overlay"
	"snapframe/internal/render"
	"snapframe/pkg/colorutil"
)

// Gradient operation constants.
const (
	PresetAngle  = 45.0
	RotationStep = 30.0
)

// Controls returns the current control values.
func (e *Editor) Controls() Controls {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.controls
}

// SetControls replaces every control value. Out-of-range values are clamped.
func (e *Editor) SetControls(c Controls) {
	e.update(func(cur *Controls) { *cur = c })
}

// update applies fn to the controls, clamps the result and records it.
func (e *Editor) update(fn func(c *Controls)) {
	e.mu.Lock()
	fn(&e.controls)
	e.controls = e.controls.Sanitize()
	e.mu.Unlock()
	e.emit(EventChanged)
	e.saveAndLog()
}

func (e *Editor) SetBackground(bg render.Background) {
	e.update(func(c *Controls) { c.Background = bg })
}

// SetTransparent switches the gradient background off or on.
func (e *Editor) SetTransparent(on bool) {
	e.update(func(c *Controls) { c.Background.Transparent = on })
}

func (e *Editor) SetGradientType(t render.GradientType) {
	e.update(func(c *Controls) { c.Background.Type = t })
}

func (e *Editor) SetGradientColors(c1, c2 string) {
	e.update(func(c *Controls) {
		c.Background.Color1 = c1
		c.Background.Color2 = c2
	})
}

func (e *Editor) SetGradientAngle(deg float64) {
	e.update(func(c *Controls) { c.Background.Angle = deg })
}

func (e *Editor) SetBackgroundCornerRadius(r float64) {
	e.update(func(c *Controls) { c.Background.CornerRadius = r })
}

// ApplyGradientPreset sets both gradient colors and the preset angle.
func (e *Editor) ApplyGradientPreset(c1, c2 string) {
	e.update(func(c *Controls) {
		c.Background.Color1 = c1
		c.Background.Color2 = c2
		c.Background.Angle = PresetAngle
	})
}

// RandomizeGradient picks two random colors at the preset angle.
func (e *Editor) RandomizeGradient() {
	e.update(func(c *Controls) {
		c.Background.Color1 = colorutil.ToHex(colorutil.Random(e.rng))
		c.Background.Color2 = colorutil.ToHex(colorutil.Random(e.rng))
		c.Background.Angle = PresetAngle
	})
}

// FlipGradient swaps the two gradient colors.
func (e *Editor) FlipGradient() {
	e.update(func(c *Controls) {
		c.Background.Color1, c.Background.Color2 = c.Background.Color2, c.Background.Color1
	})
}

// RotateGradient turns the gradient by RotationStep degrees.
func (e *Editor) RotateGradient() {
	e.update(func(c *Controls) { c.Background.Angle += RotationStep })
}

func (e *Editor) SetBackgroundSize(pct float64) {
	e.update(func(c *Controls) { c.BackgroundSize = pct })
}

func (e *Editor) SetAspect(a layout.Aspect) {
	e.update(func(c *Controls) { c.Aspect = a })
}

func (e *Editor) SetCrop(pct float64) {
	e.update(func(c *Controls) { c.Crop = pct })
}

func (e *Editor) SetShadow(px float64) {
	e.update(func(c *Controls) { c.Shadow = px })
}

func (e *Editor) SetPaddingColor(hex string) {
	e.update(func(c *Controls) { c.PaddingColor = hex })
}

// Mask returns the mask settings.
func (e *Editor) Mask() mask.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mask
}

// SetMask replaces the mask settings. An unknown kind is kept and draws
// nothing.
func (e *Editor) SetMask(s mask.Settings) {
	s = s.Normalize()
	if !s.Kind.Known() {
		logging.Logger().Warn("unknown mask kind", slog.String("kind", string(s.Kind)))
	}
	e.mu.Lock()
	e.mask = s
	e.mu.Unlock()
	e.emit(EventChanged)
	e.saveAndLog()
}

// SetBlurType sets the outline used for new blur regions.
func (e *Editor) SetBlurType(t overlay.BlurType) {
	e.update(func(c *Controls) { c.BlurType = t })
}

// SetBlurIntensity changes the selected blur region, or the intensity of
// new regions when none is selected.
func (e *Editor) SetBlurIntensity(v float64) {
	e.update(func(c *Controls) {
		c.BlurIntensity = v
		if b, ok := e.blurs.Get(e.state.Selected(ToolBlur)); ok {
			b.Intensity = c.Sanitize().BlurIntensity
		}
	})
}

// SetShapeType sets the primitive drawn by the next shape gesture.
func (e *Editor) SetShapeType(t overlay.ShapeType) {
	e.update(func(c *Controls) { c.ShapeType = t })
}

// SetShapeColor sets the stroke color of new shapes and of the selected one.
func (e *Editor) SetShapeColor(hex string) {
	e.update(func(c *Controls) {
		c.ShapeColor = hex
		if s, ok := e.shapes.Get(e.state.Selected(ToolShape)); ok {
			s.Color = c.Sanitize().ShapeColor
		}
	})
}

// SetShapeStroke sets the stroke width of new shapes and of the selected one.
func (e *Editor) SetShapeStroke(w float64) {
	e.update(func(c *Controls) {
		c.ShapeStroke = w
		if s, ok := e.shapes.Get(e.state.Selected(ToolShape)); ok {
			s.StrokeWidth = c.Sanitize().ShapeStroke
		}
	})
}

// SetTextDefaults sets the style of text added later.
func (e *Editor) SetTextDefaults(family string, size float64, hex string) {
	e.update(func(c *Controls) {
		c.FontFamily = family
		c.FontSize = size
		c.TextColor = hex
	})
}
