package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"snapframe/internal/editor"
	"snapframe/internal/render"
)

// gradientPresets are the one-tap color pairs.
var gradientPresets = []struct {
	name   string
	c1, c2 string
}{
	{"Ocean", "#3498db", "#9b59b6"},
	{"Sunset", "#ff7e5f", "#feb47b"},
	{"Mint", "#43cea2", "#185a9d"},
	{"Peach", "#ffecd2", "#fcb69f"},
	{"Night", "#232526", "#414345"},
	{"Candy", "#f093fb", "#f5576c"},
}

// BackgroundPanel edits the gradient, background size and shadow.
type BackgroundPanel struct {
	binder
	editor    *editor.Editor
	container fyne.CanvasObject

	transparent *widget.Check
	gradType    *widget.RadioGroup
	color1      *colorButton
	color2      *colorButton
	angle       *valueSlider
	corner      *valueSlider
	size        *valueSlider
	shadow      *valueSlider
	padColor    *colorButton
}

// NewBackgroundPanel creates a new background panel.
func NewBackgroundPanel(ed *editor.Editor, win func() fyne.Window) *BackgroundPanel {
	bp := &BackgroundPanel{editor: ed}
	b := &bp.binder

	bp.transparent = widget.NewCheck("Transparent", func(on bool) {
		b.guard(func() { ed.SetTransparent(on) })()
	})
	bp.gradType = widget.NewRadioGroup(names([]render.GradientType{render.GradientLinear, render.GradientRadial}), func(s string) {
		if s != "" {
			b.guard(func() { ed.SetGradientType(render.GradientType(s)) })()
		}
	})
	bp.gradType.Horizontal = true
	bp.gradType.Required = true

	bp.color1 = newColorButton(b, "Start Color", win, func(hex string) {
		ed.SetGradientColors(hex, ed.Controls().Background.Color2)
	})
	bp.color2 = newColorButton(b, "End Color", win, func(hex string) {
		ed.SetGradientColors(ed.Controls().Background.Color1, hex)
	})
	bp.angle = newValueSlider(b, "Angle", "%.0f°", 0, 359, 1, ed.SetGradientAngle)
	bp.corner = newValueSlider(b, "Corner Radius", "%.0f px", 0, editor.MaxCornerRadius, 1, ed.SetBackgroundCornerRadius)

	presets := container.NewGridWithColumns(3)
	for _, p := range gradientPresets {
		presets.Add(widget.NewButton(p.name, func() { ed.ApplyGradientPreset(p.c1, p.c2) }))
	}
	ops := container.NewGridWithColumns(3,
		widget.NewButton("Random", ed.RandomizeGradient),
		widget.NewButton("Flip", ed.FlipGradient),
		widget.NewButton(fmt.Sprintf("Rotate %g°", editor.RotationStep), ed.RotateGradient),
	)

	bp.size = newValueSlider(b, "Background Size", "%.0f%%", 0, editor.MaxBackgroundSize, 1, ed.SetBackgroundSize)
	bp.shadow = newValueSlider(b, "Shadow", "%.0f px", 0, editor.MaxShadow, 1, ed.SetShadow)
	bp.padColor = newColorButton(b, "Shadow Fill", win, ed.SetPaddingColor)

	bp.container = container.NewVBox(
		widget.NewCard("Gradient", "", container.NewVBox(
			bp.transparent,
			bp.gradType,
			bp.color1.Object(),
			bp.color2.Object(),
			bp.angle.Object(),
			bp.corner.Object(),
		)),
		widget.NewCard("Presets", "", container.NewVBox(presets, ops)),
		widget.NewCard("Frame", "", container.NewVBox(
			bp.size.Object(),
			bp.shadow.Object(),
			bp.padColor.Object(),
		)),
	)
	return bp
}

// Container returns the panel container.
func (bp *BackgroundPanel) Container() fyne.CanvasObject {
	return bp.container
}

// Sync copies the editor's values into the widgets.
func (bp *BackgroundPanel) Sync() {
	c := bp.editor.Controls()
	bp.sync(func() {
		bp.transparent.SetChecked(c.Background.Transparent)
		bp.gradType.SetSelected(string(c.Background.Type))
		bp.color1.Set(c.Background.Color1)
		bp.color2.Set(c.Background.Color2)
		bp.angle.Set(c.Background.Angle)
		bp.corner.Set(c.Background.CornerRadius)
		bp.size.Set(c.BackgroundSize)
		bp.shadow.Set(c.Shadow)
		bp.padColor.Set(c.PaddingColor)
	})
}
