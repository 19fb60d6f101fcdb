package panels

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"snapframe/pkg/colorutil"
)

// binder suppresses widget callbacks while the panel copies editor values
// into its widgets, so a sync does not record history entries.
type binder struct {
	syncing bool
}

func (b *binder) sync(fn func()) {
	b.syncing = true
	defer func() { b.syncing = false }()
	fn()
}

// guard wraps fn so it only runs for user input.
func (b *binder) guard(fn func()) func() {
	return func() {
		if !b.syncing {
			fn()
		}
	}
}

// valueSlider is a slider with a caption showing the current value. Edits
// are committed when the drag ends, one history entry per drag.
type valueSlider struct {
	slider  *widget.Slider
	caption *widget.Label
	label   string
	format  string
}

func newValueSlider(b *binder, label, format string, lo, hi, step float64, commit func(float64)) *valueSlider {
	vs := &valueSlider{
		slider:  widget.NewSlider(lo, hi),
		caption: widget.NewLabel(""),
		label:   label,
		format:  format,
	}
	vs.slider.Step = step
	vs.slider.OnChanged = func(v float64) { vs.showValue(v) }
	vs.slider.OnChangeEnded = func(v float64) {
		if !b.syncing {
			commit(v)
		}
	}
	return vs
}

func (vs *valueSlider) showValue(v float64) {
	vs.caption.SetText(vs.label + ": " + fmt.Sprintf(vs.format, v))
}

// Set shows v without committing it.
func (vs *valueSlider) Set(v float64) {
	vs.slider.SetValue(v)
	vs.showValue(v)
}

func (vs *valueSlider) Object() fyne.CanvasObject {
	return container.NewVBox(vs.caption, vs.slider)
}

// colorButton shows a swatch and opens a color picker when tapped.
type colorButton struct {
	hex    string
	swatch *canvas.Rectangle
	button *widget.Button
	window func() fyne.Window
}

func newColorButton(b *binder, title string, window func() fyne.Window, commit func(hex string)) *colorButton {
	cb := &colorButton{
		swatch: canvas.NewRectangle(color.Black),
		window: window,
	}
	cb.swatch.SetMinSize(fyne.NewSize(24, 24))
	cb.button = widget.NewButton(title, func() {
		w := cb.window()
		if w == nil {
			return
		}
		picker := dialog.NewColorPicker(title, "", func(c color.Color) {
			hex := colorutil.ToHex(c)
			cb.Set(hex)
			if !b.syncing {
				commit(hex)
			}
		}, w)
		picker.Advanced = true
		if c, err := colorutil.ParseHex(cb.hex); err == nil {
			picker.SetColor(c)
		}
		picker.Show()
	})
	return cb
}

// Set shows hex without committing it.
func (cb *colorButton) Set(hex string) {
	cb.hex = hex
	if c, err := colorutil.ParseHex(hex); err == nil {
		cb.swatch.FillColor = c
		cb.swatch.Refresh()
	}
}

func (cb *colorButton) Object() fyne.CanvasObject {
	return container.NewHBox(cb.swatch, cb.button)
}

// names converts a list of string-typed enum values for a widget.Select.
func names[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
