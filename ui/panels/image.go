package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"snapframe/internal/editor"
	"snapframe/internal/layout"
	"snapframe/internal/mask"
)

var borderStyles = []mask.BorderStyle{mask.BorderSolid, mask.BorderDashed, mask.BorderDotted, mask.BorderDouble}

// ImagePanel edits the aspect ratio, crop, mask and padding.
type ImagePanel struct {
	binder
	editor    *editor.Editor
	window    func() fyne.Window
	container fyne.CanvasObject

	aspect *widget.Select
	crop   *valueSlider

	maskKind    *widget.Select
	maskSize    *valueSlider
	maskRatio   *valueSlider
	maskX       *valueSlider
	maskY       *valueSlider
	maskCorner  *valueSlider
	borderStyle *widget.Select
	borderWidth *valueSlider
	borderColor *colorButton
	borderGap   *valueSlider

	directAmount *valueSlider
	paddingInfo  *widget.Label
}

// NewImagePanel creates a new image panel.
func NewImagePanel(ed *editor.Editor, win func() fyne.Window) *ImagePanel {
	ip := &ImagePanel{editor: ed, window: win}
	b := &ip.binder

	ip.aspect = widget.NewSelect(names(layout.Aspects), func(s string) {
		b.guard(func() { ed.SetAspect(layout.Aspect(s)) })()
	})
	ip.crop = newValueSlider(b, "Crop", "%.0f%%", 0, editor.MaxCrop, 1, ed.SetCrop)

	// Every mask control edits one field of the shared settings.
	setMask := func(fn func(s *mask.Settings)) {
		s := ed.Mask()
		fn(&s)
		ed.SetMask(s)
	}
	ip.maskKind = widget.NewSelect(names(mask.Kinds), func(s string) {
		b.guard(func() { setMask(func(m *mask.Settings) { m.Kind = mask.Kind(s) }) })()
	})
	ip.maskSize = newValueSlider(b, "Size", "%.0f%%", 0, 100, 1, func(v float64) {
		setMask(func(m *mask.Settings) { m.Size = v })
	})
	ip.maskRatio = newValueSlider(b, "Ratio", "%.2f", 0.25, 4, 0.05, func(v float64) {
		setMask(func(m *mask.Settings) { m.Ratio = v })
	})
	ip.maskX = newValueSlider(b, "Position X", "%.0f%%", 0, 100, 1, func(v float64) {
		setMask(func(m *mask.Settings) { m.PositionX = v })
	})
	ip.maskY = newValueSlider(b, "Position Y", "%.0f%%", 0, 100, 1, func(v float64) {
		setMask(func(m *mask.Settings) { m.PositionY = v })
	})
	ip.maskCorner = newValueSlider(b, "Corner Radius", "%.0f%%", 0, 100, 1, func(v float64) {
		setMask(func(m *mask.Settings) { m.CornerRadius = v })
	})
	ip.borderStyle = widget.NewSelect(names(borderStyles), func(s string) {
		b.guard(func() { setMask(func(m *mask.Settings) { m.BorderStyle = mask.BorderStyle(s) }) })()
	})
	ip.borderWidth = newValueSlider(b, "Border", "%.0f px", 0, 50, 1, func(v float64) {
		setMask(func(m *mask.Settings) { m.BorderThickness = v })
	})
	ip.borderColor = newColorButton(b, "Border Color", win, func(hex string) {
		setMask(func(m *mask.Settings) { m.BorderColor = hex })
	})
	ip.borderGap = newValueSlider(b, "Border Margin", "%.0f px", -50, 100, 1, func(v float64) {
		setMask(func(m *mask.Settings) { m.BorderMargin = v })
	})

	ip.directAmount = newValueSlider(b, "Padding", "%.0f px", 0, 200, 1, func(float64) {})
	ip.paddingInfo = widget.NewLabel("")
	ip.paddingInfo.Wrapping = fyne.TextWrapWord

	ip.container = container.NewVBox(
		widget.NewCard("Canvas", "", container.NewVBox(
			widget.NewLabel("Aspect Ratio:"),
			ip.aspect,
			ip.crop.Object(),
		)),
		widget.NewCard("Mask", "", container.NewVBox(
			ip.maskKind,
			ip.maskSize.Object(),
			ip.maskRatio.Object(),
			ip.maskX.Object(),
			ip.maskY.Object(),
			ip.maskCorner.Object(),
		)),
		widget.NewCard("Border", "", container.NewVBox(
			ip.borderStyle,
			ip.borderWidth.Object(),
			ip.borderColor.Object(),
			ip.borderGap.Object(),
		)),
		widget.NewCard("Padding", "", container.NewVBox(
			widget.NewButton("Normalize Padding", ip.onNormalize),
			ip.directAmount.Object(),
			container.NewGridWithColumns(2,
				widget.NewButton("Add Padding", ip.onDirect),
				widget.NewButton("Remove", ip.onClear),
			),
			ip.paddingInfo,
		)),
	)
	return ip
}

// Container returns the panel container.
func (ip *ImagePanel) Container() fyne.CanvasObject {
	return ip.container
}

// Sync copies the editor's values into the widgets.
func (ip *ImagePanel) Sync() {
	c := ip.editor.Controls()
	m := ip.editor.Mask()
	ip.sync(func() {
		ip.aspect.SetSelected(string(c.Aspect))
		ip.crop.Set(c.Crop)
		ip.maskKind.SetSelected(string(m.Kind))
		ip.maskSize.Set(m.Size)
		ip.maskRatio.Set(m.Ratio)
		ip.maskX.Set(m.PositionX)
		ip.maskY.Set(m.PositionY)
		ip.maskCorner.Set(m.CornerRadius)
		ip.borderStyle.SetSelected(string(m.BorderStyle))
		ip.borderWidth.Set(m.BorderThickness)
		ip.borderColor.Set(m.BorderColor)
		ip.borderGap.Set(m.BorderMargin)
	})
	if p := ip.editor.Padding(); p.Active {
		ip.paddingInfo.SetText(fmt.Sprintf("Padding active: original %.0f×%.0f", p.OriginalWidth, p.OriginalHeight))
	} else {
		ip.paddingInfo.SetText("")
	}
}

func (ip *ImagePanel) showError(err error) {
	if w := ip.window(); w != nil {
		dialog.ShowError(err, w)
	}
}

func (ip *ImagePanel) onNormalize() {
	det, err := ip.editor.NormalizePadding()
	if err != nil {
		ip.showError(err)
		return
	}
	in := det.Insets
	ip.paddingInfo.SetText(fmt.Sprintf("Detected padding: top %d, right %d, bottom %d, left %d",
		in.Top, in.Right, in.Bottom, in.Left))
}

func (ip *ImagePanel) onDirect() {
	if err := ip.editor.DirectPadding(int(ip.directAmount.slider.Value)); err != nil {
		ip.showError(err)
	}
}

func (ip *ImagePanel) onClear() {
	if err := ip.editor.ClearPadding(); err != nil {
		ip.showError(err)
	}
}
