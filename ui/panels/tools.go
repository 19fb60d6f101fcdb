package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"snapframe/internal/editor"
	"snapframe/internal/overlay"
)

var toolNames = map[string]editor.Tool{
	"Select": editor.ToolNone,
	"Blur":   editor.ToolBlur,
	"Shape":  editor.ToolShape,
	"Text":   editor.ToolText,
}

var toolOrder = []string{"Select", "Blur", "Shape", "Text"}

// ToolsPanel picks the active tool and edits blur, shape and text styles.
type ToolsPanel struct {
	binder
	editor    *editor.Editor
	container fyne.CanvasObject

	tool *widget.RadioGroup

	blurType      *widget.Select
	blurIntensity *valueSlider

	shapeType   *widget.Select
	shapeColor  *colorButton
	shapeStroke *valueSlider

	textEntry  *widget.Entry
	fontFamily *widget.Select
	fontSize   *valueSlider
	textColor  *colorButton
	textStatus *widget.Label
}

// NewToolsPanel creates a new tools panel.
func NewToolsPanel(ed *editor.Editor, win func() fyne.Window) *ToolsPanel {
	tp := &ToolsPanel{editor: ed}
	b := &tp.binder

	tp.tool = widget.NewRadioGroup(toolOrder, func(s string) {
		if t, ok := toolNames[s]; ok {
			b.guard(func() { ed.SetTool(t) })()
		}
	})
	tp.tool.Horizontal = true
	tp.tool.Required = true

	tp.blurType = widget.NewSelect(names([]overlay.BlurType{overlay.BlurRectangle, overlay.BlurCircle}), func(s string) {
		b.guard(func() { ed.SetBlurType(overlay.BlurType(s)) })()
	})
	tp.blurIntensity = newValueSlider(b, "Intensity", "%.0f", 0, editor.MaxBlurIntensity, 1, ed.SetBlurIntensity)

	tp.shapeType = widget.NewSelect(names(overlay.ShapeTypes), func(s string) {
		b.guard(func() { ed.SetShapeType(overlay.ShapeType(s)) })()
	})
	tp.shapeColor = newColorButton(b, "Stroke Color", win, ed.SetShapeColor)
	tp.shapeStroke = newValueSlider(b, "Stroke Width", "%.0f px", 1, editor.MaxStrokeWidth, 1, ed.SetShapeStroke)

	cfg := ed.Config().Text
	tp.textEntry = widget.NewEntry()
	tp.textEntry.SetPlaceHolder("Text")
	tp.fontFamily = widget.NewSelect(ed.FontFamilies(), func(s string) {
		b.guard(func() { tp.applyText() })()
	})
	tp.fontSize = newValueSlider(b, "Size", "%.0f px", cfg.MinSize, cfg.MaxSize, 1, func(float64) { tp.applyText() })
	tp.textColor = newColorButton(b, "Text Color", win, func(string) { tp.applyText() })
	tp.textStatus = widget.NewLabel("")

	tp.container = container.NewVBox(
		widget.NewCard("Tool", "", tp.tool),
		widget.NewCard("Blur", "", container.NewVBox(
			tp.blurType,
			tp.blurIntensity.Object(),
		)),
		widget.NewCard("Shape", "", container.NewVBox(
			tp.shapeType,
			tp.shapeColor.Object(),
			tp.shapeStroke.Object(),
		)),
		widget.NewCard("Text", "", container.NewVBox(
			tp.textEntry,
			container.NewGridWithColumns(2,
				widget.NewButton("Add Text", tp.onAddText),
				widget.NewButton("Update", tp.applyText),
			),
			tp.fontFamily,
			tp.fontSize.Object(),
			tp.textColor.Object(),
			tp.textStatus,
		)),
		widget.NewButton("Delete Selected", func() { ed.DeleteSelected() }),
	)
	return tp
}

// Container returns the panel container.
func (tp *ToolsPanel) Container() fyne.CanvasObject {
	return tp.container
}

// selectedText returns the selected text entity, if any.
func (tp *ToolsPanel) selectedText() (*overlay.Text, bool) {
	st := tp.editor.State()
	id := st.Selected(editor.ToolText)
	if id == 0 {
		return nil, false
	}
	for _, t := range tp.editor.Texts() {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Sync copies the editor's values into the widgets. A selected text entity
// takes precedence over the text defaults.
func (tp *ToolsPanel) Sync() {
	c := tp.editor.Controls()
	st := tp.editor.State()
	tp.sync(func() {
		for name, t := range toolNames {
			if t == st.ActiveTool() {
				tp.tool.SetSelected(name)
			}
		}
		tp.blurType.SetSelected(string(c.BlurType))
		tp.blurIntensity.Set(c.BlurIntensity)
		for _, b := range tp.editor.Blurs() {
			if b.ID == st.Selected(editor.ToolBlur) {
				tp.blurIntensity.Set(b.Intensity)
			}
		}
		tp.shapeType.SetSelected(string(c.ShapeType))
		tp.shapeColor.Set(c.ShapeColor)
		tp.shapeStroke.Set(c.ShapeStroke)

		family, size, color := c.FontFamily, c.FontSize, c.TextColor
		tp.textStatus.SetText("")
		if t, ok := tp.selectedText(); ok {
			tp.textEntry.SetText(t.Text)
			family, color = t.FontFamily, t.Color
			size = t.FontSize(tp.editor.Mapper())
			tp.textStatus.SetText("Editing selected text")
		}
		tp.fontFamily.SetSelected(family)
		tp.fontSize.Set(size)
		tp.textColor.Set(color)
	})
}

func (tp *ToolsPanel) onAddText() {
	family, size, color := tp.fontFamily.Selected, tp.fontSize.slider.Value, tp.textColor.hex
	if c := tp.editor.Controls(); c.FontFamily != family || c.FontSize != size || c.TextColor != color {
		tp.editor.SetTextDefaults(family, size, color)
	}
	tp.editor.AddText(tp.textEntry.Text)
}

// applyText edits the selected text entity, or the defaults for new text
// when none is selected.
func (tp *ToolsPanel) applyText() {
	family, size, color := tp.fontFamily.Selected, tp.fontSize.slider.Value, tp.textColor.hex
	if _, ok := tp.selectedText(); ok {
		tp.editor.UpdateSelectedText(tp.textEntry.Text, family, size, color)
		return
	}
	tp.editor.SetTextDefaults(family, size, color)
}
