// Package panels provides the control panel bound to the editor.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"snapframe/internal/editor"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	editor    *editor.Editor
	window    fyne.Window
	container *container.AppTabs

	background *BackgroundPanel
	image      *ImagePanel
	tools      *ToolsPanel
}

// NewSidePanel creates the panel and keeps it in step with ed.
func NewSidePanel(ed *editor.Editor) *SidePanel {
	sp := &SidePanel{editor: ed}
	win := func() fyne.Window { return sp.window }

	sp.background = NewBackgroundPanel(ed, win)
	sp.image = NewImagePanel(ed, win)
	sp.tools = NewToolsPanel(ed, win)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Background", container.NewVScroll(sp.background.Container())),
		container.NewTabItem("Image", container.NewVScroll(sp.image.Container())),
		container.NewTabItem("Tools", container.NewVScroll(sp.tools.Container())),
	)

	// Undo, redo, reset and preset loads replace the values behind every
	// widget.
	ed.On(editor.EventRestored, func(any) { sp.Sync() })
	ed.On(editor.EventHistoryChanged, func(any) {
		if !ed.Gesturing() {
			sp.Sync()
		}
	})
	ed.On(editor.EventSelectionChanged, func(any) { sp.tools.Sync() })
	ed.On(editor.EventToolChanged, func(any) { sp.tools.Sync() })

	sp.Sync()
	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.window = w
}

// Sync copies the editor's values into every widget.
func (sp *SidePanel) Sync() {
	sp.background.Sync()
	sp.image.Sync()
	sp.tools.Sync()
}
