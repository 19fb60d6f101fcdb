// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"snapframe/internal/app"
	"snapframe/internal/editor"
	"snapframe/internal/logging"
	"snapframe/internal/preset"
	"snapframe/internal/version"
	"snapframe/ui/canvas"
	"snapframe/ui/panels"
	"snapframe/ui/prefs"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800

	// loadTimeout bounds how long the window waits for an image to decode.
	loadTimeout = 30 * time.Second
)

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	editor    *editor.Editor
	prefs     *prefs.Prefs
	canvas    *canvas.EditorCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	presetPath string
	watcher    *app.FileWatcher

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, ed *editor.Editor, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Snapframe")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		editor: ed,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()
	mw.restorePreferences()

	win.SetCloseIntercept(func() {
		mw.SavePreferences()
		if mw.watcher != nil {
			mw.watcher.Stop()
		}
		win.Close()
	})
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.editor)

	mw.sidePanel = panels.NewSidePanel(mw.editor)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	canvasArea := container.NewBorder(
		mw.createToolbar(),
		nil,
		nil,
		nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.28)

	mw.SetContent(container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	))
}

// createToolbar creates the toolbar with history and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Open", mw.onOpenImage),
		widget.NewButton("Export", mw.onExport),
		widget.NewSeparator(),
		widget.NewButton("Undo", mw.onUndo),
		widget.NewButton("Redo", mw.onRedo),
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		widget.NewButton("Fit", mw.onToggleFitToWindow),
		widget.NewButton("1:1", mw.onActualSize),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Export PNG...", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load Preset...", mw.onLoadPreset),
		fyne.NewMenuItem("Save Preset", mw.onSavePreset),
		fyne.NewMenuItem("Save Preset As...", mw.onSavePresetAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset", mw.onReset),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selected", func() { mw.editor.DeleteSelected() }),
		fyne.NewMenuItem("Add Text", func() { mw.editor.AddText("") }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("Fit to Window", mw.onToggleFitToWindow)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupShortcuts binds Ctrl+Z, Ctrl+Y and the editing keys.
func (mw *MainWindow) setupShortcuts() {
	c := mw.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { mw.onUndo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { mw.onRedo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { mw.onRedo() })

	// Typed keys only reach the window when no entry has focus.
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if k, ok := editorKey(ev.Name); ok && mw.editor.KeyDown(k) {
			mw.canvas.Refresh()
		}
	})
}

// editorKey maps fyne key names to editor keys.
func editorKey(name fyne.KeyName) (editor.Key, bool) {
	switch name {
	case fyne.KeyDelete:
		return editor.KeyDelete, true
	case fyne.KeyBackspace:
		return editor.KeyBackspace, true
	case fyne.KeyEscape:
		return editor.KeyEscape, true
	}
	return "", false
}

// setupEventHandlers registers for editor events.
func (mw *MainWindow) setupEventHandlers() {
	mw.editor.On(editor.EventImageLoaded, func(any) {
		w, h := mw.editor.CanvasSize()
		mw.updateStatus(fmt.Sprintf("Image loaded, canvas %d×%d", w, h))
	})
	mw.editor.On(editor.EventRestored, func(any) {
		mw.canvas.Refresh()
	})
	mw.editor.On(editor.EventHistoryChanged, func(any) {
		h := mw.editor.History()
		mw.updateStatus(fmt.Sprintf("History %d/%d", h.Cursor()+1, h.Len()))
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) showError(err error) {
	logging.Logger().Warn("action failed", slog.Any("error", err))
	dialog.ShowError(err, mw.Window)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// restorePreferences applies the saved window size and zoom.
func (mw *MainWindow) restorePreferences() {
	w := mw.prefs.Float(prefs.KeyWindowWidth, defaultWidth)
	h := mw.prefs.Float(prefs.KeyWindowHeight, defaultHeight)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))

	if mw.prefs.Bool(prefs.KeyFitToWindow, true) {
		mw.canvas.SetFitToWindow(true)
	} else {
		mw.canvas.SetZoom(mw.prefs.Float(prefs.KeyZoom, 1))
	}
	mw.updateFitLabel()
}

// SavePreferences records the window state and writes it if it changed.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
		mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	}
	mw.prefs.SetFloat(prefs.KeyZoom, mw.canvas.Zoom())
	mw.prefs.SetBool(prefs.KeyFitToWindow, mw.canvas.FitsToWindow())
	if err := mw.prefs.SaveIfChanged(); err != nil {
		logging.Logger().Warn("preferences not saved", slog.Any("error", err))
	}
}

// OpenImage loads the image at path into the editor.
func (mw *MainWindow) OpenImage(path string) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	if err := app.OpenImage(ctx, mw.editor, path); err != nil {
		mw.showError(err)
		return
	}
	mw.prefs.SetString(prefs.KeyLastImage, path)
	mw.SetTitle("Snapframe - " + filepath.Base(path))
}

// LoadPreset applies the preset at path and, when watch is set, re-applies
// it whenever the file changes on disk.
func (mw *MainWindow) LoadPreset(path string, watch bool) {
	f, err := app.ApplyPreset(mw.editor, path)
	if err != nil {
		mw.showError(err)
		return
	}
	mw.presetPath = path
	mw.prefs.SetString(prefs.KeyLastPreset, path)
	mw.updateStatus("Preset loaded: " + f.Name)

	if mw.watcher != nil {
		mw.watcher.Stop()
		mw.watcher = nil
	}
	if watch {
		mw.watcher = app.WatchPreset(mw.editor, path, func(err error) {
			if err == nil {
				mw.updateStatus("Preset reloaded: " + f.Name)
			}
		})
	}
}

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.OpenImage(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExport() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if !strings.EqualFold(filepath.Ext(path), ".png") {
			path += ".png"
		}
		mw.saveLastDir(path)
		if err := app.ExportPNG(mw.editor, path); err != nil {
			mw.showError(err)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("snapframe.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onLoadPreset() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.LoadPreset(path, false)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSavePreset() {
	if mw.presetPath == "" {
		mw.onSavePresetAs()
		return
	}
	mw.savePreset(mw.presetPath)
}

func (mw *MainWindow) onSavePresetAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if !strings.HasSuffix(path, preset.Ext) {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + preset.Ext
		}
		mw.saveLastDir(path)
		mw.savePreset(path)
	}, mw.Window)
	fd.SetFileName("preset" + preset.Ext)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) savePreset(path string) {
	if err := app.SavePreset(mw.editor, path); err != nil {
		mw.showError(err)
		return
	}
	mw.presetPath = path
	mw.prefs.SetString(prefs.KeyLastPreset, path)
	mw.updateStatus("Preset saved: " + preset.NameFromPath(path))
}

func (mw *MainWindow) onReset() {
	dialog.ShowConfirm("Reset", "Discard the image, overlays and history?", func(ok bool) {
		if !ok {
			return
		}
		mw.editor.Reset()
		mw.SetTitle("Snapframe")
		mw.updateStatus("Ready")
	}, mw.Window)
}

func (mw *MainWindow) onUndo() {
	if _, err := mw.editor.Undo(); err != nil {
		if editor.IsRestorePending(err) {
			mw.updateStatus("Still restoring, try again")
			return
		}
		mw.showError(err)
	}
}

func (mw *MainWindow) onRedo() {
	if _, err := mw.editor.Redo(); err != nil {
		if editor.IsRestorePending(err) {
			mw.updateStatus("Still restoring, try again")
			return
		}
		mw.showError(err)
	}
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	mw.canvas.SetFitToWindow(!mw.canvas.FitsToWindow())
	mw.updateFitLabel()
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.FitsToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.updateFitLabel()
	}
}

func (mw *MainWindow) updateFitLabel() {
	mw.fitToWindowItem.Checked = mw.canvas.FitsToWindow()
	if menu := mw.MainMenu(); menu != nil {
		menu.Refresh()
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Snapframe",
		fmt.Sprintf("%s\n\n"+
			"Frames screenshots with gradients, masks and annotations.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.String(), version.BuildTime, version.GitCommit),
		mw.Window)
}
