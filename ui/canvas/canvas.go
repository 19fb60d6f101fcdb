// Package canvas provides the editor canvas widget with zoom, scrolling and
// pointer interaction.
package canvas

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"snapframe/internal/editor"
	"snapframe/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25

	// pulsePeriod is how often the selection mark is redrawn.
	pulsePeriod = 50 * time.Millisecond
)

// EditorCanvas displays the editor frame and forwards pointer input to it.
type EditorCanvas struct {
	widget.BaseWidget

	editor *editor.Editor

	raster *fynecanvas.Raster
	zoom   float64

	scroll  *zoomScroll
	content *pointerContent
	imgSize fyne.Size

	fitToWindow    bool
	lastScrollSize fyne.Size

	pulse *fyne.Animation

	onZoomChange func(zoom float64)
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *EditorCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *EditorCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// pointerContent wraps the raster and turns mouse events into editor
// gestures.
type pointerContent struct {
	widget.BaseWidget
	canvas *EditorCanvas
	raster *fynecanvas.Raster

	// down is set between a press and the matching release, which fyne
	// reports as MouseUp or DragEnd depending on the driver.
	down bool
	last geometry.Point2D
}

var (
	_ fyne.Draggable    = (*pointerContent)(nil)
	_ desktop.Mouseable = (*pointerContent)(nil)
	_ desktop.Hoverable = (*pointerContent)(nil)
)

func newPointerContent(ec *EditorCanvas, raster *fynecanvas.Raster) *pointerContent {
	pc := &pointerContent{canvas: ec, raster: raster}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pointerContent) CreateRenderer() fyne.WidgetRenderer {
	return &pointerContentRenderer{content: pc}
}

func (pc *pointerContent) MinSize() fyne.Size {
	return pc.raster.MinSize()
}

func (pc *pointerContent) point(pos fyne.Position) geometry.Point2D {
	return viewToCanvas(pos, pc.canvas.zoom)
}

func (pc *pointerContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.down = true
	pc.last = pc.point(ev.Position)
	if pc.canvas.editor.PointerDown(pc.last) {
		pc.canvas.Refresh()
	}
}

func (pc *pointerContent) MouseUp(ev *desktop.MouseEvent) {
	if !pc.down {
		return
	}
	pc.release(pc.point(ev.Position))
}

func (pc *pointerContent) Dragged(ev *fyne.DragEvent) {
	if !pc.down {
		return
	}
	pc.move(pc.point(ev.Position))
}

func (pc *pointerContent) DragEnd() {
	if !pc.down {
		return
	}
	pc.release(pc.last)
}

func (pc *pointerContent) MouseIn(*desktop.MouseEvent) {}

func (pc *pointerContent) MouseMoved(ev *desktop.MouseEvent) {
	if !pc.down {
		return
	}
	pc.move(pc.point(ev.Position))
}

func (pc *pointerContent) MouseOut() {
	if !pc.down {
		return
	}
	pc.down = false
	if pc.canvas.editor.PointerLeave() {
		pc.canvas.Refresh()
	}
}

func (pc *pointerContent) move(p geometry.Point2D) {
	pc.last = p
	if pc.canvas.editor.PointerMove(p) {
		pc.canvas.Refresh()
	}
}

func (pc *pointerContent) release(p geometry.Point2D) {
	pc.down = false
	if pc.canvas.editor.PointerUp(p) {
		pc.canvas.Refresh()
	}
}

type pointerContentRenderer struct {
	content *pointerContent
}

func (r *pointerContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *pointerContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *pointerContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *pointerContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *pointerContentRenderer) Destroy() {}

// viewToCanvas converts a pointer position to canvas pixel coordinates.
// Fyne reports pos relative to the scroll content, so the scroll offset is
// already part of it.
func viewToCanvas(pos fyne.Position, zoom float64) geometry.Point2D {
	if zoom <= 0 {
		zoom = 1
	}
	return geometry.Point2D{
		X: float64(pos.X) / zoom,
		Y: float64(pos.Y) / zoom,
	}
}

func clampZoom(z float64) float64 {
	return max(minZoom, min(maxZoom, z))
}

// fitZoom returns the zoom that fits a w by h frame in view with a small
// margin.
func fitZoom(w, h int, view fyne.Size) float64 {
	if w <= 0 || h <= 0 || view.Width <= 0 || view.Height <= 0 {
		return 0
	}
	zoom := min(float64(view.Width)/float64(w), float64(view.Height)/float64(h))
	return zoom * 0.95
}

// New creates a canvas bound to ed. It redraws on every editor change.
func New(ed *editor.Editor) *EditorCanvas {
	ec := &EditorCanvas{
		editor:  ed,
		zoom:    1.0,
		imgSize: fyne.NewSize(editor.EmptyWidth, editor.EmptyHeight),
	}

	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.raster.ScaleMode = fynecanvas.ImageScalePixels
	ec.raster.SetMinSize(ec.imgSize)

	ec.content = newPointerContent(ec, ec.raster)
	ec.scroll = newZoomScroll(ec.content, ec)

	ed.On(editor.EventChanged, func(any) { ec.updateContentSize() })
	ed.On(editor.EventImageLoaded, func(any) {
		if ec.fitToWindow {
			ec.FitToWindow()
		}
	})
	ed.On(editor.EventSelectionChanged, func(any) { ec.syncPulse() })

	ec.ExtendBaseWidget(ec)
	return ec
}

// Container returns the canvas container for embedding in layouts.
func (ec *EditorCanvas) Container() fyne.CanvasObject {
	return ec.scroll
}

// syncPulse runs the selection animation only while something is selected.
func (ec *EditorCanvas) syncPulse() {
	selected := ec.editor.State().Selection().ID != 0
	switch {
	case selected && ec.pulse == nil:
		ec.pulse = fyne.NewAnimation(pulsePeriod, func(float32) { ec.raster.Refresh() })
		ec.pulse.RepeatCount = fyne.AnimationRepeatForever
		ec.pulse.Curve = fyne.AnimationLinear
		ec.pulse.Start()
	case !selected && ec.pulse != nil:
		ec.pulse.Stop()
		ec.pulse = nil
	}
}

func (ec *EditorCanvas) SetZoom(zoom float64) {
	ec.zoom = clampZoom(zoom)
	ec.updateContentSize()

	if ec.onZoomChange != nil {
		ec.onZoomChange(ec.zoom)
	}
}

func (ec *EditorCanvas) Zoom() float64 {
	return ec.zoom
}

func (ec *EditorCanvas) ZoomIn() {
	ec.SetZoom(ec.zoom * zoomStep)
}

func (ec *EditorCanvas) ZoomOut() {
	ec.SetZoom(ec.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the frame in the visible area.
func (ec *EditorCanvas) FitToWindow() {
	w, h := ec.editor.CanvasSize()
	if z := fitZoom(w, h, ec.scroll.Size()); z > 0 {
		ec.SetZoom(z)
	}
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ec *EditorCanvas) SetFitToWindow(fit bool) {
	ec.fitToWindow = fit
	if fit {
		ec.FitToWindow()
	}
}

func (ec *EditorCanvas) FitsToWindow() bool {
	return ec.fitToWindow
}

// CheckResize auto-fits when the scroll container changed size.
func (ec *EditorCanvas) CheckResize(size fyne.Size) {
	if !ec.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ec.lastScrollSize {
		ec.lastScrollSize = size
		ec.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (ec *EditorCanvas) OnZoomChange(callback func(zoom float64)) {
	ec.onZoomChange = callback
}

func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
}

// updateContentSize sizes the scrolled content to the zoomed frame.
func (ec *EditorCanvas) updateContentSize() {
	w, h := ec.editor.CanvasSize()
	ec.imgSize = fyne.NewSize(float32(float64(w)*ec.zoom), float32(float64(h)*ec.zoom))

	ec.raster.SetMinSize(ec.imgSize)
	ec.raster.Resize(ec.imgSize)
	if ec.content != nil {
		ec.content.Resize(ec.imgSize)
		ec.content.Refresh()
	}
	ec.raster.Refresh()
	if ec.scroll != nil {
		ec.scroll.Refresh()
	}
}

// draw renders the frame at canvas resolution; the raster scales it to the
// zoomed size.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	return ec.editor.Render().Image()
}

func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &editorCanvasRenderer{canvas: ec}
}

type editorCanvasRenderer struct {
	canvas *EditorCanvas
}

func (r *editorCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.scroll.Resize(size)
	r.canvas.CheckResize(size)
}

func (r *editorCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *editorCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *editorCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *editorCanvasRenderer) Destroy() {
	if r.canvas.pulse != nil {
		r.canvas.pulse.Stop()
	}
}
