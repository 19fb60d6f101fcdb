package editor

import (
	"log/slog"
	"math"

	"snapframe/internal/logging"
	"snapframe/internal/overlay"
	"snapframe/internal/transform"
	"snapframe/pkg/geometry"
)

type gestureKind int

const (
	gestureIdle gestureKind = iota
	gestureCreate
	gestureMove
	gestureResize
)

func (k gestureKind) String() string {
	switch k {
	case gestureCreate:
		return "create"
	case gestureMove:
		return "move"
	case gestureResize:
		return "resize"
	}
	return "idle"
}

// gesture is the pointer interaction in progress.
type gesture struct {
	kind    gestureKind
	tool    Tool
	id      int
	start   geometry.Point2D
	last    geometry.Point2D
	offset  geometry.Point2D // pointer minus entity center at pointer down
	changed bool

	preview *overlay.Shape
}

// Key is a keyboard key the editor reacts to.
type Key string

const (
	KeyDelete    Key = "Delete"
	KeyBackspace Key = "Backspace"
	KeyEscape    Key = "Escape"
)

// PointerDown starts a gesture at canvas point p under the active tool. It
// reports whether the frame needs redrawing.
func (e *Editor) PointerDown(p geometry.Point2D) bool {
	e.mu.Lock()
	_, _, _, m := e.frame()
	tool := e.state.ActiveTool()
	e.gesture = gesture{tool: tool, start: p, last: p}

	var deleted, selChanged bool
	switch tool {
	case ToolBlur:
		deleted, selChanged = e.blurDown(p, m)
	case ToolShape:
		deleted, selChanged = e.shapeDown(p, m)
	case ToolText:
		deleted, selChanged = e.textDown(p, m)
	default:
		e.gesture = gesture{}
	}
	kind := e.gesture.kind
	e.mu.Unlock()

	if kind != gestureIdle {
		logging.Logger().Debug("gesture start",
			slog.String("tool", tool.String()),
			slog.String("kind", kind.String()))
	}
	if deleted {
		e.emit(EventSelectionChanged, EventChanged)
		e.saveAndLog()
		return true
	}
	if selChanged {
		e.emit(EventSelectionChanged, EventChanged)
	}
	return selChanged
}

// blurDown handles pointer down in blur mode. e.mu must be held.
func (e *Editor) blurDown(p geometry.Point2D, m *transform.Mapper) (deleted, selChanged bool) {
	if sel, ok := e.blurs.Get(e.state.Selected(ToolBlur)); ok {
		if sel.HitTestDeleteGlyph(p, m) {
			e.blurs.Remove(sel.ID)
			e.state.ClearSelection()
			e.gesture = gesture{}
			return true, true
		}
		if sel.HitTestResizeHandle(p, m) {
			e.gesture.kind, e.gesture.id = gestureResize, sel.ID
			return false, false
		}
	}
	if b, ok := e.blurs.Topmost(func(b *overlay.Blur) bool { return b.HitTest(p, m) }); ok {
		return false, e.beginMove(ToolBlur, b.ID, p, b.Center(m))
	}
	e.gesture.kind = gestureCreate
	return false, e.state.ClearSelection()
}

// shapeDown handles pointer down in shape mode. e.mu must be held.
func (e *Editor) shapeDown(p geometry.Point2D, m *transform.Mapper) (deleted, selChanged bool) {
	if sel, ok := e.shapes.Get(e.state.Selected(ToolShape)); ok {
		if sel.HitTestDeleteGlyph(p, m) {
			e.shapes.Remove(sel.ID)
			e.state.ClearSelection()
			e.gesture = gesture{}
			return true, true
		}
		if sel.HitTestResizeHandle(p, m) {
			e.gesture.kind, e.gesture.id = gestureResize, sel.ID
			return false, false
		}
	}
	if s, ok := e.shapes.Topmost(func(s *overlay.Shape) bool { return s.HitTest(p, m) }); ok {
		return false, e.beginMove(ToolShape, s.ID, p, s.Bounds(m).Center())
	}
	e.gesture.kind = gestureCreate
	return false, e.state.ClearSelection()
}

// textDown handles pointer down in text mode. Text is only created through
// AddText. e.mu must be held.
func (e *Editor) textDown(p geometry.Point2D, m *transform.Mapper) (deleted, selChanged bool) {
	if sel, ok := e.texts.Get(e.state.Selected(ToolText)); ok {
		if sel.HitTestDeleteGlyph(p, m, e.measurer) {
			e.texts.Remove(sel.ID)
			e.state.ClearSelection()
			e.gesture = gesture{}
			return true, true
		}
		if sel.HitTestResizeHandle(p, m, e.measurer) {
			e.gesture.kind, e.gesture.id = gestureResize, sel.ID
			return false, false
		}
	}
	if t, ok := e.texts.Topmost(func(t *overlay.Text) bool { return t.HitTest(p, m, e.measurer) }); ok {
		return false, e.beginMove(ToolText, t.ID, p, t.Center(m))
	}
	e.gesture = gesture{}
	return false, e.state.ClearSelection()
}

func (e *Editor) beginMove(t Tool, id int, p, center geometry.Point2D) bool {
	e.gesture.kind, e.gesture.id = gestureMove, id
	e.gesture.offset = p.Sub(center)
	prev := e.state.Selection()
	e.state.Select(t, id)
	return prev != e.state.Selection()
}

// PointerMove advances the gesture in progress. It reports whether the frame
// needs redrawing.
func (e *Editor) PointerMove(p geometry.Point2D) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	g := &e.gesture
	if g.kind == gestureIdle {
		return false
	}
	g.last = p
	_, _, _, m := e.frame()

	switch g.kind {
	case gestureMove:
		c := p.Sub(g.offset)
		switch g.tool {
		case ToolBlur:
			if b, ok := e.blurs.Get(g.id); ok {
				b.MoveTo(c, m)
			}
		case ToolShape:
			if s, ok := e.shapes.Get(g.id); ok {
				s.MoveTo(c, m)
			}
		case ToolText:
			if t, ok := e.texts.Get(g.id); ok {
				t.MoveTo(c, m)
			}
		}
		g.changed = true
		return true

	case gestureResize:
		changed := e.resize(g, p, m)
		g.changed = g.changed || changed
		return changed

	case gestureCreate:
		if g.tool != ToolShape {
			return false
		}
		if g.preview == nil {
			if !pastDrag(g.start, p, e.cfg.Gesture.MinDrag) {
				return false
			}
			g.preview = e.newShape()
		}
		g.preview.SpanTo(g.start, p, m)
		return true
	}
	return false
}

// resize applies a resize step, keeping the previous size when the new one
// falls under the minimum.
func (e *Editor) resize(g *gesture, p geometry.Point2D, m *transform.Mapper) bool {
	gc := e.cfg.Gesture
	switch g.tool {
	case ToolBlur:
		if b, ok := e.blurs.Get(g.id); ok {
			return b.ResizeTo(p, m, gc.RectResizeMin, gc.CircleResizeMin)
		}
	case ToolShape:
		if s, ok := e.shapes.Get(g.id); ok {
			prev := *s
			s.ResizeTo(p, m)
			if shapeTooSmall(s, m, gc.RectResizeMin, gc.CircleResizeMin) {
				*s = prev
				return false
			}
			return true
		}
	case ToolText:
		if t, ok := e.texts.Get(g.id); ok {
			prev := t.RelFontSize
			t.ResizeTo(p, m)
			return t.RelFontSize != prev
		}
	}
	return false
}

// pastDrag reports whether p has moved more than minDrag from start along
// either axis.
func pastDrag(start, p geometry.Point2D, minDrag float64) bool {
	return math.Abs(p.X-start.X) > minDrag || math.Abs(p.Y-start.Y) > minDrag
}

func shapeTooSmall(s *overlay.Shape, m *transform.Mapper, minRect, minRadius float64) bool {
	b := s.Bounds(m)
	switch s.Type {
	case overlay.ShapeCircle:
		return math.Min(b.Width, b.Height)/2 < minRadius
	case overlay.ShapeArrow:
		tail, head := s.Endpoints(m)
		return tail.Distance(head) < minRect
	}
	return b.Width < minRect || b.Height < minRect
}

// newShape returns a shape styled from the controls. e.mu must be held.
func (e *Editor) newShape() *overlay.Shape {
	return &overlay.Shape{
		Type:        e.controls.ShapeType,
		Color:       e.controls.ShapeColor,
		StrokeWidth: e.controls.ShapeStroke,
	}
}

// PointerUp ends the gesture at p. Completed gestures are recorded in
// history.
func (e *Editor) PointerUp(p geometry.Point2D) bool {
	e.mu.Lock()
	g := e.gesture
	e.gesture = gesture{}
	if g.kind == gestureIdle {
		e.mu.Unlock()
		return false
	}
	_, _, _, m := e.frame()

	created := false
	if g.kind == gestureCreate {
		switch g.tool {
		case ToolBlur:
			if b := overlay.NewBlurFromDrag(e.controls.BlurType, g.start, p, e.controls.BlurIntensity, e.cfg.Gesture.MinDrag, m); b != nil {
				e.blurs.Add(b)
				e.state.Select(ToolBlur, b.ID)
				created = true
			}
		case ToolShape:
			if pastDrag(g.start, p, e.cfg.Gesture.MinDrag) {
				s := e.newShape()
				s.SpanTo(g.start, p, m)
				e.shapes.Add(s)
				e.state.Select(ToolShape, s.ID)
				created = true
			}
		}
	}
	e.mu.Unlock()

	logging.Logger().Debug("gesture end",
		slog.String("tool", g.tool.String()),
		slog.String("kind", g.kind.String()),
		slog.Bool("created", created),
		slog.Bool("changed", g.changed))

	if created {
		e.emit(EventSelectionChanged, EventChanged)
	}
	if created || g.changed {
		e.saveAndLog()
	}
	return created || g.changed || g.preview != nil
}

// PointerLeave ends the gesture at the last pointer position.
func (e *Editor) PointerLeave() bool {
	e.mu.Lock()
	last := e.gesture.last
	e.mu.Unlock()
	return e.PointerUp(last)
}

// KeyDown handles a key press. Delete and Backspace remove the selected
// entity; Escape clears the selection.
func (e *Editor) KeyDown(k Key) bool {
	switch k {
	case KeyDelete, KeyBackspace:
		return e.DeleteSelected()
	case KeyEscape:
		e.mu.Lock()
		changed := e.state.ClearSelection()
		e.mu.Unlock()
		if changed {
			e.emit(EventSelectionChanged, EventChanged)
		}
		return changed
	}
	return false
}

// DeleteSelected removes the selected entity and records the change.
func (e *Editor) DeleteSelected() bool {
	e.mu.Lock()
	sel := e.state.Selection()
	removed := false
	switch sel.Tool {
	case ToolBlur:
		removed = e.blurs.Remove(sel.ID)
	case ToolShape:
		removed = e.shapes.Remove(sel.ID)
	case ToolText:
		removed = e.texts.Remove(sel.ID)
	}
	if removed {
		e.state.ClearSelection()
	}
	e.mu.Unlock()

	if !removed {
		return false
	}
	logging.Logger().Debug("entity deleted", slog.String("tool", sel.Tool.String()), slog.Int("id", sel.ID))
	e.emit(EventSelectionChanged, EventChanged)
	e.saveAndLog()
	return true
}

// AddText places a new text entity at the canvas center in the default
// style, switches to the text tool and selects it.
func (e *Editor) AddText(s string) *overlay.Text {
	if s == "" {
		s = "Text"
	}
	e.mu.Lock()
	w, h, _, m := e.frame()
	c := m.ToRelative(geometry.NewPoint2D(float64(w)/2, float64(h)/2))
	t := &overlay.Text{
		Text:       s,
		RelX:       c.X,
		RelY:       c.Y,
		FontFamily: e.controls.FontFamily,
		Color:      e.controls.TextColor,
	}
	t.SetFontSize(e.controls.FontSize, m)
	e.texts.Add(t)
	e.state.Select(ToolText, t.ID)
	e.mu.Unlock()

	e.emit(EventToolChanged, EventSelectionChanged, EventChanged)
	e.saveAndLog()
	return t
}

// UpdateSelectedText edits the selected text entity. Empty family or color
// and a non-positive size leave that property unchanged. It reports whether
// a text entity was selected.
func (e *Editor) UpdateSelectedText(s, family string, size float64, hex string) bool {
	e.mu.Lock()
	t, ok := e.texts.Get(e.state.Selected(ToolText))
	if !ok {
		e.mu.Unlock()
		return false
	}
	_, _, _, m := e.frame()
	t.Text = s
	if family != "" {
		t.FontFamily = family
	}
	if size > 0 && !math.IsNaN(size) {
		t.SetFontSize(geometry.Clamp(size, e.cfg.Text.MinSize, e.cfg.Text.MaxSize), m)
	}
	if hex != "" {
		t.Color = validColor(hex, t.Color)
	}
	e.mu.Unlock()

	e.emit(EventChanged)
	e.saveAndLog()
	return true
}

// Gesturing reports whether a pointer gesture is in progress.
func (e *Editor) Gesturing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gesture.kind != gestureIdle
}
