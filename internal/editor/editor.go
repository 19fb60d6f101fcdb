// Package editor holds the editing session: the loaded image, the overlay
// lists, mask and control values, the tool and selection state, pointer
// interaction and undo history. It assembles a render.Scene for every frame.
package editor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"snapframe/internal/bitmap"
	"snapframe/internal/config"
	"snapframe/internal/history"
	"snapframe/internal/layout"
	"snapframe/internal/logging"
	"snapframe/internal/mask"
	"snapframe/internal/overlay"
	"snapframe/internal/render"
	"snapframe/internal/transform"
	"snapframe/pkg/colorutil"
	"snapframe/pkg/geometry"
)

// Canvas size used while no image is loaded.
const (
	EmptyWidth  = 400
	EmptyHeight = 300
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = errors.New("editor: no image loaded")

// Editor is one editing session. All methods are safe for concurrent use,
// though the interaction model assumes a single UI goroutine.
type Editor struct {
	mu sync.Mutex

	cfg      config.Config
	pipeline *render.Pipeline
	measurer overlay.Measurer
	now      func() time.Time
	rng      *rand.Rand

	state    EditorState
	controls Controls
	mask     mask.Settings

	blurs  overlay.List[*overlay.Blur]
	shapes overlay.List[*overlay.Shape]
	texts  overlay.List[*overlay.Text]

	// source is the uploaded image, visible is what is drawn: source itself
	// or a padded copy of it.
	source  image.Image
	visible image.Image
	padding transform.Padding
	raster  []byte // PNG of visible, the raster half of history entries

	history     *history.Manager
	restoreDone chan struct{}

	gesture gesture
	last    *render.Canvas

	listeners map[EventType][]EventListener
}

// Option configures an Editor.
type Option func(*Editor)

// WithClock sets the time source used for animated selection marks.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithRand sets the random source used by RandomizeGradient.
func WithRand(r *rand.Rand) Option {
	return func(e *Editor) { e.rng = r }
}

// New returns an empty editor rendering through p.
func New(cfg config.Config, p *render.Pipeline, opts ...Option) *Editor {
	e := &Editor{
		cfg:       cfg,
		pipeline:  p,
		now:       time.Now,
		controls:  DefaultControls(cfg),
		mask:      mask.DefaultSettings(),
		history:   history.New(cfg.History.Depth),
		listeners: make(map[EventType][]EventListener),
	}
	if p != nil && p.Fonts() != nil {
		e.measurer = p.Fonts()
	} else {
		e.measurer = approxMeasurer{}
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return e
}

// approxMeasurer estimates text width when no font registry is available.
type approxMeasurer struct{}

func (approxMeasurer) MeasureText(s, _ string, size float64) float64 {
	return 0.6 * size * float64(len([]rune(s)))
}

// On registers a listener for event.
func (e *Editor) On(event EventType, listener EventListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], listener)
}

// emit calls the listeners of each event. It must be called without e.mu
// held.
func (e *Editor) emit(events ...EventType) {
	for _, ev := range events {
		e.mu.Lock()
		ls := append([]EventListener(nil), e.listeners[ev]...)
		e.mu.Unlock()
		for _, l := range ls {
			l(ev)
		}
	}
}

// FontFamilies returns the families text entities can use.
func (e *Editor) FontFamilies() []string {
	if e.pipeline == nil || e.pipeline.Fonts() == nil {
		return []string{e.cfg.Text.DefaultFamily}
	}
	return e.pipeline.Fonts().Families()
}

// Config returns the configuration the editor was built with.
func (e *Editor) Config() config.Config { return e.cfg }

// SetImage waits for b to decode and makes it the working image. Padding is
// cleared and the mask reset; overlays are kept. The new state is recorded
// in history.
func (e *Editor) SetImage(ctx context.Context, b *bitmap.Bitmap) error {
	img, err := b.Wait(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", b.Name, err)
	}
	raster, err := bitmap.Snapshot(img)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", b.Name, err)
	}

	e.mu.Lock()
	e.source = img
	e.visible = img
	e.raster = raster
	e.padding = transform.Padding{}
	e.mask = mask.DefaultSettings()
	e.mu.Unlock()

	logging.Logger().Debug("image loaded",
		slog.String("name", b.Name),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))
	e.emit(EventImageLoaded, EventChanged)
	e.saveAndLog()
	return nil
}

// HasImage reports whether an image is loaded.
func (e *Editor) HasImage() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible != nil
}

// Image returns the visible image, or nil.
func (e *Editor) Image() image.Image {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

// frame computes the canvas geometry and coordinate mapping for the current
// inputs.
func (e *Editor) frame() (w, h int, l layout.Layout, m *transform.Mapper) {
	if e.visible == nil {
		size := geometry.NewSize(EmptyWidth, EmptyHeight)
		return EmptyWidth, EmptyHeight, layout.Layout{}, transform.New(transform.IdentityContext(EmptyWidth, EmptyHeight), size, transform.Padding{})
	}
	b := e.visible.Bounds()
	size := geometry.NewSize(float64(b.Dx()), float64(b.Dy()))
	l = layout.Compute(size, layout.Params{
		Aspect:         e.controls.Aspect,
		BackgroundSize: e.controls.BackgroundSize,
		Crop:           e.controls.Crop,
	})
	return l.Width, l.Height, l, transform.New(l.Context(), size, e.padding)
}

// Mapper returns the coordinate mapping of the current frame.
func (e *Editor) Mapper() *transform.Mapper {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, _, _, m := e.frame()
	return m
}

// CanvasSize returns the size of the next render.
func (e *Editor) CanvasSize() (w, h int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, h, _, _ = e.frame()
	return w, h
}

// scene assembles the render input. e.mu must be held.
func (e *Editor) scene() *render.Scene {
	w, h, l, m := e.frame()
	s := &render.Scene{
		Width:      w,
		Height:     h,
		Image:      e.visible,
		Layout:     l,
		Mapper:     m,
		Background: e.controls.Background,
		Shadow:     e.controls.Shadow,
		Mask:       e.mask,
		Texts:      e.texts.Items(),
		Blurs:      e.blurs.Items(),
		Shapes:     e.shapes.Items(),
		Selection: render.Selection{
			Blur:  e.state.Selected(ToolBlur),
			Shape: e.state.Selected(ToolShape),
			Text:  e.state.Selected(ToolText),
		},
		Now: e.now(),
	}
	if c, err := colorutil.ParseHex(e.controls.PaddingColor); err == nil {
		s.PaddingColor = c
	}
	if p := e.gesture.preview; p != nil {
		s.Shapes = append(s.Shapes, p)
	}
	return s
}

// Render redraws the whole frame.
func (e *Editor) Render() *render.Canvas {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = e.pipeline.Render(e.scene())
	return e.last
}

// Pixels returns the most recent frame, rendering one if none exists.
func (e *Editor) Pixels() *image.RGBA {
	e.mu.Lock()
	last := e.last
	e.mu.Unlock()
	if last == nil {
		last = e.Render()
	}
	return last.Image()
}

// Reset returns the session to its initial state: no image, no overlays,
// default mask and controls, empty history.
func (e *Editor) Reset() {
	e.mu.Lock()
	e.source, e.visible, e.raster = nil, nil, nil
	e.padding = transform.Padding{}
	e.blurs.Clear()
	e.shapes.Clear()
	e.texts.Clear()
	e.mask = mask.DefaultSettings()
	e.controls = DefaultControls(e.cfg)
	e.state = EditorState{}
	e.gesture = gesture{}
	e.history.Clear()
	e.last = nil
	e.mu.Unlock()

	logging.Logger().Debug("editor reset")
	e.emit(EventToolChanged, EventSelectionChanged, EventHistoryChanged, EventChanged)
}

// State returns a copy of the tool and selection state.
func (e *Editor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetTool activates t, clearing the selection when the tool changes.
func (e *Editor) SetTool(t Tool) {
	e.mu.Lock()
	changed := e.state.SetTool(t)
	e.gesture = gesture{}
	e.mu.Unlock()
	if changed {
		logging.Logger().Debug("tool changed", slog.String("tool", t.String()))
		e.emit(EventToolChanged, EventSelectionChanged, EventChanged)
	}
}

// Select activates t and selects the entity id of that kind.
func (e *Editor) Select(t Tool, id int) {
	e.mu.Lock()
	e.state.Select(t, id)
	e.mu.Unlock()
	e.emit(EventToolChanged, EventSelectionChanged, EventChanged)
}

// Blurs returns the blur regions in draw order.
func (e *Editor) Blurs() []*overlay.Blur {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blurs.Items()
}

// Shapes returns the shapes in draw order.
func (e *Editor) Shapes() []*overlay.Shape {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shapes.Items()
}

// Texts returns the text entities in draw order.
func (e *Editor) Texts() []*overlay.Text {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.texts.Items()
}

// Padding returns the active padding adjustment.
func (e *Editor) Padding() transform.Padding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.padding
}
