package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"snapframe/internal/bitmap"
	"snapframe/internal/history"
	"snapframe/internal/logging"
	"snapframe/internal/mask"
	"snapframe/internal/overlay"
	"snapframe/internal/transform"
)

// Document is the serialized overlay, mask and control state.
type Document struct {
	Blurs    []*overlay.Blur  `json:"blurs"`
	Shapes   []*overlay.Shape `json:"shapes"`
	Texts    []*overlay.Text  `json:"texts"`
	Mask     mask.Settings    `json:"mask"`
	Controls Controls         `json:"controls"`

	// Padding travels with history entries only, next to the raster it
	// describes.
	Padding *transform.Padding `json:"padding,omitempty"`
}

// document captures the current state. e.mu must be held.
func (e *Editor) document() Document {
	return Document{
		Blurs:    e.blurs.Items(),
		Shapes:   e.shapes.Items(),
		Texts:    e.texts.Items(),
		Mask:     e.mask,
		Controls: e.controls,
	}
}

// apply replaces the current state with d. e.mu must be held.
func (e *Editor) apply(d Document) {
	e.blurs.Replace(nonNil(d.Blurs))
	e.shapes.Replace(nonNil(d.Shapes))
	e.texts.Replace(nonNil(d.Texts))
	e.mask = d.Mask.Normalize()
	e.controls = d.Controls.Sanitize()
	if d.Padding != nil {
		e.padding = *d.Padding
	}
	e.state.ClearSelection()
	e.gesture = gesture{}
}

func nonNil[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Serialize encodes the overlay, mask and control state as JSON.
func (e *Editor) Serialize() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return json.Marshal(e.document())
}

// Deserialize replaces the overlay, mask and control state with data and
// records the result in history. Missing sections take their defaults.
func (e *Editor) Deserialize(data []byte) error {
	d := Document{
		Mask:     e.Mask(),
		Controls: e.Controls(),
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	d.Padding = nil

	e.mu.Lock()
	e.apply(d)
	e.mu.Unlock()
	e.emit(EventSelectionChanged, EventChanged)
	e.saveAndLog()
	return nil
}

// SaveState records the current raster and vector state as a history entry.
// It fails with history.ErrRestorePending while an undo or redo is still
// decoding.
func (e *Editor) SaveState() error {
	e.mu.Lock()
	d := e.document()
	pad := e.padding
	d.Padding = &pad
	raster := e.raster
	state, err := json.Marshal(d)
	e.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	pushed, err := e.history.Push(history.Entry{Raster: raster, State: state})
	if err != nil {
		return err
	}
	if pushed {
		logging.Logger().Debug("history push",
			slog.Int("entries", e.history.Len()),
			slog.Int("cursor", e.history.Cursor()))
		e.emit(EventHistoryChanged)
	}
	return nil
}

// saveAndLog records a save point after a completed edit.
func (e *Editor) saveAndLog() {
	if err := e.SaveState(); err != nil {
		logging.Logger().Warn("save point skipped", slog.Any("error", err))
	}
}

// Undo restores the previous history entry. At the oldest entry it does
// nothing and reports false. The vector state is restored at once; the
// raster is decoded in the background and EventRestored fires when it is in
// place. Until then further undo, redo and save calls fail with
// history.ErrRestorePending.
func (e *Editor) Undo() (bool, error) {
	return e.step(e.history.Undo)
}

// Redo restores the next history entry. See Undo.
func (e *Editor) Redo() (bool, error) {
	return e.step(e.history.Redo)
}

func (e *Editor) step(move func() (history.Entry, bool, error)) (bool, error) {
	entry, moved, err := move()
	if err != nil || !moved {
		return false, err
	}

	var d Document
	if err := json.Unmarshal(entry.State, &d); err != nil {
		// Entries are produced by SaveState, so this only happens on
		// memory corruption. Keep the current state.
		logging.Logger().Warn("history entry unreadable", slog.Any("error", err))
		e.history.Restored()
		return true, nil
	}

	e.mu.Lock()
	e.apply(d)
	sameRaster := bytes.Equal(entry.Raster, e.raster)
	if sameRaster || len(entry.Raster) == 0 {
		if !sameRaster {
			e.source, e.visible, e.raster = nil, nil, nil
		}
		e.history.Restored()
		e.mu.Unlock()
		e.emit(EventSelectionChanged, EventHistoryChanged, EventChanged, EventRestored)
		return true, nil
	}
	done := make(chan struct{})
	e.restoreDone = done
	e.mu.Unlock()

	b := bitmap.Decode("history", entry.Raster)
	go e.finishRestore(b, entry.Raster, d.Padding, done)
	e.emit(EventSelectionChanged, EventHistoryChanged, EventChanged)
	return true, nil
}

// finishRestore installs a decoded history raster.
func (e *Editor) finishRestore(b *bitmap.Bitmap, raster []byte, pad *transform.Padding, done chan struct{}) {
	<-b.Done()
	img, err := b.Image()

	e.mu.Lock()
	if err != nil {
		logging.Logger().Warn("history raster decode failed", slog.Any("error", err))
	} else {
		e.visible = img
		e.raster = raster
		if pad == nil || !pad.Active {
			e.source = img
		}
	}
	e.history.Restored()
	if e.restoreDone == done {
		e.restoreDone = nil
	}
	e.mu.Unlock()
	close(done)
	e.emit(EventRestored, EventChanged)
}

// WaitRestore blocks until a pending undo or redo has installed its raster.
func (e *Editor) WaitRestore(ctx context.Context) error {
	e.mu.Lock()
	done := e.restoreDone
	e.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CanUndo reports whether Undo would move.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would move.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// History exposes the history manager for inspection.
func (e *Editor) History() *history.Manager { return e.history }

// IsRestorePending reports err is history.ErrRestorePending.
func IsRestorePending(err error) bool {
	return errors.Is(err, history.ErrRestorePending)
}
