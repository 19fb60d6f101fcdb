package app

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snapframe/internal/config"
	"snapframe/internal/editor"
	"snapframe/internal/layout"
	"snapframe/internal/preset"
	"snapframe/internal/render"
)

func newTestEditor() *editor.Editor {
	return editor.New(config.DefaultConfig(), render.New(nil, nil))
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestOpenImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	writePNG(t, path, 40, 30)

	ed := newTestEditor()
	if err := OpenImage(context.Background(), ed, path); err != nil {
		t.Fatal(err)
	}
	if !ed.HasImage() {
		t.Fatal("image not loaded")
	}
	if err := OpenImage(context.Background(), ed, filepath.Join(t.TempDir(), "none.png")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestPresetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blue"+preset.Ext)
	src := newTestEditor()
	src.SetShadow(33)
	src.SetAspect(layout.AspectSquare)
	src.AddText("caption")
	if err := SavePreset(src, path); err != nil {
		t.Fatal(err)
	}

	dst := newTestEditor()
	f, err := ApplyPreset(dst, path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "blue" {
		t.Errorf("name = %q, want blue", f.Name)
	}
	c := dst.Controls()
	if c.Shadow != 33 || c.Aspect != layout.AspectSquare {
		t.Errorf("controls = %+v", c)
	}
	if texts := dst.Texts(); len(texts) != 1 || texts[0].Text != "caption" {
		t.Errorf("texts = %+v", texts)
	}
}

func TestApplyPresetRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version":99,"state":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ApplyPreset(newTestEditor(), path); !errors.Is(err, preset.ErrVersion) {
		t.Errorf("err = %v, want ErrVersion", err)
	}
}

func TestExportPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "frame.png")
	ed := newTestEditor()
	if err := ExportPNG(ed, path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != editor.EmptyWidth || b.Dy() != editor.EmptyHeight {
		t.Errorf("size = %v, want %dx%d", b, editor.EmptyWidth, editor.EmptyHeight)
	}
	// The default gradient covers the frame.
	if _, _, _, a := img.At(200, 150).RGBA(); a == 0 {
		t.Error("frame center is transparent")
	}
}

func TestWatchPresetReapplies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.json")
	src := newTestEditor()
	if err := SavePreset(src, path); err != nil {
		t.Fatal(err)
	}

	ed := newTestEditor()
	applied := make(chan error, 1)
	w := WatchPreset(ed, path, func(err error) {
		select {
		case applied <- err:
		default:
		}
	})
	if w == nil {
		t.Fatal("watcher not created")
	}
	defer w.Stop()

	src.SetShadow(12)
	if err := SavePreset(src, path); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-applied:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * PresetPollInterval):
		t.Fatal("preset change not picked up")
	}
	if got := ed.Controls().Shadow; got != 12 {
		t.Errorf("shadow = %v, want 12", got)
	}
}
