package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snapframe/internal/config"
	"snapframe/internal/filter"
	"snapframe/internal/filter/cvblur"
	"snapframe/internal/logging"
)

func TestNewBlurrer(t *testing.T) {
	b, err := NewBlurrer(config.BlurResample)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*filter.Resample); !ok {
		t.Errorf("resample backend = %T", b)
	}
	b, err = NewBlurrer(config.BlurGaussian)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(cvblur.Gaussian); !ok {
		t.Errorf("gaussian backend = %T", b)
	}
	if _, err := NewBlurrer("gpu"); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestNewEditorSkipsBadFont(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Text.Fonts = map[string]string{"Broken": filepath.Join(t.TempDir(), "missing.ttf")}
	e, err := NewEditor(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := e.CanvasSize(); w == 0 || h == 0 {
		t.Error("editor should be usable")
	}
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() { logging.SetLogger(nil) })
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	cfg.Log.Level = "loud"
	SetupLogging(&buf, cfg)
	if !strings.Contains(buf.String(), "invalid log level") {
		t.Errorf("output = %q", buf.String())
	}
	logging.Logger().Debug("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("fallback level should be info")
	}
}

func TestFileWatcherCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewFileWatcher(path, time.Hour)
	if w == nil {
		t.Fatal("watcher should be created for an existing file")
	}
	if w.Check() {
		t.Error("unchanged file reported as changed")
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if !w.Check() {
		t.Error("touched file should be reported")
	}
	if w.Check() {
		t.Error("change should be reported once")
	}
	if NewFileWatcher(filepath.Join(t.TempDir(), "absent"), time.Second) != nil {
		t.Error("missing file should return nil")
	}
}

func TestFileWatcherCallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewFileWatcher(path, 5*time.Millisecond)
	fired := make(chan struct{}, 1)
	w.OnChange(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}
}
