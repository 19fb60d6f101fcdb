package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"snapframe/internal/bitmap"
	"snapframe/internal/editor"
	"snapframe/internal/logging"
	"snapframe/internal/preset"
)

// OpenImage decodes the image at path and makes it the editor's working
// image.
func OpenImage(ctx context.Context, ed *editor.Editor, path string) error {
	return ed.SetImage(ctx, bitmap.Load(path))
}

// ApplyPreset loads the preset at path into the editor.
func ApplyPreset(ed *editor.Editor, path string) (*preset.File, error) {
	f, err := preset.Load(path)
	if err != nil {
		return nil, err
	}
	if err := ed.Deserialize(f.State); err != nil {
		return nil, fmt.Errorf("apply preset %s: %w", path, err)
	}
	logging.Logger().Info("preset applied", slog.String("name", f.Name), slog.String("path", path))
	return f, nil
}

// SavePreset writes the editor's overlay, mask and control state to path.
func SavePreset(ed *editor.Editor, path string) error {
	state, err := ed.Serialize()
	if err != nil {
		return err
	}
	return preset.New(preset.NameFromPath(path), state).Save(path)
}

// ExportPNG renders the current frame and writes it to path.
func ExportPNG(ed *editor.Editor, path string) error {
	img := ed.Render().Image()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bitmap.EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WatchPreset re-applies the preset at path whenever the file changes. It
// returns nil if path cannot be watched. The caller stops the watcher.
func WatchPreset(ed *editor.Editor, path string, onApplied func(error)) *FileWatcher {
	w := NewFileWatcher(path, PresetPollInterval)
	if w == nil {
		return nil
	}
	w.OnChange(func() {
		_, err := ApplyPreset(ed, path)
		if err != nil {
			logging.Logger().Warn("preset reload failed", slog.String("path", path), slog.Any("error", err))
		}
		if onApplied != nil {
			onApplied(err)
		}
	})
	w.Start()
	return w
}
