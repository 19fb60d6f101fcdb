// Package app wires configuration, logging, fonts and the render pipeline
// into an editing session, and provides the desktop theme and file watcher.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"snapframe/internal/config"
	"snapframe/internal/editor"
	"snapframe/internal/filter"
	"snapframe/internal/filter/cvblur"
	"snapframe/internal/logging"
	"snapframe/internal/render"
)

// SetupLogging installs a text logger writing to w at the configured level.
// An invalid level falls back to info and is reported through the new
// logger.
func SetupLogging(w io.Writer, cfg config.Config) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	logging.SetLogger(logging.NewText(w, level))
	if err != nil {
		logging.Logger().Warn("log level", slog.Any("error", err))
	}
}

// NewBlurrer returns the blur filter named by backend.
func NewBlurrer(backend string) (filter.Blurrer, error) {
	switch backend {
	case "", config.BlurResample:
		return filter.NewResample(), nil
	case config.BlurGaussian:
		return cvblur.New(), nil
	}
	return nil, fmt.Errorf("unknown blur backend %q", backend)
}

// NewPipeline builds the render pipeline for cfg: the built-in fonts plus
// any configured font files, and the configured blur backend. A font file
// that fails to load is logged and skipped.
func NewPipeline(cfg config.Config) (*render.Pipeline, error) {
	fonts, err := render.NewFonts()
	if err != nil {
		return nil, err
	}
	for _, family := range slices.Sorted(maps.Keys(cfg.Text.Fonts)) {
		path := cfg.Text.Fonts[family]
		if err := fonts.RegisterFile(family, path); err != nil {
			logging.Logger().Warn("font skipped", slog.String("family", family), slog.Any("error", err))
		}
	}
	blur, err := NewBlurrer(cfg.Blur.Backend)
	if err != nil {
		return nil, err
	}
	return render.New(fonts, blur), nil
}

// NewEditor returns an editor rendering through NewPipeline(cfg).
func NewEditor(cfg config.Config, opts ...editor.Option) (*editor.Editor, error) {
	p, err := NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	return editor.New(cfg, p, opts...), nil
}
