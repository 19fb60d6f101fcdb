package editor

import (
	"image"
	"log/slog"

	"snapframe/internal/bitmap"
	"snapframe/internal/logging"
	"snapframe/internal/padding"
	"snapframe/internal/transform"
	"snapframe/pkg/colorutil"
)

// NormalizePadding detects the uniform border around the uploaded image and
// replaces it with the configured amount of the sampled border color.
// Overlays keep their positions on the original image.
func (e *Editor) NormalizePadding() (padding.Detection, error) {
	e.mu.Lock()
	src := e.source
	e.mu.Unlock()
	if src == nil {
		return padding.Detection{}, ErrNoImage
	}

	det := padding.Detect(src)
	fill := padding.SampleColor(src, det.Insets)
	img, pad := padding.Normalize(src, det.Insets, e.cfg.Padding.Normalized, fill)
	logging.Logger().Debug("padding normalized",
		slog.Int("top", det.Insets.Top),
		slog.Int("right", det.Insets.Right),
		slog.Int("bottom", det.Insets.Bottom),
		slog.Int("left", det.Insets.Left),
		slog.String("color", colorutil.ToHex(fill)))

	if err := e.setVisible(img, pad, colorutil.ToHex(fill)); err != nil {
		return det, err
	}
	return det, nil
}

// DirectPadding surrounds the uploaded image with amount pixels of the
// padding color.
func (e *Editor) DirectPadding(amount int) error {
	e.mu.Lock()
	src := e.source
	fill := e.controls.PaddingColor
	e.mu.Unlock()
	if src == nil {
		return ErrNoImage
	}
	img, pad := padding.Direct(src, amount, colorutil.ParseHexOr(fill, colorutil.Black))
	return e.setVisible(img, pad, fill)
}

// ClearPadding shows the uploaded image unchanged.
func (e *Editor) ClearPadding() error {
	e.mu.Lock()
	src := e.source
	fill := e.controls.PaddingColor
	e.mu.Unlock()
	if src == nil {
		return ErrNoImage
	}
	return e.setVisible(src, transform.Padding{}, fill)
}

func (e *Editor) setVisible(img image.Image, pad transform.Padding, fill string) error {
	raster, err := bitmap.Snapshot(img)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.visible = img
	e.raster = raster
	e.padding = pad
	e.controls.PaddingColor = fill
	e.mu.Unlock()
	e.emit(EventChanged)
	e.saveAndLog()
	return nil
}
