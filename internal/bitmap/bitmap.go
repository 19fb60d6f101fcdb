// Package bitmap provides asynchronously decoded images: the uploaded photo
// and the raster snapshots restored by undo and redo.
package bitmap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"snapframe/pkg/geometry"
)

// ErrNotReady is returned by Image while decoding is still in progress.
var ErrNotReady = errors.New("bitmap: decode in progress")

// Bitmap is an image handle whose pixels become available once decoding
// completes. All methods are safe for concurrent use.
type Bitmap struct {
	Name string

	done   chan struct{}
	img    image.Image
	format string
	err    error
}

func newPending(name string) *Bitmap {
	return &Bitmap{Name: name, done: make(chan struct{})}
}

func (b *Bitmap) finish(img image.Image, format string, err error) {
	b.img, b.format, b.err = img, format, err
	close(b.done)
}

// FromImage wraps an already decoded image.
func FromImage(name string, img image.Image) *Bitmap {
	b := newPending(name)
	b.finish(img, "", nil)
	return b
}

// Decode starts decoding data in the background and returns immediately.
func Decode(name string, data []byte) *Bitmap {
	b := newPending(name)
	go func() {
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			err = fmt.Errorf("failed to decode %s: %w", name, err)
		}
		b.finish(img, format, err)
	}()
	return b
}

// Load reads and decodes the file at path in the background.
func Load(path string) *Bitmap {
	b := newPending(path)
	go func() {
		f, err := os.Open(path)
		if err != nil {
			b.finish(nil, "", fmt.Errorf("failed to open image: %w", err))
			return
		}
		defer f.Close()
		img, format, err := image.Decode(f)
		if err != nil {
			err = fmt.Errorf("failed to decode image: %w", err)
		}
		b.finish(img, format, err)
	}()
	return b
}

// Done is closed when decoding has finished, successfully or not.
func (b *Bitmap) Done() <-chan struct{} {
	return b.done
}

// Ready reports whether decoding has finished.
func (b *Bitmap) Ready() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// Wait blocks until decoding finishes or ctx is done.
func (b *Bitmap) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-b.done:
		return b.img, b.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Image returns the decoded image without blocking.
func (b *Bitmap) Image() (image.Image, error) {
	if !b.Ready() {
		return nil, ErrNotReady
	}
	return b.img, b.err
}

// Format returns the registered format name, empty until ready or for
// bitmaps created with FromImage.
func (b *Bitmap) Format() string {
	if !b.Ready() {
		return ""
	}
	return b.format
}

// Size returns the natural size, or an empty size if the bitmap is not
// ready or failed to decode.
func (b *Bitmap) Size() geometry.Size {
	img, err := b.Image()
	if err != nil || img == nil {
		return geometry.Size{}
	}
	r := img.Bounds()
	return geometry.NewSize(float64(r.Dx()), float64(r.Dy()))
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Snapshot encodes img as PNG bytes for history storage.
func Snapshot(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
