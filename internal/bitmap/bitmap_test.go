package bitmap

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 7, 5))
	img.Set(3, 2, color.RGBA{200, 10, 10, 255})
	return img
}

func TestSnapshotDecodeRoundTrip(t *testing.T) {
	data, err := Snapshot(testImage())
	if err != nil {
		t.Fatal(err)
	}
	b := Decode("snap", data)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	img, err := b.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(7, 5) {
		t.Errorf("size = %v", got)
	}
	if r, _, _, _ := img.At(3, 2).RGBA(); r>>8 != 200 {
		t.Errorf("pixel red = %d, want 200", r>>8)
	}
	if b.Format() != "png" {
		t.Errorf("Format = %q", b.Format())
	}
	if s := b.Size(); s.Width != 7 || s.Height != 5 {
		t.Errorf("Size = %+v", s)
	}
}

func TestDecodeGarbage(t *testing.T) {
	b := Decode("junk", []byte("not an image"))
	<-b.Done()
	if _, err := b.Image(); err == nil {
		t.Error("expected decode error")
	}
	if !b.Size().Empty() {
		t.Error("failed bitmap should have empty size")
	}
}

func TestImageNotReady(t *testing.T) {
	b := newPending("pending")
	if _, err := b.Image(); !errors.Is(err, ErrNotReady) {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
	if !b.Size().Empty() {
		t.Error("pending bitmap should have empty size")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait err = %v, want context.Canceled", err)
	}
}

func TestFromImageReady(t *testing.T) {
	b := FromImage("mem", testImage())
	if !b.Ready() {
		t.Fatal("FromImage should be ready")
	}
	if _, err := b.Image(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFile(t *testing.T) {
	data, err := Snapshot(testImage())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "in.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := Load(path).Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 7 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")).Wait(context.Background()); err == nil {
		t.Error("expected open error")
	}
}
