// Package padding detects uniform borders around an uploaded image and
// rebuilds the image with a normalized or fixed border.
package padding

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/stat"

	"snapframe/internal/transform"
	"snapframe/pkg/colorutil"
)

// Detection tuning.
const (
	MaxEdgeThickness = 3
	EdgeSampleStep   = 2
	OpaqueAlpha      = 250
	QuantizeStep     = 5
	EdgeColorCount   = 3
	ColorTolerance   = 25.0

	// DefaultNormalized is the border, in pixels, of a normalized image.
	DefaultNormalized = 50
)

// Insets are border widths in pixels.
type Insets struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// EdgeColor is a color found along the image border and how often it was
// sampled.
type EdgeColor struct {
	Color color.RGBA
	Count int
}

// Detection is the result of scanning an image for padding.
type Detection struct {
	Insets     Insets
	Color      color.RGBA // most frequent edge color, white if none
	EdgeColors []EdgeColor
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// DominantEdgeColors samples every other pixel of a thin band along each
// edge and returns up to three of the most frequent opaque colors. Colors
// are grouped by a 5-step quantized key; the first sample of each group is
// its representative.
func DominantEdgeColors(img image.Image) []EdgeColor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	thick := min(MaxEdgeThickness, min(w, h)/20)

	type bucket struct {
		first color.RGBA
		count int
		order int
	}
	buckets := make(map[color.RGBA]*bucket)
	sample := func(x, y int) {
		c := rgbaAt(img, b.Min.X+x, b.Min.Y+y)
		if c.A < OpaqueAlpha {
			return
		}
		key := colorutil.Quantize(color.RGBA{c.R, c.G, c.B, 255}, QuantizeStep)
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{first: color.RGBA{c.R, c.G, c.B, 255}, order: len(buckets)}
			buckets[key] = bk
		}
		bk.count++
	}

	for y := 0; y < min(thick, h); y++ {
		for x := 0; x < w; x += EdgeSampleStep {
			sample(x, y)
		}
	}
	for y := max(0, h-thick); y < h; y++ {
		for x := 0; x < w; x += EdgeSampleStep {
			sample(x, y)
		}
	}
	for x := 0; x < min(thick, w); x++ {
		for y := 0; y < h; y += EdgeSampleStep {
			sample(x, y)
		}
	}
	for x := max(0, w-thick); x < w; x++ {
		for y := 0; y < h; y += EdgeSampleStep {
			sample(x, y)
		}
	}

	list := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		list = append(list, bk)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].order < list[j].order
	})
	if len(list) > EdgeColorCount {
		list = list[:EdgeColorCount]
	}
	out := make([]EdgeColor, len(list))
	for i, bk := range list {
		out[i] = EdgeColor{Color: bk.first, Count: bk.count}
	}
	return out
}

func similar(c color.RGBA, edges []EdgeColor) bool {
	for _, e := range edges {
		if colorutil.DistanceSq(c, e.Color) <= ColorTolerance*ColorTolerance {
			return true
		}
	}
	return false
}

// Detect finds the bounding box of content pixels, those opaque pixels that
// differ from every dominant edge color, and reports the border around it.
// An image with no content pixels reports zero insets.
func Detect(img image.Image) Detection {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	edges := DominantEdgeColors(img)
	d := Detection{Color: colorutil.White, EdgeColors: edges}
	if len(edges) > 0 {
		d.Color = edges[0].Color
	}

	top, left := h, w
	right, bottom := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := rgbaAt(img, b.Min.X+x, b.Min.Y+y)
			if c.A < OpaqueAlpha {
				continue
			}
			if similar(color.RGBA{c.R, c.G, c.B, 255}, edges) {
				continue
			}
			top = min(top, y)
			left = min(left, x)
			right = max(right, x)
			bottom = max(bottom, y)
		}
	}
	if right < 0 {
		return d
	}
	d.Insets = Insets{Top: top, Right: w - right - 1, Bottom: h - bottom - 1, Left: left}
	return d
}

// SampleColor averages opaque pixels along the middle line of each border
// thicker than five pixels. It returns white when no border qualifies.
func SampleColor(img image.Image, in Insets) color.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var rs, gs, bs []float64
	add := func(x, y int) {
		c := rgbaAt(img, b.Min.X+x, b.Min.Y+y)
		if c.A <= OpaqueAlpha {
			return
		}
		rs = append(rs, float64(c.R))
		gs = append(gs, float64(c.G))
		bs = append(bs, float64(c.B))
	}

	const step, minBorder = 5, 5
	if in.Top > minBorder {
		for x := 0; x < w; x += step {
			add(x, in.Top/2)
		}
	}
	if in.Bottom > minBorder {
		for x := 0; x < w; x += step {
			add(x, h-in.Bottom/2-1)
		}
	}
	if in.Left > minBorder {
		for y := 0; y < h; y += step {
			add(in.Left/2, y)
		}
	}
	if in.Right > minBorder {
		for y := 0; y < h; y += step {
			add(w-in.Right/2-1, y)
		}
	}
	if len(rs) == 0 {
		return colorutil.White
	}
	round := func(v []float64) uint8 { return uint8(math.Round(stat.Mean(v, nil))) }
	return color.RGBA{round(rs), round(gs), round(bs), 255}
}

// Normalize crops img to the detected content and surrounds it with amount
// pixels of fill. The returned Padding maps the new image back to the
// original for relative coordinates.
func Normalize(img image.Image, in Insets, amount int, fill color.Color) (*image.RGBA, transform.Padding) {
	b := img.Bounds()
	amount = max(0, amount)
	cw := max(0, b.Dx()-in.Left-in.Right)
	ch := max(0, b.Dy()-in.Top-in.Bottom)

	out := image.NewRGBA(image.Rect(0, 0, cw+2*amount, ch+2*amount))
	draw.Draw(out, out.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	src := image.Pt(b.Min.X+in.Left, b.Min.Y+in.Top)
	draw.Draw(out, image.Rect(amount, amount, amount+cw, amount+ch), img, src, draw.Over)

	return out, transform.Padding{
		Active:         true,
		OriginalWidth:  float64(b.Dx()),
		OriginalHeight: float64(b.Dy()),
		OffsetX:        float64(amount),
		OffsetY:        float64(amount),
		ContentOffsetX: float64(in.Left),
		ContentOffsetY: float64(in.Top),
	}
}

// Direct surrounds the whole image with amount pixels of fill without any
// detection.
func Direct(img image.Image, amount int, fill color.Color) (*image.RGBA, transform.Padding) {
	return Normalize(img, Insets{}, amount, fill)
}
