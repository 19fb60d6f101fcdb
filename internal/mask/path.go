package mask

import (
	"math"

	"snapframe/pkg/geometry"
)

// PathBuilder receives path commands. *gg.Context satisfies it.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
}

// frame carries the inputs shared by every shape builder.
type frame struct {
	center geometry.Point2D
	imageW float64
	imageH float64
	size   float64 // Settings.Size as a fraction
	inset  float64 // border offset in pixels
	s      Settings
}

// extents returns the shape's bounding size at the given fraction of the
// image, shrunk by the border offset on each side.
func (f frame) extents(scale float64) (w, h float64) {
	w = math.Max(0, f.imageW*scale-2*f.inset)
	h = math.Max(0, f.imageH*scale-2*f.inset)
	return w, h
}

// cornerRadius maps the 0-100 slider to a radius no larger than half the
// shorter side.
func (f frame) cornerRadius(w, h float64) float64 {
	r := f.s.CornerRadius / 100 * math.Min(w, h) * 0.5
	return math.Min(r, math.Min(w/2, h/2))
}

type builder func(b PathBuilder, f frame)

var builders map[Kind]builder

func init() {
	builders = map[Kind]builder{
		KindRectangle:          buildRectangle,
		KindDiagonalCorners:    buildDiagonalCorners,
		KindDiagonalCornersAlt: buildDiagonalCornersAlt,
		KindWave1:              buildWave(false, false),
		KindWave2:              buildWave(false, true),
		KindWave3:              buildWave(true, false),
		KindWave4:              buildWave(true, true),
		KindEllipse:            buildEllipse,
		KindStar:               buildStar,
		KindHexagon:            buildHexagon,
		KindHeart:              buildHeart,
		KindVintage:            buildVintage,
		KindOrnate:             buildOrnate,
		KindPuzzle:             buildPuzzle,
		KindPostage:            buildPostage,
		KindTicket:             buildTicket,
	}
}

// BuildPath emits the mask path for image, the on-canvas rectangle the image
// is drawn into, inset by borderOffset pixels. It reports whether anything was
// emitted; KindNone and unknown kinds emit nothing.
func BuildPath(b PathBuilder, image geometry.Rect, s Settings, borderOffset float64) bool {
	build, ok := builders[s.Kind]
	if !ok {
		return false
	}
	f := frame{
		center: geometry.NewPoint2D(
			image.X+image.Width*s.PositionX/100,
			image.Y+image.Height*s.PositionY/100,
		),
		imageW: image.Width,
		imageH: image.Height,
		size:   s.Size / 100,
		inset:  borderOffset,
		s:      s,
	}
	build(b, f)
	return true
}

func buildRectangle(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	roundedRect(b, f.center.X-w/2, f.center.Y-h/2, w, h, f.cornerRadius(w, h))
}

func roundedRect(b PathBuilder, x, y, w, h, r float64) {
	if r <= 0 {
		b.MoveTo(x, y)
		b.LineTo(x+w, y)
		b.LineTo(x+w, y+h)
		b.LineTo(x, y+h)
		b.ClosePath()
		return
	}
	r = math.Min(r, math.Min(w/2, h/2))
	b.MoveTo(x+r, y)
	b.LineTo(x+w-r, y)
	b.QuadraticTo(x+w, y, x+w, y+r)
	b.LineTo(x+w, y+h-r)
	b.QuadraticTo(x+w, y+h, x+w-r, y+h)
	b.LineTo(x+r, y+h)
	b.QuadraticTo(x, y+h, x, y+h-r)
	b.LineTo(x, y+r)
	b.QuadraticTo(x, y, x+r, y)
	b.ClosePath()
}

// buildDiagonalCorners rounds the top-left and bottom-right corners.
func buildDiagonalCorners(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	r := f.cornerRadius(w, h)
	left, top := f.center.X-w/2, f.center.Y-h/2
	right, bottom := left+w, top+h

	b.MoveTo(left+r, top)
	b.LineTo(right, top)
	b.LineTo(right, bottom-r)
	if r > 0 {
		b.QuadraticTo(right, bottom, right-r, bottom)
	} else {
		b.LineTo(right, bottom)
	}
	b.LineTo(left, bottom)
	b.LineTo(left, top+r)
	if r > 0 {
		b.QuadraticTo(left, top, left+r, top)
	} else {
		b.LineTo(left, top)
	}
	b.ClosePath()
}

// buildDiagonalCornersAlt rounds the top-right and bottom-left corners.
func buildDiagonalCornersAlt(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	r := f.cornerRadius(w, h)
	left, top := f.center.X-w/2, f.center.Y-h/2
	right, bottom := left+w, top+h

	b.MoveTo(left, top)
	b.LineTo(right-r, top)
	if r > 0 {
		b.QuadraticTo(right, top, right, top+r)
	} else {
		b.LineTo(right, top)
	}
	b.LineTo(right, bottom)
	b.LineTo(left+r, bottom)
	if r > 0 {
		b.QuadraticTo(left, bottom, left, bottom-r)
	} else {
		b.LineTo(left, bottom)
	}
	b.LineTo(left, top)
	b.ClosePath()
}

// buildWave draws S-curves on the top and bottom edges, or on the left and
// right edges when vertical is set. flip inverts the curve direction.
// Depth is at most 20% of the shorter side.
func buildWave(vertical, flip bool) builder {
	return func(b PathBuilder, f frame) {
		w, h := f.extents(f.size * 0.89)
		left, top := f.center.X-w/2, f.center.Y-h/2
		right, bottom := left+w, top+h
		d := f.s.CornerRadius / 100 * math.Min(w, h) * 0.2
		if flip {
			d = -d
		}

		b.MoveTo(left, top)
		if !vertical {
			b.CubicTo(left+w*0.25, top-d, left+w*0.75, top+d, right, top)
			b.LineTo(right, bottom)
			b.CubicTo(right-w*0.25, bottom+d, right-w*0.75, bottom-d, left, bottom)
		} else {
			b.LineTo(right, top)
			b.CubicTo(right+d, top+h*0.25, right-d, top+h*0.75, right, bottom)
			b.LineTo(left, bottom)
			b.CubicTo(left-d, bottom-h*0.25, left+d, bottom-h*0.75, left, top)
		}
		b.LineTo(left, top)
		b.ClosePath()
	}
}

// buildEllipse fits an ellipse whose axis ratio is Settings.Ratio (width over
// height) inside the image.
func buildEllipse(b PathBuilder, f frame) {
	maxRx, maxRy := f.imageW/2, f.imageH/2
	ratio := f.s.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	var rx, ry float64
	if ratio >= 1 {
		rx = maxRx*f.size - f.inset
		ry = maxRy*f.size/ratio - f.inset
	} else {
		rx = maxRx*f.size*ratio - f.inset
		ry = maxRy*f.size - f.inset
	}
	ellipse(b, f.center.X, f.center.Y, math.Max(0, rx), math.Max(0, ry))
}

var (
	cos18 = math.Cos(18 * math.Pi / 180)
	sin54 = math.Sin(54 * math.Pi / 180)
)

// buildStar draws an upright five-pointed star sized so its bounding box
// fits the mask extents, shifted down so the box is centered.
func buildStar(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	outer := math.Min(w/(2*cos18), h/(1+sin54))
	yOffset := outer / 2 * (1 - sin54)
	center := geometry.NewPoint2D(f.center.X, f.center.Y+yOffset)
	polygon(b, geometry.StarPolygon(center, outer, outer*0.4, 5))
}

func buildHexagon(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	r := math.Min(w/2, h/math.Sqrt(3))
	points := geometry.RegularPolygon(f.center, r, 6, 0)
	roundedPolygon(b, points, f.s.CornerRadius/100*r*0.3)
}

func buildHeart(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	const overshoot = 0.79
	s := math.Min(w/overshoot, h/overshoot)
	x := f.center.X - s/2
	y := f.center.Y - s/2 - s*0.11

	b.MoveTo(x+s/2, y+s*0.35)
	b.CubicTo(x-s*0.1, y-s*0.1, x, y+s*0.7, x+s/2, y+s)
	b.CubicTo(x+s, y+s*0.7, x+s*1.1, y-s*0.1, x+s/2, y+s*0.35)
	b.ClosePath()
}

// buildVintage draws an octagon with notched corners.
func buildVintage(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	hw, hh := w*0.5, h*0.5
	n := math.Min(hw, hh) * 0.15
	left, right := f.center.X-hw, f.center.X+hw
	top, bottom := f.center.Y-hh, f.center.Y+hh

	b.MoveTo(left+n, top)
	b.LineTo(right-n, top)
	b.LineTo(right, top+n)
	b.LineTo(right, bottom-n)
	b.LineTo(right-n, bottom)
	b.LineTo(left+n, bottom)
	b.LineTo(left, bottom-n)
	b.LineTo(left, top+n)
	b.ClosePath()
}

// buildOrnate joins the four edge midpoints with bulging quadratic curves.
func buildOrnate(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	hw, hh := w*0.48, h*0.48
	d := math.Min(hw, hh) * 0.2
	cx, cy := f.center.X, f.center.Y
	left, right := cx-hw, cx+hw
	top, bottom := cy-hh, cy+hh

	b.MoveTo(cx, top)
	b.QuadraticTo(right-d, top-d, right, cy)
	b.QuadraticTo(right+d, bottom-d, cx, bottom)
	b.QuadraticTo(left+d, bottom+d, left, cy)
	b.QuadraticTo(left-d, top+d, cx, top)
	b.ClosePath()
}

// buildPuzzle draws a rectangle with a semicircular knob on each edge.
func buildPuzzle(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	hw, hh := w*0.42, h*0.42
	k := math.Min(hw, hh) * 0.15
	cx, cy := f.center.X, f.center.Y
	left, right := cx-hw, cx+hw
	top, bottom := cy-hh, cy+hh

	b.MoveTo(left, top)
	b.LineTo(cx-k, top)
	arc(b, cx, top, k, math.Pi, 0, false)
	b.LineTo(right, top)
	b.LineTo(right, cy-k)
	arc(b, right, cy, k, -math.Pi/2, math.Pi/2, false)
	b.LineTo(right, bottom)
	b.LineTo(cx+k, bottom)
	arc(b, cx, bottom, k, 0, math.Pi, false)
	b.LineTo(left, bottom)
	b.LineTo(left, cy+k)
	arc(b, left, cy, k, math.Pi/2, -math.Pi/2, false)
	b.ClosePath()
}

// buildPostage draws a stamp outline with alternating perforations.
func buildPostage(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	hw, hh := w*0.5, h*0.5
	p := math.Min(hw, hh) * 0.04
	const perfs = 10
	left, right := f.center.X-hw, f.center.X+hw
	top, bottom := f.center.Y-hh, f.center.Y+hh
	stepX := hw * 2 / perfs
	stepY := hh * 2 / perfs

	b.MoveTo(left, top)
	for i := 0; i <= perfs; i++ {
		x := left + float64(i)*stepX
		if i%2 == 0 {
			b.LineTo(x, top-p)
			arc(b, x, top, p, -math.Pi/2, math.Pi/2, false)
		} else {
			b.LineTo(x, top+p)
			arc(b, x, top, p, math.Pi/2, -math.Pi/2, false)
		}
	}
	for i := 0; i <= perfs; i++ {
		y := top + float64(i)*stepY
		if i%2 == 0 {
			b.LineTo(right+p, y)
			arc(b, right, y, p, 0, math.Pi, false)
		} else {
			b.LineTo(right-p, y)
			arc(b, right, y, p, math.Pi, 0, false)
		}
	}
	for i := perfs; i >= 0; i-- {
		x := left + float64(i)*stepX
		if i%2 == 0 {
			b.LineTo(x, bottom+p)
			arc(b, x, bottom, p, math.Pi/2, -math.Pi/2, false)
		} else {
			b.LineTo(x, bottom-p)
			arc(b, x, bottom, p, -math.Pi/2, math.Pi/2, false)
		}
	}
	for i := perfs; i >= 0; i-- {
		y := top + float64(i)*stepY
		if i%2 == 0 {
			b.LineTo(left-p, y)
			arc(b, left, y, p, math.Pi, 0, false)
		} else {
			b.LineTo(left+p, y)
			arc(b, left, y, p, 0, math.Pi, false)
		}
	}
	b.ClosePath()
}

// buildTicket draws a stub with a torn bottom edge. The tear offsets come from
// a fixed hash of the tear index so repeated renders match.
func buildTicket(b PathBuilder, f frame) {
	w, h := f.extents(f.size)
	hw, hh := w*0.5, h*0.35
	tear := hh * 0.08
	const tears = 8
	left, right := f.center.X-hw, f.center.X+hw
	top, bottom := f.center.Y-hh, f.center.Y+hh

	b.MoveTo(left, top)
	b.LineTo(right, top)
	b.LineTo(right, bottom)
	for i := 0; i < tears; i++ {
		x := right - float64(i)*hw*2/tears
		b.LineTo(x, bottom+(tearJitter(i)-0.5)*tear)
	}
	b.LineTo(left, top)
	b.ClosePath()
}

// tearJitter returns a stable pseudo-random value in [0,1) for i.
func tearJitter(i int) float64 {
	v := math.Sin(float64(i+1)*12.9898) * 43758.5453
	return v - math.Floor(v)
}
