package mask

import (
	"math"

	"snapframe/pkg/geometry"
)

// kappa is the cubic Bezier control distance for a quarter circle.
const kappa = 0.5522847498307936

// arc appends a circular arc, joining it to the current point with a line.
// Angles are in radians; clockwise in screen space unless ccw is set.
func arc(b PathBuilder, cx, cy, r, a1, a2 float64, ccw bool) {
	if ccw {
		for a2 > a1 {
			a2 -= 2 * math.Pi
		}
	} else {
		for a2 < a1 {
			a2 += 2 * math.Pi
		}
	}
	b.LineTo(cx+r*math.Cos(a1), cy+r*math.Sin(a1))
	if r <= 0 || a1 == a2 {
		return
	}

	segments := int(math.Ceil(math.Abs(a2-a1) / (math.Pi / 2)))
	step := (a2 - a1) / float64(segments)
	for i := 0; i < segments; i++ {
		s := a1 + float64(i)*step
		e := s + step
		k := 4.0 / 3.0 * math.Tan((e-s)/4)
		sx, sy := math.Cos(s), math.Sin(s)
		ex, ey := math.Cos(e), math.Sin(e)
		b.CubicTo(
			cx+r*(sx-k*sy), cy+r*(sy+k*sx),
			cx+r*(ex+k*ey), cy+r*(ey-k*ex),
			cx+r*ex, cy+r*ey,
		)
	}
}

// ellipse appends a closed axis-aligned ellipse.
func ellipse(b PathBuilder, cx, cy, rx, ry float64) {
	ox, oy := rx*kappa, ry*kappa
	b.MoveTo(cx+rx, cy)
	b.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	b.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	b.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	b.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	b.ClosePath()
}

// polygon appends a closed polygon through points.
func polygon(b PathBuilder, points []geometry.Point2D) {
	for i, p := range points {
		if i == 0 {
			b.MoveTo(p.X, p.Y)
		} else {
			b.LineTo(p.X, p.Y)
		}
	}
	b.ClosePath()
}

// roundedPolygon appends a closed polygon whose corners are replaced by
// quadratic curves of radius r, limited to a third of the shortest edge.
func roundedPolygon(b PathBuilder, points []geometry.Point2D, r float64) {
	n := len(points)
	if r <= 0 || n < 3 {
		polygon(b, points)
		return
	}
	r = math.Min(r, geometry.ShortestEdge(points)/3)

	for i, cur := range points {
		prev := points[(i-1+n)%n]
		next := points[(i+1)%n]
		in := unit(cur.Sub(prev))
		out := unit(next.Sub(cur))
		start := cur.Sub(in.Scale(r))
		end := cur.Add(out.Scale(r))
		if i == 0 {
			b.MoveTo(start.X, start.Y)
		} else {
			b.LineTo(start.X, start.Y)
		}
		b.QuadraticTo(cur.X, cur.Y, end.X, end.Y)
	}
	b.ClosePath()
}

func unit(v geometry.Point2D) geometry.Point2D {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return geometry.Point2D{}
	}
	return v.Scale(1 / l)
}
