package geometry

import "math"

// RegularPolygon returns n vertices evenly spaced on a circle of radius r,
// starting at angle start (radians) and proceeding clockwise in screen space.
func RegularPolygon(center Point2D, r float64, n int, start float64) []Point2D {
	points := make([]Point2D, n)
	for i := 0; i < n; i++ {
		angle := start + float64(i)*2*math.Pi/float64(n)
		points[i] = Point2D{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		}
	}
	return points
}

// StarPolygon returns 2*spikes vertices alternating between the outer and
// inner radius, with the first outer point straight up from center.
func StarPolygon(center Point2D, outer, inner float64, spikes int) []Point2D {
	n := spikes * 2
	points := make([]Point2D, n)
	for i := 0; i < n; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/float64(spikes) - math.Pi/2
		points[i] = Point2D{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		}
	}
	return points
}

// ShortestEdge returns the length of the shortest edge of a closed polygon.
func ShortestEdge(polygon []Point2D) float64 {
	if len(polygon) < 2 {
		return 0
	}
	shortest := math.Inf(1)
	for i, p := range polygon {
		next := polygon[(i+1)%len(polygon)]
		if d := p.Distance(next); d < shortest {
			shortest = d
		}
	}
	return shortest
}

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(p, a, b Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.Distance(Point2D{X: a.X + t*dx, Y: a.Y + t*dy})
}

// Clamp limits v to the closed interval [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
