package ttf

import "math"

// maxSubdivision caps the recursion of curve flattening; 2^16 segments on one
// curve are more than enough.
const maxSubdivision = 16

type point struct {
	x, y float32
}

// polyline collects the points of flattened contours. With pts == nil only the
// number of points is counted.
type polyline struct {
	pts []point
	n   int
}

func (pl *polyline) add(x, y float32) {
	if pl.pts != nil {
		pl.pts = append(pl.pts, point{x, y})
	}
	pl.n++
}

// tessellateQuad flattens a quadratic Bézier curve from (x0,y0) to (x2,y2) with
// control point (x1,y1). The start point is not emitted.
func (pl *polyline) tessellateQuad(x0, y0, x1, y1, x2, y2, flatnessSquared float32, n int) {
	// midpoint of the curve versus midpoint of the chord
	mx := (x0 + 2*x1 + x2) / 4
	my := (y0 + 2*y1 + y2) / 4
	dx := (x0+x2)/2 - mx
	dy := (y0+y2)/2 - my
	if n > maxSubdivision {
		return
	}
	if dx*dx+dy*dy > flatnessSquared {
		pl.tessellateQuad(x0, y0, (x0+x1)/2, (y0+y1)/2, mx, my, flatnessSquared, n+1)
		pl.tessellateQuad(mx, my, (x1+x2)/2, (y1+y2)/2, x2, y2, flatnessSquared, n+1)
		return
	}
	pl.add(x2, y2)
}

// tessellateCubic flattens a cubic Bézier curve from (x0,y0) to (x3,y3). Flatness
// is estimated by comparing the length of the control polygon to the chord.
func (pl *polyline) tessellateCubic(x0, y0, x1, y1, x2, y2, x3, y3, flatnessSquared float32, n int) {
	longlen := hypot(x1-x0, y1-y0) + hypot(x2-x1, y2-y1) + hypot(x3-x2, y3-y2)
	shortlen := hypot(x3-x0, y3-y0)
	if n > maxSubdivision {
		return
	}
	if longlen*longlen-shortlen*shortlen > flatnessSquared {
		x01, y01 := (x0+x1)/2, (y0+y1)/2
		x12, y12 := (x1+x2)/2, (y1+y2)/2
		x23, y23 := (x2+x3)/2, (y2+y3)/2
		xa, ya := (x01+x12)/2, (y01+y12)/2
		xb, yb := (x12+x23)/2, (y12+y23)/2
		mx, my := (xa+xb)/2, (ya+yb)/2
		pl.tessellateCubic(x0, y0, x01, y01, xa, ya, mx, my, flatnessSquared, n+1)
		pl.tessellateCubic(mx, my, xb, yb, x23, y23, x3, y3, flatnessSquared, n+1)
		return
	}
	pl.add(x3, y3)
}

func hypot(dx, dy float32) float32 {
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// flattenCurves converts an outline into polylines, one per contour, within a
// tolerance given in design units. It returns the points of all contours
// and the number of points of each contour.
//
// The outline is walked twice: first counting points, then collecting them into
// buffers of the right size.
func flattenCurves(vertices []Vertex, flatness float32) ([]point, []int) {
	flatnessSquared := flatness * flatness
	ncontours := 0
	for _, v := range vertices {
		if v.Type == MoveTo {
			ncontours++
		}
	}
	if ncontours == 0 {
		return nil, nil
	}
	contours := make([]int, ncontours)
	var pl polyline
	for pass := 0; pass < 2; pass++ {
		if pass == 1 {
			pl.pts = make([]point, 0, pl.n)
		}
		pl.n = 0
		var x, y float32
		start, n := 0, -1
		for _, v := range vertices {
			if n < 0 && v.Type != MoveTo {
				continue // drawing operations before the first contour
			}
			switch v.Type {
			case MoveTo:
				if n >= 0 {
					contours[n] = pl.n - start
				}
				n++
				start = pl.n
				x, y = float32(v.X), float32(v.Y)
				pl.add(x, y)
			case LineTo:
				x, y = float32(v.X), float32(v.Y)
				pl.add(x, y)
			case QuadTo:
				pl.tessellateQuad(x, y, float32(v.CX), float32(v.CY), float32(v.X), float32(v.Y),
					flatnessSquared, 0)
				x, y = float32(v.X), float32(v.Y)
			case CubicTo:
				pl.tessellateCubic(x, y, float32(v.CX), float32(v.CY), float32(v.CX1), float32(v.CY1),
					float32(v.X), float32(v.Y), flatnessSquared, 0)
				x, y = float32(v.X), float32(v.Y)
			}
		}
		if n >= 0 {
			contours[n] = pl.n - start
		}
	}
	return pl.pts, contours
}
