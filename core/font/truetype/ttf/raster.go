package ttf

import (
	"math"
	"sort"
)

// Fixed-point arithmetic for x-intercepts of active edges.
const (
	fixShift = 10
	fix      = 1 << fixShift
	fixMask  = fix - 1
)

// edge is a line segment of a flattened contour, in bitmap space with y
// multiplied by the number of vertical sub-samples. y0 <= y1 always holds;
// invert records that the segment originally pointed the other way.
type edge struct {
	x0, y0, x1, y1 float32
	invert         bool
}

// activeEdge is an edge crossing the current scanline.
type activeEdge struct {
	x, dx     int     // x-intercept and x-increment per sub-scanline, fixed-point
	ey        float32 // the edge retires at this y
	direction int     // +1 or -1 for the non-zero winding rule, 0 = retired
	next      int     // index of next active edge, -1 terminates the list
}

// activeList is a singly-linked list of active edges, sorted by x.
// Links are indices into an arena of edge records.
type activeList struct {
	arena []activeEdge
	head  int
}

// Rasterize renders an outline into a bitmap.
//
// Outline coordinates are transformed by (x·scaleX + shiftX, y·scaleY + shiftY) and
// then offset by (-xOff, -yOff), i.e. (xOff,yOff) is the position of the bitmap's top
// left corner in the transformed coordinate space. With invert set, y-coordinates
// are flipped, which is what is needed to convert from font coordinates (y upwards)
// to bitmap coordinates (y downwards). Curves are flattened to within flatness pixels.
//
// Coverage is accumulated into the alpha channel, the color channels are set to
// white. The non-zero winding rule determines what is inside an outline.
func Rasterize(bitmap *GlyphBitmap, flatness float32, vertices []Vertex,
	scaleX, scaleY, shiftX, shiftY float32, xOff, yOff int, invert bool) {
	//
	if bitmap.Empty() {
		return
	}
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		return
	}
	pts, contours := flattenCurves(vertices, flatness/scale)
	if len(contours) == 0 {
		return
	}
	rasterizePolylines(bitmap, pts, contours, scaleX, scaleY, shiftX, shiftY, xOff, yOff, invert)
}

func rasterizePolylines(bitmap *GlyphBitmap, pts []point, contours []int,
	scaleX, scaleY, shiftX, shiftY float32, xOff, yOff int, invert bool) {
	//
	yScale := scaleY
	if invert {
		yScale = -scaleY
	}
	// the number of sub-samples must divide 255, otherwise full coverage is not reached
	vsub := 5
	if bitmap.Height < 8 {
		vsub = 15
	}
	fvsub := float32(vsub)
	edges := make([]edge, 0, len(pts)+1)
	m := 0
	for _, cnt := range contours {
		p := pts[m : m+cnt]
		m += cnt
		for j, k := cnt-1, 0; k < cnt; j, k = k, k+1 {
			if p[j].y == p[k].y {
				continue // horizontal edges do not contribute
			}
			e := edge{}
			a, b := k, j
			if (invert && p[j].y > p[k].y) || (!invert && p[j].y < p[k].y) {
				e.invert = true
				a, b = j, k
			}
			e.x0 = p[a].x*scaleX + shiftX
			e.y0 = (p[a].y*yScale + shiftY) * fvsub
			e.x1 = p[b].x*scaleX + shiftX
			e.y1 = (p[b].y*yScale + shiftY) * fvsub
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].y0 < edges[j].y0
	})
	// sentinel, starting below the last sub-scanline
	edges = append(edges, edge{y0: float32((yOff+bitmap.Height)*vsub + 1)})
	rasterizeSortedEdges(bitmap, edges, vsub, xOff, yOff)
}

func rasterizeSortedEdges(bitmap *GlyphBitmap, edges []edge, vsub int, offX, offY int) {
	maxWeight := 255 / vsub // weight per sub-scanline
	width := bitmap.Width
	scanline := make([]byte, 4*width)
	active := activeList{arena: make([]activeEdge, 0, len(edges)), head: -1}
	y := offY * vsub
	next := 0
	for row := 0; row < bitmap.Height; row++ {
		for i := range scanline {
			scanline[i] = 0
		}
		for s := 0; s < vsub; s++ {
			scanY := float32(y) + 0.5 // center of the sub-scanline
			active.advance(scanY)
			active.sort()
			// insert edges starting before the center of this sub-scanline,
			// omitting ones which also end before it
			for edges[next].y0 <= scanY {
				if edges[next].y1 > scanY {
					active.insert(newActiveEdge(edges[next], offX, scanY))
				}
				next++
			}
			if active.head >= 0 {
				active.fill(scanline, width, maxWeight)
			}
			y++
		}
		dst := bitmap.Pix[row*4*width : (row+1)*4*width]
		for i := 0; i < width; i++ {
			if scanline[i*4+3] > 0 {
				copy(dst[i*4:i*4+4], scanline[i*4:i*4+4])
			}
		}
	}
}

func newActiveEdge(e edge, offX int, start float32) activeEdge {
	dxdy := (e.x1 - e.x0) / (e.y1 - e.y0)
	z := activeEdge{ey: e.y1, direction: -1, next: -1}
	// round dx down to avoid going too far
	if dxdy < 0 {
		z.dx = -int(math.Floor(float64(fix * -dxdy)))
	} else {
		z.dx = int(math.Floor(float64(fix * dxdy)))
	}
	z.x = int(math.Floor(float64(fix*(e.x0+dxdy*(start-e.y0))))) - offX*fix
	if e.invert {
		z.direction = 1
	}
	return z
}

// advance retires edges ending before scanY and steps all others to the
// current sub-scanline.
func (al *activeList) advance(scanY float32) {
	prev := -1
	for i := al.head; i >= 0; {
		e := &al.arena[i]
		next := e.next
		if e.ey <= scanY {
			if prev >= 0 {
				al.arena[prev].next = next
			} else {
				al.head = next
			}
			e.direction = 0
		} else {
			e.x += e.dx
			prev = i
		}
		i = next
	}
}

// sort re-establishes x-order by swapping adjacent edges. The list is usually
// short and almost sorted.
func (al *activeList) sort() {
	for changed := true; changed; {
		changed = false
		prev := -1
		for i := al.head; i >= 0 && al.arena[i].next >= 0; i = al.arena[i].next {
			nx := al.arena[i].next
			if al.arena[i].x > al.arena[nx].x {
				if prev < 0 {
					al.head = nx
				} else {
					al.arena[prev].next = nx
				}
				al.arena[i].next = al.arena[nx].next
				al.arena[nx].next = i
				changed = true
			}
			prev = i
		}
	}
}

// insert adds an edge, keeping the list sorted by x.
func (al *activeList) insert(z activeEdge) {
	al.arena = append(al.arena, z)
	zi := len(al.arena) - 1
	if al.head < 0 || z.x < al.arena[al.head].x {
		al.arena[zi].next = al.head
		al.head = zi
		return
	}
	p := al.head
	for al.arena[p].next >= 0 && al.arena[al.arena[p].next].x < z.x {
		p = al.arena[p].next
	}
	al.arena[zi].next = al.arena[p].next
	al.arena[p].next = zi
}

// fill adds the coverage of the spans between active edges to a scanline,
// following the non-zero winding rule. Spans extending beyond the scanline are
// clipped.
func (al *activeList) fill(scanline []byte, length int, maxWeight int) {
	x0, w := 0, 0
	for k := al.head; k >= 0; k = al.arena[k].next {
		e := &al.arena[k]
		if w == 0 {
			x0 = e.x
			w += e.direction
			continue
		}
		x1 := e.x
		w += e.direction
		if w != 0 {
			continue
		}
		i, j := x0>>fixShift, x1>>fixShift
		if i >= length || j < 0 {
			continue
		}
		if i == j { // x0 and x1 within the same pixel
			addCoverage(scanline, i, ((x1-x0)*maxWeight)>>fixShift)
			continue
		}
		if i >= 0 {
			addCoverage(scanline, i, ((fix-(x0&fixMask))*maxWeight)>>fixShift)
		} else {
			i = -1
		}
		if j < length {
			addCoverage(scanline, j, ((x1&fixMask)*maxWeight)>>fixShift)
		} else {
			j = length
		}
		for i++; i < j; i++ {
			addCoverage(scanline, i, maxWeight)
		}
	}
}

func addCoverage(scanline []byte, index int, coverage int) {
	if index < 0 || index >= len(scanline)/4 {
		return
	}
	off := index * 4
	a := int(scanline[off+3]) + coverage
	if a > 255 {
		a = 255
	} else if a < 0 {
		a = 0
	}
	scanline[off] = 255
	scanline[off+1] = 255
	scanline[off+2] = 255
	scanline[off+3] = byte(a)
}
