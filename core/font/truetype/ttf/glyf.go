package ttf

import (
	"fmt"
	"math"

	"github.com/npillmayer/glyphr/core/font/truetype"
	"golang.org/x/image/font/sfnt"
)

// VertexType is the type of a drawing operation within a glyph outline.
type VertexType uint8

// Drawing operations for glyph outlines.
const (
	MoveTo  VertexType = iota + 1 // start a new contour at (X,Y)
	LineTo                        // straight line to (X,Y)
	QuadTo                        // quadratic Bézier curve to (X,Y) with control point (CX,CY)
	CubicTo                       // cubic Bézier curve to (X,Y) with control points (CX,CY) and (CX1,CY1)
)

func (vt VertexType) String() string {
	switch vt {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CubicTo:
		return "CubicTo"
	}
	return fmt.Sprintf("VertexType(%d)", vt)
}

// Vertex is a single drawing operation of a glyph outline, in design units.
// Contours start with a MoveTo and are implicitly closed.
type Vertex struct {
	Type     VertexType
	X, Y     int16
	CX, CY   int16
	CX1, CY1 int16
}

// maxCompositeDepth limits the nesting of composite glyphs.
const maxCompositeDepth = 16

// Flags of simple glyph points.
const (
	onCurvePoint = 0x01
	xShortVector = 0x02
	yShortVector = 0x04
	repeatFlag   = 0x08
	xIsSameOrPos = 0x10
	yIsSameOrPos = 0x20
)

// Flags of composite glyph components.
const (
	arg1And2AreWords   = 0x0001
	argsAreXYValues    = 0x0002
	weHaveAScale       = 0x0008
	moreComponents     = 0x0020
	weHaveAnXAndYScale = 0x0040
	weHaveATwoByTwo    = 0x0080
)

// locaEntry returns the offset of glyph g relative to the start of table 'glyf'.
func (f *Font) locaEntry(g int) uint32 {
	if f.locaFormat == 0 {
		return 2 * uint32(f.data.readU16(int(f.loca)+2*g))
	}
	return f.data.readU32(int(f.loca) + 4*g)
}

// glyfOffset returns the offset of a glyph's data, or -1 if the glyph has
// no outline data.
func (f *Font) glyfOffset(g GlyphIndex) int {
	if int(g) >= f.glyphCount || f.locaFormat >= 2 {
		return -1
	}
	g1 := int(f.glyf) + int(f.locaEntry(int(g)))
	g2 := int(f.glyf) + int(f.locaEntry(int(g)+1))
	if g1 == g2 {
		return -1
	}
	return g1
}

// GlyphBox returns the bounding box of a glyph, as stated in the glyph's header
// in table 'glyf'. It returns false if the glyph has no outline data.
func (f *Font) GlyphBox(g GlyphIndex) (truetype.BoundingBox, bool) {
	off := f.glyfOffset(g)
	if off < 0 {
		return truetype.BoundingBox{}, false
	}
	return truetype.BoundingBox{
		MinX: sfnt.Units(f.data.readS16(off + 2)),
		MinY: sfnt.Units(f.data.readS16(off + 4)),
		MaxX: sfnt.Units(f.data.readS16(off + 6)),
		MaxY: sfnt.Units(f.data.readS16(off + 8)),
	}, true
}

// GlyphShape returns the outline of a glyph as a sequence of drawing operations,
// in design units. Glyphs without outline data (e.g., the space character) have
// an empty outline and no error.
//
// Composite glyphs are resolved recursively. A composite glyph referencing itself,
// directly or indirectly, results in a FormatError. Components positioned by
// matching points are not supported (UnsupportedError).
func (f *Font) GlyphShape(g GlyphIndex) ([]Vertex, error) {
	return f.glyphShape(g, nil)
}

func (f *Font) glyphShape(g GlyphIndex, path []GlyphIndex) ([]Vertex, error) {
	for _, p := range path {
		if p == g {
			return nil, FormatError(fmt.Sprintf("composite glyph %d references itself", g))
		}
	}
	if len(path) > maxCompositeDepth {
		return nil, FormatError(fmt.Sprintf("composite glyph %d nested too deeply", path[0]))
	}
	off := f.glyfOffset(g)
	if off < 0 {
		return nil, nil
	}
	numberOfContours := int(f.data.readS16(off))
	if numberOfContours > 0 {
		return f.simpleGlyph(off, numberOfContours), nil
	} else if numberOfContours < 0 {
		return f.compositeGlyph(g, off, append(path, g))
	}
	return nil, nil
}

type glyphPoint struct {
	flags uint8
	x, y  int16
}

func (f *Font) simpleGlyph(off int, numberOfContours int) []Vertex {
	endPts := off + 10
	ins := int(f.data.readU16(endPts + 2*numberOfContours))
	p := endPts + 2*numberOfContours + 2 + ins
	n := 1 + int(f.data.readU16(endPts+2*numberOfContours-2))
	points := make([]glyphPoint, n)
	// flags, x-coordinates and y-coordinates are stored in three consecutive runs
	var flags, repeat uint8
	for i := range points {
		if repeat == 0 {
			flags = f.data.read8(p)
			p++
			if flags&repeatFlag != 0 {
				repeat = f.data.read8(p)
				p++
			}
		} else {
			repeat--
		}
		points[i].flags = flags
	}
	var x int16
	for i := range points {
		flags = points[i].flags
		if flags&xShortVector != 0 {
			dx := int16(f.data.read8(p))
			p++
			if flags&xIsSameOrPos != 0 {
				x += dx
			} else {
				x -= dx
			}
		} else if flags&xIsSameOrPos == 0 {
			x += f.data.readS16(p)
			p += 2
		}
		points[i].x = x
	}
	var y int16
	for i := range points {
		flags = points[i].flags
		if flags&yShortVector != 0 {
			dy := int16(f.data.read8(p))
			p++
			if flags&yIsSameOrPos != 0 {
				y += dy
			} else {
				y -= dy
			}
		} else if flags&yIsSameOrPos == 0 {
			y += f.data.readS16(p)
			p += 2
		}
		points[i].y = y
	}
	vertices := make([]Vertex, 0, n+2*numberOfContours)
	var c contourState
	nextMove, contour := 0, 0
	for i := 0; i < n; i++ {
		pt := points[i]
		if i == nextMove {
			if i != 0 {
				vertices = c.close(vertices)
			}
			c.startOff = pt.flags&onCurvePoint == 0
			if c.startOff {
				// contour starts with an off-curve point: find an on-curve start
				// point and remember the control point for wrap-around
				c.scx, c.scy = pt.x, pt.y
				switch {
				case i+1 >= n:
					c.sx, c.sy = pt.x, pt.y
				case points[i+1].flags&onCurvePoint == 0:
					c.sx = int16((int32(pt.x) + int32(points[i+1].x)) >> 1)
					c.sy = int16((int32(pt.y) + int32(points[i+1].y)) >> 1)
				default:
					c.sx, c.sy = points[i+1].x, points[i+1].y
					i++ // point i+1 is the start point
				}
			} else {
				c.sx, c.sy = pt.x, pt.y
			}
			vertices = append(vertices, Vertex{Type: MoveTo, X: c.sx, Y: c.sy})
			c.wasOff = false
			nextMove = 1 + int(f.data.readU16(endPts+2*contour))
			contour++
			continue
		}
		if pt.flags&onCurvePoint == 0 {
			if c.wasOff { // two off-curve points in a row: implied on-curve midpoint
				vertices = append(vertices, Vertex{Type: QuadTo,
					X: int16((int32(c.cx) + int32(pt.x)) >> 1), Y: int16((int32(c.cy) + int32(pt.y)) >> 1),
					CX: c.cx, CY: c.cy})
			}
			c.cx, c.cy = pt.x, pt.y
			c.wasOff = true
		} else {
			if c.wasOff {
				vertices = append(vertices, Vertex{Type: QuadTo, X: pt.x, Y: pt.y, CX: c.cx, CY: c.cy})
			} else {
				vertices = append(vertices, Vertex{Type: LineTo, X: pt.x, Y: pt.y})
			}
			c.wasOff = false
		}
	}
	return c.close(vertices)
}

// contourState tracks the start and the pending control point of the contour
// currently being decoded.
type contourState struct {
	wasOff, startOff bool
	sx, sy           int16 // start point
	scx, scy         int16 // control point preceding the start point
	cx, cy           int16 // pending control point
}

func (c contourState) close(vertices []Vertex) []Vertex {
	if c.startOff {
		if c.wasOff {
			vertices = append(vertices, Vertex{Type: QuadTo,
				X: int16((int32(c.cx) + int32(c.scx)) >> 1), Y: int16((int32(c.cy) + int32(c.scy)) >> 1),
				CX: c.cx, CY: c.cy})
		}
		return append(vertices, Vertex{Type: QuadTo, X: c.sx, Y: c.sy, CX: c.scx, CY: c.scy})
	}
	if c.wasOff {
		return append(vertices, Vertex{Type: QuadTo, X: c.sx, Y: c.sy, CX: c.cx, CY: c.cy})
	}
	return append(vertices, Vertex{Type: LineTo, X: c.sx, Y: c.sy})
}

func (f *Font) compositeGlyph(g GlyphIndex, off int, path []GlyphIndex) ([]Vertex, error) {
	var vertices []Vertex
	p := off + 10
	for more := true; more; {
		flags := f.data.readU16(p)
		component := GlyphIndex(f.data.readU16(p + 2))
		p += 4
		// affine transform (a b c d e f): x' = a·x + c·y + e, y' = b·x + d·y + f
		mtx := [6]float32{1, 0, 0, 1, 0, 0}
		if flags&argsAreXYValues == 0 {
			return nil, UnsupportedError(fmt.Sprintf("matching point anchoring in composite glyph %d", g))
		}
		if flags&arg1And2AreWords != 0 {
			mtx[4] = float32(f.data.readS16(p))
			mtx[5] = float32(f.data.readS16(p + 2))
			p += 4
		} else {
			mtx[4] = float32(int8(f.data.read8(p)))
			mtx[5] = float32(int8(f.data.read8(p + 1)))
			p += 2
		}
		switch {
		case flags&weHaveAScale != 0:
			mtx[0] = f2dot14(f.data.readS16(p))
			mtx[3] = mtx[0]
			p += 2
		case flags&weHaveAnXAndYScale != 0:
			mtx[0] = f2dot14(f.data.readS16(p))
			mtx[3] = f2dot14(f.data.readS16(p + 2))
			p += 4
		case flags&weHaveATwoByTwo != 0:
			mtx[0] = f2dot14(f.data.readS16(p))
			mtx[1] = f2dot14(f.data.readS16(p + 2))
			mtx[2] = f2dot14(f.data.readS16(p + 4))
			mtx[3] = f2dot14(f.data.readS16(p + 6))
			p += 8
		}
		// scale factors are the column norms of the 2×2 matrix
		ms := float32(math.Sqrt(float64(mtx[0]*mtx[0] + mtx[1]*mtx[1])))
		ns := float32(math.Sqrt(float64(mtx[2]*mtx[2] + mtx[3]*mtx[3])))
		sub, err := f.glyphShape(component, path)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("glyph %d: component %d with %d vertices, matrix %v", g, component, len(sub), mtx)
		for _, v := range sub {
			v.X, v.Y = transform(&mtx, ms, ns, v.X, v.Y)
			v.CX, v.CY = transform(&mtx, ms, ns, v.CX, v.CY)
			if v.Type == CubicTo {
				v.CX1, v.CY1 = transform(&mtx, ms, ns, v.CX1, v.CY1)
			}
			vertices = append(vertices, v)
		}
		more = flags&moreComponents != 0
	}
	return vertices, nil
}

func transform(mtx *[6]float32, ms, ns float32, x, y int16) (int16, int16) {
	fx, fy := float32(x), float32(y)
	return int16(ms * (mtx[0]*fx + mtx[2]*fy + mtx[4])),
		int16(ns * (mtx[1]*fx + mtx[3]*fy + mtx[5]))
}

// f2dot14 converts a fixed-point number with 14 fractional bits.
func f2dot14(v int16) float32 {
	return float32(v) / 16384
}
