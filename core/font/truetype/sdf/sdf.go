/*
Package sdf computes signed distance fields from rasterized glyphs.

A distance field stores, for every pixel, the distance to the nearest outline
instead of the coverage. Text rendered from a distance field stays crisp when
scaled up, which is why it is popular for GPU text rendering. The usual workflow
is to rasterize glyphs (or a whole run of text) at a multiple of the target size
and then let CreateDistanceField scale it down:

	big, _, err := f.CodePointBitmap(ctx, 'A', ttf.Scale(8*scale), nil)
	…
	field, err := sdf.CreateDistanceField(big, 8, 16*8)

The transform is a brute-force search and costs O(spread²) per destination pixel.
Rows are distributed over GOMAXPROCS goroutines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sdf

import (
	"math"
	"runtime"
	"sync"

	"github.com/npillmayer/glyphr/core"
	"github.com/npillmayer/glyphr/core/font/truetype/ttf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'glyphr.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphr.fonts")
}

// channels holds the four color channels of a bitmap, each sample shifted
// from [0…1] to [-0.5…0.5]. Positive samples are inside a shape.
type channels struct {
	width, height int
	ch            [4][]float32
}

// CreateDistanceField transforms src into a distance field, scaled down by factor
// downscale. Every channel is transformed on its own.
//
// spread is the distance (in pixels of src) at which the field clamps: pixels
// deeper inside a shape than spread get 255, pixels farther outside get 0. The
// outline itself is at about 127.
//
// If downscale is less than 1 or spread is not positive, an error with code
// core.EINVALID is returned.
func CreateDistanceField(src *ttf.GlyphBitmap, downscale int, spread float32) (*ttf.GlyphBitmap, error) {
	if downscale < 1 {
		return nil, core.Error(core.EINVALID, "distance field downscale must be at least 1, is %d", downscale)
	}
	if spread <= 0 || math.IsNaN(float64(spread)) {
		return nil, core.Error(core.EINVALID, "distance field spread must be positive, is %g", spread)
	}
	if src.Empty() {
		return ttf.NewGlyphBitmap(0, 0), nil
	}
	dst := ttf.NewGlyphBitmap(src.Width/downscale, src.Height/downscale)
	tracer().Debugf("distance field %d×%d → %d×%d, spread %.1f", src.Width, src.Height,
		dst.Width, dst.Height, spread)
	chans := split(src)
	forEachRow(dst.Height, func(y int) {
		for x := 0; x < dst.Width; x++ {
			offset := (y*dst.Width + x) * 4
			for c := 0; c < 4; c++ {
				d := chans.signedDistance(c, x*downscale, y*downscale, spread)
				dst.Pix[offset+c] = quantize((d + spread) / (2 * spread))
			}
		}
	})
	return dst, nil
}

// split separates the channels of a bitmap, row by row in parallel.
func split(src *ttf.GlyphBitmap) *channels {
	chans := &channels{width: src.Width, height: src.Height}
	for c := range chans.ch {
		chans.ch[c] = make([]float32, src.Width*src.Height)
	}
	forEachRow(src.Height, func(y int) {
		for x := 0; x < src.Width; x++ {
			i := y*src.Width + x
			for c := 0; c < 4; c++ {
				chans.ch[c][i] = float32(src.Pix[i*4+c])/255 - 0.5
			}
		}
	})
	return chans
}

// signedDistance searches a window of half-width spread around (cx,cy) for the
// nearest sample of opposite sign. The result is positive for centers inside
// a shape and clamped to ±spread.
func (chans *channels) signedDistance(c int, cx, cy int, spread float32) float32 {
	w, h := chans.width, chans.height
	samples := chans.ch[c]
	center := samples[cy*w+cx]
	r := int(spread)
	minX, maxX := max(0, cx-r), min(w-1, cx+r)
	minY, maxY := max(0, cy-r), min(h-1, cy+r)
	distSq := spread * spread
	for y := minY; y <= maxY; y++ {
		row := samples[y*w : (y+1)*w]
		for x := minX; x <= maxX; x++ {
			if center*row[x] >= 0 {
				continue
			}
			dx, dy := float32(x-cx), float32(y-cy)
			if d := dx*dx + dy*dy; d < distSq {
				distSq = d
			}
		}
	}
	dist := float32(math.Sqrt(float64(distSq)))
	if center > 0 {
		return dist
	}
	return -dist
}

// forEachRow calls fn for every row in [0…height), distributing rows over
// at most GOMAXPROCS goroutines. Every row is handled by exactly one goroutine.
func forEachRow(height int, fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		for y := 0; y < height; y++ {
			fn(y)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for y := w; y < height; y += workers {
				fn(y)
			}
		}(w)
	}
	wg.Wait()
}

func quantize(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255)
}
