package transform

import (
	"sync"

	"github.com/ericlevine/docrect/pixel"
)

// Warp resamples src into a freshly allocated width x height buffer. For each
// destination pixel center the transform projects back into source
// coordinates, which are sampled with bilinear interpolation per channel.
// Projections outside the source clamp to the nearest edge pixel, so the
// kernel never reads out of bounds.
//
// Rows are split across at most workers goroutines; pixels are independent,
// so any worker count produces identical output. workers <= 1 runs inline.
func Warp(src *pixel.Buffer, t *PerspectiveTransform, width, height, workers int) *pixel.Buffer {
	dst := pixel.New(width, height, src.Format)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		warpRows(src, dst, t, 0, height)
		return dst
	}

	var wg sync.WaitGroup
	chunk := (height + workers - 1) / workers
	for lo := 0; lo < height; lo += chunk {
		hi := lo + chunk
		if hi > height {
			hi = height
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			warpRows(src, dst, t, lo, hi)
		}(lo, hi)
	}
	wg.Wait()
	return dst
}

// warpRows fills destination rows [yLo, yHi).
func warpRows(src, dst *pixel.Buffer, t *PerspectiveTransform, yLo, yHi int) {
	ch := src.Format.Channels()
	maxX := float64(src.W - 1)
	maxY := float64(src.H - 1)
	points := make([]float64, 2*dst.W)

	for y := yLo; y < yHi; y++ {
		for x := 0; x < dst.W; x++ {
			points[2*x] = float64(x) + 0.5
			points[2*x+1] = float64(y) + 0.5
		}
		t.TransformPoints(points)

		row := dst.Pix[y*dst.Stride : y*dst.Stride+dst.W*ch]
		for x := 0; x < dst.W; x++ {
			// Projected pixel center back in the source's sample grid.
			u := points[2*x] - 0.5
			v := points[2*x+1] - 0.5
			// The negated comparisons also catch NaN from a projection
			// crossing the horizon line, clamping it to the edge.
			if !(u >= 0) {
				u = 0
			} else if u > maxX {
				u = maxX
			}
			if !(v >= 0) {
				v = 0
			} else if v > maxY {
				v = maxY
			}
			x0 := int(u)
			y0 := int(v)
			fx := u - float64(x0)
			fy := v - float64(y0)
			x1 := x0 + 1
			if x1 > src.W-1 {
				x1 = src.W - 1
			}
			y1 := y0 + 1
			if y1 > src.H-1 {
				y1 = src.H - 1
			}
			p00 := y0*src.Stride + x0*ch
			p10 := y0*src.Stride + x1*ch
			p01 := y1*src.Stride + x0*ch
			p11 := y1*src.Stride + x1*ch
			for c := 0; c < ch; c++ {
				top := float64(src.Pix[p00+c]) + fx*(float64(src.Pix[p10+c])-float64(src.Pix[p00+c]))
				bottom := float64(src.Pix[p01+c]) + fx*(float64(src.Pix[p11+c])-float64(src.Pix[p01+c]))
				row[x*ch+c] = uint8(top + fy*(bottom-top) + 0.5)
			}
		}
	}
}
