package zeus2

import (
	"math"

	"zeusemu/hw/screen"
)

// Interpolated parameters: depth, u, v.
const numParams = 3

type vertex struct {
	x, y float32
	p    [numParams]float32
}

type paramExtent struct {
	start float32 // value at the center of the first pixel
	dpdx  float32
}

// extent is the span of a polygon on one scanline, [startX, stopX).
type extent struct {
	startX, stopX int
	param         [numParams]paramExtent
}

// zclipIfLess clips a polygon against the plane p[0] = clipval, keeping the
// part where p[0] >= clipval. The result is appended to out. A convex
// polygon of n vertices yields at most n+1 vertices.
func zclipIfLess(in []vertex, out []vertex, clipval float32) []vertex {
	prevClipped := in[len(in)-1].p[0] < clipval
	for i, v := range in {
		clipped := v.p[0] < clipval

		// Entering or leaving the clipped region: add the intersection.
		if clipped != prevClipped {
			v1 := in[(i+len(in)-1)%len(in)]
			frac := (clipval - v1.p[0]) / (v.p[0] - v1.p[0])
			nv := vertex{
				x: v1.x + frac*(v.x-v1.x),
				y: v1.y + frac*(v.y-v1.y),
			}
			for k := range numParams {
				nv.p[k] = v1.p[k] + frac*(v.p[k]-v1.p[k])
			}
			out = append(out, nv)
		}
		if !clipped {
			out = append(out, v)
		}
		prevClipped = clipped
	}
	return out
}

// roundCoordinate rounds to the nearest integer, halves going down.
func roundCoordinate(v float32) int {
	f := math.Floor(float64(v))
	r := int(f)
	if float64(v)-f > 0.5 {
		r++
	}
	return r
}

// renderPolygon scan converts a convex polygon, calling span for each
// non-empty scanline within clip. Pixel centers are at +0.5; a pixel is
// covered when its center lies on or right of the left edge and left of
// the right edge.
func renderPolygon(clip screen.Rect, verts []vertex, span func(y int, e *extent)) {
	miny, maxy := verts[0].y, verts[0].y
	for _, v := range verts[1:] {
		miny = min(miny, v.y)
		maxy = max(maxy, v.y)
	}
	y0 := max(roundCoordinate(miny), clip.MinY)
	y1 := min(roundCoordinate(maxy), clip.MaxY+1)

	var e extent
	for y := y0; y < y1; y++ {
		fy := float32(y) + 0.5

		var (
			xl, xr float32
			pl, pr [numParams]float32
			found  int
		)
		for i := range verts {
			a, b := verts[i], verts[(i+1)%len(verts)]
			if a.y == b.y {
				continue
			}
			if a.y > b.y {
				a, b = b, a
			}
			if fy < a.y || fy >= b.y {
				continue
			}
			t := (fy - a.y) / (b.y - a.y)
			x := a.x + t*(b.x-a.x)
			var p [numParams]float32
			for k := range numParams {
				p[k] = a.p[k] + t*(b.p[k]-a.p[k])
			}
			if found == 0 || x < xl {
				xl, pl = x, p
			}
			if found == 0 || x > xr {
				xr, pr = x, p
			}
			found++
		}
		if found < 2 {
			continue
		}

		istart, istop := roundCoordinate(xl), roundCoordinate(xr)
		for k := range numParams {
			var dpdx float32
			if xr > xl {
				dpdx = (pr[k] - pl[k]) / (xr - xl)
			}
			e.param[k] = paramExtent{
				start: pl[k] + (float32(istart)+0.5-xl)*dpdx,
				dpdx:  dpdx,
			}
		}
		if istart < clip.MinX {
			for k := range numParams {
				e.param[k].start += float32(clip.MinX-istart) * e.param[k].dpdx
			}
			istart = clip.MinX
		}
		istop = min(istop, clip.MaxX+1)
		if istart >= istop {
			continue
		}
		e.startX, e.stopX = istart, istop
		span(y, &e)
	}
}
