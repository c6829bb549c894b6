package zeus2

import "math"

// polyExtra is the state a primitive captures when dispatched.
type polyExtra struct {
	texWidth   int
	transColor uint16 // never matches an 8-bit texel
	texBase    uint32 // bank 0 block
	palBase    uint32 // bank 0 block
	zOffset    int32
}

// satInt32 converts f to int32, saturating out of range values.
func satInt32(f float32) int32 {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case f >= 1<<31:
		return 1<<31 - 1
	case f < -(1 << 31):
		return -1 << 31
	}
	return int32(f)
}

// renderSpan draws one span of a textured, depth tested polygon. Parameters
// are stepped in 16.16 (depth) and 24.8 (u, v) fixed point.
func (z *Zeus2) renderSpan(y int, e *extent, ex *polyExtra) {
	curz, dzdx := satInt32(e.param[0].start), satInt32(e.param[0].dpdx)
	curu, dudx := satInt32(e.param[1].start), satInt32(e.param[1].dpdx)
	curv, dvdx := satInt32(e.param[2].start), satInt32(e.param[2].dpdx)

	fb := z.Bank1
	tex := z.Bank0
	for x := e.startX; x < e.stopX; x++ {
		depth := min(curz>>16+ex.zOffset, maxDepth)
		if depth >= 0 && depth <= int32(fb.Depth(z.renderBase, y, x)) {
			u0, v0 := int(curu>>8), int(curv>>8)
			t0 := tex.Texel(ex.texBase, v0, u0, ex.texWidth)
			if uint16(t0) != ex.transColor {
				t1 := tex.Texel(ex.texBase, v0, u0+1, ex.texWidth)
				t2 := tex.Texel(ex.texBase, v0+1, u0, ex.texWidth)
				t3 := tex.Texel(ex.texBase, v0+1, u0+1, ex.texWidth)
				c0 := expand555(tex.Read16(ex.palBase, uint32(t0)))
				c1 := expand555(tex.Read16(ex.palBase, uint32(t1)))
				c2 := expand555(tex.Read16(ex.palBase, uint32(t2)))
				c3 := expand555(tex.Read16(ex.palBase, uint32(t3)))

				fb.SetPixel(z.renderBase, y, x, bilinearFilter(c0, c1, c2, c3, uint8(curu), uint8(curv)))
				fb.SetDepth(z.renderBase, y, x, uint16(depth))
			}
		}
		curz += dzdx
		curu += dudx
		curv += dvdx
	}
}

// expand555 converts a 5/5/5 color to 8/8/8.
func expand555(c uint16) uint32 {
	col := uint32(c)
	return (col&0x7c00)<<9 | (col&0x3e0)<<6 | (col&0x1f)<<3
}

// bilinearFilter blends four colors by the fractions u and v (0-255), c01
// being right of c00 and c10 below it. The red/blue and alpha/green byte
// pairs are blended in parallel.
func bilinearFilter(c00, c01, c10, c11 uint32, u, v uint8) uint32 {
	const lanes = 0x00ff00ff
	uu, vv := uint32(u), uint32(v)

	rb0 := c00&lanes + ((c01&lanes-c00&lanes)*uu)>>8
	rb1 := c10&lanes + ((c11&lanes-c10&lanes)*uu)>>8

	c00, c01, c10, c11 = c00>>8, c01>>8, c10>>8, c11>>8
	ag0 := c00&lanes + ((c01&lanes-c00&lanes)*uu)>>8
	ag1 := c10&lanes + ((c11&lanes-c10&lanes)*uu)>>8

	rb0 = rb0&lanes + ((rb1&lanes-rb0&lanes)*vv)>>8
	ag0 = ag0&lanes + ((ag1&lanes-ag0&lanes)*vv)>>8
	return (ag0<<8)&0xff00ff00 | rb0&lanes
}
