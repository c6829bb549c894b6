package zeus2

import (
	"zeusemu/emu/log"
)

const (
	nearClip      = 1.0 / 512.0 / 4.0
	projScale     = 512.0
	screenCenterX = 256.5
	screenCenterY = 200.5
	depthScale    = 65536.0 * 16.0
	edgeNudge     = 0.0005

	transColor = 0x100
)

// decodeQuad extracts the four vertices of a quad command. Coordinates are
// signed 16-bit halves; texture coordinates are 8-bit fields.
//
//	word  content
//	1     u0, v0
//	2     x1 | x0
//	3     y1 | y0
//	4     u1, v1, u2
//	5     v2, u3, v3
//	6     z1 | z0
//	7     z3 | z2
//	8     x3 | x2
//	9     y3 | y2
func decodeQuad(d []uint32) [4]vertex {
	lo := func(w uint32) float32 { return float32(int16(w)) }
	hi := func(w uint32) float32 { return float32(int16(w >> 16)) }
	b8 := func(w uint32, shift uint) float32 { return float32((w >> shift) & 0xff) }

	return [4]vertex{
		{x: lo(d[2]), y: lo(d[3]), p: [numParams]float32{lo(d[6]), b8(d[1], 2), b8(d[1], 18)}},
		{x: hi(d[2]), y: hi(d[3]), p: [numParams]float32{hi(d[6]), b8(d[4], 2), b8(d[4], 12)}},
		{x: lo(d[8]), y: lo(d[9]), p: [numParams]float32{lo(d[7]), b8(d[4], 22), b8(d[5], 2)}},
		{x: hi(d[8]), y: hi(d[9]), p: [numParams]float32{hi(d[7]), b8(d[5], 12), b8(d[5], 22)}},
	}
}

// drawQuad renders a quad command from a display list. The low half of
// texOffs is the texture mode, its high half a texture row offset.
func (z *Zeus2) drawQuad(data []uint32, texOffs uint32) {
	texMode := uint16(texOffs)
	if z.Hooks.FilterQuad != nil && !z.Hooks.FilterQuad(texMode) {
		return
	}

	verts := decodeQuad(data)
	m, pt := &z.matrix, &z.point
	for i := range verts {
		v := &verts[i]
		x, y, zz := v.x, v.y, v.p[0]

		v.x = x*m[0][0] + y*m[0][1] + zz*m[0][2] + pt[0]
		v.y = x*m[1][0] + y*m[1][1] + zz*m[1][2] + pt[1]
		v.p[0] = x*m[2][0] + y*m[2][1] + zz*m[2][2] + pt[2]
		v.p[0] += z.zbase
		v.p[2] += float32(texOffs >> 16)
		v.p[1] *= 256
		v.p[2] *= 256
	}

	var clipbuf [len(verts) + 4]vertex
	cv := zclipIfLess(verts[:], clipbuf[:0], nearClip)
	if len(cv) < 3 {
		return
	}

	maxx, maxy := float32(-1000), float32(-1000)
	for i := range cv {
		ooz := projScale / cv[i].p[0]
		cv[i].x = cv[i].x*ooz + screenCenterX
		cv[i].y = cv[i].y*ooz + screenCenterY
		cv[i].p[0] *= depthScale
		maxx = max(maxx, cv[i].x)
		maxy = max(maxy, cv[i].y)
	}
	// Keep the right and bottom edges from losing their last pixel.
	for i := range cv {
		if cv[i].x == maxx {
			cv[i].x += edgeNudge
		}
		if cv[i].y == maxy {
			cv[i].y += edgeNudge
		}
	}

	extra := polyExtra{
		texWidth:   z.textureWidth(texMode),
		transColor: transColor,
		texBase:    z.texBase,
		palBase:    z.Bank0.Block(z.regs[regW0Addr]),
	}

	log.ModRender.DebugZ("quad").
		Hex16("texmode", texMode).
		Int("verts", len(cv)).
		Int("texwidth", extra.texWidth).
		End()

	renderPolygon(z.clip, cv, func(y int, e *extent) {
		z.renderSpan(y, e, &extra)
	})
}

// textureWidth returns the width of the textures of the given mode. Unknown
// modes are reported once and keep the width of the previous quad.
func (z *Zeus2) textureWidth(texMode uint16) int {
	switch texMode & 0xfff {
	case 0x01d, 0x05d, 0x0dd, 0x11d, 0x15d, 0x85d, 0x95d, 0xc1d, 0xc5d:
		z.texWidth = 256
	case 0x059, 0x0d9, 0x119, 0x159:
		z.texWidth = 128
	case 0x055, 0x155:
		z.texWidth = 64
	default:
		if !z.unknownTexModes.TestAndSet(uint(texMode)) {
			log.ModRender.WarnZ("unknown texture format").
				Hex16("format", texMode).
				End()
		}
	}
	return z.texWidth
}
