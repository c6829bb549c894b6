package zeus2

import (
	"image"
	"image/color"

	"zeusemu/emu/log"
	"zeusemu/hw/waveram"
)

func rgb(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

// UpdateScreen renders the visible area of the displayed frame buffer (at
// register 0x38) into dst, whose origin maps to the top-left visible pixel.
// In double-scan mode, odd lines come from the right half of the row.
func (z *Zeus2) UpdateScreen(dst *image.RGBA) {
	vis := z.screen.VisibleArea()
	base := z.FrameBase()
	b := dst.Bounds()

	for y := vis.MinY; y <= vis.MaxY; y++ {
		dy := b.Min.Y + y - vis.MinY
		if dy >= b.Max.Y {
			break
		}
		bufY := y >> z.yScale
		offsX := 0
		if z.yScale != 0 && y&1 != 0 {
			offsX = 0x200
		}
		for x := vis.MinX; x <= vis.MaxX; x++ {
			dx := b.Min.X + x - vis.MinX
			if dx >= b.Max.X {
				break
			}
			dst.SetRGBA(dx, dy, rgb(z.Bank1.Pixel(base, bufY, x-vis.MinX+offsX)))
		}
	}
}

// RenderWaveView renders bank 0 as 8-bit grey texels of the given width,
// starting at row yoffs.
func (z *Zeus2) RenderWaveView(dst *image.RGBA, yoffs, texelWidth int) {
	base := z.Bank0.Block(uint32(max(yoffs, 0)) << 16)
	b := dst.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			t := z.Bank0.Texel(base, y, x, texelWidth)
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{R: t, G: t, B: t, A: 0xff})
		}
	}
}

// AdjustZBase changes the depth bias added to all vertices.
func (z *Zeus2) AdjustZBase(delta float32) {
	z.zbase += delta
	log.ModZeus.InfoZ("zbase").
		Float("zbase", float64(z.zbase)).
		End()
}

func (z *Zeus2) ZBase() float32 { return z.zbase }

// FrameBase returns the bank 1 block of the displayed frame.
func (z *Zeus2) FrameBase() uint32 {
	return waveram.ExpandedBlock(z.regs[regDisplay]>>z.yScale, waveram.Bank1Width, waveram.Bank1Height)
}
