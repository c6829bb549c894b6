package zeus2

import "zeusemu/emu/log"

// Pointer sub-registers, written through register 0x20.
const (
	ptrRenderBase = 0x04
	ptrTexBase    = 0x05
	ptrQuadSize   = 0x40
)

func (z *Zeus2) pointerWrite(which uint8, val uint32) {
	if z.Hooks.PointerWrite != nil {
		z.Hooks.PointerWrite(which, val)
	}

	switch which {
	case ptrRenderBase:
		z.renderBase = z.Bank1.Block(val << 16)
	case ptrTexBase:
		z.texBase = val % z.Bank0.Blocks()
	case ptrQuadSize:
		z.quadSize = 14
		if val&0xffffff == 0 {
			z.quadSize = 10
		}
	default:
		return
	}

	log.ModZeus.DebugZ("pointer write").
		Hex8("which", which).
		Hex32("val", val).
		End()
}
