package zeus2

import (
	"fmt"

	"zeusemu/emu/log"
)

// Display list commands.
const (
	mdlTexOffsGrid      = 0x21
	mdlTexOffsCrusnexo  = 0x22
	mdlSync             = 0x31
	mdlRegWriteGrid     = 0x35
	mdlRegWriteCrusnexo = 0x36
	mdlQuad             = 0x38

	// Sub-selector of the texture offset command.
	texOffsSelect = 0x9b

	// Longer display lists can only come from a corrupted command stream.
	maxModelCount = 0x1000
)

// FatalError reports a condition after which emulation cannot continue.
// The chip raises it as a panic from within Write.
type FatalError struct {
	Reason string
	Base   uint32
	Count  uint16
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("zeus2: %s (model @%08X, count %04X)", e.Reason, e.Base, e.Count)
}

// drawModel walks the display list at the bank 0 expanded address base.
// The list is made of count+1 records of two words each.
func (z *Zeus2) drawModel(base uint32, count uint16) {
	log.ModModel.DebugZ("model").
		Hex32("base", base).
		Hex16("count", count).
		End()

	if count > maxModelCount {
		panic(&FatalError{Reason: "extreme display list count", Base: base, Count: count})
	}

	var buf [32]uint32
	n := 0
	texOffs := uint32(0)
	quadSize := z.quadSize

	// Chained lists are not followed: base is only read once.
	for base != 0 {
		blk := z.Bank0.Block(base)
		base = 0

		for off := uint32(0); off <= uint32(count); off++ {
			buf[n] = z.Bank0.Word(blk+off, 0)
			buf[n+1] = z.Bank0.Word(blk+off, 1)
			n += 2

			cmd := uint8(buf[0] >> 24)
			needed := 2
			if cmd == mdlQuad {
				needed = quadSize
			}
			if n < needed {
				continue
			}

			z.logModelCommand(buf[:n])

			switch cmd {
			case mdlTexOffsGrid, mdlTexOffsCrusnexo:
				if uint8(buf[0]>>16) == texOffsSelect {
					texOffs = buf[1]
				}
			case mdlSync:
			case mdlRegWriteGrid, mdlRegWriteCrusnexo:
				// A FIFO write would reenter the command being run.
				if reg := uint8(buf[0]>>16) & 0x7f; reg != regFifo {
					z.Write(reg, buf[1])
				} else {
					log.ModModel.DebugZ("FIFO write from display list ignored").
						Hex32("val", buf[1]).
						End()
				}
			case mdlQuad:
				z.drawQuad(buf[:n], texOffs)
			default:
				if quadSize == 10 {
					log.ModModel.InfoZ("correcting quad size").
						Hex32("w0", buf[0]).
						End()
					quadSize = 14
				}
			}
			n = 0
		}
	}
}

func (z *Zeus2) logModelCommand(data []uint32) {
	if !z.logFifo {
		return
	}
	log.ModModel.DebugZ("model command").
		Hex8("op", uint8(data[0]>>24)).
		String("words", fmtWords(data)).
		End()
}
