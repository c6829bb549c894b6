package zeus2

import (
	"zeusemu/emu/log"
)

// FIFO commands, by top byte of the first word.
const (
	cmdRegWrite       = 0x05
	cmdMatrixCrusnexo = 0x07
	cmdMatrixGrid     = 0x08
	cmdPointGrid      = 0x15
	cmdPointCrusnexo  = 0x16
	cmdClear          = 0x1c
	cmdModelGrid      = 0x23
	cmdModelCrusnexo  = 0x24
	cmdSyncGrid       = 0x31
	cmdSyncCrusnexo   = 0x32
	cmdQuad           = 0x38
	cmdNop            = 0x40

	// Harmless word sent between commands.
	fifoFiller = 0x000002c0

	maxDepth = 0x7fff
)

func (z *Zeus2) fifoPush(w uint32) {
	if z.fifoWords == len(z.fifo) {
		log.ModFifo.WarnZ("FIFO overflow, discarding").
			Hex32("w0", z.fifo[0]).
			Int("words", z.fifoWords).
			End()
		z.fifoWords = 0
	}
	z.fifo[z.fifoWords] = w
	z.fifoWords++
	if z.processFifo(z.fifo[:z.fifoWords]) {
		z.fifoWords = 0
	}
}

// processFifo executes the command in data, if complete. It reports whether
// the command was consumed.
func (z *Zeus2) processFifo(data []uint32) bool {
	n := len(data)
	op := uint8(data[0] >> 24)

	switch op {
	case cmdRegWrite:
		if n < 2 {
			return false
		}
		z.logFifoCommand(data, "reg32")
		if reg := uint8(data[0]>>16) & 0x7f; reg != regFifo {
			z.Write(reg, data[1])
		}

	case cmdMatrixGrid, cmdMatrixCrusnexo:
		offs := 0
		if op == cmdMatrixGrid {
			if n < 14 {
				return false
			}
			offs = 1
		}
		if n < 13 {
			return false
		}
		for i := range 3 {
			for j := range 3 {
				z.matrix[i][j] = FPToFloat(data[offs+1+i*3+j])
			}
		}
		for i := range 3 {
			z.point[i] = FPToFloat(data[offs+10+i])
		}
		z.logFifoCommand(data, "matrix")
		if z.logFifo {
			log.ModFifo.DebugZ("transform").
				String("matrix", fmtMatrix(z.matrix)).
				String("point", fmtVec(z.point)).
				End()
		}

	case cmdPointGrid, cmdPointCrusnexo:
		if n < 4 {
			return false
		}
		for i := range 3 {
			z.point[i] = FPToFloat(data[1+i])
		}
		z.logFifoCommand(data, "point")

	case cmdClear:
		if n < 4 {
			return false
		}
		z.logFifoCommand(data, "unknown control + clear")
		if z.logFifo {
			for i := range 3 {
				z.point2[i] = FPToFloat(data[1+i])
			}
		}
		z.clearDepth()

	case cmdModelGrid, cmdModelCrusnexo:
		if n < 2 {
			return false
		}
		z.logFifoCommand(data, "model")
		z.drawModel(data[1], uint16(data[0]))

	case cmdSyncGrid, cmdSyncCrusnexo:
		z.logFifoCommand(data, "sync")
		z.quadSize = 10

	case cmdQuad:
		if n < 12 {
			return false
		}
		z.logFifoCommand(data, "direct quad")

	case cmdNop:
		z.logFifoCommand(data, "nop")

	default:
		if data[0] != fifoFiller {
			log.ModFifo.WarnZ("unknown command").
				Hex32("w0", data[0]).
				End()
			z.logFifoCommand(data, "unknown")
		}
	}

	if z.Hooks.FifoCommand != nil {
		z.Hooks.FifoCommand(data)
	}
	return true
}

// clearDepth fills the clip rectangle of the render target with black at
// the farthest depth.
func (z *Zeus2) clearDepth() {
	for y := z.clip.MinY; y <= z.clip.MaxY; y++ {
		for x := z.clip.MinX; x <= z.clip.MaxX; x++ {
			z.Bank1.SetPixel(z.renderBase, y, x, 0)
			z.Bank1.SetDepth(z.renderBase, y, x, maxDepth)
		}
	}
}

func (z *Zeus2) logFifoCommand(data []uint32, what string) {
	if !z.logFifo {
		return
	}
	log.ModFifo.DebugZ("command").
		Hex8("op", uint8(data[0]>>24)).
		String("words", fmtWords(data)).
		String("what", what).
		End()
}
