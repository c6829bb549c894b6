package zeus2

import (
	"time"

	"zeusemu/emu/log"
	"zeusemu/hw/screen"
)

// effects are the deferred actions a register update requests.
type effects uint8

const (
	rearmFifoIRQ effects = 1 << iota
	rearmVBlank
)

// regUpdateFn runs the side effects of a write at offset, once the new value
// has been stored. old is the value the register held before.
type regUpdateFn func(z *Zeus2, offset uint8, old uint32) effects

var regUpdate [NumRegs]regUpdateFn

func init() {
	for i := range regUpdate {
		regUpdate[i] = updateNone
	}
	regUpdate[regFifo] = updateFifo
	regUpdate[regPointer] = updatePointer
	for off := regHStart; off <= regVTotal; off++ {
		regUpdate[off] = updateTiming
	}
	regUpdate[regDisplay] = updateDisplay
	regUpdate[regW0Ctrl] = updateW0Ctrl
	regUpdate[regW0Addr] = updateW0Addr
	regUpdate[regW0Data0] = updateW0Data
	regUpdate[regW0Data1] = updateW0Data
	regUpdate[regW1Ctrl] = updateW1Ctrl
	regUpdate[regW1Addr] = updateW1Addr
	regUpdate[regW1HalfCtrl] = updateW1Half
	regUpdate[regW1Data0] = updateW1Data
	regUpdate[regW1Data1] = updateW1Data
	regUpdate[regW1Data2] = updateW1Data
}

func (z *Zeus2) apply(fx effects) {
	if fx&rearmFifoIRQ != 0 {
		z.fifoTimer.Adjust(fifoIRQDelay)
	}
	if fx&rearmVBlank != 0 {
		z.vblankTimer.Adjust(time.Second / 30_000_000)
	}
}

func updateNone(z *Zeus2, offset uint8, old uint32) effects { return 0 }

func updateFifo(z *Zeus2, offset uint8, old uint32) effects {
	z.fifoPush(z.regs[regFifo])
	return rearmFifoIRQ
}

func updatePointer(z *Zeus2, offset uint8, old uint32) effects {
	val := z.regs[regPointer]
	z.pointerWrite(uint8(val>>24), val)
	return 0
}

// updateTiming recomputes the screen geometry. The new configuration is
// applied only if it describes a non-empty visible area within the totals.
func updateTiming(z *Zeus2, offset uint8, old uint32) effects {
	// Modes with few columns per line store two scanlines per row.
	yscale := 0
	if z.regs[regTiming]&0xfff <= 0x100 {
		yscale = 1
	}
	vtotal := int(z.regs[regVTotal]&0xffff) << yscale
	htotal := int(z.regs[regHTotal] >> 16)
	vis := screen.Rect{
		MinX: int(z.regs[regHStart] >> 16),
		MinY: 0,
		MaxX: htotal - 1,
		MaxY: int(z.regs[regVVisible]&0xffff) << yscale,
	}
	if htotal <= 0 || vtotal <= 0 || vis.MinX >= vis.MaxX || vis.MaxY >= vtotal {
		return 0
	}

	hz := float64(z.cfg.VideoClock) / 4 / float64(htotal*vtotal)
	z.screen.Configure(htotal, vtotal, vis, time.Duration(float64(time.Second)/hz))
	z.yScale = yscale
	z.clip = vis
	z.clip.MaxX -= z.clip.MinX
	z.clip.MinX = 0

	log.ModZeus.InfoZ("timing").
		Int("htotal", htotal).
		Int("vtotal", vtotal).
		Stringer("clip", z.clip).
		Int("yscale", yscale).
		End()
	return rearmVBlank
}

func updateDisplay(z *Zeus2, offset uint8, old uint32) effects {
	z.logFifo = true
	return 0
}

// Direct access to bank 0, through a one block window (0x48-0x49) at the
// address held in 0x41.
//
// 0x4e mode bits:
//
//	0-1: which data register triggers write-through
//	3:   write-through enable
//	4:   read mode, writes to 0x41 latch the block
//	5:   latch on 0x40 writes
//	6:   address autoincrement
const (
	w0ModeTrigger = 0x03
	w0ModeWrite   = 0x08
	w0ModeRead    = 0x10
	w0ModeLatch   = 0x20
	w0ModeAutoInc = 0x40

	w0CtrlLatch = 0x00820000
	w0CtrlWrite = 0x00890000
)

// incAddr0 increments a bank 0 expanded address, carrying column 0x400 to
// the next row.
func incAddr0(a uint32) uint32 {
	a++
	a += (a & 0x400) << 6
	return a &^ 0xfc00
}

func (z *Zeus2) latchW0(addr uint32) {
	blk := z.Bank0.Block(addr)
	z.regs[regW0Addr] = addr
	z.regs[regW0Data0] = z.Bank0.Word(blk, 0)
	z.regs[regW0Data1] = z.Bank0.Word(blk, 1)
	if z.regs[regW0Mode]&w0ModeAutoInc != 0 {
		z.regs[regW0Addr] = incAddr0(z.regs[regW0Addr])
	}
}

func updateW0Ctrl(z *Zeus2, offset uint8, old uint32) effects {
	if z.regs[regW0Mode]&w0ModeLatch != 0 && z.regs[regW0Ctrl] == w0CtrlLatch {
		z.latchW0(z.regs[regW0Addr])
	}
	return 0
}

func updateW0Addr(z *Zeus2, offset uint8, old uint32) effects {
	if z.regs[regW0Mode]&w0ModeRead != 0 {
		// Reads latch the block at the previous address.
		z.latchW0(old)
		return 0
	}
	z.regs[regW0Addr] &= 0x1fff03ff
	return 0
}

func updateW0Data(z *Zeus2, offset uint8, old uint32) effects {
	mode := z.regs[regW0Mode]
	if z.regs[regW0Ctrl] != w0CtrlWrite {
		log.ModWave.DebugZ("bank0 data write ignored").
			Hex32("ctrl", z.regs[regW0Ctrl]).
			Hex32("mode", mode).
			End()
		return 0
	}
	if mode&w0ModeWrite == 0 || uint32(offset)&3 != mode&w0ModeTrigger {
		return 0
	}
	blk := z.Bank0.Block(z.regs[regW0Addr])
	z.Bank0.SetWord(blk, 0, z.regs[regW0Data0])
	z.Bank0.SetWord(blk, 1, z.regs[regW0Data1])
	if mode&w0ModeAutoInc != 0 {
		z.regs[regW0Addr] = incAddr0(z.regs[regW0Addr])
	}
	return 0
}

// Direct access to bank 1, through a one block window (0x58-0x5a) at the
// address held in 0x51. The bit meanings of 0x5e follow those of 0x4e; bit
// 5 selects the word order of write-through and is a guess.
const (
	w1ModeTrigger = 0x03
	w1ModeWrite   = 0x08
	w1ModeRead    = 0x10
	w1ModeSwap    = 0x20
	w1ModeAutoInc = 0x40

	w1CtrlWrite     = 0x00890000
	w1CtrlRead      = 0x00720000
	w1CtrlLatch     = 0x00a20000
	w1CtrlHalfWrite = 0x00e90000
	w1CtrlFillMask  = 0xffff0000
	w1CtrlFill      = 0x00980000

	// Mode whose 0x50 writes are not processed immediately.
	w1ModeDeferred = 0xf208

	fastFillColor = 0x004a4a4a
)

// incAddr1 increments a bank 1 expanded address, carrying column 0x200 to
// the next row.
func incAddr1(a uint32) uint32 {
	a++
	a += (a & 0x200) << 7
	return a &^ 0xfe00
}

func (z *Zeus2) latchW1(addr uint32) {
	blk := z.Bank1.Block(addr)
	z.regs[regW1Addr] = addr
	z.regs[regW1Data0] = z.Bank1.Word(blk, 0)
	z.regs[regW1Data1] = z.Bank1.Word(blk, 1)
	z.regs[regW1Data2] = z.Bank1.Word(blk, 2)
	if z.regs[regW1Mode]&w1ModeAutoInc != 0 {
		z.regs[regW1Addr] = incAddr1(z.regs[regW1Addr])
	}
}

func (z *Zeus2) writeThroughW1() {
	blk := z.Bank1.Block(z.regs[regW1Addr])
	z.Bank1.SetWord(blk, 0, z.regs[regW1Data0])
	if z.regs[regW1Mode]&w1ModeSwap != 0 {
		z.Bank1.SetWord(blk, 1, z.regs[regW1Data2])
	} else {
		z.Bank1.SetWord(blk, 1, z.regs[regW1Data1])
		z.Bank1.SetWord(blk, 2, z.regs[regW1Data2])
	}
	if z.regs[regW1Mode]&w1ModeAutoInc != 0 {
		z.regs[regW1Addr] = incAddr1(z.regs[regW1Addr])
	}
}

func updateW1Ctrl(z *Zeus2, offset uint8, old uint32) effects {
	ctrl := z.regs[regW1Ctrl]
	switch {
	case ctrl&w1CtrlFillMask == w1CtrlFill:
		z.fastFill(ctrl)
	case z.regs[regW1Mode]>>16 == w1ModeDeferred:
		// data registers do the transfer
	case ctrl == w1CtrlWrite:
		z.writeThroughW1()
	case ctrl == w1CtrlRead:
		z.latchW1(z.regs[regW1Addr])
	}
	return 0
}

// fastFill fills a rectangle of the frame buffer at 0x51 with a fixed color.
// The rectangle size fields are a guess.
func (z *Zeus2) fastFill(ctrl uint32) {
	lastRow := int((ctrl>>8)&0xff)<<3 | 7
	lastCol := int(ctrl&0xff)<<2 | 3
	base := z.Bank1.Block(z.regs[regW1Addr])

	log.ModWave.DebugZ("fast fill").
		Hex32("base", z.regs[regW1Addr]).
		Int("rows", lastRow+1).
		Int("cols", lastCol+1).
		End()

	for y := 0; y <= lastRow; y++ {
		for x := 0; x <= lastCol; x++ {
			z.Bank1.SetPixel(base, y, x, fastFillColor)
		}
	}
}

func updateW1Addr(z *Zeus2, offset uint8, old uint32) effects {
	latch := z.regs[regW1Ctrl] == w1CtrlLatch
	if latch {
		// Latch immediately at the new address.
		old = z.regs[regW1Addr]
	}
	if latch || z.regs[regW1Mode]&w1ModeRead != 0 {
		z.latchW1(old)
	}
	return 0
}

// updateW1Half writes either pixel of the block at 0x51.
func updateW1Half(z *Zeus2, offset uint8, old uint32) effects {
	if z.regs[regW1Ctrl] != w1CtrlHalfWrite {
		log.ModWave.DebugZ("bank1 half write ignored").
			Hex32("ctrl", z.regs[regW1Ctrl]).
			Hex32("mode", z.regs[regW1Mode]).
			End()
		return 0
	}
	blk := z.Bank1.Block(z.regs[regW1Addr])
	if z.regs[regW1HalfCtrl]&1 != 0 {
		z.Bank1.SetWord(blk, 0, z.regs[regW1Data0])
	}
	if z.regs[regW1HalfCtrl]&4 != 0 {
		z.Bank1.SetWord(blk, 1, z.regs[regW1Data1])
	}
	return 0
}

func updateW1Data(z *Zeus2, offset uint8, old uint32) effects {
	mode := z.regs[regW1Mode]
	if z.regs[regW1Ctrl] != w1CtrlWrite {
		log.ModWave.DebugZ("bank1 data write ignored").
			Hex32("ctrl", z.regs[regW1Ctrl]).
			Hex32("mode", mode).
			End()
		return 0
	}
	if mode&w1ModeWrite != 0 && uint32(offset)&3 == mode&w1ModeTrigger {
		z.writeThroughW1()
	}
	return 0
}
