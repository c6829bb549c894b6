// Package zeus2 emulates the Midway Zeus2 video coprocessor: its register
// file, command FIFO, display-list walker and textured quad rasterizer, all
// operating on the two Wave Memory banks.
package zeus2

import (
	"time"

	"zeusemu/emu/log"
	"zeusemu/hw/hwio"
	"zeusemu/hw/sched"
	"zeusemu/hw/screen"
	"zeusemu/hw/waveram"
)

const (
	NumRegs = 0x80

	// Default video clock of the boards carrying a Zeus2.
	DefaultVideoClock = 66666667

	fifoSize = 20

	// Register offsets.
	regID         = 0x00
	regStatus     = 0x01
	regMagic      = 0x07
	regFifo       = 0x08 // FIFO trigger register
	regPointer    = 0x20
	regTiming     = 0x30
	regHStart     = 0x33
	regHTotal     = 0x34
	regVVisible   = 0x35
	regVTotal     = 0x37
	regDisplay    = 0x38
	regW0Ctrl     = 0x40
	regW0Addr     = 0x41
	regW0Data0    = 0x48
	regW0Data1    = 0x49
	regW0Mode     = 0x4e
	regW1Ctrl     = 0x50
	regW1Addr     = 0x51
	regVPos       = 0x54
	regW1HalfCtrl = 0x57
	regW1Data0    = 0x58
	regW1Data1    = 0x59
	regW1Data2    = 0x5a
	regW1Mode     = 0x5e

	magicValue = 0x10451998

	// Time after a FIFO write at which the FIFO ready interrupt fires.
	fifoIRQDelay = 500 * time.Nanosecond
)

// Screen is the display timing the chip runs against.
type Screen interface {
	VBlank() bool
	VPos() int
	VisibleArea() screen.Rect
	Configure(width, height int, visible screen.Rect, period time.Duration)
	TimeUntilVBlankStart() time.Duration
	TimeUntilVBlankEnd() time.Duration
}

type Config struct {
	VideoClock uint32  // Hz
	ZBase      float32 // initial depth bias
	LogFifo    bool    // initial state of the FIFO command log toggle
}

func DefaultConfig() Config {
	return Config{
		VideoClock: DefaultVideoClock,
		ZBase:      2.0,
	}
}

type Zeus2 struct {
	Bank0 *waveram.Bank // models and textures
	Bank1 *waveram.Bank // frame buffers

	IRQ    hwio.Line // FIFO ready
	VBlank hwio.Line

	Hooks Hooks

	cfg    Config
	screen Screen
	sched  *sched.Scheduler

	regs [NumRegs]uint32

	fifo      [fifoSize]uint32
	fifoWords int

	matrix [3][3]float32
	point  [3]float32
	point2 [3]float32 // decoded by command 0x1c, diagnostic only
	zbase  float32

	yScale     int
	clip       screen.Rect
	texBase    uint32 // bank 0 block
	renderBase uint32 // bank 1 block
	quadSize   int
	texWidth   int
	logFifo    bool

	unknownTexModes hwio.Bitset

	fifoTimer      *sched.Timer
	vblankTimer    *sched.Timer
	vblankOffTimer *sched.Timer
}

// New creates a Zeus2 chip. The wave banks are allocated once and survive
// resets.
func New(s *sched.Scheduler, scr Screen, cfg Config) *Zeus2 {
	z := &Zeus2{
		Bank0:  waveram.NewBank0(),
		Bank1:  waveram.NewBank1(),
		IRQ:    hwio.Line{Name: "zeus2-irq"},
		VBlank: hwio.Line{Name: "zeus2-vblank"},
		cfg:    cfg,
		screen: scr,
		sched:  s,
	}
	z.fifoTimer = s.NewTimer("zeus2-fifo", z.fifoReady)
	z.vblankTimer = s.NewTimer("zeus2-vblank", z.displayIRQ)
	z.vblankOffTimer = s.NewTimer("zeus2-vblank-off", z.displayIRQOff)
	z.Reset()
	return z
}

// Reset zeroes the registers, the FIFO and the transform state. Wave memory
// is left untouched.
func (z *Zeus2) Reset() {
	z.regs = [NumRegs]uint32{}
	z.fifo = [fifoSize]uint32{}
	z.fifoWords = 0
	z.matrix = [3][3]float32{}
	z.point = [3]float32{}
	z.point2 = [3]float32{}
	z.zbase = z.cfg.ZBase
	z.yScale = 0
	z.clip = z.screen.VisibleArea()
	z.texBase = 0
	z.renderBase = 0
	z.quadSize = 10
	z.texWidth = 256
	z.logFifo = z.cfg.LogFifo

	z.fifoTimer.Cancel()
	z.vblankTimer.Cancel()
	z.vblankOffTimer.Cancel()
	z.IRQ.Clear()
	z.VBlank.Clear()
}

// Read reads a register. A few offsets return synthesized values instead of
// the register contents.
func (z *Zeus2) Read(offset uint8) uint32 {
	offset &= NumRegs - 1
	val := z.regs[offset]

	switch offset {
	case regID:
		val = 0x20
	case regStatus:
		val = 0
		if z.screen.VBlank() {
			val |= 0x04
		}
	case regMagic:
		val = magicValue
	case regVPos:
		vpos := uint32(z.screen.VPos())
		val = vpos<<16 | vpos
	}

	if z.Hooks.RegRead != nil {
		z.Hooks.RegRead(offset, val)
	}
	return val
}

// Write writes a register and runs its side effects.
func (z *Zeus2) Write(offset uint8, val uint32) {
	offset &= NumRegs - 1
	old := z.regs[offset]
	z.regs[offset] = val

	if z.Hooks.RegWrite != nil {
		z.Hooks.RegWrite(offset, val)
	}
	if offset != regFifo {
		log.ModZeus.DebugZ("write").
			Hex8("reg", offset).
			Hex32("val", val).
			Hex32("old", old).
			End()
	}

	fx := regUpdate[offset](z, offset, old)
	z.apply(fx)
}

// Peek returns a register contents, without synthesized values nor side
// effects.
func (z *Zeus2) Peek(offset uint8) uint32 {
	return z.regs[offset&(NumRegs-1)]
}

// Read32 implements hwio.BankIO32.
func (z *Zeus2) Read32(addr uint32, peek bool) uint32 {
	if peek {
		return z.Peek(uint8(addr))
	}
	return z.Read(uint8(addr))
}

// Write32 implements hwio.BankIO32.
func (z *Zeus2) Write32(addr uint32, val uint32) {
	z.Write(uint8(addr), val)
}

// ClipRect returns the rectangle the rasterizer is clipped to.
func (z *Zeus2) ClipRect() screen.Rect { return z.clip }

// YScale returns 1 if each frame buffer row holds two scanlines.
func (z *Zeus2) YScale() int { return z.yScale }

// Transform returns the current matrix and translation point.
func (z *Zeus2) Transform() (m [3][3]float32, p [3]float32) {
	return z.matrix, z.point
}

// QuadSize returns the number of words of a quad command (10 or 14).
func (z *Zeus2) QuadSize() int { return z.quadSize }

// FifoWords returns the number of words waiting in the FIFO.
func (z *Zeus2) FifoWords() int { return z.fifoWords }
