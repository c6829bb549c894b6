package emu

import (
	"image"
	"time"

	"zeusemu/emu/log"
	"zeusemu/hw/hwio"
	"zeusemu/hw/sched"
	"zeusemu/hw/screen"
	"zeusemu/hw/zeus2"
)

// Host bus map, in words.
const (
	ZeusAddr = 0x0000 // zeus2 registers
	HostAddr = 0x0100 // interrupt status/acknowledge
)

// Interrupt status bits.
const (
	IRQFifo   = 1 << 0
	IRQVBlank = 1 << 1
)

// hostRegs are the host side of the zeus2 interrupt lines.
type hostRegs struct {
	IRQStatus hwio.Reg32 `hwio:"offset=0x0,readonly,rcb"`
	IRQAck    hwio.Reg32 `hwio:"offset=0x1,writeonly,wcb"`

	zeus *zeus2.Zeus2
}

func (h *hostRegs) ReadIRQSTATUS(uint32) uint32 {
	var val uint32
	if h.zeus.IRQ.Asserted() {
		val |= IRQFifo
	}
	if h.zeus.VBlank.Asserted() {
		val |= IRQVBlank
	}
	return val
}

// WriteIRQACK acknowledges the FIFO interrupt. The vblank line is driven by
// its own timer.
func (h *hostRegs) WriteIRQACK(_, val uint32) {
	if val&IRQFifo != 0 {
		h.zeus.IRQ.Clear()
	}
}

// Machine is a zeus2 chip with its display and scheduler, on a host bus.
type Machine struct {
	Sched  *sched.Scheduler
	Screen *screen.Screen
	Zeus   *zeus2.Zeus2
	Bus    *hwio.Table

	// Usage tracks register usage, nil unless enabled in the configuration.
	Usage *zeus2.RegUsage

	cfg  Config
	host hostRegs

	irqs    int
	vblanks int
}

// VideoPeriod returns the frame period of a htotal x vtotal screen, for a
// chip clocked at clock Hz.
func VideoPeriod(clock uint32, htotal, vtotal int) time.Duration {
	return time.Duration(float64(time.Second) * 4 * float64(htotal*vtotal) / float64(clock))
}

func NewMachine(cfg Config) *Machine {
	cfg.Check()
	v := cfg.Video

	s := sched.New()
	vis := screen.Rect{MinX: 0, MinY: 0, MaxX: v.VisibleWidth - 1, MaxY: v.VisibleHeight - 1}
	scr := screen.New(s, v.Width, v.Height, vis, VideoPeriod(v.Clock, v.Width, v.Height))
	z := zeus2.New(s, scr, zeus2.Config{
		VideoClock: v.Clock,
		ZBase:      cfg.Zeus.ZBase,
		LogFifo:    cfg.Zeus.LogFifo,
	})

	m := &Machine{
		Sched:  s,
		Screen: scr,
		Zeus:   z,
		Bus:    hwio.NewTable("host"),
		cfg:    cfg,
	}
	z.IRQ.OnChange = func(asserted bool) {
		if asserted {
			m.irqs++
		}
	}
	z.VBlank.OnChange = func(asserted bool) {
		if asserted {
			m.vblanks++
		}
	}
	if cfg.Zeus.RegUsage {
		m.Usage = zeus2.NewRegUsage()
		z.Hooks = m.Usage.Hooks(&z.Hooks)
	}

	m.host.zeus = z
	hwio.MustInitRegs(&m.host)
	m.Bus.Map(ZeusAddr, zeus2.NumRegs, z)
	m.Bus.MapBank(HostAddr, &m.host, 0)
	return m
}

func (m *Machine) Config() Config { return m.cfg }

// Reset resets the chip and the interrupt counters. Emulated time keeps
// running.
func (m *Machine) Reset() {
	m.Zeus.Reset()
	m.irqs, m.vblanks = 0, 0
	log.ModEmu.InfoZ("reset").End()
}

// Read32 implements hwio.BankIO32.
func (m *Machine) Read32(addr uint32, peek bool) uint32 {
	return m.Bus.Read32(addr, peek)
}

// Write32 implements hwio.BankIO32.
func (m *Machine) Write32(addr uint32, val uint32) {
	m.Bus.Write32(addr, val)
}

// Advance runs the machine for d of emulated time.
func (m *Machine) Advance(d time.Duration) {
	m.Sched.Advance(d)
}

func (m *Machine) Now() time.Duration { return m.Sched.Now() }

// IRQCount returns the number of FIFO interrupts raised since reset.
func (m *Machine) IRQCount() int { return m.irqs }

// VBlankCount returns the number of vblank interrupts raised since reset.
func (m *Machine) VBlankCount() int { return m.vblanks }

// Frame renders the visible area of the displayed frame buffer.
func (m *Machine) Frame() *image.RGBA {
	vis := m.Screen.VisibleArea()
	img := image.NewRGBA(image.Rect(0, 0, vis.Width(), vis.Height()))
	m.Zeus.UpdateScreen(img)
	return img
}
