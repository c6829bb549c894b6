// Package snapshot holds the plain state structures captured by the
// emulated devices, independently of any encoding.
package snapshot

const Version = 1

type Machine struct {
	Version int
	Now     int64 // emulated time, ns
	Screen  Screen
	Zeus2   *Zeus2
	IRQ     Line
	VBlank  Line
}

type Screen struct {
	Width, Height int
	Visible       Rect
	Period        int64 // ns
	FrameStart    int64 // ns
}

type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

type Line struct {
	Asserted bool
	Count    int
}

// Timer is a pending timer, as the time left before it fires (ns), or -1
// when idle.
type Timer int64

type Zeus2 struct {
	Regs [0x80]uint32

	Bank0 []uint32
	Bank1 []uint32

	Fifo      [20]uint32
	FifoWords int

	Matrix [3][3]float32
	Point  [3]float32
	Point2 [3]float32
	ZBase  float32

	YScale     int
	Clip       Rect
	TexBase    uint32
	RenderBase uint32
	QuadSize   int
	TexWidth   int
	LogFifo    bool

	FifoTimer      Timer
	VBlankTimer    Timer
	VBlankOffTimer Timer
}
