package zeus2

// Hooks are optional observers of the chip activity. They never change its
// behavior, except FilterQuad.
type Hooks struct {
	// RegRead is called on each register read, with the value returned.
	RegRead func(offset uint8, val uint32)
	// RegWrite is called on each register write, from the bus, the FIFO or
	// a display list.
	RegWrite func(offset uint8, val uint32)
	// PointerWrite is called on each pointer sub-register write.
	PointerWrite func(which uint8, val uint32)
	// FifoCommand is called with the words of each consumed FIFO command.
	FifoCommand func(data []uint32)
	// FilterQuad, if set, returns false to skip quads of a texture mode.
	FilterQuad func(texMode uint16) bool
}
