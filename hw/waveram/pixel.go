package waveram

// Frame buffer layout (bank 1): a block holds two horizontally adjacent
// pixels as 24-bit colors in words 0 and 1, and their two 16-bit depths in
// the halfword lanes of word 2. A row is 512 blocks (1024 pixels) wide.

const (
	depthWord = 2
	rowShift  = 9
)

// PixelBlock returns the block holding pixel (y, x), relative to base.
func PixelBlock(base uint32, y, x int) uint32 {
	return base + (uint32(y&0x3ff)<<rowShift | uint32(x&0x3fe)>>1)
}

// Pixel returns the color of pixel (y, x) of the frame starting at block base.
func (b *Bank) Pixel(base uint32, y, x int) uint32 {
	return b.Word(PixelBlock(base, y, x), x&1)
}

func (b *Bank) SetPixel(base uint32, y, x int, color uint32) {
	b.SetWord(PixelBlock(base, y, x), x&1, color)
}

// Depth returns the depth of pixel (y, x) of the frame starting at block base.
func (b *Bank) Depth(base uint32, y, x int) uint16 {
	w := b.Word(PixelBlock(base, y, x), depthWord)
	return uint16(w >> (uint(x&1) * 16))
}

func (b *Bank) SetDepth(base uint32, y, x int, depth uint16) {
	blk := PixelBlock(base, y, x)
	shift := uint(x&1) * 16
	w := b.Word(blk, depthWord)
	b.SetWord(blk, depthWord, w&^(0xffff<<shift)|uint32(depth)<<shift)
}

// Texel returns the 8-bit texel (y, x) of a texture starting at block base,
// for a texture width of width texels. Textures are stored in 2x4 texel
// tiles, one 8-byte block per tile.
func (b *Bank) Texel(base uint32, y, x, width int) uint8 {
	return b.Read8(base, TexelOffset(y, x, width))
}

// TexelOffset returns the byte offset of texel (y, x) from the texture base.
func TexelOffset(y, x, width int) uint32 {
	return uint32((y/4)*(width*4) + ((x / 2) << 3) + ((y & 3) << 1) + (x & 1))
}
