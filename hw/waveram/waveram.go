// Package waveram implements the two Wave Memory banks of the Zeus2 video
// board and their addressing schemes.
//
// A bank is an array of blocks of 32-bit words, arranged as Width x Height.
// Registers and display lists refer to blocks with expanded addresses, which
// carry the column in the low bits and the row from bit 16 up. Byte and
// halfword views of a bank are little-endian lanes of its words.
package waveram

import "fmt"

const (
	Bank0Width  = 1024
	Bank0Height = 2048
	Bank0Words  = 2 // 8 bytes per block

	Bank1Width  = 512
	Bank1Height = 1024
	Bank1Words  = 3 // pixel 0, pixel 1, packed depth pair
)

// Bank is a Wave Memory bank. Every accessor wraps its index modulo the bank
// size, so that corrupted pointers never fall outside of it.
type Bank struct {
	Name   string
	Width  int
	Height int
	Words  int // words per block

	Data []uint32
}

func NewBank(name string, width, height, words int) *Bank {
	return &Bank{
		Name:   name,
		Width:  width,
		Height: height,
		Words:  words,
		Data:   make([]uint32, width*height*words),
	}
}

// NewBank0 returns the model/texture bank.
func NewBank0() *Bank { return NewBank("bank0", Bank0Width, Bank0Height, Bank0Words) }

// NewBank1 returns the frame buffer bank.
func NewBank1() *Bank { return NewBank("bank1", Bank1Width, Bank1Height, Bank1Words) }

func (b *Bank) String() string {
	return fmt.Sprintf("%s(%dx%dx%d)", b.Name, b.Width, b.Height, b.Words)
}

// Blocks returns the number of blocks in the bank.
func (b *Bank) Blocks() uint32 { return uint32(b.Width * b.Height) }

// Block converts an expanded address into a block number.
func (b *Bank) Block(addr uint32) uint32 {
	return ExpandedBlock(addr, b.Width, b.Height)
}

// ExpandedBlock converts the expanded address of a width x height bank into
// a block number: column in the low bits, row from bit 16.
func ExpandedBlock(addr uint32, width, height int) uint32 {
	col := addr % uint32(width)
	row := (addr >> 16) % uint32(height)
	return col + row*uint32(width)
}

func (b *Bank) wordIndex(block uint32, word int) int {
	return int(block%b.Blocks())*b.Words + word
}

// Word returns word of the given block.
func (b *Bank) Word(block uint32, word int) uint32 {
	return b.Data[b.wordIndex(block, word)]
}

func (b *Bank) SetWord(block uint32, word int, val uint32) {
	b.Data[b.wordIndex(block, word)] = val
}

// BlockWords returns a copy of the words of a block.
func (b *Bank) BlockWords(block uint32) []uint32 {
	i := b.wordIndex(block, 0)
	return append([]uint32(nil), b.Data[i:i+b.Words]...)
}

// wordAt returns the index in Data of the word holding byte offset off,
// counted from the beginning of block base.
func (b *Bank) wordAt(base uint32, off uint32) int {
	w := uint64(base%b.Blocks())*uint64(b.Words) + uint64(off/4)
	return int(w % uint64(len(b.Data)))
}

// Read8 reads the byte at offset off from the beginning of block base.
func (b *Bank) Read8(base, off uint32) uint8 {
	return uint8(b.Data[b.wordAt(base, off)] >> ((off & 3) * 8))
}

func (b *Bank) Write8(base, off uint32, val uint8) {
	i := b.wordAt(base, off)
	shift := (off & 3) * 8
	b.Data[i] = b.Data[i]&^(0xff<<shift) | uint32(val)<<shift
}

// Read16 reads the n-th halfword from the beginning of block base.
func (b *Bank) Read16(base, n uint32) uint16 {
	off := n * 2
	return uint16(b.Data[b.wordAt(base, off)] >> ((off & 2) * 8))
}

func (b *Bank) Write16(base, n uint32, val uint16) {
	off := n * 2
	i := b.wordAt(base, off)
	shift := (off & 2) * 8
	b.Data[i] = b.Data[i]&^(0xffff<<shift) | uint32(val)<<shift
}

// Read32 implements hwio.BankIO32 over the linear word array.
func (b *Bank) Read32(addr uint32, peek bool) uint32 {
	return b.Data[int(addr)%len(b.Data)]
}

// Write32 implements hwio.BankIO32 over the linear word array.
func (b *Bank) Write32(addr uint32, val uint32) {
	b.Data[int(addr)%len(b.Data)] = val
}
