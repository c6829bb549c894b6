package zeus2

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIncAddr(t *testing.T) {
	tests := []struct {
		name string
		inc  func(uint32) uint32
		a    uint32
		want uint32
	}{
		{"bank0", incAddr0, 0x00030010, 0x00030011},
		{"bank0 row carry", incAddr0, 0x000303ff, 0x00040000},
		{"bank1", incAddr1, 0x00010010, 0x00010011},
		{"bank1 row carry", incAddr1, 0x000101ff, 0x00020000},
	}
	for _, tt := range tests {
		if got := tt.inc(tt.a); got != tt.want {
			t.Errorf("%s: inc(%08x) = %08x, want %08x", tt.name, tt.a, got, tt.want)
		}
	}
}

func TestBank0Write(t *testing.T) {
	c := newTestChip(t)
	c.Write(regW0Mode, w0ModeWrite|w0ModeAutoInc|1) // trigger on 0x49
	c.Write(regW0Ctrl, w0CtrlWrite)
	c.Write(regW0Addr, 0x000303fe)

	for i := range uint32(3) {
		c.Write(regW0Data0, 0x1000+i)
		c.Write(regW0Data1, 0x2000+i)
	}

	var got [][]uint32
	for _, addr := range []uint32{0x000303fe, 0x000303ff, 0x00040000} {
		got = append(got, c.Bank0.BlockWords(c.Bank0.Block(addr)))
	}
	want := [][]uint32{{0x1000, 0x2000}, {0x1001, 0x2001}, {0x1002, 0x2002}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bank 0 contents mismatch (-want +got):\n%s", diff)
	}
	if got := c.Peek(regW0Addr); got != 0x00040001 {
		t.Errorf("address = %08x, want 00040001", got)
	}
}

func TestBank0WriteIgnored(t *testing.T) {
	c := newTestChip(t)
	c.Write(regW0Mode, w0ModeWrite)
	c.Write(regW0Addr, 0x00010000)
	// Wrong control value.
	c.Write(regW0Ctrl, 0x00880000)
	c.Write(regW0Data0, 0x1234)
	if got := c.Bank0.Word(c.Bank0.Block(0x00010000), 0); got != 0 {
		t.Errorf("word = %x, want 0", got)
	}
	// Address bits beyond the bank are dropped.
	c.Write(regW0Addr, 0xe00f0c00)
	if got := c.Peek(regW0Addr); got != 0x000f0000 {
		t.Errorf("address = %08x, want 000f0000", got)
	}
}

func TestBank0Read(t *testing.T) {
	c := newTestChip(t)
	blk := c.Bank0.Block(0x00050007)
	c.Bank0.SetWord(blk, 0, 0xaaaa0000)
	c.Bank0.SetWord(blk, 1, 0x0000bbbb)
	c.Bank0.SetWord(blk+1, 0, 0xcccc0000)

	// Read mode: a new address latches the block at the previous one.
	c.Write(regW0Addr, 0x00050007)
	c.Write(regW0Mode, w0ModeRead|w0ModeAutoInc)
	c.Write(regW0Addr, 0x12345678)
	if d0, d1 := c.Peek(regW0Data0), c.Peek(regW0Data1); d0 != 0xaaaa0000 || d1 != 0x0000bbbb {
		t.Errorf("data = %08x %08x, want aaaa0000 0000bbbb", d0, d1)
	}
	if got := c.Peek(regW0Addr); got != 0x00050008 {
		t.Errorf("address = %08x, want 00050008", got)
	}

	// Latch mode: writes to 0x40 latch at the current address.
	c.Write(regW0Mode, w0ModeLatch)
	c.Write(regW0Ctrl, w0CtrlLatch)
	if got := c.Peek(regW0Data0); got != 0xcccc0000 {
		t.Errorf("data = %08x, want cccc0000", got)
	}
}

func TestBank1Write(t *testing.T) {
	c := newTestChip(t)
	c.Write(regW1Mode, w1ModeWrite|w1ModeAutoInc|2) // trigger on 0x5a
	c.Write(regW1Ctrl, w1CtrlWrite)
	c.Write(regW1Addr, 0x000101ff)
	c.Write(regW1Data0, 1)
	c.Write(regW1Data1, 2)
	c.Write(regW1Data2, 3)

	if diff := cmp.Diff([]uint32{1, 2, 3}, c.Bank1.BlockWords(c.Bank1.Block(0x000101ff))); diff != "" {
		t.Errorf("block mismatch (-want +got):\n%s", diff)
	}
	if got := c.Peek(regW1Addr); got != 0x00020000 {
		t.Errorf("address = %08x, want 00020000", got)
	}

	// Control write triggers a transfer too.
	c.Write(regW1Data0, 4)
	c.Write(regW1Ctrl, w1CtrlWrite)
	if got := c.Bank1.Word(c.Bank1.Block(0x00020000), 0); got != 4 {
		t.Errorf("word = %x, want 4", got)
	}
}

func TestBank1Deferred(t *testing.T) {
	c := newTestChip(t)
	c.Write(regW1Mode, w1ModeDeferred<<16)
	c.Write(regW1Addr, 0x00030000)
	c.Write(regW1Data0, 0x55)
	c.Write(regW1Ctrl, w1CtrlWrite)
	if got := c.Bank1.Word(c.Bank1.Block(0x00030000), 0); got != 0 {
		t.Errorf("word = %x, want 0", got)
	}
}

func TestBank1Read(t *testing.T) {
	c := newTestChip(t)
	blk := c.Bank1.Block(0x00040010)
	c.Bank1.SetWord(blk, 0, 7)
	c.Bank1.SetWord(blk, 1, 8)
	c.Bank1.SetWord(blk, 2, 9)

	c.Write(regW1Ctrl, w1CtrlLatch)
	c.Write(regW1Addr, 0x00040010)
	got := []uint32{c.Peek(regW1Data0), c.Peek(regW1Data1), c.Peek(regW1Data2)}
	if diff := cmp.Diff([]uint32{7, 8, 9}, got); diff != "" {
		t.Errorf("latched data mismatch (-want +got):\n%s", diff)
	}

	c.Bank1.SetWord(blk, 0, 17)
	c.Write(regW1Ctrl, w1CtrlRead)
	if got := c.Peek(regW1Data0); got != 17 {
		t.Errorf("data = %d, want 17", got)
	}
}

func TestBank1HalfWrite(t *testing.T) {
	c := newTestChip(t)
	c.Write(regW1Addr, 0x00000005)
	c.Write(regW1Data0, 0x111111)
	c.Write(regW1Data1, 0x222222)
	c.Write(regW1Ctrl, w1CtrlHalfWrite)

	blk := c.Bank1.Block(5)
	c.Write(regW1HalfCtrl, 4)
	if w0, w1 := c.Bank1.Word(blk, 0), c.Bank1.Word(blk, 1); w0 != 0 || w1 != 0x222222 {
		t.Errorf("block = %x %x, want 0 222222", w0, w1)
	}
	c.Write(regW1HalfCtrl, 1)
	if got := c.Bank1.Word(blk, 0); got != 0x111111 {
		t.Errorf("word 0 = %x, want 111111", got)
	}
}

func TestFastFill(t *testing.T) {
	c := newTestChip(t)
	c.Write(regW1Addr, 0)
	c.Write(regW1Ctrl, w1CtrlFill|0x0102)

	filled := 0
	for y := range 32 {
		for x := range 32 {
			if c.Bank1.Pixel(0, y, x) == fastFillColor {
				filled++
				if y > 15 || x > 11 {
					t.Errorf("pixel (%d,%d) filled", x, y)
				}
			}
		}
	}
	if filled != 16*12 {
		t.Errorf("filled %d pixels, want %d", filled, 16*12)
	}
}
