package zeus2

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFifoWordCounts(t *testing.T) {
	tests := []struct {
		name  string
		w0    uint32
		words int
	}{
		{"reg32", 0x05100000, 2},
		{"matrix crusnexo", 0x07000000, 13},
		{"matrix grid", 0x08000000, 14},
		{"point grid", 0x15000000, 4},
		{"point crusnexo", 0x16000000, 4},
		{"clear", 0x1c000000, 4},
		{"model grid", 0x23000000, 2},
		{"model crusnexo", 0x24000000, 2},
		{"sync grid", 0x31000000, 1},
		{"sync crusnexo", 0x32000000, 1},
		{"direct quad", 0x38000000, 12},
		{"nop", 0x40000000, 1},
		{"filler", fifoFiller, 1},
		{"unknown", 0x99000000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestChip(t)
			var cmds [][]uint32
			c.Hooks.FifoCommand = func(data []uint32) {
				cmds = append(cmds, append([]uint32(nil), data...))
			}

			want := []uint32{tt.w0}
			c.fifo(tt.w0)
			for i := 1; i < tt.words; i++ {
				if c.FifoWords() != i || len(cmds) != 0 {
					t.Fatalf("after %d words: FifoWords() = %d, %d commands dispatched", i, c.FifoWords(), len(cmds))
				}
				// Words that would be complete commands on their own must
				// not restart the parse.
				w := uint32(0x31000000 + i)
				c.fifo(w)
				want = append(want, w)
			}
			if c.FifoWords() != 0 {
				t.Errorf("FifoWords() = %d after dispatch, want 0", c.FifoWords())
			}
			if diff := cmp.Diff([][]uint32{want}, cmds); diff != "" {
				t.Errorf("dispatched commands mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFifoRegWrite(t *testing.T) {
	c := newTestChip(t)
	n := 0
	c.Hooks.FifoCommand = func([]uint32) { n++ }

	c.fifo(0x05100000, 0xdeadbeef)
	if got := c.Peek(0x10); got != 0xdeadbeef {
		t.Errorf("reg 0x10 = %x, want deadbeef", got)
	}

	// The FIFO register itself is never targeted.
	c.fifo(0x05080000, 0x12345678)
	if c.FifoWords() != 0 || n != 2 {
		t.Errorf("FifoWords() = %d, commands = %d, want 0, 2", c.FifoWords(), n)
	}

	// Register index is 7 bits wide.
	c.fifo(0x05900000, 0x42)
	if got := c.Peek(0x10); got != 0x42 {
		t.Errorf("reg 0x10 = %x, want 42", got)
	}
}

func TestTransformDecode(t *testing.T) {
	c := newTestChip(t)
	c.fifo(0x07000000,
		fpOne, fpTwo, fpHalf,
		fpOneHalf, fpMinusOne, fpMinusTwo,
		fpZero, fpOne, fpTwo,
		fpHalf, fpMinusTwo, fpOneHalf)

	m, p := c.Transform()
	wantM := [3][3]float32{{1, 2, 0.5}, {1.5, -1, -2}, {0, 1, 2}}
	wantP := [3]float32{0.5, -2, 1.5}
	if m != wantM || p != wantP {
		t.Errorf("Transform() = %v %v, want %v %v", m, p, wantM, wantP)
	}

	// 0x08 has one extra leading word.
	c.fifo(0x08000000, 0xffffffff,
		fpTwo, fpZero, fpZero,
		fpZero, fpTwo, fpZero,
		fpZero, fpZero, fpTwo,
		fpOne, fpOne, fpOne)
	m, p = c.Transform()
	wantM = [3][3]float32{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	wantP = [3]float32{1, 1, 1}
	if m != wantM || p != wantP {
		t.Errorf("Transform() = %v %v, want %v %v", m, p, wantM, wantP)
	}

	// Point only.
	c.fifo(0x16000000, fpMinusOne, fpZero, fpTwo)
	m, p = c.Transform()
	if wantP = [3]float32{-1, 0, 2}; m != wantM || p != wantP {
		t.Errorf("Transform() = %v %v, want %v %v", m, p, wantM, wantP)
	}
}

func TestFifoClear(t *testing.T) {
	c := newTestChip(t)
	c.setTiming(0x200, 0, 512, 399, 400)
	c.Bank1.SetPixel(0, 10, 10, 0xffffff)
	c.Bank1.SetDepth(0, 10, 10, 0x10)
	c.Bank1.SetDepth(0, 400, 10, 0x10)

	c.fifo(0x1c000000, fpOne, fpTwo, fpHalf)
	if got := c.Bank1.Pixel(0, 10, 10); got != 0 {
		t.Errorf("pixel = %x, want 0", got)
	}
	if got := c.Bank1.Depth(0, 10, 10); got != 0x7fff {
		t.Errorf("depth = %x, want 7fff", got)
	}
	if got := c.Bank1.Depth(0, 399, 511); got != 0x7fff {
		t.Errorf("depth at bottom right = %x, want 7fff", got)
	}
	// Outside of the clip rectangle.
	if got := c.Bank1.Depth(0, 400, 10); got != 0x10 {
		t.Errorf("depth below clip = %x, want 10", got)
	}
}

func TestFifoOverflow(t *testing.T) {
	c := newTestChip(t)
	// No command is longer than the buffer.
	c.fifoWords = fifoSize
	c.fifo(fifoFiller)
	if c.FifoWords() != 0 {
		t.Errorf("FifoWords() = %d, want 0", c.FifoWords())
	}
}
