package zeus2

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

var errFull = errors.New("full")

// cappedWriter keeps the first bytes written to it, then fails.
type cappedWriter struct {
	buf bytes.Buffer
	max int
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	if w.buf.Len() >= w.max {
		return 0, errFull
	}
	return w.buf.Write(p)
}

func TestDumpWaveRAM(t *testing.T) {
	c := newTestChip(t)
	c.Bank0.SetWord(0, 0, 0x11111111)
	c.Bank0.SetWord(0, 1, 0x22222222)
	c.Bank0.SetWord(3, 1, 0xdeadbeef)
	c.Bank0.SetWord(1024, 0, 0xcafe)

	w := &cappedWriter{max: 1 << 16}
	if err := c.DumpWaveRAM(w); !errors.Is(err, errFull) {
		t.Fatalf("DumpWaveRAM() = %v, want %v", err, errFull)
	}

	lines := strings.Split(w.buf.String(), "\n")
	want := []string{
		"000000:  11111111 22222222  00000000 00000000  00000000 00000000  00000000 DEADBEEF ",
		"000004:  00000000 00000000  00000000 00000000  00000000 00000000  00000000 00000000 ",
	}
	for i, l := range want {
		if lines[i] != l {
			t.Errorf("line %d = %q, want %q", i, lines[i], l)
		}
	}
	if l := lines[256]; !strings.HasPrefix(l, "001000:  0000CAFE 00000000 ") {
		t.Errorf("line 256 = %q", l)
	}
}
