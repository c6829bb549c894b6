package zeus2

import (
	"bufio"
	"fmt"
	"io"
)

// DumpWaveRAM writes the contents of bank 0 as text, four blocks per line,
// each line starting with the row and column of its first block.
func (z *Zeus2) DumpWaveRAM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	b := z.Bank0
	n := int(b.Blocks())
	for i := range n {
		if i%4 == 0 {
			fmt.Fprintf(bw, "%03X%03X: ", i/b.Width, i%b.Width)
		}
		if _, err := fmt.Fprintf(bw, " %08X %08X ", b.Word(uint32(i), 0), b.Word(uint32(i), 1)); err != nil {
			return err
		}
		if i%4 == 3 {
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
