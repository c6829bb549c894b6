package zeus2

import (
	"io"
	"slices"

	"github.com/go-faster/jx"
)

// Maximum number of distinct values recorded per register.
const maxUsageValues = 256

type regStats struct {
	reads  int
	writes int
	values []uint32 // distinct written values, in order of first write
}

func (s *regStats) record(val uint32) {
	s.writes++
	if len(s.values) < maxUsageValues && !slices.Contains(s.values, val) {
		s.values = append(s.values, val)
	}
}

// RegUsage tracks how registers and pointer sub-registers are used.
type RegUsage struct {
	regs    [NumRegs]regStats
	subregs [0x100]regStats
}

func NewRegUsage() *RegUsage {
	return &RegUsage{}
}

// Hooks returns hooks feeding the tracker. Other hooks can be chained in
// next, which may be nil.
func (u *RegUsage) Hooks(next *Hooks) Hooks {
	var h Hooks
	if next != nil {
		h = *next
	}
	rr, rw, pw := h.RegRead, h.RegWrite, h.PointerWrite
	h.RegRead = func(offset uint8, val uint32) {
		u.regs[offset].reads++
		if rr != nil {
			rr(offset, val)
		}
	}
	h.RegWrite = func(offset uint8, val uint32) {
		u.regs[offset].record(val)
		if rw != nil {
			rw(offset, val)
		}
	}
	h.PointerWrite = func(which uint8, val uint32) {
		u.subregs[which].record(val)
		if pw != nil {
			pw(which, val)
		}
	}
	return h
}

// Reads returns the number of reads of a register.
func (u *RegUsage) Reads(offset uint8) int { return u.regs[offset].reads }

// Writes returns the number of writes of a register, and its distinct
// written values.
func (u *RegUsage) Writes(offset uint8) (int, []uint32) {
	s := &u.regs[offset]
	return s.writes, slices.Clone(s.values)
}

// SubWrites returns the number of writes of a pointer sub-register, and its
// distinct written values.
func (u *RegUsage) SubWrites(which uint8) (int, []uint32) {
	s := &u.subregs[which]
	return s.writes, slices.Clone(s.values)
}

func encodeStats(e *jx.Encoder, idx int, s *regStats, withReads bool) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("index", func(e *jx.Encoder) { e.Int(idx) })
		if withReads {
			e.Field("reads", func(e *jx.Encoder) { e.Int(s.reads) })
		}
		e.Field("writes", func(e *jx.Encoder) { e.Int(s.writes) })
		e.Field("values", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, v := range s.values {
					e.UInt32(v)
				}
			})
		})
	})
}

// WriteJSON writes a JSON report of the used registers and sub-registers.
func (u *RegUsage) WriteJSON(w io.Writer) error {
	var e jx.Encoder
	e.SetIdent(2)
	e.Obj(func(e *jx.Encoder) {
		e.Field("registers", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range u.regs {
					if s := &u.regs[i]; s.reads != 0 || s.writes != 0 {
						encodeStats(e, i, s, true)
					}
				}
			})
		})
		e.Field("subregisters", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range u.subregs {
					if s := &u.subregs[i]; s.writes != 0 {
						encodeStats(e, i, s, false)
					}
				}
			})
		})
	})
	_, err := e.WriteTo(w)
	return err
}
