package hwio

import (
	"fmt"
	"slices"

	"zeusemu/emu/log"
)

// log unmapped accesses (useful when bringing up a new memory map)
const logUnmapped = true

// BankIO32 is implemented by anything that can be mapped on a 32-bit bus:
// registers, whole devices. Addresses are word addresses.
type BankIO32 interface {
	// Read32 reads a word from the given address. If peek is true, the read
	// shouldn't have any side effects (debugging/tracing).
	Read32(addr uint32, peek bool) uint32
	Write32(addr uint32, val uint32)
}

type mapping struct {
	begin, end uint32 // inclusive
	io         BankIO32
}

// Table is a 32-bit bus on which devices are mapped over address ranges.
// Devices receive the address relative to the beginning of their range.
type Table struct {
	Name     string
	Unmapped BankIO32 // optional open-bus handler

	maps []mapping // sorted by begin, non overlapping
}

func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) Reset() {
	t.maps = t.maps[:0]
}

// Map maps io over [begin, begin+size-1]. Overlapping an existing mapping is
// a programming error.
func (t *Table) Map(begin, size uint32, io BankIO32) {
	if size == 0 {
		panic(fmt.Errorf("hwio: zero-sized mapping at %08x on %s", begin, t.Name))
	}
	end := begin + size - 1
	idx, _ := slices.BinarySearchFunc(t.maps, begin, func(m mapping, addr uint32) int {
		switch {
		case m.begin < addr:
			return -1
		case m.begin > addr:
			return 1
		}
		return 0
	})
	if idx > 0 && t.maps[idx-1].end >= begin {
		panic(fmt.Errorf("hwio: mapping %08x-%08x overlaps %08x-%08x on %s",
			begin, end, t.maps[idx-1].begin, t.maps[idx-1].end, t.Name))
	}
	if idx < len(t.maps) && t.maps[idx].begin <= end {
		panic(fmt.Errorf("hwio: mapping %08x-%08x overlaps %08x-%08x on %s",
			begin, end, t.maps[idx].begin, t.maps[idx].end, t.Name))
	}

	log.ModHwIo.DebugZ("mapping device").
		Hex32("begin", begin).
		Hex32("end", end).
		String("bus", t.Name).
		End()

	t.maps = slices.Insert(t.maps, idx, mapping{begin: begin, end: end, io: io})
}

func (t *Table) MapReg32(addr uint32, reg *Reg32) {
	t.Map(addr, 1, reg)
}

// MapBank maps all the registers of a register bank (see InitRegs) relative
// to addr.
func (t *Table) MapBank(addr uint32, bank any, bankNum int) {
	regs, err := bankGetRegs(bank, bankNum)
	if err != nil {
		panic(err)
	}
	for _, reg := range regs {
		t.MapReg32(addr+reg.offset, reg.reg)
	}
}

// Unmap removes all mappings fully contained in [begin, end].
func (t *Table) Unmap(begin, end uint32) {
	t.maps = slices.DeleteFunc(t.maps, func(m mapping) bool {
		return m.begin >= begin && m.end <= end
	})
}

func (t *Table) search(addr uint32) *mapping {
	idx, found := slices.BinarySearchFunc(t.maps, addr, func(m mapping, addr uint32) int {
		switch {
		case m.end < addr:
			return -1
		case m.begin > addr:
			return 1
		}
		return 0
	})
	if !found {
		return nil
	}
	return &t.maps[idx]
}

// Read32 forwards the read to the device mapped at addr. Accesses to unmapped
// addresses go to the Unmapped handler, if any.
func (t *Table) Read32(addr uint32, peek bool) uint32 {
	m := t.search(addr)
	if m == nil {
		if logUnmapped && !peek {
			log.ModHwIo.WarnZ("unmapped Read32").
				String("name", t.Name).
				Hex32("addr", addr).
				End()
		}
		if t.Unmapped != nil {
			return t.Unmapped.Read32(addr, peek)
		}
		return 0
	}
	return m.io.Read32(addr-m.begin, peek)
}

// Peek32 is a convenience function.
func (t *Table) Peek32(addr uint32) uint32 {
	return t.Read32(addr, true)
}

func (t *Table) Write32(addr uint32, val uint32) {
	m := t.search(addr)
	if m == nil {
		if logUnmapped {
			log.ModHwIo.WarnZ("unmapped Write32").
				String("name", t.Name).
				Hex32("addr", addr).
				Hex32("val", val).
				End()
		}
		if t.Unmapped != nil {
			t.Unmapped.Write32(addr, val)
		}
		return
	}
	m.io.Write32(addr-m.begin, val)
}
