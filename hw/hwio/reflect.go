package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

type regInfo struct {
	offset uint32
	reg    *Reg32
}

type regTag struct {
	offset    uint32
	hasOffset bool
	bank      int
	reset     uint32
	romask    uint32
	flags     RWFlags
	rcb, pcb  string
	wcb       string
}

// parseTag parses the content of a "hwio" struct tag:
//
//	offset=0x12     Word offset within the register bank. There is no default
//	                value: if missing, the register is not part of the bank.
//	bank=NN         Ordinal bank number (defaults to zero).
//	reset=0x34      Value of the register after InitRegs.
//	romask=0xFF     Bits preserved across writes.
//	readonly        Writes are refused (and logged).
//	writeonly       Reads return 0 (and are logged).
//	rcb[=Name]      Bind ReadCb to method Name (default: Read<FIELD>).
//	pcb[=Name]      Bind PeekCb to method Name (default: Peek<FIELD>).
//	wcb[=Name]      Bind WriteCb to method Name (default: Write<FIELD>).
func parseTag(field, tag string) (regTag, error) {
	var rt regTag
	for _, opt := range strings.Split(tag, ",") {
		if opt == "" {
			continue
		}
		key, val, hasVal := strings.Cut(opt, "=")
		parseU32 := func() (uint32, error) {
			n, err := strconv.ParseUint(val, 0, 32)
			if err != nil {
				return 0, fmt.Errorf("hwio: field %s: invalid %s value %q: %w", field, key, val, err)
			}
			return uint32(n), nil
		}

		var err error
		switch key {
		case "offset":
			rt.offset, err = parseU32()
			rt.hasOffset = true
		case "bank":
			var n uint32
			n, err = parseU32()
			rt.bank = int(n)
		case "reset":
			rt.reset, err = parseU32()
		case "romask":
			rt.romask, err = parseU32()
		case "readonly":
			rt.flags |= ReadOnlyFlag
		case "writeonly":
			rt.flags |= WriteOnlyFlag
		case "rcb":
			rt.rcb = "Read" + strings.ToUpper(field)
			if hasVal {
				rt.rcb = val
			}
		case "pcb":
			rt.pcb = "Peek" + strings.ToUpper(field)
			if hasVal {
				rt.pcb = val
			}
		case "wcb":
			rt.wcb = "Write" + strings.ToUpper(field)
			if hasVal {
				rt.wcb = val
			}
		default:
			return rt, fmt.Errorf("hwio: field %s: unknown tag option %q", field, key)
		}
		if err != nil {
			return rt, err
		}
	}
	return rt, nil
}

var reg32Type = reflect.TypeFor[Reg32]()

// InitRegs initializes all the Reg32 fields of the struct pointed to by bank,
// according to their "hwio" struct tags: name, reset value, flags and
// callbacks bound to methods of bank.
func InitRegs(bank any) error {
	val := reflect.ValueOf(bank)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: InitRegs wants a pointer to struct, got %T", bank)
	}
	sv := val.Elem()
	st := sv.Type()

	for i := range st.NumField() {
		f := st.Field(i)
		tag, ok := f.Tag.Lookup("hwio")
		if !ok || f.Type != reg32Type {
			continue
		}
		rt, err := parseTag(f.Name, tag)
		if err != nil {
			return err
		}

		reg := sv.Field(i).Addr().Interface().(*Reg32)
		reg.Name = f.Name
		reg.Value = rt.reset
		reg.RoMask = rt.romask
		reg.Flags = rt.flags

		if rt.rcb != "" {
			if err := bindMethod(val, rt.rcb, &reg.ReadCb); err != nil {
				return err
			}
		}
		if rt.pcb != "" {
			if err := bindMethod(val, rt.pcb, &reg.PeekCb); err != nil {
				return err
			}
		}
		if rt.wcb != "" {
			if err := bindMethod(val, rt.wcb, &reg.WriteCb); err != nil {
				return err
			}
		}
	}
	return nil
}

func MustInitRegs(bank any) {
	if err := InitRegs(bank); err != nil {
		panic(err)
	}
}

func bindMethod[F any](bank reflect.Value, name string, dst *F) error {
	m := bank.MethodByName(name)
	if !m.IsValid() {
		return fmt.Errorf("hwio: %s has no method %s", bank.Type(), name)
	}
	fn, ok := m.Interface().(F)
	if !ok {
		return fmt.Errorf("hwio: method %s has signature %s, want %s",
			name, m.Type(), reflect.TypeFor[F]())
	}
	*dst = fn
	return nil
}

// bankGetRegs returns the registers of the given bank number, with their
// offsets.
func bankGetRegs(bank any, bankNum int) ([]regInfo, error) {
	val := reflect.ValueOf(bank)
	if val.Kind() != reflect.Pointer || val.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("hwio: register bank must be a pointer to struct, got %T", bank)
	}
	sv := val.Elem()
	st := sv.Type()

	var regs []regInfo
	for i := range st.NumField() {
		f := st.Field(i)
		tag, ok := f.Tag.Lookup("hwio")
		if !ok || f.Type != reg32Type {
			continue
		}
		rt, err := parseTag(f.Name, tag)
		if err != nil {
			return nil, err
		}
		if !rt.hasOffset || rt.bank != bankNum {
			continue
		}
		regs = append(regs, regInfo{
			offset: rt.offset,
			reg:    sv.Field(i).Addr().Interface().(*Reg32),
		})
	}
	return regs, nil
}
