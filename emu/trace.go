package emu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"zeusemu/emu/log"
	"zeusemu/hw/zeus2"
)

// Bus trace format, one operation per line, '#' starts a comment. Numbers
// are hexadecimal, with an optional 0x prefix.
//
//	w ADDR VAL                  bus write
//	r ADDR [EXPECT]             bus read, checked against EXPECT if given
//	fifo W0 W1 ...              writes to the zeus2 FIFO register
//	wave0 EXPADDR W0 W1         bank 0 block load
//	wave1 EXPADDR W0 W1 W2      bank 1 block load
//	wait DURATION               run for DURATION (Go syntax: 16ms, 500us)
//	frame NAME                  render the displayed frame to the sink

const fifoAddr = ZeusAddr + 0x08

type TraceOp struct {
	Line  int
	Cmd   string
	Addr  uint32
	Words []uint32
	Wait  time.Duration
	Name  string
}

type Trace struct {
	Name string
	Ops  []TraceOp
}

// TraceError is an error at a line of a trace.
type TraceError struct {
	Trace string
	Line  int
	Err   error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Trace, e.Line, e.Err)
}

func (e *TraceError) Unwrap() error { return e.Err }

func parseHex(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return uint32(n), nil
}

func parseHexes(args []string) ([]uint32, error) {
	words := make([]uint32, len(args))
	for i, a := range args {
		var err error
		if words[i], err = parseHex(a); err != nil {
			return nil, err
		}
	}
	return words, nil
}

func parseTraceOp(fields []string) (TraceOp, error) {
	op := TraceOp{Cmd: fields[0]}
	args := fields[1:]

	nargs := func(minArgs, maxArgs int) error {
		if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
			return fmt.Errorf("%s: wrong number of arguments (%d)", op.Cmd, len(args))
		}
		return nil
	}

	var err error
	switch op.Cmd {
	case "w":
		if err = nargs(2, 2); err == nil {
			op.Words, err = parseHexes(args)
			if err == nil {
				op.Addr, op.Words = op.Words[0], op.Words[1:]
			}
		}
	case "r":
		if err = nargs(1, 2); err == nil {
			op.Words, err = parseHexes(args)
			if err == nil {
				op.Addr, op.Words = op.Words[0], op.Words[1:]
			}
		}
	case "fifo":
		if err = nargs(1, -1); err == nil {
			op.Words, err = parseHexes(args)
		}
	case "wave0", "wave1":
		n := 2
		if op.Cmd == "wave1" {
			n = 3
		}
		if err = nargs(n+1, n+1); err == nil {
			op.Words, err = parseHexes(args)
			if err == nil {
				op.Addr, op.Words = op.Words[0], op.Words[1:]
			}
		}
	case "wait":
		if err = nargs(1, 1); err == nil {
			op.Wait, err = time.ParseDuration(args[0])
			if err == nil && op.Wait < 0 {
				err = fmt.Errorf("negative wait %v", op.Wait)
			}
		}
	case "frame":
		if err = nargs(1, 1); err == nil {
			op.Name = args[0]
			if strings.ContainsAny(op.Name, `/\`) {
				err = fmt.Errorf("invalid frame name %q", op.Name)
			}
		}
	default:
		err = fmt.Errorf("unknown command %q", op.Cmd)
	}
	return op, err
}

// ParseTrace parses a bus trace. name is used in error messages.
func ParseTrace(name string, r io.Reader) (*Trace, error) {
	t := &Trace{Name: name}
	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		op, err := parseTraceOp(fields)
		if err != nil {
			return nil, &TraceError{Trace: name, Line: lineno, Err: err}
		}
		op.Line = lineno
		t.Ops = append(t.Ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

// LoadTrace parses the trace file at path.
func LoadTrace(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTrace(filepath.Base(path), f)
}

// ErrReadMismatch is returned when a trace read gets an unexpected value.
var ErrReadMismatch = errors.New("read mismatch")

// RunTrace replays t on the machine, then runs it for the configured
// run-ahead time. Frames are written to sink, which may be nil. A fatal chip
// error stops the replay and is returned as a *TraceError wrapping the
// *zeus2.FatalError.
func (m *Machine) RunTrace(t *Trace, sink FrameSink) (err error) {
	var cur *TraceOp
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*zeus2.FatalError)
			if !ok || cur == nil {
				panic(r)
			}
			log.ModEmu.ErrorZ("fatal chip error").
				String("trace", t.Name).
				Int("line", cur.Line).
				Error("err", fe).
				End()
			err = &TraceError{Trace: t.Name, Line: cur.Line, Err: fe}
		}
	}()

	for i := range t.Ops {
		cur = &t.Ops[i]
		if err := m.runTraceOp(cur, sink); err != nil {
			return &TraceError{Trace: t.Name, Line: cur.Line, Err: err}
		}
	}
	cur = nil
	m.Advance(m.cfg.Emulation.RunAhead.Duration)
	return nil
}

func (m *Machine) runTraceOp(op *TraceOp, sink FrameSink) error {
	switch op.Cmd {
	case "w":
		m.Write32(op.Addr, op.Words[0])
	case "r":
		val := m.Read32(op.Addr, false)
		if len(op.Words) != 0 && val != op.Words[0] {
			return fmt.Errorf("%w at %08X: got %08X, want %08X", ErrReadMismatch, op.Addr, val, op.Words[0])
		}
	case "fifo":
		for _, w := range op.Words {
			m.Write32(fifoAddr, w)
		}
	case "wave0", "wave1":
		bank := m.Zeus.Bank0
		if op.Cmd == "wave1" {
			bank = m.Zeus.Bank1
		}
		blk := bank.Block(op.Addr)
		for i, w := range op.Words {
			bank.SetWord(blk, i, w)
		}
	case "wait":
		m.Advance(op.Wait)
	case "frame":
		if sink == nil {
			log.ModEmu.DebugZ("frame skipped").
				String("name", op.Name).
				End()
			return nil
		}
		return sink.WriteFrame(op.Name, m.Frame())
	}
	return nil
}
