package emu

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-faster/jx"

	"zeusemu/emu/log"
	"zeusemu/hw/snapshot"
)

// State captures the machine state.
func (m *Machine) State() *snapshot.Machine {
	return &snapshot.Machine{
		Version: snapshot.Version,
		Now:     int64(m.Sched.Now()),
		Screen:  m.Screen.State(),
		Zeus2:   m.Zeus.State(),
		IRQ:     snapshot.Line{Asserted: m.Zeus.IRQ.Asserted(), Count: m.irqs},
		VBlank:  snapshot.Line{Asserted: m.Zeus.VBlank.Asserted(), Count: m.vblanks},
	}
}

// SetState restores a state captured by State.
func (m *Machine) SetState(st *snapshot.Machine) error {
	if st.Version != snapshot.Version {
		return fmt.Errorf("snapshot: unsupported version %d", st.Version)
	}
	if st.Zeus2 == nil {
		return fmt.Errorf("snapshot: missing zeus2 state")
	}

	m.Sched.Restore(time.Duration(st.Now))
	if err := m.Screen.SetState(st.Screen); err != nil {
		return err
	}
	if err := m.Zeus.SetState(st.Zeus2); err != nil {
		return err
	}
	m.Zeus.IRQ.Set(st.IRQ.Asserted)
	m.Zeus.VBlank.Set(st.VBlank.Asserted)
	m.irqs, m.vblanks = st.IRQ.Count, st.VBlank.Count

	log.ModEmu.InfoZ("state restored").
		Duration("now", m.Sched.Now()).
		End()
	return nil
}

// SaveSnapshot encodes the machine state as JSON, wave memory as base64.
func (m *Machine) SaveSnapshot() ([]byte, error) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	encodeMachine(e, m.State())
	return append([]byte(nil), e.Bytes()...), nil
}

// LoadSnapshot restores a state encoded by SaveSnapshot.
func (m *Machine) LoadSnapshot(data []byte) error {
	st, err := decodeMachine(jx.DecodeBytes(data))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return m.SetState(st)
}

func wordsToBytes(words []uint32) []byte {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	return buf
}

func bytesToWords(buf []byte) ([]uint32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("%d bytes is not a whole number of words", len(buf))
	}
	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return words, nil
}

func encodeRect(e *jx.Encoder, r snapshot.Rect) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("min_x", func(e *jx.Encoder) { e.Int(r.MinX) })
		e.Field("min_y", func(e *jx.Encoder) { e.Int(r.MinY) })
		e.Field("max_x", func(e *jx.Encoder) { e.Int(r.MaxX) })
		e.Field("max_y", func(e *jx.Encoder) { e.Int(r.MaxY) })
	})
}

func encodeLine(e *jx.Encoder, l snapshot.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("asserted", func(e *jx.Encoder) { e.Bool(l.Asserted) })
		e.Field("count", func(e *jx.Encoder) { e.Int(l.Count) })
	})
}

func encodeU32s(e *jx.Encoder, vals []uint32) {
	e.Arr(func(e *jx.Encoder) {
		for _, v := range vals {
			e.UInt32(v)
		}
	})
}

func encodeF32s(e *jx.Encoder, vals []float32) {
	e.Arr(func(e *jx.Encoder) {
		for _, v := range vals {
			e.Float32(v)
		}
	})
}

func encodeMachine(e *jx.Encoder, st *snapshot.Machine) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("version", func(e *jx.Encoder) { e.Int(st.Version) })
		e.Field("now", func(e *jx.Encoder) { e.Int64(st.Now) })
		e.Field("screen", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("width", func(e *jx.Encoder) { e.Int(st.Screen.Width) })
				e.Field("height", func(e *jx.Encoder) { e.Int(st.Screen.Height) })
				e.Field("visible", func(e *jx.Encoder) { encodeRect(e, st.Screen.Visible) })
				e.Field("period", func(e *jx.Encoder) { e.Int64(st.Screen.Period) })
				e.Field("frame_start", func(e *jx.Encoder) { e.Int64(st.Screen.FrameStart) })
			})
		})
		e.Field("irq", func(e *jx.Encoder) { encodeLine(e, st.IRQ) })
		e.Field("vblank", func(e *jx.Encoder) { encodeLine(e, st.VBlank) })
		e.Field("zeus2", func(e *jx.Encoder) { encodeZeus2(e, st.Zeus2) })
	})
}

func encodeZeus2(e *jx.Encoder, z *snapshot.Zeus2) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("regs", func(e *jx.Encoder) { encodeU32s(e, z.Regs[:]) })
		e.Field("bank0", func(e *jx.Encoder) { e.Base64(wordsToBytes(z.Bank0)) })
		e.Field("bank1", func(e *jx.Encoder) { e.Base64(wordsToBytes(z.Bank1)) })
		e.Field("fifo", func(e *jx.Encoder) { encodeU32s(e, z.Fifo[:]) })
		e.Field("fifo_words", func(e *jx.Encoder) { e.Int(z.FifoWords) })
		e.Field("matrix", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, row := range z.Matrix {
					encodeF32s(e, row[:])
				}
			})
		})
		e.Field("point", func(e *jx.Encoder) { encodeF32s(e, z.Point[:]) })
		e.Field("point2", func(e *jx.Encoder) { encodeF32s(e, z.Point2[:]) })
		e.Field("zbase", func(e *jx.Encoder) { e.Float32(z.ZBase) })
		e.Field("yscale", func(e *jx.Encoder) { e.Int(z.YScale) })
		e.Field("clip", func(e *jx.Encoder) { encodeRect(e, z.Clip) })
		e.Field("tex_base", func(e *jx.Encoder) { e.UInt32(z.TexBase) })
		e.Field("render_base", func(e *jx.Encoder) { e.UInt32(z.RenderBase) })
		e.Field("quad_size", func(e *jx.Encoder) { e.Int(z.QuadSize) })
		e.Field("tex_width", func(e *jx.Encoder) { e.Int(z.TexWidth) })
		e.Field("log_fifo", func(e *jx.Encoder) { e.Bool(z.LogFifo) })
		e.Field("timers", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("fifo", func(e *jx.Encoder) { e.Int64(int64(z.FifoTimer)) })
				e.Field("vblank", func(e *jx.Encoder) { e.Int64(int64(z.VBlankTimer)) })
				e.Field("vblank_off", func(e *jx.Encoder) { e.Int64(int64(z.VBlankOffTimer)) })
			})
		})
	})
}

func decodeRect(d *jx.Decoder, r *snapshot.Rect) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "min_x":
			r.MinX, err = d.Int()
		case "min_y":
			r.MinY, err = d.Int()
		case "max_x":
			r.MaxX, err = d.Int()
		case "max_y":
			r.MaxY, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decodeLine(d *jx.Decoder, l *snapshot.Line) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "asserted":
			l.Asserted, err = d.Bool()
		case "count":
			l.Count, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
}

// decodeU32s decodes an array of exactly len(dst) values.
func decodeU32s(d *jx.Decoder, dst []uint32) error {
	n := 0
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.UInt32()
		if err != nil {
			return err
		}
		if n >= len(dst) {
			return fmt.Errorf("more than %d values", len(dst))
		}
		dst[n] = v
		n++
		return nil
	})
	if err == nil && n != len(dst) {
		err = fmt.Errorf("got %d values, want %d", n, len(dst))
	}
	return err
}

func decodeF32s(d *jx.Decoder, dst []float32) error {
	n := 0
	err := d.Arr(func(d *jx.Decoder) error {
		v, err := d.Float32()
		if err != nil {
			return err
		}
		if n >= len(dst) {
			return fmt.Errorf("more than %d values", len(dst))
		}
		dst[n] = v
		n++
		return nil
	})
	if err == nil && n != len(dst) {
		err = fmt.Errorf("got %d values, want %d", n, len(dst))
	}
	return err
}

func decodeBank(d *jx.Decoder) ([]uint32, error) {
	buf, err := d.Base64()
	if err != nil {
		return nil, err
	}
	return bytesToWords(buf)
}

func decodeMachine(d *jx.Decoder) (*snapshot.Machine, error) {
	var st snapshot.Machine
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			st.Version, err = d.Int()
		case "now":
			st.Now, err = d.Int64()
		case "screen":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "width":
					st.Screen.Width, err = d.Int()
				case "height":
					st.Screen.Height, err = d.Int()
				case "visible":
					err = decodeRect(d, &st.Screen.Visible)
				case "period":
					st.Screen.Period, err = d.Int64()
				case "frame_start":
					st.Screen.FrameStart, err = d.Int64()
				default:
					err = d.Skip()
				}
				return err
			})
		case "irq":
			err = decodeLine(d, &st.IRQ)
		case "vblank":
			err = decodeLine(d, &st.VBlank)
		case "zeus2":
			st.Zeus2 = new(snapshot.Zeus2)
			err = decodeZeus2(d, st.Zeus2)
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func decodeTimer(d *jx.Decoder, t *snapshot.Timer) error {
	v, err := d.Int64()
	*t = snapshot.Timer(v)
	return err
}

func decodeZeus2(d *jx.Decoder, z *snapshot.Zeus2) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "regs":
			err = decodeU32s(d, z.Regs[:])
		case "bank0":
			z.Bank0, err = decodeBank(d)
		case "bank1":
			z.Bank1, err = decodeBank(d)
		case "fifo":
			err = decodeU32s(d, z.Fifo[:])
		case "fifo_words":
			z.FifoWords, err = d.Int()
		case "matrix":
			row := 0
			err = d.Arr(func(d *jx.Decoder) error {
				if row >= len(z.Matrix) {
					return fmt.Errorf("more than %d rows", len(z.Matrix))
				}
				row++
				return decodeF32s(d, z.Matrix[row-1][:])
			})
		case "point":
			err = decodeF32s(d, z.Point[:])
		case "point2":
			err = decodeF32s(d, z.Point2[:])
		case "zbase":
			z.ZBase, err = d.Float32()
		case "yscale":
			z.YScale, err = d.Int()
		case "clip":
			err = decodeRect(d, &z.Clip)
		case "tex_base":
			z.TexBase, err = d.UInt32()
		case "render_base":
			z.RenderBase, err = d.UInt32()
		case "quad_size":
			z.QuadSize, err = d.Int()
		case "tex_width":
			z.TexWidth, err = d.Int()
		case "log_fifo":
			z.LogFifo, err = d.Bool()
		case "timers":
			err = d.Obj(func(d *jx.Decoder, key string) error {
				switch key {
				case "fifo":
					return decodeTimer(d, &z.FifoTimer)
				case "vblank":
					return decodeTimer(d, &z.VBlankTimer)
				case "vblank_off":
					return decodeTimer(d, &z.VBlankOffTimer)
				}
				return d.Skip()
			})
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
}
