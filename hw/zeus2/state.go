package zeus2

import (
	"fmt"
	"time"

	"zeusemu/hw/sched"
	"zeusemu/hw/screen"
	"zeusemu/hw/snapshot"
)

func timerState(t *sched.Timer) snapshot.Timer {
	if !t.Armed() {
		return -1
	}
	return snapshot.Timer(t.Remaining())
}

func setTimerState(t *sched.Timer, st snapshot.Timer) {
	if st < 0 {
		t.Cancel()
		return
	}
	t.Adjust(time.Duration(st))
}

func rectState(r screen.Rect) snapshot.Rect {
	return snapshot.Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

func rectFromState(r snapshot.Rect) screen.Rect {
	return screen.Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

// State captures all the mutable state of the chip, wave memory included.
func (z *Zeus2) State() *snapshot.Zeus2 {
	return &snapshot.Zeus2{
		Regs:           z.regs,
		Bank0:          append([]uint32(nil), z.Bank0.Data...),
		Bank1:          append([]uint32(nil), z.Bank1.Data...),
		Fifo:           z.fifo,
		FifoWords:      z.fifoWords,
		Matrix:         z.matrix,
		Point:          z.point,
		Point2:         z.point2,
		ZBase:          z.zbase,
		YScale:         z.yScale,
		Clip:           rectState(z.clip),
		TexBase:        z.texBase,
		RenderBase:     z.renderBase,
		QuadSize:       z.quadSize,
		TexWidth:       z.texWidth,
		LogFifo:        z.logFifo,
		FifoTimer:      timerState(z.fifoTimer),
		VBlankTimer:    timerState(z.vblankTimer),
		VBlankOffTimer: timerState(z.vblankOffTimer),
	}
}

// SetState restores a state captured by State. Registers are restored
// without running their side effects.
func (z *Zeus2) SetState(st *snapshot.Zeus2) error {
	if len(st.Bank0) != len(z.Bank0.Data) || len(st.Bank1) != len(z.Bank1.Data) {
		return fmt.Errorf("zeus2: wave memory size mismatch (bank0 %d/%d, bank1 %d/%d words)",
			len(st.Bank0), len(z.Bank0.Data), len(st.Bank1), len(z.Bank1.Data))
	}
	if st.FifoWords < 0 || st.FifoWords > len(z.fifo) {
		return fmt.Errorf("zeus2: invalid FIFO word count %d", st.FifoWords)
	}
	if st.QuadSize != 10 && st.QuadSize != 14 {
		return fmt.Errorf("zeus2: invalid quad size %d", st.QuadSize)
	}

	z.regs = st.Regs
	copy(z.Bank0.Data, st.Bank0)
	copy(z.Bank1.Data, st.Bank1)
	z.fifo = st.Fifo
	z.fifoWords = st.FifoWords
	z.matrix = st.Matrix
	z.point = st.Point
	z.point2 = st.Point2
	z.zbase = st.ZBase
	z.yScale = st.YScale
	z.clip = rectFromState(st.Clip)
	z.texBase = st.TexBase
	z.renderBase = st.RenderBase
	z.quadSize = st.QuadSize
	z.texWidth = st.TexWidth
	z.logFifo = st.LogFifo

	setTimerState(z.fifoTimer, st.FifoTimer)
	setTimerState(z.vblankTimer, st.VBlankTimer)
	setTimerState(z.vblankOffTimer, st.VBlankOffTimer)
	return nil
}
