// Package screen models the display timing a video chip runs against: total
// and visible geometry, frame period, beam position and vblank.
package screen

import (
	"fmt"
	"time"

	"zeusemu/emu/log"
	"zeusemu/hw/snapshot"
)

// Rect is a rectangle with inclusive bounds.
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

func (r Rect) Width() int  { return r.MaxX - r.MinX + 1 }
func (r Rect) Height() int { return r.MaxY - r.MinY + 1 }

// Empty reports whether the rectangle contains no pixel.
func (r Rect) Empty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Clock gives the current emulated time.
type Clock interface {
	Now() time.Duration
}

// Screen is a raster display whose beam position derives from the emulated
// time. The frame starts at scanline 0; vblank covers the scanlines outside
// of the visible area.
type Screen struct {
	clock Clock

	width, height int
	visible       Rect
	period        time.Duration
	frameStart    time.Duration
}

// New returns a screen of width x height total pixels, of which visible are
// displayed, refreshed every period.
func New(clock Clock, width, height int, visible Rect, period time.Duration) *Screen {
	s := &Screen{clock: clock}
	s.Configure(width, height, visible, period)
	return s
}

// Configure changes the screen geometry and refresh period. The beam is
// moved back to the top of the frame.
func (s *Screen) Configure(width, height int, visible Rect, period time.Duration) {
	if width <= 0 || height <= 0 || period <= 0 {
		panic(fmt.Sprintf("screen: invalid configuration %dx%d period %v", width, height, period))
	}
	s.width, s.height = width, height
	s.visible = visible
	s.period = period
	s.frameStart = s.clock.Now()

	log.ModScreen.InfoZ("configured").
		Int("width", width).
		Int("height", height).
		Stringer("visible", visible).
		Duration("period", period).
		End()
}

func (s *Screen) Width() int { return s.width }

func (s *Screen) Height() int { return s.height }

func (s *Screen) VisibleArea() Rect { return s.visible }

func (s *Screen) FramePeriod() time.Duration { return s.period }

func (s *Screen) RefreshHz() float64 { return float64(time.Second) / float64(s.period) }

func (s *Screen) scanTime() time.Duration { return max(s.period/time.Duration(s.height), 1) }

// frameTime returns the time elapsed since the start of the current frame.
func (s *Screen) frameTime() time.Duration { return (s.clock.Now() - s.frameStart) % s.period }

// Frame returns the number of frames started since the last Configure.
func (s *Screen) Frame() int64 { return int64((s.clock.Now() - s.frameStart) / s.period) }

// VPos returns the current scanline.
func (s *Screen) VPos() int {
	return min(int(s.frameTime()/s.scanTime()), s.height-1)
}

// HPos returns the current horizontal beam position.
func (s *Screen) HPos() int {
	scan := s.scanTime()
	pix := max(scan/time.Duration(s.width), 1)
	return min(int((s.frameTime()%scan)/pix), s.width-1)
}

// VBlank reports whether the beam is outside of the visible scanlines.
func (s *Screen) VBlank() bool {
	vpos := s.VPos()
	return vpos < s.visible.MinY || vpos > s.visible.MaxY
}

// untilLine returns the time before the beam next reaches the start of line.
// The result is always strictly positive.
func (s *Screen) untilLine(line int) time.Duration {
	d := time.Duration(line)*s.scanTime() - s.frameTime()
	for d <= 0 {
		d += s.period
	}
	return d
}

// TimeUntilVBlankStart returns the time before the next vblank begins.
func (s *Screen) TimeUntilVBlankStart() time.Duration {
	return s.untilLine(s.visible.MaxY + 1)
}

// TimeUntilVBlankEnd returns the time before the next vblank ends.
func (s *Screen) TimeUntilVBlankEnd() time.Duration {
	return s.untilLine(s.visible.MinY)
}

func (s *Screen) State() snapshot.Screen {
	return snapshot.Screen{
		Width:      s.width,
		Height:     s.height,
		Visible:    snapshot.Rect(s.visible),
		Period:     int64(s.period),
		FrameStart: int64(s.frameStart),
	}
}

// SetState restores a state captured by State. The clock must have been
// restored first.
func (s *Screen) SetState(st snapshot.Screen) error {
	if st.Width <= 0 || st.Height <= 0 || st.Period <= 0 {
		return fmt.Errorf("screen: invalid state %dx%d period %d", st.Width, st.Height, st.Period)
	}
	s.width, s.height = st.Width, st.Height
	s.visible = Rect(st.Visible)
	s.period = time.Duration(st.Period)
	s.frameStart = time.Duration(st.FrameStart)
	return nil
}
