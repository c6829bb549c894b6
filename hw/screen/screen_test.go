package screen

import (
	"testing"
	"time"
)

type fakeClock struct{ now time.Duration }

func (c *fakeClock) Now() time.Duration { return c.now }

// 10 scanlines of 100ns, lines 2 to 7 visible.
func newTestScreen(c *fakeClock) *Screen {
	return New(c, 20, 10, Rect{0, 2, 19, 7}, time.Microsecond)
}

func TestScreenBeam(t *testing.T) {
	c := &fakeClock{}
	s := newTestScreen(c)

	tests := []struct {
		now    time.Duration
		vpos   int
		hpos   int
		vblank bool
	}{
		{0, 0, 0, true},
		{199, 1, 19, true},
		{200, 2, 0, false},
		{755, 7, 11, false},
		{800, 8, 0, true},
		{1000, 0, 0, true},
		{1250, 2, 10, false},
	}
	for _, tt := range tests {
		c.now = tt.now
		if got := s.VPos(); got != tt.vpos {
			t.Errorf("at %v: VPos() = %d, want %d", tt.now, got, tt.vpos)
		}
		if got := s.HPos(); got != tt.hpos {
			t.Errorf("at %v: HPos() = %d, want %d", tt.now, got, tt.hpos)
		}
		if got := s.VBlank(); got != tt.vblank {
			t.Errorf("at %v: VBlank() = %v, want %v", tt.now, got, tt.vblank)
		}
	}
}

func TestScreenTimeUntil(t *testing.T) {
	c := &fakeClock{}
	s := newTestScreen(c)

	tests := []struct {
		now        time.Duration
		start, end time.Duration
	}{
		{0, 800, 200},
		{200, 600, 1000},
		{800, 1000, 400},
		{950, 850, 250},
	}
	for _, tt := range tests {
		c.now = tt.now
		if got := s.TimeUntilVBlankStart(); got != tt.start {
			t.Errorf("at %v: TimeUntilVBlankStart() = %v, want %v", tt.now, got, tt.start)
		}
		if got := s.TimeUntilVBlankEnd(); got != tt.end {
			t.Errorf("at %v: TimeUntilVBlankEnd() = %v, want %v", tt.now, got, tt.end)
		}
	}
}

func TestScreenConfigure(t *testing.T) {
	c := &fakeClock{now: 450}
	s := newTestScreen(c)
	c.now = 700

	s.Configure(10, 5, Rect{0, 0, 9, 3}, 500*time.Nanosecond)
	if s.VPos() != 0 {
		t.Errorf("VPos() after Configure = %d, want 0", s.VPos())
	}
	if got := s.VisibleArea(); got != (Rect{0, 0, 9, 3}) {
		t.Errorf("VisibleArea() = %v", got)
	}
	if got := s.RefreshHz(); got != 2e6 {
		t.Errorf("RefreshHz() = %v, want 2e6", got)
	}
	c.now = 1200
	if got := s.Frame(); got != 1 {
		t.Errorf("Frame() = %d, want 1", got)
	}
}

func TestRect(t *testing.T) {
	r := Rect{0, 0, 511, 399}
	if r.Width() != 512 || r.Height() != 400 || r.Empty() {
		t.Errorf("%v: Width=%d Height=%d Empty=%v", r, r.Width(), r.Height(), r.Empty())
	}
	if !(Rect{5, 0, 4, 0}).Empty() {
		t.Errorf("inverted rect not empty")
	}
}

func TestScreenState(t *testing.T) {
	c := &fakeClock{now: 300}
	s := newTestScreen(c)
	s.Configure(10, 5, Rect{0, 1, 9, 3}, 500*time.Nanosecond)
	c.now = 1000
	st := s.State()

	c2 := &fakeClock{now: 1000}
	s2 := newTestScreen(c2)
	if err := s2.SetState(st); err != nil {
		t.Fatal(err)
	}
	if s2.VPos() != s.VPos() || s2.HPos() != s.HPos() || s2.VisibleArea() != s.VisibleArea() {
		t.Errorf("restored beam at %d,%d %v, want %d,%d %v",
			s2.HPos(), s2.VPos(), s2.VisibleArea(), s.HPos(), s.VPos(), s.VisibleArea())
	}
	if s2.State() != st {
		t.Errorf("State() = %+v, want %+v", s2.State(), st)
	}

	st.Period = 0
	if err := s2.SetState(st); err == nil {
		t.Errorf("SetState accepted a null period")
	}
}
