package hwio

import "zeusemu/emu/log"

// Line is an interrupt (or any other) output signal. The device drives it with
// Assert and Clear; the consumer observes edges through OnChange.
type Line struct {
	Name     string
	OnChange func(asserted bool)

	asserted bool
}

func (l *Line) Assert() { l.Set(true) }
func (l *Line) Clear()  { l.Set(false) }

func (l *Line) Set(asserted bool) {
	if l.asserted == asserted {
		return
	}
	l.asserted = asserted
	log.ModHwIo.DebugZ("line changed").
		String("name", l.Name).
		Bool("asserted", asserted).
		End()
	if l.OnChange != nil {
		l.OnChange(asserted)
	}
}

func (l *Line) Asserted() bool { return l.asserted }
