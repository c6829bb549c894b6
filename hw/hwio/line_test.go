package hwio

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLine(t *testing.T) {
	var edges []bool
	l := Line{Name: "irq", OnChange: func(asserted bool) { edges = append(edges, asserted) }}

	l.Assert()
	l.Assert()
	if !l.Asserted() {
		t.Errorf("Asserted() = false after Assert")
	}
	l.Clear()
	l.Set(false)
	l.Set(true)

	want := []bool{true, false, true}
	if diff := cmp.Diff(want, edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}
