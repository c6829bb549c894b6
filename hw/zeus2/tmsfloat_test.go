package zeus2

import "testing"

func TestFPToFloat(t *testing.T) {
	tests := []struct {
		in   uint32
		want float32
	}{
		{fpOne, 1},
		{fpZero, 0},
		{0x80123456, 0},
		{fpTwo, 2},
		{fpHalf, 0.5},
		{fpOneHalf, 1.5},
		{fpMinusOne, -1},
		{fpMinusTwo, -2},
		{0x02000000, 4},
		{0x07480000, 200},
		{0xfe400000, 0.375},
		{0x01c00000, -3},
	}
	for _, tt := range tests {
		if got := FPToFloat(tt.in); got != tt.want {
			t.Errorf("FPToFloat(%08x) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
