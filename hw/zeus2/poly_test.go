package zeus2

import (
	"testing"

	"zeusemu/hw/screen"
)

func TestRoundCoordinate(t *testing.T) {
	tests := []struct {
		v    float32
		want int
	}{
		{0, 0},
		{0.5, 0},
		{0.51, 1},
		{1.5, 1},
		{1.75, 2},
		{-0.5, -1},
		{-0.25, 0},
		{-1.75, -2},
	}
	for _, tt := range tests {
		if got := roundCoordinate(tt.v); got != tt.want {
			t.Errorf("roundCoordinate(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

// quadAt returns a square whose vertices have the given depths.
func quadAt(z0, z1, z2, z3 float32) []vertex {
	return []vertex{
		{x: 0, y: 0, p: [numParams]float32{z0}},
		{x: 10, y: 0, p: [numParams]float32{z1}},
		{x: 10, y: 10, p: [numParams]float32{z2}},
		{x: 0, y: 10, p: [numParams]float32{z3}},
	}
}

func TestZClip(t *testing.T) {
	tests := []struct {
		name  string
		verts []vertex
		want  int
	}{
		{"visible", quadAt(2, 2, 2, 2), 4},
		{"on plane", quadAt(1, 1, 1, 1), 4},
		{"hidden", quadAt(0, 0, 0, 0), 0},
		{"one corner", quadAt(0, 2, 2, 2), 5},
		{"one edge", quadAt(0, 0, 2, 2), 4},
		{"three corners", quadAt(0, 0, 0, 2), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := zclipIfLess(tt.verts, nil, 1)
			if len(out) != tt.want {
				t.Fatalf("got %d vertices, want %d", len(out), tt.want)
			}
			for i, v := range out {
				if v.p[0] < 1 {
					t.Errorf("vertex %d: depth %v in front of the plane", i, v.p[0])
				}
			}
		})
	}

	// Intersections of the edges around the clipped corner.
	out := zclipIfLess(quadAt(0, 2, 2, 2), nil, 1)
	if v := out[0]; v.x != 0 || v.y != 5 || v.p[0] != 1 {
		t.Errorf("vertex 0 = %+v, want (0, 5) at depth 1", v)
	}
	if v := out[1]; v.x != 5 || v.y != 0 || v.p[0] != 1 {
		t.Errorf("vertex 1 = %+v, want (5, 0) at depth 1", v)
	}
}

func TestRenderPolygon(t *testing.T) {
	// Depth is x at each vertex.
	verts := []vertex{
		{x: 0, y: 0, p: [numParams]float32{0}},
		{x: 10, y: 0, p: [numParams]float32{10}},
		{x: 10, y: 10, p: [numParams]float32{10}},
		{x: 0, y: 10, p: [numParams]float32{0}},
	}

	tests := []struct {
		name      string
		clip      screen.Rect
		pixels    int
		rows      int
		startX    int
		firstZ    float32
		firstLine int
	}{
		{"unclipped", screen.Rect{MinX: 0, MinY: 0, MaxX: 511, MaxY: 399}, 100, 10, 0, 0.5, 0},
		{"clipped", screen.Rect{MinX: 3, MinY: 5, MaxX: 7, MaxY: 9}, 25, 5, 3, 3.5, 5},
		{"outside", screen.Rect{MinX: 20, MinY: 0, MaxX: 30, MaxY: 399}, 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pixels, rows := 0, 0
			renderPolygon(tt.clip, verts, func(y int, e *extent) {
				if rows == 0 {
					if y != tt.firstLine {
						t.Errorf("first line = %d, want %d", y, tt.firstLine)
					}
					if e.startX != tt.startX || e.param[0].start != tt.firstZ || e.param[0].dpdx != 1 {
						t.Errorf("extent = %+v, want start %d at depth %v step 1", *e, tt.startX, tt.firstZ)
					}
				}
				rows++
				pixels += e.stopX - e.startX
			})
			if pixels != tt.pixels || rows != tt.rows {
				t.Errorf("got %d pixels on %d rows, want %d on %d", pixels, rows, tt.pixels, tt.rows)
			}
		})
	}
}

func TestRenderTriangle(t *testing.T) {
	verts := []vertex{
		{x: 0, y: 0},
		{x: 8, y: 8},
		{x: 0, y: 8},
	}
	lines := 0
	renderPolygon(screen.Rect{MaxX: 100, MaxY: 100}, verts, func(y int, e *extent) {
		lines++
		// The diagonal crosses line y at x = y + 0.5, which excludes the
		// pixel centered on it.
		if e.startX != 0 || e.stopX != y {
			t.Errorf("line %d: span [%d, %d), want [0, %d)", y, e.startX, e.stopX, y)
		}
	})
	// Line 0 is empty.
	if lines != 7 {
		t.Errorf("got %d lines, want 7", lines)
	}
}
