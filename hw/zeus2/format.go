package zeus2

import (
	"fmt"
	"strings"
)

func fmtWords(data []uint32) string {
	var sb strings.Builder
	for i, w := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08X", w)
	}
	return sb.String()
}

func fmtVec(v [3]float32) string {
	return fmt.Sprintf("(%8.2f %8.2f %8.5f)", v[0], v[1], v[2])
}

func fmtMatrix(m [3][3]float32) string {
	return fmt.Sprintf("(%8.2f %8.2f %8.2f) (%8.2f %8.2f %8.2f) (%8.2f %8.2f %8.2f)",
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2])
}
