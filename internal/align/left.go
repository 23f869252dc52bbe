package align

import "github.com/dshills/lineup/internal/engine/buffer"

// LineLeftEdge returns the offset of the first non-space character on line.
// Lines that are empty or hold only spaces report false.
func LineLeftEdge(t Text, line uint32) (ByteOffset, bool) {
	start := t.PointToOffset(buffer.Point{Line: line})
	if lineOf(t, start) != line {
		return 0, false
	}
	end := t.LineEndOffset(line)
	for pt := start; pt < end; pt++ {
		if t.CharAt(pt) != ' ' {
			return pt, true
		}
	}
	return 0, false
}

// PlanLeft computes the paddings that bring the left edge of every line in
// lines to a common column: the leftmost edge when biasLeft is set, the
// rightmost otherwise.
func PlanLeft(t Text, lines LineSet, biasLeft bool) []Padding {
	var points []ByteOffset
	for _, line := range lines.Lines() {
		if pt, ok := LineLeftEdge(t, line); ok {
			points = append(points, pt)
		}
	}
	col := ExtremalColumn(t, points, biasLeft)
	return Paddings(t, points, col)
}

// LeftAlign aligns the left edges of lines and reports whether the buffer changed.
func LeftAlign(t Text, lines LineSet, biasLeft bool) (bool, error) {
	return ApplyPaddings(t, PlanLeft(t, lines, biasLeft))
}
