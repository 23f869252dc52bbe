package align

// Paddings returns, for each point, the padding that moves it to col.
// Lengths are computed against the current buffer; nothing is modified.
func Paddings(t Text, points []ByteOffset, col int) []Padding {
	pads := make([]Padding, 0, len(points))
	for _, pt := range points {
		pads = append(pads, Padding{Offset: pt, Length: col - column(t, pt)})
	}
	return pads
}

// ExtremalColumn returns the smallest column among points when minimize is
// set, the largest otherwise. An empty point set yields 0.
func ExtremalColumn(t Text, points []ByteOffset, minimize bool) int {
	if len(points) == 0 {
		return 0
	}
	best := column(t, points[0])
	for _, pt := range points[1:] {
		c := column(t, pt)
		if (minimize && c < best) || (!minimize && c > best) {
			best = c
		}
	}
	return best
}
