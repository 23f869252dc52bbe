package align

import (
	"fmt"
	"sort"
	"strings"
)

// Padding asks for Length spaces to be inserted at Offset when positive, or
// for up to -Length spaces ending at Offset to be removed when negative.
// Offset is in the coordinates of the buffer before any padding is applied.
type Padding struct {
	Offset ByteOffset
	Length int
}

// Score returns the sum of absolute padding lengths.
func Score(pads []Padding) int {
	total := 0
	for _, p := range pads {
		if p.Length < 0 {
			total -= p.Length
		} else {
			total += p.Length
		}
	}
	return total
}

// ApplyPaddings applies pads in ascending offset order, shifting each offset
// by the net length change of the paddings before it.
// It returns true if the buffer was modified. On a host error the edits
// already issued stay in place.
func ApplyPaddings(t Text, pads []Padding) (bool, error) {
	sorted := make([]Padding, len(pads))
	copy(sorted, pads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	var drift ByteOffset
	changed := false
	for _, p := range sorted {
		delta, err := applyPadding(t, p.Offset+drift, p.Length)
		if err != nil {
			return changed, fmt.Errorf("padding at %d: %w", p.Offset, err)
		}
		if delta != 0 {
			changed = true
		}
		drift += delta
	}
	return changed, nil
}

// applyPadding performs one padding at the already shifted offset at and
// returns the resulting length change.
// Removal walks backward over spaces only, and never further than length.
func applyPadding(t Text, at ByteOffset, length int) (ByteOffset, error) {
	if length == 0 {
		return 0, nil
	}
	if length > 0 {
		if _, err := t.Insert(at, strings.Repeat(" ", length)); err != nil {
			return 0, err
		}
		return ByteOffset(length), nil
	}

	floor := at + ByteOffset(length)
	start := at
	for start > floor && t.CharAt(start-1) == ' ' {
		start--
	}
	if start == at {
		return 0, nil
	}
	if err := t.Delete(start, at); err != nil {
		return 0, err
	}
	return start - at, nil
}
