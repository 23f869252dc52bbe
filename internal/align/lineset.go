package align

import "sort"

// LineSet is an ordered set of line numbers.
// It is built once, before any edit, and stays valid across the edits of one
// command because alignment never adds or removes lines.
type LineSet struct {
	lines []uint32
	index map[uint32]struct{}
}

// NewLineSet creates a set from the given lines, sorted and deduplicated.
func NewLineSet(lines ...uint32) LineSet {
	s := LineSet{index: make(map[uint32]struct{}, len(lines))}
	for _, l := range lines {
		if _, ok := s.index[l]; ok {
			continue
		}
		s.index[l] = struct{}{}
		s.lines = append(s.lines, l)
	}
	sort.Slice(s.lines, func(i, j int) bool { return s.lines[i] < s.lines[j] })
	return s
}

// LineRange creates a set covering first through last inclusive.
func LineRange(first, last uint32) LineSet {
	if last < first {
		return NewLineSet()
	}
	lines := make([]uint32, 0, last-first+1)
	for l := first; l <= last; l++ {
		lines = append(lines, l)
	}
	return NewLineSet(lines...)
}

// Contains reports whether line is in the set.
func (s LineSet) Contains(line uint32) bool {
	_, ok := s.index[line]
	return ok
}

// Lines returns the lines in ascending order.
func (s LineSet) Lines() []uint32 {
	out := make([]uint32, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len returns the number of lines.
func (s LineSet) Len() int {
	return len(s.lines)
}
