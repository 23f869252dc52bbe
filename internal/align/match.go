package align

import (
	"sort"

	"github.com/dshills/lineup/internal/engine/buffer"
)

// PlanMatch computes the paddings that align one match of rule per line.
//
// Settings rule leaves unset fall back to DefaultDefaults; call Rule.Resolve
// first to apply other defaults. An unrecognized policy aborts the plan with
// a *PolicyError.
func PlanMatch(t Text, lines LineSet, rule Rule) ([]Padding, error) {
	rule = rule.Resolve(DefaultDefaults())

	var (
		points      []ByteOffset // where paddings are applied
		alignPoints []ByteOffset // where the common column is measured
		postPads    []Padding
	)

	for _, group := range matchesByLine(t, rule.Matches) {
		if !lines.Contains(group.line) {
			continue
		}

		m, ok, err := pickMatch(rule, group.matches)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		insertPt := m.Start
		if rule.isPrefix(t.CharAt(insertPt - 1)) {
			insertPt--
		}

		alignPt, err := alignPoint(t, rule, group.line, insertPt)
		if err != nil {
			return nil, err
		}

		points = append(points, insertPt)
		alignPoints = append(alignPoints, alignPt)

		// No trailing space when the match ends the line.
		if rule.addPostSpace() && t.CharAt(m.End) != ' ' && m.End < t.LineEndOffset(group.line) {
			postPads = append(postPads, Padding{Offset: m.End, Length: 1})
		}
	}

	col := ExtremalColumn(t, alignPoints, rule.BiasLeft)
	return append(Paddings(t, points, col), postPads...), nil
}

type lineMatches struct {
	line    uint32
	matches []buffer.Range
}

// matchesByLine finds every pattern, orders the matches by position and
// groups them by the line their start falls on.
//
// At a shared start the longest match wins, and a match overlapping the one
// kept before it is dropped, so "==" is one match rather than "=" twice.
func matchesByLine(t Text, patterns []string) []lineMatches {
	var all []buffer.Range
	for _, p := range patterns {
		all = append(all, t.FindAllLiteral(p)...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End > all[j].End
	})

	var groups []lineMatches
	for _, m := range all {
		line := lineOf(t, m.Start)
		if n := len(groups); n > 0 && groups[n-1].line == line {
			kept := groups[n-1].matches
			if m.Start < kept[len(kept)-1].End {
				continue
			}
			groups[n-1].matches = append(kept, m)
			continue
		}
		groups = append(groups, lineMatches{line: line, matches: []buffer.Range{m}})
	}
	return groups
}

// pickMatch applies the multi-match policy. ok is false when the line is skipped.
func pickMatch(rule Rule, matches []buffer.Range) (buffer.Range, bool, error) {
	if len(matches) == 1 {
		return matches[0], true, nil
	}
	switch rule.MultiMatchPolicy {
	case MultiMatchFirst:
		return matches[0], true, nil
	case MultiMatchLast:
		return matches[len(matches)-1], true, nil
	case MultiMatchSkip:
		return buffer.Range{}, false, nil
	}
	return buffer.Range{}, false, &PolicyError{
		Rule:  rule.Name,
		Kind:  PolicyMultiMatch,
		Value: string(rule.MultiMatchPolicy),
	}
}

// alignPoint applies the pre-space policy to insertPt.
// Pruning only happens when a non-space character precedes insertPt on the
// line, so it never reaches back past the line's left edge.
func alignPoint(t Text, rule Rule, line uint32, insertPt ByteOffset) (ByteOffset, error) {
	if rule.PreSpacePolicy == PreSpaceKeep {
		return insertPt, nil
	}
	n, ok := reserve[rule.PreSpacePolicy]
	if !ok {
		return 0, &PolicyError{
			Rule:  rule.Name,
			Kind:  PolicyPreSpace,
			Value: string(rule.PreSpacePolicy),
		}
	}

	edge, ok := LineLeftEdge(t, line)
	if !ok || insertPt <= edge {
		return insertPt, nil
	}

	pt := insertPt
	for t.CharAt(pt-1) == ' ' {
		pt--
	}
	return pt + n, nil
}
