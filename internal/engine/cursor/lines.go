package cursor

import "github.com/dshills/lineup/internal/engine/buffer"

// LineLocator maps byte offsets to line/column positions.
type LineLocator interface {
	OffsetToPoint(offset buffer.ByteOffset) buffer.Point
}

// LineSpan is an inclusive range of zero-based line numbers.
type LineSpan struct {
	First uint32
	Last  uint32
}

// Lines returns the lines a selection touches. A cursor touches its own line.
func (s Selection) Lines(loc LineLocator) LineSpan {
	return LineSpan{
		First: loc.OffsetToPoint(s.Start()).Line,
		Last:  loc.OffsetToPoint(s.End()).Line,
	}
}

// LineSpans returns the line span of every selection in position order.
// Spans are computed up front so that callers can edit the buffer between
// blocks without re-reading selections.
func (cs *CursorSet) LineSpans(loc LineLocator) []LineSpan {
	spans := make([]LineSpan, len(cs.selections))
	for i, sel := range cs.selections {
		spans[i] = sel.Lines(loc)
	}
	return spans
}
