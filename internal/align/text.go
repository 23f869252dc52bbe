package align

import "github.com/dshills/lineup/internal/engine/buffer"

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Text is the host capability set the aligners need.
//
// Insert and Delete are only valid inside an edit transaction scoped by the
// caller; the aligners issue them sequentially and never concurrently.
type Text interface {
	OffsetToPoint(offset ByteOffset) buffer.Point
	PointToOffset(point buffer.Point) ByteOffset
	LineEndOffset(line uint32) ByteOffset

	// CharAt returns buffer.NUL outside the buffer.
	CharAt(offset ByteOffset) byte

	// FindAllLiteral returns matches ordered by offset.
	FindAllLiteral(pattern string) []buffer.Range

	Insert(offset ByteOffset, text string) (ByteOffset, error)
	Delete(start, end ByteOffset) error
}

// column returns the 0-based column of offset.
func column(t Text, offset ByteOffset) int {
	return int(t.OffsetToPoint(offset).Column)
}

// lineOf returns the line containing offset.
func lineOf(t Text, offset ByteOffset) uint32 {
	return t.OffsetToPoint(offset).Line
}
