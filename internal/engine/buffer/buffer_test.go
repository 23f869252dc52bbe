package buffer

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, ByteOffset(0), b.Len())
	assert.Equal(t, uint32(1), b.LineCount())
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")

	require.Equal(t, uint32(3), b.LineCount())
	assert.Equal(t, "line1", b.LineText(0))
	assert.Equal(t, "line2", b.LineText(1))
	assert.Equal(t, "line3", b.LineText(2))
	assert.Equal(t, "", b.LineText(3))
}

func TestNewBufferFromReaderNormalizesCRLF(t *testing.T) {
	b, err := NewBufferFromReader(strings.NewReader("a\r\nb\r\n"))
	require.NoError(t, err)

	assert.Equal(t, "a\nb\n", b.Text())
	assert.Equal(t, LineEndingCRLF, b.LineEnding())
	assert.Equal(t, "a\r\nb\r\n", b.Export())
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb\n", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
		{"a\nb\nc\r\n", LineEndingLF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLineEnding(tt.text), "text %q", tt.text)
	}
}

func TestBufferLineOffsets(t *testing.T) {
	b := NewBufferFromString("ab\n\ncde")

	assert.Equal(t, ByteOffset(0), b.LineStartOffset(0))
	assert.Equal(t, ByteOffset(2), b.LineEndOffset(0))
	assert.Equal(t, ByteOffset(3), b.LineStartOffset(1))
	assert.Equal(t, ByteOffset(3), b.LineEndOffset(1))
	assert.Equal(t, ByteOffset(4), b.LineStartOffset(2))
	assert.Equal(t, ByteOffset(7), b.LineEndOffset(2))
	assert.Equal(t, ByteOffset(7), b.LineEndOffset(9))
}

func TestBufferOffsetPointRoundTrip(t *testing.T) {
	b := NewBufferFromString("a = 1\nbb = 2\n")

	tests := []struct {
		offset ByteOffset
		point  Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{5, Point{0, 5}},
		{6, Point{1, 0}},
		{9, Point{1, 3}},
		{13, Point{2, 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.point, b.OffsetToPoint(tt.offset), "offset %d", tt.offset)
		assert.Equal(t, tt.offset, b.PointToOffset(tt.point), "point %s", tt.point)
	}
}

func TestBufferOffsetToPointClamps(t *testing.T) {
	b := NewBufferFromString("abc\nde")

	assert.Equal(t, Point{0, 0}, b.OffsetToPoint(-4))
	assert.Equal(t, Point{1, 2}, b.OffsetToPoint(100))
	assert.Equal(t, ByteOffset(3), b.PointToOffset(Point{0, 10}))
	assert.Equal(t, ByteOffset(5), b.PointToOffset(Point{7, 1}))
}

func TestBufferCharAt(t *testing.T) {
	b := NewBufferFromString("a b\n")

	assert.Equal(t, byte('a'), b.CharAt(0))
	assert.Equal(t, byte(' '), b.CharAt(1))
	assert.Equal(t, byte('\n'), b.CharAt(3))
	assert.Equal(t, NUL, b.CharAt(-1))
	assert.Equal(t, NUL, b.CharAt(4))
}

func TestBufferFindAllLiteral(t *testing.T) {
	b := NewBufferFromString("a == b\nc = d = e\n")

	assert.Equal(t, []Range{{2, 3}, {3, 4}, {9, 10}, {13, 14}}, b.FindAllLiteral("="))
	assert.Equal(t, []Range{{2, 4}}, b.FindAllLiteral("=="))
	assert.Empty(t, b.FindAllLiteral(""))
	assert.Empty(t, b.FindAllLiteral("zzz"))
}

func TestBufferFindAllLiteralNonOverlapping(t *testing.T) {
	b := NewBufferFromString("aaaa")

	assert.Equal(t, []Range{{0, 2}, {2, 4}}, b.FindAllLiteral("aa"))
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("a= 1\nb")

	end, err := b.Insert(1, "  ")
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(3), end)
	assert.Equal(t, "a  = 1\nb", b.Text())
	assert.Equal(t, ByteOffset(7), b.LineStartOffset(1))

	_, err = b.Insert(99, "x")
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("a   = 1\nb")
	rev := b.RevisionID()

	require.NoError(t, b.Delete(1, 3))
	assert.Equal(t, "a = 1\nb", b.Text())
	assert.NotEqual(t, rev, b.RevisionID())

	assert.ErrorIs(t, b.Delete(3, 1), ErrRangeInvalid)
	assert.ErrorIs(t, b.Delete(0, 100), ErrRangeInvalid)
}

func TestBufferInsertNewlineReindexes(t *testing.T) {
	b := NewBufferFromString("ab")

	_, err := b.Insert(1, "\r\n")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), b.LineCount())
	assert.Equal(t, "b", b.LineText(1))
}

func TestBufferTextRange(t *testing.T) {
	b := NewBufferFromString("hello world")

	assert.Equal(t, "world", b.TextRange(6, 11))
	assert.Equal(t, "world", b.TextRange(6, 50))
	assert.Equal(t, "", b.TextRange(8, 2))
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewBufferFromString(strings.Repeat("x = 1\n", 50))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.FindAllLiteral("=")
				_ = b.OffsetToPoint(ByteOffset(j))
			}
		}()
	}
	wg.Wait()
}
