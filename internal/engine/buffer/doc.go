// Package buffer provides the in-memory text buffer that alignment commands
// operate on.
//
// The buffer stores its content as a single string with a line-start index,
// which is rebuilt after every mutation. That is cheap for the buffer sizes an
// alignment command touches and keeps offset/point conversion exact.
//
// The package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Coordinate conversion between byte offsets and line/column positions
//   - Single-byte reads with a NUL sentinel outside the buffer (CharAt)
//   - Literal, non-overlapping search across the whole buffer (FindAllLiteral)
//   - Line ending normalization on load and restoration on export
//   - Revision tracking for change management
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("a = 1\nbb = 2")
//	buf.Insert(1, "  ")          // "a   = 1\nbb = 2"
//	buf.Delete(1, 3)             // "a = 1\nbb = 2"
//	p := buf.OffsetToPoint(9)    // (1:3)
//
// Position Types:
//
//   - ByteOffset: Raw byte position in the buffer
//   - Point: Line and column position (0-indexed, column in bytes)
//   - Range: Half-open byte range [Start, End)
//
// Columns count bytes, so a multi-byte character occupies several columns.
package buffer
