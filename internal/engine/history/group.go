package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/lineup/internal/engine/buffer"
)

// Group is a named set of operations that undo and redo as one unit.
type Group struct {
	ID         string
	Name       string
	Operations OperationList
	Timestamp  time.Time
}

// NewGroup creates an empty group with a fresh ID.
func NewGroup(name string) *Group {
	return &Group{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: time.Now(),
	}
}

// Undo reverts the group's operations, last first.
func (g *Group) Undo(buf *buffer.Buffer) error {
	return g.Operations.Invert().Apply(buf)
}

// Redo replays the group's operations.
func (g *Group) Redo(buf *buffer.Buffer) error {
	return g.Operations.Apply(buf)
}

// Info returns a read-only summary of the group.
func (g *Group) Info() GroupInfo {
	return GroupInfo{
		ID:          g.ID,
		Description: g.Name,
		Timestamp:   g.Timestamp,
		Operations:  len(g.Operations),
		BytesDelta:  g.Operations.TotalBytesDelta(),
	}
}

// GroupInfo provides read-only info about a group.
type GroupInfo struct {
	ID          string
	Description string
	Timestamp   time.Time
	Operations  int
	BytesDelta  int // Positive for insertions, negative for deletions
}
