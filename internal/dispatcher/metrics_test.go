package dispatcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lineup/internal/dispatcher/handler"
	"github.com/dshills/lineup/internal/input"
)

func TestMetricsDisabledByDefault(t *testing.T) {
	assert.Nil(t, NewWithDefaults().Metrics())
}

func TestMetricsRecordDispatch(t *testing.T) {
	m := NewMetrics()
	m.RecordDispatch("align.match", 10*time.Millisecond, handler.StatusOK)
	m.RecordDispatch("align.match", 30*time.Millisecond, handler.StatusNoOp)
	m.RecordDispatch("align.left", time.Millisecond, handler.StatusError)

	all := m.Actions()
	require.Len(t, all, 2)
	assert.Equal(t, "align.left", all[0].Action)

	match := all[1]
	assert.Equal(t, 2, match.Count)
	assert.Equal(t, 1, match.ByStatus[handler.StatusOK])
	assert.Equal(t, 1, match.ByStatus[handler.StatusNoOp])
	assert.Equal(t, 30*time.Millisecond, match.Max)
	assert.Equal(t, 20*time.Millisecond, match.Mean())
	assert.Equal(t, time.Duration(0), ActionStats{}.Mean())
}

func TestMetricsActionsAreCopies(t *testing.T) {
	m := NewMetrics()
	m.RecordDispatch("align.match", time.Millisecond, handler.StatusOK)

	snap, ok := m.Action("align.match")
	require.True(t, ok)
	snap.ByStatus[handler.StatusOK] = 99

	again, _ := m.Action("align.match")
	assert.Equal(t, 1, again.ByStatus[handler.StatusOK])

	_, ok = m.Action("align.pick")
	assert.False(t, ok)
}

func TestDispatcherRecordsMetrics(t *testing.T) {
	d := New(DefaultConfig().WithMetrics())
	d.RegisterNamespace(newStub("align").on("align.left", succeed))

	d.Dispatch(input.NewAction("align.left"))
	d.DryRun(input.NewAction("align.left"))
	d.Dispatch(input.NewAction("align.unknown"))

	left, ok := d.Metrics().Action("align.left")
	require.True(t, ok)
	assert.Equal(t, 2, left.Count)
	assert.Equal(t, 2, left.ByStatus[handler.StatusOK])

	unknown, ok := d.Metrics().Action("align.unknown")
	require.True(t, ok)
	assert.Equal(t, 1, unknown.ByStatus[handler.StatusError])
}
