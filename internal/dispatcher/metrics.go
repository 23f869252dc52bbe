package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/lineup/internal/dispatcher/handler"
)

// ActionStats summarizes every dispatch of one action.
type ActionStats struct {
	Action string

	// Count is the number of dispatches; ByStatus splits it by outcome.
	Count    int
	ByStatus map[handler.ResultStatus]int
	Panics   int

	Total time.Duration
	Max   time.Duration
}

// Mean returns the average dispatch duration.
func (s ActionStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Metrics collects ActionStats per action name.
// It is safe for concurrent use.
type Metrics struct {
	mu      sync.Mutex
	actions map[string]*ActionStats
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{actions: make(map[string]*ActionStats)}
}

func (m *Metrics) entry(action string) *ActionStats {
	s, ok := m.actions[action]
	if !ok {
		s = &ActionStats{Action: action, ByStatus: make(map[handler.ResultStatus]int)}
		m.actions[action] = s
	}
	return s
}

// RecordDispatch records one finished dispatch.
func (m *Metrics) RecordDispatch(action string, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.entry(action)
	s.Count++
	s.ByStatus[status]++
	s.Total += d
	if d > s.Max {
		s.Max = d
	}
}

// RecordPanic records a recovered handler panic. The dispatch itself is
// recorded separately as an error.
func (m *Metrics) RecordPanic(action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entry(action).Panics++
}

// Actions returns a copy of the stats for every action seen, by name.
func (m *Metrics) Actions() []ActionStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ActionStats, 0, len(m.actions))
	for _, s := range m.actions {
		c := *s
		c.ByStatus = make(map[handler.ResultStatus]int, len(s.ByStatus))
		for k, v := range s.ByStatus {
			c.ByStatus[k] = v
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Action < out[j].Action })
	return out
}

// Action returns the stats for one action.
func (m *Metrics) Action(name string) (ActionStats, bool) {
	for _, s := range m.Actions() {
		if s.Action == name {
			return s, true
		}
	}
	return ActionStats{}, false
}
