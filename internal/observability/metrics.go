package observability

import (
	"sync"

	"github.com/spec-kit/triage-engine/internal/domain"
)

// Metrics provides basic in-memory pipeline counters.
type Metrics struct {
	mu            sync.Mutex
	processed     int64
	failed        map[string]int64
	overrides     int64
	piiFindings   int64
	reviewFlagged int64
	byPriority    map[domain.PriorityLevel]int64
	byCategory    map[string]int64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Processed     int64
	Failed        map[string]int64
	Overrides     int64
	PIIFindings   int64
	ReviewFlagged int64
	ByPriority    map[domain.PriorityLevel]int64
	ByCategory    map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		failed:     make(map[string]int64),
		byPriority: make(map[domain.PriorityLevel]int64),
		byCategory: make(map[string]int64),
	}
}

// RecordProcessed increments counters for a finalized record.
func (m *Metrics) RecordProcessed(record *domain.TriageRecord) {
	if m == nil || record == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed++
	m.piiFindings += int64(record.PIIFindingCount)
	m.byPriority[record.FinalPriority]++
	m.byCategory[record.Category.Label]++
	if record.Safety.OverrideTriggered {
		m.overrides++
	}
	if record.RequiresHumanReview {
		m.reviewFlagged++
	}
}

// RecordFailure increments failure counters keyed by error code.
func (m *Metrics) RecordFailure(code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[code]++
}

// Snapshot copies current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := MetricsSnapshot{
		Processed:     m.processed,
		Overrides:     m.overrides,
		PIIFindings:   m.piiFindings,
		ReviewFlagged: m.reviewFlagged,
		Failed:        make(map[string]int64, len(m.failed)),
		ByPriority:    make(map[domain.PriorityLevel]int64, len(m.byPriority)),
		ByCategory:    make(map[string]int64, len(m.byCategory)),
	}
	for k, v := range m.failed {
		snap.Failed[k] = v
	}
	for k, v := range m.byPriority {
		snap.ByPriority[k] = v
	}
	for k, v := range m.byCategory {
		snap.ByCategory[k] = v
	}
	return snap
}
