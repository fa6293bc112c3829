package events

import (
	"time"

	"github.com/spec-kit/triage-engine/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	// EventTriageFinalized fires exactly once per finalized TriageRecord.
	EventTriageFinalized EventType = "triage_finalized"
)

// Event represents a pipeline event emitted by the orchestrator. Payloads
// carry redacted or hashed data only; raw ticket text never enters an event.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketKey string      `json:"ticket_key"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FinalizedPayload extracts the audit payload from a triage_finalized event.
func FinalizedPayload(event Event) (domain.AuditEvent, bool) {
	payload, ok := event.Payload.(domain.AuditEvent)
	return payload, ok
}
