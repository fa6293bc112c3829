package domain

import "time"

// AuditEvent is the structured record emitted once per finalized ticket.
// It carries a hash of the redacted text rather than the text itself; raw
// ticket text and raw PII must never appear here.
type AuditEvent struct {
	ID                  string        `json:"id"`
	TicketKey           string        `json:"ticket_key"`
	Timestamp           time.Time     `json:"timestamp"`
	RedactedTextSHA256  string        `json:"redacted_text_sha256"`
	Category            string        `json:"category"`
	Sentiment           string        `json:"sentiment"`
	FinalPriority       PriorityLevel `json:"final_priority"`
	OverrideTriggered   bool          `json:"override_triggered"`
	PIIDetected         bool          `json:"pii_detected"`
	RequiresHumanReview bool          `json:"requires_human_review"`
	ProcessingMillis    int64         `json:"processing_ms"`
}
