package domain

import "time"

// TriageRecord is the terminal, immutable output of the pipeline for one
// ticket. It is constructed once by the orchestrator, handed to the audit
// sink and the caller, and never mutated afterward. No field may carry raw
// PII; detected spans are summarized by kind and count only.
type TriageRecord struct {
	ID          string            `json:"id"`
	TicketKey   string            `json:"ticket_key"`
	Channel     SubmissionChannel `json:"channel,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at,omitempty"`
	ProcessedAt time.Time         `json:"processed_at"`

	RedactedText    string    `json:"redacted_text"`
	PIIDetected     bool      `json:"pii_detected"`
	PIIFindingCount int       `json:"pii_finding_count"`
	PIIKinds        []PIIKind `json:"pii_kinds,omitempty"`

	Category  ClassificationResult `json:"category"`
	Sentiment ClassificationResult `json:"sentiment"`
	Safety    SafetyVerdict        `json:"safety"`

	FinalPriority       PriorityLevel   `json:"final_priority"`
	Routing             RoutingDecision `json:"routing"`
	RequiresHumanReview bool            `json:"requires_human_review"`

	// Notes carries warning-level annotations such as redaction ambiguity.
	Notes []string `json:"notes,omitempty"`

	ProcessingTime time.Duration `json:"processing_ns"`
}
