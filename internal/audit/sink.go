// Package audit emits one structured event per finalized ticket to the
// configured sinks. Events carry the redacted-text hash, never the text
// itself; no raw PII can reach a sink through this package.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/internal/events"
)

// Sink persists or forwards one audit event. Implementations must not
// retry internally; a failure propagates to the publisher.
type Sink interface {
	Write(ctx context.Context, event domain.AuditEvent) error
}

// NewEvent builds the audit event for a finalized record.
func NewEvent(record *domain.TriageRecord) domain.AuditEvent {
	return domain.AuditEvent{
		ID:                  uuid.NewString(),
		TicketKey:           record.TicketKey,
		Timestamp:           record.ProcessedAt,
		RedactedTextSHA256:  HashText(record.RedactedText),
		Category:            record.Category.Label,
		Sentiment:           record.Sentiment.Label,
		FinalPriority:       record.FinalPriority,
		OverrideTriggered:   record.Safety.OverrideTriggered,
		PIIDetected:         record.PIIDetected,
		RequiresHumanReview: record.RequiresHumanReview,
		ProcessingMillis:    record.ProcessingTime.Milliseconds(),
	}
}

// HashText returns the hex SHA-256 of the given text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Register subscribes the given sinks to finalized-triage events. Sink
// failures are logged and do not abort ticket processing; the record has
// already been finalized by the time sinks run.
func Register(dispatcher events.Dispatcher, logger *zap.Logger, sinks ...Sink) {
	dispatcher.Subscribe(events.EventTriageFinalized, func(ctx context.Context, event events.Event) error {
		payload, ok := events.FinalizedPayload(event)
		if !ok {
			logger.Error("triage_finalized event carried unexpected payload",
				zap.String("event_id", event.ID))
			return nil
		}
		for _, sink := range sinks {
			if err := sink.Write(ctx, payload); err != nil {
				logger.Warn("audit sink write failed",
					zap.String("ticket_key", payload.TicketKey),
					zap.Error(err))
			}
		}
		return nil
	})
}
