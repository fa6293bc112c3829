// Package service hosts the engine orchestrator. One ticket per invocation
// flows through a fixed linear sequence; no step calls back into an earlier
// one and no state survives between invocations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-engine/internal/audit"
	"github.com/spec-kit/triage-engine/internal/classify"
	"github.com/spec-kit/triage-engine/internal/config"
	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/internal/events"
	"github.com/spec-kit/triage-engine/internal/observability"
	"github.com/spec-kit/triage-engine/internal/pii"
	"github.com/spec-kit/triage-engine/internal/routing"
	"github.com/spec-kit/triage-engine/internal/safety"
	"github.com/spec-kit/triage-engine/pkg/util"
)

// stage names the pipeline states, in order.
type stage string

const (
	stageReceived      stage = "received"
	stageRedacted      stage = "redacted"
	stageClassified    stage = "classified"
	stageSafetyChecked stage = "safety_checked"
	stageGated         stage = "gated"
	stageRouted        stage = "routed"
	stageFinalized     stage = "finalized"
)

// TriageService coordinates the triage pipeline for single tickets. It is
// safe for concurrent use across independent tickets: every dependency is
// read-only after construction.
type TriageService struct {
	redactor   *pii.Redactor
	classifier *classify.Adapter
	safety     *safety.Evaluator
	resolver   *routing.Resolver
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger

	confidenceThreshold float64
	criticalConfidence  float64
}

// TriageDependencies bundles collaborators for the triage service.
type TriageDependencies struct {
	Redactor   *pii.Redactor
	Classifier *classify.Adapter
	Safety     *safety.Evaluator
	Resolver   *routing.Resolver
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewTriageService constructs the service.
func NewTriageService(cfg config.EngineConfig, deps TriageDependencies) (*TriageService, error) {
	if deps.Redactor == nil || deps.Classifier == nil || deps.Safety == nil || deps.Resolver == nil {
		return nil, util.NewConfigurationError("triage service requires redactor, classifier, safety evaluator and resolver", nil)
	}
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, util.NewConfigurationError("confidence threshold must be in [0,1]",
			map[string]any{"threshold": cfg.ConfidenceThreshold})
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}
	criticalConfidence := cfg.CriticalConfidenceThreshold
	if criticalConfidence <= 0 {
		criticalConfidence = 0.85
	}
	return &TriageService{
		redactor:            deps.Redactor,
		classifier:          deps.Classifier,
		safety:              deps.Safety,
		resolver:            deps.Resolver,
		dispatcher:          dispatcher,
		metrics:             deps.Metrics,
		logger:              logger,
		confidenceThreshold: cfg.ConfidenceThreshold,
		criticalConfidence:  criticalConfidence,
	}, nil
}

// Process runs one ticket through the pipeline and returns the finalized
// TriageRecord. A failure at any stage aborts processing for this ticket
// and surfaces a typed error; no partial record and no audit event are
// emitted on failure.
func (s *TriageService) Process(ctx context.Context, ticket domain.RawTicket) (*domain.TriageRecord, error) {
	started := time.Now()
	current := stageReceived

	body := strings.TrimSpace(ticket.Body)
	if body == "" {
		s.recordFailure(util.CodeInvalidInput)
		return nil, util.NewInvalidInput("ticket body is empty", nil)
	}
	if !utf8.ValidString(body) {
		s.recordFailure(util.CodeInvalidInput)
		return nil, util.NewInvalidInput("ticket body is not valid text", nil)
	}

	redactedText, findings := s.redactor.Redact(body)
	current = stageRedacted
	s.logStage(current, zap.Int("pii_findings", len(findings)))

	category, sentiment, err := s.classifier.Classify(ctx, redactedText)
	if err != nil {
		s.recordFailure(util.CodeModelUnavailable)
		return nil, err
	}
	current = stageClassified
	s.logStage(current,
		zap.String("category", category.Label),
		zap.Float64("category_confidence", category.Confidence),
		zap.String("sentiment", sentiment.Label))

	verdict := s.safety.Evaluate(redactedText)
	modelImplied := s.modelImpliedPriority(category, sentiment)
	finalPriority := modelImplied
	if verdict.OverrideTriggered {
		finalPriority = domain.MaxPriority(finalPriority, verdict.ForcedPriority)
	}
	current = stageSafetyChecked
	s.logStage(current,
		zap.Bool("override_triggered", verdict.OverrideTriggered),
		zap.String("final_priority", string(finalPriority)))

	requiresReview := category.Confidence < s.confidenceThreshold
	current = stageGated

	decision, err := s.resolver.Resolve(domain.Category(category.Label), finalPriority)
	if err != nil {
		s.recordFailure(util.CodeConfigurationError)
		return nil, err
	}
	decision.ActionItems = append(decision.ActionItems,
		routing.SentimentFollowUps(domain.Sentiment(sentiment.Label))...)
	current = stageRouted

	record := &domain.TriageRecord{
		ID:                  uuid.NewString(),
		TicketKey:           newTicketKey(started),
		Channel:             ticket.Channel,
		SubmittedAt:         ticket.SubmittedAt,
		ProcessedAt:         started,
		RedactedText:        redactedText,
		PIIDetected:         len(findings) > 0,
		PIIFindingCount:     len(findings),
		PIIKinds:            findingKinds(findings),
		Category:            category,
		Sentiment:           sentiment,
		Safety:              verdict,
		FinalPriority:       finalPriority,
		Routing:             decision,
		RequiresHumanReview: requiresReview,
		Notes:               ambiguityNotes(findings),
		ProcessingTime:      time.Since(started),
	}
	current = stageFinalized

	for _, note := range record.Notes {
		s.logger.Warn("redaction ambiguity", zap.String("ticket_key", record.TicketKey), zap.String("note", note))
	}

	if s.metrics != nil {
		s.metrics.RecordProcessed(record)
	}
	s.emitAudit(ctx, record)

	s.logger.Info("ticket finalized",
		zap.String("ticket_key", record.TicketKey),
		zap.String("stage", string(current)),
		zap.String("category", record.Category.Label),
		zap.String("final_priority", string(record.FinalPriority)),
		zap.Bool("pii_detected", record.PIIDetected),
		zap.Bool("requires_human_review", record.RequiresHumanReview))

	return record, nil
}

// modelImpliedPriority derives urgency from the unmodified model output.
// Critical is reachable only on the emergency category at very high
// confidence; sentiment alone never produces Critical.
func (s *TriageService) modelImpliedPriority(category, sentiment domain.ClassificationResult) domain.PriorityLevel {
	negative := sentiment.Label == string(domain.SentimentNegative)

	switch domain.Category(category.Label) {
	case domain.CategorySafetyEmergency:
		if category.Confidence >= s.criticalConfidence {
			return domain.PriorityCritical
		}
		return domain.PriorityHigh
	case domain.CategoryTechnicalIT, domain.CategoryBilling, domain.CategoryFacilities:
		if negative {
			return domain.PriorityHigh
		}
		return domain.PriorityMedium
	case domain.CategoryInquiry:
		if negative {
			return domain.PriorityMedium
		}
		return domain.PriorityLow
	default:
		return domain.PriorityMedium
	}
}

// emitAudit publishes exactly one finalized event for the record. Sink
// failures are logged by the subscribers and never fail the ticket.
func (s *TriageService) emitAudit(ctx context.Context, record *domain.TriageRecord) {
	event := audit.NewEvent(record)
	if err := s.dispatcher.Publish(ctx, events.Event{
		ID:        event.ID,
		Type:      events.EventTriageFinalized,
		TicketKey: record.TicketKey,
		Timestamp: record.ProcessedAt,
		Payload:   event,
	}); err != nil {
		s.logger.Warn("audit emission failed", zap.String("ticket_key", record.TicketKey), zap.Error(err))
	}
}

func (s *TriageService) logStage(current stage, fields ...zap.Field) {
	s.logger.Debug("pipeline stage complete", append([]zap.Field{zap.String("stage", string(current))}, fields...)...)
}

func (s *TriageService) recordFailure(code util.ErrorCode) {
	if s.metrics != nil {
		s.metrics.RecordFailure(string(code))
	}
}

func newTicketKey(at time.Time) string {
	return fmt.Sprintf("TKT-%s-%s", at.Format("20060102"), uuid.NewString()[:8])
}

func findingKinds(findings []domain.PIIFinding) []domain.PIIKind {
	if len(findings) == 0 {
		return nil
	}
	seen := make(map[domain.PIIKind]struct{}, len(findings))
	var kinds []domain.PIIKind
	for _, f := range findings {
		if _, ok := seen[f.Kind]; ok {
			continue
		}
		seen[f.Kind] = struct{}{}
		kinds = append(kinds, f.Kind)
	}
	return kinds
}

// ambiguityNotes summarizes spans that matched more than one pattern kind.
// Notes carry kinds and offsets only, never the matched text.
func ambiguityNotes(findings []domain.PIIFinding) []string {
	var notes []string
	for _, f := range findings {
		if len(f.AmbiguousWith) == 0 {
			continue
		}
		others := make([]string, len(f.AmbiguousWith))
		for i, kind := range f.AmbiguousWith {
			others[i] = string(kind)
		}
		notes = append(notes, fmt.Sprintf(
			"span %d-%d matched %s and %s; resolved to %s by precedence",
			f.Start, f.End, f.Kind, strings.Join(others, ", "), f.Kind))
	}
	return notes
}
