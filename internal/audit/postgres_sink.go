package audit

import (
	"context"

	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/internal/repository"
)

// PostgresSink stores audit events through the audit repository.
type PostgresSink struct {
	repo repository.AuditRepository
}

// NewPostgresSink constructs the sink.
func NewPostgresSink(repo repository.AuditRepository) *PostgresSink {
	return &PostgresSink{repo: repo}
}

// Write inserts one event.
func (s *PostgresSink) Write(ctx context.Context, event domain.AuditEvent) error {
	return s.repo.Insert(ctx, event)
}
