package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/triage-engine/internal/domain"
)

// AuditRepository encapsulates audit event persistence.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
	CountByPriority(ctx context.Context) (map[domain.PriorityLevel]int64, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	const query = `
        INSERT INTO audit_events (id, ticket_key, occurred_at, redacted_text_sha256, category, sentiment,
            final_priority, override_triggered, pii_detected, requires_human_review, processing_ms)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.TicketKey,
		event.Timestamp,
		event.RedactedTextSHA256,
		event.Category,
		event.Sentiment,
		event.FinalPriority,
		event.OverrideTriggered,
		event.PIIDetected,
		event.RequiresHumanReview,
		event.ProcessingMillis,
	)
	return err
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, ticket_key, occurred_at, redacted_text_sha256, category, sentiment,
            final_priority, override_triggered, pii_detected, requires_human_review, processing_ms
        FROM audit_events ORDER BY occurred_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditEvents(rows)
}

func (r *auditRepository) CountByPriority(ctx context.Context) (map[domain.PriorityLevel]int64, error) {
	const query = `SELECT final_priority, COUNT(*) FROM audit_events GROUP BY final_priority`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.PriorityLevel]int64)
	for rows.Next() {
		var priority domain.PriorityLevel
		var count int64
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts[priority] = count
	}
	return counts, rows.Err()
}

func scanAuditEvents(rows pgx.Rows) ([]domain.AuditEvent, error) {
	var result []domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		if err := rows.Scan(
			&event.ID,
			&event.TicketKey,
			&event.Timestamp,
			&event.RedactedTextSHA256,
			&event.Category,
			&event.Sentiment,
			&event.FinalPriority,
			&event.OverrideTriggered,
			&event.PIIDetected,
			&event.RequiresHumanReview,
			&event.ProcessingMillis,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
