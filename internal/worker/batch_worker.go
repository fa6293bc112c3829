// Package worker runs the triage pipeline over many independent tickets.
// Batch processing is plain repeated invocation: tickets share no state,
// and one ticket's failure never stops the rest of the batch.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/internal/service"
	"github.com/spec-kit/triage-engine/pkg/util"
)

// BatchResult pairs one input ticket with its outcome, preserving input order.
type BatchResult struct {
	Index  int
	Record *domain.TriageRecord
	Err    error
}

// BatchProcessor fans tickets out over a bounded worker pool.
type BatchProcessor struct {
	engine  *service.TriageService
	workers int
	logger  *zap.Logger
}

// NewBatchProcessor constructs the processor. A non-positive worker count
// falls back to 1.
func NewBatchProcessor(engine *service.TriageService, workers int, logger *zap.Logger) *BatchProcessor {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchProcessor{engine: engine, workers: workers, logger: logger}
}

// Run processes every ticket and returns results indexed like the input.
func (p *BatchProcessor) Run(ctx context.Context, tickets []domain.RawTicket) []BatchResult {
	results := make([]BatchResult, len(tickets))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				record, err := p.engine.Process(ctx, tickets[i])
				results[i] = BatchResult{Index: i, Record: record, Err: err}
				if err != nil {
					p.logger.Warn("ticket failed",
						zap.Int("index", i),
						zap.String("code", string(util.ToEngineError(err).Code)))
				}
			}
		}()
	}

	for i := range tickets {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
