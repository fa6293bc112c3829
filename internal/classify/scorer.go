package classify

import (
	"context"

	"github.com/spec-kit/triage-engine/internal/domain"
)

// Scorer is a pre-trained classification model consumed as an opaque scoring
// function. Implementations are loaded once at process start, treated as
// immutable for the process lifetime, and must be safe for concurrent
// read-only inference.
type Scorer interface {
	// Labels returns the closed label set the scorer predicts over.
	Labels() []string
	// Score classifies the given text, returning a label and a probability
	// distribution over all labels.
	Score(ctx context.Context, text string) (domain.ClassificationResult, error)
}
