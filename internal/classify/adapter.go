// Package classify wraps the two independently trained scoring functions
// (category and sentiment) behind a validating adapter. Both scorers only
// ever see redacted text.
package classify

import (
	"context"
	"fmt"
	"math"

	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/pkg/util"
)

// distributionTolerance bounds how far a probability distribution may
// deviate from summing to 1 before it is treated as malformed.
const distributionTolerance = 1e-6

// Adapter invokes the category and sentiment scorers and validates their
// output. A scorer failure or a malformed distribution surfaces as a
// ModelUnavailable error; the adapter never substitutes silent defaults.
type Adapter struct {
	category  Scorer
	sentiment Scorer
}

// NewAdapter constructs an Adapter, checking each scorer's label set against
// the engine's closed category and sentiment sets.
func NewAdapter(category, sentiment Scorer) (*Adapter, error) {
	if category == nil || sentiment == nil {
		return nil, util.NewModelUnavailable("category and sentiment scorers are required", nil)
	}
	if err := checkLabelSet("category", category.Labels(), categoryLabels()); err != nil {
		return nil, err
	}
	if err := checkLabelSet("sentiment", sentiment.Labels(), sentimentLabels()); err != nil {
		return nil, err
	}
	return &Adapter{category: category, sentiment: sentiment}, nil
}

// Classify scores the redacted text with both models.
func (a *Adapter) Classify(ctx context.Context, redactedText string) (category, sentiment domain.ClassificationResult, err error) {
	category, err = a.score(ctx, "category", a.category, categoryLabels(), redactedText)
	if err != nil {
		return domain.ClassificationResult{}, domain.ClassificationResult{}, err
	}
	sentiment, err = a.score(ctx, "sentiment", a.sentiment, sentimentLabels(), redactedText)
	if err != nil {
		return domain.ClassificationResult{}, domain.ClassificationResult{}, err
	}
	return category, sentiment, nil
}

func (a *Adapter) score(ctx context.Context, name string, scorer Scorer, known []string, text string) (domain.ClassificationResult, error) {
	result, err := scorer.Score(ctx, text)
	if err != nil {
		return domain.ClassificationResult{}, util.NewModelUnavailable(fmt.Sprintf("%s scorer failed", name), err)
	}
	if err := validateResult(name, result, known); err != nil {
		return domain.ClassificationResult{}, err
	}
	return result, nil
}

func validateResult(name string, result domain.ClassificationResult, known []string) error {
	knownSet := make(map[string]struct{}, len(known))
	for _, label := range known {
		knownSet[label] = struct{}{}
	}

	if _, ok := knownSet[result.Label]; !ok {
		return util.NewModelUnavailable(
			fmt.Sprintf("%s scorer returned unknown label %q", name, result.Label), nil)
	}
	if len(result.Distribution) != len(known) {
		return util.NewModelUnavailable(
			fmt.Sprintf("%s scorer distribution covers %d labels, want %d", name, len(result.Distribution), len(known)), nil)
	}

	sum := 0.0
	maxProb := 0.0
	for label, prob := range result.Distribution {
		if _, ok := knownSet[label]; !ok {
			return util.NewModelUnavailable(
				fmt.Sprintf("%s scorer distribution contains unknown label %q", name, label), nil)
		}
		if prob < 0 || prob > 1 || math.IsNaN(prob) {
			return util.NewModelUnavailable(
				fmt.Sprintf("%s scorer returned invalid probability for %q", name, label), nil)
		}
		sum += prob
		if prob > maxProb {
			maxProb = prob
		}
	}
	if math.Abs(sum-1) > distributionTolerance {
		return util.NewModelUnavailable(
			fmt.Sprintf("%s scorer distribution sums to %v, want 1", name, sum), nil)
	}
	if math.Abs(result.Confidence-maxProb) > distributionTolerance {
		return util.NewModelUnavailable(
			fmt.Sprintf("%s scorer confidence %v does not match distribution maximum %v", name, result.Confidence, maxProb), nil)
	}
	return nil
}

func checkLabelSet(name string, got, want []string) error {
	if len(got) != len(want) {
		return util.NewModelUnavailable(
			fmt.Sprintf("%s scorer predicts %d labels, want %d", name, len(got), len(want)), nil)
	}
	wantSet := make(map[string]struct{}, len(want))
	for _, label := range want {
		wantSet[label] = struct{}{}
	}
	for _, label := range got {
		if _, ok := wantSet[label]; !ok {
			return util.NewModelUnavailable(
				fmt.Sprintf("%s scorer predicts unknown label %q", name, label), nil)
		}
	}
	return nil
}

func categoryLabels() []string {
	categories := domain.Categories()
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = string(c)
	}
	return labels
}

func sentimentLabels() []string {
	sentiments := domain.Sentiments()
	labels := make([]string, len(sentiments))
	for i, s := range sentiments {
		labels[i] = string(s)
	}
	return labels
}
