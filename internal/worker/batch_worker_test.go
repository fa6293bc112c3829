package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-engine/internal/classify"
	"github.com/spec-kit/triage-engine/internal/config"
	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/internal/pii"
	"github.com/spec-kit/triage-engine/internal/routing"
	"github.com/spec-kit/triage-engine/internal/safety"
	"github.com/spec-kit/triage-engine/internal/service"
	"github.com/spec-kit/triage-engine/pkg/util"
)

type fixedScorer struct {
	labelSet   []string
	label      string
	confidence float64
}

func (s *fixedScorer) Labels() []string { return s.labelSet }

func (s *fixedScorer) Score(context.Context, string) (domain.ClassificationResult, error) {
	dist := make(map[string]float64, len(s.labelSet))
	rest := (1 - s.confidence) / float64(len(s.labelSet)-1)
	for _, l := range s.labelSet {
		dist[l] = rest
	}
	dist[s.label] = s.confidence
	return domain.ClassificationResult{Label: s.label, Distribution: dist, Confidence: s.confidence}, nil
}

func newTestEngine(t *testing.T) *service.TriageService {
	t.Helper()
	var categories, sentiments []string
	for _, c := range domain.Categories() {
		categories = append(categories, string(c))
	}
	for _, s := range domain.Sentiments() {
		sentiments = append(sentiments, string(s))
	}
	adapter, err := classify.NewAdapter(
		&fixedScorer{labelSet: categories, label: string(domain.CategoryInquiry), confidence: 0.9},
		&fixedScorer{labelSet: sentiments, label: string(domain.SentimentNeutral), confidence: 0.9},
	)
	require.NoError(t, err)
	resolver, err := routing.NewResolver(routing.DefaultTable())
	require.NoError(t, err)
	engine, err := service.NewTriageService(config.EngineConfig{ConfidenceThreshold: 0.55}, service.TriageDependencies{
		Redactor:   pii.NewRedactor(),
		Classifier: adapter,
		Safety:     safety.NewEvaluator(nil, 3, 3),
		Resolver:   resolver,
	})
	require.NoError(t, err)
	return engine
}

func TestRun_PreservesInputOrder(t *testing.T) {
	processor := NewBatchProcessor(newTestEngine(t), 4, nil)
	tickets := []domain.RawTicket{
		{Body: "first question about opening hours"},
		{Body: "second question about parking permits"},
		{Body: "third question about waste collection"},
	}

	results := processor.Run(context.Background(), tickets)

	require.Len(t, results, 3)
	for i, result := range results {
		assert.Equal(t, i, result.Index)
		require.NoError(t, result.Err)
		require.NotNil(t, result.Record)
	}
}

func TestRun_ContinuesPastFailingTickets(t *testing.T) {
	processor := NewBatchProcessor(newTestEngine(t), 2, nil)
	tickets := []domain.RawTicket{
		{Body: "valid question about fees"},
		{Body: "   "},
		{Body: "another valid question"},
	}

	results := processor.Run(context.Background(), tickets)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.True(t, util.HasCode(results[1].Err, util.CodeInvalidInput))
	assert.Nil(t, results[1].Record)
	assert.NoError(t, results[2].Err)
}

func TestRun_SingleWorkerFallback(t *testing.T) {
	processor := NewBatchProcessor(newTestEngine(t), 0, nil)

	results := processor.Run(context.Background(), []domain.RawTicket{{Body: "one ticket"}})

	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}
