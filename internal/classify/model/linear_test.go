package model

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact() Artifact {
	// Two classes over a three-token vocabulary. "leak" and "fire" pull
	// toward Emergency, "bill" toward Billing.
	return Artifact{
		Classes: []string{"Billing", "Safety / Emergency"},
		Vocabulary: map[string]int{
			"bill": 0,
			"fire": 1,
			"leak": 2,
		},
		IDF: []float64{1.2, 1.5, 1.5},
		Coefficients: [][]float64{
			{2.0, -1.0, -1.0},
			{-2.0, 1.0, 1.0},
		},
		Intercepts: []float64{0.1, -0.1},
	}
}

func TestLinearScorer_DistributionSumsToOne(t *testing.T) {
	scorer, err := New(testArtifact())
	require.NoError(t, err)

	result, err := scorer.Score(context.Background(), "the fire caused a gas leak")
	require.NoError(t, err)

	sum := 0.0
	for _, p := range result.Distribution {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, "Safety / Emergency", result.Label)
	assert.InDelta(t, result.Distribution["Safety / Emergency"], result.Confidence, 1e-9)
}

func TestLinearScorer_PicksHigherScoringClass(t *testing.T) {
	scorer, err := New(testArtifact())
	require.NoError(t, err)

	result, err := scorer.Score(context.Background(), "my bill is wrong")
	require.NoError(t, err)

	assert.Equal(t, "Billing", result.Label)
	assert.Greater(t, result.Distribution["Billing"], result.Distribution["Safety / Emergency"])
}

func TestLinearScorer_UnknownTokensFallBackToIntercepts(t *testing.T) {
	scorer, err := New(testArtifact())
	require.NoError(t, err)

	result, err := scorer.Score(context.Background(), "xyzzy quux")
	require.NoError(t, err)

	// With an empty feature vector only the intercepts matter.
	assert.Equal(t, "Billing", result.Label)
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "category_model.json")
	data, err := json.Marshal(testArtifact())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	scorer, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Billing", "Safety / Emergency"}, scorer.Labels())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestNew_RejectsDimensionMismatch(t *testing.T) {
	artifact := testArtifact()
	artifact.Intercepts = []float64{0.1}

	_, err := New(artifact)

	require.Error(t, err)
}
