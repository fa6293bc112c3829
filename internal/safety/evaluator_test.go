package safety

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-engine/internal/domain"
)

func TestEvaluate_KeywordInSentenceTriggers(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	verdict := evaluator.Evaluate("There is a fire on the third floor of the municipal building")

	assert.True(t, verdict.OverrideTriggered)
	assert.Contains(t, verdict.MatchedKeywords, "fire")
	assert.Equal(t, domain.PriorityCritical, verdict.ForcedPriority)
}

func TestEvaluate_PhraseKeyword(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	verdict := evaluator.Evaluate("Gas leak reported at building 12, please send someone")

	assert.True(t, verdict.OverrideTriggered)
	assert.Contains(t, verdict.MatchedKeywords, "gas leak")
}

func TestEvaluate_CaseInsensitive(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	verdict := evaluator.Evaluate("EXPLOSION heard near the warehouse gate last night")

	assert.True(t, verdict.OverrideTriggered)
}

func TestEvaluate_WholeWordOnly(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	// "firefly" and "campfire" must not match the keyword "fire".
	verdict := evaluator.Evaluate("The firefly exhibit near the campfires area is closed")

	assert.False(t, verdict.OverrideTriggered)
	assert.Empty(t, verdict.MatchedKeywords)
}

func TestEvaluate_RepetitionBeyondLimitIsSpam(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	verdict := evaluator.Evaluate(strings.TrimSpace(strings.Repeat("fire ", 10)))

	assert.False(t, verdict.OverrideTriggered)
	assert.Contains(t, verdict.MatchedKeywords, "fire")
	assert.Empty(t, verdict.ForcedPriority)
}

func TestEvaluate_RepeatedKeywordWithoutContextIsSpam(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	verdict := evaluator.Evaluate("fire fire")

	assert.False(t, verdict.OverrideTriggered)
}

func TestEvaluate_SoleKeywordWithoutContextIsDiscounted(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	cases := []string{"fire", "fire!!!", "gas leak", "EMERGENCY"}
	for _, text := range cases {
		verdict := evaluator.Evaluate(text)
		assert.False(t, verdict.OverrideTriggered, "text %q", text)
		assert.NotEmpty(t, verdict.MatchedKeywords, "text %q", text)
		assert.Empty(t, verdict.ForcedPriority, "text %q", text)
	}
}

func TestEvaluate_RepeatedKeywordWithRealContextTriggers(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	verdict := evaluator.Evaluate("fire in the kitchen, fire spreading to the hallway, send help now")

	assert.True(t, verdict.OverrideTriggered)
}

func TestEvaluate_ConfigurableRepetitionLimit(t *testing.T) {
	strict := NewEvaluator(nil, 1, 3)

	verdict := strict.Evaluate("fire in the kitchen and another fire in the garage")

	assert.False(t, verdict.OverrideTriggered)
}

func TestEvaluate_NoKeywords(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)

	verdict := evaluator.Evaluate("Water bill is too high this month")

	assert.False(t, verdict.OverrideTriggered)
	assert.Empty(t, verdict.MatchedKeywords)
	assert.Empty(t, verdict.ForcedPriority)
}

func TestEvaluate_Deterministic(t *testing.T) {
	evaluator := NewEvaluator(nil, 3, 3)
	text := "gas leak near the school entrance, strong smell reported"

	first := evaluator.Evaluate(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, evaluator.Evaluate(text))
	}
}

func TestEvaluate_CustomKeywordList(t *testing.T) {
	evaluator := NewEvaluator([]string{"flood"}, 3, 3)

	require.True(t, evaluator.Evaluate("flood water entering the parking basement").OverrideTriggered)
	assert.False(t, evaluator.Evaluate("there is a fire in the lobby right now").OverrideTriggered)
}
