// Package safety applies deterministic keyword rules to redacted text and
// can force Critical priority regardless of model output. Identical input
// always yields the identical verdict.
package safety

import (
	"regexp"
	"strings"

	"github.com/spec-kit/triage-engine/internal/domain"
)

// DefaultKeywords returns the built-in emergency term list.
func DefaultKeywords() []string {
	return []string{
		"fire",
		"emergency",
		"accident",
		"trapped",
		"gas leak",
		"electrocution",
		"collapse",
		"explosion",
		"ambulance",
		"life-threatening",
		"injury",
	}
}

// Evaluator scans for emergency keywords as whole words or short phrases,
// case-insensitively, with an anti-spam rule: a keyword repeated beyond the
// repetition limit, or appearing in a ticket with almost no other content,
// is discounted so keyword spam cannot force Critical priority.
type Evaluator struct {
	keywords        []string
	patterns        []*regexp.Regexp
	repetitionLimit int
	minContextWords int
}

// NewEvaluator builds an evaluator over the given keyword list. Zero or
// negative bounds fall back to the defaults (limit 3, context 3).
func NewEvaluator(keywords []string, repetitionLimit, minContextWords int) *Evaluator {
	if len(keywords) == 0 {
		keywords = DefaultKeywords()
	}
	if repetitionLimit <= 0 {
		repetitionLimit = 3
	}
	if minContextWords <= 0 {
		minContextWords = 3
	}

	patterns := make([]*regexp.Regexp, len(keywords))
	for i, keyword := range keywords {
		parts := strings.Fields(strings.ToLower(keyword))
		for j, part := range parts {
			parts[j] = regexp.QuoteMeta(part)
		}
		patterns[i] = regexp.MustCompile(`(?i)\b` + strings.Join(parts, `[\s-]+`) + `\b`)
	}

	return &Evaluator{
		keywords:        keywords,
		patterns:        patterns,
		repetitionLimit: repetitionLimit,
		minContextWords: minContextWords,
	}
}

// Evaluate returns the safety verdict for the given redacted text. All
// matched keywords are reported; the override triggers only when at least
// one match survives the anti-spam rule.
func (e *Evaluator) Evaluate(text string) domain.SafetyVerdict {
	totalWords := len(strings.Fields(text))

	var matched []string
	honored := false
	keywordWords := 0

	var counts []int
	for i, pattern := range e.patterns {
		count := len(pattern.FindAllStringIndex(text, -1))
		if count == 0 {
			continue
		}
		counts = append(counts, count)
		matched = append(matched, e.keywords[i])
		keywordWords += count * len(strings.Fields(e.keywords[i]))
	}

	contextWords := totalWords - keywordWords
	if contextWords < 0 {
		contextWords = 0
	}

	if contextWords >= e.minContextWords {
		for _, count := range counts {
			if count <= e.repetitionLimit {
				honored = true
				break
			}
		}
	}

	verdict := domain.SafetyVerdict{MatchedKeywords: matched}
	if honored {
		verdict.OverrideTriggered = true
		verdict.ForcedPriority = domain.PriorityCritical
	}
	return verdict
}
