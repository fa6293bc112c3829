// Package model implements an artifact-backed linear scorer. The training
// pipeline exports each trained TF-IDF + logistic-regression model as a
// plain JSON artifact; this package loads the artifact once and serves
// read-only inference.
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/pkg/util"
)

// Artifact is the persisted form of one trained model.
type Artifact struct {
	Classes      []string       `json:"classes"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Coefficients [][]float64    `json:"coefficients"`
	Intercepts   []float64      `json:"intercepts"`
}

// tokenPattern mirrors the vectorizer used at training time: lowercase
// word tokens of two or more characters.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// LinearScorer scores text against a loaded artifact. It is immutable after
// construction and safe for concurrent use.
type LinearScorer struct {
	artifact Artifact
}

// Load reads and validates a model artifact from disk.
func Load(path string) (*LinearScorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, util.NewModelUnavailable(fmt.Sprintf("read model artifact %s", path), err)
	}
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, util.NewModelUnavailable(fmt.Sprintf("decode model artifact %s", path), err)
	}
	return New(artifact)
}

// New constructs a scorer from an in-memory artifact, validating dimensions.
func New(artifact Artifact) (*LinearScorer, error) {
	if len(artifact.Classes) < 2 {
		return nil, util.NewModelUnavailable("model artifact has fewer than two classes", nil)
	}
	if len(artifact.Coefficients) != len(artifact.Classes) {
		return nil, util.NewModelUnavailable("model artifact coefficient rows do not match classes", nil)
	}
	if len(artifact.Intercepts) != len(artifact.Classes) {
		return nil, util.NewModelUnavailable("model artifact intercepts do not match classes", nil)
	}
	if len(artifact.IDF) != len(artifact.Vocabulary) {
		return nil, util.NewModelUnavailable("model artifact idf length does not match vocabulary", nil)
	}
	for _, row := range artifact.Coefficients {
		if len(row) != len(artifact.Vocabulary) {
			return nil, util.NewModelUnavailable("model artifact coefficient row does not match vocabulary", nil)
		}
	}
	for token, index := range artifact.Vocabulary {
		if index < 0 || index >= len(artifact.IDF) {
			return nil, util.NewModelUnavailable(fmt.Sprintf("model artifact vocabulary index out of range for %q", token), nil)
		}
	}
	return &LinearScorer{artifact: artifact}, nil
}

// Labels returns the classes the scorer predicts over.
func (s *LinearScorer) Labels() []string {
	labels := make([]string, len(s.artifact.Classes))
	copy(labels, s.artifact.Classes)
	return labels
}

// Score vectorizes the text, applies the linear model and softmax, and
// returns the label with the highest probability.
func (s *LinearScorer) Score(_ context.Context, text string) (domain.ClassificationResult, error) {
	features := s.vectorize(text)

	scores := make([]float64, len(s.artifact.Classes))
	for i := range s.artifact.Classes {
		score := s.artifact.Intercepts[i]
		row := s.artifact.Coefficients[i]
		for index, value := range features {
			score += row[index] * value
		}
		scores[i] = score
	}

	probs := softmax(scores)
	distribution := make(map[string]float64, len(probs))
	best := 0
	for i, class := range s.artifact.Classes {
		distribution[class] = probs[i]
		if probs[i] > probs[best] {
			best = i
		}
	}

	return domain.ClassificationResult{
		Label:        s.artifact.Classes[best],
		Distribution: distribution,
		Confidence:   probs[best],
	}, nil
}

// vectorize produces an L2-normalized sparse TF-IDF vector keyed by feature
// index.
func (s *LinearScorer) vectorize(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if index, ok := s.artifact.Vocabulary[token]; ok {
			counts[index]++
		}
	}

	norm := 0.0
	for index := range counts {
		counts[index] *= s.artifact.IDF[index]
		norm += counts[index] * counts[index]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for index := range counts {
			counts[index] /= norm
		}
	}
	return counts
}

func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}
	sum := 0.0
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
