// Package pii detects and masks identifier patterns in raw ticket text
// before any other pipeline component sees it. Detection covers Emirates ID
// numbers, UAE phone numbers and email addresses. The redactor never logs
// raw matches; matched text leaves this package only inside the returned
// findings, which the orchestrator keeps transient.
package pii

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spec-kit/triage-engine/internal/domain"
)

// Placeholder tokens inserted in place of detected spans. They contain no
// digits or @ signs, so redaction is idempotent: placeholders never match
// any PII pattern.
const (
	PlaceholderEmiratesID = "[EMIRATES_ID_REDACTED]"
	PlaceholderPhone      = "[PHONE_REDACTED]"
	PlaceholderEmail      = "[EMAIL_REDACTED]"
	PlaceholderOther      = "[PII_REDACTED]"
)

var (
	// Emirates ID: 784 prefix, plausible 4-digit year, 7-digit serial and a
	// check digit, with or without separators.
	emiratesIDPattern = regexp.MustCompile(`\b784[- ]?(19\d{2}|20\d{2})[- ]?\d{7}[- ]?\d\b`)

	// UAE mobile/landline: +971 followed by 8-9 digits, a generic
	// international number, or the local leading-zero mobile form.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+971[- ]?\d(?:[- ]?\d){7,8}`),
		regexp.MustCompile(`\+\d{10,15}`),
		regexp.MustCompile(`\b05\d(?:[- ]?\d){7}\b`),
	}

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
)

// precedence orders overlapping candidate matches; the most specific
// pattern wins (an Emirates ID beats a generic digit-run phone match, and a
// full email address beats a phone number embedded in its local part).
var precedence = map[domain.PIIKind]int{
	domain.PIIKindEmiratesID:  3,
	domain.PIIKindEmail:       2,
	domain.PIIKindPhoneNumber: 1,
	domain.PIIKindOther:       0,
}

type candidate struct {
	kind  domain.PIIKind
	start int
	end   int
}

// Redactor performs pattern-based PII masking. It holds no mutable state
// and is safe for concurrent use.
type Redactor struct{}

// NewRedactor constructs a Redactor.
func NewRedactor() *Redactor {
	return &Redactor{}
}

// Redact returns the text with every detected span replaced by its kind's
// placeholder, plus the ordered findings. Surrounding text is preserved;
// finding offsets refer to the original input.
func (r *Redactor) Redact(text string) (string, []domain.PIIFinding) {
	candidates := collectCandidates(text)
	findings := resolveOverlaps(candidates, text)
	if len(findings) == 0 {
		return text, nil
	}

	var sb strings.Builder
	last := 0
	for _, f := range findings {
		sb.WriteString(text[last:f.Start])
		sb.WriteString(PlaceholderFor(f.Kind))
		last = f.End
	}
	sb.WriteString(text[last:])
	return sb.String(), findings
}

// PlaceholderFor maps a finding kind to its stable placeholder token.
func PlaceholderFor(kind domain.PIIKind) string {
	switch kind {
	case domain.PIIKindEmiratesID:
		return PlaceholderEmiratesID
	case domain.PIIKindPhoneNumber:
		return PlaceholderPhone
	case domain.PIIKindEmail:
		return PlaceholderEmail
	default:
		return PlaceholderOther
	}
}

func collectCandidates(text string) []candidate {
	var out []candidate
	for _, loc := range emiratesIDPattern.FindAllStringIndex(text, -1) {
		out = append(out, candidate{kind: domain.PIIKindEmiratesID, start: loc[0], end: loc[1]})
	}
	for _, p := range phonePatterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			out = append(out, candidate{kind: domain.PIIKindPhoneNumber, start: loc[0], end: loc[1]})
		}
	}
	for _, loc := range emailPattern.FindAllStringIndex(text, -1) {
		out = append(out, candidate{kind: domain.PIIKindEmail, start: loc[0], end: loc[1]})
	}
	return out
}

// resolveOverlaps greedily keeps candidates in precedence order, longest
// first, and rejects anything overlapping an accepted span. A rejected
// candidate of a different kind is recorded on the winning finding as an
// ambiguity.
func resolveOverlaps(candidates []candidate, text string) []domain.PIIFinding {
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := precedence[candidates[i].kind], precedence[candidates[j].kind]
		if pi != pj {
			return pi > pj
		}
		li, lj := candidates[i].end-candidates[i].start, candidates[j].end-candidates[j].start
		if li != lj {
			return li > lj
		}
		return candidates[i].start < candidates[j].start
	})

	var accepted []domain.PIIFinding
	for _, c := range candidates {
		overlapped := false
		for i := range accepted {
			if c.start < accepted[i].End && accepted[i].Start < c.end {
				overlapped = true
				if c.kind != accepted[i].Kind && !containsKind(accepted[i].AmbiguousWith, c.kind) {
					accepted[i].AmbiguousWith = append(accepted[i].AmbiguousWith, c.kind)
				}
				break
			}
		}
		if !overlapped {
			accepted = append(accepted, domain.PIIFinding{
				Kind:  c.kind,
				Match: text[c.start:c.end],
				Start: c.start,
				End:   c.end,
			})
		}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	return accepted
}

func containsKind(kinds []domain.PIIKind, kind domain.PIIKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
