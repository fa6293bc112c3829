package pii

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-engine/internal/domain"
)

func TestRedact_EmiratesID(t *testing.T) {
	redactor := NewRedactor()

	redacted, findings := redactor.Redact("My ID is 784-1990-1234567-1 please help")

	require.Len(t, findings, 1)
	assert.Equal(t, domain.PIIKindEmiratesID, findings[0].Kind)
	assert.Equal(t, "784-1990-1234567-1", findings[0].Match)
	assert.Equal(t, "My ID is [EMIRATES_ID_REDACTED] please help", redacted)
}

func TestRedact_EmiratesIDWithoutSeparators(t *testing.T) {
	redactor := NewRedactor()

	redacted, findings := redactor.Redact("id 784202412345671 attached")

	require.Len(t, findings, 1)
	assert.Equal(t, domain.PIIKindEmiratesID, findings[0].Kind)
	assert.Equal(t, "id [EMIRATES_ID_REDACTED] attached", redacted)
}

func TestRedact_ImplausibleYearNotEmiratesID(t *testing.T) {
	redactor := NewRedactor()

	_, findings := redactor.Redact("ref 784-1234-1234567-1 on the form")

	for _, f := range findings {
		assert.NotEqual(t, domain.PIIKindEmiratesID, f.Kind)
	}
}

func TestRedact_PhoneNumbers(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"international", "call me at +971501234567 today"},
		{"international separators", "call +971 50 123 4567 today"},
		{"local", "call 0501234567 today"},
		{"local separators", "call 050-1234567 today"},
	}
	redactor := NewRedactor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			redacted, findings := redactor.Redact(tc.text)
			require.Len(t, findings, 1)
			assert.Equal(t, domain.PIIKindPhoneNumber, findings[0].Kind)
			assert.Contains(t, redacted, PlaceholderPhone)
			assert.NotContains(t, redacted, findings[0].Match)
		})
	}
}

func TestRedact_Email(t *testing.T) {
	redactor := NewRedactor()

	redacted, findings := redactor.Redact("reach me on citizen@example.ae thanks")

	require.Len(t, findings, 1)
	assert.Equal(t, domain.PIIKindEmail, findings[0].Kind)
	assert.Equal(t, "reach me on [EMAIL_REDACTED] thanks", redacted)
}

func TestRedact_MultipleFindingsOrderedByOffset(t *testing.T) {
	redactor := NewRedactor()
	text := "Gas leak reported at building 12, Emirates ID 784-1990-1234567-1, call +971501234567"

	redacted, findings := redactor.Redact(text)

	require.Len(t, findings, 2)
	assert.Equal(t, domain.PIIKindEmiratesID, findings[0].Kind)
	assert.Equal(t, domain.PIIKindPhoneNumber, findings[1].Kind)
	assert.Less(t, findings[0].Start, findings[1].Start)
	assert.Contains(t, redacted, PlaceholderEmiratesID)
	assert.Contains(t, redacted, PlaceholderPhone)
	assert.Contains(t, redacted, "Gas leak reported at building 12")
}

func TestRedact_OffsetsReferToOriginalText(t *testing.T) {
	redactor := NewRedactor()
	text := "call +971501234567 now"

	_, findings := redactor.Redact(text)

	require.Len(t, findings, 1)
	assert.Equal(t, findings[0].Match, text[findings[0].Start:findings[0].End])
}

func TestRedact_Idempotent(t *testing.T) {
	redactor := NewRedactor()
	inputs := []string{
		"My ID is 784-1990-1234567-1, call +971501234567 or citizen@example.ae",
		"no pii here at all",
		"",
	}
	for _, text := range inputs {
		once, _ := redactor.Redact(text)
		twice, findings := redactor.Redact(once)
		assert.Equal(t, once, twice)
		assert.Empty(t, findings)
	}
}

func TestRedact_NoLeakage(t *testing.T) {
	redactor := NewRedactor()
	text := "ID 784-2001-7654321-9 phone 050-1234567 mail a.b@example.com"

	redacted, findings := redactor.Redact(text)

	require.Len(t, findings, 3)
	for _, f := range findings {
		assert.NotContains(t, redacted, f.Match)
	}
}

func TestRedact_EmailContainingPhoneResolvesToEmail(t *testing.T) {
	redactor := NewRedactor()

	redacted, findings := redactor.Redact("contact user+9715012345678@mail.com please")

	require.Len(t, findings, 1)
	assert.Equal(t, domain.PIIKindEmail, findings[0].Kind)
	assert.Contains(t, findings[0].AmbiguousWith, domain.PIIKindPhoneNumber)
	assert.Equal(t, "contact [EMAIL_REDACTED] please", redacted)
}

func TestRedact_NoPII(t *testing.T) {
	redactor := NewRedactor()

	redacted, findings := redactor.Redact("Water bill is too high this month")

	assert.Empty(t, findings)
	assert.Equal(t, "Water bill is too high this month", redacted)
}

func TestPlaceholdersMatchNoPattern(t *testing.T) {
	redactor := NewRedactor()
	all := strings.Join([]string{
		PlaceholderEmiratesID, PlaceholderPhone, PlaceholderEmail, PlaceholderOther,
	}, " ")

	_, findings := redactor.Redact(all)

	assert.Empty(t, findings)
}
