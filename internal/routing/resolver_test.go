package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-engine/internal/domain"
	"github.com/spec-kit/triage-engine/pkg/util"
)

func TestResolve_DefaultTableCoversEveryPair(t *testing.T) {
	resolver, err := NewResolver(DefaultTable())
	require.NoError(t, err)

	for _, category := range domain.Categories() {
		for _, priority := range domain.Priorities() {
			decision, err := resolver.Resolve(category, priority)
			require.NoError(t, err, "category %s priority %s", category, priority)
			assert.NotEmpty(t, decision.Department)
			assert.NotEmpty(t, decision.ActionItems)
		}
	}
}

func TestResolve_CategoryToDepartment(t *testing.T) {
	resolver, err := NewResolver(DefaultTable())
	require.NoError(t, err)

	cases := map[domain.Category]string{
		domain.CategorySafetyEmergency: "Emergency Response Center",
		domain.CategoryTechnicalIT:     "IT Support Division",
		domain.CategoryBilling:         "Finance & Accounts Department",
		domain.CategoryFacilities:      "Municipal Services Department",
		domain.CategoryInquiry:         "Customer Service Center",
	}
	for category, department := range cases {
		decision, err := resolver.Resolve(category, domain.PriorityMedium)
		require.NoError(t, err)
		assert.Equal(t, department, decision.Department)
	}
}

func TestResolve_CriticalRedirectsToEmergencyDepartment(t *testing.T) {
	resolver, err := NewResolver(DefaultTable())
	require.NoError(t, err)

	decision, err := resolver.Resolve(domain.CategoryBilling, domain.PriorityCritical)

	require.NoError(t, err)
	assert.Equal(t, "Emergency Response Center", decision.Department)
}

func TestResolve_UnmappedCategoryIsConfigurationError(t *testing.T) {
	resolver, err := NewResolver(DefaultTable())
	require.NoError(t, err)

	_, err = resolver.Resolve(domain.Category("Parking"), domain.PriorityLow)

	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeConfigurationError))
}

func TestNewResolver_MissingCategoryFailsFast(t *testing.T) {
	table := DefaultTable()
	delete(table, domain.CategoryInquiry)

	_, err := NewResolver(table)

	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeConfigurationError))
}

func TestNewResolver_EmptyActionListFailsFast(t *testing.T) {
	table := DefaultTable()
	route := table[domain.CategoryBilling]
	route.Actions[domain.PriorityLow] = nil
	table[domain.CategoryBilling] = route

	_, err := NewResolver(table)

	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeConfigurationError))
}

func TestResolve_CopiesActionItems(t *testing.T) {
	resolver, err := NewResolver(DefaultTable())
	require.NoError(t, err)

	first, err := resolver.Resolve(domain.CategoryInquiry, domain.PriorityLow)
	require.NoError(t, err)
	first.ActionItems[0] = "mutated"

	second, err := resolver.Resolve(domain.CategoryInquiry, domain.PriorityLow)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.ActionItems[0])
}

func TestSentimentFollowUps(t *testing.T) {
	assert.Len(t, SentimentFollowUps(domain.SentimentNegative), 2)
	assert.Len(t, SentimentFollowUps(domain.SentimentPositive), 1)
	assert.Empty(t, SentimentFollowUps(domain.SentimentNeutral))
}
