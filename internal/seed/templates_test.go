package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard/truthguard/internal/model"
)

func TestTemplates_AllRulesValid(t *testing.T) {
	for regulation, rules := range Templates() {
		require.NotEmpty(t, rules, regulation)
		for _, r := range rules {
			assert.NotEmpty(t, r.Name, regulation)
			assert.Equal(t, model.RuleRegulatory, r.Type, r.Name)
			assert.NotZero(t, r.Severity.Rank(), r.Name)
			assert.True(t, r.IsActive, r.Name)
			// Every rule needs something to match or require.
			assert.True(t, len(r.Patterns) > 0 || len(r.RequiredText) > 0 || len(r.ForbiddenText) > 0, r.Name)
		}
	}
}

func TestRulesForIndustry(t *testing.T) {
	finance := RulesForIndustry("finance")

	names := make(map[string]bool, len(finance))
	for _, r := range finance {
		names[r.Name] = true
		assert.True(t, r.Industry == "" || r.Industry == "finance", r.Name)
	}

	assert.True(t, names["SEC - No Financial Guarantees"])
	assert.True(t, names["CFPB - No False Promises"])
	// Industry-agnostic regulations come along.
	assert.True(t, names["GDPR - No False Data Claims"])
	assert.True(t, names["EU AI Act - Transparency"])
	// Airline-only rules stay out.
	assert.False(t, names["DOT - No False Compensation Promises"])
}

func TestLoadRuleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - name: "No Medical Claims"
    type: custom
    match_type: keyword_match
    keywords: ["cures", "treats", "diagnoses"]
    action: flag
    severity: high
  - name: "Minimal Rule"
    keywords: ["foo"]
`), 0o644))

	rules, err := LoadRuleFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "No Medical Claims", rules[0].Name)
	assert.Equal(t, model.SeverityHigh, rules[0].Severity)
	assert.Equal(t, []string{"cures", "treats", "diagnoses"}, rules[0].Patterns)

	// Defaults fill in the minimal rule.
	assert.Equal(t, model.RuleCustom, rules[1].Type)
	assert.Equal(t, model.SeverityMedium, rules[1].Severity)
	assert.True(t, rules[1].IsActive)
}

func TestLoadRuleFile_InvalidRule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  - name: "Broken"
    severity: catastrophic
`), 0o644))

	_, err := LoadRuleFile(path)
	assert.Error(t, err)
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
policies:
  - id: refund-policy
    name: "Refund Policy"
    content: "Refunds are processed within 7-10 business days."
    category: refund
  - name: "Retired Policy"
    content: "n/a"
    is_active: false
`), 0o644))

	policies, err := LoadPolicyFile(path)
	require.NoError(t, err)
	require.Len(t, policies, 2)

	assert.Equal(t, "refund-policy", policies[0].ID)
	assert.Equal(t, "refund", policies[0].Category)
	assert.True(t, policies[0].IsActive)
	assert.False(t, policies[1].IsActive)
}

func TestLoadRuleFile_MissingFile(t *testing.T) {
	_, err := LoadRuleFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
