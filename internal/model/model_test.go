package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule_Defaults(t *testing.T) {
	rule, err := ParseRule(RuleSpec{Name: "Minimal", Keywords: []string{"foo"}})
	require.NoError(t, err)

	assert.Equal(t, RuleCustom, rule.Type)
	assert.Equal(t, MatchKeyword, rule.MatchType)
	assert.Equal(t, ActionFlag, rule.Action)
	assert.Equal(t, SeverityMedium, rule.Severity)
	assert.True(t, rule.IsActive)
	assert.Equal(t, []string{"foo"}, rule.Patterns)
}

func TestParseRule_PatternsWinOverKeywords(t *testing.T) {
	rule, err := ParseRule(RuleSpec{
		Name:     "Both",
		Patterns: []string{"pattern"},
		Keywords: []string{"keyword"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pattern"}, rule.Patterns)
}

func TestParseRule_InvalidEnums(t *testing.T) {
	tests := []struct {
		name string
		spec RuleSpec
	}{
		{"bad type", RuleSpec{Name: "x", Type: "statutory"}},
		{"bad match type", RuleSpec{Name: "x", MatchType: "fuzzy"}},
		{"bad action", RuleSpec{Name: "x", Action: "escalate"}},
		{"bad severity", RuleSpec{Name: "x", Severity: "catastrophic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRule(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestParseRule_ExplicitInactive(t *testing.T) {
	inactive := false
	rule, err := ParseRule(RuleSpec{Name: "Off", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, rule.IsActive)
}

func TestRuleSpecRoundTrip(t *testing.T) {
	original := Rule{
		ID:            "r-1",
		Name:          "No Guarantees",
		Type:          RuleRegulatory,
		MatchType:     MatchKeyword,
		Patterns:      []string{"guaranteed"},
		RequiredText:  []string{"risk disclosure"},
		ForbiddenText: []string{"guaranteed returns"},
		Action:        ActionBlock,
		Severity:      SeverityCritical,
		Message:       "no absolute promises",
		Industry:      "finance",
		IsActive:      true,
	}

	raw, err := json.Marshal(original.Spec())
	require.NoError(t, err)

	var spec RuleSpec
	require.NoError(t, json.Unmarshal(raw, &spec))
	parsed, err := ParseRule(spec)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestSeverityRankAndMax(t *testing.T) {
	assert.Less(t, SeverityLow.Rank(), SeverityMedium.Rank())
	assert.Less(t, SeverityMedium.Rank(), SeverityHigh.Rank())
	assert.Less(t, SeverityHigh.Rank(), SeverityCritical.Rank())
	assert.Zero(t, Severity("bogus").Rank())

	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityLow, SeverityHigh))
	assert.Equal(t, SeverityHigh, MaxSeverity(SeverityHigh, SeverityMedium))
	assert.Equal(t, SeverityCritical, MaxSeverity(SeverityCritical, SeverityCritical))
}

func TestParseSeverity(t *testing.T) {
	sev, err := ParseSeverity("high")
	require.NoError(t, err)
	assert.Equal(t, SeverityHigh, sev)

	_, err = ParseSeverity("severe")
	assert.Error(t, err)
}

func TestParseViolationType(t *testing.T) {
	vt, err := ParseViolationType("hallucination")
	require.NoError(t, err)
	assert.Equal(t, ViolationHallucination, vt)

	_, err = ParseViolationType("vibes")
	assert.Error(t, err)
}

func TestViolationIsReal(t *testing.T) {
	assert.True(t, Violation{Type: ViolationHallucination}.IsReal())
	assert.True(t, Violation{Type: ViolationError}.IsReal())
	assert.False(t, Violation{Type: ViolationConsistency}.IsReal())
}

func TestDetectionResultHelpers(t *testing.T) {
	r := &DetectionResult{Violations: []Violation{
		{Type: ViolationConsistency, Severity: SeverityMedium},
		{Type: ViolationPolicy, Severity: SeverityLow},
		{Type: ViolationCompliance, Severity: SeverityHigh},
	}}

	real := r.RealViolations()
	require.Len(t, real, 2)
	assert.Equal(t, ViolationPolicy, real[0].Type)
	assert.Equal(t, ViolationCompliance, real[1].Type)

	assert.True(t, r.HasSeverity(SeverityHigh))
	assert.False(t, r.HasSeverity(SeverityCritical))
}
