package model

import "github.com/rotisserie/eris"

// Severity ranks how serious a violation is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// severityRanks orders severities for comparisons: low < medium < high < critical.
var severityRanks = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the numeric position of s in the severity ladder.
// Unknown severities rank below low.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// ParseSeverity validates a severity string.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if _, ok := severityRanks[sev]; !ok {
		return "", eris.Errorf("model: invalid severity %q", s)
	}
	return sev, nil
}

// MaxSeverity returns the higher of two severities.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// ViolationType identifies which detector produced a violation.
type ViolationType string

const (
	ViolationHallucination ViolationType = "hallucination"
	ViolationCitation      ViolationType = "citation"
	ViolationConsistency   ViolationType = "consistency"
	ViolationCompliance    ViolationType = "compliance"
	ViolationPolicy        ViolationType = "policy"
	ViolationError         ViolationType = "error"
)

var violationTypes = map[ViolationType]bool{
	ViolationHallucination: true,
	ViolationCitation:      true,
	ViolationConsistency:   true,
	ViolationCompliance:    true,
	ViolationPolicy:        true,
	ViolationError:         true,
}

// ParseViolationType validates a violation type string.
func ParseViolationType(s string) (ViolationType, error) {
	vt := ViolationType(s)
	if !violationTypes[vt] {
		return "", eris.Errorf("model: invalid violation type %q", s)
	}
	return vt, nil
}

// Violation is a single issue found during one detection run.
// Violations accumulate append-only; they are never edited after creation.
type Violation struct {
	Type        ViolationType `json:"type"`
	Severity    Severity      `json:"severity"`
	Description string        `json:"description"`
	RuleName    string        `json:"rule_name,omitempty"`
	PolicyName  string        `json:"policy_name,omitempty"`
}

// IsReal reports whether the violation can independently drive a
// flag/block decision. Consistency findings are excluded: the consistency
// signal is too noisy to gate approval on its own.
func (v Violation) IsReal() bool {
	return v.Type != ViolationConsistency
}
