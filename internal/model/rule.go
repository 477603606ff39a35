package model

import "github.com/rotisserie/eris"

// RuleType distinguishes where a compliance rule comes from.
type RuleType string

const (
	RuleRegulatory RuleType = "regulatory"
	RulePolicy     RuleType = "policy"
	RuleCustom     RuleType = "custom"
)

// MatchType selects how a rule's patterns are evaluated against text.
type MatchType string

const (
	MatchKeyword  MatchType = "keyword_match"
	MatchPattern  MatchType = "pattern_match"
	MatchSemantic MatchType = "semantic_match"
	MatchCustom   MatchType = "custom"
)

// RuleAction is what should happen when a rule is violated.
type RuleAction string

const (
	ActionBlock   RuleAction = "block"
	ActionFlag    RuleAction = "flag"
	ActionWarn    RuleAction = "warn"
	ActionRewrite RuleAction = "rewrite"
)

var (
	ruleTypes   = map[RuleType]bool{RuleRegulatory: true, RulePolicy: true, RuleCustom: true}
	matchTypes  = map[MatchType]bool{MatchKeyword: true, MatchPattern: true, MatchSemantic: true, MatchCustom: true}
	ruleActions = map[RuleAction]bool{ActionBlock: true, ActionFlag: true, ActionWarn: true, ActionRewrite: true}
)

// Rule is an org- or industry-scoped compliance constraint expressed as
// keyword/pattern/required/forbidden text checks. Immutable within a run.
type Rule struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           RuleType   `json:"rule_type"`
	MatchType      MatchType  `json:"match_type"`
	Patterns       []string   `json:"patterns,omitempty"`
	RequiredText   []string   `json:"required_text,omitempty"`
	ForbiddenText  []string   `json:"forbidden_text,omitempty"`
	Action         RuleAction `json:"action"`
	Severity       Severity   `json:"severity"`
	Message        string     `json:"message,omitempty"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Industry       string     `json:"industry,omitempty"`
	IsActive       bool       `json:"is_active"`
}

// RuleSpec is the raw, untyped rule definition as stored or seeded.
// ParseRule turns it into a validated Rule.
type RuleSpec struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"rule_name" yaml:"name"`
	Type           string   `json:"rule_type" yaml:"type"`
	MatchType      string   `json:"match_type" yaml:"match_type"`
	Patterns       []string `json:"patterns" yaml:"patterns"`
	Keywords       []string `json:"keywords" yaml:"keywords"`
	RequiredText   []string `json:"required_text" yaml:"required_text"`
	ForbiddenText  []string `json:"forbidden_text" yaml:"forbidden_text"`
	Action         string   `json:"action" yaml:"action"`
	Severity       string   `json:"severity" yaml:"severity"`
	Message        string   `json:"message" yaml:"message"`
	OrganizationID string   `json:"organization_id" yaml:"organization_id"`
	Industry       string   `json:"industry" yaml:"industry"`
	IsActive       *bool    `json:"is_active" yaml:"is_active"`
}

// ParseRule validates a RuleSpec and applies defaults: type=custom,
// match_type=keyword_match, action=flag, severity=medium, active=true.
// Keywords and Patterns are merged; either field may carry the match list.
func ParseRule(spec RuleSpec) (Rule, error) {
	r := Rule{
		ID:             spec.ID,
		Name:           spec.Name,
		Type:           RuleType(spec.Type),
		MatchType:      MatchType(spec.MatchType),
		Patterns:       spec.Patterns,
		RequiredText:   spec.RequiredText,
		ForbiddenText:  spec.ForbiddenText,
		Action:         RuleAction(spec.Action),
		Severity:       Severity(spec.Severity),
		Message:        spec.Message,
		OrganizationID: spec.OrganizationID,
		Industry:       spec.Industry,
		IsActive:       true,
	}
	if len(r.Patterns) == 0 {
		r.Patterns = spec.Keywords
	}
	if r.Type == "" {
		r.Type = RuleCustom
	}
	if r.MatchType == "" {
		r.MatchType = MatchKeyword
	}
	if r.Action == "" {
		r.Action = ActionFlag
	}
	if r.Severity == "" {
		r.Severity = SeverityMedium
	}
	if spec.IsActive != nil {
		r.IsActive = *spec.IsActive
	}

	if !ruleTypes[r.Type] {
		return Rule{}, eris.Errorf("model: rule %q: invalid rule type %q", r.Name, spec.Type)
	}
	if !matchTypes[r.MatchType] {
		return Rule{}, eris.Errorf("model: rule %q: invalid match type %q", r.Name, spec.MatchType)
	}
	if !ruleActions[r.Action] {
		return Rule{}, eris.Errorf("model: rule %q: invalid action %q", r.Name, spec.Action)
	}
	if _, ok := severityRanks[r.Severity]; !ok {
		return Rule{}, eris.Errorf("model: rule %q: invalid severity %q", r.Name, spec.Severity)
	}
	return r, nil
}

// Spec converts a validated Rule back to its storable spec form.
func (r Rule) Spec() RuleSpec {
	active := r.IsActive
	return RuleSpec{
		ID:             r.ID,
		Name:           r.Name,
		Type:           string(r.Type),
		MatchType:      string(r.MatchType),
		Patterns:       r.Patterns,
		RequiredText:   r.RequiredText,
		ForbiddenText:  r.ForbiddenText,
		Action:         string(r.Action),
		Severity:       string(r.Severity),
		Message:        r.Message,
		OrganizationID: r.OrganizationID,
		Industry:       r.Industry,
		IsActive:       &active,
	}
}

// Policy is a company-specific free-text rule, checked via lexical
// contradiction and time-promise heuristics rather than structured matching.
type Policy struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"policy_name" yaml:"name"`
	Content        string `json:"policy_content" yaml:"content"`
	Category       string `json:"category" yaml:"category"`
	OrganizationID string `json:"organization_id" yaml:"organization_id"`
	IsActive       bool   `json:"is_active" yaml:"is_active"`
}
