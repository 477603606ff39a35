// Package rules evaluates structured compliance rules against responses.
package rules

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/model"
)

// Result is the outcome of checking one response against a rule set.
type Result struct {
	Passed          bool              `json:"passed"`
	Violations      []model.Violation `json:"violations"`
	ApplicableRules int               `json:"rules_checked"`
	Severity        model.Severity    `json:"severity,omitempty"`
}

// FilterApplicable selects the rules that apply to an organization and
// industry. A rule applies when its organization matches, its industry
// matches, or it is global (neither set). Inactive rules never apply.
func FilterApplicable(all []model.Rule, organizationID, industry string) []model.Rule {
	var applicable []model.Rule
	for _, r := range all {
		if !r.IsActive {
			continue
		}
		orgMatch := r.OrganizationID != "" && r.OrganizationID == organizationID
		industryMatch := r.Industry != "" && r.Industry == industry
		global := r.OrganizationID == "" && r.Industry == ""
		if orgMatch || industryMatch || global {
			applicable = append(applicable, r)
		}
	}
	return applicable
}

// CheckCompliance evaluates every applicable rule against the response
// and returns all violations. Overall severity is the maximum across
// violations.
func CheckCompliance(response string, applicable []model.Rule) Result {
	result := Result{Passed: true, ApplicableRules: len(applicable)}

	for _, r := range applicable {
		if v := evaluate(response, r); v != nil {
			result.Violations = append(result.Violations, *v)
			result.Passed = false
		}
	}

	if len(result.Violations) > 0 {
		result.Severity = result.Violations[0].Severity
		for _, v := range result.Violations[1:] {
			result.Severity = model.MaxSeverity(result.Severity, v.Severity)
		}
	}
	return result
}

// evaluate checks one rule and returns a violation, or nil on pass.
// Checks run in order: forbidden text, required text, then the match
// type dispatch. The first failing check wins.
func evaluate(response string, r model.Rule) *model.Violation {
	responseLower := strings.ToLower(response)

	for _, forbidden := range r.ForbiddenText {
		if forbidden != "" && strings.Contains(responseLower, strings.ToLower(forbidden)) {
			return violation(r, "contains forbidden text: "+forbidden)
		}
	}

	var missing []string
	for _, required := range r.RequiredText {
		if required != "" && !strings.Contains(responseLower, strings.ToLower(required)) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return violation(r, "missing required text: "+strings.Join(missing, ", "))
	}

	switch r.MatchType {
	case model.MatchPattern:
		var matched []string
		for _, p := range r.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				zap.L().Warn("rules: skipping invalid pattern",
					zap.String("rule", r.Name), zap.String("pattern", p), zap.Error(err))
				continue
			}
			if re.MatchString(response) {
				matched = append(matched, p)
			}
		}
		if len(matched) > 0 {
			return violation(r, "matched patterns: "+strings.Join(matched, ", "))
		}
	default:
		// Keyword matching; semantic and custom rules fall back to it.
		var matched []string
		for _, kw := range r.Patterns {
			if kw != "" && strings.Contains(responseLower, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > 0 {
			return violation(r, "matched keywords: "+strings.Join(matched, ", "))
		}
	}
	return nil
}

func violation(r model.Rule, detail string) *model.Violation {
	description := r.Message
	if description == "" {
		description = "Rule '" + r.Name + "' violated"
	}
	return &model.Violation{
		Type:        model.ViolationCompliance,
		Severity:    r.Severity,
		Description: description + " (" + detail + ")",
		RuleName:    r.Name,
	}
}
