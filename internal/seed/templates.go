// Package seed provides built-in regulatory rule templates and YAML
// fixture loading for the seed command.
package seed

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/truthguard/truthguard/internal/model"
)

// Templates maps regulation name to its pre-defined compliance rules.
func Templates() map[string][]model.Rule {
	return map[string][]model.Rule{
		"EU AI Act": {
			{
				Name: "EU AI Act - Explainability Required", Type: model.RuleRegulatory,
				MatchType:    model.MatchKeyword,
				RequiredText: []string{"explain", "explanation", "reason", "because"},
				Action:       model.ActionFlag, Severity: model.SeverityHigh,
				Message:  "EU AI Act requires AI systems to provide explanations for decisions",
				IsActive: true,
			},
			{
				Name: "EU AI Act - Transparency", Type: model.RuleRegulatory,
				MatchType:     model.MatchKeyword,
				ForbiddenText: []string{"cannot explain", "black box", "proprietary algorithm"},
				Action:        model.ActionBlock, Severity: model.SeverityCritical,
				Message:  "EU AI Act requires transparency - cannot claim inability to explain",
				IsActive: true,
			},
		},
		"SEC": {
			{
				Name: "SEC - No Financial Guarantees", Type: model.RuleRegulatory,
				MatchType: model.MatchKeyword,
				Patterns:  []string{"guarantee", "guaranteed", "always profitable", "risk-free", "sure thing", "cannot lose"},
				Action:    model.ActionBlock, Severity: model.SeverityCritical,
				Message: "SEC prohibits guarantees of investment returns",
				Industry: "finance", IsActive: true,
			},
			{
				Name: "SEC - Required Risk Disclaimer", Type: model.RuleRegulatory,
				MatchType:    model.MatchKeyword,
				RequiredText: []string{"risk", "disclaimer", "past performance"},
				Action:       model.ActionFlag, Severity: model.SeverityHigh,
				Message: "SEC requires risk disclosure for financial advice",
				Industry: "finance", IsActive: true,
			},
			{
				Name: "SEC - No Specific Investment Advice", Type: model.RuleRegulatory,
				MatchType: model.MatchPattern,
				Patterns:  []string{`buy\s+\w+\s+stock`, `invest\s+in\s+\w+`, `you should\s+buy`},
				Action:    model.ActionFlag, Severity: model.SeverityHigh,
				Message: "SEC requires registered advisor for specific investment recommendations",
				Industry: "finance", IsActive: true,
			},
		},
		"CFPB": {
			{
				Name: "CFPB - No False Promises", Type: model.RuleRegulatory,
				MatchType: model.MatchKeyword,
				Patterns:  []string{"guaranteed approval", "definitely approved", "100% approved", "cannot be denied"},
				Action:    model.ActionBlock, Severity: model.SeverityCritical,
				Message: "CFPB prohibits false promises of loan/credit approval",
				Industry: "finance", IsActive: true,
			},
			{
				Name: "CFPB - Clear Terms Required", Type: model.RuleRegulatory,
				MatchType:     model.MatchKeyword,
				ForbiddenText: []string{"hidden fees", "fine print", "terms not disclosed"},
				Action:        model.ActionFlag, Severity: model.SeverityHigh,
				Message: "CFPB requires clear disclosure of all terms and fees",
				Industry: "finance", IsActive: true,
			},
		},
		"GDPR": {
			{
				Name: "GDPR - Data Deletion Rights", Type: model.RuleRegulatory,
				MatchType:    model.MatchKeyword,
				RequiredText: []string{"right to delete", "data deletion", "right to erasure"},
				Action:       model.ActionFlag, Severity: model.SeverityMedium,
				Message:  "GDPR requires acknowledgment of data deletion rights",
				IsActive: true,
			},
			{
				Name: "GDPR - No False Data Claims", Type: model.RuleRegulatory,
				MatchType: model.MatchKeyword,
				Patterns:  []string{"we never delete", "data stored forever", "permanent storage"},
				Action:    model.ActionBlock, Severity: model.SeverityCritical,
				Message:  "GDPR requires data deletion capability - cannot claim permanent storage",
				IsActive: true,
			},
		},
		"DOT": {
			{
				Name: "DOT - Accurate Refund Information", Type: model.RuleRegulatory,
				MatchType:     model.MatchKeyword,
				ForbiddenText: []string{"instant refund", "immediate refund", "refund in 24 hours"},
				Action:        model.ActionFlag, Severity: model.SeverityHigh,
				Message: "DOT requires accurate refund processing times",
				Industry: "airline", IsActive: true,
			},
			{
				Name: "DOT - No False Compensation Promises", Type: model.RuleRegulatory,
				MatchType: model.MatchKeyword,
				Patterns:  []string{"guaranteed compensation", "automatic refund", "always refund"},
				Action:    model.ActionBlock, Severity: model.SeverityCritical,
				Message: "DOT prohibits false promises about compensation",
				Industry: "airline", IsActive: true,
			},
		},
	}
}

// RulesForIndustry returns the template rules that apply to the given
// industry plus the industry-agnostic ones.
func RulesForIndustry(industry string) []model.Rule {
	var out []model.Rule
	for _, regulation := range Templates() {
		for _, r := range regulation {
			if r.Industry == "" || r.Industry == industry {
				out = append(out, r)
			}
		}
	}
	return out
}

type ruleFile struct {
	Rules []model.RuleSpec `yaml:"rules"`
}

type policySpec struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Content        string `yaml:"content"`
	Category       string `yaml:"category"`
	OrganizationID string `yaml:"organization_id"`
	IsActive       *bool  `yaml:"is_active"`
}

type policyFile struct {
	Policies []policySpec `yaml:"policies"`
}

// LoadRuleFile parses a YAML rule fixture file.
func LoadRuleFile(path string) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "seed: read %s", path)
	}
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "seed: parse %s", path)
	}
	rules := make([]model.Rule, 0, len(f.Rules))
	for _, spec := range f.Rules {
		rule, err := model.ParseRule(spec)
		if err != nil {
			return nil, eris.Wrapf(err, "seed: %s", path)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadPolicyFile parses a YAML policy fixture file. Policies with no
// explicit is_active default to active.
func LoadPolicyFile(path string) ([]model.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "seed: read %s", path)
	}
	var f policyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "seed: parse %s", path)
	}
	policies := make([]model.Policy, 0, len(f.Policies))
	for _, p := range f.Policies {
		policies = append(policies, model.Policy{
			ID:             p.ID,
			Name:           p.Name,
			Content:        p.Content,
			Category:       p.Category,
			OrganizationID: p.OrganizationID,
			IsActive:       p.IsActive == nil || *p.IsActive,
		})
	}
	return policies, nil
}
