// Package correction rewrites violating responses into compliant ones.
// Heuristic fixup passes run per violation group in a fixed order
// (compliance, policy, hallucination); an optional LLM pass may then
// replace the result outright.
package correction

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/llm"
	"github.com/truthguard/truthguard/internal/model"
)

const financialDisclaimer = "\n\nNote: This is not financial advice. Please consult a licensed financial advisor. Past performance does not guarantee future results."

const verificationDisclaimer = "\n\nNote: Some information may require verification."

// guaranteeWords are absolute-certainty phrases that compliance fixes
// soften. Longer phrases first so replacements don't clobber substrings.
var guaranteeWords = []string{"never fails", "risk-free", "guaranteed", "guarantee", "always"}

var timeReplacements = []struct{ from, to string }{
	{"24 hours", "7-10 business days"},
	{"immediately", "within 7-10 business days"},
	{"immediate", "within 7-10 business days"},
}

// Generator produces corrections. provider may be nil, in which case
// only the heuristic passes run.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate rewrites the response to address the given violations.
func (g *Generator) Generate(ctx context.Context, query, response string, violations []model.Violation) model.Correction {
	corrected := response
	var changes []string

	byType := map[model.ViolationType][]model.Violation{}
	for _, v := range violations {
		byType[v.Type] = append(byType[v.Type], v)
	}

	if vs := byType[model.ViolationCompliance]; len(vs) > 0 {
		corrected, changes = fixCompliance(corrected, vs, changes)
	}
	if vs := byType[model.ViolationPolicy]; len(vs) > 0 {
		corrected, changes = fixPolicy(corrected, vs, changes)
	}
	if vs := byType[model.ViolationHallucination]; len(vs) > 0 {
		corrected, changes = fixHallucination(corrected, changes)
	}

	if g.provider != nil && len(violations) > 0 {
		if rewritten, err := g.rewrite(ctx, query, response, corrected, violations); err != nil {
			zap.L().Warn("correction: llm rewrite failed, keeping heuristic output", zap.Error(err))
		} else if rewritten != "" {
			corrected = rewritten
			changes = append(changes, "Rewrote response with "+g.provider.Name()+" assistance")
		}
	}

	confidence := 1.0
	if corrected != response {
		confidence = 0.8
	}
	return model.Correction{
		CorrectedResponse: corrected,
		ChangesMade:       changes,
		Confidence:        confidence,
		OriginalResponse:  response,
	}
}

// fixCompliance appends a financial disclaimer when a financial or SEC
// rule was violated and none exists, then softens absolute-guarantee
// language.
func fixCompliance(text string, violations []model.Violation, changes []string) (string, []string) {
	needsDisclaimer := false
	for _, v := range violations {
		nameLower := strings.ToLower(v.RuleName + " " + v.Description)
		if strings.Contains(nameLower, "financial") || strings.Contains(nameLower, "sec") {
			needsDisclaimer = true
			break
		}
	}
	textLower := strings.ToLower(text)
	if needsDisclaimer && !strings.Contains(textLower, "disclaimer") && !strings.Contains(textLower, "risk") {
		text += financialDisclaimer
		changes = append(changes, "Added financial disclaimer")
	}

	var softened []string
	for _, w := range guaranteeWords {
		if containsFold(text, w) {
			text = replaceFold(text, w, "may")
			softened = append(softened, w)
		}
	}
	if len(softened) > 0 {
		changes = append(changes, "Softened guarantee language: "+strings.Join(softened, ", "))
	}
	return text, changes
}

// fixPolicy aligns the response with what the reported deviation says is
// wrong: absolute-word contradictions get the response side swapped to
// the policy's term, short time promises are stretched when the
// deviation mentions days or hours, and guarantee language is softened
// when the deviation mentions it. When nothing targeted applies, an
// acknowledgment note naming the policy is appended.
func fixPolicy(text string, violations []model.Violation, changes []string) (string, []string) {
	var b strings.Builder
	for _, v := range violations {
		b.WriteString(strings.ToLower(v.Description))
		b.WriteByte(' ')
	}
	deviation := b.String()

	fixed := false

	if strings.Contains(deviation, "policy 'never'") && containsFold(text, "always") {
		text = replaceFold(text, "always", "never")
		changes = append(changes, "Swapped 'always' for 'never' to match policy")
		fixed = true
	} else if strings.Contains(deviation, "policy 'always'") && containsFold(text, "never") {
		text = replaceFold(text, "never", "always")
		changes = append(changes, "Swapped 'never' for 'always' to match policy")
		fixed = true
	}

	if strings.Contains(deviation, "day") || strings.Contains(deviation, "hour") {
		for _, r := range timeReplacements {
			if containsFold(text, r.from) {
				text = replaceFold(text, r.from, r.to)
				changes = append(changes, fmt.Sprintf("Adjusted time promise: '%s' to '%s'", r.from, r.to))
				fixed = true
			}
		}
	}

	if strings.Contains(deviation, "guarantee") || strings.Contains(deviation, "promise") {
		for _, w := range []string{"guaranteed", "guarantee", "promise"} {
			if containsFold(text, w) {
				text = replaceFold(text, w, "typically")
				changes = append(changes, "Softened '"+w+"' language")
				fixed = true
			}
		}
	}

	if !fixed {
		names := make([]string, 0, len(violations))
		for _, v := range violations {
			if v.PolicyName != "" {
				names = append(names, v.PolicyName)
			}
		}
		note := "\n\nNote: Please refer to our official policies for exact terms."
		if len(names) > 0 {
			note = "\n\nNote: Please refer to our official policy (" + strings.Join(names, ", ") + ") for exact terms."
		}
		text += note
		changes = append(changes, "Added policy acknowledgment")
	}
	return text, changes
}

func fixHallucination(text string, changes []string) (string, []string) {
	if !strings.Contains(strings.ToLower(text), "may require verification") {
		text += verificationDisclaimer
		changes = append(changes, "Added verification disclaimer")
	}
	return text, changes
}

func (g *Generator) rewrite(ctx context.Context, query, original, corrected string, violations []model.Violation) (string, error) {
	var summary strings.Builder
	for _, v := range violations {
		summary.WriteString(fmt.Sprintf("- [%s/%s] %s\n", v.Type, v.Severity, v.Description))
	}

	system := "You rewrite customer-service responses to remove compliance, policy, and factual problems while keeping the helpful intent. Reply with the rewritten response only."
	prompt := fmt.Sprintf(
		"Customer query:\n%s\n\nOriginal response:\n%s\n\nDetected problems:\n%s\nDraft correction:\n%s\n\nProduce the final corrected response.",
		query, original, summary.String(), corrected)

	return g.provider.Complete(ctx, system, prompt)
}

// containsFold and replaceFold do case-insensitive whole-string
// matching; replacements keep the remaining text untouched.
func containsFold(text, sub string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(sub))
}

func replaceFold(text, from, to string) string {
	lower := strings.ToLower(text)
	fromLower := strings.ToLower(from)
	var b strings.Builder
	for {
		i := strings.Index(lower, fromLower)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(to)
		text = text[i+len(from):]
		lower = lower[i+len(fromLower):]
	}
}
