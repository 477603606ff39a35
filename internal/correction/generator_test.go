package correction

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard/truthguard/internal/model"
)

type fakeProvider struct {
	name   string
	output string
	err    error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f.output, f.err
}

func complianceViolation(ruleName string) model.Violation {
	return model.Violation{
		Type:        model.ViolationCompliance,
		Severity:    model.SeverityHigh,
		Description: "Rule '" + ruleName + "' violated",
		RuleName:    ruleName,
	}
}

func TestGenerate_NoViolationsKeepsResponse(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q", "All good here.", nil)

	assert.Equal(t, "All good here.", c.CorrectedResponse)
	assert.Empty(t, c.ChangesMade)
	assert.InDelta(t, 1.0, c.Confidence, 0.001)
}

func TestGenerate_FinancialDisclaimer(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"This fund returns 12% annually.",
		[]model.Violation{complianceViolation("SEC Financial Promises")})

	assert.Contains(t, c.CorrectedResponse, "This is not financial advice")
	assert.Contains(t, c.ChangesMade, "Added financial disclaimer")
	assert.InDelta(t, 0.8, c.Confidence, 0.001)
}

func TestGenerate_DisclaimerNotDuplicated(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"Returns vary. Disclaimer: investing carries risk.",
		[]model.Violation{complianceViolation("SEC Financial Promises")})

	assert.NotContains(t, c.CorrectedResponse, "This is not financial advice")
	assert.NotContains(t, c.ChangesMade, "Added financial disclaimer")
}

func TestGenerate_SoftensGuaranteeLanguage(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"This investment is guaranteed and never fails.",
		[]model.Violation{complianceViolation("No Absolute Promises")})

	assert.NotContains(t, c.CorrectedResponse, "guaranteed")
	assert.NotContains(t, c.CorrectedResponse, "never fails")
	var softened bool
	for _, change := range c.ChangesMade {
		if change == "Softened guarantee language: never fails, guaranteed" {
			softened = true
		}
	}
	assert.True(t, softened, "changes: %v", c.ChangesMade)
}

func TestGenerate_AdjustsTimePromise(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"Your refund arrives within 24 hours.",
		[]model.Violation{{
			Type:        model.ViolationPolicy,
			Severity:    model.SeverityHigh,
			Description: "Response promises 1 days but policy allows 7 days",
			PolicyName:  "Refund Policy",
		}})

	assert.Contains(t, c.CorrectedResponse, "7-10 business days")
	assert.NotContains(t, c.CorrectedResponse, "24 hours")
	assert.Contains(t, c.ChangesMade, "Adjusted time promise: '24 hours' to '7-10 business days'")
}

func TestGenerate_TimePromiseNeedsMatchingDeviation(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"Your refund arrives within 24 hours.",
		[]model.Violation{{
			Type:        model.ViolationPolicy,
			Severity:    model.SeverityMedium,
			Description: "Response contradicts policy: uses 'free' vs policy 'charge'",
			PolicyName:  "Refund Policy",
		}})

	assert.Contains(t, c.CorrectedResponse, "24 hours")
	assert.Contains(t, c.ChangesMade, "Added policy acknowledgment")
}

func TestGenerate_SwapsAbsolutesTowardPolicy(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"Trial accounts are never backed up.",
		[]model.Violation{{
			Type:        model.ViolationPolicy,
			Severity:    model.SeverityMedium,
			Description: "Response contradicts policy: uses 'never' vs policy 'always'",
			PolicyName:  "Backup Policy",
		}})

	assert.Contains(t, c.CorrectedResponse, "always backed up")
	assert.NotContains(t, c.CorrectedResponse, "never")
	assert.Contains(t, c.ChangesMade, "Swapped 'never' for 'always' to match policy")
}

func TestGenerate_SoftensGuaranteeOnPolicyDeviation(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"Results are guaranteed for every plan.",
		[]model.Violation{{
			Type:        model.ViolationPolicy,
			Severity:    model.SeverityMedium,
			Description: "Response contradicts policy: uses 'guaranteed' vs policy 'cannot guarantee'",
			PolicyName:  "Outcome Disclaimer",
		}})

	assert.NotContains(t, c.CorrectedResponse, "guaranteed")
	assert.Contains(t, c.CorrectedResponse, "typically")
	assert.Contains(t, c.ChangesMade, "Softened 'guaranteed' language")
}

func TestGenerate_PolicyAcknowledgmentFallback(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"Shipping costs nothing for members.",
		[]model.Violation{{
			Type:       model.ViolationPolicy,
			Severity:   model.SeverityMedium,
			PolicyName: "Shipping Policy",
		}})

	assert.Contains(t, c.CorrectedResponse, "official policy (Shipping Policy)")
	assert.Contains(t, c.ChangesMade, "Added policy acknowledgment")
}

func TestGenerate_HallucinationDisclaimer(t *testing.T) {
	g := NewGenerator(nil)

	c := g.Generate(context.Background(), "q",
		"Our CEO invented the telephone.",
		[]model.Violation{{
			Type:     model.ViolationHallucination,
			Severity: model.SeverityHigh,
		}})

	assert.Contains(t, c.CorrectedResponse, "may require verification")
	assert.Contains(t, c.ChangesMade, "Added verification disclaimer")
}

func TestGenerate_ProviderRewriteWins(t *testing.T) {
	g := NewGenerator(&fakeProvider{name: "testmodel", output: "A fully rewritten response."})

	c := g.Generate(context.Background(), "q",
		"This is guaranteed.",
		[]model.Violation{complianceViolation("No Absolute Promises")})

	assert.Equal(t, "A fully rewritten response.", c.CorrectedResponse)
	assert.Contains(t, c.ChangesMade, "Rewrote response with testmodel assistance")
}

func TestGenerate_ProviderFailureKeepsHeuristics(t *testing.T) {
	g := NewGenerator(&fakeProvider{name: "testmodel", err: eris.New("timeout")})

	c := g.Generate(context.Background(), "q",
		"This is guaranteed.",
		[]model.Violation{complianceViolation("No Absolute Promises")})

	require.NotContains(t, c.CorrectedResponse, "guaranteed")
	assert.NotContains(t, c.ChangesMade, "Rewrote response with testmodel assistance")
}
