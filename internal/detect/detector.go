// Package detect orchestrates the full validation pipeline: claim
// extraction, fact verification, citation validation, compliance and
// policy checks, consistency scoring, and the final approve/flag/block
// decision.
package detect

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/citations"
	"github.com/truthguard/truthguard/internal/claims"
	"github.com/truthguard/truthguard/internal/consistency"
	"github.com/truthguard/truthguard/internal/facts"
	"github.com/truthguard/truthguard/internal/model"
	"github.com/truthguard/truthguard/internal/policy"
	"github.com/truthguard/truthguard/internal/rules"
)

// Sources provides the org-scoped rule and policy sets. Implemented by
// the store.
type Sources interface {
	LoadRules(ctx context.Context) ([]model.Rule, error)
	LoadPolicies(ctx context.Context, organizationID string) ([]model.Policy, error)
}

// Input is one response to validate.
type Input struct {
	Query          string `json:"user_query"`
	Response       string `json:"ai_response"`
	OrganizationID string `json:"organization_id,omitempty"`
	Industry       string `json:"industry,omitempty"`
	AIModel        string `json:"ai_model,omitempty"`
	SessionID      string `json:"session_id,omitempty"`
}

// Detector runs the detection pipeline.
type Detector struct {
	facts       *facts.Verifier
	citations   *citations.Verifier
	consistency *consistency.Checker
	sources     Sources
}

func NewDetector(f *facts.Verifier, c *citations.Verifier, cons *consistency.Checker, sources Sources) *Detector {
	return &Detector{facts: f, citations: c, consistency: cons, sources: sources}
}

// Detect validates one response. It always returns a well-formed
// result: pipeline failures surface as a flagged result carrying an
// error violation, never as an error to the caller.
func (d *Detector) Detect(ctx context.Context, in Input) (result *model.DetectionResult) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("detect: pipeline panic", zap.Any("panic", r))
			result = errorResult(fmt.Sprintf("pipeline failure: %v", r))
		}
	}()

	extracted := claims.Extract(in.Response)
	zap.L().Debug("detect: claims extracted",
		zap.Int("count", len(extracted)),
		zap.String("organization_id", in.OrganizationID))

	verifications := d.facts.VerifyAll(ctx, extracted, in.Query)
	citationReport := d.citations.ExtractAndValidate(ctx, in.Response)

	allRules, err := d.sources.LoadRules(ctx)
	if err != nil {
		zap.L().Error("detect: rule load failed", zap.Error(err))
		return errorResult("could not load compliance rules: " + err.Error())
	}
	policies, err := d.sources.LoadPolicies(ctx, in.OrganizationID)
	if err != nil {
		zap.L().Error("detect: policy load failed", zap.Error(err))
		return errorResult("could not load policies: " + err.Error())
	}

	applicable := rules.FilterApplicable(allRules, in.OrganizationID, in.Industry)
	compliance := rules.CheckCompliance(in.Response, applicable)
	policyMatches := policy.MatchPolicies(in.Response, policies)
	consistencyScore := d.consistency.HistoricalScore(ctx, in.OrganizationID, in.Response)

	var violations []model.Violation
	for _, v := range verifications {
		if v.Status == model.VerificationFalse {
			violations = append(violations, model.Violation{
				Type:        model.ViolationHallucination,
				Severity:    model.SeverityHigh,
				Description: "Potential hallucination: '" + v.ClaimText + "'. " + v.Details,
			})
		}
	}
	if citationReport.FakeCitations > 0 {
		violations = append(violations, model.Violation{
			Type:        model.ViolationCitation,
			Severity:    model.SeverityHigh,
			Description: fmt.Sprintf("Found %d invalid/fake citations", citationReport.FakeCitations),
		})
	}
	violations = append(violations, compliance.Violations...)
	violations = append(violations, policy.DetectViolations(policyMatches)...)
	if consistencyScore < 0.5 {
		violations = append(violations, model.Violation{
			Type:        model.ViolationConsistency,
			Severity:    model.SeverityMedium,
			Description: fmt.Sprintf("Response is inconsistent with recent responses (score %.2f)", consistencyScore),
		})
	}

	breakdown := buildBreakdown(verifications, citationReport, consistencyScore, compliance)
	confidence := totalConfidence(breakdown)

	result = &model.DetectionResult{
		ConfidenceScore: confidence,
		Breakdown:       breakdown,
		Violations:      violations,
		Verifications:   verifications,
		Citations:       citationReport.URLs,
		Claims:          extracted,
	}
	result.Status = decideStatus(in.Response, violations, confidence)
	result.Explanation = explain(result)

	zap.L().Info("detect: run complete",
		zap.String("status", string(result.Status)),
		zap.Float64("confidence", confidence),
		zap.Int("violations", len(violations)),
		zap.String("organization_id", in.OrganizationID))
	return result
}

// errorResult is the fallback shape when the pipeline itself fails:
// callers always get a result, with flagging as the signal of
// internal trouble.
func errorResult(description string) *model.DetectionResult {
	r := &model.DetectionResult{
		Status:          model.StatusFlagged,
		ConfidenceScore: 0.5,
		Violations: []model.Violation{{
			Type:        model.ViolationError,
			Severity:    model.SeverityMedium,
			Description: description,
		}},
	}
	r.Explanation = explain(r)
	return r
}
