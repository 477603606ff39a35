package detect

import (
	"github.com/truthguard/truthguard/internal/model"
	"github.com/truthguard/truthguard/internal/rules"
)

// Production component weights. Clarity is a reserved slot scored by a
// constant until a real clarity signal exists.
const (
	weightFact        = 0.25
	weightCitation    = 0.15
	weightConsistency = 0.10
	weightCompliance  = 0.25
	weightClarity     = 0.20

	clarityConstant = 0.8
)

var severityPenalties = map[model.Severity]float64{
	model.SeverityLow:      0.1,
	model.SeverityMedium:   0.3,
	model.SeverityHigh:     0.6,
	model.SeverityCritical: 1.0,
}

// buildBreakdown computes the five component scores. Each raw score is
// clamped to [0,1] before weighting.
func buildBreakdown(verifications []model.VerificationResult, citations model.CitationReport, consistencyScore float64, compliance rules.Result) model.ConfidenceBreakdown {
	return model.ConfidenceBreakdown{
		"fact_verification": component(factScore(verifications), weightFact,
			"Fact Verification", "How well the response's claims check out against knowledge sources",
			factDetails(verifications)),
		"citations": component(citationScore(citations), weightCitation,
			"Citations", "Whether cited sources actually resolve",
			map[string]any{
				"total": citations.TotalCitations,
				"valid": citations.ValidCitations,
				"fake":  citations.FakeCitations,
			}),
		"consistency": component(consistencyScore, weightConsistency,
			"Consistency", "Agreement with the organization's recent responses", nil),
		"compliance": component(complianceScore(compliance), weightCompliance,
			"Compliance", "Whether the response passes applicable compliance rules",
			map[string]any{
				"rules_checked": compliance.ApplicableRules,
				"violations":    len(compliance.Violations),
			}),
		"clarity": component(clarityConstant, weightClarity,
			"Clarity", "Readability of the response (constant placeholder)", nil),
	}
}

func component(score, weight float64, label, description string, details map[string]any) model.ComponentScore {
	clamped := clamp01(score)
	return model.ComponentScore{
		Score:         clamped,
		Weight:        weight,
		WeightedScore: clamped * weight,
		Label:         label,
		Description:   description,
		Details:       details,
	}
}

// totalConfidence sums the weighted components, clamped to [0,1].
func totalConfidence(breakdown model.ConfidenceBreakdown) float64 {
	var total float64
	for _, c := range breakdown {
		total += c.WeightedScore
	}
	return clamp01(total)
}

// factScore rewards verified claims, treats unverified ones as mildly
// positive (could not verify is not the same as wrong), and penalizes
// contradicted claims at full weight.
func factScore(verifications []model.VerificationResult) float64 {
	if len(verifications) == 0 {
		return 0.7
	}

	var verified, unverified, contradicted int
	var verifiedConfidence float64
	for _, v := range verifications {
		switch v.Status {
		case model.VerificationVerified:
			verified++
			verifiedConfidence += v.Confidence
		case model.VerificationFalse:
			contradicted++
		default:
			unverified++
		}
	}

	avgVerified := 0.0
	if verified > 0 {
		avgVerified = verifiedConfidence / float64(verified)
	}

	score := (float64(verified)*avgVerified + float64(unverified)*0.6 - float64(contradicted)*1.0) / float64(len(verifications))
	return clamp01(score)
}

func factDetails(verifications []model.VerificationResult) map[string]any {
	var verified, unverified, contradicted int
	for _, v := range verifications {
		switch v.Status {
		case model.VerificationVerified:
			verified++
		case model.VerificationFalse:
			contradicted++
		default:
			unverified++
		}
	}
	return map[string]any{
		"claims":       len(verifications),
		"verified":     verified,
		"unverified":   unverified,
		"contradicted": contradicted,
	}
}

// citationScore is the valid fraction of URL citations. Absence of
// citations is not penalized.
func citationScore(report model.CitationReport) float64 {
	total := report.ValidCitations + report.FakeCitations
	if total == 0 {
		return 1.0
	}
	return float64(report.ValidCitations) / float64(total)
}

// complianceScore is 1.0 on a clean pass, otherwise discounted by the
// worst violation's severity penalty.
func complianceScore(compliance rules.Result) float64 {
	if compliance.Passed {
		return 1.0
	}
	maxPenalty := 0.0
	for _, v := range compliance.Violations {
		if p := severityPenalties[v.Severity]; p > maxPenalty {
			maxPenalty = p
		}
	}
	return 1.0 - maxPenalty
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
