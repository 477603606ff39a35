package detect

import (
	"fmt"
	"strings"

	"github.com/truthguard/truthguard/internal/model"
)

// explain renders a human-readable account of the decision: status
// banner, violations, claim and citation tallies, and a closing
// reasoning line.
func explain(r *model.DetectionResult) string {
	var b strings.Builder

	switch r.Status {
	case model.StatusApproved:
		b.WriteString(fmt.Sprintf("APPROVED: Response validated with %.0f%% confidence.\n", r.ConfidenceScore*100))
	case model.StatusFlagged:
		b.WriteString(fmt.Sprintf("FLAGGED: Response requires review (%.0f%% confidence).\n", r.ConfidenceScore*100))
	case model.StatusBlocked:
		b.WriteString(fmt.Sprintf("BLOCKED: Response should not be sent (%.0f%% confidence).\n", r.ConfidenceScore*100))
	}

	if len(r.Violations) > 0 {
		b.WriteString("\nViolations:\n")
		for _, v := range r.Violations {
			b.WriteString(fmt.Sprintf("- [%s/%s] %s\n", v.Type, v.Severity, v.Description))
		}
	}

	if len(r.Verifications) > 0 {
		var verified, unverified, contradicted int
		for _, v := range r.Verifications {
			switch v.Status {
			case model.VerificationVerified:
				verified++
			case model.VerificationFalse:
				contradicted++
			default:
				unverified++
			}
		}
		b.WriteString(fmt.Sprintf("\nClaims: %d checked, %d verified, %d unverified, %d contradicted.\n",
			len(r.Verifications), verified, unverified, contradicted))
	}

	if len(r.Citations) > 0 {
		valid := 0
		for _, c := range r.Citations {
			if c.IsValid {
				valid++
			}
		}
		b.WriteString(fmt.Sprintf("Citations: %d checked, %d valid, %d invalid.\n",
			len(r.Citations), valid, len(r.Citations)-valid))
	}

	b.WriteString("\n" + reasoning(r))
	return b.String()
}

func reasoning(r *model.DetectionResult) string {
	switch r.Status {
	case model.StatusBlocked:
		return "Reasoning: severe or compounding violations make this response unsafe to send as-is."
	case model.StatusFlagged:
		if len(r.RealViolations()) > 0 {
			return "Reasoning: at least one policy, compliance, citation, or factual issue needs human review."
		}
		return "Reasoning: overall confidence is too low to approve automatically."
	default:
		return "Reasoning: no blocking issues found and confidence is sufficient."
	}
}
