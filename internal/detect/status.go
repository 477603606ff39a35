package detect

import (
	"strings"

	"github.com/truthguard/truthguard/internal/model"
)

// decideStatus walks the decision ladder in priority order; the first
// matching rung wins. The ladder is deliberately conservative: one
// real violation always at least flags, and consistency issues alone
// almost never gate approval.
func decideStatus(response string, violations []model.Violation, confidence float64) model.DetectionStatus {
	var real, consistencyOnly []model.Violation
	hasCritical := false
	hasHigh := false
	for _, v := range violations {
		if v.Severity == model.SeverityCritical {
			hasCritical = true
		}
		if v.Severity.Rank() >= model.SeverityHigh.Rank() {
			hasHigh = true
		}
		if v.IsReal() {
			real = append(real, v)
		} else {
			consistencyOnly = append(consistencyOnly, v)
		}
	}

	switch {
	case hasCritical:
		return model.StatusBlocked
	case hasHigh && len(real) > 0:
		return model.StatusBlocked
	case len(real) > 0:
		return model.StatusFlagged
	case len(consistencyOnly) > 0:
		if confidence < 0.3 && len(consistencyOnly) > 1 {
			return model.StatusFlagged
		}
		return model.StatusApproved
	case len(strings.Fields(response)) < 3:
		if confidence < 0.3 {
			return model.StatusFlagged
		}
		return model.StatusApproved
	case confidence < 0.5:
		return model.StatusFlagged
	default:
		return model.StatusApproved
	}
}
