package model

import "time"

// DetectionStatus is the terminal decision for one validated response.
type DetectionStatus string

const (
	StatusApproved DetectionStatus = "approved"
	StatusFlagged  DetectionStatus = "flagged"
	StatusBlocked  DetectionStatus = "blocked"
)

// ComponentScore is one entry of the confidence breakdown: a raw
// component score, its weight, and the resulting weighted contribution.
type ComponentScore struct {
	Score         float64        `json:"score"`
	Weight        float64        `json:"weight"`
	WeightedScore float64        `json:"weighted_score"`
	Label         string         `json:"label"`
	Description   string         `json:"description"`
	Details       map[string]any `json:"details,omitempty"`
}

// ConfidenceBreakdown maps component name -> score entry. Built once per
// run for transparency; recomputable from the same inputs, never treated
// as authoritative state.
type ConfidenceBreakdown map[string]ComponentScore

// DetectionResult is the terminal artifact of one detection run.
// Created fresh per request and never mutated after return.
type DetectionResult struct {
	Status          DetectionStatus      `json:"status"`
	ConfidenceScore float64              `json:"confidence_score"`
	Breakdown       ConfidenceBreakdown  `json:"confidence_breakdown"`
	Violations      []Violation          `json:"violations"`
	Verifications   []VerificationResult `json:"verification_results"`
	Citations       []Citation           `json:"citations"`
	Claims          []Claim              `json:"claims"`
	Explanation     string               `json:"explanation"`
}

// RealViolations returns the subset of violations that can drive a
// flag/block decision on their own (everything except consistency).
func (r *DetectionResult) RealViolations() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.IsReal() {
			out = append(out, v)
		}
	}
	return out
}

// HasSeverity reports whether any violation is at least the given severity.
func (r *DetectionResult) HasSeverity(min Severity) bool {
	for _, v := range r.Violations {
		if v.Severity.Rank() >= min.Rank() {
			return true
		}
	}
	return false
}

// Interaction is the persisted audit record for one validated exchange.
type Interaction struct {
	ID                string          `json:"id"`
	OrganizationID    string          `json:"organization_id"`
	UserQuery         string          `json:"user_query"`
	AIResponse        string          `json:"ai_response"`
	ValidatedResponse string          `json:"validated_response,omitempty"`
	Status            DetectionStatus `json:"status"`
	ConfidenceScore   float64         `json:"confidence_score"`
	AIModel           string          `json:"ai_model,omitempty"`
	SessionID         string          `json:"session_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Correction is the output of the correction generator: a rewritten
// response plus a human-readable list of what changed.
type Correction struct {
	CorrectedResponse string   `json:"corrected_response"`
	ChangesMade       []string `json:"changes_made"`
	Confidence        float64  `json:"confidence"`
	OriginalResponse  string   `json:"original_response"`
}
