package model

import "github.com/truthguard/truthguard/internal/textutil"

// ClaimType classifies what kind of assertion a claim makes.
type ClaimType string

const (
	ClaimFactual     ClaimType = "factual"
	ClaimFinancial   ClaimType = "financial"
	ClaimStatistical ClaimType = "statistical"
	ClaimNumerical   ClaimType = "numerical"
	ClaimTemporal    ClaimType = "temporal"
	ClaimRegulatory  ClaimType = "regulatory"
)

// Claim is a single factual assertion extracted from a response,
// awaiting verification. Immutable once created.
type Claim struct {
	Text       string            `json:"text"`
	Normalized string            `json:"normalized"`
	Type       ClaimType         `json:"claim_type"`
	Confidence float64           `json:"confidence"`
	Numbers    []textutil.Number `json:"numbers,omitempty"`
	Dates      []textutil.Date   `json:"dates,omitempty"`
	IsSpecific bool              `json:"is_specific"`
}

// VerificationStatus is the outcome of checking one claim against
// external knowledge sources.
type VerificationStatus string

const (
	VerificationVerified          VerificationStatus = "verified"
	VerificationUnverified        VerificationStatus = "unverified"
	VerificationFalse             VerificationStatus = "false"
	VerificationPartiallyVerified VerificationStatus = "partially_verified"
)

// VerificationResult records how one claim fared against the knowledge
// sources. A status of "false" means a source positively contradicted
// the claim, which downstream becomes a hallucination violation.
type VerificationResult struct {
	ClaimText  string             `json:"claim_text"`
	Status     VerificationStatus `json:"verification_status"`
	Confidence float64            `json:"confidence"`
	Source     string             `json:"source,omitempty"`
	Details    string             `json:"details,omitempty"`
	URL        string             `json:"url,omitempty"`
}
