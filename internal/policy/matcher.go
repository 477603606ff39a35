// Package policy checks responses against free-text company policies
// using lexical contradiction pairs and time-promise comparison.
package policy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/truthguard/truthguard/internal/model"
)

// Match records how one policy relates to the response.
type Match struct {
	PolicyName string  `json:"policy_name"`
	Matched    bool    `json:"matched"`
	Deviation  string  `json:"deviation,omitempty"`
	Confidence float64 `json:"confidence"`
}

// contradictionPairs are word pairs where the response using one side
// while the policy uses the other signals a contradiction. Checked in
// both directions.
var contradictionPairs = [][2]string{
	{"always", "never"},
	{"guaranteed", "cannot guarantee"},
	{"immediate", "within"},
	{"free", "charge"},
}

// timeRe tolerates ranges ("7-10 business days"); the first number is
// what the promise is held to.
var timeRe = regexp.MustCompile(`(?i)(\d+)(?:\s*-\s*\d+)?\s*(?:business\s+)?(day|hour|minute|week)`)

// MatchPolicies compares the response against each active policy and
// reports matches and deviations.
func MatchPolicies(response string, policies []model.Policy) []Match {
	responseLower := strings.ToLower(response)

	var matches []Match
	for _, p := range policies {
		if !p.IsActive {
			continue
		}
		matches = append(matches, matchOne(responseLower, p))
	}
	return matches
}

func matchOne(responseLower string, p model.Policy) Match {
	policyLower := strings.ToLower(p.Content)

	for _, pair := range contradictionPairs {
		a, b := pair[0], pair[1]
		if strings.Contains(responseLower, a) && strings.Contains(policyLower, b) {
			return contradiction(p, a, b)
		}
		if strings.Contains(responseLower, b) && strings.Contains(policyLower, a) {
			return contradiction(p, b, a)
		}
	}

	if strings.Contains(strings.ToLower(p.Category), "refund") {
		if dev := refundTimeDeviation(responseLower, policyLower); dev != "" {
			return Match{
				PolicyName: p.Name,
				Matched:    false,
				Deviation:  dev,
				Confidence: 0.9,
			}
		}
	}

	return Match{PolicyName: p.Name, Matched: true, Confidence: 0.7}
}

// contradiction reports a word-pair clash with the response side first,
// so the deviation names which term the policy actually uses.
func contradiction(p model.Policy, responseWord, policyWord string) Match {
	return Match{
		PolicyName: p.Name,
		Matched:    false,
		Deviation:  fmt.Sprintf("Response contradicts policy: uses '%s' vs policy '%s'", responseWord, policyWord),
		Confidence: 0.8,
	}
}

// refundTimeDeviation compares the first time promise in the response
// against the first one in the policy, normalized to days. A response
// promising a shorter window than the policy allows is a deviation.
func refundTimeDeviation(responseLower, policyLower string) string {
	responseDays, ok1 := firstTimeInDays(responseLower)
	policyDays, ok2 := firstTimeInDays(policyLower)
	if ok1 && ok2 && responseDays < policyDays {
		return fmt.Sprintf("Response promises %s days but policy allows %s days",
			formatDays(responseDays), formatDays(policyDays))
	}
	return ""
}

func firstTimeInDays(text string) (float64, bool) {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "hour":
		return n / 24, true
	case "minute":
		return n / (24 * 60), true
	case "week":
		return n * 7, true
	default:
		return n, true
	}
}

func formatDays(d float64) string {
	if d == float64(int64(d)) {
		return strconv.FormatInt(int64(d), 10)
	}
	return strconv.FormatFloat(d, 'g', 3, 64)
}

// DetectViolations turns policy deviations into violations. Confidence
// above 0.8 escalates the severity to high.
func DetectViolations(matches []Match) []model.Violation {
	var violations []model.Violation
	for _, m := range matches {
		if m.Matched {
			continue
		}
		severity := model.SeverityMedium
		if m.Confidence > 0.8 {
			severity = model.SeverityHigh
		}
		violations = append(violations, model.Violation{
			Type:        model.ViolationPolicy,
			Severity:    severity,
			Description: m.Deviation,
			PolicyName:  m.PolicyName,
		})
	}
	return violations
}
