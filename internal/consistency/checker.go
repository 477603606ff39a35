// Package consistency scores how well a response agrees with the
// organization's recent responses to similar queries.
package consistency

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/textutil"
)

// HistorySource provides prior responses for an organization, newest
// first.
type HistorySource interface {
	RecentResponses(ctx context.Context, organizationID string, limit int) ([]string, error)
}

// historyLimit caps how many prior responses are compared.
const historyLimit = 5

// Checker scores response consistency against history.
type Checker struct {
	source HistorySource
}

func NewChecker(source HistorySource) *Checker {
	return &Checker{source: source}
}

// HistoricalScore fetches recent responses and scores the current one
// against them. History fetch failures degrade to a no-history score
// rather than failing the run.
func (c *Checker) HistoricalScore(ctx context.Context, organizationID, response string) float64 {
	if c.source == nil || organizationID == "" {
		return Score(response, nil)
	}

	history, err := c.source.RecentResponses(ctx, organizationID, historyLimit)
	if err != nil {
		zap.L().Warn("consistency: history fetch failed",
			zap.String("organization_id", organizationID), zap.Error(err))
		return Score(response, nil)
	}
	return Score(response, history)
}

// Score compares a response to prior responses using averaged pairwise
// token overlap. Sparse history scores leniently: with nothing to
// compare against, a response cannot be inconsistent.
func Score(response string, history []string) float64 {
	switch len(history) {
	case 0:
		return 0.9
	case 1:
		return 0.8
	}

	all := append([]string{response}, history...)
	sets := make([]map[string]bool, len(all))
	for i, text := range all {
		sets[i] = contentTokens(text)
	}

	var total float64
	var pairs int
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			total += jaccard(sets[i], sets[j])
			pairs++
		}
	}
	score := total / float64(pairs)

	// Very short responses carry too little signal for overlap scoring.
	if len(strings.Fields(response)) < 3 {
		return max(score, 0.5)
	}

	if score < 0.2 {
		if len(history) < 3 {
			return 0.7
		}
		return max(score, 0.4)
	}
	return score
}

// contentTokens returns the stopword-filtered token set of text.
func contentTokens(text string) map[string]bool {
	tokens := textutil.Tokens(text)
	out := make(map[string]bool, len(tokens))
	for t := range tokens {
		if !textutil.Stopwords[t] {
			out[t] = true
		}
	}
	return out
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for t := range a {
		if b[t] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}
