// Package textutil holds the shallow text heuristics the detection
// pipeline is built on: sentence segmentation, number/date extraction,
// and the factual-vs-opinion cue check. These are deliberately
// regex-level, not NLP; precision limits are a documented property of
// the system, not something to silently upgrade.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
	wordRe       = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

	foldCaser = cases.Fold()
)

// CleanText collapses runs of whitespace into single spaces and trims.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// SegmentSentences splits text on sentence-ending punctuation and drops
// empty segments.
func SegmentSentences(text string) []string {
	if text == "" {
		return nil
	}
	var sentences []string
	for _, s := range sentenceRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Normalize lowercases (Unicode case folding) and collapses whitespace,
// producing the canonical form used for claim comparison and cache keys.
func Normalize(text string) string {
	return CleanText(foldCaser.String(text))
}

// NumberType labels which regex family matched a number.
type NumberType string

const (
	NumberCurrency   NumberType = "currency"
	NumberPercentage NumberType = "percentage"
	NumberDecimal    NumberType = "decimal"
	NumberInteger    NumberType = "integer"
)

// Number is a numeric mention with its surrounding context.
type Number struct {
	Value    string     `json:"value"`
	Type     NumberType `json:"type"`
	Position int        `json:"position"`
	Context  string     `json:"context"`
}

var numberPatterns = []struct {
	re  *regexp.Regexp
	typ NumberType
}{
	{regexp.MustCompile(`\$[\d,]+\.?\d*`), NumberCurrency},
	{regexp.MustCompile(`[\d,]+\.?\d*\s*%`), NumberPercentage},
	{regexp.MustCompile(`[\d,]+\.?\d+`), NumberDecimal},
	{regexp.MustCompile(`\d+`), NumberInteger},
}

// ExtractNumbers finds currency, percentage, decimal and integer mentions.
// Families are applied independently, so one token can yield more than one
// match (a detail callers rely on only for presence, not counts).
func ExtractNumbers(text string) []Number {
	var numbers []Number
	for _, p := range numberPatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			numbers = append(numbers, Number{
				Value:    text[loc[0]:loc[1]],
				Type:     p.typ,
				Position: loc[0],
				Context:  ContextWindow(text, loc[0], loc[1], 20),
			})
		}
	}
	return numbers
}

// DateFormat labels which regex family matched a date.
type DateFormat string

const (
	DateISO    DateFormat = "iso"
	DateUS     DateFormat = "us"
	DateUSDash DateFormat = "us-dash"
	DateLong   DateFormat = "long"
)

// Date is a date mention with its surrounding context.
type Date struct {
	Text     string     `json:"date"`
	Format   DateFormat `json:"format"`
	Position int        `json:"position"`
	Context  string     `json:"context"`
}

var datePatterns = []struct {
	re     *regexp.Regexp
	format DateFormat
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), DateISO},
	{regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`), DateUS},
	{regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`), DateUSDash},
	{regexp.MustCompile(`(?i)(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`), DateLong},
}

// ExtractDates finds ISO, US slash, US dash and long month-name dates.
func ExtractDates(text string) []Date {
	var dates []Date
	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			dates = append(dates, Date{
				Text:     text[loc[0]:loc[1]],
				Format:   p.format,
				Position: loc[0],
				Context:  ContextWindow(text, loc[0], loc[1], 20),
			})
		}
	}
	return dates
}

var opinionCues = []string{"think", "believe", "feel", "opinion", "prefer", "should", "might", "could"}

var factualCues = []string{"is", "are", "was", "were", "has", "have", "according to", "data shows"}

// IsFactualStatement reports whether a sentence reads as a factual
// assertion rather than an opinion. Any opinion cue word vetoes; any
// factual cue confirms; otherwise defaults to factual.
func IsFactualStatement(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range opinionCues {
		if strings.Contains(lower, cue) {
			return false
		}
	}
	for _, cue := range factualCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return true
}

// Tokens returns the set of lowercase alphabetic tokens of length >= 3.
func Tokens(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		tokens[w] = true
	}
	return tokens
}

// OverlapRatio is |claim tokens ∩ reference tokens| / |claim tokens|.
// Returns 0 when the claim has no tokens.
func OverlapRatio(claimTokens, refTokens map[string]bool) float64 {
	if len(claimTokens) == 0 {
		return 0
	}
	matched := 0
	for t := range claimTokens {
		if refTokens[t] {
			matched++
		}
	}
	return float64(matched) / float64(len(claimTokens))
}

// Stopwords shared by key-term extraction across the pipeline.
var Stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"should": true, "could": true, "may": true, "might": true, "must": true,
	"can": true, "this": true, "that": true, "these": true, "those": true,
}

// KeyTerms returns lowercase words longer than 3 chars with stopwords removed,
// in order of first appearance.
func KeyTerms(text string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:!?()\"'")
		if len(w) > 3 && !Stopwords[w] {
			terms = append(terms, w)
		}
	}
	return terms
}

// ContextWindow returns the slice of text around [start,end) padded by
// radius bytes on each side, clamped to the text bounds.
func ContextWindow(text string, start, end, radius int) string {
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}
	return text[lo:hi]
}
