// Package claims turns response text into a sequence of scored,
// verifiable claim records, filtering out generic prose that no fact
// source could confirm or deny.
package claims

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/model"
	"github.com/truthguard/truthguard/internal/textutil"
)

const minSentenceLen = 10

// confidence below which a claim is dropped unless it carries specific
// data or named entities.
const minClaimConfidence = 0.4

// Phrases that mark a sentence as a specific, checkable fact even when
// it otherwise reads as generic.
var specificFactPhrases = []string{
	"created by", "founded by", "released in", "developed by",
	"invented by", "discovered by", "established in", "launched in",
	"acquired by", "headquartered in", "written by", "designed by",
	"named after", "born in",
}

// Generic-statement shapes: unfalsifiable descriptive prose.
var genericPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bis\s+(a|an)\s+\w+(\s+\w+)?\s+(that|which)\b`),
	regexp.MustCompile(`(?i)\bis\s+known\s+for\b`),
	regexp.MustCompile(`(?i)\bis\s+(widely|commonly|generally|typically|often)\s+used\b`),
	regexp.MustCompile(`(?i)\bis\s+one\s+of\s+the\b`),
	regexp.MustCompile(`(?i)\b(allows|enables|provides|offers|helps|supports)\b`),
	regexp.MustCompile(`(?i)\bcan\s+be\s+used\b`),
	regexp.MustCompile(`(?i)\bmakes\s+it\s+(easy|easier|simple|possible)\b`),
}

// Adjectives of generic marketing prose; two or more marks a sentence generic.
var genericAdjectives = []string{
	"versatile", "flexible", "popular", "powerful", "useful", "simple",
	"easy", "robust", "efficient", "reliable", "scalable", "modern",
	"intuitive", "comprehensive",
}

// Determiners excluded from the proper-noun count.
var excludedLeadingWords = map[string]bool{
	"The": true, "This": true, "It": true, "That": true,
	"These": true, "Those": true, "A": true, "An": true,
}

// Cue words whose presence nudges claim confidence up.
var confidenceCues = []string{"according to", "data", "research", "study", "report", "statistics"}

var (
	capitalizedRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	fullNameRe    = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	particleRe    = regexp.MustCompile(`\b[A-Z][a-z]+\s+(van|von|de|der)\s+[A-Z][a-z]+\b`)
	regulatoryRe  = regexp.MustCompile(`(?i)\b(regulation|law|act|rule)\b`)
)

// Extract runs the full extraction over a response. Order follows
// sentence order; extraction is restartable (no state carried between calls).
func Extract(text string) []model.Claim {
	if text == "" {
		return nil
	}

	cleaned := textutil.CleanText(text)
	sentences := textutil.SegmentSentences(cleaned)

	var claims []model.Claim
	for _, sentence := range sentences {
		if len(sentence) < minSentenceLen {
			continue
		}

		numbers := textutil.ExtractNumbers(sentence)
		dates := textutil.ExtractDates(sentence)

		hasSpecificData := len(numbers) > 0 || len(dates) > 0
		hasSpecificNames := hasProperNouns(sentence)
		isSpecificFact := containsAny(strings.ToLower(sentence), specificFactPhrases)

		if isGeneric(sentence) && !hasSpecificData && !hasSpecificNames {
			continue
		}
		if !textutil.IsFactualStatement(sentence) {
			continue
		}

		confidence := claimConfidence(sentence, numbers, dates)
		if confidence < minClaimConfidence && !hasSpecificData && !hasSpecificNames {
			continue
		}

		claims = append(claims, model.Claim{
			Text:       sentence,
			Normalized: textutil.Normalize(sentence),
			Type:       classify(sentence, numbers, dates),
			Confidence: confidence,
			Numbers:    numbers,
			Dates:      dates,
			IsSpecific: hasSpecificData || hasSpecificNames || isSpecificFact,
		})
	}

	zap.L().Debug("claims: extraction complete",
		zap.Int("sentences", len(sentences)),
		zap.Int("claims", len(claims)),
	)
	return claims
}

// hasProperNouns reports whether a sentence names something concrete:
// a "First Last" or "X van Y" name pattern, or at least two capitalized
// tokens after dropping leading determiners.
func hasProperNouns(sentence string) bool {
	if fullNameRe.MatchString(sentence) || particleRe.MatchString(sentence) {
		return true
	}
	count := 0
	for _, w := range capitalizedRe.FindAllString(sentence, -1) {
		if !excludedLeadingWords[w] {
			count++
		}
	}
	return count >= 2
}

func isGeneric(sentence string) bool {
	for _, re := range genericPatterns {
		if re.MatchString(sentence) {
			return true
		}
	}
	lower := strings.ToLower(sentence)
	adjectives := 0
	for _, adj := range genericAdjectives {
		if strings.Contains(lower, adj) {
			adjectives++
		}
	}
	return adjectives >= 2
}

// claimConfidence starts at 0.5 and rewards specific data: +0.2 for
// numbers, +0.1 for dates, +0.1 for a factual cue phrase, capped at 1.0.
func claimConfidence(sentence string, numbers []textutil.Number, dates []textutil.Date) float64 {
	confidence := 0.5
	if len(numbers) > 0 {
		confidence += 0.2
	}
	if len(dates) > 0 {
		confidence += 0.1
	}
	if containsAny(strings.ToLower(sentence), confidenceCues) {
		confidence += 0.1
	}
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

func classify(sentence string, numbers []textutil.Number, dates []textutil.Date) model.ClaimType {
	if len(numbers) > 0 {
		for _, n := range numbers {
			if n.Type == textutil.NumberCurrency {
				return model.ClaimFinancial
			}
		}
		for _, n := range numbers {
			if n.Type == textutil.NumberPercentage {
				return model.ClaimStatistical
			}
		}
		return model.ClaimNumerical
	}
	if len(dates) > 0 {
		return model.ClaimTemporal
	}
	if regulatoryRe.MatchString(sentence) {
		return model.ClaimRegulatory
	}
	return model.ClaimFactual
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
