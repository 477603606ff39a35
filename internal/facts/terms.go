package facts

import (
	"regexp"
	"strings"

	"github.com/truthguard/truthguard/internal/textutil"
)

var (
	subjectIsRe   = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?i:is)\s+`)
	capitalWordRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	alphaWordRe   = regexp.MustCompile(`\b[a-zA-Z]+\b`)

	predicateRes = []*regexp.Regexp{
		regexp.MustCompile(`is\s+(?:a|an|the)?\s*([^.]+)`),
		regexp.MustCompile(`are\s+(?:a|an|the)?\s*([^.]+)`),
		regexp.MustCompile(`was\s+(?:a|an|the)?\s*([^.]+)`),
		regexp.MustCompile(`were\s+(?:a|an|the)?\s*([^.]+)`),
	}

	descriptionRes = []*regexp.Regexp{
		regexp.MustCompile(`is\s+(?:a|an|the)?\s*([^.,;]+)`),
		regexp.MustCompile(`are\s+(?:a|an|the)?\s*([^.,;]+)`),
	}

	trailingPunctRe = regexp.MustCompile(`[.,;:!?]+$`)
)

// searchTerms builds a compact search query from a claim. A leading
// capitalized "X is ..." pattern yields just the subject; otherwise
// stopwords are stripped and capitalized tokens are moved to the front,
// keeping at most maxTerms words.
func searchTerms(claim string, maxTerms int) string {
	if m := subjectIsRe.FindStringSubmatch(claim); m != nil {
		return strings.TrimSpace(m[1])
	}

	var important []string
	for _, w := range alphaWordRe.FindAllString(strings.ToLower(claim), -1) {
		if !textutil.Stopwords[w] && len(w) > 2 {
			important = append(important, w)
		}
	}

	capitalized := capitalWordRe.FindAllString(claim, -1)
	if len(capitalized) > 0 {
		seen := make(map[string]bool, len(capitalized))
		var ordered []string
		for _, cw := range capitalized {
			lw := strings.ToLower(cw)
			if !seen[lw] {
				seen[lw] = true
				ordered = append(ordered, lw)
			}
		}
		for _, w := range important {
			if !seen[w] {
				seen[w] = true
				ordered = append(ordered, w)
			}
		}
		important = ordered
	}

	if len(important) > maxTerms {
		important = important[:maxTerms]
	}
	if len(important) == 0 {
		if len(claim) > 50 {
			return claim[:50]
		}
		return claim
	}
	return strings.Join(important, " ")
}

// claimPredicate extracts what a (lowercased) claim says its subject IS:
// "react is a body part" -> "body part". At most five words are kept.
func claimPredicate(claimLower string) string {
	for _, re := range predicateRes {
		if m := re.FindStringSubmatch(claimLower); m != nil {
			predicate := trailingPunctRe.ReplaceAllString(strings.TrimSpace(m[1]), "")
			words := strings.Fields(predicate)
			if len(words) > 5 {
				words = words[:5]
			}
			return strings.Join(words, " ")
		}
	}
	return ""
}

// articleDescription extracts what an article says its subject is, from
// the first sentence of a lowercased summary. Falls back to coarse
// domain labels derived from the bucket keyword lists, then to a raw
// prefix of the first sentence.
func articleDescription(summaryLower, titleLower string) string {
	firstSentence := summaryLower
	if idx := strings.Index(summaryLower, "."); idx >= 0 {
		firstSentence = summaryLower[:idx]
	} else if len(firstSentence) > 200 {
		firstSentence = firstSentence[:200]
	}

	for _, re := range descriptionRes {
		if m := re.FindStringSubmatch(firstSentence); m != nil {
			words := strings.Fields(strings.TrimSpace(m[1]))
			if len(words) > 5 {
				words = words[:5]
			}
			return strings.Join(words, " ")
		}
	}

	textToCheck := titleLower + " " + firstSentence
	var labels []string
	if containsAny(textToCheck, articleTechKeywords) {
		labels = append(labels, "programming/software")
	}
	if containsAny(textToCheck, bodyKeywords) {
		labels = append(labels, "body part")
	}
	if containsAny(textToCheck, foodKeywords) {
		labels = append(labels, "food")
	}
	if containsAny(textToCheck, animalKeywords) {
		labels = append(labels, "animal")
	}
	if len(labels) > 0 {
		return strings.Join(labels, " ")
	}
	if len(firstSentence) > 50 {
		return firstSentence[:50]
	}
	return firstSentence
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
