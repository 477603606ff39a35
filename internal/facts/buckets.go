package facts

import "strings"

// Domain bucket keyword lists for the shallow contradiction check.
// These are a narrow, hard-coded heuristic tuned to a handful of known
// disambiguation traps (Python the language vs. the genus, React the
// library vs. anything else). Kept exactly as-is for compatibility;
// this is keyword bucketing, not semantic entailment.
var (
	techPredicateKeywords = []string{
		"programming", "code", "language", "software", "framework",
		"library", "javascript",
	}
	articleTechKeywords = []string{
		"programming", "code", "language", "software", "framework",
		"library", "javascript", "react", "vue", "angular", "web",
		"development", "computer", "technology",
	}
	bodyKeywords = []string{
		"body part", "body", "organ", "anatomy", "physical", "human",
	}
	foodKeywords   = []string{"fruit", "food", "eat", "cooking"}
	animalKeywords = []string{"snake", "animal", "reptile", "genus", "species"}

	nonTechPredicateKeywords = []string{
		"body part", "body", "organ", "anatomy", "physical", "human",
		"fruit", "food", "snake", "animal", "reptile",
	}
	nonTechArticleKeywords = []string{
		"body part", "body", "organ", "fruit", "food", "snake", "animal",
	}
)

// queryDomain is the coarse topic detected in the original user query.
type queryDomain int

const (
	domainNone queryDomain = iota
	domainProgramming
	domainAnimal
	domainFood
)

var (
	programmingContextKeywords = []string{
		"programming", "code", "language", "software", "framework",
		"library", "javascript", "react", "vue", "angular",
	}
	animalContextKeywords = []string{"snake", "animal", "reptile", "genus", "species"}
	foodContextKeywords   = []string{"fruit", "food", "eat", "cooking", "recipe"}
)

// detectDomain classifies the query context. Programming wins ties,
// matching the fixed priority order of the checks.
func detectDomain(queryContext string) queryDomain {
	lower := strings.ToLower(queryContext)
	switch {
	case containsAny(lower, programmingContextKeywords):
		return domainProgramming
	case containsAny(lower, animalContextKeywords):
		return domainAnimal
	case containsAny(lower, foodContextKeywords):
		return domainFood
	default:
		return domainNone
	}
}

// predicateContradictsDescription checks whether a claim predicate and
// an article description fall into mutually exclusive domain buckets.
// Branches are checked in fixed priority order; the first predicate
// bucket that matches decides which article buckets count as opposites.
func predicateContradictsDescription(predicate, description string) bool {
	if predicate == "" || description == "" {
		return false
	}
	switch {
	case containsAny(predicate, nonTechPredicateKeywords):
		return containsAny(description, articleTechKeywords)
	case containsAny(predicate, techPredicateKeywords):
		return containsAny(description, nonTechArticleKeywords)
	case containsAny(predicate, []string{"fruit", "food", "eat"}):
		return containsAny(description, []string{"programming", "code", "software", "snake", "animal", "body part"})
	case containsAny(predicate, []string{"snake", "animal", "reptile"}):
		return containsAny(description, []string{"programming", "code", "software", "fruit", "food", "body part"})
	default:
		return false
	}
}

// claimContradictsDomain reports whether the claim text itself mentions
// a domain incompatible with the query context.
func claimContradictsDomain(domain queryDomain, claimLower string) bool {
	switch domain {
	case domainProgramming:
		return containsAny(claimLower, []string{"fruit", "food", "eat", "snake", "animal", "reptile"})
	case domainAnimal:
		return containsAny(claimLower, []string{"programming", "code", "language", "software", "fruit", "food"})
	case domainFood:
		return containsAny(claimLower, []string{"programming", "code", "language", "software", "snake", "animal"})
	default:
		return false
	}
}

// articleMismatchesDomain reports whether article text belongs to a
// different domain than the query context: it must carry keywords of a
// foreign domain while carrying none of the expected domain's.
func articleMismatchesDomain(domain queryDomain, articleLower string) bool {
	switch domain {
	case domainProgramming:
		hasExpected := containsAny(articleLower, []string{
			"programming", "code", "language", "software", "framework",
			"library", "javascript", "react", "vue", "angular", "web", "development",
		})
		hasForeign := containsAny(articleLower, []string{"snake", "reptile", "genus", "species", "fruit", "food", "eat", "cooking"})
		return hasForeign && !hasExpected
	case domainAnimal:
		hasExpected := containsAny(articleLower, []string{"snake", "reptile", "genus", "species", "animal"})
		hasForeign := containsAny(articleLower, []string{"programming", "code", "language", "software", "fruit", "food"})
		return hasForeign && !hasExpected
	case domainFood:
		hasExpected := containsAny(articleLower, []string{"fruit", "food", "eat", "cooking", "recipe", "nutrition"})
		hasForeign := containsAny(articleLower, []string{"programming", "code", "language", "software", "snake", "animal"})
		return hasForeign && !hasExpected
	default:
		return false
	}
}

// articleMatchesDomain gives search-result ranking a bonus when the
// article carries the expected domain's keywords.
func articleMatchesDomain(domain queryDomain, articleLower string) bool {
	switch domain {
	case domainProgramming:
		return containsAny(articleLower, []string{
			"programming", "code", "language", "software", "framework",
			"library", "javascript", "react", "vue", "angular", "web",
		})
	case domainAnimal:
		return containsAny(articleLower, []string{"snake", "reptile", "genus", "species", "animal"})
	case domainFood:
		return containsAny(articleLower, []string{"fruit", "food", "eat", "cooking", "recipe"})
	default:
		return false
	}
}

// Subjects with well-known cross-domain homonyms, eligible for search
// rewriting under a programming context.
var ambiguousSubjects = map[string]bool{
	"python": true, "java": true, "react": true, "vue": true,
	"angular": true, "node": true, "javascript": true, "typescript": true,
}

// biasSearchTerms rewrites the search query for known ambiguous subjects
// when the query context pins down a domain.
func biasSearchTerms(terms string, domain queryDomain, claim, queryContext string) string {
	switch domain {
	case domainProgramming:
		main := strings.ToLower(searchTerms(claim, 1))
		if !ambiguousSubjects[main] {
			return terms
		}
		switch {
		case strings.Contains(main, "python"):
			return "Python programming language"
		case strings.Contains(main, "react"):
			return "React (JavaScript library)"
		case strings.Contains(main, "java") && !strings.Contains(strings.ToLower(queryContext), "javascript"):
			return "Java (programming language)"
		default:
			return main + " programming"
		}
	case domainAnimal:
		if strings.Contains(strings.ToLower(searchTerms(claim, 1)), "python") {
			return "Python (genus)"
		}
	}
	return terms
}
