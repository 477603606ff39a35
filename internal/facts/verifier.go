// Package facts verifies extracted claims against external knowledge
// sources: Wikipedia summaries/search, DuckDuckGo instant answers, and
// (when a key is configured) NewsAPI. Verification is lexical-overlap
// based, a known precision limitation.
package facts

import (
	"context"
	"errors"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/truthguard/truthguard/internal/model"
	"github.com/truthguard/truthguard/internal/textutil"
	"github.com/truthguard/truthguard/pkg/duckduckgo"
	"github.com/truthguard/truthguard/pkg/newsapi"
	"github.com/truthguard/truthguard/pkg/wikipedia"
)

const (
	sourceWikipedia  = "wikipedia"
	sourceDuckDuckGo = "duckduckgo"
	sourceNewsAPI    = "newsapi"

	// overlapThreshold is the minimum claim/article token overlap ratio
	// that counts as corroboration.
	overlapThreshold = 0.2

	// contradictionConfidence is how sure the verifier is when domain
	// buckets positively contradict a claim.
	contradictionConfidence = 0.9

	unverifiedConfidence = 0.3
)

// Verifier checks claims against knowledge sources and caches results
// for the lifetime of the process. News is optional; a nil news client
// simply skips that source.
type Verifier struct {
	wiki  wikipedia.Client
	ddg   duckduckgo.Client
	news  newsapi.Client
	cache *gocache.Cache
}

// NewVerifier creates a Verifier. news may be nil.
func NewVerifier(wiki wikipedia.Client, ddg duckduckgo.Client, news newsapi.Client) *Verifier {
	return &Verifier{
		wiki:  wiki,
		ddg:   ddg,
		news:  news,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// VerifyAll fans out verification for all claims concurrently and waits
// for every result before returning (no partial aggregation). Result
// order matches claim order. Failed lookups degrade to unverified, so
// the group never returns an error.
func (v *Verifier) VerifyAll(ctx context.Context, claims []model.Claim, queryContext string) []model.VerificationResult {
	results := make([]model.VerificationResult, len(claims))

	g, gCtx := errgroup.WithContext(ctx)
	for i, claim := range claims {
		g.Go(func() error {
			results[i] = v.Verify(gCtx, claim.Text, queryContext)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Verify checks one claim against the sources in fixed priority order:
// Wikipedia, DuckDuckGo, NewsAPI. A Wikipedia contradiction returns
// immediately; otherwise all sources are consulted and the best result
// wins, with a small boost when several sources agree.
func (v *Verifier) Verify(ctx context.Context, claim, queryContext string) model.VerificationResult {
	if len(strings.TrimSpace(claim)) < 3 {
		return model.VerificationResult{
			ClaimText:  claim,
			Status:     model.VerificationUnverified,
			Confidence: 0.0,
			Details:    "Claim too short",
		}
	}

	var results []model.VerificationResult

	wikiResult := v.verifyViaWikipedia(ctx, claim, queryContext)
	if wikiResult.Status == model.VerificationFalse {
		// A hard contradiction dominates; other sources cannot outvote it.
		return wikiResult
	}
	results = append(results, wikiResult)

	results = append(results, v.verifyViaDuckDuckGo(ctx, claim))

	if v.news != nil {
		results = append(results, v.verifyViaNewsAPI(ctx, claim))
	}

	var verified []model.VerificationResult
	for _, r := range results {
		if r.Status == model.VerificationVerified {
			verified = append(verified, r)
		}
	}

	if len(verified) > 0 {
		best := verified[0]
		for _, r := range verified[1:] {
			if r.Confidence > best.Confidence {
				best = r
			}
		}
		if len(verified) > 1 {
			best.Confidence = min(best.Confidence+0.1, 0.95)
			best.Details += " (also corroborated by another source)"
		}
		return best
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	return best
}

func (v *Verifier) verifyViaWikipedia(ctx context.Context, claim, queryContext string) model.VerificationResult {
	cacheKey := "wiki:" + textutil.Normalize(claim)
	if cached, ok := v.cache.Get(cacheKey); ok {
		return cached.(model.VerificationResult)
	}

	terms := searchTerms(claim, 3)
	domain := detectDomain(queryContext)
	if queryContext != "" {
		terms = biasSearchTerms(terms, domain, claim, queryContext)
	}

	result := v.wikipediaLookup(ctx, claim, terms, domain, queryContext != "")
	v.cache.Set(cacheKey, result, gocache.NoExpiration)
	return result
}

func (v *Verifier) wikipediaLookup(ctx context.Context, claim, terms string, domain queryDomain, hasContext bool) model.VerificationResult {
	claimLower := strings.ToLower(claim)
	claimTokens := textutil.Tokens(claim)

	summary, err := v.wiki.Summary(ctx, strings.ReplaceAll(terms, " ", "_"))
	if err != nil && !errors.Is(err, wikipedia.ErrNotFound) {
		zap.L().Warn("facts: wikipedia summary lookup failed", zap.String("terms", terms), zap.Error(err))
	}

	if summary != nil && summary.Extract != "" {
		summaryLower := strings.ToLower(summary.Extract)
		titleLower := strings.ToLower(summary.Title)

		predicate := claimPredicate(claimLower)
		description := articleDescription(summaryLower, titleLower)

		contradictsArticle := predicateContradictsDescription(predicate, description)
		contradictsContext := hasContext && claimContradictsDomain(domain, claimLower)
		contextMismatch := hasContext && articleMismatchesDomain(domain, summaryLower)

		if contradictsArticle || contradictsContext || contextMismatch {
			reason := "article doesn't match query context"
			if contradictsArticle {
				reason = "claim says '" + predicate + "' but the article describes it as '" + description + "'"
			} else if contradictsContext {
				reason = "claim contradicts query context"
			}
			return model.VerificationResult{
				ClaimText:  claim,
				Status:     model.VerificationFalse,
				Confidence: contradictionConfidence,
				Source:     sourceWikipedia,
				Details:    "Contradicted by Wikipedia article " + summary.Title + ": " + reason + ". Article says: " + truncate(summary.Extract, 150),
				URL:        summary.ContentURLs.Desktop.Page,
			}
		}

		overlap := textutil.OverlapRatio(claimTokens, textutil.Tokens(summary.Extract))
		mainSubject := strings.ToLower(searchTerms(claim, 1))
		subjectInSummary := subjectAppears(mainSubject, summaryLower)
		longWordInSummary := false
		for t := range claimTokens {
			if len(t) > 4 && strings.Contains(summaryLower, t) {
				longWordInSummary = true
				break
			}
		}

		if overlap > overlapThreshold || subjectInSummary || longWordInSummary {
			return model.VerificationResult{
				ClaimText:  claim,
				Status:     model.VerificationVerified,
				Confidence: min(0.7+overlap*0.2, 0.9),
				Source:     sourceWikipedia,
				Details:    "Found in Wikipedia article " + summary.Title + ": " + truncate(summary.Extract, 200),
				URL:        summary.ContentURLs.Desktop.Page,
			}
		}
	}

	// Direct lookup found nothing usable; fall back to title search.
	pages, err := v.wiki.Search(ctx, terms, 5)
	if err != nil {
		zap.L().Warn("facts: wikipedia search failed", zap.String("terms", terms), zap.Error(err))
	}

	var bestPage *wikipedia.SearchPage
	bestScore := 0.0
	for i, page := range pages {
		fullText := strings.ToLower(page.Title + " " + page.Snippet)

		predicate := claimPredicate(claimLower)
		description := articleDescription(fullText, strings.ToLower(page.Title))
		if predicateContradictsDescription(predicate, description) {
			continue
		}
		if hasContext && (claimContradictsDomain(domain, claimLower) || articleMismatchesDomain(domain, fullText)) {
			continue
		}

		score := textutil.OverlapRatio(claimTokens, textutil.Tokens(fullText))
		if hasContext && articleMatchesDomain(domain, fullText) {
			score += 0.5
		}
		if score > bestScore {
			bestScore = score
			bestPage = &pages[i]
		}
	}

	if bestPage != nil && bestScore > 0.15 {
		return model.VerificationResult{
			ClaimText:  claim,
			Status:     model.VerificationVerified,
			Confidence: min(0.6+bestScore*0.2, 0.8),
			Source:     sourceWikipedia,
			Details:    "Found in Wikipedia search: " + bestPage.Title + ". " + truncate(bestPage.Snippet, 200),
			URL:        "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(bestPage.Title, " ", "_"),
		}
	}

	return model.VerificationResult{
		ClaimText:  claim,
		Status:     model.VerificationUnverified,
		Confidence: unverifiedConfidence,
		Source:     sourceWikipedia,
		Details:    "Not found in Wikipedia",
	}
}

func (v *Verifier) verifyViaDuckDuckGo(ctx context.Context, claim string) model.VerificationResult {
	cacheKey := "ddg:" + textutil.Normalize(claim)
	if cached, ok := v.cache.Get(cacheKey); ok {
		return cached.(model.VerificationResult)
	}

	result := v.duckduckgoLookup(ctx, claim)
	v.cache.Set(cacheKey, result, gocache.NoExpiration)
	return result
}

func (v *Verifier) duckduckgoLookup(ctx context.Context, claim string) model.VerificationResult {
	unverified := model.VerificationResult{
		ClaimText:  claim,
		Status:     model.VerificationUnverified,
		Confidence: unverifiedConfidence,
		Source:     sourceDuckDuckGo,
		Details:    "No instant answer available",
	}

	answer, err := v.ddg.InstantAnswer(ctx, claim)
	if err != nil {
		zap.L().Warn("facts: duckduckgo lookup failed", zap.Error(err))
		return unverified
	}

	claimTokens := textutil.Tokens(claim)

	if answer.AbstractText != "" {
		overlap := textutil.OverlapRatio(claimTokens, textutil.Tokens(answer.AbstractText))
		if overlap > overlapThreshold {
			return model.VerificationResult{
				ClaimText:  claim,
				Status:     model.VerificationVerified,
				Confidence: min(0.6+overlap*0.2, 0.8),
				Source:     sourceDuckDuckGo,
				Details:    truncate(answer.AbstractText, 300),
			}
		}
	}

	if answer.Answer != "" {
		return model.VerificationResult{
			ClaimText:  claim,
			Status:     model.VerificationVerified,
			Confidence: 0.7,
			Source:     sourceDuckDuckGo,
			Details:    answer.Answer,
		}
	}

	if len(answer.RelatedTopics) > 0 {
		topicLower := strings.ToLower(answer.RelatedTopics[0].Text)
		words := strings.Fields(strings.ToLower(claim))
		if len(words) > 3 {
			words = words[:3]
		}
		for _, w := range words {
			if len(w) > 3 && strings.Contains(topicLower, w) {
				return model.VerificationResult{
					ClaimText:  claim,
					Status:     model.VerificationVerified,
					Confidence: 0.6,
					Source:     sourceDuckDuckGo,
					Details:    truncate(answer.RelatedTopics[0].Text, 300),
				}
			}
		}
	}

	return unverified
}

func (v *Verifier) verifyViaNewsAPI(ctx context.Context, claim string) model.VerificationResult {
	cacheKey := "news:" + textutil.Normalize(claim)
	if cached, ok := v.cache.Get(cacheKey); ok {
		return cached.(model.VerificationResult)
	}

	result := v.newsLookup(ctx, claim)
	v.cache.Set(cacheKey, result, gocache.NoExpiration)
	return result
}

func (v *Verifier) newsLookup(ctx context.Context, claim string) model.VerificationResult {
	unverified := model.VerificationResult{
		ClaimText:  claim,
		Status:     model.VerificationUnverified,
		Confidence: unverifiedConfidence,
		Source:     sourceNewsAPI,
		Details:    "No relevant news articles found",
	}

	articles, err := v.news.Everything(ctx, searchTerms(claim, 3), 3)
	if err != nil {
		zap.L().Warn("facts: newsapi lookup failed", zap.Error(err))
		return unverified
	}

	claimTokens := textutil.Tokens(claim)

	var best *newsapi.Article
	bestOverlap := 0.0
	limit := min(len(articles), 2)
	for i := range articles[:limit] {
		content := articles[i].Title + " " + articles[i].Description
		overlap := textutil.OverlapRatio(claimTokens, textutil.Tokens(content))
		if overlap > bestOverlap {
			bestOverlap = overlap
			best = &articles[i]
		}
	}

	if best != nil && bestOverlap > overlapThreshold {
		return model.VerificationResult{
			ClaimText:  claim,
			Status:     model.VerificationVerified,
			Confidence: min(0.6+bestOverlap*0.2, 0.8),
			Source:     sourceNewsAPI,
			Details:    "Found in news: " + best.Title + ". " + truncate(best.Description, 200),
			URL:        best.URL,
		}
	}
	return unverified
}

// subjectAppears reports whether the claim's main subject, or any of its
// words longer than 3 chars, occurs in the summary.
func subjectAppears(subject, summaryLower string) bool {
	if subject == "" {
		return false
	}
	if strings.Contains(summaryLower, subject) {
		return true
	}
	for _, w := range strings.Fields(subject) {
		if len(w) > 3 && strings.Contains(summaryLower, w) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
