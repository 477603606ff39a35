// Package citations extracts URLs and textual citation patterns from a
// response and checks whether cited URLs actually resolve.
package citations

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/truthguard/truthguard/internal/model"
	"github.com/truthguard/truthguard/internal/textutil"
)

var urlRe = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)

var patternRes = []struct {
	typ model.CitationPatternType
	re  *regexp.Regexp
}{
	{model.CitationAccordingTo, regexp.MustCompile(`(?i)according to\s+([^.,;:!?]+)`)},
	{model.CitationSource, regexp.MustCompile(`(?i)source:\s*([^\n]+)`)},
	{model.CitationRegulation, regexp.MustCompile(`(?i)(SEC|CFPB|EU|GDPR|Article\s+\d+)[\s\w-]*\d{4}[-]?\d*`)},
}

// Verifier validates citations found in responses. URLs are checked
// with a real GET; anything other than a 200 is treated as fake.
type Verifier struct {
	client *http.Client
}

type Option func(*Verifier)

// WithHTTPClient overrides the HTTP client used for URL validation.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) { v.client = c }
}

func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		client: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ExtractURLs returns all URLs in the text, with trailing punctuation
// stripped. Deduplication is intentional: the same URL cited twice is
// validated once.
func ExtractURLs(text string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, m := range urlRe.FindAllString(text, -1) {
		u := strings.TrimRight(m, ".,;:!?)")
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

// ExtractPatterns returns textual citations ("according to X",
// "Source: X", regulation identifiers) with surrounding context.
func ExtractPatterns(text string) []model.CitationPattern {
	var patterns []model.CitationPattern
	for _, p := range patternRes {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			source := text[loc[2]:loc[3]]
			patterns = append(patterns, model.CitationPattern{
				Type:     p.typ,
				Source:   strings.TrimSpace(source),
				Position: loc[0],
				Context:  textutil.ContextWindow(text, loc[0], loc[1], 30),
			})
		}
	}
	return patterns
}

// ValidateURL checks that a cited URL is well formed and returns a 200.
// Redirects are followed; the final status decides validity.
func (v *Verifier) ValidateURL(ctx context.Context, rawURL string) model.Citation {
	citation := model.Citation{URL: rawURL}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		citation.ErrorMessage = "malformed URL"
		return citation
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		citation.ErrorMessage = err.Error()
		return citation
	}

	resp, err := v.client.Do(req)
	if err != nil {
		citation.ErrorMessage = err.Error()
		return citation
	}
	defer resp.Body.Close()

	citation.HTTPStatusCode = resp.StatusCode
	citation.ContentType = resp.Header.Get("Content-Type")
	citation.ContentLength = int(resp.ContentLength)
	citation.IsValid = resp.StatusCode == http.StatusOK
	if !citation.IsValid {
		citation.ErrorMessage = "HTTP " + resp.Status
	}
	return citation
}

// ExtractAndValidate produces the full citation report for a response.
func (v *Verifier) ExtractAndValidate(ctx context.Context, text string) model.CitationReport {
	report := model.CitationReport{
		Patterns: ExtractPatterns(text),
	}

	for _, u := range ExtractURLs(text) {
		citation := v.ValidateURL(ctx, u)
		report.URLs = append(report.URLs, citation)
		if citation.IsValid {
			report.ValidCitations++
		} else {
			report.FakeCitations++
			zap.L().Debug("citations: invalid URL cited",
				zap.String("url", u),
				zap.String("error", citation.ErrorMessage))
		}
	}

	report.TotalCitations = len(report.URLs) + len(report.Patterns)
	return report
}
