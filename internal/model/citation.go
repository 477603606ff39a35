package model

// Citation is the validation record for one URL extracted from a response.
type Citation struct {
	URL            string `json:"url"`
	IsValid        bool   `json:"is_valid"`
	HTTPStatusCode int    `json:"http_status_code,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
	ContentType    string `json:"content_type,omitempty"`
	ContentLength  int    `json:"content_length,omitempty"`
}

// CitationPatternType identifies the phrase family a textual citation
// was matched by.
type CitationPatternType string

const (
	CitationAccordingTo CitationPatternType = "according_to"
	CitationSource      CitationPatternType = "source"
	CitationRegulation  CitationPatternType = "regulation"
)

// CitationPattern is a non-URL citation ("according to X", "Source: X",
// regulation codes). Informational only: pattern citations count toward
// the citation total but are never validated for reachability.
type CitationPattern struct {
	Type     CitationPatternType `json:"type"`
	Source   string              `json:"source"`
	Position int                 `json:"position"`
	Context  string              `json:"context"`
}

// CitationReport aggregates URL and pattern citations for one response.
type CitationReport struct {
	URLs           []Citation        `json:"urls"`
	Patterns       []CitationPattern `json:"citation_patterns"`
	TotalCitations int               `json:"total_citations"`
	ValidCitations int               `json:"valid_citations"`
	FakeCitations  int               `json:"fake_citations"`
}
