package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapses runs", "a  b\t\tc\n\nd", "a b c d"},
		{"trims", "  hello world  ", "hello world"},
		{"already clean", "hello world", "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestSegmentSentences(t *testing.T) {
	got := SegmentSentences("First sentence. Second one! Third? ")
	assert.Equal(t, []string{"First sentence", "Second one", "Third"}, got)

	assert.Nil(t, SegmentSentences(""))
	assert.Nil(t, SegmentSentences("..."))
}

func TestExtractNumbers(t *testing.T) {
	numbers := ExtractNumbers("The fee is $1,250.50 which is 3.5% of the 100 total")

	byType := map[NumberType][]string{}
	for _, n := range numbers {
		byType[n.Type] = append(byType[n.Type], n.Value)
	}

	assert.Contains(t, byType[NumberCurrency], "$1,250.50")
	assert.Contains(t, byType[NumberPercentage], "3.5%")
	assert.NotEmpty(t, byType[NumberInteger])
}

func TestExtractNumbers_Context(t *testing.T) {
	numbers := ExtractNumbers("refund of $50 within days")
	var found bool
	for _, n := range numbers {
		if n.Type == NumberCurrency {
			found = true
			assert.Contains(t, n.Context, "$50")
			assert.Contains(t, n.Context, "refund")
		}
	}
	assert.True(t, found)
}

func TestExtractDates(t *testing.T) {
	dates := ExtractDates("Released 2023-06-15, then 7/4/2024, also January 5, 2020")

	formats := map[DateFormat]bool{}
	for _, d := range dates {
		formats[d.Format] = true
	}
	assert.True(t, formats[DateISO])
	assert.True(t, formats[DateUS])
	assert.True(t, formats[DateLong])
}

func TestIsFactualStatement(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"opinion cue vetoes", "I think this is great", false},
		{"should is an opinion cue", "You should invest now", false},
		{"factual cue", "The company was founded in 1998", true},
		{"no cues defaults true", "Water boils quickly", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFactualStatement(tt.in))
		})
	}
}

func TestTokensAndOverlap(t *testing.T) {
	claim := Tokens("Python is a programming language")
	ref := Tokens("Python is a high-level programming language created by Guido van Rossum")

	// "is" and "a" are under 3 chars and dropped.
	assert.False(t, claim["is"])
	assert.True(t, claim["python"])

	ratio := OverlapRatio(claim, ref)
	assert.InDelta(t, 1.0, ratio, 0.001)

	assert.Zero(t, OverlapRatio(Tokens(""), ref))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "python is great", Normalize("  Python   IS\tGreat "))
}

func TestKeyTerms(t *testing.T) {
	terms := KeyTerms("The refund will be processed within seven days.")
	assert.Contains(t, terms, "refund")
	assert.Contains(t, terms, "processed")
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "will")
}

func TestContextWindow(t *testing.T) {
	text := "abcdefghij"
	assert.Equal(t, "abcdefg", ContextWindow(text, 2, 5, 2))
	assert.Equal(t, text, ContextWindow(text, 0, 10, 5))
}
