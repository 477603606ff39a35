package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truthguard/truthguard/internal/model"
)

func TestExtract_Empty(t *testing.T) {
	assert.Nil(t, Extract(""))
	assert.Nil(t, Extract("Hi."))
}

func TestExtract_DropsGenericProse(t *testing.T) {
	claims := Extract("It is a versatile tool that is popular and flexible. It allows users to do many things easily.")
	assert.Empty(t, claims)
}

func TestExtract_DropsOpinions(t *testing.T) {
	claims := Extract("I think the refund process works well for everyone involved.")
	assert.Empty(t, claims)
}

func TestExtract_KeepsSpecificFacts(t *testing.T) {
	claims := Extract("Python was created by Guido van Rossum. Refunds are processed within 7 business days.")
	require.Len(t, claims, 2)

	assert.True(t, claims[0].IsSpecific)
	assert.Equal(t, model.ClaimFactual, claims[0].Type)

	assert.Equal(t, model.ClaimNumerical, claims[1].Type)
	assert.NotEmpty(t, claims[1].Numbers)
}

func TestExtract_GenericButSpecificDataSurvives(t *testing.T) {
	// Generic shape ("provides") but carries a number, so it stays.
	claims := Extract("The plan provides 50 GB of storage to every account holder.")
	require.Len(t, claims, 1)
	assert.True(t, claims[0].IsSpecific)
}

func TestExtract_Classification(t *testing.T) {
	tests := []struct {
		name string
		text string
		want model.ClaimType
	}{
		{"currency wins", "The service costs $99 per month for members here.", model.ClaimFinancial},
		{"percentage", "Returns increased by 15% over the period measured.", model.ClaimStatistical},
		// Digit-bearing dates also extract as integers, so number
		// classification wins over temporal.
		{"date digits count as numbers", "The product was launched on January 5, 2020 worldwide.", model.ClaimNumerical},
		{"regulatory", "This regulation was passed under federal law recently.", model.ClaimRegulatory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := Extract(tt.text)
			require.NotEmpty(t, claims)
			assert.Equal(t, tt.want, claims[0].Type)
		})
	}
}

func TestExtract_Confidence(t *testing.T) {
	claims := Extract("According to the data, revenue reached $2 million on 2023-06-15 exactly.")
	require.Len(t, claims, 1)
	// base 0.5 + numbers 0.2 + dates 0.1 + cue 0.1
	assert.InDelta(t, 0.9, claims[0].Confidence, 0.001)
}

func TestExtract_OrderFollowsSentences(t *testing.T) {
	claims := Extract("Apple Inc was founded by Steve Jobs. Microsoft was founded by Bill Gates.")
	require.Len(t, claims, 2)
	assert.Contains(t, claims[0].Text, "Apple")
	assert.Contains(t, claims[1].Text, "Microsoft")
}
