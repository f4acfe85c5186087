package service

import (
	"testing"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatExamplesForPrompt(t *testing.T) {
	results := []models.RankedResult{
		{
			Entry: &models.KnowledgeEntry{
				ID:           testID(1),
				Content:      "Prepared monthly financial statements",
				Profession:   models.ProfessionAccountant,
				CVSection:    models.SectionSummary,
				QualityScore: 0.9,
			},
			Score: 0.95,
			Rank:  0,
		},
	}

	out := FormatExamplesForPrompt(results)
	assert.Contains(t, out, "PROFESSIONAL EXAMPLES:")
	assert.Contains(t, out, "Example 1 (Accountant - summary):")
	assert.Contains(t, out, "Prepared monthly financial statements")
	assert.Contains(t, out, "[Confidence: 90%]")
}

func TestFormatExamplesForPrompt_Empty(t *testing.T) {
	assert.Equal(t, "No examples available.", FormatExamplesForPrompt(nil))
}
