package service

import (
	"fmt"
	"strings"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"
)

// FormatExamplesForPrompt renders a ranked result set as the numbered
// examples block fed to the downstream text generator.
func FormatExamplesForPrompt(results []models.RankedResult) string {
	if len(results) == 0 {
		return "No examples available."
	}

	var b strings.Builder
	b.WriteString("PROFESSIONAL EXAMPLES:\n\n")
	for i, r := range results {
		b.WriteString(fmt.Sprintf("Example %d (%s - %s):\n", i+1, r.Entry.Profession, r.Entry.CVSection))
		b.WriteString(r.Entry.Content)
		b.WriteString(fmt.Sprintf("\n[Confidence: %.0f%%]\n\n", r.Entry.QualityScore*100))
	}
	return b.String()
}
