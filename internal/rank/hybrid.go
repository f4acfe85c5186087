package rank

import (
	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/google/uuid"
)

// FusionWeights are the non-negative semantic/lexical weights, expected to
// sum to 1 (validated at config load).
type FusionWeights struct {
	Semantic float64
	Lexical  float64
}

// FuseScores combines per-candidate semantic and lexical scores into one
// ranking. A candidate missing from one map contributes 0 for that term
// and is still ranked; a candidate missing from both is excluded. Returns
// at most topK results sorted by fused score descending with the usual
// id tie-break.
func FuseScores(
	candidates []*models.KnowledgeEntry,
	semantic map[uuid.UUID]float64,
	lexical map[uuid.UUID]float64,
	w FusionWeights,
	topK int,
) []Scored {
	if len(candidates) == 0 || topK <= 0 {
		return nil
	}

	fused := make([]Scored, 0, len(candidates))
	for _, entry := range candidates {
		sem, hasSem := semantic[entry.ID]
		lex, hasLex := lexical[entry.ID]
		if !hasSem && !hasLex {
			continue
		}
		fused = append(fused, Scored{
			Entry: entry,
			Score: w.Semantic*sem + w.Lexical*lex,
		})
	}

	SortByScore(fused)
	if topK < len(fused) {
		fused = fused[:topK]
	}
	return fused
}
