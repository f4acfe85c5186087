package rank

import (
	"math"
	"sort"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"go.uber.org/zap"
)

// scoreTolerance is the band within which two scores count as tied and the
// tie-break by ascending entry id applies.
const scoreTolerance = 1e-9

// Scored pairs a knowledge entry with a relevance score.
type Scored struct {
	Entry *models.KnowledgeEntry
	Score float64
}

// SimilarityRanker orders candidate entries by cosine similarity to a
// query embedding.
type SimilarityRanker struct {
	logger *zap.Logger
}

func NewSimilarityRanker(logger *zap.Logger) *SimilarityRanker {
	return &SimilarityRanker{logger: logger}
}

// Rank scores every candidate against the query embedding and returns at
// most topK results, best first. Candidates with no embedding, a wrong
// dimension, or a zero-norm embedding are skipped with a warning; a bad
// entry never fails the whole call.
func (r *SimilarityRanker) Rank(query []float32, candidates []*models.KnowledgeEntry, topK int) []Scored {
	if len(candidates) == 0 || topK <= 0 {
		return nil
	}

	scored := make([]Scored, 0, len(candidates))
	for _, entry := range candidates {
		if !entry.HasEmbedding() {
			continue
		}
		if len(entry.Embedding) != len(query) {
			r.logger.Warn("Skipping entry with mismatched embedding dimension",
				zap.String("entry_id", entry.ID.String()),
				zap.Int("expected", len(query)),
				zap.Int("got", len(entry.Embedding)),
			)
			continue
		}
		sim, ok := Cosine(query, entry.Embedding)
		if !ok {
			r.logger.Warn("Skipping entry with degenerate embedding",
				zap.String("entry_id", entry.ID.String()),
			)
			continue
		}
		scored = append(scored, Scored{Entry: entry, Score: sim})
	}

	SortByScore(scored)
	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored
}

// SortByScore orders scored entries by score descending, breaking ties
// within the floating-point tolerance by ascending entry id.
func SortByScore(scored []Scored) {
	sort.SliceStable(scored, func(i, j int) bool {
		diff := scored[i].Score - scored[j].Score
		if diff > scoreTolerance {
			return true
		}
		if diff < -scoreTolerance {
			return false
		}
		return scored[i].Entry.ID.String() < scored[j].Entry.ID.String()
	})
}

// Cosine returns dot(a,b)/(|a||b|) in [-1,1]. The second return is false
// when the vectors differ in length or either has zero norm.
func Cosine(a, b []float32) (float64, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
