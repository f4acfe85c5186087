package rank

import (
	"testing"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuseScores_WeightedFusion(t *testing.T) {
	a := entryWithEmbedding(1, nil)
	b := entryWithEmbedding(2, nil)

	semantic := map[uuid.UUID]float64{a.ID: 0.8, b.ID: 0.6}
	lexical := map[uuid.UUID]float64{a.ID: 0.2, b.ID: 0.9}
	weights := FusionWeights{Semantic: 0.7, Lexical: 0.3}

	fused := FuseScores([]*models.KnowledgeEntry{a, b}, semantic, lexical, weights, 10)
	require.Len(t, fused, 2)

	// B (0.7*0.6 + 0.3*0.9 = 0.69) outranks A (0.7*0.8 + 0.3*0.2 = 0.62)
	// despite A's higher semantic score.
	assert.Equal(t, b.ID, fused[0].Entry.ID)
	assert.InDelta(t, 0.69, fused[0].Score, 1e-9)
	assert.Equal(t, a.ID, fused[1].Entry.ID)
	assert.InDelta(t, 0.62, fused[1].Score, 1e-9)
}

func TestFuseScores_MissingTermContributesZero(t *testing.T) {
	withBoth := entryWithEmbedding(1, nil)
	lexOnly := entryWithEmbedding(2, nil)
	semOnly := entryWithEmbedding(3, nil)
	neither := entryWithEmbedding(4, nil)

	semantic := map[uuid.UUID]float64{withBoth.ID: 0.5, semOnly.ID: 0.9}
	lexical := map[uuid.UUID]float64{withBoth.ID: 0.5, lexOnly.ID: 1.0}
	weights := FusionWeights{Semantic: 0.7, Lexical: 0.3}

	fused := FuseScores(
		[]*models.KnowledgeEntry{withBoth, lexOnly, semOnly, neither},
		semantic, lexical, weights, 10,
	)
	require.Len(t, fused, 3, "entry missing both scores must be excluded")

	scores := make(map[uuid.UUID]float64, len(fused))
	for _, f := range fused {
		scores[f.Entry.ID] = f.Score
	}
	assert.InDelta(t, 0.5, scores[withBoth.ID], 1e-9)
	assert.InDelta(t, 0.3, scores[lexOnly.ID], 1e-9) // 0.3 * 1.0
	assert.InDelta(t, 0.63, scores[semOnly.ID], 1e-9)
	assert.NotContains(t, scores, neither.ID)
}

func TestFuseScores_BoundedWhenComponentsBounded(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		entryWithEmbedding(1, nil),
		entryWithEmbedding(2, nil),
	}
	semantic := map[uuid.UUID]float64{entries[0].ID: 1.0, entries[1].ID: 0.0}
	lexical := map[uuid.UUID]float64{entries[0].ID: 1.0, entries[1].ID: 0.0}

	fused := FuseScores(entries, semantic, lexical, FusionWeights{Semantic: 0.7, Lexical: 0.3}, 10)
	for _, f := range fused {
		assert.GreaterOrEqual(t, f.Score, 0.0)
		assert.LessOrEqual(t, f.Score, 1.0)
	}
}

func TestFuseScores_TopKAndTieBreak(t *testing.T) {
	e1 := entryWithEmbedding(7, nil)
	e2 := entryWithEmbedding(2, nil)
	e3 := entryWithEmbedding(5, nil)

	semantic := map[uuid.UUID]float64{e1.ID: 0.5, e2.ID: 0.5, e3.ID: 0.5}
	lexical := map[uuid.UUID]float64{e1.ID: 0.5, e2.ID: 0.5, e3.ID: 0.5}

	fused := FuseScores([]*models.KnowledgeEntry{e1, e2, e3}, semantic, lexical,
		FusionWeights{Semantic: 0.7, Lexical: 0.3}, 2)
	require.Len(t, fused, 2)
	assert.Equal(t, e2.ID, fused[0].Entry.ID)
	assert.Equal(t, e3.ID, fused[1].Entry.ID)
}
