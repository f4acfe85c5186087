package rank

import (
	"testing"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSignal map[models.Profession]float64

func (s staticSignal) Signal(p models.Profession, _ models.CVSection) float64 {
	return s[p]
}

func qualityEntry(id byte, quality float64, ct models.ContentType) *models.KnowledgeEntry {
	var raw [16]byte
	raw[15] = id
	return &models.KnowledgeEntry{
		ID:           uuid.UUID(raw),
		Profession:   models.ProfessionAccountant,
		CVSection:    models.SectionSummary,
		ContentType:  ct,
		QualityScore: quality,
	}
}

func TestQualityReranker_ReordersByQuality(t *testing.T) {
	// Pure quality weighting: similar retrieval scores, different quality.
	reranker := NewQualityReranker(0, 1, 0, 20, nil)

	low := qualityEntry(1, 0.1, models.ContentTypeBullet)
	high := qualityEntry(2, 1.0, models.ContentTypeJobDescription)

	in := []Scored{
		{Entry: low, Score: 0.9},
		{Entry: high, Score: 0.89},
	}
	out := reranker.Rerank(in)
	require.Len(t, out, 2)
	assert.Equal(t, high.ID, out[0].Entry.ID)
	assert.Equal(t, low.ID, out[1].Entry.ID)
}

func TestQualityReranker_FeedbackSignalBiasesOrder(t *testing.T) {
	signal := staticSignal{models.ProfessionAccountant: 1.0}
	reranker := NewQualityReranker(0, 0, 1, 20, signal)

	rated := qualityEntry(1, 0.5, models.ContentTypeBullet)
	unrated := qualityEntry(2, 0.5, models.ContentTypeBullet)
	unrated.Profession = models.ProfessionManager // no feedback history

	out := reranker.Rerank([]Scored{
		{Entry: unrated, Score: 0.9},
		{Entry: rated, Score: 0.1},
	})
	require.Len(t, out, 2)
	assert.Equal(t, rated.ID, out[0].Entry.ID)
}

func TestQualityReranker_WindowLeavesTailUntouched(t *testing.T) {
	reranker := NewQualityReranker(0, 1, 0, 2, nil)

	a := qualityEntry(1, 0.1, models.ContentTypeBullet)
	b := qualityEntry(2, 0.9, models.ContentTypeBullet)
	tail := qualityEntry(3, 1.0, models.ContentTypeJobDescription)

	out := reranker.Rerank([]Scored{
		{Entry: a, Score: 0.9},
		{Entry: b, Score: 0.8},
		{Entry: tail, Score: 0.7},
	})
	require.Len(t, out, 3)
	// Head is reordered by quality; tail keeps its position even though it
	// has the highest quality of all.
	assert.Equal(t, b.ID, out[0].Entry.ID)
	assert.Equal(t, a.ID, out[1].Entry.ID)
	assert.Equal(t, tail.ID, out[2].Entry.ID)
}

func TestQualityReranker_NeverChangesCandidateSet(t *testing.T) {
	reranker := NewQualityReranker(0.5, 0.3, 0.2, 20, nil)

	in := []Scored{
		{Entry: qualityEntry(1, 0.2, models.ContentTypeBullet), Score: 0.9},
		{Entry: qualityEntry(2, 0.8, models.ContentTypeParagraph), Score: 0.5},
		{Entry: qualityEntry(3, 0.5, models.ContentTypeAchievement), Score: 0.7},
	}
	out := reranker.Rerank(in)
	require.Len(t, out, len(in))

	want := map[uuid.UUID]struct{}{}
	for _, s := range in {
		want[s.Entry.ID] = struct{}{}
	}
	for _, s := range out {
		assert.Contains(t, want, s.Entry.ID)
	}
}

func TestQualityReranker_Deterministic(t *testing.T) {
	signal := staticSignal{models.ProfessionAccountant: 0.6}
	reranker := NewQualityReranker(0.5, 0.3, 0.2, 20, signal)

	in := []Scored{
		{Entry: qualityEntry(3, 0.5, models.ContentTypeBullet), Score: 0.7},
		{Entry: qualityEntry(1, 0.5, models.ContentTypeBullet), Score: 0.7},
		{Entry: qualityEntry(2, 0.5, models.ContentTypeBullet), Score: 0.7},
	}
	first := reranker.Rerank(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, reranker.Rerank(in))
	}
	// Equal final scores fall back to id order.
	assert.True(t, first[0].Entry.ID.String() < first[1].Entry.ID.String())
	assert.True(t, first[1].Entry.ID.String() < first[2].Entry.ID.String())
}
