package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/tessnimetteib/cv-generator-project2/internal/cache"
	"github.com/tessnimetteib/cv-generator-project2/internal/embedding"
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
	"github.com/tessnimetteib/cv-generator-project2/internal/rank"
	"github.com/tessnimetteib/cv-generator-project2/internal/store"
	"github.com/tessnimetteib/cv-generator-project2/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	calls   int
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) Dimension() int { return 3 }

func testID(n byte) uuid.UUID {
	var raw [16]byte
	raw[15] = n
	return uuid.UUID(raw)
}

func testRAGConfig() *config.RAGConfig {
	return &config.RAGConfig{
		SemanticWeight: 0.7,
		LexicalWeight:  0.3,
		RerankAlpha:    1, // similarity only, quality signals off
		RerankBeta:     0,
		RerankGamma:    0,
		RerankWindow:   20,
		DefaultTopK:    3,
		HybridTopK:     5,
		MaxTopK:        50,
	}
}

func newTestService(t *testing.T, entries []*models.KnowledgeEntry, emb *fakeEmbedder) (*RAGService, *cache.MemoryCache) {
	t.Helper()
	memStore := store.NewMemoryStore()
	for _, e := range entries {
		require.NoError(t, memStore.Insert(context.Background(), e))
	}
	cfg := testRAGConfig()
	reranker := rank.NewQualityReranker(cfg.RerankAlpha, cfg.RerankBeta, cfg.RerankGamma, cfg.RerankWindow, nil)
	memCache := cache.NewMemoryCache(64, 0)
	return NewRAGService(memStore, emb, reranker, memCache, cfg, zap.NewNop()), memCache
}

func accountantEntry(n byte, content string, embedding []float32) *models.KnowledgeEntry {
	return &models.KnowledgeEntry{
		ID:          testID(n),
		Title:       fmt.Sprintf("entry %d", n),
		Content:     content,
		Profession:  models.ProfessionAccountant,
		CVSection:   models.SectionSummary,
		ContentType: models.ContentTypeParagraph,
		Embedding:   embedding,
	}
}

func TestRetrieveSimilarExamples_RanksAndBounds(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "prepared monthly ledgers", []float32{0.9, 0.4358899, 0}), // cos 0.9
		accountantEntry(2, "reconciled accounts", []float32{0.5, 0.8660254, 0}),      // cos 0.5
		accountantEntry(3, "filed tax returns", []float32{0.2, 0.9797959, 0}),        // cos 0.2
	}
	svc, _ := newTestService(t, entries, &fakeEmbedder{})

	results, err := svc.RetrieveSimilarExamples(context.Background(), models.Query{
		Text: "accountant summary",
		TopK: 2,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, testID(1), results[0].Entry.ID)
	assert.Equal(t, testID(2), results[1].Entry.ID)
	assert.Equal(t, 0, results[0].Rank)
	assert.Equal(t, 1, results[1].Rank)
}

func TestRetrieveSimilarExamples_FilterNarrowsCandidates(t *testing.T) {
	backend := accountantEntry(1, "built services", []float32{1, 0, 0})
	backend.Profession = models.ProfessionBackendDeveloper
	entries := []*models.KnowledgeEntry{
		backend,
		accountantEntry(2, "prepared ledgers", []float32{1, 0, 0}),
	}
	svc, _ := newTestService(t, entries, &fakeEmbedder{})

	p := models.ProfessionAccountant
	results, err := svc.RetrieveSimilarExamples(context.Background(), models.Query{
		Text:   "summary",
		Filter: models.Filter{Profession: &p},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, testID(2), results[0].Entry.ID)
}

func TestRetrieveSimilarExamples_InputValidation(t *testing.T) {
	svc, _ := newTestService(t, nil, &fakeEmbedder{})
	ctx := context.Background()

	_, err := svc.RetrieveSimilarExamples(ctx, models.Query{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = svc.RetrieveSimilarExamples(ctx, models.Query{Text: "q", TopK: -1})
	assert.ErrorIs(t, err, ErrInvalidTopK)

	_, err = svc.RetrieveSimilarExamples(ctx, models.Query{Text: "q", TopK: 999})
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestRetrieveSimilarExamples_EmptyStoreIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t, nil, &fakeEmbedder{})
	results, err := svc.RetrieveSimilarExamples(context.Background(), models.Query{Text: "anything"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieveSimilarExamples_CacheHitOnNormalizedQuery(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "prepared ledgers", []float32{1, 0, 0}),
	}
	emb := &fakeEmbedder{}
	svc, _ := newTestService(t, entries, emb)
	ctx := context.Background()

	p := models.ProfessionAccountant
	first, err := svc.RetrieveSimilarExamples(ctx, models.Query{
		Text:   "Accountant   Summary",
		Filter: models.Filter{Profession: &p, CVSection: nil},
	})
	require.NoError(t, err)
	require.NotEmpty(t, first)
	require.Equal(t, 1, emb.calls)

	// Same logical query: different whitespace/case, filter assembled in a
	// different order. Must hit the cache and skip the embedder entirely.
	var f models.Filter
	f.CVSection = nil
	f.Profession = &p
	second, err := svc.RetrieveSimilarExamples(ctx, models.Query{
		Text:   "  accountant summary ",
		Filter: f,
	})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, emb.calls, "cache hit must not re-embed")
}

func TestRetrieveSimilarExamples_DegradesToLexicalWhenEmbedderDown(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "prepared monthly financial ledgers", []float32{1, 0, 0}),
		accountantEntry(2, "unrelated frontend react work", []float32{0, 1, 0}),
	}
	emb := &fakeEmbedder{err: fmt.Errorf("%w: connection refused", embedding.ErrUnavailable)}
	svc, _ := newTestService(t, entries, emb)
	ctx := context.Background()

	results, err := svc.RetrieveSimilarExamples(ctx, models.Query{Text: "monthly financial ledgers"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, testID(1), results[0].Entry.ID)

	// Degraded results must not be cached: the next call embeds again.
	calls := emb.calls
	_, err = svc.RetrieveSimilarExamples(ctx, models.Query{Text: "monthly financial ledgers"})
	require.NoError(t, err)
	assert.Greater(t, emb.calls, calls)
}

func TestRetrieveSimilarExamples_NonRecoverableEmbedError(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "prepared ledgers", []float32{1, 0, 0}),
	}
	emb := &fakeEmbedder{err: fmt.Errorf("embedding dimension mismatch")}
	svc, _ := newTestService(t, entries, emb)

	_, err := svc.RetrieveSimilarExamples(context.Background(), models.Query{Text: "ledgers"})
	require.Error(t, err)
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, ErrorTypeDependency, domainErr.Type)
}

func TestHybridSearch_LexicalCanOutrankSemantic(t *testing.T) {
	// A: strong semantic, weak lexical. B: weaker semantic, strong lexical.
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "totally different wording", []float32{0.8, 0.5999999, 0}), // cos 0.8
		accountantEntry(2, "quarterly budget forecast report", []float32{0.6, 0.8, 0}), // cos 0.6
	}
	svc, _ := newTestService(t, entries, &fakeEmbedder{})

	results, err := svc.HybridSearch(context.Background(), models.Query{
		Text: "quarterly budget forecast report",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	// B: 0.7*0.6 + 0.3*1.0 = 0.72 beats A: 0.7*0.8 + 0.3*0 = 0.56.
	assert.Equal(t, testID(2), results[0].Entry.ID)
	assert.Equal(t, testID(1), results[1].Entry.ID)
}

func TestHybridSearch_WrongDimensionEntrySurvivesOnLexical(t *testing.T) {
	good := accountantEntry(1, "unrelated text", []float32{1, 0, 0})
	// Stored embedding with the wrong dimensionality: excluded from
	// semantic scoring but still a lexical candidate.
	bad := accountantEntry(2, "quarterly budget forecast", []float32{0.5, 0.5})

	svc, _ := newTestService(t, []*models.KnowledgeEntry{good, bad}, &fakeEmbedder{})

	results, err := svc.HybridSearch(context.Background(), models.Query{
		Text: "quarterly budget forecast",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []uuid.UUID{results[0].Entry.ID, results[1].Entry.ID}
	assert.Contains(t, ids, bad.ID)
}

func TestHybridSearch_DegradedModeIsNotCached(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "prepared monthly ledgers", []float32{1, 0, 0}),
	}
	emb := &fakeEmbedder{err: fmt.Errorf("%w: down", embedding.ErrUnavailable)}
	svc, memCache := newTestService(t, entries, emb)

	ctx := context.Background()
	results, err := svc.HybridSearch(ctx, models.Query{Text: "monthly ledgers"})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, 0, memCache.Stats(ctx).Entries)
}

func TestHybridSearch_CachesCompletedRuns(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "prepared monthly ledgers", []float32{1, 0, 0}),
	}
	emb := &fakeEmbedder{}
	svc, memCache := newTestService(t, entries, emb)
	ctx := context.Background()

	_, err := svc.HybridSearch(ctx, models.Query{Text: "monthly ledgers"})
	require.NoError(t, err)
	assert.Equal(t, 1, memCache.Stats(ctx).Entries)

	_, err = svc.HybridSearch(ctx, models.Query{Text: "monthly ledgers"})
	require.NoError(t, err)
	assert.Equal(t, 1, emb.calls)
}

func TestRetrieveAndHybrid_UseSeparateCacheKeys(t *testing.T) {
	entries := []*models.KnowledgeEntry{
		accountantEntry(1, "prepared ledgers", []float32{1, 0, 0}),
	}
	svc, memCache := newTestService(t, entries, &fakeEmbedder{})
	ctx := context.Background()

	_, err := svc.RetrieveSimilarExamples(ctx, models.Query{Text: "ledgers", TopK: 3})
	require.NoError(t, err)
	_, err = svc.HybridSearch(ctx, models.Query{Text: "ledgers", TopK: 3})
	require.NoError(t, err)

	assert.Equal(t, 2, memCache.Stats(ctx).Entries)
}
