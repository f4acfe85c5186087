package service

import (
	"context"
	"errors"
	"strings"

	"github.com/tessnimetteib/cv-generator-project2/internal/cache"
	"github.com/tessnimetteib/cv-generator-project2/internal/embedding"
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
	"github.com/tessnimetteib/cv-generator-project2/internal/rank"
	"github.com/tessnimetteib/cv-generator-project2/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KnowledgeStore is the read-only accessor over indexed knowledge entries.
type KnowledgeStore interface {
	Find(ctx context.Context, filter models.Filter) ([]*models.KnowledgeEntry, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.KnowledgeEntry, error)
}

// RAGService runs the retrieval pipeline: embed, filter, rank, rerank,
// cache. Instances are independent; all shared mutable state lives in the
// injected cache and feedback snapshot.
type RAGService struct {
	store    KnowledgeStore
	embedder embedding.Embedder
	ranker   *rank.SimilarityRanker
	reranker *rank.QualityReranker
	cache    cache.ResultCache
	cfg      *config.RAGConfig
	logger   *zap.Logger
}

func NewRAGService(
	store KnowledgeStore,
	embedder embedding.Embedder,
	reranker *rank.QualityReranker,
	resultCache cache.ResultCache,
	cfg *config.RAGConfig,
	logger *zap.Logger,
) *RAGService {
	return &RAGService{
		store:    store,
		embedder: embedder,
		ranker:   rank.NewSimilarityRanker(logger),
		reranker: reranker,
		cache:    resultCache,
		cfg:      cfg,
		logger:   logger,
	}
}

// RetrieveSimilarExamples runs semantic retrieval for the query. If the
// embedding provider is down the call degrades to lexical-only ranking
// with a warning; degraded results are never cached.
func (s *RAGService) RetrieveSimilarExamples(ctx context.Context, q models.Query) ([]models.RankedResult, error) {
	topK, err := s.checkQuery(&q, s.cfg.DefaultTopK)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(q.Text, q.Filter, topK, cache.ModeSemantic)
	if results, ok := s.cache.Get(ctx, key); ok {
		s.logger.Debug("Cache hit", zap.String("key", string(key)))
		return results, nil
	}

	candidates, err := s.store.Find(ctx, q.Filter)
	if err != nil {
		return nil, NewDomainError(ErrorTypeData, "knowledge store read failed", err)
	}
	if len(candidates) == 0 {
		return []models.RankedResult{}, nil
	}

	window := s.cfg.RerankWindow
	if window < topK {
		window = topK
	}

	queryVec, err := s.embedder.Embed(ctx, q.Text)
	if err != nil {
		return s.lexicalFallback(q.Text, candidates, window, topK, err)
	}

	ranked := s.ranker.Rank(queryVec, candidates, window)
	results := s.finalize(ranked, topK)

	s.cachePut(ctx, key, results)
	return results, nil
}

// HybridSearch fuses semantic and lexical scores before reranking.
// Candidates without a usable embedding keep a semantic term of 0 and can
// still rank on lexical overlap alone.
func (s *RAGService) HybridSearch(ctx context.Context, q models.Query) ([]models.RankedResult, error) {
	topK, err := s.checkQuery(&q, s.cfg.HybridTopK)
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(q.Text, q.Filter, topK, cache.ModeHybrid)
	if results, ok := s.cache.Get(ctx, key); ok {
		s.logger.Debug("Cache hit", zap.String("key", string(key)))
		return results, nil
	}

	candidates, err := s.store.Find(ctx, q.Filter)
	if err != nil {
		return nil, NewDomainError(ErrorTypeData, "knowledge store read failed", err)
	}
	if len(candidates) == 0 {
		return []models.RankedResult{}, nil
	}

	lexical := make(map[uuid.UUID]float64, len(candidates))
	for _, entry := range candidates {
		lexical[entry.ID] = rank.LexicalScore(q.Text, entry.Content)
	}

	degraded := false
	semantic := make(map[uuid.UUID]float64)
	queryVec, err := s.embedder.Embed(ctx, q.Text)
	if err != nil {
		s.logger.Warn("Embedding failed, hybrid search degraded to lexical-only", zap.Error(err))
		degraded = true
	} else {
		for _, sc := range s.ranker.Rank(queryVec, candidates, len(candidates)) {
			semantic[sc.Entry.ID] = sc.Score
		}
	}

	window := s.cfg.RerankWindow
	if window < topK {
		window = topK
	}

	weights := rank.FusionWeights{Semantic: s.cfg.SemanticWeight, Lexical: s.cfg.LexicalWeight}
	fused := rank.FuseScores(candidates, semantic, lexical, weights, window)
	results := s.finalize(fused, topK)

	if !degraded {
		s.cachePut(ctx, key, results)
	}
	return results, nil
}

// ContextEntries resolves entry ids into knowledge entries, for callers
// replaying a context set into validation.
func (s *RAGService) ContextEntries(ctx context.Context, ids []uuid.UUID) ([]*models.KnowledgeEntry, error) {
	entries, err := s.store.GetByIDs(ctx, ids)
	if err != nil {
		return nil, NewDomainError(ErrorTypeData, "knowledge store read failed", err)
	}
	return entries, nil
}

// CacheStats exposes cache counters for health reporting.
func (s *RAGService) CacheStats(ctx context.Context) cache.Stats {
	return s.cache.Stats(ctx)
}

func (s *RAGService) checkQuery(q *models.Query, defaultTopK int) (int, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return 0, ErrEmptyQuery
	}
	topK := q.TopK
	if topK == 0 {
		topK = defaultTopK
	}
	if topK < 0 || topK > s.cfg.MaxTopK {
		return 0, ErrInvalidTopK
	}
	return topK, nil
}

// lexicalFallback serves a retrieval request without embeddings. Results
// are not cached under the semantic key.
func (s *RAGService) lexicalFallback(queryText string, candidates []*models.KnowledgeEntry, window, topK int, cause error) ([]models.RankedResult, error) {
	if !errors.Is(cause, embedding.ErrUnavailable) {
		return nil, NewDomainError(ErrorTypeDependency, "query embedding failed", cause)
	}
	s.logger.Warn("Embedding provider unavailable, falling back to lexical ranking", zap.Error(cause))

	scored := make([]rank.Scored, 0, len(candidates))
	for _, entry := range candidates {
		scored = append(scored, rank.Scored{Entry: entry, Score: rank.LexicalScore(queryText, entry.Content)})
	}
	rank.SortByScore(scored)
	if window < len(scored) {
		scored = scored[:window]
	}
	return s.finalize(scored, topK), nil
}

// finalize reranks by quality signals, truncates to topK, and assigns
// 0-based ranks.
func (s *RAGService) finalize(scored []rank.Scored, topK int) []models.RankedResult {
	reranked := s.reranker.Rerank(scored)
	if topK < len(reranked) {
		reranked = reranked[:topK]
	}
	results := make([]models.RankedResult, len(reranked))
	for i, sc := range reranked {
		results[i] = models.RankedResult{Entry: sc.Entry, Score: sc.Score, Rank: i}
	}
	return results
}

// cachePut writes a completed result set. An abandoned request never
// reaches the cache.
func (s *RAGService) cachePut(ctx context.Context, key cache.Key, results []models.RankedResult) {
	if ctx.Err() != nil || len(results) == 0 {
		return
	}
	s.cache.Put(ctx, key, results)
}
