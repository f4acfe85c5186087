package service

import (
	"context"
	"sync"
	"time"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"
	"github.com/tessnimetteib/cv-generator-project2/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedbackStore persists feedback records and serves them for aggregation.
type FeedbackStore interface {
	Insert(ctx context.Context, fb *models.FeedbackRecord) error
	ListSince(ctx context.Context, cutoff time.Time) ([]models.FeedbackRecord, error)
}

type signalKey struct {
	profession models.Profession
	section    models.CVSection
}

// FeedbackService records user ratings and maintains the aggregate signal
// consumed by the quality reranker. Recording never blocks on aggregation:
// the snapshot is refreshed on a ticker and read under a lock-free-enough
// RWMutex, so ranking sees a slightly stale but consistent view.
type FeedbackService struct {
	store  FeedbackStore
	cfg    *config.FeedbackConfig
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot map[signalKey]float64

	now func() time.Time
}

func NewFeedbackService(store FeedbackStore, cfg *config.FeedbackConfig, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		store:    store,
		cfg:      cfg,
		logger:   logger,
		snapshot: make(map[signalKey]float64),
		now:      time.Now,
	}
}

// Record appends one feedback record. Ratings outside 1..5 are rejected
// before any write.
func (s *FeedbackService) Record(ctx context.Context, fb *models.FeedbackRecord) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return ErrInvalidRating
	}
	if fb.ID == uuid.Nil {
		fb.ID = uuid.New()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = s.now()
	}
	fb.WasHelpful = fb.Rating >= 3

	if err := s.store.Insert(ctx, fb); err != nil {
		return NewDomainError(ErrorTypeInternal, "failed to save feedback", err)
	}

	s.logger.Info("Feedback recorded",
		zap.String("generation_id", fb.GenerationID.String()),
		zap.Int("rating", fb.Rating),
	)
	return nil
}

// Signal returns the aggregated rating for a profession/section pair in
// [0,1], or 0 when no history exists. Implements rank.FeedbackSignal.
func (s *FeedbackService) Signal(profession models.Profession, section models.CVSection) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot[signalKey{profession: profession, section: section}]
}

// Refresh recomputes the aggregate snapshot: per profession/section pair,
// the recency-weighted mean rating over the configured window, rescaled
// from [1,5] to [0,1]. Weight decays linearly with age.
func (s *FeedbackService) Refresh(ctx context.Context) error {
	now := s.now()
	cutoff := now.Add(-s.cfg.Window)

	records, err := s.store.ListSince(ctx, cutoff)
	if err != nil {
		return NewDomainError(ErrorTypeInternal, "failed to load feedback for aggregation", err)
	}

	type acc struct {
		weighted float64
		weight   float64
	}
	sums := make(map[signalKey]*acc)
	for _, r := range records {
		age := now.Sub(r.CreatedAt)
		w := 1 - float64(age)/float64(s.cfg.Window)
		if w <= 0 {
			continue
		}
		key := signalKey{profession: r.Profession, section: r.CVSection}
		a, ok := sums[key]
		if !ok {
			a = &acc{}
			sums[key] = a
		}
		a.weighted += w * (float64(r.Rating) - 1) / 4
		a.weight += w
	}

	snapshot := make(map[signalKey]float64, len(sums))
	for key, a := range sums {
		if a.weight > 0 {
			snapshot[key] = a.weighted / a.weight
		}
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Debug("Feedback snapshot refreshed", zap.Int("pairs", len(snapshot)))
	return nil
}

// Start refreshes the snapshot immediately and then on the configured
// interval until ctx is cancelled.
func (s *FeedbackService) Start(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("Initial feedback refresh failed", zap.Error(err))
	}

	go func() {
		ticker := time.NewTicker(s.cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					s.logger.Warn("Feedback refresh failed", zap.Error(err))
				}
			}
		}
	}()
}
