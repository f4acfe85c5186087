package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tessnimetteib/cv-generator-project2/internal/embedding"
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
	"github.com/tessnimetteib/cv-generator-project2/internal/rank"
	"github.com/tessnimetteib/cv-generator-project2/pkg/config"

	"go.uber.org/zap"
)

// ValidationService checks generated text against the retrieved context it
// was produced from. It never returns an error: ambiguous or unverifiable
// inputs get the lowest-confidence invalid verdict.
type ValidationService struct {
	embedder embedding.Embedder
	cfg      *config.ValidationConfig
	logger   *zap.Logger
}

func NewValidationService(embedder embedding.Embedder, cfg *config.ValidationConfig, logger *zap.Logger) *ValidationService {
	return &ValidationService{
		embedder: embedder,
		cfg:      cfg,
		logger:   logger,
	}
}

// ValidateGeneration returns a verdict on generatedText given the context
// entries used to produce it. Checks, in order: non-trivial content,
// degenerate token repetition, then semantic grounding against the
// centroid of the context embeddings. Confidence is the grounding
// similarity rescaled to [0,1] and is populated even for invalid verdicts.
func (s *ValidationService) ValidateGeneration(ctx context.Context, queryText, generatedText string, contextEntries []*models.KnowledgeEntry) models.ValidationVerdict {
	text := strings.TrimSpace(generatedText)
	if len(text) < s.cfg.MinGeneratedChars {
		return models.ValidationVerdict{
			IsValid:    false,
			Reason:     models.ReasonEmptyTrivial,
			Detail:     fmt.Sprintf("generated text shorter than %d characters", s.cfg.MinGeneratedChars),
			Confidence: 0,
		}
	}

	if token, frac, ok := dominantToken(text, s.cfg.RepetitionThreshold); ok {
		return models.ValidationVerdict{
			IsValid:    false,
			Reason:     models.ReasonRepetition,
			Detail:     fmt.Sprintf("token %q makes up %.0f%% of the output", token, frac*100),
			Confidence: 0,
		}
	}

	centroid, ok := contextCentroid(contextEntries, s.embedder.Dimension())
	if !ok {
		return models.ValidationVerdict{
			IsValid:    false,
			Reason:     models.ReasonUngrounded,
			Detail:     "no usable context embeddings",
			Confidence: 0,
		}
	}

	genVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("Could not embed generated text for validation", zap.Error(err))
		return models.ValidationVerdict{
			IsValid:    false,
			Reason:     models.ReasonUngrounded,
			Detail:     "generated text could not be embedded",
			Confidence: 0,
		}
	}

	sim, ok := rank.Cosine(genVec, centroid)
	if !ok {
		return models.ValidationVerdict{
			IsValid:    false,
			Reason:     models.ReasonUngrounded,
			Detail:     "degenerate embedding",
			Confidence: 0,
		}
	}

	confidence := (sim + 1) / 2
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	if sim < s.cfg.SimilarityThreshold {
		return models.ValidationVerdict{
			IsValid:    false,
			Reason:     models.ReasonUngrounded,
			Detail:     fmt.Sprintf("similarity %.2f below threshold %.2f", sim, s.cfg.SimilarityThreshold),
			Confidence: confidence,
		}
	}

	return models.ValidationVerdict{
		IsValid:    true,
		Reason:     models.ReasonGrounded,
		Confidence: confidence,
	}
}

// dominantToken reports a token whose frequency exceeds threshold as a
// fraction of all tokens. Very short outputs are exempt: repetition is
// only meaningful over a minimum token count.
func dominantToken(text string, threshold float64) (string, float64, bool) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) < 10 {
		return "", 0, false
	}
	counts := make(map[string]int, len(fields))
	for _, f := range fields {
		counts[f]++
	}
	for token, n := range counts {
		frac := float64(n) / float64(len(fields))
		if frac > threshold {
			return token, frac, true
		}
	}
	return "", 0, false
}

// contextCentroid is the mean of the context entries' embeddings. Entries
// without an embedding or with a stored vector of the wrong length are
// skipped; no usable embeddings means no centroid.
func contextCentroid(entries []*models.KnowledgeEntry, dim int) ([]float32, bool) {
	centroid := make([]float32, dim)
	n := 0
	for _, entry := range entries {
		if len(entry.Embedding) != dim {
			continue
		}
		for i, v := range entry.Embedding {
			centroid[i] += v
		}
		n++
	}
	if n == 0 {
		return nil, false
	}
	for i := range centroid {
		centroid[i] /= float32(n)
	}
	return centroid, true
}
