package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/tessnimetteib/cv-generator-project2/internal/embedding"
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
	"github.com/tessnimetteib/cv-generator-project2/pkg/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testValidationConfig() *config.ValidationConfig {
	return &config.ValidationConfig{
		SimilarityThreshold: 0.3,
		RepetitionThreshold: 0.5,
		MinGeneratedChars:   50,
	}
}

func contextWithEmbedding(vec []float32) []*models.KnowledgeEntry {
	return []*models.KnowledgeEntry{
		{ID: testID(1), Content: "context", Embedding: vec},
	}
}

const groundedText = "Prepared and reconciled monthly financial statements for twelve corporate accounts."

func TestValidateGeneration_EmptyTextAlwaysTrivial(t *testing.T) {
	svc := NewValidationService(&fakeEmbedder{}, testValidationConfig(), zap.NewNop())
	ctx := context.Background()

	for _, text := range []string{"", "   ", "short output"} {
		verdict := svc.ValidateGeneration(ctx, "query", text, contextWithEmbedding([]float32{1, 0, 0}))
		assert.False(t, verdict.IsValid)
		assert.Equal(t, models.ReasonEmptyTrivial, verdict.Reason)
		assert.Equal(t, 0.0, verdict.Confidence)
	}

	// Regardless of context: even with no context at all the reason stays
	// empty_or_trivial.
	verdict := svc.ValidateGeneration(ctx, "query", "", nil)
	assert.Equal(t, models.ReasonEmptyTrivial, verdict.Reason)
}

func TestValidateGeneration_DegenerateRepetition(t *testing.T) {
	svc := NewValidationService(&fakeEmbedder{}, testValidationConfig(), zap.NewNop())

	text := strings.TrimSpace(strings.Repeat("excellence ", 12))
	verdict := svc.ValidateGeneration(context.Background(), "query", text, contextWithEmbedding([]float32{1, 0, 0}))
	assert.False(t, verdict.IsValid)
	assert.Equal(t, models.ReasonRepetition, verdict.Reason)
}

func TestValidateGeneration_Grounded(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		groundedText: {1, 0, 0},
	}}
	svc := NewValidationService(emb, testValidationConfig(), zap.NewNop())

	verdict := svc.ValidateGeneration(context.Background(), "query", groundedText, contextWithEmbedding([]float32{1, 0, 0}))
	assert.True(t, verdict.IsValid)
	assert.Equal(t, models.ReasonGrounded, verdict.Reason)
	assert.InDelta(t, 1.0, verdict.Confidence, 1e-6)
}

func TestValidateGeneration_Ungrounded(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		groundedText: {0, 1, 0}, // orthogonal to context
	}}
	svc := NewValidationService(emb, testValidationConfig(), zap.NewNop())

	verdict := svc.ValidateGeneration(context.Background(), "query", groundedText, contextWithEmbedding([]float32{1, 0, 0}))
	assert.False(t, verdict.IsValid)
	assert.Equal(t, models.ReasonUngrounded, verdict.Reason)
	// Confidence still reported so callers can tell a close miss from garbage.
	assert.InDelta(t, 0.5, verdict.Confidence, 1e-6)
}

func TestValidateGeneration_CentroidOfMultipleContexts(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		groundedText: {1, 0, 0},
	}}
	svc := NewValidationService(emb, testValidationConfig(), zap.NewNop())

	contextEntries := []*models.KnowledgeEntry{
		{ID: testID(1), Embedding: []float32{1, 0, 0}},
		{ID: testID(2), Embedding: []float32{0, 1, 0}},
		{ID: testID(3), Embedding: nil}, // no embedding, skipped
	}

	verdict := svc.ValidateGeneration(context.Background(), "query", groundedText, contextEntries)
	// centroid = (0.5, 0.5, 0); cos with (1,0,0) = 0.7071
	assert.True(t, verdict.IsValid)
	assert.InDelta(t, (0.7071+1)/2, verdict.Confidence, 1e-3)
}

func TestValidateGeneration_WrongDimensionContextSkipped(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		groundedText: {1, 0, 0},
	}}
	svc := NewValidationService(emb, testValidationConfig(), zap.NewNop())

	// A stored embedding with the wrong dimensionality must not poison the
	// centroid; only the well-formed entry contributes.
	contextEntries := []*models.KnowledgeEntry{
		{ID: testID(1), Embedding: []float32{0.5, 0.5}},
		{ID: testID(2), Embedding: []float32{1, 0, 0}},
	}

	verdict := svc.ValidateGeneration(context.Background(), "query", groundedText, contextEntries)
	assert.True(t, verdict.IsValid)
	assert.Equal(t, models.ReasonGrounded, verdict.Reason)
	assert.InDelta(t, 1.0, verdict.Confidence, 1e-6)
}

func TestValidateGeneration_OnlyWrongDimensionContextIsUngrounded(t *testing.T) {
	svc := NewValidationService(&fakeEmbedder{}, testValidationConfig(), zap.NewNop())

	contextEntries := []*models.KnowledgeEntry{
		{ID: testID(1), Embedding: []float32{0.5, 0.5}},
	}

	verdict := svc.ValidateGeneration(context.Background(), "query", groundedText, contextEntries)
	assert.False(t, verdict.IsValid)
	assert.Equal(t, models.ReasonUngrounded, verdict.Reason)
	assert.Equal(t, 0.0, verdict.Confidence)
}

func TestValidateGeneration_NoContextEmbeddings(t *testing.T) {
	svc := NewValidationService(&fakeEmbedder{}, testValidationConfig(), zap.NewNop())

	verdict := svc.ValidateGeneration(context.Background(), "query", groundedText, nil)
	assert.False(t, verdict.IsValid)
	assert.Equal(t, models.ReasonUngrounded, verdict.Reason)
	assert.Equal(t, 0.0, verdict.Confidence)
}

func TestValidateGeneration_EmbedderDownNeverErrors(t *testing.T) {
	emb := &fakeEmbedder{err: fmt.Errorf("%w: down", embedding.ErrUnavailable)}
	svc := NewValidationService(emb, testValidationConfig(), zap.NewNop())

	verdict := svc.ValidateGeneration(context.Background(), "query", groundedText, contextWithEmbedding([]float32{1, 0, 0}))
	assert.False(t, verdict.IsValid)
	assert.Equal(t, models.ReasonUngrounded, verdict.Reason)
	assert.Equal(t, 0.0, verdict.Confidence)
}
