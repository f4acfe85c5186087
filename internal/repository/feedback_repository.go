package repository

import (
	"context"
	"time"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// FeedbackRepository is the append-only Postgres store for generation
// feedback.
type FeedbackRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFeedbackRepository(db *pgxpool.Pool, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FeedbackRepository) Insert(ctx context.Context, fb *models.FeedbackRecord) error {
	query := squirrel.Insert("generation_feedback").
		Columns("id", "generation_id", "profession", "cv_section", "rating",
			"comment", "suggested_improvement", "was_helpful", "created_at").
		Values(fb.ID, fb.GenerationID, fb.Profession, fb.CVSection, fb.Rating,
			fb.Comment, fb.SuggestedImprovement, fb.WasHelpful, fb.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListSince returns feedback created at or after cutoff, for aggregation.
func (r *FeedbackRepository) ListSince(ctx context.Context, cutoff time.Time) ([]models.FeedbackRecord, error) {
	query := squirrel.Select("id", "generation_id", "profession", "cv_section", "rating",
		"comment", "suggested_improvement", "was_helpful", "created_at").
		From("generation_feedback").
		Where(squirrel.GtOrEq{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.FeedbackRecord
	for rows.Next() {
		var fb models.FeedbackRecord
		if err := rows.Scan(
			&fb.ID, &fb.GenerationID, &fb.Profession, &fb.CVSection, &fb.Rating,
			&fb.Comment, &fb.SuggestedImprovement, &fb.WasHelpful, &fb.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, fb)
	}
	return records, rows.Err()
}
