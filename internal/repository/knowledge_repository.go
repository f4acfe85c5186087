package repository

import (
	"context"
	"encoding/json"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// findLimit caps how many candidates one retrieval call will rank.
const findLimit = 2000

var knowledgeColumns = []string{
	"id", "title", "content", "profession", "cv_section", "content_type",
	"embedding", "quality_score", "word_count", "source_document",
	"created_at", "updated_at",
}

// KnowledgeRepository is the Postgres-backed knowledge store. Embeddings
// are persisted as JSON arrays in a text column of fixed length D.
type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Insert(ctx context.Context, entry *models.KnowledgeEntry) error {
	embedding, err := json.Marshal(entry.Embedding)
	if err != nil {
		return err
	}

	query := squirrel.Insert("knowledge_base").
		Columns(knowledgeColumns...).
		Values(entry.ID, entry.Title, entry.Content, entry.Profession, entry.CVSection,
			entry.ContentType, string(embedding), entry.QualityScore, entry.WordCount,
			entry.SourceDocument, entry.CreatedAt, entry.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Find returns entries matching every set filter field. No matches is an
// empty slice, never an error.
func (r *KnowledgeRepository) Find(ctx context.Context, filter models.Filter) ([]*models.KnowledgeEntry, error) {
	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_base").
		Limit(findLimit).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Profession != nil {
		query = query.Where(squirrel.Eq{"profession": *filter.Profession})
	}
	if filter.CVSection != nil {
		query = query.Where(squirrel.Eq{"cv_section": *filter.CVSection})
	}
	if filter.ContentType != nil {
		query = query.Where(squirrel.Eq{"content_type": *filter.ContentType})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// GetByIDs returns the entries for the given ids; unknown ids are skipped.
func (r *KnowledgeRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.KnowledgeEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := squirrel.Select(knowledgeColumns...).
		From("knowledge_base").
		Where(squirrel.Eq{"id": ids}).
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

	return r.scanEntries(rows)
}

func (r *KnowledgeRepository) scanEntries(rows pgx.Rows) ([]*models.KnowledgeEntry, error) {
	var results []*models.KnowledgeEntry
	for rows.Next() {
		var entry models.KnowledgeEntry
		var embedding string

		if err := rows.Scan(
			&entry.ID, &entry.Title, &entry.Content, &entry.Profession,
			&entry.CVSection, &entry.ContentType, &embedding, &entry.QualityScore,
			&entry.WordCount, &entry.SourceDocument, &entry.CreatedAt, &entry.UpdatedAt,
		); err != nil {
			return nil, err
		}

		// A corrupt stored embedding only disqualifies this entry from
		// semantic search; it still participates in lexical fallback.
		if embedding != "" {
			if err := json.Unmarshal([]byte(embedding), &entry.Embedding); err != nil {
				r.logger.Warn("Corrupt stored embedding, entry kept without vector",
					zap.String("entry_id", entry.ID.String()),
					zap.Error(err),
				)
				entry.Embedding = nil
			}
		}
		results = append(results, &entry)
	}
	return results, rows.Err()
}
