package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackRecord is one user rating of a generation event. Records are
// append-only; they are consumed in aggregate as a ranking signal, never
// mutated after creation.
type FeedbackRecord struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	GenerationID         uuid.UUID  `db:"generation_id" json:"generation_id"`
	Profession           Profession `db:"profession" json:"profession"`
	CVSection            CVSection  `db:"cv_section" json:"cv_section"`
	Rating               int        `db:"rating" json:"rating"`
	Comment              string     `db:"comment" json:"comment,omitempty"`
	SuggestedImprovement string     `db:"suggested_improvement" json:"suggested_improvement,omitempty"`
	WasHelpful           bool       `db:"was_helpful" json:"was_helpful"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}
