package dto

import (
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
)

type RetrieveRequest struct {
	Query       string `json:"query" validate:"required"`
	Profession  string `json:"profession,omitempty"`
	CVSection   string `json:"cv_section,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	TopK        int    `json:"top_k,omitempty" validate:"omitempty,min=1,max=50"`
}

type ResultResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Profession   string  `json:"profession"`
	CVSection    string  `json:"cv_section"`
	ContentType  string  `json:"content_type"`
	QualityScore float64 `json:"quality_score"`
	Score        float64 `json:"score"`
	Rank         int     `json:"rank"`
}

type RetrieveResponse struct {
	Results []ResultResponse `json:"results"`
	Count   int              `json:"count"`
}

type ValidateRequest struct {
	Query         string   `json:"query" validate:"required"`
	GeneratedText string   `json:"generated_text"`
	ContextIDs    []string `json:"context_ids" validate:"required,min=1,dive,uuid"`
}

type ValidateResponse struct {
	IsValid    bool    `json:"is_valid"`
	Reason     string  `json:"reason"`
	Detail     string  `json:"detail,omitempty"`
	Confidence float64 `json:"confidence"`
}

type FeedbackRequest struct {
	GenerationID         string `json:"generation_id" validate:"required,uuid"`
	Profession           string `json:"profession" validate:"required"`
	CVSection            string `json:"cv_section" validate:"required"`
	Rating               int    `json:"rating" validate:"required,min=1,max=5"`
	Comment              string `json:"comment,omitempty"`
	SuggestedImprovement string `json:"suggested_improvement,omitempty"`
}

// FromRankedResults converts pipeline output into the API shape.
func FromRankedResults(results []models.RankedResult) RetrieveResponse {
	out := make([]ResultResponse, len(results))
	for i, r := range results {
		out[i] = ResultResponse{
			ID:           r.Entry.ID.String(),
			Title:        r.Entry.Title,
			Content:      r.Entry.Content,
			Profession:   string(r.Entry.Profession),
			CVSection:    string(r.Entry.CVSection),
			ContentType:  string(r.Entry.ContentType),
			QualityScore: r.Entry.QualityScore,
			Score:        r.Score,
			Rank:         r.Rank,
		}
	}
	return RetrieveResponse{Results: out, Count: len(out)}
}
