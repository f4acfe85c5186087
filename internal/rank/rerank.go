package rank

import (
	"github.com/tessnimetteib/cv-generator-project2/internal/models"
)

// FeedbackSignal exposes the aggregated historical rating for a
// profession/section pair, in [0,1]. Implementations return 0 when no
// history exists.
type FeedbackSignal interface {
	Signal(profession models.Profession, section models.CVSection) float64
}

// contentTypePreference biases reranking toward richer content forms.
var contentTypePreference = map[models.ContentType]float64{
	models.ContentTypeJobDescription: 1.0,
	models.ContentTypeParagraph:      0.8,
	models.ContentTypeAchievement:    0.7,
	models.ContentTypeBullet:         0.6,
}

// QualityReranker re-orders an already-ranked candidate list using
// intrinsic quality signals:
//
//	final = alpha*similarity + beta*quality + gamma*feedback
//
// where quality blends the entry's stored quality score with a static
// content-type preference. Only the first window entries are re-ordered;
// the candidate set itself never changes.
type QualityReranker struct {
	alpha    float64
	beta     float64
	gamma    float64
	window   int
	feedback FeedbackSignal
}

func NewQualityReranker(alpha, beta, gamma float64, window int, feedback FeedbackSignal) *QualityReranker {
	return &QualityReranker{alpha: alpha, beta: beta, gamma: gamma, window: window, feedback: feedback}
}

// Rerank re-orders up to the configured window of results and leaves the
// tail untouched. Deterministic for a fixed feedback snapshot.
func (r *QualityReranker) Rerank(results []Scored) []Scored {
	if len(results) < 2 {
		return results
	}

	window := r.window
	if window > len(results) {
		window = len(results)
	}

	head := make([]Scored, window)
	for i, res := range results[:window] {
		head[i] = Scored{Entry: res.Entry, Score: r.finalScore(res)}
	}
	SortByScore(head)

	out := make([]Scored, 0, len(results))
	out = append(out, head...)
	out = append(out, results[window:]...)
	return out
}

func (r *QualityReranker) finalScore(res Scored) float64 {
	sim := clamp01(res.Score)

	pref, ok := contentTypePreference[res.Entry.ContentType]
	if !ok {
		pref = 0.5
	}
	quality := (clamp01(res.Entry.QualityScore) + pref) / 2

	var fb float64
	if r.feedback != nil {
		fb = clamp01(r.feedback.Signal(res.Entry.Profession, res.Entry.CVSection))
	}

	return r.alpha*sim + r.beta*quality + r.gamma*fb
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
