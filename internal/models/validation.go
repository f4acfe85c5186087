package models

// ValidationReason categorizes a validation verdict.
type ValidationReason string

const (
	ReasonGrounded     ValidationReason = "grounded"
	ReasonUngrounded   ValidationReason = "ungrounded"
	ReasonEmptyTrivial ValidationReason = "empty_or_trivial"
	ReasonRepetition   ValidationReason = "degenerate_repetition"
)

// ValidationVerdict is the outcome of checking generated text against its
// retrieved context. Confidence is always populated, even for invalid
// verdicts, so callers can tell a close miss from garbage.
type ValidationVerdict struct {
	IsValid    bool             `json:"is_valid"`
	Reason     ValidationReason `json:"reason"`
	Detail     string           `json:"detail,omitempty"`
	Confidence float64          `json:"confidence"`
}
