package service

import (
	"fmt"
)

// ErrorType categorizes service errors for callers and the HTTP layer.
type ErrorType string

const (
	// ErrorTypeInput covers bad requests: empty query text, unknown enum
	// filter values, out-of-range top-k or ratings. Rejected before any
	// retrieval work.
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeDependency covers unreachable external collaborators, e.g.
	// the embedding provider.
	ErrorTypeDependency ErrorType = "dependency"
	// ErrorTypeData covers corrupt stored data. Single bad entries are
	// skipped in-pipeline and never surface as this; it is reserved for
	// failures that make the whole call unanswerable.
	ErrorTypeData ErrorType = "data"
	// ErrorTypeCache covers cache backend failures. Forced misses in
	// practice; surfaced only from administrative paths.
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeInternal is everything else.
	ErrorTypeInternal ErrorType = "internal"
)

// DomainError is a categorized service error.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on error category so callers can test errors.Is(err, ErrEmptyQuery)
// style sentinels as well as whole categories.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Message != "" && t.Message != e.Message {
		return false
	}
	return e.Type == t.Type
}

// NewDomainError creates a categorized error wrapping an underlying cause.
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{Type: errType, Message: message, Err: err}
}

var (
	ErrEmptyQuery            = NewDomainError(ErrorTypeInput, "query text must not be empty", nil)
	ErrInvalidFilter         = NewDomainError(ErrorTypeInput, "invalid filter value", nil)
	ErrInvalidTopK           = NewDomainError(ErrorTypeInput, "top_k out of range", nil)
	ErrInvalidRating         = NewDomainError(ErrorTypeInput, "rating must be between 1 and 5", nil)
	ErrEmbeddingUnavailable  = NewDomainError(ErrorTypeDependency, "embedding provider unavailable", nil)
	ErrKnowledgeStoreFailure = NewDomainError(ErrorTypeData, "knowledge store read failed", nil)
)
