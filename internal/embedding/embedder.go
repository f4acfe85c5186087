// Package embedding wraps the external text-embedding provider. The model
// itself is a black box; this package only defines the transport and the
// fixed-dimension contract shared with stored knowledge entries.
package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable marks embedding failures caused by the provider being
// unreachable or misbehaving. Callers may degrade to lexical-only search.
var ErrUnavailable = errors.New("embedding provider unavailable")

// Embedder converts free text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}
