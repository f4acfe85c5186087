// Package cache memoizes final ranked result sets keyed by normalized
// query plus filters. Cache failures are never fatal: a backend error is
// reported as a miss and the pipeline recomputes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/tessnimetteib/cv-generator-project2/internal/models"
)

// Mode distinguishes result sets produced by different search pipelines so
// they never collide under one key.
type Mode string

const (
	ModeSemantic Mode = "semantic"
	ModeHybrid   Mode = "hybrid"
)

// Key identifies one cached result set.
type Key string

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Entries   int   `json:"entries"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// ResultCache stores final ranked result sets. Get and Put are safe for
// concurrent use; Get increments the entry's hit count on a hit.
type ResultCache interface {
	Get(ctx context.Context, key Key) ([]models.RankedResult, bool)
	Put(ctx context.Context, key Key, results []models.RankedResult)
	Stats(ctx context.Context) Stats
}

// BuildKey derives a deterministic key from the normalized query text, the
// filter set, top-k, and search mode. Filter fields are serialized in a
// fixed order, so the key is independent of how the caller assembled the
// filter.
func BuildKey(queryText string, filter models.Filter, topK int, mode Mode) Key {
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(NormalizeQuery(queryText))
	b.WriteString("|profession=")
	if filter.Profession != nil {
		b.WriteString(string(*filter.Profession))
	}
	b.WriteString("|section=")
	if filter.CVSection != nil {
		b.WriteString(string(*filter.CVSection))
	}
	b.WriteString("|content_type=")
	if filter.ContentType != nil {
		b.WriteString(string(*filter.ContentType))
	}
	b.WriteString("|k=")
	b.WriteString(strconv.Itoa(topK))
	b.WriteString("|mode=")
	b.WriteString(string(mode))

	sum := sha256.Sum256([]byte(b.String()))
	return Key(hex.EncodeToString(sum[:]))
}

// NormalizeQuery trims, lowercases, and collapses whitespace so that
// semantically identical queries hash to the same key.
func NormalizeQuery(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
