package rank

import (
	"regexp"
	"strings"
)

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`)

// TokenSet lowercases text and extracts its unique word tokens.
func TokenSet(text string) map[string]struct{} {
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// LexicalScore is the Jaccard overlap of the two texts' token sets, in
// [0,1]. Pure function of its inputs; empty token sets score 0.
func LexicalScore(queryText, candidateText string) float64 {
	return jaccard(TokenSet(queryText), TokenSet(candidateText))
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
