package services

import (
	"strings"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/normalisers"
)

// Match tiers, per token per field
const (
	tierPrefix    = 5 // field starts with the token
	tierBoundary  = 3 // token starts a later word
	tierSubstring = 1 // token appears anywhere
)

// FieldWeights multiply the tier of a match in each searchable field
type FieldWeights struct {
	Title    int
	Keywords int
	Body     int
}

// DefaultFieldWeights ranks a title match above keywords above body text
func DefaultFieldWeights() FieldWeights {
	return FieldWeights{Title: 4, Keywords: 2, Body: 1}
}

// Scorer computes field-weighted relevance of a candidate against query tokens
type Scorer struct {
	weights FieldWeights
}

// NewScorer creates a Scorer with the given field weights
func NewScorer(weights FieldWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score returns the relevance of c for tokens. ok is false unless every token
// occurs in at least one field. Tokens must already be folded.
func (s *Scorer) Score(c *domain.Candidate, tokens []string) (score int, ok bool) {
	if len(tokens) == 0 {
		return 0, false
	}

	fields := [...]struct {
		text   string
		weight int
	}{
		{normalisers.Fold(c.Title), s.weights.Title},
		{normalisers.Fold(c.KeywordText()), s.weights.Keywords},
		{normalisers.Fold(c.Body), s.weights.Body},
	}

	for _, token := range tokens {
		matched := false
		for _, f := range fields {
			tier := matchTier(f.text, token)
			if tier == 0 {
				continue
			}
			matched = true
			score += tier * f.weight
		}
		if !matched {
			return 0, false
		}
	}
	return score, true
}

// matchTier returns the best exclusive tier of token in text, or 0
func matchTier(text, token string) int {
	switch {
	case token == "" || text == "":
		return 0
	case strings.HasPrefix(text, token):
		return tierPrefix
	case normalisers.IndexAtWordBoundary(text, token) >= 0:
		return tierBoundary
	case strings.Contains(text, token):
		return tierSubstring
	default:
		return 0
	}
}
