package mocks

import (
	"strings"
	"sync"

	"github.com/review-sentiment-api/internal/sentiment"
)

// KeywordScorer is a deterministic Scorer: the first known word found in the
// text decides the score, anything else scores 0.
type KeywordScorer struct {
	mu     sync.Mutex
	Words  map[string]float64
	Calls  int
	Inputs []string
}

// Verify interface compliance
var _ sentiment.Scorer = (*KeywordScorer)(nil)

func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		Words: map[string]float64{
			"love":      0.5,
			"great":     0.8,
			"excellent": 1.0,
			"terrible":  -1.0,
			"awful":     -1.0,
			"bad":       -0.7,
		},
	}
}

func (s *KeywordScorer) Score(text string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.Inputs = append(s.Inputs, text)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?\"'")
		if score, ok := s.Words[word]; ok {
			return score
		}
	}
	return 0
}
