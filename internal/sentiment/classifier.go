package sentiment

import (
	"github.com/review-sentiment-api/internal/models"
)

// Thresholds on polarity; values exactly on a threshold are Neutral
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// Scorer computes a polarity score in [-1.0, 1.0] for a text
type Scorer interface {
	Score(text string) float64
}

// ScorerFunc adapts a plain function to Scorer
type ScorerFunc func(text string) float64

// Score calls f(text)
func (f ScorerFunc) Score(text string) float64 {
	return f(text)
}

// Classifier maps polarity scores to labels
type Classifier struct {
	scorer Scorer
}

// NewClassifier creates a classifier over the given scorer
func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify scores text and returns its label and clamped polarity
func (c *Classifier) Classify(text string) (models.Label, float64) {
	polarity := clamp(c.scorer.Score(text))
	return LabelFor(polarity), polarity
}

// ClassifyValue classifies v if it is a string; any other value is Neutral
// with zero polarity and the scorer is not consulted.
func (c *Classifier) ClassifyValue(v any) (models.Label, float64) {
	text, ok := v.(string)
	if !ok {
		return models.LabelNeutral, 0.0
	}
	return c.Classify(text)
}

// LabelFor thresholds a polarity score
func LabelFor(polarity float64) models.Label {
	switch {
	case polarity > PositiveThreshold:
		return models.LabelPositive
	case polarity < NegativeThreshold:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

func clamp(p float64) float64 {
	switch {
	case p != p: // NaN
		return 0
	case p > 1:
		return 1
	case p < -1:
		return -1
	default:
		return p
	}
}
