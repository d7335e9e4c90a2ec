package sentiment

import (
	"testing"

	"github.com/review-sentiment-api/internal/models"
)

func TestVaderScorer_Examples(t *testing.T) {
	c := NewClassifier(NewVaderScorer())

	tests := []struct {
		text string
		want models.Label
	}{
		{"I love this product", models.LabelPositive},
		{"This is terrible", models.LabelNegative},
		{"It is a table", models.LabelNeutral},
		{"", models.LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			label, polarity := c.Classify(tt.text)
			if label != tt.want {
				t.Errorf("Classify(%q) = %s (%.3f), want %s", tt.text, label, polarity, tt.want)
			}
			if polarity < -1 || polarity > 1 {
				t.Errorf("polarity %v out of range", polarity)
			}
		})
	}
}
