package models

import (
	"strings"
)

// Label is the canonical sentiment class stored with each review
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// Labels lists every canonical label
var Labels = []Label{LabelPositive, LabelNegative, LabelNeutral}

// labelSuffixes are the display decorations appended at the API boundary
var labelSuffixes = map[Label]string{
	LabelPositive: " 😊",
	LabelNegative: " 😠",
	LabelNeutral:  " 😐",
}

// Decorated returns the label with its display suffix
func (l Label) Decorated() string {
	if suffix, ok := labelSuffixes[l]; ok {
		return string(l) + suffix
	}
	return string(l)
}

// Valid reports whether l is one of the canonical labels
func (l Label) Valid() bool {
	_, ok := labelSuffixes[l]
	return ok
}

// ParseLabel accepts a canonical or decorated label
func ParseLabel(s string) (Label, bool) {
	s = strings.TrimSpace(s)
	for _, l := range Labels {
		if s == string(l) || s == l.Decorated() {
			return l, true
		}
	}
	return "", false
}

// Decorate renders a stored label value for display; unknown values pass through
func Decorate(s string) string {
	if l, ok := ParseLabel(s); ok {
		return l.Decorated()
	}
	return s
}

// TimestampLayout is the storage format of Review.Timestamp (local clock)
const TimestampLayout = "2006-01-02 15:04:05"

// Review represents a classified review
type Review struct {
	ID        int64   `json:"id" db:"id"`
	Content   string  `json:"content" db:"content"`
	Sentiment Label   `json:"sentiment" db:"sentiment"`
	Polarity  float64 `json:"polarity" db:"polarity"`
	Timestamp string  `json:"timestamp" db:"timestamp"`
}
