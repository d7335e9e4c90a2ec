package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/review-sentiment-api/internal/config"
	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/repository"
	"github.com/rs/zerolog"
)

// Export formats
const (
	FormatCSV    = "csv"
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
)

// reviewService is the concrete implementation of ReviewService
type reviewService struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   zerolog.Logger
}

// newReviewService creates a new ReviewService
func newReviewService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *reviewService {
	return &reviewService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "review").Logger(),
	}
}

// History returns the most recent reviews, newest first
func (s *reviewService) History(ctx context.Context) ([]*models.Review, error) {
	return s.repos.Review.Recent(ctx, s.cfg.Upload.HistoryLimit)
}

// Stats returns the number of reviews per label
func (s *reviewService) Stats(ctx context.Context) (map[models.Label]int, error) {
	return s.repos.Review.CountByLabel(ctx)
}

// Count returns the total number of stored reviews
func (s *reviewService) Count(ctx context.Context) (int, error) {
	return s.repos.Review.Count(ctx)
}

// Export streams every stored review in the requested format
func (s *reviewService) Export(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting reviews export")

	switch format {
	case FormatCSV:
		return s.streamCSV(ctx, w)
	case FormatNDJSON:
		return s.streamNDJSON(ctx, w)
	case FormatJSON:
		return s.streamJSON(ctx, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func (s *reviewService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename=reviews.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Review.StreamAll(ctx, func(review *models.Review) error {
		data, err := json.Marshal(review)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Reviews export completed")
	return err
}

func (s *reviewService) streamJSON(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=reviews.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Review.StreamAll(ctx, func(review *models.Review) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(review)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

func (s *reviewService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=reviews.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"id", "content", "sentiment", "polarity", "timestamp"})

	return s.repos.Review.StreamAll(ctx, func(review *models.Review) error {
		return writer.Write([]string{
			strconv.FormatInt(review.ID, 10),
			review.Content,
			string(review.Sentiment),
			strconv.FormatFloat(review.Polarity, 'f', -1, 64),
			review.Timestamp,
		})
	})
}
