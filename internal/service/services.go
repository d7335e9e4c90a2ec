package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/review-sentiment-api/internal/config"
	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/repository"
	"github.com/review-sentiment-api/internal/sentiment"
	"github.com/review-sentiment-api/internal/validation"
	"github.com/rs/zerolog"
)

var (
	// ErrEmptyFile is returned when an uploaded CSV has no header row
	ErrEmptyFile = errors.New("uploaded file is empty")
	// ErrInvalidContent is returned when review text fails validation
	ErrInvalidContent = errors.New("invalid review content")
	// ErrUnsupportedFormat is returned for unknown export formats
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// AnalysisService classifies and stores reviews
type AnalysisService interface {
	Analyze(ctx context.Context, value any) (*models.Review, error)
	ImportCSV(ctx context.Context, r io.Reader) (*models.UploadReport, error)
}

// ReviewService reads stored reviews
type ReviewService interface {
	History(ctx context.Context) ([]*models.Review, error)
	Stats(ctx context.Context) (map[models.Label]int, error)
	Count(ctx context.Context) (int, error)
	Export(ctx context.Context, w http.ResponseWriter, format string) error
}

// Services holds all service interfaces
type Services struct {
	Analysis AnalysisService
	Review   ReviewService
}

// Option customizes service construction
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the time source used to stamp reviews
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, classifier *sentiment.Classifier, cfg *config.Config, log zerolog.Logger, opts ...Option) *Services {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	validator := validation.NewValidator(cfg.Upload.MaxReviewLength)

	return &Services{
		Analysis: newAnalysisService(repos, classifier, validator, cfg, o.clock, log),
		Review:   newReviewService(repos, cfg, log),
	}
}
