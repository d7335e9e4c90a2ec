package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/review-sentiment-api/internal/config"
	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/repository"
	"github.com/review-sentiment-api/internal/sentiment"
	"github.com/review-sentiment-api/internal/validation"
	"github.com/rs/zerolog"
)

// TextColumns is the priority order used to pick the review column of an upload
var TextColumns = []string{"Review", "review", "Text", "text", "Content"}

// analysisService is the concrete implementation of AnalysisService
type analysisService struct {
	repos      *repository.Repositories
	classifier *sentiment.Classifier
	validator  *validation.Validator
	cfg        *config.Config
	clock      func() time.Time
	log        zerolog.Logger
}

// newAnalysisService creates a new AnalysisService
func newAnalysisService(repos *repository.Repositories, classifier *sentiment.Classifier, validator *validation.Validator, cfg *config.Config, clock func() time.Time, log zerolog.Logger) *analysisService {
	return &analysisService{
		repos:      repos,
		classifier: classifier,
		validator:  validator,
		cfg:        cfg,
		clock:      clock,
		log:        log.With().Str("service", "analysis").Logger(),
	}
}

// Analyze classifies a single submitted value and stores it
func (s *analysisService) Analyze(ctx context.Context, value any) (*models.Review, error) {
	content, err := contentOf(value)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.ValidateContent(content); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContent, validation.Join(errs))
	}

	label, polarity := s.classifier.ClassifyValue(value)
	review := &models.Review{
		Content:   content,
		Sentiment: label,
		Polarity:  polarity,
		Timestamp: s.clock().Format(models.TimestampLayout),
	}

	if err := s.repos.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	s.log.Debug().
		Int64("review_id", review.ID).
		Str("sentiment", string(label)).
		Float64("polarity", polarity).
		Msg("Review analyzed")

	return review, nil
}

// contentOf renders a submitted value as storable text; non-string values are
// kept as their JSON text, a missing value as "".
func contentOf(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidContent, err)
		}
		return string(data), nil
	}
}

// ImportCSV classifies and stores every non-blank row of a CSV upload.
// Bad rows are reported in the returned report and do not stop the import.
func (s *analysisService) ImportCSV(ctx context.Context, r io.Reader) (*models.UploadReport, error) {
	startTime := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	column, columnName := selectTextColumn(header)
	report := &models.UploadReport{
		BatchID:   uuid.New().String(),
		Column:    columnName,
		Timestamp: s.clock().Format(models.TimestampLayout),
	}

	log := s.log.With().Str("batch_id", report.BatchID).Logger()
	log.Info().Str("column", columnName).Msg("Starting CSV import")

	batchSize := s.cfg.Upload.BatchSize
	batch := make([]*models.Review, 0, batchSize)
	lines := make([]int, 0, batchSize)
	rowNum := 0

	flush := func() {
		if len(batch) == 0 {
			return
		}
		inserted, err := s.repos.Review.BatchInsert(ctx, batch)
		if err != nil {
			log.Error().Err(err).Int("batch_size", len(batch)).Msg("Batch insert failed")
			for _, line := range lines {
				report.AddError(line, fmt.Sprintf("failed to store review: %v", err))
			}
		} else {
			report.Count += inserted
		}
		batch = batch[:0]
		lines = lines[:0]
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		// Respect context cancellation for long-running imports
		if rowNum%1000 == 0 {
			select {
			case <-ctx.Done():
				flush()
				return report, ctx.Err()
			default:
			}
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.AddError(parseErr.StartLine, parseErr.Err.Error())
				continue
			}
			flush()
			return report, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := reader.FieldPos(0)

		text := ""
		if column < len(record) {
			text = record[column]
		}
		if validation.IsBlank(text) {
			report.Skipped++
			continue
		}

		if errs := s.validator.ValidateContent(text); len(errs) > 0 {
			report.AddError(line, validation.Join(errs))
			continue
		}

		label, polarity := s.classifier.Classify(text)
		batch = append(batch, &models.Review{
			Content:   text,
			Sentiment: label,
			Polarity:  polarity,
			Timestamp: report.Timestamp,
		})
		lines = append(lines, line)

		if len(batch) >= batchSize {
			flush()
		}
	}
	flush()

	log.Info().
		Int("rows", rowNum).
		Int("inserted", report.Count).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Dur("duration", time.Since(startTime)).
		Msg("CSV import completed")

	return report, nil
}

// selectTextColumn picks the first header matching TextColumns, else column 0
func selectTextColumn(header []string) (int, string) {
	if len(header) > 0 {
		// Spreadsheet exports often start with a byte order mark
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	for _, name := range TextColumns {
		if i, ok := index[name]; ok {
			return i, name
		}
	}
	return 0, strings.TrimSpace(header[0])
}
