package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/review-sentiment-api/internal/database"
	"github.com/review-sentiment-api/internal/models"
)

// reviewRepo is the concrete implementation of ReviewRepository
type reviewRepo struct {
	db *database.DB
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(db *database.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

const insertReviewQuery = `
	INSERT INTO reviews (content, sentiment, polarity, timestamp)
	VALUES (?, ?, ?, ?)
	RETURNING id
`

// Create inserts a new review and sets its ID
func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	return r.db.QueryRowContext(ctx, r.db.Rebind(insertReviewQuery),
		review.Content, string(review.Sentiment), review.Polarity, review.Timestamp,
	).Scan(&review.ID)
}

// BatchInsert inserts reviews in one transaction; either all rows are stored or none
func (r *reviewRepo) BatchInsert(ctx context.Context, reviews []*models.Review) (int, error) {
	if len(reviews) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, r.db.Rebind(insertReviewQuery))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, review := range reviews {
		err := stmt.QueryRowContext(ctx,
			review.Content, string(review.Sentiment), review.Polarity, review.Timestamp,
		).Scan(&review.ID)
		if err != nil {
			return 0, fmt.Errorf("insert row %d of batch: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(reviews), nil
}

// Recent returns the newest reviews first
func (r *reviewRepo) Recent(ctx context.Context, limit int) ([]*models.Review, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `SELECT id, content, sentiment, polarity, timestamp FROM reviews ORDER BY id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*models.Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// CountByLabel returns the number of reviews per stored label
func (r *reviewRepo) CountByLabel(ctx context.Context) (map[models.Label]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT sentiment, COUNT(*) FROM reviews GROUP BY sentiment")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.Label]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		counts[models.Label(label)] += count
	}

	return counts, rows.Err()
}

// Count returns the total number of reviews
func (r *reviewRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews").Scan(&count)
	return count, err
}

// StreamAll streams all reviews in insertion order for export
func (r *reviewRepo) StreamAll(ctx context.Context, callback func(*models.Review) error) error {
	query := `SELECT id, content, sentiment, polarity, timestamp FROM reviews ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return err
		}

		if err := callback(review); err != nil {
			return err
		}
	}

	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanReview tolerates NULL columns left by rows written outside this service
func scanReview(row rowScanner) (*models.Review, error) {
	var (
		review    models.Review
		content   sql.NullString
		sentiment sql.NullString
		polarity  sql.NullFloat64
		timestamp sql.NullString
	)
	if err := row.Scan(&review.ID, &content, &sentiment, &polarity, &timestamp); err != nil {
		return nil, err
	}
	review.Content = content.String
	review.Sentiment = models.Label(sentiment.String)
	review.Polarity = polarity.Float64
	review.Timestamp = timestamp.String
	return &review, nil
}
