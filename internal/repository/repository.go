package repository

import (
	"context"

	"github.com/review-sentiment-api/internal/database"
	"github.com/review-sentiment-api/internal/models"
)

// DefaultRecentLimit is used when Recent is called with a non-positive limit
const DefaultRecentLimit = 50

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	BatchInsert(ctx context.Context, reviews []*models.Review) (int, error)
	Recent(ctx context.Context, limit int) ([]*models.Review, error)
	CountByLabel(ctx context.Context) (map[models.Label]int, error)
	Count(ctx context.Context) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Review) error) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Review ReviewRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Review: NewReviewRepo(db),
	}
}
