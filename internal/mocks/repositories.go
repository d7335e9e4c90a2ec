package mocks

import (
	"context"
	"sync"

	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/repository"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository
type MockReviewRepository struct {
	mu               sync.Mutex
	Reviews          []*models.Review
	nextID           int64
	InsertError      error
	QueryError       error
	BatchInsertFunc  func(ctx context.Context, reviews []*models.Review) (int, error)
	BatchInsertCalls int
}

// Verify interface compliance
var _ repository.ReviewRepository = (*MockReviewRepository)(nil)

func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		Reviews: make([]*models.Review, 0),
	}
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.store(review)
	return nil
}

func (m *MockReviewRepository) BatchInsert(ctx context.Context, reviews []*models.Review) (int, error) {
	m.mu.Lock()
	m.BatchInsertCalls++
	fn := m.BatchInsertFunc
	m.mu.Unlock()

	if fn != nil {
		n, err := fn(ctx, reviews)
		if err != nil {
			return n, err
		}
		m.mu.Lock()
		for _, r := range reviews {
			m.store(r)
		}
		m.mu.Unlock()
		return n, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	for _, r := range reviews {
		m.store(r)
	}
	return len(reviews), nil
}

func (m *MockReviewRepository) store(review *models.Review) {
	m.nextID++
	review.ID = m.nextID
	m.Reviews = append(m.Reviews, review)
}

func (m *MockReviewRepository) Recent(ctx context.Context, limit int) ([]*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	if limit <= 0 {
		limit = repository.DefaultRecentLimit
	}
	recent := make([]*models.Review, 0, limit)
	for i := len(m.Reviews) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, m.Reviews[i])
	}
	return recent, nil
}

func (m *MockReviewRepository) CountByLabel(ctx context.Context) (map[models.Label]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return nil, m.QueryError
	}
	counts := make(map[models.Label]int)
	for _, r := range m.Reviews {
		counts[r.Sentiment]++
	}
	return counts, nil
}

func (m *MockReviewRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.QueryError != nil {
		return 0, m.QueryError
	}
	return len(m.Reviews), nil
}

func (m *MockReviewRepository) StreamAll(ctx context.Context, callback func(*models.Review) error) error {
	m.mu.Lock()
	snapshot := append([]*models.Review(nil), m.Reviews...)
	queryErr := m.QueryError
	m.mu.Unlock()

	if queryErr != nil {
		return queryErr
	}
	for _, review := range snapshot {
		if err := callback(review); err != nil {
			return err
		}
	}
	return nil
}
