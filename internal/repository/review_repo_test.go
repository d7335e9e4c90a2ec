package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/review-sentiment-api/internal/config"
	"github.com/review-sentiment-api/internal/database"
	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/repository"
	"github.com/rs/zerolog"
)

func setupRepo(t *testing.T) (repository.ReviewRepository, *database.DB) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("database.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	return repository.New(db).Review, db
}

func newReview(content string, label models.Label, polarity float64) *models.Review {
	return &models.Review{
		Content:   content,
		Sentiment: label,
		Polarity:  polarity,
		Timestamp: "2024-05-01 12:00:00",
	}
}

func TestReviewRepo_CreateAssignsIncreasingIDs(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		review := newReview(fmt.Sprintf("review %d", i), models.LabelNeutral, 0)
		if err := repo.Create(ctx, review); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if review.ID <= last {
			t.Errorf("Expected id greater than %d, got %d", last, review.ID)
		}
		last = review.ID
	}

	// Duplicates are permitted
	if err := repo.Create(ctx, newReview("review 0", models.LabelNeutral, 0)); err != nil {
		t.Fatalf("Duplicate create failed: %v", err)
	}
	count, _ := repo.Count(ctx)
	if count != 4 {
		t.Errorf("Expected 4 reviews, got %d", count)
	}
}

func TestReviewRepo_RecentNewestFirst(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		if err := repo.Create(ctx, newReview(fmt.Sprintf("review %d", i), models.LabelPositive, 0.5)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	recent, err := repo.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != repository.DefaultRecentLimit {
		t.Fatalf("Expected %d reviews, got %d", repository.DefaultRecentLimit, len(recent))
	}
	if recent[0].Content != "review 59" {
		t.Errorf("Expected newest review first, got %q", recent[0].Content)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].ID >= recent[i-1].ID {
			t.Fatalf("Reviews not ordered by id desc at %d", i)
		}
	}

	few, _ := repo.Recent(ctx, 5)
	if len(few) != 5 {
		t.Errorf("Expected 5 reviews, got %d", len(few))
	}
}

func TestReviewRepo_BatchInsert(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	batch := []*models.Review{
		newReview("good", models.LabelPositive, 0.7),
		newReview("bad", models.LabelNegative, -0.6),
		newReview("fine", models.LabelNeutral, 0.0),
	}

	inserted, err := repo.BatchInsert(ctx, batch)
	if err != nil {
		t.Fatalf("BatchInsert failed: %v", err)
	}
	if inserted != 3 {
		t.Errorf("Expected 3 inserted, got %d", inserted)
	}
	for _, r := range batch {
		if r.ID == 0 {
			t.Errorf("Expected id assigned for %q", r.Content)
		}
	}

	n, err := repo.BatchInsert(ctx, nil)
	if err != nil || n != 0 {
		t.Errorf("Empty batch should be a no-op, got %d, %v", n, err)
	}
}

func TestReviewRepo_BatchInsertRollsBack(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	// Reject rows whose content is 'poison'
	_, err := db.Exec(`CREATE TRIGGER reject_poison BEFORE INSERT ON reviews
		WHEN NEW.content = 'poison' BEGIN SELECT RAISE(ABORT, 'poisoned row'); END`)
	if err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	batch := []*models.Review{
		newReview("one", models.LabelNeutral, 0),
		newReview("two", models.LabelNeutral, 0),
		newReview("poison", models.LabelNeutral, 0),
	}
	if _, err := repo.BatchInsert(ctx, batch); err == nil {
		t.Fatal("Expected batch insert to fail")
	}

	count, _ := repo.Count(ctx)
	if count != 0 {
		t.Errorf("Expected failed batch to store nothing, got %d rows", count)
	}
}

func TestReviewRepo_CountByLabel(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	repo.Create(ctx, newReview("a", models.LabelPositive, 0.5))
	repo.Create(ctx, newReview("b", models.LabelPositive, 0.3))
	repo.Create(ctx, newReview("c", models.LabelNegative, -0.4))

	counts, err := repo.CountByLabel(ctx)
	if err != nil {
		t.Fatalf("CountByLabel failed: %v", err)
	}
	if counts[models.LabelPositive] != 2 || counts[models.LabelNegative] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
	if _, ok := counts[models.LabelNeutral]; ok {
		t.Error("Labels never observed should be absent")
	}

	again, _ := repo.CountByLabel(ctx)
	if len(again) != len(counts) {
		t.Errorf("Repeated CountByLabel differs: %v vs %v", counts, again)
	}
}

func TestReviewRepo_StreamAll(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	repo.Create(ctx, newReview("first", models.LabelPositive, 0.5))
	repo.Create(ctx, newReview("second", models.LabelNegative, -0.5))
	// Rows written by other tools may carry NULLs
	if _, err := db.Exec("INSERT INTO reviews (content) VALUES (NULL)"); err != nil {
		t.Fatal(err)
	}

	var contents []string
	err := repo.StreamAll(ctx, func(r *models.Review) error {
		contents = append(contents, r.Content)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamAll failed: %v", err)
	}
	if len(contents) != 3 || contents[0] != "first" || contents[1] != "second" || contents[2] != "" {
		t.Errorf("Unexpected stream order: %q", contents)
	}

	stop := errors.New("stop")
	calls := 0
	err = repo.StreamAll(ctx, func(*models.Review) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Expected callback error to stop the stream, got %v after %d calls", err, calls)
	}
}
