package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/review-sentiment-api/internal/config"
	"github.com/review-sentiment-api/internal/database"
	"github.com/review-sentiment-api/internal/mocks"
	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/repository"
	"github.com/review-sentiment-api/internal/sentiment"
	"github.com/review-sentiment-api/internal/service"
	"github.com/review-sentiment-api/internal/validation"
	"github.com/rs/zerolog"
)

var sampleReviews = []string{
	"I love this product, it works great",
	"Terrible customer service and the box arrived damaged",
	"It is a table",
	"Absolutely excellent, would buy again!",
	"Not bad, but not great either",
}

func buildCSV(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("id,Review,rating\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&buf, "%d,\"%s\",%d\n", i, sampleReviews[i%len(sampleReviews)], i%5+1)
	}
	return buf.Bytes()
}

func benchConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{BatchSize: 500, HistoryLimit: 50},
	}
}

// BenchmarkVaderClassify benchmarks single review classification
func BenchmarkVaderClassify(b *testing.B) {
	classifier := sentiment.NewClassifier(sentiment.NewVaderScorer())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		classifier.Classify(sampleReviews[i%len(sampleReviews)])
	}
}

// BenchmarkImportCSV benchmarks the upload pipeline against an in-memory repository
func BenchmarkImportCSV(b *testing.B) {
	data := buildCSV(1000)
	classifier := sentiment.NewClassifier(sentiment.NewVaderScorer())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		repos := &repository.Repositories{Review: mocks.NewMockReviewRepository()}
		services := service.NewServices(repos, classifier, benchConfig(), zerolog.Nop())

		report, err := services.Analysis.ImportCSV(context.Background(), bytes.NewReader(data))
		if err != nil || report.Count != 1000 {
			b.Fatalf("import failed: %v (%+v)", err, report)
		}
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkBatchInsertSQLite benchmarks transactional inserts into sqlite
func BenchmarkBatchInsertSQLite(b *testing.B) {
	db, err := database.New(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, zerolog.Nop())
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		b.Fatal(err)
	}
	repos := repository.New(db)

	reviews := make([]*models.Review, 500)
	for i := range reviews {
		reviews[i] = &models.Review{
			Content:   sampleReviews[i%len(sampleReviews)],
			Sentiment: models.LabelNeutral,
			Timestamp: "2024-01-01 00:00:00",
		}
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := repos.Review.BatchInsert(context.Background(), reviews); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(500*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkExportCSV benchmarks streaming export
func BenchmarkExportCSV(b *testing.B) {
	repo := mocks.NewMockReviewRepository()
	for i := 0; i < 1000; i++ {
		repo.Create(context.Background(), &models.Review{
			Content:   sampleReviews[i%len(sampleReviews)],
			Sentiment: models.LabelPositive,
			Polarity:  0.5,
			Timestamp: "2024-01-01 00:00:00",
		})
	}
	services := service.NewServices(&repository.Repositories{Review: repo}, sentiment.NewClassifier(mocks.NewKeywordScorer()), benchConfig(), zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		if err := services.Review.Export(context.Background(), w, service.FormatCSV); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkValidation benchmarks content validation
func BenchmarkValidation(b *testing.B) {
	v := validation.NewValidator(5000)
	text := strings.Repeat("great product ", 100)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		v.ValidateContent(text)
	}
}
