package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/service"
	"github.com/rs/zerolog"
)

// ReviewHandler handles read endpoints
type ReviewHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(services *service.Services, log zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		services: services,
		log:      log.With().Str("handler", "review").Logger(),
	}
}

// History handles GET /history: [content, sentiment, timestamp] triples, newest first
func (h *ReviewHandler) History(c *gin.Context) {
	reviews, err := h.services.Review.History(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load history")
		errorResponse(c, "failed to load history")
		return
	}

	rows := make([][]string, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, []string{r.Content, models.Decorate(string(r.Sentiment)), r.Timestamp})
	}

	c.JSON(http.StatusOK, rows)
}

// Stats handles GET /stats: decorated label -> count
func (h *ReviewHandler) Stats(c *gin.Context) {
	counts, err := h.services.Review.Stats(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load stats")
		errorResponse(c, "failed to load stats")
		return
	}

	stats := make(map[string]int, len(counts))
	for label, count := range counts {
		stats[models.Decorate(string(label))] += count
	}

	c.JSON(http.StatusOK, stats)
}

// Export handles GET /export?format=csv|ndjson|json
func (h *ReviewHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)
	if format != service.FormatCSV && format != service.FormatNDJSON && format != service.FormatJSON {
		errorResponse(c, "format must be one of: csv, ndjson, json")
		return
	}

	if err := h.services.Review.Export(c.Request.Context(), c.Writer, format); err != nil {
		if errors.Is(err, service.ErrUnsupportedFormat) {
			errorResponse(c, err.Error())
			return
		}
		h.log.Error().Err(err).Str("format", format).Msg("Export failed")
		// Can't return error JSON after streaming has started
		return
	}
}
