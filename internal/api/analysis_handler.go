package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/review-sentiment-api/internal/config"
	"github.com/review-sentiment-api/internal/models"
	"github.com/review-sentiment-api/internal/service"
	"github.com/rs/zerolog"
)

// AnalysisHandler handles review submission endpoints
type AnalysisHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "analysis").Logger(),
	}
}

// AnalyzeRequest is the body of POST /analyze; Review may hold any JSON value
type AnalyzeRequest struct {
	Review any `json:"review"`
}

// Analyze handles POST /analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "request body must be a JSON object")
		return
	}

	review, err := h.services.Analysis.Analyze(c.Request.Context(), req.Review)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContent) {
			errorResponse(c, err.Error())
			return
		}
		h.log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Failed to analyze review")
		errorResponse(c, "failed to store review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"sentiment": review.Sentiment.Decorated(),
		"score":     review.Polarity,
	})
}

// Upload handles POST /upload with a multipart CSV in field "file"
func (h *AnalysisHandler) Upload(c *gin.Context) {
	maxSize := h.cfg.Upload.MaxUploadSize
	// Leave room for multipart framing around the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+1024*1024)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			// Browsers send an empty filename when nothing was chosen; such
			// parts are parsed as plain form values rather than files.
			if form := c.Request.MultipartForm; form != nil && len(form.Value["file"]) > 0 {
				errorResponse(c, "No selected file")
				return
			}
			errorResponse(c, "No file uploaded")
			return
		}
		h.log.Warn().Err(err).Msg("Failed to read upload")
		errorResponse(c, fmt.Sprintf("failed to read upload: %v", err))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		errorResponse(c, "No selected file")
		return
	}

	// Validate file size
	if header.Size > maxSize {
		errorResponse(c, fmt.Sprintf("file too large, max size is %d MB", maxSize/(1024*1024)))
		return
	}

	report, err := h.services.Analysis.ImportCSV(c.Request.Context(), file)
	if err != nil {
		h.log.Error().Err(err).Str("file", header.Filename).Msg("CSV import failed")
		resp := gin.H{"status": models.UploadStatusError, "message": err.Error()}
		if report != nil {
			resp["count"] = report.Count
			resp["batch_id"] = report.BatchID
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	h.log.Info().
		Str("batch_id", report.BatchID).
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Int("count", report.Count).
		Int("failed", report.Failed).
		Msg("CSV upload processed")

	status := report.Status()
	resp := gin.H{
		"status":   status,
		"count":    report.Count,
		"skipped":  report.Skipped,
		"failed":   report.Failed,
		"batch_id": report.BatchID,
		"column":   report.Column,
	}
	if len(report.Errors) > 0 {
		resp["errors"] = report.Errors
	}
	if status == models.UploadStatusError {
		resp["message"] = "no rows could be stored"
	}
	c.JSON(http.StatusOK, resp)
}
