package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	"reportdiff-backend/document"
	"reportdiff-backend/models"
	"reportdiff-backend/service"

	"github.com/gin-gonic/gin"
)

// CompareHandler handles HTTP requests for report comparisons
type CompareHandler struct {
	compareService *service.CompareService
}

// NewCompareHandler creates a new compare handler
func NewCompareHandler(compareService *service.CompareService) *CompareHandler {
	return &CompareHandler{
		compareService: compareService,
	}
}

// CompareReportsRequest represents the request body for comparing two
// report versions. Documents are base64 encoded; every tunable is optional
// and falls back to the documented default.
type CompareReportsRequest struct {
	BaselineDoc          string   `json:"baseline_doc" binding:"required"`
	CurrentDoc           string   `json:"current_doc" binding:"required"`
	Mode                 string   `json:"mode"`
	MatchThreshold       *float64 `json:"match_threshold"`
	TokenChangeThreshold *float64 `json:"token_change_threshold"`
	IncludeRemoved       *bool    `json:"include_removed"`
	NumericComparison    *bool    `json:"numeric_comparison"`
	SignificantOnly      *bool    `json:"significant_only"`
	Highlights           *bool    `json:"highlights"`
	HighlightLimit       *int     `json:"highlight_limit"`
	Author               string   `json:"author"`
	Initials             string   `json:"initials"`
	// ResponseFormat is "json" (default) or "document" to stream the
	// annotated bytes directly
	ResponseFormat string `json:"response_format"`
}

// CompareReports handles POST /api/compare
func (h *CompareHandler) CompareReports(c *gin.Context) {
	var req CompareReportsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	baseline, err := base64.StdEncoding.DecodeString(req.BaselineDoc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_BASELINE_DOC",
				"message": "baseline_doc is not valid base64",
			},
		})
		return
	}
	current, err := base64.StdEncoding.DecodeString(req.CurrentDoc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CURRENT_DOC",
				"message": "current_doc is not valid base64",
			},
		})
		return
	}

	result, err := h.compareService.Compare(c.Request.Context(), service.CompareRequest{
		BaselineDoc: baseline,
		CurrentDoc:  current,
		Options:     req.buildOptions(),
	})
	if err != nil {
		respondCompareError(c, err)
		return
	}

	if req.ResponseFormat == "document" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", result.Document)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"run_id":     result.RunID,
			"file_name":  result.FileName,
			"document":   base64.StdEncoding.EncodeToString(result.Document),
			"summary":    result.Summary,
			"deltas":     result.Deltas,
			"highlights": result.Highlights,
		},
	})
}

// buildOptions merges the request onto the documented defaults
func (req *CompareReportsRequest) buildOptions() models.CompareOptions {
	opts := models.DefaultCompareOptions()
	if req.Mode != "" {
		opts.Mode = models.SegmentationMode(req.Mode)
	}
	if req.MatchThreshold != nil {
		opts.MatchThreshold = *req.MatchThreshold
	}
	if req.TokenChangeThreshold != nil {
		opts.TokenChangeThreshold = *req.TokenChangeThreshold
	}
	if req.IncludeRemoved != nil {
		opts.IncludeRemoved = *req.IncludeRemoved
	}
	if req.NumericComparison != nil {
		opts.NumericComparison = *req.NumericComparison
	}
	if req.SignificantOnly != nil {
		opts.SignificantOnly = *req.SignificantOnly
	}
	if req.Highlights != nil {
		opts.Highlights = *req.Highlights
	}
	if req.HighlightLimit != nil {
		opts.HighlightLimit = *req.HighlightLimit
	}
	if req.Author != "" {
		opts.Author = req.Author
	}
	if req.Initials != "" {
		opts.Initials = req.Initials
	}
	return opts
}

// respondCompareError maps the pipeline error taxonomy onto HTTP statuses.
// Input problems are the caller's; format problems mean the bytes did not
// parse; anything else is a server failure reported without internals.
func respondCompareError(c *gin.Context, err error) {
	var inputErr *service.InputError
	if errors.As(err, &inputErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_INPUT",
				"message": inputErr.Error(),
			},
		})
		return
	}

	var formatErr *document.FormatError
	if errors.As(err, &formatErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOCUMENT_FORMAT_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	var internalErr *service.InternalError
	message := "comparison failed"
	if errors.As(err, &internalErr) {
		message = fmt.Sprintf("comparison failed at stage %s", internalErr.Stage)
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "COMPARISON_FAILED",
			"message": message,
		},
	})
}
