package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"reportdiff-backend/repository"
	"reportdiff-backend/service"
	"reportdiff-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles HTTP requests for persisted comparison runs
type ReportHandler struct {
	runRepo       *repository.ReportRunRepository
	storage       storage.Storage
	digestService *service.DigestService
}

// NewReportHandler creates a new report handler
func NewReportHandler(runRepo *repository.ReportRunRepository, st storage.Storage, digestService *service.DigestService) *ReportHandler {
	return &ReportHandler{
		runRepo:       runRepo,
		storage:       st,
		digestService: digestService,
	}
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	if !h.requireHistory(c) {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	runs, err := h.runRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to list runs: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"runs": runs},
	})
}

// GetReport handles GET /api/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	if !h.requireHistory(c) {
		return
	}

	id, ok := parseRunID(c)
	if !ok {
		return
	}

	run, err := h.runRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Comparison run not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"run": run},
	})
}

// DownloadReportDocument handles GET /api/reports/:id/document
func (h *ReportHandler) DownloadReportDocument(c *gin.Context) {
	if !h.requireHistory(c) {
		return
	}
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_NOT_CONFIGURED",
				"message": "Document archiving is not configured",
			},
		})
		return
	}

	id, ok := parseRunID(c)
	if !ok {
		return
	}

	run, err := h.runRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Comparison run not found",
			},
		})
		return
	}
	if run.StoragePath == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOCUMENT_NOT_ARCHIVED",
				"message": "No archived document for this run",
			},
		})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), *run.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download document: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", run.FileName))
	c.DataFromReader(http.StatusOK, -1, "text/plain; charset=utf-8", reader, nil)
}

// GenerateDigest handles POST /api/reports/:id/digest
func (h *ReportHandler) GenerateDigest(c *gin.Context) {
	if h.digestService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DIGEST_NOT_CONFIGURED",
				"message": "Digest generation is not configured",
			},
		})
		return
	}

	id, ok := parseRunID(c)
	if !ok {
		return
	}

	result, err := h.digestService.GenerateDigest(c.Request.Context(), service.GenerateDigestRequest{RunID: id})
	if err != nil {
		status := http.StatusInternalServerError
		code := "DIGEST_FAILED"
		switch {
		case errors.Is(err, service.ErrRunNotFound):
			status = http.StatusNotFound
			code = "NOT_FOUND"
		case errors.Is(err, service.ErrDigestUnavailable):
			status = http.StatusServiceUnavailable
			code = "DIGEST_NOT_CONFIGURED"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"digest": result.Digest},
	})
}

func (h *ReportHandler) requireHistory(c *gin.Context) bool {
	if h.runRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "HISTORY_NOT_CONFIGURED",
				"message": "Run history requires a database connection",
			},
		})
		return false
	}
	return true
}

func parseRunID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid run ID format",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}
