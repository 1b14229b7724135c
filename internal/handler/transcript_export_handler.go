package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/campusware/university-api/internal/service"
	"github.com/campusware/university-api/pkg/response"
)

// TranscriptExportHandler exposes transcript rendering and signed downloads.
type TranscriptExportHandler struct {
	exports *service.TranscriptExportService
}

// NewTranscriptExportHandler constructs TranscriptExportHandler.
func NewTranscriptExportHandler(exports *service.TranscriptExportService) *TranscriptExportHandler {
	return &TranscriptExportHandler{exports: exports}
}

// Generate godoc
// @Summary Render a student transcript to PDF or CSV
// @Tags Transcripts
// @Produce json
// @Param id path string true "Student ID"
// @Param gradeLevel query string true "Grade level"
// @Param format query string false "pdf or csv (default pdf)"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/transcript/export [post]
func (h *TranscriptExportHandler) Generate(c *gin.Context) {
	result, err := h.exports.Generate(c.Request.Context(), c.Param("id"), c.Query("gradeLevel"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Download godoc
// @Summary Download a rendered transcript via signed token
// @Tags Transcripts
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200
// @Router /transcripts/export/{token} [get]
func (h *TranscriptExportHandler) Download(c *gin.Context) {
	file, relPath, err := h.exports.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	filename := filepath.Base(relPath)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")

	contentType := "application/octet-stream"
	switch filepath.Ext(filename) {
	case ".pdf":
		contentType = "application/pdf"
	case ".csv":
		contentType = "text/csv"
	}

	info, err := file.Stat()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
