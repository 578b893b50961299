package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/response"
)

// ExportHandler serves per-student CSV report downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// StudentCSV godoc
// @Summary Download a student's grade report as CSV
// @Tags Export
// @Produce text/csv
// @Param id path int true "Student ID"
// @Success 200 {string} string "CSV document"
// @Router /students/{id}/export.csv [get]
func (h *ExportHandler) StudentCSV(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename, payload, err := h.exports.StudentReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}
