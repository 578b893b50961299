package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradebook-api/internal/service"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
	"github.com/noah-isme/gradebook-api/pkg/response"
)

// GradeHandler exposes grade endpoints.
type GradeHandler struct {
	gradebook *service.GradebookService
}

// NewGradeHandler constructs handler.
func NewGradeHandler(gradebook *service.GradebookService) *GradeHandler {
	return &GradeHandler{gradebook: gradebook}
}

// List godoc
// @Summary List recorded grades
// @Tags Grades
// @Produce json
// @Param studentId query int false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	var studentID int64
	if raw := c.Query("studentId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId must be a positive integer"))
			return
		}
		studentID = parsed
	}
	response.JSON(c, http.StatusOK, h.gradebook.ListGrades(c.Request.Context(), studentID))
}

// Record godoc
// @Summary Record or replace a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.RecordGradeRequest true "Grade payload"
// @Success 200 {object} response.Envelope
// @Router /grades [post]
func (h *GradeHandler) Record(c *gin.Context) {
	var req service.RecordGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.gradebook.RecordGrade(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}
