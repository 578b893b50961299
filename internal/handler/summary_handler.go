package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradebook-api/internal/service"
	"github.com/noah-isme/gradebook-api/pkg/response"
)

// SummaryHandler exposes computed results: weighted averages, GPA, and the
// class overview.
type SummaryHandler struct {
	gradebook *service.GradebookService
}

// NewSummaryHandler constructs handler.
func NewSummaryHandler(gradebook *service.GradebookService) *SummaryHandler {
	return &SummaryHandler{gradebook: gradebook}
}

// WeightedAverage godoc
// @Summary Weighted average for one student
// @Tags Summary
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/average [get]
func (h *SummaryHandler) WeightedAverage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	avg, err := h.gradebook.WeightedAverage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"student_id": id, "weighted_average": avg})
}

// GPA godoc
// @Summary GPA for one student
// @Tags Summary
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/gpa [get]
func (h *SummaryHandler) GPA(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	gpa, err := h.gradebook.GPA(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"student_id": id, "gpa": gpa})
}

// Class godoc
// @Summary Class overview with per-student results and class average
// @Tags Summary
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /summary [get]
func (h *SummaryHandler) Class(c *gin.Context) {
	summary, err := h.gradebook.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
