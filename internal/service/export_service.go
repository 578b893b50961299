package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/pkg/export"
)

type gradebookReader interface {
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListAssignments(ctx context.Context) []models.Assignment
	ListGrades(ctx context.Context, studentID int64) []models.Grade
	WeightedAverage(ctx context.Context, studentID int64) (*float64, error)
	GPA(ctx context.Context, studentID int64) (*float64, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders per-student grade reports.
type ExportService struct {
	gradebook gradebookReader
	csv       csvRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(gradebook gradebookReader, csv csvRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{gradebook: gradebook, csv: csv, logger: logger}
}

// StudentReport builds the CSV report for one student: identification
// preamble, one row per recorded grade, and summary rows for the weighted
// average and GPA. Undefined results render as N/A.
func (s *ExportService) StudentReport(ctx context.Context, studentID int64) (string, []byte, error) {
	student, err := s.gradebook.GetStudent(ctx, studentID)
	if err != nil {
		return "", nil, err
	}

	assignments := make(map[int64]models.Assignment)
	for _, a := range s.gradebook.ListAssignments(ctx) {
		assignments[a.ID] = a
	}

	dataset := export.Dataset{
		Preamble: [][]string{
			{"Student ID", "Student Name", strconv.FormatInt(student.ID, 10), student.Name},
		},
		Headers: []string{"Assignment ID", "Title", "Category", "Weight", "Score"},
	}
	for _, g := range s.gradebook.ListGrades(ctx, studentID) {
		assignment, ok := assignments[g.AssignmentID]
		if !ok {
			continue
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Assignment ID": strconv.FormatInt(assignment.ID, 10),
			"Title":         assignment.Title,
			"Category":      string(assignment.Category),
			"Weight":        formatNumber(assignment.Weight),
			"Score":         formatNumber(g.Score),
		})
	}

	avg, err := s.gradebook.WeightedAverage(ctx, studentID)
	if err != nil {
		return "", nil, err
	}
	gpa, err := s.gradebook.GPA(ctx, studentID)
	if err != nil {
		return "", nil, err
	}
	dataset.Footer = [][]string{
		{"Final Weighted Average", formatResult(avg)},
		{"GPA", formatResult(gpa)},
	}

	payload, err := s.csv.Render(dataset)
	if err != nil {
		s.logger.Error("render student report failed", zap.Int64("student_id", studentID), zap.Error(err))
		return "", nil, err
	}

	filename := fmt.Sprintf("student_%d_grades.csv", studentID)
	return filename, payload, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatResult(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
