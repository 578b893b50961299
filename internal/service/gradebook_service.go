package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/internal/models"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

const summaryCachePattern = "summary:*"

type gradebookStore interface {
	Snapshot() models.Snapshot
	Update(fn func(*models.Snapshot) error) error
}

// CreateStudentRequest holds payload for creating students. A nil ID asks
// the gradebook to auto-assign the next free identifier.
type CreateStudentRequest struct {
	ID   *int64 `json:"id"`
	Name string `json:"name" validate:"required"`
}

// CreateAssignmentRequest holds payload for creating assignments.
type CreateAssignmentRequest struct {
	ID       *int64  `json:"id"`
	Title    string  `json:"title" validate:"required"`
	Category string  `json:"category"`
	Weight   float64 `json:"weight" validate:"gt=0"`
}

// RecordGradeRequest records or replaces a score for a student+assignment pair.
type RecordGradeRequest struct {
	StudentID    int64   `json:"student_id" validate:"required"`
	AssignmentID int64   `json:"assignment_id" validate:"required"`
	Score        float64 `json:"score"`
}

// GradebookService owns the gradebook aggregate: CRUD over students and
// assignments, grade recording, and the derived calculations.
type GradebookService struct {
	store     gradebookStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradebookService constructs the gradebook service.
func NewGradebookService(store gradebookStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *GradebookService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradebookService{store: store, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// AddStudent registers a new student with a manual or auto-assigned ID.
func (s *GradebookService) AddStudent(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if req.ID != nil && *req.ID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id must be positive")
	}

	var created models.Student
	err := s.mutate(ctx, "add_student", func(snap *models.Snapshot) error {
		id := int64(0)
		if req.ID != nil {
			id = *req.ID
			for _, st := range snap.Students {
				if st.ID == id {
					return appErrors.Clone(appErrors.ErrDuplicateID, fmt.Sprintf("student id %d already exists", id))
				}
			}
		} else {
			id = nextStudentID(snap)
		}
		created = models.Student{ID: id, Name: req.Name}
		snap.Students = append(snap.Students, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// AddAssignment registers a new weighted assignment.
func (s *GradebookService) AddAssignment(ctx context.Context, req CreateAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if req.ID != nil && *req.ID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignment id must be positive")
	}

	var created models.Assignment
	err := s.mutate(ctx, "add_assignment", func(snap *models.Snapshot) error {
		id := int64(0)
		if req.ID != nil {
			id = *req.ID
			for _, a := range snap.Assignments {
				if a.ID == id {
					return appErrors.Clone(appErrors.ErrDuplicateID, fmt.Sprintf("assignment id %d already exists", id))
				}
			}
		} else {
			id = nextAssignmentID(snap)
		}
		created = models.Assignment{ID: id, Title: req.Title, Category: models.ParseCategory(req.Category), Weight: req.Weight}
		snap.Assignments = append(snap.Assignments, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// RecordGrade stores or replaces the grade for a student+assignment pair.
func (s *GradebookService) RecordGrade(ctx context.Context, req RecordGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	if req.Score < 0 || req.Score > 100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "score must be between 0 and 100")
	}

	grade := models.Grade{StudentID: req.StudentID, AssignmentID: req.AssignmentID, Score: req.Score}
	err := s.mutate(ctx, "record_grade", func(snap *models.Snapshot) error {
		if findStudent(snap, req.StudentID) == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		if findAssignment(snap, req.AssignmentID) == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		for i, g := range snap.Grades {
			if g.StudentID == req.StudentID && g.AssignmentID == req.AssignmentID {
				snap.Grades[i] = grade
				return nil
			}
		}
		snap.Grades = append(snap.Grades, grade)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// GetStudent returns one student by ID.
func (s *GradebookService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	snap := s.store.Snapshot()
	student := findStudent(&snap, id)
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// GetAssignment returns one assignment by ID.
func (s *GradebookService) GetAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	snap := s.store.Snapshot()
	assignment := findAssignment(&snap, id)
	if assignment == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	return assignment, nil
}

// ListStudents returns all students ordered by ID.
func (s *GradebookService) ListStudents(ctx context.Context) []models.Student {
	snap := s.store.Snapshot()
	sort.Slice(snap.Students, func(i, j int) bool { return snap.Students[i].ID < snap.Students[j].ID })
	return snap.Students
}

// ListAssignments returns all assignments ordered by ID.
func (s *GradebookService) ListAssignments(ctx context.Context) []models.Assignment {
	snap := s.store.Snapshot()
	sort.Slice(snap.Assignments, func(i, j int) bool { return snap.Assignments[i].ID < snap.Assignments[j].ID })
	return snap.Assignments
}

// ListGrades returns all recorded grades, optionally filtered by student.
func (s *GradebookService) ListGrades(ctx context.Context, studentID int64) []models.Grade {
	snap := s.store.Snapshot()
	if studentID == 0 {
		return snap.Grades
	}
	out := make([]models.Grade, 0)
	for _, g := range snap.Grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out
}

// DeleteStudent removes a student and cascades to their grades.
func (s *GradebookService) DeleteStudent(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete_student", func(snap *models.Snapshot) error {
		idx := -1
		for i, st := range snap.Students {
			if st.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		snap.Students = append(snap.Students[:idx], snap.Students[idx+1:]...)
		snap.Grades = dropGrades(snap.Grades, func(g models.Grade) bool { return g.StudentID == id })
		return nil
	})
}

// DeleteAssignment removes an assignment and cascades to grades that
// reference it; affected students lose that component from their average.
func (s *GradebookService) DeleteAssignment(ctx context.Context, id int64) error {
	return s.mutate(ctx, "delete_assignment", func(snap *models.Snapshot) error {
		idx := -1
		for i, a := range snap.Assignments {
			if a.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		snap.Assignments = append(snap.Assignments[:idx], snap.Assignments[idx+1:]...)
		snap.Grades = dropGrades(snap.Grades, func(g models.Grade) bool { return g.AssignmentID == id })
		return nil
	})
}

// WeightedAverage computes Σ(score·weight)/Σ(weight) over the student's
// graded assignments. It returns nil when the student has no grades.
func (s *GradebookService) WeightedAverage(ctx context.Context, studentID int64) (*float64, error) {
	snap := s.store.Snapshot()
	if findStudent(&snap, studentID) == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return weightedAverage(&snap, studentID), nil
}

// GPA maps the student's weighted average onto the 4.0 scale. It returns
// nil when the weighted average is undefined.
func (s *GradebookService) GPA(ctx context.Context, studentID int64) (*float64, error) {
	avg, err := s.WeightedAverage(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if avg == nil {
		return nil, nil
	}
	gpa := models.GPAFromPercent(*avg)
	return &gpa, nil
}

// ClassAverage returns the mean of defined weighted averages across all
// students, nil when no student has any recorded grade.
func (s *GradebookService) ClassAverage(ctx context.Context) *float64 {
	snap := s.store.Snapshot()
	return classAverage(&snap)
}

// Summary returns per-student results plus the class average, served from
// cache when possible. The cache is invalidated on every mutation so it can
// never go stale relative to the document.
func (s *GradebookService) Summary(ctx context.Context) (*models.ClassSummary, error) {
	const key = "summary:class"
	if s.cache.Enabled() {
		var cached models.ClassSummary
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	snap := s.store.Snapshot()
	sort.Slice(snap.Students, func(i, j int) bool { return snap.Students[i].ID < snap.Students[j].ID })
	summary := &models.ClassSummary{
		Students:     make([]models.StudentSummary, 0, len(snap.Students)),
		ClassAverage: classAverage(&snap),
	}
	for _, st := range snap.Students {
		avg := weightedAverage(&snap, st.ID)
		var gpa *float64
		if avg != nil {
			v := models.GPAFromPercent(*avg)
			gpa = &v
		}
		summary.Students = append(summary.Students, models.StudentSummary{
			ID:              st.ID,
			Name:            st.Name,
			WeightedAverage: avg,
			GPA:             gpa,
		})
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, key, summary, 0)
	}
	return summary, nil
}

// mutate runs fn through the store, observing write latency, translating
// untyped store failures into persistence errors, and invalidating the
// summary cache once the mutation is durable.
func (s *GradebookService) mutate(ctx context.Context, operation string, fn func(*models.Snapshot) error) error {
	start := time.Now()
	err := s.store.Update(fn)
	s.metrics.ObserveStoreWrite(operation, time.Since(start))
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		s.logger.Error("gradebook write failed", zap.String("operation", operation), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to persist gradebook")
	}
	if err := s.cache.Invalidate(ctx, summaryCachePattern); err != nil {
		s.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
	return nil
}

func nextStudentID(snap *models.Snapshot) int64 {
	next := int64(1)
	for _, st := range snap.Students {
		if st.ID >= next {
			next = st.ID + 1
		}
	}
	return next
}

func nextAssignmentID(snap *models.Snapshot) int64 {
	next := int64(1)
	for _, a := range snap.Assignments {
		if a.ID >= next {
			next = a.ID + 1
		}
	}
	return next
}

func findStudent(snap *models.Snapshot, id int64) *models.Student {
	for i := range snap.Students {
		if snap.Students[i].ID == id {
			return &snap.Students[i]
		}
	}
	return nil
}

func findAssignment(snap *models.Snapshot, id int64) *models.Assignment {
	for i := range snap.Assignments {
		if snap.Assignments[i].ID == id {
			return &snap.Assignments[i]
		}
	}
	return nil
}

func dropGrades(grades []models.Grade, match func(models.Grade) bool) []models.Grade {
	out := grades[:0]
	for _, g := range grades {
		if !match(g) {
			out = append(out, g)
		}
	}
	return out
}

// weightedAverage skips grades whose assignment no longer exists; cascade
// deletion should make that impossible, but older documents may carry them.
func weightedAverage(snap *models.Snapshot, studentID int64) *float64 {
	var totalWeighted, totalWeight float64
	for _, g := range snap.Grades {
		if g.StudentID != studentID {
			continue
		}
		assignment := findAssignment(snap, g.AssignmentID)
		if assignment == nil {
			continue
		}
		totalWeighted += g.Score * assignment.Weight
		totalWeight += assignment.Weight
	}
	if totalWeight == 0 {
		return nil
	}
	avg := totalWeighted / totalWeight
	return &avg
}

func classAverage(snap *models.Snapshot) *float64 {
	var total float64
	var count int
	for _, st := range snap.Students {
		if avg := weightedAverage(snap, st.ID); avg != nil {
			total += *avg
			count++
		}
	}
	if count == 0 {
		return nil
	}
	mean := total / float64(count)
	return &mean
}
