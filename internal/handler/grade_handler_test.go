package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/service"
)

func seedClass(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	_, err := env.gradebook.AddStudent(ctx, service.CreateStudentRequest{Name: "Ada"})
	require.NoError(t, err)
	_, err = env.gradebook.AddAssignment(ctx, service.CreateAssignmentRequest{Title: "Exam 1", Category: "exam", Weight: 2})
	require.NoError(t, err)
	_, err = env.gradebook.AddAssignment(ctx, service.CreateAssignmentRequest{Title: "Quiz 1", Category: "quiz", Weight: 1})
	require.NoError(t, err)
}

func TestRecordGradeAsTeacher(t *testing.T) {
	env := newTestEnv(t)
	seedClass(t, env)
	token := env.teacherToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/grades", token, map[string]interface{}{
		"student_id": 1, "assignment_id": 1, "score": 80,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(80), data["score"])
}

func TestRecordGradeRequiresTeacherRole(t *testing.T) {
	env := newTestEnv(t)
	seedClass(t, env)

	rec := env.do(t, http.MethodPost, "/api/v1/grades", "", map[string]interface{}{
		"student_id": 1, "assignment_id": 1, "score": 80,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecordGradeOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	seedClass(t, env)
	token := env.teacherToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/grades", token, map[string]interface{}{
		"student_id": 1, "assignment_id": 1, "score": 101,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	errBody := envelope["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
}

func TestRecordGradeUnknownAssignment(t *testing.T) {
	env := newTestEnv(t)
	seedClass(t, env)
	token := env.teacherToken(t)

	rec := env.do(t, http.MethodPost, "/api/v1/grades", token, map[string]interface{}{
		"student_id": 1, "assignment_id": 99, "score": 80,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListGradesFilteredByStudent(t *testing.T) {
	env := newTestEnv(t)
	seedClass(t, env)
	token := env.teacherToken(t)

	env.do(t, http.MethodPost, "/api/v1/grades", token, map[string]interface{}{
		"student_id": 1, "assignment_id": 1, "score": 80,
	})
	env.do(t, http.MethodPost, "/api/v1/grades", token, map[string]interface{}{
		"student_id": 1, "assignment_id": 2, "score": 50,
	})

	rec := env.do(t, http.MethodGet, "/api/v1/grades?studentId=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].([]interface{})
	assert.Len(t, data, 2)

	rec = env.do(t, http.MethodGet, "/api/v1/grades?studentId=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
