package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/service"
)

func seedGradedClass(t *testing.T, env *testEnv) {
	t.Helper()
	seedClass(t, env)
	ctx := context.Background()
	_, err := env.gradebook.RecordGrade(ctx, service.RecordGradeRequest{StudentID: 1, AssignmentID: 1, Score: 80})
	require.NoError(t, err)
	_, err = env.gradebook.RecordGrade(ctx, service.RecordGradeRequest{StudentID: 1, AssignmentID: 2, Score: 50})
	require.NoError(t, err)
}

func TestWeightedAverageEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedGradedClass(t, env)

	rec := env.do(t, http.MethodGet, "/api/v1/students/1/average", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["student_id"])
	assert.InDelta(t, 70.0, data["weighted_average"].(float64), 1e-9)
}

func TestWeightedAverageEndpointUngradedStudentReturnsNull(t *testing.T) {
	env := newTestEnv(t)
	seedClass(t, env)

	rec := env.do(t, http.MethodGet, "/api/v1/students/1/average", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Nil(t, data["weighted_average"])
}

func TestGPAEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedGradedClass(t, env)

	rec := env.do(t, http.MethodGet, "/api/v1/students/1/gpa", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, 2.0, data["gpa"])
}

func TestClassSummaryEndpoint(t *testing.T) {
	env := newTestEnv(t)
	seedGradedClass(t, env)
	token := env.teacherToken(t)
	env.do(t, http.MethodPost, "/api/v1/students", token, map[string]interface{}{"name": "Grace"})

	rec := env.do(t, http.MethodGet, "/api/v1/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	students := data["students"].([]interface{})
	require.Len(t, students, 2)

	graded := students[0].(map[string]interface{})
	assert.InDelta(t, 70.0, graded["weighted_average"].(float64), 1e-9)
	ungraded := students[1].(map[string]interface{})
	assert.Nil(t, ungraded["weighted_average"])
	assert.Nil(t, ungraded["gpa"])

	assert.InDelta(t, 70.0, data["class_average"].(float64), 1e-9)
}

func TestSummaryEndpointUnknownStudent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/students/42/average", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
