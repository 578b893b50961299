package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentCSVDownload(t *testing.T) {
	env := newTestEnv(t)
	seedGradedClass(t, env)

	rec := env.do(t, http.MethodGet, "/api/v1/students/1/export.csv", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=student_1_grades.csv", rec.Header().Get("Content-Disposition"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "Student ID,Student Name,1,Ada\n"))
	assert.Contains(t, body, "1,Exam 1,exam,2,80\n")
	assert.Contains(t, body, "Final Weighted Average,70.00\n")
	assert.Contains(t, body, "GPA,2.00\n")
}

func TestStudentCSVUnknownStudent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/students/42/export.csv", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
