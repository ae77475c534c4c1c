package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/attendance/internal/database"
	attendancerepo "github.com/mrlokans/attendance/internal/database/attendance"
	"github.com/mrlokans/attendance/internal/database/courses"
	"github.com/mrlokans/attendance/internal/database/students"
	"github.com/mrlokans/attendance/internal/exporters"
	"github.com/mrlokans/attendance/internal/notify"
	"github.com/mrlokans/attendance/internal/services"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hub := notify.NewHub()
	exporter := exporters.NewCSVExporter(t.TempDir())

	return NewRouter(RouterConfig{
		Database:   db,
		Courses:    services.NewCourseService(courses.NewRepository(db.DB, hub)),
		Students:   services.NewStudentService(students.NewRepository(db.DB, hub)),
		Attendance: services.NewAttendanceService(attendancerepo.NewRepository(db.DB, hub), exporter),
		Version:    "test",
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCoursesEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/courses", gin.H{"course_code": "CS101"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/api/courses", gin.H{"course_code": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/courses/CS101", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/courses/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, "GET", "/api/courses", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
}

func TestStudentsEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	doJSON(t, router, "POST", "/api/courses", gin.H{"course_code": "CS101"})

	w := doJSON(t, router, "POST", "/api/courses/CS101/students",
		gin.H{"enrollment_number": "E1", "name": "Alice"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate enrollment in the same course is a conflict
	w = doJSON(t, router, "POST", "/api/courses/CS101/students",
		gin.H{"enrollment_number": "E1", "name": "Alice"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, "PUT", "/api/courses/CS101/students/E1", gin.H{"name": "Alice Cooper"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/courses/CS101/students", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice Cooper")

	w = doJSON(t, router, "DELETE", "/api/courses/CS101/students/E1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE", "/api/courses/CS101/students/E1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttendanceEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	doJSON(t, router, "POST", "/api/courses", gin.H{"course_code": "CS101"})
	doJSON(t, router, "POST", "/api/courses/CS101/students",
		gin.H{"enrollment_number": "E1", "name": "Alice"})

	w := doJSON(t, router, "POST", "/api/attendance", gin.H{
		"course_code": "CS101", "date": "2025-01-01",
		"enrollment_number": "E1", "status": "P",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/api/attendance", gin.H{
		"course_code": "CS101", "date": "2025-01-01",
		"enrollment_number": "E1", "status": "X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/courses/CS101/attendance?date=2025-01-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	w = doJSON(t, router, "GET", "/api/courses/CS101/students/E1/attendance", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "DELETE",
		"/api/attendance?course_code=CS101&date=2025-01-01&enrollment_number=E1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	doJSON(t, router, "POST", "/api/courses", gin.H{"course_code": "CS101"})

	// Nothing marked yet: distinguishable no-data condition
	w := doJSON(t, router, "POST", "/api/courses/CS101/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	doJSON(t, router, "POST", "/api/courses/CS101/students",
		gin.H{"enrollment_number": "E1", "name": "Alice"})
	doJSON(t, router, "POST", "/api/attendance", gin.H{
		"course_code": "CS101", "date": "2025-01-01",
		"enrollment_number": "E1", "status": "P",
	})

	w = doJSON(t, router, "POST", "/api/courses/CS101/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Path string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Path, "Attendance_CS101.csv")
}

func TestExportAsyncWithoutTaskQueue(t *testing.T) {
	router := setupTestRouter(t)

	doJSON(t, router, "POST", "/api/courses", gin.H{"course_code": "CS101"})

	w := doJSON(t, router, "POST", "/api/courses/CS101/export/async", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
