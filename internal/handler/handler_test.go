package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/reminder"
	"github.com/noah-isme/term-tracker/internal/repository"
	"github.com/noah-isme/term-tracker/internal/service"
	"github.com/noah-isme/term-tracker/pkg/config"
	"github.com/noah-isme/term-tracker/pkg/database"
)

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

type testServer struct {
	router   *gin.Engine
	store    *repository.Store
	notifier *memoryNotifier
}

type memoryNotifier struct {
	shown     []models.Reminder
	cancelled []int64
}

func (n *memoryNotifier) Show(_ context.Context, r models.Reminder) error {
	n.shown = append(n.shown, r)
	return nil
}

func (n *memoryNotifier) Cancel(_ context.Context, ids []int64) error {
	n.cancelled = append(n.cancelled, ids...)
	return nil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "termtracker.db3")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := repository.NewStore(db, zap.NewNop())
	notifier := &memoryNotifier{}
	now := time.Date(2025, time.August, 1, 9, 0, 0, 0, time.Local)
	scheduler := reminder.NewScheduler(notifier, zap.NewNop(), reminder.WithClock(func() time.Time { return now }))
	reminders := service.NewReminderService(scheduler, nil, service.ReminderServiceConfig{CancelOnDelete: true}, zap.NewNop())

	router := gin.New()
	Register(router.Group("/api/v1"), Handlers{
		Terms:       NewTermHandler(service.NewTermService(store, reminders, nil, zap.NewNop())),
		Courses:     NewCourseHandler(service.NewCourseService(store, reminders, nil, zap.NewNop())),
		Assessments: NewAssessmentHandler(service.NewAssessmentService(store, reminders, nil, zap.NewNop())),
		Reports:     NewReportHandler(service.NewReportService(store, nil, nil, zap.NewNop())),
		Reminders:   NewReminderHandler(reminders),
		Admin:       NewAdminHandler(service.NewAdminService(store, reminders, zap.NewNop())),
	})
	return &testServer{router: router, store: store, notifier: notifier}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dst))
}

func TestTermCourseAssessmentLifecycle(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/terms", map[string]string{
		"title": "Term 1", "start_date": "2025-04-01", "end_date": "2025-09-30",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var term models.Term
	decode(t, env.Data, &term)

	rec, env = srv.do(t, http.MethodPost, "/api/v1/courses", map[string]interface{}{
		"title":                "A101",
		"status":               "Active",
		"start_date":           "2025-09-01",
		"end_date":             "2025-10-31",
		"enable_notifications": true,
		"instructor_name":      "John Doe",
		"instructor_phone":     "555-123-4567",
		"instructor_email":     "John.Doe@TheUniversity.edu",
		"term_id":              term.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var course models.Course
	decode(t, env.Data, &course)
	assert.Equal(t, models.CourseStatusActive, course.Status)
	assert.Len(t, srv.notifier.shown, 2)

	rec, env = srv.do(t, http.MethodPost, "/api/v1/assessments", map[string]interface{}{
		"title":      "OA 1",
		"start_date": "2025-09-15",
		"end_date":   "2025-09-30",
		"course_id":  course.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var assessment models.Assessment
	decode(t, env.Data, &assessment)
	assert.Equal(t, models.AssessmentTypeObjective, assessment.Type)
	assert.Len(t, srv.notifier.shown, 2)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/terms/"+itoa(term.ID)+"/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []models.Course
	decode(t, env.Data, &courses)
	require.Len(t, courses, 1)

	rec, env = srv.do(t, http.MethodDelete, "/api/v1/terms/"+itoa(term.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary models.DeletionSummary
	decode(t, env.Data, &summary)
	assert.Equal(t, []int64{course.ID}, summary.CourseIDs)
	assert.Equal(t, []int64{assessment.ID}, summary.AssessmentIDs)

	courseStart, courseEnd := reminder.IDs(course.ID)
	assert.Contains(t, srv.notifier.cancelled, courseStart)
	assert.Contains(t, srv.notifier.cancelled, courseEnd)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/courses/"+itoa(course.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestValidationFailures(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/terms", map[string]string{
		"title": "Term 1", "start_date": "2025-10-01", "end_date": "2025-09-30",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/terms/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/terms", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	raw := httptest.NewRecorder()
	srv.router.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)

	rec, _ = srv.do(t, http.MethodPut, "/api/v1/terms/9", map[string]string{
		"title": "Term 9", "start_date": "2025-04-01", "end_date": "2025-09-30",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseStartReportEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec, _ := srv.do(t, http.MethodPost, "/api/v1/admin/seed", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/reports/course-start?from=2025-09-01&to=2025-09-30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		Summary string             `json:"summary"`
		Count   int                `json:"count"`
		Rows    []models.ReportRow `json:"rows"`
	}
	decode(t, env.Data, &report)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "Term 1", report.Rows[0].TermTitle)
	assert.Equal(t, "Found 1 course(s) with StartDate between 09/01/2025 and 09/30/2025.", report.Summary)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/reports/course-start?from=2025-10-01&to=2025-10-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, env.Data, &report)
	assert.Zero(t, report.Count)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/reports/course-start?from=2025-10-01&to=2025-09-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_REJECTED", env.Error.Code)

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/reports/course-start?from=2025-09-01&to=2025-09-30&format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "course-start_2025-09-01_2025-09-30.csv")
	assert.Contains(t, rec.Body.String(), "Term 1")
}

func TestAdminClearAndPendingWithoutBackend(t *testing.T) {
	srv := newTestServer(t)
	_, _ = srv.do(t, http.MethodPost, "/api/v1/admin/seed", nil)

	rec, env := srv.do(t, http.MethodDelete, "/api/v1/admin/data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared struct {
		CoursesRemoved     int `json:"courses_removed"`
		AssessmentsRemoved int `json:"assessments_removed"`
	}
	decode(t, env.Data, &cleared)
	assert.Equal(t, 1, cleared.CoursesRemoved)
	assert.Equal(t, 2, cleared.AssessmentsRemoved)
	assert.Len(t, srv.notifier.cancelled, 6)

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/reminders/pending", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/reminders/pending?until=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadyReportsFailingChecks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandler(nil, map[string]ReadinessCheck{
		"store": func(context.Context) error { return nil },
		"redis": func(context.Context) error { return assert.AnError },
	})
	router := gin.New()
	router.GET("/ready", h.Ready)
	router.GET("/metrics", h.Prometheus)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"ok"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
