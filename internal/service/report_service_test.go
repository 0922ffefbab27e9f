package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
	"github.com/noah-isme/term-tracker/pkg/export"
)

func seededReportService(t *testing.T) *ReportService {
	t.Helper()
	store := newStore(t)
	_, err := store.SeedOnce(context.Background())
	require.NoError(t, err)
	return NewReportService(store, nil, nil, zap.NewNop())
}

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestReportServiceSeptemberIncludesSeededCourse(t *testing.T) {
	svc := seededReportService(t)

	result, err := svc.CourseStartDates(context.Background(), localDate(2025, time.September, 1), localDate(2025, time.September, 30))
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)
	row := result.Rows[0]
	assert.Equal(t, "A101: Mobile App Dev - C#", row.Title)
	assert.Equal(t, models.CourseStatusActive, row.Status)
	assert.Equal(t, "Term 1", row.TermTitle)
	assert.Equal(t, "Found 1 course(s) with StartDate between 09/01/2025 and 09/30/2025.", result.Summary)
	assert.Equal(t, "2025-09-01", result.From)
	assert.Equal(t, "2025-09-30", result.To)
}

func TestReportServiceOctoberIsEmpty(t *testing.T) {
	svc := seededReportService(t)

	result, err := svc.CourseStartDates(context.Background(), localDate(2025, time.October, 1), localDate(2025, time.October, 31))
	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.Empty(t, result.Rows)
	assert.Equal(t, "Found 0 course(s) with StartDate between 10/01/2025 and 10/31/2025.", result.Summary)
}

func TestReportServiceRejectsInvertedRange(t *testing.T) {
	svc := seededReportService(t)

	result, err := svc.CourseStartDates(context.Background(), localDate(2025, time.October, 1), localDate(2025, time.September, 1))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, appErrors.ErrValidationRejected))
}

func TestReportServiceParseRange(t *testing.T) {
	svc := NewReportService(nil, nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, time.February, 10, 12, 0, 0, 0, time.Local) }

	from, to, err := svc.ParseRange("", "")
	require.NoError(t, err)
	assert.Equal(t, localDate(2025, time.February, 1), from)
	assert.Equal(t, localDate(2025, time.February, 28), to)

	from, to, err = svc.ParseRange("2025-01-15", "")
	require.NoError(t, err)
	assert.Equal(t, localDate(2025, time.January, 15), from)
	assert.Equal(t, localDate(2025, time.February, 28), to)

	_, _, err = svc.ParseRange("2025/01/15", "")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestReportServiceExportCSV(t *testing.T) {
	svc := seededReportService(t)

	file, err := svc.Export(context.Background(), localDate(2025, time.September, 1), localDate(2025, time.September, 30), export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "course-start_2025-09-01_2025-09-30.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Title,Status,Start Date,End Date,Term", lines[0])
	assert.Equal(t, "A101: Mobile App Dev - C#,Active,2025-09-01,2025-10-31,Term 1", lines[1])
}

func TestReportServiceExportPDF(t *testing.T) {
	svc := seededReportService(t)

	file, err := svc.Export(context.Background(), localDate(2025, time.September, 1), localDate(2025, time.September, 30), export.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF-")))
}

func TestReportServiceExportUnsupportedFormat(t *testing.T) {
	svc := seededReportService(t)

	_, err := svc.Export(context.Background(), localDate(2025, time.September, 1), localDate(2025, time.September, 30), export.Format("xlsx"))
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
