package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	term1  = models.Term{ID: 1, Title: "Term 1", StartDate: date(2025, time.April, 1), EndDate: date(2025, time.September, 30)}
	mobile = models.Course{
		ID:        1,
		Title:     "A101: Mobile App Dev - C#",
		Status:    models.CourseStatusActive,
		StartDate: date(2025, time.September, 1),
		EndDate:   date(2025, time.October, 31),
		TermID:    1,
	}
)

func TestProjectIncludesCourseStartingInRange(t *testing.T) {
	rows, err := Project(date(2025, time.September, 1), date(2025, time.September, 30), []models.Term{term1}, []models.Course{mobile})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ReportRow{
		Title:     mobile.Title,
		Status:    models.CourseStatusActive,
		StartDate: mobile.StartDate,
		EndDate:   mobile.EndDate,
		TermTitle: "Term 1",
	}, rows[0])
}

func TestProjectExcludesCourseStartingBeforeRange(t *testing.T) {
	rows, err := Project(date(2025, time.October, 1), date(2025, time.October, 31), []models.Term{term1}, []models.Course{mobile})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestProjectBoundsAreInclusiveByDate(t *testing.T) {
	late := mobile
	late.ID = 2
	late.StartDate = time.Date(2025, time.September, 30, 17, 45, 0, 0, time.UTC)

	rows, err := Project(date(2025, time.September, 30), date(2025, time.September, 30), []models.Term{term1}, []models.Course{mobile, late})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, late.StartDate, rows[0].StartDate)
}

func TestProjectSortsByStartDate(t *testing.T) {
	a := mobile
	a.ID, a.Title, a.StartDate = 2, "B", date(2025, time.September, 20)
	b := mobile
	b.ID, b.Title, b.StartDate = 3, "C", date(2025, time.September, 5)
	c := mobile
	c.ID, c.Title, c.StartDate = 4, "D", date(2025, time.September, 20)

	rows, err := Project(date(2025, time.September, 1), date(2025, time.September, 30), []models.Term{term1}, []models.Course{a, mobile, b, c})
	require.NoError(t, err)
	titles := make([]string, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, row.Title)
	}
	assert.Equal(t, []string{mobile.Title, "C", "B", "D"}, titles)
}

func TestProjectUnknownTerm(t *testing.T) {
	orphan := mobile
	orphan.TermID = 99

	rows, err := Project(date(2025, time.September, 1), date(2025, time.September, 30), []models.Term{term1}, []models.Course{orphan})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.UnknownTermTitle, rows[0].TermTitle)
}

func TestProjectRejectsInvertedRange(t *testing.T) {
	rows, err := Project(date(2025, time.September, 30), date(2025, time.September, 1), []models.Term{term1}, []models.Course{mobile})
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.True(t, errors.Is(err, appErrors.ErrValidationRejected))
}

func TestProjectSameDayRangeWithTimes(t *testing.T) {
	from := time.Date(2025, time.September, 1, 18, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.September, 1, 6, 0, 0, 0, time.UTC)

	rows, err := Project(from, to, []models.Term{term1}, []models.Course{mobile})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCurrentMonth(t *testing.T) {
	first, last := CurrentMonth(time.Date(2024, time.February, 14, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, time.February, 1), first)
	assert.Equal(t, date(2024, time.February, 29), last)

	first, last = CurrentMonth(time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2025, time.December, 1), first)
	assert.Equal(t, date(2025, time.December, 31), last)
}
