// Package report projects courses into the course start date report.
package report

import (
	"sort"
	"time"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

// Project returns a row for every course whose start date falls within [from, to], compared by
// calendar date and inclusive on both ends, ordered by start date. A course whose term is missing
// from terms is annotated with models.UnknownTermTitle.
func Project(from, to time.Time, terms []models.Term, courses []models.Course) ([]models.ReportRow, error) {
	from, to = models.DateOnly(from), models.DateOnly(to)
	if from.After(to) {
		return nil, appErrors.Clone(appErrors.ErrValidationRejected, "from date must not be after to date")
	}

	titles := make(map[int64]string, len(terms))
	for _, term := range terms {
		titles[term.ID] = term.Title
	}

	rows := make([]models.ReportRow, 0)
	for _, course := range courses {
		start := models.DateOnly(course.StartDate)
		if start.Before(from) || start.After(to) {
			continue
		}
		termTitle, ok := titles[course.TermID]
		if !ok {
			termTitle = models.UnknownTermTitle
		}
		rows = append(rows, models.ReportRow{
			Title:     course.Title,
			Status:    course.Status,
			StartDate: course.StartDate,
			EndDate:   course.EndDate,
			TermTitle: termTitle,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].StartDate.Before(rows[j].StartDate)
	})
	return rows, nil
}

// CurrentMonth returns the first and last calendar day of the month containing now.
func CurrentMonth(now time.Time) (time.Time, time.Time) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first, first.AddDate(0, 1, -1)
}
