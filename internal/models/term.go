package models

import (
	"fmt"
	"time"
)

// Term models an academic term owning zero or more courses.
type Term struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
}

// Summary renders a one-line description of the term.
func (t Term) Summary() string {
	return fmt.Sprintf("Term: %s (%s → %s)", t.Title, t.StartDate.Format(DateLayout), t.EndDate.Format(DateLayout))
}

// DateLayout is the calendar date format used across the API.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
