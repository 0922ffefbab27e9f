package models

import "time"

// ReportRow is the flattened course start date projection. It is never persisted.
type ReportRow struct {
	Title     string       `json:"title"`
	Status    CourseStatus `json:"status"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	TermTitle string       `json:"term_title"`
}

// UnknownTermTitle annotates rows whose term id has no matching term.
const UnknownTermTitle = "Unknown Term"
