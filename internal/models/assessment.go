package models

import "time"

// Assessment is a leaf record owned by a course.
type Assessment struct {
	ID                  int64          `db:"id" json:"id"`
	Title               string         `db:"title" json:"title"`
	Type                AssessmentType `db:"type" json:"type"`
	StartDate           time.Time      `db:"start_date" json:"start_date"`
	EndDate             time.Time      `db:"end_date" json:"end_date"`
	EnableNotifications bool           `db:"enable_notifications" json:"enable_notifications"`
	CourseID            int64          `db:"course_id" json:"course_id"`
}

// DeletionSummary lists every row removed by a cascading delete.
type DeletionSummary struct {
	TermIDs       []int64 `json:"term_ids,omitempty"`
	CourseIDs     []int64 `json:"course_ids,omitempty"`
	AssessmentIDs []int64 `json:"assessment_ids,omitempty"`
}
