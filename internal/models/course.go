package models

import "time"

// Course belongs to exactly one term and owns zero or more assessments.
type Course struct {
	ID                  int64        `db:"id" json:"id"`
	Title               string       `db:"title" json:"title"`
	Status              CourseStatus `db:"status" json:"status"`
	StartDate           time.Time    `db:"start_date" json:"start_date"`
	EndDate             time.Time    `db:"end_date" json:"end_date"`
	Notes               string       `db:"notes" json:"notes"`
	EnableNotifications bool         `db:"enable_notifications" json:"enable_notifications"`
	InstructorName      string       `db:"instructor_name" json:"instructor_name"`
	InstructorPhone     string       `db:"instructor_phone" json:"instructor_phone"`
	InstructorEmail     string       `db:"instructor_email" json:"instructor_email"`
	TermID              int64        `db:"term_id" json:"term_id"`
}
