package models

import "time"

// ItemKind names the entity class that owns a reminder pair.
type ItemKind string

const (
	ItemKindCourse     ItemKind = "Course"
	ItemKindAssessment ItemKind = "Assessment"
)

// Reminder is a single local notification request.
type Reminder struct {
	ID     int64     `json:"id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	FireAt time.Time `json:"fire_at"`
}
