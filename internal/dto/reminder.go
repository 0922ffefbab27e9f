package dto

import (
	"time"

	"github.com/noah-isme/term-tracker/internal/models"
)

// PendingReminders lists reminders due on or before Until.
type PendingReminders struct {
	Until     time.Time         `json:"until"`
	Reminders []models.Reminder `json:"reminders"`
}

// ClearResult reports what DELETE /admin/data removed.
type ClearResult struct {
	CoursesRemoved     int `json:"courses_removed"`
	AssessmentsRemoved int `json:"assessments_removed"`
}

// SeedResult reports whether POST /admin/seed inserted the sample data.
type SeedResult struct {
	Inserted bool `json:"inserted"`
}
