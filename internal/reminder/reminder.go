// Package reminder derives and issues the start/end date reminders for courses and assessments.
//
// Every item owns exactly two reminder ids packed from its store id: id*10+1 for the start
// date and id*10+2 for the end date. Course and assessment ids come from independent
// sequences, so a course and an assessment sharing an id also share reminder ids. The packing
// is kept as-is for compatibility with reminders that were already handed to the device.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/term-tracker/internal/models"
)

// NotifyOffset is added to the target date to get the nominal fire time (08:00 on that day).
const NotifyOffset = 8 * time.Hour

// Notifier is the external delivery subsystem that renders reminders.
type Notifier interface {
	Show(ctx context.Context, reminder models.Reminder) error
	Cancel(ctx context.Context, ids []int64) error
}

// Slot selects which of the two reminders of an item is meant.
type Slot int64

const (
	SlotStart Slot = 1
	SlotEnd   Slot = 2
)

// ID packs an item id and a slot into a reminder id.
func ID(itemID int64, slot Slot) int64 {
	return itemID*10 + int64(slot)
}

// IDs returns the start and end reminder ids of an item.
func IDs(itemID int64) (start, end int64) {
	return ID(itemID, SlotStart), ID(itemID, SlotEnd)
}

// FireTime returns date+8h, or now when that instant has already passed.
func FireTime(date, now time.Time) time.Time {
	nominal := models.DateOnly(date).Add(NotifyOffset)
	if nominal.Before(now) {
		return now
	}
	return nominal
}

// Item is the part of a course or assessment the scheduler needs.
type Item struct {
	Kind                 models.ItemKind
	ID                   int64
	Title                string
	StartDate            time.Time
	EndDate              time.Time
	NotificationsEnabled bool
}

// CourseItem adapts a course.
func CourseItem(c models.Course) Item {
	return Item{
		Kind:                 models.ItemKindCourse,
		ID:                   c.ID,
		Title:                c.Title,
		StartDate:            c.StartDate,
		EndDate:              c.EndDate,
		NotificationsEnabled: c.EnableNotifications,
	}
}

// AssessmentItem adapts an assessment.
func AssessmentItem(a models.Assessment) Item {
	return Item{
		Kind:                 models.ItemKindAssessment,
		ID:                   a.ID,
		Title:                a.Title,
		StartDate:            a.StartDate,
		EndDate:              a.EndDate,
		NotificationsEnabled: a.EnableNotifications,
	}
}

// Build returns the start and end reminders for the item as of now.
func Build(item Item, now time.Time) (models.Reminder, models.Reminder) {
	startID, endID := IDs(item.ID)
	start := models.Reminder{
		ID:     startID,
		Title:  fmt.Sprintf("%s Start Date Reminder", item.Kind),
		Body:   fmt.Sprintf("%s '%s' starts today!", item.Kind, item.Title),
		FireAt: FireTime(item.StartDate, now),
	}
	end := models.Reminder{
		ID:     endID,
		Title:  fmt.Sprintf("%s End Date Reminder", item.Kind),
		Body:   fmt.Sprintf("%s '%s' ends today!", item.Kind, item.Title),
		FireAt: FireTime(item.EndDate, now),
	}
	return start, end
}
