package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/reminder"
	"github.com/noah-isme/term-tracker/internal/repository"
	"github.com/noah-isme/term-tracker/pkg/config"
	"github.com/noah-isme/term-tracker/pkg/database"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.NewSQLite(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "termtracker.db3")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewStore(db, zap.NewNop())
}

type schedulerCall struct {
	op   string
	kind models.ItemKind
	item reminder.Item
	ids  []int64
}

type fakeScheduler struct {
	calls []schedulerCall
	err   error
}

func (f *fakeScheduler) Schedule(_ context.Context, item reminder.Item) error {
	f.calls = append(f.calls, schedulerCall{op: "schedule", kind: item.Kind, item: item})
	return f.err
}

func (f *fakeScheduler) Reschedule(_ context.Context, item reminder.Item) error {
	f.calls = append(f.calls, schedulerCall{op: "reschedule", kind: item.Kind, item: item})
	return f.err
}

func (f *fakeScheduler) CancelItems(_ context.Context, kind models.ItemKind, ids []int64) error {
	f.calls = append(f.calls, schedulerCall{op: "cancel", kind: kind, ids: ids})
	return f.err
}

func (f *fakeScheduler) ops() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.op)
	}
	return out
}

type recordedNotifier struct {
	shown     []models.Reminder
	cancelled [][]int64
}

func (n *recordedNotifier) Show(_ context.Context, r models.Reminder) error {
	n.shown = append(n.shown, r)
	return nil
}

func (n *recordedNotifier) Cancel(_ context.Context, ids []int64) error {
	n.cancelled = append(n.cancelled, ids)
	return nil
}

func validTermRequest() TermRequest {
	return TermRequest{Title: "Term 1", StartDate: "2025-04-01", EndDate: "2025-09-30"}
}

func validCourseRequest(termID int64) CourseRequest {
	return CourseRequest{
		Title:               "A101: Mobile App Dev - C#",
		Status:              "Active",
		StartDate:           "2025-09-01",
		EndDate:             "2025-10-31",
		Notes:               "Learn mobile development using C#.",
		EnableNotifications: true,
		InstructorName:      "John Doe",
		InstructorPhone:     "555-123-4567",
		InstructorEmail:     "John.Doe@TheUniversity.edu",
		TermID:              termID,
	}
}

func validAssessmentRequest(courseID int64) AssessmentRequest {
	return AssessmentRequest{
		Title:               "Performance Assessment 1",
		Type:                "Performance",
		StartDate:           "2025-09-01",
		EndDate:             "2025-09-15",
		EnableNotifications: true,
		CourseID:            courseID,
	}
}

type fixture struct {
	store       *repository.Store
	scheduler   *fakeScheduler
	reminders   *ReminderService
	terms       *TermService
	courses     *CourseService
	assessments *AssessmentService
}

func newFixture(t *testing.T, cancelOnDelete bool) *fixture {
	t.Helper()
	store := newStore(t)
	scheduler := &fakeScheduler{}
	reminders := NewReminderService(scheduler, nil, ReminderServiceConfig{CancelOnDelete: cancelOnDelete}, zap.NewNop())
	return &fixture{
		store:       store,
		scheduler:   scheduler,
		reminders:   reminders,
		terms:       NewTermService(store, reminders, nil, zap.NewNop()),
		courses:     NewCourseService(store, reminders, nil, zap.NewNop()),
		assessments: NewAssessmentService(store, reminders, nil, zap.NewNop()),
	}
}
