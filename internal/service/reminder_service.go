package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/dto"
	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/reminder"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

type reminderScheduler interface {
	Schedule(ctx context.Context, item reminder.Item) error
	Reschedule(ctx context.Context, item reminder.Item) error
	CancelItems(ctx context.Context, kind models.ItemKind, itemIDs []int64) error
}

// PendingLister enumerates reminders that have not fired yet.
type PendingLister interface {
	Pending(ctx context.Context, until time.Time) ([]models.Reminder, error)
}

// ReminderServiceConfig governs reminder side effects of deletes.
type ReminderServiceConfig struct {
	CancelOnDelete bool
}

// ReminderService applies reminder side effects of item lifecycle changes.
type ReminderService struct {
	scheduler reminderScheduler
	pending   PendingLister
	cfg       ReminderServiceConfig
	logger    *zap.Logger
}

// NewReminderService constructs the reminder service. pending may be nil when the backend
// cannot enumerate outstanding reminders.
func NewReminderService(scheduler reminderScheduler, pending PendingLister, cfg ReminderServiceConfig, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{scheduler: scheduler, pending: pending, cfg: cfg, logger: logger}
}

// Created issues the reminders of a new item.
func (s *ReminderService) Created(ctx context.Context, item reminder.Item) error {
	if s == nil || s.scheduler == nil {
		return nil
	}
	return s.scheduler.Schedule(ctx, item)
}

// Updated cancels and reissues the reminders of an edited item.
func (s *ReminderService) Updated(ctx context.Context, item reminder.Item) error {
	if s == nil || s.scheduler == nil {
		return nil
	}
	return s.scheduler.Reschedule(ctx, item)
}

// AfterDelete cancels the reminders of every removed course and assessment when enabled.
func (s *ReminderService) AfterDelete(ctx context.Context, summary *models.DeletionSummary) error {
	if s == nil || s.scheduler == nil || summary == nil || !s.cfg.CancelOnDelete {
		return nil
	}
	if err := s.scheduler.CancelItems(ctx, models.ItemKindCourse, summary.CourseIDs); err != nil {
		return err
	}
	if err := s.scheduler.CancelItems(ctx, models.ItemKindAssessment, summary.AssessmentIDs); err != nil {
		return err
	}
	s.logger.Debug("reminders cancelled after delete",
		zap.Int("courses", len(summary.CourseIDs)),
		zap.Int("assessments", len(summary.AssessmentIDs)),
	)
	return nil
}

// Pending lists reminders due on or before until.
func (s *ReminderService) Pending(ctx context.Context, until time.Time) (*dto.PendingReminders, error) {
	if s == nil || s.pending == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "reminder backend does not track pending reminders")
	}
	reminders, err := s.pending.Pending(ctx, until)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotifier.Code, appErrors.ErrNotifier.Status, "failed to list pending reminders")
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return &dto.PendingReminders{Until: until, Reminders: reminders}, nil
}
