package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

// Observer receives counts of issued and cancelled reminders.
type Observer interface {
	ObserveReminders(action string, kind models.ItemKind, count int)
}

// Observed actions.
const (
	ActionShow   = "show"
	ActionCancel = "cancel"
)

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source used for clamping fire times.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// Scheduler issues cancel/show requests for items to a Notifier.
// Callers must serialise edits of the same item; nothing here orders concurrent requests.
type Scheduler struct {
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
	observer Observer
}

// NewScheduler constructs a scheduler.
func NewScheduler(notifier Notifier, logger *zap.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{notifier: notifier, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule issues both reminders of a newly created item when its notifications are enabled.
func (s *Scheduler) Schedule(ctx context.Context, item Item) error {
	if !item.NotificationsEnabled {
		return nil
	}

	start, end := Build(item, s.now())
	for _, r := range []models.Reminder{start, end} {
		if err := s.notifier.Show(ctx, r); err != nil {
			return appErrors.Wrap(err, appErrors.ErrNotifier.Code, appErrors.ErrNotifier.Status, "failed to schedule reminder")
		}
	}
	s.observe(ActionShow, item.Kind, 2)
	s.logger.Debug("reminders scheduled",
		zap.String("kind", string(item.Kind)),
		zap.Int64("item_id", item.ID),
		zap.Time("start_fire_at", start.FireAt),
		zap.Time("end_fire_at", end.FireAt),
	)
	return nil
}

// Reschedule cancels both reminder ids of an edited item, then reissues them if notifications
// are still enabled. Cancelling ids that were never scheduled is harmless.
func (s *Scheduler) Reschedule(ctx context.Context, item Item) error {
	if err := s.CancelItem(ctx, item.Kind, item.ID); err != nil {
		return err
	}
	return s.Schedule(ctx, item)
}

// CancelItem cancels both reminder ids of an item.
func (s *Scheduler) CancelItem(ctx context.Context, kind models.ItemKind, itemID int64) error {
	return s.CancelItems(ctx, kind, []int64{itemID})
}

// CancelItems cancels the reminder pairs of every listed item in one request.
func (s *Scheduler) CancelItems(ctx context.Context, kind models.ItemKind, itemIDs []int64) error {
	if len(itemIDs) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(itemIDs)*2)
	for _, itemID := range itemIDs {
		start, end := IDs(itemID)
		ids = append(ids, start, end)
	}
	if err := s.notifier.Cancel(ctx, ids); err != nil {
		return appErrors.Wrap(err, appErrors.ErrNotifier.Code, appErrors.ErrNotifier.Status, "failed to cancel reminders")
	}
	s.observe(ActionCancel, kind, len(ids))
	return nil
}

func (s *Scheduler) observe(action string, kind models.ItemKind, count int) {
	if s.observer != nil {
		s.observer.ObserveReminders(action, kind, count)
	}
}
