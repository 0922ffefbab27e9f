package reminder

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
)

// LogNotifier writes reminder requests to the log instead of delivering them.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier constructs a log-only notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Show(_ context.Context, r models.Reminder) error {
	n.logger.Info("reminder scheduled",
		zap.Int64("reminder_id", r.ID),
		zap.String("title", r.Title),
		zap.String("body", r.Body),
		zap.Time("fire_at", r.FireAt),
	)
	return nil
}

func (n *LogNotifier) Cancel(_ context.Context, ids []int64) error {
	n.logger.Info("reminders cancelled", zap.Int64s("reminder_ids", ids))
	return nil
}
