package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
)

func TestAdminServiceSeedOnce(t *testing.T) {
	f := newFixture(t, false)
	admin := NewAdminService(f.store, f.reminders, zap.NewNop())
	ctx := context.Background()

	result, err := admin.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, result.Inserted)

	result, err = admin.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, result.Inserted)
}

func TestAdminServiceClearCancelsEverything(t *testing.T) {
	f := newFixture(t, true)
	admin := NewAdminService(f.store, f.reminders, zap.NewNop())
	ctx := context.Background()

	_, err := admin.Seed(ctx)
	require.NoError(t, err)

	result, err := admin.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CoursesRemoved)
	assert.Equal(t, 2, result.AssessmentsRemoved)

	require.Len(t, f.scheduler.calls, 2)
	assert.Equal(t, models.ItemKindCourse, f.scheduler.calls[0].kind)
	assert.Len(t, f.scheduler.calls[0].ids, 1)
	assert.Equal(t, models.ItemKindAssessment, f.scheduler.calls[1].kind)
	assert.Len(t, f.scheduler.calls[1].ids, 2)

	terms, err := f.terms.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

type stubPending struct {
	until time.Time
	items []models.Reminder
}

func (s *stubPending) Pending(_ context.Context, until time.Time) ([]models.Reminder, error) {
	s.until = until
	return s.items, nil
}

func TestReminderServicePending(t *testing.T) {
	svc := NewReminderService(&fakeScheduler{}, nil, ReminderServiceConfig{}, nil)
	_, err := svc.Pending(context.Background(), time.Now())
	require.Error(t, err)

	until := time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)
	lister := &stubPending{}
	svc = NewReminderService(&fakeScheduler{}, lister, ReminderServiceConfig{}, nil)
	result, err := svc.Pending(context.Background(), until)
	require.NoError(t, err)
	assert.Equal(t, until, lister.until)
	assert.NotNil(t, result.Reminders)
	assert.Empty(t, result.Reminders)
}
