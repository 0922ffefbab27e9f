package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/dto"
	"github.com/noah-isme/term-tracker/internal/models"
)

type adminStore interface {
	SeedOnce(ctx context.Context) (bool, error)
	ClearAll(ctx context.Context) error
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	GetAllAssessments(ctx context.Context) ([]models.Assessment, error)
}

// AdminService exposes seeding and wiping of the local data file.
type AdminService struct {
	store     adminStore
	reminders *ReminderService
	logger    *zap.Logger
}

// NewAdminService constructs the admin service.
func NewAdminService(store adminStore, reminders *ReminderService, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{store: store, reminders: reminders, logger: logger}
}

// Seed inserts the sample term, course and assessments at most once per store lifetime.
func (s *AdminService) Seed(ctx context.Context) (*dto.SeedResult, error) {
	inserted, err := s.store.SeedOnce(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("seed requested", zap.Bool("inserted", inserted))
	return &dto.SeedResult{Inserted: inserted}, nil
}

// Clear removes every row. The seed flag is left untouched.
func (s *AdminService) Clear(ctx context.Context) (*dto.ClearResult, error) {
	courses, err := s.store.GetAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	assessments, err := s.store.GetAllAssessments(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.ClearAll(ctx); err != nil {
		return nil, err
	}

	summary := &models.DeletionSummary{}
	for _, c := range courses {
		summary.CourseIDs = append(summary.CourseIDs, c.ID)
	}
	for _, a := range assessments {
		summary.AssessmentIDs = append(summary.AssessmentIDs, a.ID)
	}
	s.logger.Warn("all data cleared",
		zap.Int("courses", len(courses)),
		zap.Int("assessments", len(assessments)),
	)
	result := &dto.ClearResult{CoursesRemoved: len(courses), AssessmentsRemoved: len(assessments)}
	if err := s.reminders.AfterDelete(ctx, summary); err != nil {
		return result, err
	}
	return result, nil
}
