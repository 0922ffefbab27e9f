package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

type termStore interface {
	AddTerm(ctx context.Context, title string, startDate, endDate time.Time) (int64, error)
	GetTerm(ctx context.Context, id int64) (*models.Term, error)
	GetAllTerms(ctx context.Context) ([]models.Term, error)
	UpdateTerm(ctx context.Context, id int64, title string, startDate, endDate time.Time) error
	DeleteTerm(ctx context.Context, id int64) (*models.DeletionSummary, error)
	CoursesByTerm(ctx context.Context, termID int64) ([]models.Course, error)
}

// TermRequest describes the payload for creating or replacing a term.
type TermRequest struct {
	Title     string `json:"title" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// TermService orchestrates term workflows.
type TermService struct {
	store     termStore
	reminders *ReminderService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTermService creates a new term service instance.
func NewTermService(store termStore, reminders *ReminderService, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{store: store, reminders: reminders, validator: validate, logger: logger}
}

// List returns every term.
func (s *TermService) List(ctx context.Context) ([]models.Term, error) {
	return s.store.GetAllTerms(ctx)
}

// Get returns a term by ID.
func (s *TermService) Get(ctx context.Context, id int64) (*models.Term, error) {
	return s.store.GetTerm(ctx, id)
}

// Courses lists the courses of an existing term.
func (s *TermService) Courses(ctx context.Context, id int64) ([]models.Course, error) {
	if _, err := s.store.GetTerm(ctx, id); err != nil {
		return nil, err
	}
	return s.store.CoursesByTerm(ctx, id)
}

// Create validates and stores a new term.
func (s *TermService) Create(ctx context.Context, req TermRequest) (*models.Term, error) {
	term, err := s.termFromRequest(req)
	if err != nil {
		return nil, err
	}
	id, err := s.store.AddTerm(ctx, term.Title, term.StartDate, term.EndDate)
	if err != nil {
		return nil, err
	}
	term.ID = id
	s.logger.Info("term created", zap.Int64("term_id", id))
	return term, nil
}

// Update replaces every field of an existing term.
func (s *TermService) Update(ctx context.Context, id int64, req TermRequest) (*models.Term, error) {
	term, err := s.termFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateTerm(ctx, id, term.Title, term.StartDate, term.EndDate); err != nil {
		return nil, err
	}
	term.ID = id
	return term, nil
}

// Delete removes a term with its courses and their assessments.
func (s *TermService) Delete(ctx context.Context, id int64) (*models.DeletionSummary, error) {
	summary, err := s.store.DeleteTerm(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("term deleted",
		zap.Int64("term_id", id),
		zap.Int("courses_removed", len(summary.CourseIDs)),
		zap.Int("assessments_removed", len(summary.AssessmentIDs)),
	)
	if err := s.reminders.AfterDelete(ctx, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *TermService) termFromRequest(req TermRequest) (*models.Term, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	return &models.Term{Title: req.Title, StartDate: start, EndDate: end}, nil
}
