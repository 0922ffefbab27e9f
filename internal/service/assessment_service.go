package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/reminder"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

type assessmentStore interface {
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	AddAssessment(ctx context.Context, assessment models.Assessment) (int64, error)
	GetAssessment(ctx context.Context, id int64) (*models.Assessment, error)
	GetAllAssessments(ctx context.Context) ([]models.Assessment, error)
	UpdateAssessment(ctx context.Context, id int64, assessment models.Assessment) error
	DeleteAssessment(ctx context.Context, id int64) (*models.DeletionSummary, error)
}

// AssessmentRequest describes the payload for creating or replacing an assessment.
// An empty type defaults to Objective.
type AssessmentRequest struct {
	Title               string `json:"title" validate:"required"`
	Type                string `json:"type"`
	StartDate           string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate             string `json:"end_date" validate:"required,datetime=2006-01-02"`
	EnableNotifications bool   `json:"enable_notifications"`
	CourseID            int64  `json:"course_id" validate:"required,gt=0"`
}

// AssessmentService orchestrates assessment workflows and their reminders.
type AssessmentService struct {
	store     assessmentStore
	reminders *ReminderService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService creates a new assessment service instance.
func NewAssessmentService(store assessmentStore, reminders *ReminderService, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{store: store, reminders: reminders, validator: validate, logger: logger}
}

// List returns every assessment.
func (s *AssessmentService) List(ctx context.Context) ([]models.Assessment, error) {
	return s.store.GetAllAssessments(ctx)
}

// Get returns an assessment by ID.
func (s *AssessmentService) Get(ctx context.Context, id int64) (*models.Assessment, error) {
	return s.store.GetAssessment(ctx, id)
}

// Create stores a new assessment under an existing course and schedules its reminders.
func (s *AssessmentService) Create(ctx context.Context, req AssessmentRequest) (*models.Assessment, error) {
	assessment, err := s.assessmentFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	id, err := s.store.AddAssessment(ctx, *assessment)
	if err != nil {
		return nil, err
	}
	assessment.ID = id
	s.logger.Info("assessment created", zap.Int64("assessment_id", id), zap.Int64("course_id", assessment.CourseID))

	if err := s.reminders.Created(ctx, reminder.AssessmentItem(*assessment)); err != nil {
		return assessment, err
	}
	return assessment, nil
}

// Update replaces every field of an existing assessment and reissues its reminders.
func (s *AssessmentService) Update(ctx context.Context, id int64, req AssessmentRequest) (*models.Assessment, error) {
	assessment, err := s.assessmentFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateAssessment(ctx, id, *assessment); err != nil {
		return nil, err
	}
	assessment.ID = id

	if err := s.reminders.Updated(ctx, reminder.AssessmentItem(*assessment)); err != nil {
		return assessment, err
	}
	return assessment, nil
}

// Delete removes an assessment.
func (s *AssessmentService) Delete(ctx context.Context, id int64) (*models.DeletionSummary, error) {
	summary, err := s.store.DeleteAssessment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reminders.AfterDelete(ctx, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *AssessmentService) assessmentFromRequest(ctx context.Context, req AssessmentRequest) (*models.Assessment, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}

	assessmentType := models.AssessmentTypeObjective
	if req.Type != "" {
		parsed, err := models.ParseAssessmentType(req.Type)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment type")
		}
		assessmentType = parsed
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	return &models.Assessment{
		Title:               req.Title,
		Type:                assessmentType,
		StartDate:           start,
		EndDate:             end,
		EnableNotifications: req.EnableNotifications,
		CourseID:            req.CourseID,
	}, nil
}
