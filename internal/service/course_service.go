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

type courseStore interface {
	GetTerm(ctx context.Context, id int64) (*models.Term, error)
	AddCourse(ctx context.Context, course models.Course) (int64, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	UpdateCourse(ctx context.Context, id int64, course models.Course) error
	DeleteCourse(ctx context.Context, id int64) (*models.DeletionSummary, error)
	AssessmentsByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error)
}

// CourseRequest describes the payload for creating or replacing a course.
// An empty status defaults to InActive.
type CourseRequest struct {
	Title               string `json:"title" validate:"required"`
	Status              string `json:"status"`
	StartDate           string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate             string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Notes               string `json:"notes"`
	EnableNotifications bool   `json:"enable_notifications"`
	InstructorName      string `json:"instructor_name" validate:"required"`
	InstructorPhone     string `json:"instructor_phone" validate:"required"`
	InstructorEmail     string `json:"instructor_email" validate:"required,email"`
	TermID              int64  `json:"term_id" validate:"required,gt=0"`
}

// CourseService orchestrates course workflows and their reminders.
type CourseService struct {
	store     courseStore
	reminders *ReminderService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService creates a new course service instance.
func NewCourseService(store courseStore, reminders *ReminderService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{store: store, reminders: reminders, validator: validate, logger: logger}
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	return s.store.GetAllCourses(ctx)
}

// Get returns a course by ID.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	return s.store.GetCourse(ctx, id)
}

// Assessments lists the assessments of an existing course.
func (s *CourseService) Assessments(ctx context.Context, id int64) ([]models.Assessment, error) {
	if _, err := s.store.GetCourse(ctx, id); err != nil {
		return nil, err
	}
	return s.store.AssessmentsByCourse(ctx, id)
}

// Create stores a new course under an existing term and schedules its reminders.
func (s *CourseService) Create(ctx context.Context, req CourseRequest) (*models.Course, error) {
	course, err := s.courseFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	id, err := s.store.AddCourse(ctx, *course)
	if err != nil {
		return nil, err
	}
	course.ID = id
	s.logger.Info("course created", zap.Int64("course_id", id), zap.Int64("term_id", course.TermID))

	if err := s.reminders.Created(ctx, reminder.CourseItem(*course)); err != nil {
		return course, err
	}
	return course, nil
}

// Update replaces every field of an existing course and reissues its reminders.
func (s *CourseService) Update(ctx context.Context, id int64, req CourseRequest) (*models.Course, error) {
	course, err := s.courseFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateCourse(ctx, id, *course); err != nil {
		return nil, err
	}
	course.ID = id

	if err := s.reminders.Updated(ctx, reminder.CourseItem(*course)); err != nil {
		return course, err
	}
	return course, nil
}

// Delete removes a course with its assessments.
func (s *CourseService) Delete(ctx context.Context, id int64) (*models.DeletionSummary, error) {
	summary, err := s.store.DeleteCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reminders.AfterDelete(ctx, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *CourseService) courseFromRequest(ctx context.Context, req CourseRequest) (*models.Course, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.InstructorName = strings.TrimSpace(req.InstructorName)
	req.InstructorPhone = strings.TrimSpace(req.InstructorPhone)
	req.InstructorEmail = strings.TrimSpace(req.InstructorEmail)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	status := models.CourseStatusInActive
	if req.Status != "" {
		parsed, err := models.ParseCourseStatus(req.Status)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course status")
		}
		status = parsed
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetTerm(ctx, req.TermID); err != nil {
		return nil, err
	}

	return &models.Course{
		Title:               req.Title,
		Status:              status,
		StartDate:           start,
		EndDate:             end,
		Notes:               strings.TrimSpace(req.Notes),
		EnableNotifications: req.EnableNotifications,
		InstructorName:      req.InstructorName,
		InstructorPhone:     req.InstructorPhone,
		InstructorEmail:     req.InstructorEmail,
		TermID:              req.TermID,
	}, nil
}
