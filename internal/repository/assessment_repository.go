package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

const assessmentColumns = `id, title, type, start_date, end_date, enable_notifications, course_id`

// AddAssessment inserts an assessment and returns its store-assigned id. assessment.ID is ignored.
func (s *Store) AddAssessment(ctx context.Context, assessment models.Assessment) (int64, error) {
	if err := s.Initialize(ctx); err != nil {
		return 0, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, err := insertAssessment(ctx, s.db, assessment)
	if err != nil {
		return 0, appErrors.Unavailable(err, "failed to add assessment")
	}
	return id, nil
}

// GetAssessment loads an assessment by id.
func (s *Store) GetAssessment(ctx context.Context, id int64) (*models.Assessment, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	var assessment models.Assessment
	if err := s.db.GetContext(ctx, &assessment, `SELECT `+assessmentColumns+` FROM assessments WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, appErrors.Unavailable(err, "failed to load assessment")
	}
	return &assessment, nil
}

// GetAllAssessments returns every assessment in insertion order.
func (s *Store) GetAllAssessments(ctx context.Context) ([]models.Assessment, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	assessments := []models.Assessment{}
	if err := s.db.SelectContext(ctx, &assessments, `SELECT `+assessmentColumns+` FROM assessments ORDER BY id`); err != nil {
		return nil, appErrors.Unavailable(err, "failed to list assessments")
	}
	return assessments, nil
}

// AssessmentsByCourse returns the assessments owned by a course.
func (s *Store) AssessmentsByCourse(ctx context.Context, courseID int64) ([]models.Assessment, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	assessments := []models.Assessment{}
	if err := s.db.SelectContext(ctx, &assessments, `SELECT `+assessmentColumns+` FROM assessments WHERE course_id = ? ORDER BY id`, courseID); err != nil {
		return nil, appErrors.Unavailable(err, "failed to list course assessments")
	}
	return assessments, nil
}

// UpdateAssessment replaces every field of an existing assessment with the supplied values.
func (s *Store) UpdateAssessment(ctx context.Context, id int64, assessment models.Assessment) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var current models.Assessment
	if err := s.db.GetContext(ctx, &current, `SELECT `+assessmentColumns+` FROM assessments WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return appErrors.Unavailable(err, "failed to load assessment")
	}

	assessment.ID = id
	const query = `UPDATE assessments SET id = ?, title = ?, type = ?, start_date = ?, end_date = ?, enable_notifications = ?, course_id = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query,
		assessment.ID, assessment.Title, assessment.Type, assessment.StartDate, assessment.EndDate,
		assessment.EnableNotifications, assessment.CourseID, id,
	)
	if err != nil {
		return appErrors.Unavailable(err, "failed to update assessment")
	}
	return nil
}

// DeleteAssessment removes a single assessment. An absent id is not an error.
func (s *Store) DeleteAssessment(ctx context.Context, id int64) (*models.DeletionSummary, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return nil, appErrors.Unavailable(err, "failed to delete assessment")
	}
	summary := &models.DeletionSummary{}
	if affected, _ := res.RowsAffected(); affected > 0 {
		summary.AssessmentIDs = append(summary.AssessmentIDs, id)
	}
	return summary, nil
}

func insertAssessment(ctx context.Context, exec sqlx.ExecerContext, assessment models.Assessment) (int64, error) {
	const query = `INSERT INTO assessments (title, type, start_date, end_date, enable_notifications, course_id) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := exec.ExecContext(ctx, query,
		assessment.Title, assessment.Type, assessment.StartDate, assessment.EndDate,
		assessment.EnableNotifications, assessment.CourseID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
