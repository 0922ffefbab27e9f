package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

const courseColumns = `id, title, status, start_date, end_date, notes, enable_notifications, instructor_name, instructor_phone, instructor_email, term_id`

// AddCourse inserts a course and returns its store-assigned id. course.ID is ignored.
// The term id is taken as given; callers are responsible for pointing it at an existing term.
func (s *Store) AddCourse(ctx context.Context, course models.Course) (int64, error) {
	if err := s.Initialize(ctx); err != nil {
		return 0, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, err := insertCourse(ctx, s.db, course)
	if err != nil {
		return 0, appErrors.Unavailable(err, "failed to add course")
	}
	return id, nil
}

// GetCourse loads a course by id.
func (s *Store) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	var course models.Course
	if err := s.db.GetContext(ctx, &course, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Unavailable(err, "failed to load course")
	}
	return &course, nil
}

// GetAllCourses returns every course in insertion order.
func (s *Store) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	courses := []models.Course{}
	if err := s.db.SelectContext(ctx, &courses, `SELECT `+courseColumns+` FROM courses ORDER BY id`); err != nil {
		return nil, appErrors.Unavailable(err, "failed to list courses")
	}
	return courses, nil
}

// CoursesByTerm returns the courses owned by a term.
func (s *Store) CoursesByTerm(ctx context.Context, termID int64) ([]models.Course, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	courses := []models.Course{}
	if err := s.db.SelectContext(ctx, &courses, `SELECT `+courseColumns+` FROM courses WHERE term_id = ? ORDER BY id`, termID); err != nil {
		return nil, appErrors.Unavailable(err, "failed to list term courses")
	}
	return courses, nil
}

// UpdateCourse replaces every field of an existing course with the supplied values.
func (s *Store) UpdateCourse(ctx context.Context, id int64, course models.Course) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var current models.Course
	if err := s.db.GetContext(ctx, &current, `SELECT `+courseColumns+` FROM courses WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Unavailable(err, "failed to load course")
	}

	course.ID = id
	const query = `UPDATE courses SET id = ?, title = ?, status = ?, start_date = ?, end_date = ?, notes = ?, enable_notifications = ?, instructor_name = ?, instructor_phone = ?, instructor_email = ?, term_id = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Status, course.StartDate, course.EndDate, course.Notes,
		course.EnableNotifications, course.InstructorName, course.InstructorPhone, course.InstructorEmail,
		course.TermID, id,
	)
	if err != nil {
		return appErrors.Unavailable(err, "failed to update course")
	}
	return nil
}

// DeleteCourse removes the course and its assessments.
func (s *Store) DeleteCourse(ctx context.Context, id int64) (*models.DeletionSummary, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	summary := &models.DeletionSummary{}
	if err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		return deleteCourseTx(ctx, tx, id, summary)
	}); err != nil {
		return nil, appErrors.Unavailable(err, "failed to delete course")
	}

	s.logger.Debug("course deleted", zap.Int64("course_id", id), zap.Int("assessments", len(summary.AssessmentIDs)))
	return summary, nil
}

// deleteCourseTx deletes each child assessment individually, then the course row.
func deleteCourseTx(ctx context.Context, tx *sqlx.Tx, courseID int64, summary *models.DeletionSummary) error {
	var assessmentIDs []int64
	if err := tx.SelectContext(ctx, &assessmentIDs, `SELECT id FROM assessments WHERE course_id = ? ORDER BY id`, courseID); err != nil {
		return err
	}
	for _, assessmentID := range assessmentIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, assessmentID); err != nil {
			return err
		}
		summary.AssessmentIDs = append(summary.AssessmentIDs, assessmentID)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, courseID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected > 0 {
		summary.CourseIDs = append(summary.CourseIDs, courseID)
	}
	return nil
}

func insertCourse(ctx context.Context, exec sqlx.ExecerContext, course models.Course) (int64, error) {
	const query = `INSERT INTO courses (title, status, start_date, end_date, notes, enable_notifications, instructor_name, instructor_phone, instructor_email, term_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := exec.ExecContext(ctx, query,
		course.Title, course.Status, course.StartDate, course.EndDate, course.Notes,
		course.EnableNotifications, course.InstructorName, course.InstructorPhone, course.InstructorEmail,
		course.TermID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
