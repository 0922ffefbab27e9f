package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

// SeedOnce inserts the sample term, course and assessments the first time it is called on
// this store, and only when the term table is empty. It reports whether rows were inserted.
// The once-flag is flipped before any work, so a failed attempt is not retried.
func (s *Store) SeedOnce(ctx context.Context) (bool, error) {
	s.stateMu.Lock()
	if s.seeded {
		s.stateMu.Unlock()
		return false, nil
	}
	s.seeded = true
	s.stateMu.Unlock()

	if err := s.Initialize(ctx); err != nil {
		return false, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	inserted := false
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var terms int
		if err := tx.GetContext(ctx, &terms, `SELECT COUNT(*) FROM terms`); err != nil {
			return err
		}
		if terms > 0 {
			s.logger.Info("seed skipped, terms already present", zap.Int("terms", terms))
			return nil
		}

		termID, err := insertTerm(ctx, tx, "Term 1", seedDate(2025, time.April, 1), seedDate(2025, time.September, 30))
		if err != nil {
			return err
		}
		inserted = true
		return seedCourses(ctx, tx, termID)
	})
	if err != nil {
		return false, appErrors.Unavailable(err, "failed to seed store")
	}
	if inserted {
		s.logger.Info("seed data inserted")
	}
	return inserted, nil
}

func seedCourses(ctx context.Context, tx *sqlx.Tx, termID int64) error {
	var courses int
	if err := tx.GetContext(ctx, &courses, `SELECT COUNT(*) FROM courses`); err != nil {
		return err
	}
	if courses > 0 {
		return nil
	}

	courseID, err := insertCourse(ctx, tx, models.Course{
		Title:               "A101: Mobile App Dev - C#",
		Status:              models.CourseStatusActive,
		StartDate:           seedDate(2025, time.September, 1),
		EndDate:             seedDate(2025, time.October, 31),
		Notes:               "Learn mobile development using C#.",
		EnableNotifications: true,
		InstructorName:      "John Doe",
		InstructorPhone:     "555-123-4567",
		InstructorEmail:     "John.Doe@TheUniversity.edu",
		TermID:              termID,
	})
	if err != nil {
		return err
	}
	return seedAssessments(ctx, tx, courseID)
}

func seedAssessments(ctx context.Context, tx *sqlx.Tx, courseID int64) error {
	var assessments int
	if err := tx.GetContext(ctx, &assessments, `SELECT COUNT(*) FROM assessments`); err != nil {
		return err
	}
	if assessments > 0 {
		return nil
	}

	seeds := []models.Assessment{
		{
			Title:               "Performance Assessment 1",
			Type:                models.AssessmentTypePerformance,
			StartDate:           seedDate(2025, time.September, 1),
			EndDate:             seedDate(2025, time.September, 15),
			EnableNotifications: true,
			CourseID:            courseID,
		},
		{
			Title:               "Objective Assessment 1",
			Type:                models.AssessmentTypeObjective,
			StartDate:           seedDate(2025, time.September, 15),
			EndDate:             seedDate(2025, time.September, 30),
			EnableNotifications: false,
			CourseID:            courseID,
		},
	}
	for _, a := range seeds {
		if _, err := insertAssessment(ctx, tx, a); err != nil {
			return err
		}
	}
	return nil
}

func seedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
