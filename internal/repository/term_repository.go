package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

const termColumns = `id, title, start_date, end_date`

// AddTerm inserts a term and returns its store-assigned id.
func (s *Store) AddTerm(ctx context.Context, title string, startDate, endDate time.Time) (int64, error) {
	if err := s.Initialize(ctx); err != nil {
		return 0, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	id, err := insertTerm(ctx, s.db, title, startDate, endDate)
	if err != nil {
		return 0, appErrors.Unavailable(err, "failed to add term")
	}
	return id, nil
}

// GetTerm loads a term by id.
func (s *Store) GetTerm(ctx context.Context, id int64) (*models.Term, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	var term models.Term
	if err := s.db.GetContext(ctx, &term, `SELECT `+termColumns+` FROM terms WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Unavailable(err, "failed to load term")
	}
	return &term, nil
}

// GetAllTerms returns every term in insertion order.
func (s *Store) GetAllTerms(ctx context.Context) ([]models.Term, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	terms := []models.Term{}
	if err := s.db.SelectContext(ctx, &terms, `SELECT `+termColumns+` FROM terms ORDER BY id`); err != nil {
		return nil, appErrors.Unavailable(err, "failed to list terms")
	}
	return terms, nil
}

// UpdateTerm replaces every field of an existing term.
func (s *Store) UpdateTerm(ctx context.Context, id int64, title string, startDate, endDate time.Time) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var term models.Term
	if err := s.db.GetContext(ctx, &term, `SELECT `+termColumns+` FROM terms WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return appErrors.Unavailable(err, "failed to load term")
	}

	term.ID = id
	term.Title = title
	term.StartDate = startDate
	term.EndDate = endDate

	const query = `UPDATE terms SET id = ?, title = ?, start_date = ?, end_date = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, term.ID, term.Title, term.StartDate, term.EndDate, id); err != nil {
		return appErrors.Unavailable(err, "failed to update term")
	}
	return nil
}

// DeleteTerm removes the term, its courses and their assessments.
// An absent id is not an error; the summary is simply empty.
func (s *Store) DeleteTerm(ctx context.Context, id int64) (*models.DeletionSummary, error) {
	if err := s.Initialize(ctx); err != nil {
		return nil, err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	summary := &models.DeletionSummary{}
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var courseIDs []int64
		if err := tx.SelectContext(ctx, &courseIDs, `SELECT id FROM courses WHERE term_id = ? ORDER BY id`, id); err != nil {
			return err
		}
		for _, courseID := range courseIDs {
			if err := deleteCourseTx(ctx, tx, courseID, summary); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM terms WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			summary.TermIDs = append(summary.TermIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.Unavailable(err, "failed to delete term")
	}

	s.logger.Debug("term deleted",
		zap.Int64("term_id", id),
		zap.Int("courses", len(summary.CourseIDs)),
		zap.Int("assessments", len(summary.AssessmentIDs)),
	)
	return summary, nil
}

func insertTerm(ctx context.Context, exec sqlx.ExecerContext, title string, startDate, endDate time.Time) (int64, error) {
	res, err := exec.ExecContext(ctx, `INSERT INTO terms (title, start_date, end_date) VALUES (?, ?, ?)`, title, startDate, endDate)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
