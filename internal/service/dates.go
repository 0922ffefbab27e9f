package service

import (
	"strings"
	"time"

	"github.com/noah-isme/term-tracker/internal/models"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
)

// parseDate reads a yyyy-MM-dd calendar date in the server's local zone.
func parseDate(field, raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, field+" must use the yyyy-MM-dd format")
	}
	return parsed, nil
}

// parseDateRange parses both ends and requires start on or before end.
func parseDateRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, err := parseDate("start_date", rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate("end_date", rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "start_date must be on or before end_date")
	}
	return start, end, nil
}
