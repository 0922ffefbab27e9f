package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/internal/dto"
	"github.com/noah-isme/term-tracker/internal/models"
	"github.com/noah-isme/term-tracker/internal/report"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
	"github.com/noah-isme/term-tracker/pkg/export"
)

const summaryDateLayout = "01/02/2006"

type reportStore interface {
	GetAllTerms(ctx context.Context) ([]models.Term, error)
	GetAllCourses(ctx context.Context) ([]models.Course, error)
}

// ReportFile is a rendered report ready for download.
type ReportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService builds the course start date report.
type ReportService struct {
	store  reportStore
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(store reportStore, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{store: store, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ParseRange reads yyyy-MM-dd bounds. A missing bound defaults to the matching end of the
// current month.
func (s *ReportService) ParseRange(rawFrom, rawTo string) (time.Time, time.Time, error) {
	from, to := report.CurrentMonth(s.now().In(time.Local))
	var err error
	if strings.TrimSpace(rawFrom) != "" {
		if from, err = parseDate("from", rawFrom); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if strings.TrimSpace(rawTo) != "" {
		if to, err = parseDate("to", rawTo); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

// CourseStartDates lists courses starting within [from, to] with a one-line summary.
func (s *ReportService) CourseStartDates(ctx context.Context, from, to time.Time) (*dto.CourseStartReport, error) {
	if models.DateOnly(from).After(models.DateOnly(to)) {
		return nil, appErrors.Clone(appErrors.ErrValidationRejected, "from date must not be after to date")
	}
	terms, err := s.store.GetAllTerms(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.store.GetAllCourses(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := report.Project(from, to, terms, courses)
	if err != nil {
		return nil, err
	}
	return &dto.CourseStartReport{
		From:    from.Format(models.DateLayout),
		To:      to.Format(models.DateLayout),
		Summary: Summary(len(rows), from, to),
		Count:   len(rows),
		Rows:    rows,
	}, nil
}

// Export renders the report in the requested format.
func (s *ReportService) Export(ctx context.Context, from, to time.Time, format export.Format) (*ReportFile, error) {
	result, err := s.CourseStartDates(ctx, from, to)
	if err != nil {
		return nil, err
	}
	dataset := reportDataset(result)

	var body []byte
	switch format {
	case export.FormatCSV:
		body, err = s.csv.Render(dataset)
	case export.FormatPDF:
		body, err = s.pdf.Render(dataset)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported report format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.logger.Info("report exported",
		zap.String("format", string(format)),
		zap.Int("rows", result.Count),
	)
	return &ReportFile{
		Filename:    fmt.Sprintf("course-start_%s_%s.%s", result.From, result.To, format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// Summary renders the report headline.
func Summary(count int, from, to time.Time) string {
	return fmt.Sprintf("Found %d course(s) with StartDate between %s and %s.", count, from.Format(summaryDateLayout), to.Format(summaryDateLayout))
}

func reportDataset(result *dto.CourseStartReport) export.Dataset {
	rows := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, []string{
			row.Title,
			row.Status.String(),
			row.StartDate.Format(models.DateLayout),
			row.EndDate.Format(models.DateLayout),
			row.TermTitle,
		})
	}
	return export.Dataset{
		Title:   "Course Start Date Report",
		Caption: result.Summary,
		Headers: []string{"Title", "Status", "Start Date", "End Date", "Term"},
		Rows:    rows,
	}
}
