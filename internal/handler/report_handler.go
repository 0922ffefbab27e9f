package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/term-tracker/internal/dto"
	"github.com/noah-isme/term-tracker/internal/service"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
	"github.com/noah-isme/term-tracker/pkg/export"
	"github.com/noah-isme/term-tracker/pkg/response"
)

type reportService interface {
	ParseRange(rawFrom, rawTo string) (time.Time, time.Time, error)
	CourseStartDates(ctx context.Context, from, to time.Time) (*dto.CourseStartReport, error)
	Export(ctx context.Context, from, to time.Time, format export.Format) (*service.ReportFile, error)
}

// ReportHandler exposes the course start date report.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// CourseStart godoc
// @Summary Course start date report
// @Description Lists courses whose start date falls within [from, to]. Both bounds default to the current month.
// @Tags Reports
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Param from query string false "First day (yyyy-MM-dd)"
// @Param to query string false "Last day (yyyy-MM-dd)"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/course-start [get]
func (h *ReportHandler) CourseStart(c *gin.Context) {
	var query dto.CourseStartReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	from, to, err := h.service.ParseRange(query.From, query.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := strings.ToLower(strings.TrimSpace(query.Format))
	if format == "" || format == "json" {
		result, err := h.service.CourseStartDates(c.Request.Context(), from, to)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, result)
		return
	}

	file, err := h.service.Export(c.Request.Context(), from, to, export.Format(format))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
