package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/term-tracker/internal/dto"
	appErrors "github.com/noah-isme/term-tracker/pkg/errors"
	"github.com/noah-isme/term-tracker/pkg/response"
)

type pendingReminderService interface {
	Pending(ctx context.Context, until time.Time) (*dto.PendingReminders, error)
}

// ReminderHandler exposes outstanding reminders.
type ReminderHandler struct {
	service pendingReminderService
	now     func() time.Time
}

// NewReminderHandler constructs a reminder handler.
func NewReminderHandler(svc pendingReminderService) *ReminderHandler {
	return &ReminderHandler{service: svc, now: time.Now}
}

// Pending godoc
// @Summary List pending reminders
// @Description Reminders due on or before `until` (RFC3339, defaults to now). Requires the redis backend.
// @Tags Reminders
// @Produce json
// @Param until query string false "RFC3339 instant"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reminders/pending [get]
func (h *ReminderHandler) Pending(c *gin.Context) {
	until := h.now()
	if raw := c.Query("until"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "until must be RFC3339"))
			return
		}
		until = parsed
	}
	result, err := h.service.Pending(c.Request.Context(), until)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
