package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/term-tracker/internal/dto"
	"github.com/noah-isme/term-tracker/pkg/response"
)

type adminService interface {
	Seed(ctx context.Context) (*dto.SeedResult, error)
	Clear(ctx context.Context) (*dto.ClearResult, error)
}

// AdminHandler exposes sample data maintenance endpoints.
type AdminHandler struct {
	service adminService
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(svc adminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// Seed godoc
// @Summary Insert sample data once
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/seed [post]
func (h *AdminHandler) Seed(c *gin.Context) {
	result, err := h.service.Seed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Clear godoc
// @Summary Remove every term, course and assessment
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/data [delete]
func (h *AdminHandler) Clear(c *gin.Context) {
	result, err := h.service.Clear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
