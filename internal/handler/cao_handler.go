package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/strive-cao-api/internal/dto"
	"github.com/noah-isme/strive-cao-api/internal/service"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
	"github.com/noah-isme/strive-cao-api/pkg/response"
)

type calculatorService interface {
	Points(percent float64, level string) (*dto.PointsResponse, error)
	Calculate(ctx context.Context, req service.CalculateRequest) (*dto.CalculateResponse, error)
}

// CAOHandler exposes stateless points calculations.
type CAOHandler struct {
	service calculatorService
}

// NewCAOHandler constructs CAOHandler.
func NewCAOHandler(service calculatorService) *CAOHandler {
	return &CAOHandler{service: service}
}

// Points godoc
// @Summary Convert a percentage to CAO points
// @Tags CAO
// @Produce json
// @Param percent query number true "Average percentage"
// @Param level query string true "Higher, Ordinary or LCVP"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cao/points [get]
func (h *CAOHandler) Points(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("percent"))
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "percent is required"))
		return
	}
	percent, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "percent must be a number"))
		return
	}
	result, err := h.service.Points(percent, c.Query("level"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result, nil)
}

// Calculate godoc
// @Summary Score a list of results and match courses
// @Tags CAO
// @Accept json
// @Produce json
// @Param payload body service.CalculateRequest true "Results to score"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cao/calculate [post]
func (h *CAOHandler) Calculate(c *gin.Context) {
	var req service.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result, nil)
}
