package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/strive-cao-api/internal/middleware"
	"github.com/noah-isme/strive-cao-api/internal/models"
	"github.com/noah-isme/strive-cao-api/internal/service"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
	"github.com/noah-isme/strive-cao-api/pkg/response"
)

type resultService interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.ResultRecord, error)
	Append(ctx context.Context, req service.AppendResultRequest) (*models.ResultRecord, error)
}

// ResultHandler exposes a student's raw results.
type ResultHandler struct {
	service resultService
}

// NewResultHandler constructs ResultHandler.
func NewResultHandler(service resultService) *ResultHandler {
	return &ResultHandler{service: service}
}

// List godoc
// @Summary List student results
// @Tags Results
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/results [get]
func (h *ResultHandler) List(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	results, err := h.service.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetStudentID(c, studentID)
	response.OK(c, results, middleware.Meta(c))
}

// Append godoc
// @Summary Record a result for a student
// @Tags Results
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.ResultInput true "Result payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/{id}/results [post]
func (h *ResultHandler) Append(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	var input service.ResultInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Append(c.Request.Context(), service.AppendResultRequest{StudentID: studentID, ResultInput: input})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}
