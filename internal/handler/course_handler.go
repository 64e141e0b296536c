package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/strive-cao-api/internal/models"
	"github.com/noah-isme/strive-cao-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context) ([]models.Course, bool, error)
}

// CourseHandler exposes the course catalog.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List godoc
// @Summary List catalog courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, cacheHit, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, courses, cacheHit)
}
