package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/strive-cao-api/internal/dto"
	"github.com/noah-isme/strive-cao-api/internal/middleware"
	"github.com/noah-isme/strive-cao-api/pkg/response"
)

type profileService interface {
	Profile(ctx context.Context, studentID string) (*dto.ProfileResponse, bool, error)
	Recommendations(ctx context.Context, studentID string) (*dto.RecommendationsResponse, bool, error)
}

// ProfileHandler serves computed student profiles and course matches.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(service profileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Profile godoc
// @Summary Student top-6 profile and CAO points
// @Tags Profiles
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/profile [get]
func (h *ProfileHandler) Profile(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	profile, cacheHit, err := h.service.Profile(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetStudentID(c, studentID)
	respondCached(c, profile, cacheHit)
}

// Recommendations godoc
// @Summary Courses reachable with the student's points
// @Tags Profiles
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/recommendations [get]
func (h *ProfileHandler) Recommendations(c *gin.Context) {
	studentID, ok := studentIDParam(c)
	if !ok {
		return
	}
	recs, cacheHit, err := h.service.Recommendations(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetStudentID(c, studentID)
	middleware.SetCohortSize(c, recs.CohortSize)
	respondCached(c, recs, cacheHit)
}
