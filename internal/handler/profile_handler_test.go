package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/strive-cao-api/internal/dto"
	"github.com/noah-isme/strive-cao-api/internal/middleware"
	"github.com/noah-isme/strive-cao-api/internal/models"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
)

type fakeProfileSrv struct {
	profile *dto.ProfileResponse
	recs    *dto.RecommendationsResponse
	hit     bool
	err     error
}

func (f *fakeProfileSrv) Profile(context.Context, string) (*dto.ProfileResponse, bool, error) {
	return f.profile, f.hit, f.err
}

func (f *fakeProfileSrv) Recommendations(context.Context, string) (*dto.RecommendationsResponse, bool, error) {
	return f.recs, f.hit, f.err
}

func TestProfileHandlerProfileReportsCacheHit(t *testing.T) {
	h := NewProfileHandler(&fakeProfileSrv{
		profile: &dto.ProfileResponse{StudentID: "stu-1", TotalPoints: 125, Top6: []models.SubjectAggregate{{Subject: "Maths", Points: 125}}},
		hit:     true,
	})
	c, rec := newTestContext(http.MethodGet, "/students/stu-1/profile", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}
	middleware.WithResponseMeta()(c)

	h.Profile(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.ProfileResponse
	env := decodeEnvelope(t, rec, &body)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Equal(t, "stu-1", env.Meta["student_id"])
	assert.NotContains(t, env.Meta, "cohort_size")
	assert.Equal(t, 125, body.TotalPoints)
	assert.Equal(t, "Maths", body.Top6[0].Subject)
}

func TestProfileHandlerRecommendations(t *testing.T) {
	p := 50
	h := NewProfileHandler(&fakeProfileSrv{recs: &dto.RecommendationsResponse{
		StudentID:   "stu-1",
		TotalPoints: 300,
		CohortSize:  2,
		Courses:     []models.CourseRecommendation{{Course: models.Course{ID: "X", Points: 300, Category: "stem"}, Percentile: &p}},
	}})
	c, rec := newTestContext(http.MethodGet, "/students/stu-1/recommendations", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}

	h.Recommendations(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.RecommendationsResponse
	env := decodeEnvelope(t, rec, &body)
	assert.Equal(t, false, env.Meta["cache_hit"])
	assert.Equal(t, "stu-1", env.Meta["student_id"])
	assert.Equal(t, float64(2), env.Meta["cohort_size"])
	require.Len(t, body.Courses, 1)
	assert.Equal(t, "X", body.Courses[0].ID)
	assert.Equal(t, 50, *body.Courses[0].Percentile)
}

func TestProfileHandlerErrors(t *testing.T) {
	h := NewProfileHandler(&fakeProfileSrv{err: appErrors.ErrInternal})
	c, rec := newTestContext(http.MethodGet, "/students/stu-1/profile", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}

	h.Profile(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
