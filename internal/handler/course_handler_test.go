package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

type fakeCourseSrv struct {
	courses []models.Course
	hit     bool
	err     error
}

func (f *fakeCourseSrv) List(context.Context) ([]models.Course, bool, error) {
	return f.courses, f.hit, f.err
}

func TestCourseHandlerList(t *testing.T) {
	h := NewCourseHandler(&fakeCourseSrv{courses: []models.Course{{ID: "X", Title: "Science", Points: 300, Category: "stem"}}, hit: true})
	c, rec := newTestContext(http.MethodGet, "/courses", nil)

	h.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []models.Course
	env := decodeEnvelope(t, rec, &body)
	assert.Equal(t, true, env.Meta["cache_hit"])
	require.Len(t, body, 1)
	assert.Equal(t, "Science", body[0].Title)
}

func TestCourseHandlerListError(t *testing.T) {
	h := NewCourseHandler(&fakeCourseSrv{err: errors.New("boom")})
	c, rec := newTestContext(http.MethodGet, "/courses", nil)

	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
