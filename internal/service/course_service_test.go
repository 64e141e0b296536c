package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/strive-cao-api/internal/models"
)

type fakeCourseSource struct {
	courses []models.Course
	err     error
	calls   int
}

func (f *fakeCourseSource) List(context.Context) ([]models.Course, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.courses, nil
}

func TestCourseServiceListCaches(t *testing.T) {
	source := &fakeCourseSource{courses: []models.Course{{ID: "X", Title: "Science", Points: 300, Category: "stem"}}}
	cache := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewCourseService(source, cache, time.Hour, zap.NewNop())
	ctx := context.Background()

	courses, hit, err := svc.List(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, courses, 1)

	courses, hit, err = svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "X", courses[0].ID)
	assert.Equal(t, 1, source.calls)
}

func TestCourseServiceEmptyAndError(t *testing.T) {
	svc := NewCourseService(&fakeCourseSource{}, nil, 0, nil)
	courses, _, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	svc = NewCourseService(&fakeCourseSource{err: errors.New("boom")}, nil, 0, nil)
	_, _, err = svc.List(context.Background())
	require.Error(t, err)
}
