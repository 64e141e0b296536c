package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/strive-cao-api/internal/models"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
)

type courseSource interface {
	List(ctx context.Context) ([]models.Course, error)
}

// CourseService serves the read-only course catalog.
type CourseService struct {
	source courseSource
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewCourseService constructs CourseService over a database or file source.
func NewCourseService(source courseSource, cache *CacheService, ttl time.Duration, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CourseService{source: source, cache: cache, ttl: ttl, logger: logger}
}

// List returns the catalog and whether it was served from cache.
func (s *CourseService) List(ctx context.Context) ([]models.Course, bool, error) {
	var cached []models.Course
	if hit, err := s.cache.Get(ctx, cacheKeyCatalog, &cached); err == nil && hit {
		return cached, true, nil
	}

	courses, err := s.source.List(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course catalog")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	_ = s.cache.Set(ctx, cacheKeyCatalog, courses, s.ttl)
	return courses, false, nil
}
