package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/strive-cao-api/internal/dto"
	"github.com/noah-isme/strive-cao-api/internal/models"
	"github.com/noah-isme/strive-cao-api/pkg/cao"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
)

type resultReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.ResultRecord, error)
	ListAll(ctx context.Context) ([]models.StudentResults, error)
}

type catalogReader interface {
	List(ctx context.Context) ([]models.Course, bool, error)
}

type recordConverter interface {
	ToRecords(inputs []ResultInput) ([]models.ResultRecord, error)
}

// ProfileServiceConfig tunes aggregation and caching.
type ProfileServiceConfig struct {
	CacheTTL         time.Duration
	FoldSubjectNames bool
	CohortWorkers    int
}

// ProfileServiceParams groups constructor dependencies.
type ProfileServiceParams struct {
	Results   resultReader
	Catalog   catalogReader
	Converter recordConverter
	Cache     *CacheService
	Metrics   *MetricsService
	Logger    *zap.Logger
	Config    ProfileServiceConfig
}

// ProfileService runs the points pipeline over stored or posted results.
type ProfileService struct {
	results   resultReader
	catalog   catalogReader
	converter recordConverter
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ProfileServiceConfig
}

// CalculateRequest scores an ad-hoc list of results.
type CalculateRequest struct {
	Results []ResultInput `json:"results"`
}

// NewProfileService constructs a ProfileService with sane defaults.
func NewProfileService(params ProfileServiceParams) *ProfileService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.CohortWorkers <= 0 {
		cfg.CohortWorkers = 4
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		results:   params.Results,
		catalog:   params.Catalog,
		converter: params.Converter,
		cache:     params.Cache,
		metrics:   params.Metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Points converts a single percentage at a level.
func (s *ProfileService) Points(percent float64, rawLevel string) (*dto.PointsResponse, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "percent must be a finite number")
	}
	level, ok := models.ParseLevel(rawLevel)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "level must be one of Higher, Ordinary, LCVP")
	}
	return &dto.PointsResponse{Percent: percent, Level: level, Points: cao.PointsFor(percent, level)}, nil
}

// Profile returns a student's top-6 profile and whether it came from cache.
// A student without results gets an empty profile.
func (s *ProfileService) Profile(ctx context.Context, studentID string) (*dto.ProfileResponse, bool, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}

	key := profileCacheKey(studentID)
	var cached dto.ProfileResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, true, nil
	}

	records, err := s.results.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	profile := s.aggregate(records)
	resp := toProfileResponse(studentID, profile)
	s.metrics.ObserveProfile(resp.TotalPoints)
	_ = s.cache.Set(ctx, key, resp, s.cfg.CacheTTL)

	s.logger.Debug("profile computed",
		zap.String("student_id", studentID),
		zap.Int("records", len(records)),
		zap.Int("total_points", resp.TotalPoints),
	)
	return resp, false, nil
}

// Recommendations matches the student's profile against the catalog and
// ranks the student within each matched course's category cohort. The cache
// flag is true only when the profile, the catalog and, if consulted, the
// cohort were all served from cache.
func (s *ProfileService) Recommendations(ctx context.Context, studentID string) (*dto.RecommendationsResponse, bool, error) {
	profile, profileHit, err := s.Profile(ctx, studentID)
	if err != nil {
		return nil, false, err
	}
	catalog, catalogHit, err := s.catalog.List(ctx)
	if err != nil {
		return nil, false, err
	}
	hit := profileHit && catalogHit
	matched := cao.Recommend(profile.Top6, profile.TotalPoints, catalog)

	resp := &dto.RecommendationsResponse{
		StudentID:   profile.StudentID,
		TotalPoints: profile.TotalPoints,
		Courses:     make([]models.CourseRecommendation, 0, len(matched)),
	}
	if len(matched) == 0 {
		return resp, hit, nil
	}

	cohort, cohortHit, err := s.Cohort(ctx)
	if err != nil {
		return nil, false, err
	}
	hit = hit && cohortHit
	resp.CohortSize = len(cohort)
	for _, course := range matched {
		category := models.Category(strings.ToLower(course.Category))
		var totals []int
		for _, entry := range cohort {
			if hasCategory(entry.Categories, category) {
				totals = append(totals, entry.TotalPoints)
			}
		}
		rec := models.CourseRecommendation{Course: course}
		if p, ok := cao.Percentile(profile.TotalPoints, totals); ok {
			rec.Percentile = &p
		}
		resp.Courses = append(resp.Courses, rec)
	}
	return resp, hit, nil
}

// Calculate scores posted results without touching storage.
func (s *ProfileService) Calculate(ctx context.Context, req CalculateRequest) (*dto.CalculateResponse, error) {
	records, err := s.converter.ToRecords(req.Results)
	if err != nil {
		return nil, err
	}
	catalog, _, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	profile := s.aggregate(records)
	s.metrics.ObserveProfile(profile.TotalPoints)
	return &dto.CalculateResponse{
		Profile: *toProfileResponse("", profile),
		Courses: cao.Recommend(profile.Top6, profile.TotalPoints, catalog),
	}, nil
}

// Cohort returns every student's total and categories, ordered by student id.
// Profiles are aggregated concurrently with at most CohortWorkers goroutines.
// The flag reports whether the cohort came from cache.
func (s *ProfileService) Cohort(ctx context.Context) ([]dto.CohortEntry, bool, error) {
	var cached []dto.CohortEntry
	if hit, err := s.cache.Get(ctx, cacheKeyCohort, &cached); err == nil && hit {
		return cached, true, nil
	}

	students, err := s.results.ListAll(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort results")
	}

	entries := make([]dto.CohortEntry, len(students))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.CohortWorkers)
	for i := range students {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profile := s.aggregate(students[i].Results)
			entries[i] = dto.CohortEntry{
				StudentID:   students[i].StudentID,
				TotalPoints: profile.TotalPoints,
				Categories:  sortedCategories(profile.Top6),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "cohort ranking interrupted")
	}

	_ = s.cache.Set(ctx, cacheKeyCohort, entries, s.cfg.CacheTTL)
	return entries, false, nil
}

func (s *ProfileService) aggregate(records []models.ResultRecord) models.StudentProfile {
	if s.cfg.FoldSubjectNames {
		return cao.Aggregate(records, cao.WithSubjectFolding())
	}
	return cao.Aggregate(records)
}

func toProfileResponse(studentID string, profile models.StudentProfile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		StudentID:   studentID,
		Top6:        profile.Top6,
		TotalPoints: profile.TotalPoints,
		Categories:  sortedCategories(profile.Top6),
	}
}

func sortedCategories(subjects []models.SubjectAggregate) []models.Category {
	set := cao.Categories(subjects)
	out := make([]models.Category, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func hasCategory(categories []models.Category, target models.Category) bool {
	for _, c := range categories {
		if c == target {
			return true
		}
	}
	return false
}
