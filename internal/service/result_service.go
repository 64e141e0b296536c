package service

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/strive-cao-api/internal/models"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
	"github.com/noah-isme/strive-cao-api/pkg/middleware/requestid"
)

type resultStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.ResultRecord, error)
	Append(ctx context.Context, result *models.ResultRecord) error
}

// ResultInput is a raw result as submitted by the test or result-entry flows.
type ResultInput struct {
	Subject string   `json:"subject" validate:"required,max=128"`
	Topic   string   `json:"topic" validate:"max=256"`
	Score   *float64 `json:"score" validate:"required,gte=0"`
	Total   *float64 `json:"total" validate:"omitempty,gte=0"`
	Level   string   `json:"level" validate:"required"`
}

// AppendResultRequest records a result for a student.
type AppendResultRequest struct {
	StudentID string `json:"-" validate:"required,max=128"`
	ResultInput
}

// ResultService validates and stores result records.
type ResultService struct {
	store     resultStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultService constructs ResultService.
func NewResultService(store resultStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{store: store, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// ListByStudent returns a student's stored records.
func (s *ResultService) ListByStudent(ctx context.Context, studentID string) ([]models.ResultRecord, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	results, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	return results, nil
}

// Append validates the payload, normalises its level and stores it. The
// student's cached profile and the cohort ranking are invalidated.
func (s *ResultService) Append(ctx context.Context, req AppendResultRequest) (*models.ResultRecord, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	record, err := s.toRecord(req.ResultInput)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	record.StudentID = req.StudentID

	if err := s.store.Append(ctx, &record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store result")
	}
	s.metrics.ObserveResultAppended(record.Level)
	_ = s.cache.Invalidate(ctx, profileCacheKey(record.StudentID), cacheKeyCohort)

	s.logger.Info("result appended",
		zap.String("student_id", record.StudentID),
		zap.String("subject", record.Subject),
		zap.String("level", string(record.Level)),
		zap.String("request_id", requestid.FromContext(ctx)),
	)
	return &record, nil
}

// ToRecords validates a batch of inputs for stateless scoring.
func (s *ResultService) ToRecords(inputs []ResultInput) ([]models.ResultRecord, error) {
	records := make([]models.ResultRecord, 0, len(inputs))
	for _, in := range inputs {
		record, err := s.toRecord(in)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *ResultService) toRecord(in ResultInput) (models.ResultRecord, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	if err := s.validator.Struct(in); err != nil {
		return models.ResultRecord{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	if !finite(*in.Score) || (in.Total != nil && !finite(*in.Total)) {
		return models.ResultRecord{}, appErrors.Clone(appErrors.ErrValidation, "score and total must be finite numbers")
	}
	level, ok := models.ParseLevel(in.Level)
	if !ok {
		return models.ResultRecord{}, appErrors.Clone(appErrors.ErrValidation, "level must be one of Higher, Ordinary, LCVP")
	}
	record := models.ResultRecord{
		Subject: in.Subject,
		Topic:   strings.TrimSpace(in.Topic),
		Score:   *in.Score,
		Total:   models.DefaultResultTotal,
		Level:   level,
	}
	if in.Total != nil && *in.Total > 0 {
		record.Total = *in.Total
	}
	return record, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
