package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/strive-cao-api/internal/dto"
	"github.com/noah-isme/strive-cao-api/internal/models"
	"github.com/noah-isme/strive-cao-api/internal/service"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
)

type fakeCalculator struct {
	lastPercent float64
	lastLevel   string
	lastReq     service.CalculateRequest
	calcResp    *dto.CalculateResponse
	err         error
}

func (f *fakeCalculator) Points(percent float64, level string) (*dto.PointsResponse, error) {
	f.lastPercent, f.lastLevel = percent, level
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PointsResponse{Percent: percent, Level: models.LevelHigher, Points: 100}, nil
}

func (f *fakeCalculator) Calculate(_ context.Context, req service.CalculateRequest) (*dto.CalculateResponse, error) {
	f.lastReq = req
	return f.calcResp, f.err
}

func TestCAOHandlerPoints(t *testing.T) {
	svc := &fakeCalculator{}
	h := NewCAOHandler(svc)
	c, rec := newTestContext(http.MethodGet, "/cao/points?percent=95.5&level=H", nil)

	h.Points(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.PointsResponse
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, 100, body.Points)
	assert.Equal(t, 95.5, svc.lastPercent)
	assert.Equal(t, "H", svc.lastLevel)
}

func TestCAOHandlerPointsRejectsBadPercent(t *testing.T) {
	h := NewCAOHandler(&fakeCalculator{})
	for _, target := range []string{"/cao/points?level=H", "/cao/points?percent=abc&level=H"} {
		c, rec := newTestContext(http.MethodGet, target, nil)
		h.Points(c)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCAOHandlerPointsPropagatesValidation(t *testing.T) {
	h := NewCAOHandler(&fakeCalculator{err: appErrors.Clone(appErrors.ErrValidation, "bad level")})
	c, rec := newTestContext(http.MethodGet, "/cao/points?percent=50&level=X", nil)

	h.Points(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestCAOHandlerCalculate(t *testing.T) {
	svc := &fakeCalculator{calcResp: &dto.CalculateResponse{
		Profile: dto.ProfileResponse{TotalPoints: 300, Top6: []models.SubjectAggregate{}},
		Courses: []models.Course{{ID: "X", Points: 300, Category: "stem"}},
	}}
	h := NewCAOHandler(svc)
	payload := `{"results":[{"subject":"Biology","score":95,"level":"Higher"}]}`
	c, rec := newTestContext(http.MethodPost, "/cao/calculate", strings.NewReader(payload))

	h.Calculate(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.lastReq.Results, 1)
	assert.Equal(t, "Biology", svc.lastReq.Results[0].Subject)
	assert.Equal(t, 95.0, *svc.lastReq.Results[0].Score)
	var body dto.CalculateResponse
	decodeEnvelope(t, rec, &body)
	assert.Equal(t, 300, body.Profile.TotalPoints)
	assert.Equal(t, "X", body.Courses[0].ID)
}

func TestCAOHandlerCalculateMalformedJSON(t *testing.T) {
	h := NewCAOHandler(&fakeCalculator{})
	c, rec := newTestContext(http.MethodPost, "/cao/calculate", strings.NewReader("{"))

	h.Calculate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
