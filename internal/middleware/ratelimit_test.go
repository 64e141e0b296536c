package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(max, window))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doRequest(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitRejectsBurstOverflow(t *testing.T) {
	r := newLimitedRouter(2, time.Hour)

	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1000").Code)

	rec := doRequest(r, "10.0.0.1:1000")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Error.Code)
}

func TestRateLimitIsPerClient(t *testing.T) {
	r := newLimitedRouter(1, time.Hour)

	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.2:1000").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := newLimitedRouter(0, time.Minute)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1000").Code)
	}
}
