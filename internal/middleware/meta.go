package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/strive-cao-api/pkg/middleware/requestid"
	"github.com/noah-isme/strive-cao-api/pkg/response"
)

const (
	responseMetaKey = "response_meta"
	requestStartKey = "response_started_at"
)

// WithResponseMeta starts the clock for processing_time_ms and seeds the
// response meta with the request id.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, &response.Meta{RequestID: requestid.Value(c)})
		c.Next()
	}
}

// SetCacheHit records whether the payload was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	meta(c).CacheHit = &hit
}

// SetStudentID records the student the response is about.
func SetStudentID(c *gin.Context, studentID string) {
	meta(c).StudentID = studentID
}

// SetCohortSize records how many students the percentiles were ranked against.
func SetCohortSize(c *gin.Context, size int) {
	meta(c).CohortSize = &size
}

// Meta returns the accumulated meta with the elapsed processing time filled
// in. It is nil when nothing was recorded for the request.
func Meta(c *gin.Context) *response.Meta {
	value, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	m, ok := value.(*response.Meta)
	if !ok {
		return nil
	}
	if started, ok := c.Get(requestStartKey); ok {
		if t, ok := started.(time.Time); ok {
			m.ProcessingTimeMs = time.Since(t).Milliseconds()
		}
	}
	return m
}

func meta(c *gin.Context) *response.Meta {
	if value, exists := c.Get(responseMetaKey); exists {
		if m, ok := value.(*response.Meta); ok {
			return m
		}
	}
	m := &response.Meta{RequestID: requestid.Value(c)}
	c.Set(responseMetaKey, m)
	return m
}
