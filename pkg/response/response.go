package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
	"github.com/noah-isme/strive-cao-api/pkg/middleware/requestid"
)

// Meta describes how a response was produced. Pointer fields are omitted
// unless the endpoint set them.
type Meta struct {
	RequestID        string `json:"request_id,omitempty"`
	StudentID        string `json:"student_id,omitempty"`
	CacheHit         *bool  `json:"cache_hit,omitempty"`
	CohortSize       *int   `json:"cohort_size,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

// Envelope is the body of every API response.
type Envelope struct {
	Data  interface{}      `json:"data,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
	Meta  *Meta            `json:"meta,omitempty"`
}

// JSON writes data with the given status. Responses are never cacheable by
// intermediaries since profiles change whenever a result is appended.
func JSON(c *gin.Context, status int, data interface{}, meta *Meta) {
	noStore(c)
	c.JSON(status, Envelope{Data: data, Meta: meta})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}, meta *Meta) {
	JSON(c, http.StatusOK, data, meta)
}

// Created responds with HTTP 201.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

// Error converts err to the common structure and tags it with the request id.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	var meta *Meta
	if id := requestid.Value(c); id != "" {
		meta = &Meta{RequestID: id}
	}
	c.JSON(appErr.Status, Envelope{Error: appErr, Meta: meta})
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
