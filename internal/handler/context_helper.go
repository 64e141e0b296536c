package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/strive-cao-api/internal/middleware"
	appErrors "github.com/noah-isme/strive-cao-api/pkg/errors"
	"github.com/noah-isme/strive-cao-api/pkg/response"
)

func studentIDParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return "", false
	}
	return id, true
}

func respondCached(c *gin.Context, data interface{}, cacheHit bool) {
	middleware.SetCacheHit(c, cacheHit)
	response.OK(c, data, middleware.Meta(c))
}
