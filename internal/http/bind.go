package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bindJSONOrEmpty decodes the request body into a T. Malformed JSON yields the
// zero T. A body cut off by the size limit aborts with 413 and ok=false.
func bindJSONOrEmpty[T any](c *gin.Context, logger *slog.Logger) (form T, ok bool) {
	err := c.ShouldBindJSON(&form)
	if err == nil {
		return form, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		logger.WarnContext(c.Request.Context(), "request body over limit",
			"path", c.Request.URL.Path,
			"limit", tooLarge.Limit,
		)
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
		return form, false
	}

	logger.DebugContext(c.Request.Context(), "ignoring malformed JSON body", "path", c.Request.URL.Path, "error", err)
	var empty T
	return empty, true
}
