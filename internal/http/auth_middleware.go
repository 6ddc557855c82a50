package http

import (
	"log/slog"
	"net/http"
	"regexp"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/memoapi/internal/apipaths"
	"github.com/memoapi/internal/httputil"
	"github.com/memoapi/internal/metrics"
	"github.com/memoapi/internal/supabase"
)

// userIDKey is the gin context key holding the authenticated user id
const userIDKey = "user_id"

// publicPathPatterns skip authentication entirely
var publicPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/$`),
	regexp.MustCompile(`^/favicon\.ico$`),
	regexp.MustCompile(`^` + regexp.QuoteMeta(apipaths.AuthPrefix)),
	regexp.MustCompile(`\.html$`),
	regexp.MustCompile(`\.css$`),
	regexp.MustCompile(`\.js$`),
	regexp.MustCompile(`^` + regexp.QuoteMeta(apipaths.Health) + `$`),
	regexp.MustCompile(`^` + regexp.QuoteMeta(apipaths.Metrics) + `$`),
}

// isPublicPath reports whether a request path bypasses authentication
func isPublicPath(path string) bool {
	return slices.ContainsFunc(publicPathPatterns, func(re *regexp.Regexp) bool {
		return re.MatchString(path)
	})
}

// authMiddleware resolves the bearer token through the identity provider on every
// private request and stores the user id in the gin context. There is no caching:
// each private request costs one provider round trip.
func authMiddleware(provider AuthProvider, m *metrics.Metrics, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isPublicPath(c.Request.URL.Path) {
			m.RecordAuth(metrics.AuthPublic)
			c.Next()
			return
		}

		token, ok := httputil.BearerToken(c)
		if !ok {
			logger.WarnContext(c.Request.Context(), "missing or invalid Authorization header",
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
			)
			m.RecordAuth(metrics.AuthMissingToken)
			abortUnauthorized(c)
			return
		}

		result := provider.ResolveUser(c.Request.Context(), token)
		userID, ok := result.ID()
		if !ok {
			logger.WarnContext(c.Request.Context(), "identity provider rejected token",
				"status", result.Status,
				"message", result.ErrorMessage(),
				"subject", supabase.TokenSubject(token),
				"request_id", c.GetString(requestIDKey),
			)
			m.RecordAuth(metrics.AuthRejected)
			abortUnauthorized(c)
			return
		}

		m.RecordAuth(metrics.AuthAllowed)
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
}

// requireUser rejects requests that reached an identity-scoped route without a
// resolved user. The suffix patterns (\.js$ and friends) also match API paths such
// as /api/memos/1.js, which authMiddleware lets through as public.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(userIDKey); !ok {
			abortUnauthorized(c)
			return
		}
		c.Next()
	}
}

// userIDFromContext returns the id stored by authMiddleware.
// Routes reading it sit behind requireUser, so absence panics.
func userIDFromContext(c *gin.Context) string {
	return c.MustGet(userIDKey).(string)
}
