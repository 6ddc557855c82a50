package http

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/memoapi/internal/apipaths"
)

const healthPingTimeout = 2 * time.Second

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Auth routes sit under the public prefix
	s.engine.POST(apipaths.AuthRegister, s.register)
	s.engine.POST(apipaths.AuthLogin, s.login)
	s.engine.GET(apipaths.AuthUser, s.getUser)
	s.engine.POST(apipaths.AuthLogout, s.logout)
	s.engine.GET(apipaths.AuthGitHub, s.githubRedirect)

	// Health check endpoint (no auth required)
	s.engine.GET(apipaths.Health, s.health)
	s.engine.GET(apipaths.Metrics, gin.WrapH(s.metrics.Handler()))

	// Memo routes - identity set by authMiddleware
	memos := s.engine.Group(apipaths.Memos)
	memos.Use(requireUser())
	{
		memos.GET("", s.listMemos)
		memos.POST("", s.createMemo)
		memos.PUT("/:id", s.updateMemo)
		memos.DELETE("/:id", s.deleteMemo)
	}

	// Serve frontend static files
	s.engine.GET("/", func(c *gin.Context) {
		s.serveStatic(c, "/index.html")
	})
	s.engine.NoRoute(func(c *gin.Context) {
		s.serveStatic(c, c.Request.URL.Path)
	})
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	if err := s.database.Ping(ctx); err != nil {
		s.logger.ErrorContext(ctx, "health check database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": "memo-api",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "memo-api",
	})
}

// serveStatic serves <static dir><requestPath>; cleaning a rooted path keeps it inside the directory
func (s *Server) serveStatic(c *gin.Context, requestPath string) {
	cleaned := path.Clean("/" + requestPath)
	file := filepath.Join(s.config.StaticDir, filepath.FromSlash(cleaned))

	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}

	f, err := os.Open(file)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	defer f.Close()

	// ServeContent rather than ServeFile: no index.html or trailing-slash redirects
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
