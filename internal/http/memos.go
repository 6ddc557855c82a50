package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoapi/internal/domain"
	"github.com/memoapi/internal/httputil"
)

const memoNotFoundMessage = "Memo not found"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// DeleteMemoResponse confirms a deletion
type DeleteMemoResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// listMemos returns the caller's memos, newest first
func (s *Server) listMemos(c *gin.Context) {
	userID := userIDFromContext(c)

	memos, err := s.memoService.ListMemos(c.Request.Context(), userID)
	if err != nil {
		s.respondMemoError(c, err)
		return
	}

	c.JSON(http.StatusOK, memos)
}

// createMemo stores a memo owned by the caller
func (s *Server) createMemo(c *gin.Context) {
	userID := userIDFromContext(c)

	req, ok := bindJSONOrEmpty[domain.CreateMemoRequest](c, s.logger)
	if !ok {
		return
	}

	memo, err := s.memoService.CreateMemo(c.Request.Context(), userID, req)
	if err != nil {
		s.respondMemoError(c, err)
		return
	}

	c.JSON(http.StatusOK, memo)
}

// updateMemo overwrites title/content of one of the caller's memos
func (s *Server) updateMemo(c *gin.Context) {
	userID := userIDFromContext(c)

	memoID, err := httputil.ParseMemoID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: memoNotFoundMessage})
		return
	}

	req, ok := bindJSONOrEmpty[domain.UpdateMemoRequest](c, s.logger)
	if !ok {
		return
	}

	memo, err := s.memoService.UpdateMemo(c.Request.Context(), userID, memoID, req)
	if err != nil {
		s.respondMemoError(c, err)
		return
	}

	c.JSON(http.StatusOK, memo)
}

// deleteMemo removes one of the caller's memos
func (s *Server) deleteMemo(c *gin.Context) {
	userID := userIDFromContext(c)

	memoID, err := httputil.ParseMemoID(c)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: memoNotFoundMessage})
		return
	}

	if err := s.memoService.DeleteMemo(c.Request.Context(), userID, memoID); err != nil {
		s.respondMemoError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteMemoResponse{ID: memoID, Message: "Memo deleted"})
}

// respondMemoError maps service errors to 404 or 500
func (s *Server) respondMemoError(c *gin.Context, err error) {
	if domain.IsNotFoundError(err) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: memoNotFoundMessage})
		return
	}
	if domain.IsInfrastructureError(err) {
		s.logger.ErrorContext(c.Request.Context(), "memo storage failure",
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "Database error: " + domain.RootCause(err).Error(),
	})
}
