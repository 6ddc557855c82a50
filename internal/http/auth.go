package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/memoapi/internal/domain"
	"github.com/memoapi/internal/httputil"
)

const (
	registerSuccessMessage = "Registration successful. Please check your email for confirmation."
	logoutSuccessMessage   = "Logout successful."
)

// register signs up a user; the confirmation mail links back to this host
func (s *Server) register(c *gin.Context) {
	form, ok := bindJSONOrEmpty[domain.AuthForm](c, s.logger)
	if !ok {
		return
	}
	redirectTo := httputil.BaseHostURL(c)

	result := s.auth.Signup(c.Request.Context(), form.Email, form.Password, redirectTo)
	if _, ok := result.ID(); ok {
		c.JSON(http.StatusOK, MessageResponse{Message: registerSuccessMessage})
		return
	}

	s.logger.InfoContext(c.Request.Context(), "signup rejected", "status", result.Status, "message", result.ErrorMessage())
	c.JSON(http.StatusBadRequest, result.Body)
}

// login forwards the provider's status and body verbatim
func (s *Server) login(c *gin.Context) {
	form, ok := bindJSONOrEmpty[domain.AuthForm](c, s.logger)
	if !ok {
		return
	}

	result := s.auth.LoginWithPassword(c.Request.Context(), form.Email, form.Password)
	c.JSON(result.Status, result.Body)
}

// getUser returns the email behind the caller's token
func (s *Server) getUser(c *gin.Context) {
	token, _ := httputil.BearerToken(c)

	result := s.auth.ResolveUser(c.Request.Context(), token)
	c.JSON(result.Status, gin.H{"email": result.Email()})
}

// logout revokes the caller's session; the provider's answer is not reported
func (s *Server) logout(c *gin.Context) {
	token, _ := httputil.BearerToken(c)

	result := s.auth.Logout(c.Request.Context(), token)
	s.logger.DebugContext(c.Request.Context(), "logout", "status", result.Status)

	c.JSON(http.StatusOK, MessageResponse{Message: logoutSuccessMessage})
}

// githubRedirect sends the browser to the provider's GitHub OAuth flow
func (s *Server) githubRedirect(c *gin.Context) {
	redirectTo := httputil.BaseHostURL(c)
	c.Redirect(http.StatusFound, s.auth.GitHubSignInURL(redirectTo))
}
