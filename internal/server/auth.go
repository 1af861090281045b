package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/auth"
	"taskboard/internal/validation"
)

// handleLogin validates the form, then checks the credentials.
func (s *Server) handleLogin(c *gin.Context) {
	var form validation.LoginForm
	if err := bindStrict(c, &form); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if errs := validation.ValidateLoginForm(form); errs != nil {
		respondInvalid(c, errs)
		return
	}

	identity, err := s.app.Auth.Login(c.Request.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.respondError(c, http.StatusUnauthorized, err)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.respondError(c, http.StatusRequestTimeout, err)
		return
	case err != nil:
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"user": identity})
}

// handleLogout drops the current session.
func (s *Server) handleLogout(c *gin.Context) {
	s.app.Auth.Logout(c.Request.Context())
	respondSuccess(c, http.StatusOK, gin.H{"status": "logged out"})
}

// handleMe reports the current identity.
func (s *Server) handleMe(c *gin.Context) {
	identity, ok := s.app.Auth.Current()
	if !ok {
		s.respondError(c, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"user": identity})
}
