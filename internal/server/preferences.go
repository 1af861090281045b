package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/dashboard"
	"taskboard/internal/models"
	"taskboard/internal/theme"
)

type themeRequest struct {
	Theme models.Theme `json:"theme"`
}

// handleGetTheme returns the saved colour scheme.
func (s *Server) handleGetTheme(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"theme": s.app.Theme.Get(c.Request.Context())})
}

// handleSetTheme stores a new colour scheme.
func (s *Server) handleSetTheme(c *gin.Context) {
	var req themeRequest
	if err := bindStrict(c, &req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	err := s.app.Theme.Set(c.Request.Context(), req.Theme)
	switch {
	case errors.Is(err, theme.ErrInvalidTheme):
		s.respondError(c, http.StatusBadRequest, err)
		return
	case err != nil:
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"theme": req.Theme})
}

// handleDashboard aggregates counters and recent items.
func (s *Server) handleDashboard(c *gin.Context) {
	summary := dashboard.Summarize(s.app.Projects.List(), s.app.Tasks.List())
	respondSuccess(c, http.StatusOK, summary)
}
