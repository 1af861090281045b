package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the built web client from the configured directory.
// Unknown API paths always answer with JSON.
func (s *Server) mountStatic() {
	s.engine.NoRoute(s.handleNotFound)

	if s.staticDir == "" {
		s.logger.Info("no static directory configured, serving API only")
		return
	}
	info, err := os.Stat(s.staticDir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing", slog.String("path", s.staticDir), slog.Any("error", err))
		return
	}

	indexPath := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		s.logger.Warn("index.html not found", slog.String("path", indexPath), slog.Any("error", err))
	} else {
		s.indexPath = indexPath
		s.engine.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})
	}

	assetsDir := filepath.Join(s.staticDir, "assets")
	if _, err := os.Stat(assetsDir); err == nil {
		s.engine.StaticFS("/assets", gin.Dir(assetsDir, false))
	}

	favicon := filepath.Join(s.staticDir, "favicon.ico")
	if _, err := os.Stat(favicon); err == nil {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
}

// handleNotFound falls back to the client's index page so client-side routes
// survive a reload.
func (s *Server) handleNotFound(c *gin.Context) {
	path := c.Request.URL.Path
	if s.indexPath == "" || strings.HasPrefix(path, "/api/") || path == "/metrics" {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
		return
	}
	c.File(s.indexPath)
}
