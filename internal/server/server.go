package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"taskboard/internal/app"
	"taskboard/internal/validation"
)

// Options tune the HTTP layer.
type Options struct {
	StaticDir string
	// LoginRate is the number of login attempts allowed per client IP per minute.
	LoginRate int
}

// Server provides HTTP handlers in front of the application stores.
type Server struct {
	engine    *gin.Engine
	app       *app.App
	logger    *slog.Logger
	staticDir string
	indexPath string
	loginRate int
}

// New constructs the HTTP server with routes and middleware configured.
func New(a *app.App, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.LoginRate <= 0 {
		opts.LoginRate = 30
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz", "/metrics"))
	router.Use(recordMetrics())

	srv := &Server{
		engine:    router,
		app:       a,
		logger:    logger,
		staticDir: opts.StaticDir,
		loginRate: opts.LoginRate,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		session := api.Group("/auth")
		{
			session.POST("/login", rateLimit(s.loginRate, s.loginRate/2+1), s.handleLogin)
			session.POST("/logout", s.handleLogout)
			session.GET("/me", s.handleMe)
		}

		api.GET("/theme", s.handleGetTheme)
		api.PUT("/theme", s.handleSetTheme)

		private := api.Group("", s.requireAuth)
		{
			private.GET("/dashboard", s.handleDashboard)

			projects := private.Group("/projects")
			{
				projects.GET("", s.handleListProjects)
				projects.POST("", s.handleCreateProject)
				projects.GET(":id", s.handleGetProject)
				projects.PUT(":id", s.handleUpdateProject)
				projects.DELETE(":id", s.handleDeleteProject)
				projects.GET(":id/tasks", s.handleListProjectTasks)
			}

			private.GET("/selection", s.handleGetSelection)
			private.PUT("/selection", s.handleSetSelection)
			private.DELETE("/selection", s.handleClearSelection)

			tasks := private.Group("/tasks")
			{
				tasks.GET("", s.handleListTasks)
				tasks.POST("", s.handleCreateTask)
				tasks.PUT(":id", s.handleUpdateTask)
				tasks.DELETE(":id", s.handleDeleteTask)
				tasks.POST(":id/toggle", s.handleToggleTask)
			}

			gh := private.Group("/github")
			{
				gh.GET("/users/:username/repos", s.handleSearchRepos)
				gh.POST("/import", s.handleImportRepo)
			}

			tg := private.Group("/telegram")
			{
				tg.GET("", s.handleGetTelegram)
				tg.PUT("", s.handleConnectTelegram)
				tg.DELETE("", s.handleDisconnectTelegram)
				tg.POST("/messages", s.handleSendTelegram)
			}
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindStrict decodes the JSON body into dst and rejects unknown fields.
func bindStrict(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	} else {
		s.logger.Debug("request rejected", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondInvalid returns field-keyed validation messages.
func respondInvalid(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
