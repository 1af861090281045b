package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/tasks"
	"taskboard/internal/validation"
)

var errTaskNotFound = errors.New("task not found")

// handleListTasks returns every task joined with its project title, optionally
// filtered by ?projectId=.
func (s *Server) handleListTasks(c *gin.Context) {
	var list []models.Task
	if projectID, ok := c.GetQuery("projectId"); ok && projectID != "all" {
		list = s.app.Tasks.ListByProject(projectID)
	} else {
		list = s.app.Tasks.List()
	}
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks.Views(list, s.app.Projects)})
}

// handleCreateTask inserts a new task. The project reference is not checked.
func (s *Server) handleCreateTask(c *gin.Context) {
	var form validation.TaskForm
	if err := bindStrict(c, &form); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if errs := validation.ValidateTaskForm(form); errs != nil {
		respondInvalid(c, errs)
		return
	}

	task := s.app.Tasks.Add(c.Request.Context(), form.Task())
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask merges a patch into a task. Status and completed are
// applied as sent.
func (s *Server) handleUpdateTask(c *gin.Context) {
	id := c.Param("id")

	var patch models.TaskPatch
	if err := bindStrict(c, &patch); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if patch.ID != "" && patch.ID != id {
		s.respondError(c, http.StatusBadRequest, errors.New("id in body does not match path"))
		return
	}
	patch.ID = id

	task, ok, err := s.app.Tasks.UpdateIf(c.Request.Context(), patch, func(t models.Task) error {
		if errs := validation.ValidateTaskForm(validation.TaskFormOf(t)); errs != nil {
			return errs
		}
		return nil
	})
	var invalid validation.Errors
	switch {
	case errors.As(err, &invalid):
		respondInvalid(c, invalid)
		return
	case err != nil:
		s.respondError(c, http.StatusBadRequest, err)
		return
	case !ok:
		s.respondError(c, http.StatusNotFound, errTaskNotFound)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleToggleTask flips completion.
func (s *Server) handleToggleTask(c *gin.Context) {
	task, ok := s.app.Tasks.ToggleComplete(c.Request.Context(), c.Param("id"))
	if !ok {
		s.respondError(c, http.StatusNotFound, errTaskNotFound)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task completely.
func (s *Server) handleDeleteTask(c *gin.Context) {
	removed := s.app.Tasks.Delete(c.Request.Context(), c.Param("id"))
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted", "removed": removed})
}
