package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/tasks"
	"taskboard/internal/validation"
)

var errProjectNotFound = errors.New("project not found")

// handleListProjects returns all available projects.
func (s *Server) handleListProjects(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"projects": s.app.Projects.List()})
}

// handleGetProject returns a single project.
func (s *Server) handleGetProject(c *gin.Context) {
	project, ok := s.app.Projects.Get(c.Param("id"))
	if !ok {
		s.respondError(c, http.StatusNotFound, errProjectNotFound)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleCreateProject creates a new project entity.
func (s *Server) handleCreateProject(c *gin.Context) {
	var form validation.ProjectForm
	if err := bindStrict(c, &form); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if errs := validation.ValidateProjectForm(form); errs != nil {
		respondInvalid(c, errs)
		return
	}

	project := s.app.Projects.Add(c.Request.Context(), form.Project())
	respondSuccess(c, http.StatusCreated, gin.H{"project": project})
}

// handleUpdateProject merges a patch into an existing project. The merged
// record must still pass form validation.
func (s *Server) handleUpdateProject(c *gin.Context) {
	id := c.Param("id")

	var patch models.ProjectPatch
	if err := bindStrict(c, &patch); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	if patch.ID != "" && patch.ID != id {
		s.respondError(c, http.StatusBadRequest, errors.New("id in body does not match path"))
		return
	}
	patch.ID = id

	project, ok, err := s.app.Projects.UpdateIf(c.Request.Context(), patch, func(p models.Project) error {
		if errs := validation.ValidateProjectForm(validation.ProjectFormOf(p)); errs != nil {
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
		s.respondError(c, http.StatusNotFound, errProjectNotFound)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleDeleteProject removes a project. Its tasks are kept and show up as
// belonging to an unknown project.
func (s *Server) handleDeleteProject(c *gin.Context) {
	removed := s.app.Projects.Delete(c.Request.Context(), c.Param("id"))
	respondSuccess(c, http.StatusOK, gin.H{"status": "deleted", "removed": removed})
}

// handleListProjectTasks fetches tasks for a project.
func (s *Server) handleListProjectTasks(c *gin.Context) {
	list := s.app.Tasks.ListByProject(c.Param("id"))
	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks.Views(list, s.app.Projects)})
}

type selectionRequest struct {
	ProjectID string `json:"projectId"`
}

// handleGetSelection returns the selected project, if any.
func (s *Server) handleGetSelection(c *gin.Context) {
	project, ok := s.app.Projects.Selected()
	if !ok {
		respondSuccess(c, http.StatusOK, gin.H{"project": nil})
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleSetSelection selects an existing project by id.
func (s *Server) handleSetSelection(c *gin.Context) {
	var req selectionRequest
	if err := bindStrict(c, &req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	project, ok := s.app.Projects.Get(req.ProjectID)
	if !ok {
		s.respondError(c, http.StatusNotFound, errProjectNotFound)
		return
	}
	s.app.Projects.Select(&project)
	respondSuccess(c, http.StatusOK, gin.H{"project": project})
}

// handleClearSelection drops the selection.
func (s *Server) handleClearSelection(c *gin.Context) {
	s.app.Projects.Select(nil)
	respondSuccess(c, http.StatusNoContent, nil)
}
