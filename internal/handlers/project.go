package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projects *services.ProjectService
	members  *services.MemberService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *services.ProjectService, members *services.MemberService) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		members:  members,
	}
}

// CreateProject creates a new project owned by the current user.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Duration    string `json:"duration" binding:"required,oneof=24h 48h"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projects.CreateProject(c.Request.Context(), services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    models.ProjectDuration(req.Duration),
		CreatorID:   userID,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects returns all projects the user is a member of. A slow or
// unreachable store yields an empty list, not an error.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects := h.projects.GetUserProjects(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
	})
}

// GetProject returns project details with member profiles.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	profiles := h.members.GetProfiles(c.Request.Context(), project.MemberIDs)
	c.JSON(http.StatusOK, gin.H{
		"project": project,
		"members": profiles,
	})
}

// JoinProject adds the user to the project matching the join code.
func (h *ProjectHandler) JoinProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		JoinCode string `json:"join_code" binding:"required,len=6"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	projectID, err := h.projects.JoinProjectByCode(c.Request.Context(), userID, req.JoinCode)
	if err != nil {
		if errors.Is(err, services.ErrNoProjectForCode) {
			apierrors.NotFound(c, "Invalid join code")
			return
		}
		apierrors.InternalError(c, "Failed to join project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Successfully joined project",
		"project_id": projectID,
	})
}

// DeleteProject removes the project and its tasks and messages.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)
	if project.CreatorID != userID {
		apierrors.Forbidden(c, "Only the project creator can delete the project")
		return
	}

	if err := h.projects.DeleteProject(c.Request.Context(), project.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// RemoveMember removes a member from the project.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	userID, _ := middleware.GetUserID(c)
	targetID := c.Param("user_id")

	if project.CreatorID != userID {
		apierrors.Forbidden(c, "Only the project creator can remove members")
		return
	}
	if targetID == project.CreatorID {
		apierrors.BadRequest(c, "Cannot remove the project creator")
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), project.ID, targetID); err != nil {
		apierrors.InternalError(c, "Failed to remove member")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// UpdateStatus records an advisory project status transition.
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type StatusRequest struct {
		Status string `json:"status" binding:"required,oneof=ideation building submitted"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projects.UpdateStatus(c.Request.Context(), project.ID, models.ProjectStatus(req.Status)); err != nil {
		apierrors.InternalError(c, "Failed to update status")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
	})
}

// UpdateURLs persists the project's repository and demo URLs.
func (h *ProjectHandler) UpdateURLs(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type URLsRequest struct {
		RepoURL string `json:"repo_url"`
		DemoURL string `json:"demo_url"`
	}

	var req URLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.projects.SaveProjectURLs(c.Request.Context(), project.ID, req.RepoURL, req.DemoURL); err != nil {
		apierrors.InternalError(c, "Failed to update URLs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "URLs updated",
	})
}
