package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

// WorkspaceHandler coordinates the milestone, schedule, wellness,
// resource and notification HTTP handlers.
type WorkspaceHandler struct {
	milestones    *services.MilestoneService
	schedule      *services.ScheduleService
	resources     *services.ResourceService
	notifications *services.NotificationService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(
	milestones *services.MilestoneService,
	schedule *services.ScheduleService,
	resources *services.ResourceService,
	notifications *services.NotificationService,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		milestones:    milestones,
		schedule:      schedule,
		resources:     resources,
		notifications: notifications,
	}
}

// UpdateMilestoneStatus marks a milestone pending or completed.
func (h *WorkspaceHandler) UpdateMilestoneStatus(c *gin.Context) {
	type StatusRequest struct {
		Status string `json:"status" binding:"required,oneof=pending completed"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.milestones.UpdateStatus(c.Request.Context(), c.Param("milestone_id"), models.MilestoneStatus(req.Status))
	if err != nil {
		if errors.Is(err, services.ErrMilestoneNotFound) {
			apierrors.NotFound(c, "Milestone not found")
			return
		}
		apierrors.InternalError(c, "Failed to update milestone")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Milestone updated",
	})
}

// CreateEvent adds a schedule block for the current user.
func (h *WorkspaceHandler) CreateEvent(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	type EventRequest struct {
		Title     string    `json:"title" binding:"required"`
		Type      string    `json:"type" binding:"required,oneof=work break meal sleep meeting"`
		StartTime time.Time `json:"start_time" binding:"required"`
		EndTime   time.Time `json:"end_time" binding:"required"`
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.schedule.CreateEvent(c.Request.Context(), services.CreateEventInput{
		ProjectID: project.ID,
		UserID:    userID,
		Title:     req.Title,
		Type:      models.EventType(req.Type),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// CompleteEvent toggles an event's completed flag.
func (h *WorkspaceHandler) CompleteEvent(c *gin.Context) {
	type CompleteRequest struct {
		Completed bool `json:"completed"`
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.schedule.SetEventCompleted(c.Request.Context(), c.Param("event_id"), req.Completed); err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			apierrors.NotFound(c, "Event not found")
			return
		}
		apierrors.InternalError(c, "Failed to update event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated",
	})
}

// DeleteEvent removes an event.
func (h *WorkspaceHandler) DeleteEvent(c *gin.Context) {
	if err := h.schedule.DeleteEvent(c.Request.Context(), c.Param("event_id")); err != nil {
		apierrors.InternalError(c, "Failed to delete event")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event deleted",
	})
}

// GetWellnessSettings returns the user's wellness settings, or defaults
// when none are stored.
func (h *WorkspaceHandler) GetWellnessSettings(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	settings := h.schedule.GetWellnessSettings(c.Request.Context(), project.ID, userID)
	c.JSON(http.StatusOK, settings)
}

// UpsertWellnessSettings creates or replaces the user's wellness
// settings for the project.
func (h *WorkspaceHandler) UpsertWellnessSettings(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	var settings models.WellnessSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	settings.ProjectID = project.ID
	settings.UserID = userID

	if err := h.schedule.UpsertWellnessSettings(c.Request.Context(), settings); err != nil {
		apierrors.InternalError(c, "Failed to save wellness settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// AddResource shares a resource with the team.
func (h *WorkspaceHandler) AddResource(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	type ResourceRequest struct {
		Type    string `json:"type" binding:"required,oneof=link file snippet"`
		Name    string `json:"name" binding:"required"`
		URL     string `json:"url"`
		Content string `json:"content"`
		Size    int    `json:"size"`
	}

	var req ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resource, err := h.resources.AddResource(c.Request.Context(), services.AddResourceInput{
		ProjectID:  project.ID,
		Type:       models.ResourceType(req.Type),
		UploaderID: userID,
		Name:       req.Name,
		URL:        req.URL,
		Content:    req.Content,
		Size:       req.Size,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to add resource")
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// DeleteResource removes a shared resource.
func (h *WorkspaceHandler) DeleteResource(c *gin.Context) {
	if err := h.resources.DeleteResource(c.Request.Context(), c.Param("resource_id")); err != nil {
		apierrors.InternalError(c, "Failed to delete resource")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resource deleted",
	})
}

// MarkNotificationRead flips a notification's read flag.
func (h *WorkspaceHandler) MarkNotificationRead(c *gin.Context) {
	err := h.notifications.MarkRead(c.Request.Context(), c.Param("notification_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			apierrors.NotFound(c, "Notification not found")
			return
		}
		apierrors.InternalError(c, "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification marked read",
	})
}
