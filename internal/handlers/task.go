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

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	tasks     *services.TaskService
	aiService *services.AIService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *services.TaskService, aiService *services.AIService) *TaskHandler {
	return &TaskHandler{
		tasks:     tasks,
		aiService: aiService,
	}
}

// CreateTask creates a new task in the project.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		Effort      string  `json:"effort" binding:"omitempty,oneof=small medium large"`
		Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
		AssigneeID  *string `json:"assignee_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), services.CreateTaskInput{
		ProjectID:   project.ID,
		Title:       req.Title,
		Description: req.Description,
		Effort:      models.TaskEffort(req.Effort),
		Priority:    models.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		CreatorID:   userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask merges the given fields into a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Effort      *string `json:"effort" binding:"omitempty,oneof=small medium large"`
		Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Effort != nil {
		effort := models.TaskEffort(*req.Effort)
		input.Effort = &effort
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	if err := h.tasks.UpdateTask(c.Request.Context(), c.Param("task_id"), input); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated",
	})
}

// UpdateTaskStatus moves a task between columns.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	type StatusRequest struct {
		Status string `json:"status" binding:"required,oneof=todo in_progress done"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tasks.UpdateStatus(c.Request.Context(), c.Param("task_id"), models.TaskStatus(req.Status)); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status updated",
	})
}

// AssignTask sets or clears a task's assignee.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	type AssignRequest struct {
		AssigneeID *string `json:"assignee_id"`
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tasks.AssignTask(c.Request.Context(), c.Param("task_id"), req.AssigneeID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assignee updated",
	})
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.tasks.DeleteTask(c.Request.Context(), c.Param("task_id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted",
	})
}

// GenerateTasks asks the AI gateway to break the project description
// into tasks and persists the result.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured")
		return
	}

	type GenerateRequest struct {
		Description string `json:"description"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Description == "" {
		req.Description = project.Description
	}

	generated, err := h.aiService.GenerateTasks(c.Request.Context(), req.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.tasks.CreateGeneratedTasks(c.Request.Context(), project.ID, userID, generated)
	if err != nil {
		apierrors.InternalError(c, "Failed to save generated tasks")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"tasks": tasks,
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Title is required")
	default:
		apierrors.InternalError(c, "")
	}
}
