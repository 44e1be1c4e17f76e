package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/google/uuid"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTitleRequired = errors.New("title is required")
)

// TaskService synchronizes task records with the document store. Every
// mutation refreshes the task's last-updated timestamp.
type TaskService struct {
	store      *docstore.Store
	activities *ActivityService
}

func NewTaskService(store *docstore.Store, activities *ActivityService) *TaskService {
	return &TaskService{
		store:      store,
		activities: activities,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Effort      models.TaskEffort
	Priority    models.TaskPriority
	AssigneeID  *string
	CreatorID   string
}

// CreateTask creates a new task in the todo column.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Effort == "" {
		input.Effort = models.TaskEffortMedium
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}

	now := time.Now()
	task := models.Task{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Effort:      input.Effort,
		Status:      models.TaskStatusTodo,
		AssigneeID:  input.AssigneeID,
		Priority:    input.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Set(ctx, models.CollectionTasks, task.ID, task.ToDocument()); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.activities.Log(ctx, task.ProjectID, input.CreatorID, models.ActivityTaskCreated, "created task "+task.Title)
	return &task, nil
}

// UpdateTaskInput represents input for updating a task.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Effort      *models.TaskEffort
	Priority    *models.TaskPriority
}

// UpdateTask merges the given fields into the task.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, input UpdateTaskInput) error {
	fields := docstore.Document{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return ErrTitleRequired
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Effort != nil {
		fields["effort"] = string(*input.Effort)
	}
	if input.Priority != nil {
		fields["priority"] = string(*input.Priority)
	}

	return s.updateFields(ctx, taskID, fields)
}

// UpdateStatus moves the task to the given column.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus) error {
	return s.updateFields(ctx, taskID, docstore.Document{"status": string(status)})
}

// AssignTask sets or clears the task's assignee.
func (s *TaskService) AssignTask(ctx context.Context, taskID string, assigneeID *string) error {
	assignee := ""
	if assigneeID != nil {
		assignee = *assigneeID
	}
	return s.updateFields(ctx, taskID, docstore.Document{"assignee_id": assignee})
}

func (s *TaskService) updateFields(ctx context.Context, taskID string, fields docstore.Document) error {
	fields["updated_at"] = docstore.WriteTime(time.Now())

	if err := s.store.Update(ctx, models.CollectionTasks, taskID, fields); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteTask removes the task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	if err := s.store.Delete(ctx, models.CollectionTasks, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// GetTask retrieves a single task.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	doc, err := s.store.Get(ctx, models.CollectionTasks, taskID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	task := models.TaskFromDocument(doc)
	return &task, nil
}

// ResolveProject reports which project owns the task.
func (s *TaskService) ResolveProject(ctx context.Context, taskID string) (string, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return "", err
	}
	return task.ProjectID, nil
}

// CreateGeneratedTasks persists a set of AI-generated tasks in a single
// batch and returns them.
func (s *TaskService) CreateGeneratedTasks(ctx context.Context, projectID, creatorID string, generated []GeneratedTask) ([]models.Task, error) {
	if len(generated) == 0 {
		return []models.Task{}, nil
	}

	now := time.Now()
	batch := s.store.Batch()
	tasks := make([]models.Task, 0, len(generated))
	for _, g := range generated {
		if strings.TrimSpace(g.Title) == "" {
			continue
		}
		task := models.Task{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			Title:       g.Title,
			Description: g.Description,
			Effort:      g.Effort,
			Status:      models.TaskStatusTodo,
			Priority:    g.Priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if task.Effort == "" {
			task.Effort = models.TaskEffortMedium
		}
		if task.Priority == "" {
			task.Priority = models.TaskPriorityMedium
		}
		batch.Set(models.CollectionTasks, task.ID, task.ToDocument())
		tasks = append(tasks, task)
	}

	if err := batch.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to save generated tasks: %w", err)
	}

	s.activities.Log(ctx, projectID, creatorID, models.ActivityTaskCreated,
		fmt.Sprintf("generated %d tasks", len(tasks)))
	return tasks, nil
}

// SubscribeToTasks pushes the project's full task list to fn on every
// change, ordered by last-updated descending.
func (s *TaskService) SubscribeToTasks(ctx context.Context, projectID string, fn func([]models.Task)) func() {
	filters := []docstore.Filter{docstore.Where("project_id", projectID)}
	return s.store.Subscribe(ctx, models.CollectionTasks, filters, func(docs []docstore.Document) {
		tasks := make([]models.Task, 0, len(docs))
		for _, doc := range docs {
			tasks = append(tasks, models.TaskFromDocument(doc))
		}
		sort.Slice(tasks, func(i, j int) bool {
			return tasks[i].UpdatedAt.After(tasks[j].UpdatedAt)
		})
		fn(tasks)
	})
}
