package models

import (
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type TaskEffort string

const (
	TaskEffortSmall  TaskEffort = "small"
	TaskEffortMedium TaskEffort = "medium"
	TaskEffortLarge  TaskEffort = "large"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a unit of project work. UpdatedAt is refreshed on every
// mutation; AssigneeID may be unset.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"project_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Effort      TaskEffort   `json:"effort"`
	Status      TaskStatus   `json:"status"`
	AssigneeID  *string      `json:"assignee_id"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (t Task) ToDocument() docstore.Document {
	doc := docstore.Document{
		"id":          t.ID,
		"project_id":  t.ProjectID,
		"title":       t.Title,
		"description": t.Description,
		"effort":      string(t.Effort),
		"status":      string(t.Status),
		"priority":    string(t.Priority),
		"created_at":  docstore.WriteTime(t.CreatedAt),
		"updated_at":  docstore.WriteTime(t.UpdatedAt),
	}
	if t.AssigneeID != nil {
		doc["assignee_id"] = *t.AssigneeID
	}
	return doc
}

func TaskFromDocument(doc docstore.Document) Task {
	task := Task{
		ID:          docstore.ReadString(doc, "id"),
		ProjectID:   docstore.ReadString(doc, "project_id"),
		Title:       docstore.ReadString(doc, "title"),
		Description: docstore.ReadString(doc, "description"),
		Effort:      TaskEffort(docstore.ReadString(doc, "effort")),
		Status:      TaskStatus(docstore.ReadString(doc, "status")),
		Priority:    TaskPriority(docstore.ReadString(doc, "priority")),
		CreatedAt:   docstore.ReadTime(doc, "created_at"),
		UpdatedAt:   docstore.ReadTime(doc, "updated_at"),
	}
	if assignee := docstore.ReadString(doc, "assignee_id"); assignee != "" {
		task.AssigneeID = &assignee
	}
	return task
}
