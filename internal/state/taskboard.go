// Package state holds the per-screen view state that sits between
// subscription snapshots and user actions. Mutations are optimistic:
// the local copy changes immediately, the remote write follows, and the
// previous value is restored if the write fails. There is no operation
// queue; the last local write wins regardless of remote commit order.
package state

import (
	"context"
	"sync"

	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

// TaskMutator is the slice of the task service the board needs.
type TaskMutator interface {
	UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus) error
	AssignTask(ctx context.Context, taskID string, assigneeID *string) error
}

// TaskBoard is the kanban-screen state holder.
type TaskBoard struct {
	mu      sync.Mutex
	tasks   []models.Task
	mutator TaskMutator
}

func NewTaskBoard(mutator TaskMutator) *TaskBoard {
	return &TaskBoard{mutator: mutator}
}

// Apply replaces the board with a subscription snapshot. The store is
// authoritative; local state is a projection.
func (b *TaskBoard) Apply(snapshot []models.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append([]models.Task(nil), snapshot...)
}

// Tasks returns a copy of the current board.
func (b *TaskBoard) Tasks() []models.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Task(nil), b.tasks...)
}

// SetStatus applies the new status locally, issues the remote update,
// and restores the previous status if the write fails.
func (b *TaskBoard) SetStatus(ctx context.Context, taskID string, status models.TaskStatus) error {
	previous, ok := b.swapStatus(taskID, status)
	if !ok {
		return nil
	}

	if err := b.mutator.UpdateStatus(ctx, taskID, status); err != nil {
		b.swapStatus(taskID, previous)
		return err
	}
	return nil
}

// SetAssignee applies the new assignee locally, issues the remote
// update, and restores the previous assignee if the write fails.
func (b *TaskBoard) SetAssignee(ctx context.Context, taskID string, assigneeID *string) error {
	previous, ok := b.swapAssignee(taskID, assigneeID)
	if !ok {
		return nil
	}

	if err := b.mutator.AssignTask(ctx, taskID, assigneeID); err != nil {
		b.swapAssignee(taskID, previous)
		return err
	}
	return nil
}

func (b *TaskBoard) swapStatus(taskID string, status models.TaskStatus) (models.TaskStatus, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == taskID {
			previous := b.tasks[i].Status
			b.tasks[i].Status = status
			return previous, true
		}
	}
	return "", false
}

func (b *TaskBoard) swapAssignee(taskID string, assigneeID *string) (*string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.tasks {
		if b.tasks[i].ID == taskID {
			previous := b.tasks[i].AssigneeID
			b.tasks[i].AssigneeID = assigneeID
			return previous, true
		}
	}
	return nil, false
}
