package state

import (
	"context"
	"sync"

	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

// ProjectMutator is the slice of the project service the list needs.
type ProjectMutator interface {
	UpdateStatus(ctx context.Context, projectID string, status models.ProjectStatus) error
}

// ProjectList is the dashboard state holder.
type ProjectList struct {
	mu       sync.Mutex
	projects []models.Project
	mutator  ProjectMutator
}

func NewProjectList(mutator ProjectMutator) *ProjectList {
	return &ProjectList{mutator: mutator}
}

// Apply replaces the list with a fetch or subscription result.
func (l *ProjectList) Apply(snapshot []models.Project) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.projects = append([]models.Project(nil), snapshot...)
}

// Projects returns a copy of the current list.
func (l *ProjectList) Projects() []models.Project {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Project(nil), l.projects...)
}

// SetStatus applies the advisory status locally, issues the remote
// update, and restores the previous status if the write fails.
func (l *ProjectList) SetStatus(ctx context.Context, projectID string, status models.ProjectStatus) error {
	previous, ok := l.swapStatus(projectID, status)
	if !ok {
		return nil
	}

	if err := l.mutator.UpdateStatus(ctx, projectID, status); err != nil {
		l.swapStatus(projectID, previous)
		return err
	}
	return nil
}

func (l *ProjectList) swapStatus(projectID string, status models.ProjectStatus) (models.ProjectStatus, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.projects {
		if l.projects[i].ID == projectID {
			previous := l.projects[i].Status
			l.projects[i].Status = status
			return previous, true
		}
	}
	return "", false
}
