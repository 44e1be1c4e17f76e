package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/google/uuid"
)

var ErrResourceNotFound = errors.New("shared resource not found")

// ResourceService manages links, files and snippets shared with the
// team.
type ResourceService struct {
	store      *docstore.Store
	activities *ActivityService
}

func NewResourceService(store *docstore.Store, activities *ActivityService) *ResourceService {
	return &ResourceService{
		store:      store,
		activities: activities,
	}
}

// AddResourceInput represents parameters to share a resource.
type AddResourceInput struct {
	ProjectID  string
	Type       models.ResourceType
	UploaderID string
	Name       string
	URL        string
	Content    string
	Size       int
}

// AddResource shares a new resource with the team.
func (s *ResourceService) AddResource(ctx context.Context, input AddResourceInput) (*models.SharedResource, error) {
	resource := models.SharedResource{
		ID:         uuid.NewString(),
		ProjectID:  input.ProjectID,
		Type:       input.Type,
		UploaderID: input.UploaderID,
		Name:       input.Name,
		URL:        input.URL,
		Content:    input.Content,
		Size:       input.Size,
		CreatedAt:  time.Now(),
	}

	if err := s.store.Set(ctx, models.CollectionResources, resource.ID, resource.ToDocument()); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}

	s.activities.Log(ctx, input.ProjectID, input.UploaderID, models.ActivityResourceAdded, "shared "+input.Name)
	return &resource, nil
}

// ResolveProject reports which project owns the shared resource.
func (s *ResourceService) ResolveProject(ctx context.Context, resourceID string) (string, error) {
	doc, err := s.store.Get(ctx, models.CollectionResources, resourceID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", ErrResourceNotFound
		}
		return "", fmt.Errorf("failed to find resource: %w", err)
	}
	return docstore.ReadString(doc, "project_id"), nil
}

// DeleteResource removes a shared resource.
func (s *ResourceService) DeleteResource(ctx context.Context, resourceID string) error {
	if err := s.store.Delete(ctx, models.CollectionResources, resourceID); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

// SubscribeToResources pushes the project's shared resources to fn on
// every change, newest first.
func (s *ResourceService) SubscribeToResources(ctx context.Context, projectID string, fn func([]models.SharedResource)) func() {
	filters := []docstore.Filter{docstore.Where("project_id", projectID)}
	return s.store.Subscribe(ctx, models.CollectionResources, filters, func(docs []docstore.Document) {
		resources := make([]models.SharedResource, 0, len(docs))
		for _, doc := range docs {
			resources = append(resources, models.SharedResourceFromDocument(doc))
		}
		sort.Slice(resources, func(i, j int) bool {
			return resources[i].CreatedAt.After(resources[j].CreatedAt)
		})
		fn(resources)
	})
}
