package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/google/uuid"
)

var ErrMilestoneNotFound = errors.New("milestone not found")

// MilestoneService manages project milestones and their default
// bootstrap at creation time.
type MilestoneService struct {
	store *docstore.Store
}

func NewMilestoneService(store *docstore.Store) *MilestoneService {
	return &MilestoneService{store: store}
}

// CreateDefaults writes the three default milestones, spaced at 20%,
// 70% and 100% of the project duration from its creation time.
func (s *MilestoneService) CreateDefaults(ctx context.Context, project models.Project) error {
	total := time.Duration(project.Duration.Hours() * float64(time.Hour))

	defaults := []struct {
		name     string
		kind     models.MilestoneType
		fraction float64
	}{
		{"Idea locked in", models.MilestoneTypePlanning, constants.MilestoneFractions[0]},
		{"MVP working", models.MilestoneTypeDevelopment, constants.MilestoneFractions[1]},
		{"Final submission", models.MilestoneTypeSubmission, constants.MilestoneFractions[2]},
	}

	batch := s.store.Batch()
	for _, d := range defaults {
		milestone := models.Milestone{
			ID:        uuid.NewString(),
			ProjectID: project.ID,
			Name:      d.name,
			Deadline:  project.CreatedAt.Add(time.Duration(d.fraction * float64(total))),
			Status:    models.MilestoneStatusPending,
			Type:      d.kind,
		}
		batch.Set(models.CollectionMilestones, milestone.ID, milestone.ToDocument())
	}

	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to create default milestones: %w", err)
	}
	return nil
}

// UpdateStatus marks a milestone pending or completed.
func (s *MilestoneService) UpdateStatus(ctx context.Context, milestoneID string, status models.MilestoneStatus) error {
	err := s.store.Update(ctx, models.CollectionMilestones, milestoneID, docstore.Document{
		"status": string(status),
	})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrMilestoneNotFound
		}
		return fmt.Errorf("failed to update milestone: %w", err)
	}
	return nil
}

// ResolveProject reports which project owns the milestone.
func (s *MilestoneService) ResolveProject(ctx context.Context, milestoneID string) (string, error) {
	doc, err := s.store.Get(ctx, models.CollectionMilestones, milestoneID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", ErrMilestoneNotFound
		}
		return "", fmt.Errorf("failed to find milestone: %w", err)
	}
	return docstore.ReadString(doc, "project_id"), nil
}

// SubscribeToMilestones pushes the project's milestones to fn on every
// change, ordered by deadline ascending.
func (s *MilestoneService) SubscribeToMilestones(ctx context.Context, projectID string, fn func([]models.Milestone)) func() {
	filters := []docstore.Filter{docstore.Where("project_id", projectID)}
	return s.store.Subscribe(ctx, models.CollectionMilestones, filters, func(docs []docstore.Document) {
		milestones := make([]models.Milestone, 0, len(docs))
		for _, doc := range docs {
			milestones = append(milestones, models.MilestoneFromDocument(doc))
		}
		sort.Slice(milestones, func(i, j int) bool {
			return milestones[i].Deadline.Before(milestones[j].Deadline)
		})
		fn(milestones)
	})
}
