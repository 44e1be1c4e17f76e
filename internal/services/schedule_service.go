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

var ErrEventNotFound = errors.New("schedule event not found")

// ScheduleService manages per-(project, user) schedule events and the
// wellness reminder settings.
type ScheduleService struct {
	store *docstore.Store
}

func NewScheduleService(store *docstore.Store) *ScheduleService {
	return &ScheduleService{store: store}
}

// CreateEventInput represents parameters to create a schedule event.
type CreateEventInput struct {
	ProjectID string
	UserID    string
	Title     string
	Type      models.EventType
	StartTime time.Time
	EndTime   time.Time
}

// CreateEvent adds a schedule block for the user.
func (s *ScheduleService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.ScheduleEvent, error) {
	event := models.ScheduleEvent{
		ID:        uuid.NewString(),
		ProjectID: input.ProjectID,
		UserID:    input.UserID,
		Title:     input.Title,
		Type:      input.Type,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}

	if err := s.store.Set(ctx, models.CollectionSchedule, event.ID, event.ToDocument()); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// SetEventCompleted toggles the completed flag on an event.
func (s *ScheduleService) SetEventCompleted(ctx context.Context, eventID string, completed bool) error {
	err := s.store.Update(ctx, models.CollectionSchedule, eventID, docstore.Document{
		"completed": completed,
	})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// ResolveProject reports which project owns the schedule event.
func (s *ScheduleService) ResolveProject(ctx context.Context, eventID string) (string, error) {
	doc, err := s.store.Get(ctx, models.CollectionSchedule, eventID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", ErrEventNotFound
		}
		return "", fmt.Errorf("failed to find event: %w", err)
	}
	return docstore.ReadString(doc, "project_id"), nil
}

// DeleteEvent removes an event.
func (s *ScheduleService) DeleteEvent(ctx context.Context, eventID string) error {
	if err := s.store.Delete(ctx, models.CollectionSchedule, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// SubscribeToEvents pushes the user's schedule for the project to fn on
// every change, ordered by start time ascending.
func (s *ScheduleService) SubscribeToEvents(ctx context.Context, projectID, userID string, fn func([]models.ScheduleEvent)) func() {
	filters := []docstore.Filter{
		docstore.Where("project_id", projectID),
		docstore.Where("user_id", userID),
	}
	return s.store.Subscribe(ctx, models.CollectionSchedule, filters, func(docs []docstore.Document) {
		events := make([]models.ScheduleEvent, 0, len(docs))
		for _, doc := range docs {
			events = append(events, models.ScheduleEventFromDocument(doc))
		}
		sort.Slice(events, func(i, j int) bool {
			return events[i].StartTime.Before(events[j].StartTime)
		})
		fn(events)
	})
}

// GetWellnessSettings returns the user's wellness settings for the
// project, or defaults when none are stored.
func (s *ScheduleService) GetWellnessSettings(ctx context.Context, projectID, userID string) models.WellnessSettings {
	doc, err := s.store.Get(ctx, models.CollectionWellness, models.CompositeKey(projectID, userID))
	if err != nil {
		return models.WellnessSettings{
			ProjectID:      projectID,
			UserID:         userID,
			WorkMinutes:    50,
			BreakMinutes:   10,
			SleepTime:      "02:00",
			WakeTime:       "08:00",
			MealTime:       "13:00",
			BreakReminders: true,
		}
	}
	return models.WellnessSettingsFromDocument(doc)
}

// UpsertWellnessSettings writes the settings record, creating or
// replacing it. One record exists per (project, user) pair.
func (s *ScheduleService) UpsertWellnessSettings(ctx context.Context, settings models.WellnessSettings) error {
	if err := s.store.Set(ctx, models.CollectionWellness, settings.Key(), settings.ToDocument()); err != nil {
		return fmt.Errorf("failed to save wellness settings: %w", err)
	}
	return nil
}
