package services

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/constants"
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/google/uuid"
)

// ActivityService writes and streams the live activity feed.
type ActivityService struct {
	store *docstore.Store
}

func NewActivityService(store *docstore.Store) *ActivityService {
	return &ActivityService{store: store}
}

// Log records a feed entry. Logging is fire-and-forget: a failed write
// is logged and swallowed so it never blocks the action that caused it.
func (s *ActivityService) Log(ctx context.Context, projectID, actorID string, kind models.ActivityType, description string) {
	activity := models.LiveActivity{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		ActorID:     actorID,
		Type:        kind,
		Description: description,
		Timestamp:   time.Now(),
	}

	if err := s.store.Set(ctx, models.CollectionActivities, activity.ID, activity.ToDocument()); err != nil {
		log.Printf("activity log for project %s failed: %v", projectID, err)
	}
}

// SubscribeToActivities pushes the project's activity feed to fn on
// every change, newest first, truncated to the 50 most recent entries.
func (s *ActivityService) SubscribeToActivities(ctx context.Context, projectID string, fn func([]models.LiveActivity)) func() {
	filters := []docstore.Filter{docstore.Where("project_id", projectID)}
	return s.store.Subscribe(ctx, models.CollectionActivities, filters, func(docs []docstore.Document) {
		activities := make([]models.LiveActivity, 0, len(docs))
		for _, doc := range docs {
			activities = append(activities, models.LiveActivityFromDocument(doc))
		}
		sort.Slice(activities, func(i, j int) bool {
			return activities[i].Timestamp.After(activities[j].Timestamp)
		})
		if len(activities) > constants.ActivityFeedLimit {
			activities = activities[:constants.ActivityFeedLimit]
		}
		fn(activities)
	})
}
