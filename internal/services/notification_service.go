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

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService delivers per-recipient team notifications.
type NotificationService struct {
	store *docstore.Store
}

func NewNotificationService(store *docstore.Store) *NotificationService {
	return &NotificationService{store: store}
}

// Notify creates an unread notification for the recipient.
func (s *NotificationService) Notify(ctx context.Context, projectID, recipientID string, kind models.NotificationType, message string) (*models.TeamNotification, error) {
	notification := models.TeamNotification{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		RecipientID: recipientID,
		Type:        kind,
		Message:     message,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Set(ctx, models.CollectionNotifications, notification.ID, notification.ToDocument()); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &notification, nil
}

// MarkRead flips the read flag without touching any other field.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	err := s.store.Update(ctx, models.CollectionNotifications, notificationID, docstore.Document{
		"read": true,
	})
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// ResolveProject reports which project owns the notification.
func (s *NotificationService) ResolveProject(ctx context.Context, notificationID string) (string, error) {
	doc, err := s.store.Get(ctx, models.CollectionNotifications, notificationID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return "", ErrNotificationNotFound
		}
		return "", fmt.Errorf("failed to find notification: %w", err)
	}
	return docstore.ReadString(doc, "project_id"), nil
}

// SubscribeToNotifications pushes the recipient's notifications for the
// project to fn on every change, newest first.
func (s *NotificationService) SubscribeToNotifications(ctx context.Context, projectID, recipientID string, fn func([]models.TeamNotification)) func() {
	filters := []docstore.Filter{
		docstore.Where("project_id", projectID),
		docstore.Where("recipient_id", recipientID),
	}
	return s.store.Subscribe(ctx, models.CollectionNotifications, filters, func(docs []docstore.Document) {
		notifications := make([]models.TeamNotification, 0, len(docs))
		for _, doc := range docs {
			notifications = append(notifications, models.TeamNotificationFromDocument(doc))
		}
		sort.Slice(notifications, func(i, j int) bool {
			return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
		})
		fn(notifications)
	})
}
