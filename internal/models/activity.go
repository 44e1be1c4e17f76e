package models

import (
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type ActivityType string

const (
	ActivityTaskCreated   ActivityType = "task_created"
	ActivityTaskUpdated   ActivityType = "task_updated"
	ActivityMemberJoined  ActivityType = "member_joined"
	ActivityMemberRemoved ActivityType = "member_removed"
	ActivityResourceAdded ActivityType = "resource_added"
)

// LiveActivity is a feed entry describing a team action. Snapshots are
// delivered newest first, capped to the 50 most recent.
type LiveActivity struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"project_id"`
	ActorID     string       `json:"actor_id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}

func (a LiveActivity) ToDocument() docstore.Document {
	return docstore.Document{
		"id":          a.ID,
		"project_id":  a.ProjectID,
		"actor_id":    a.ActorID,
		"type":        string(a.Type),
		"description": a.Description,
		"timestamp":   docstore.WriteTime(a.Timestamp),
	}
}

func LiveActivityFromDocument(doc docstore.Document) LiveActivity {
	return LiveActivity{
		ID:          docstore.ReadString(doc, "id"),
		ProjectID:   docstore.ReadString(doc, "project_id"),
		ActorID:     docstore.ReadString(doc, "actor_id"),
		Type:        ActivityType(docstore.ReadString(doc, "type")),
		Description: docstore.ReadString(doc, "description"),
		Timestamp:   docstore.ReadTime(doc, "timestamp"),
	}
}

type NotificationType string

const (
	NotificationMention        NotificationType = "mention"
	NotificationTaskAssigned   NotificationType = "task_assigned"
	NotificationMilestoneDue   NotificationType = "milestone_due"
	NotificationMemberActivity NotificationType = "member_activity"
)

// TeamNotification targets a single recipient. The read flag is mutated
// independently of other fields.
type TeamNotification struct {
	ID          string           `json:"id"`
	ProjectID   string           `json:"project_id"`
	RecipientID string           `json:"recipient_id"`
	Type        NotificationType `json:"type"`
	Message     string           `json:"message"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (n TeamNotification) ToDocument() docstore.Document {
	return docstore.Document{
		"id":           n.ID,
		"project_id":   n.ProjectID,
		"recipient_id": n.RecipientID,
		"type":         string(n.Type),
		"message":      n.Message,
		"read":         n.Read,
		"created_at":   docstore.WriteTime(n.CreatedAt),
	}
}

func TeamNotificationFromDocument(doc docstore.Document) TeamNotification {
	return TeamNotification{
		ID:          docstore.ReadString(doc, "id"),
		ProjectID:   docstore.ReadString(doc, "project_id"),
		RecipientID: docstore.ReadString(doc, "recipient_id"),
		Type:        NotificationType(docstore.ReadString(doc, "type")),
		Message:     docstore.ReadString(doc, "message"),
		Read:        docstore.ReadBool(doc, "read"),
		CreatedAt:   docstore.ReadTime(doc, "created_at"),
	}
}
