package models

import (
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusCompleted MilestoneStatus = "completed"
)

type MilestoneType string

const (
	MilestoneTypePlanning    MilestoneType = "planning"
	MilestoneTypeDevelopment MilestoneType = "development"
	MilestoneTypeSubmission  MilestoneType = "submission"
)

// Milestone is a project deadline marker. Three defaults are created at
// project creation, spaced across the project duration.
type Milestone struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"project_id"`
	Name      string          `json:"name"`
	Deadline  time.Time       `json:"deadline"`
	Status    MilestoneStatus `json:"status"`
	Type      MilestoneType   `json:"type"`
}

func (m Milestone) ToDocument() docstore.Document {
	return docstore.Document{
		"id":         m.ID,
		"project_id": m.ProjectID,
		"name":       m.Name,
		"deadline":   docstore.WriteTime(m.Deadline),
		"status":     string(m.Status),
		"type":       string(m.Type),
	}
}

func MilestoneFromDocument(doc docstore.Document) Milestone {
	return Milestone{
		ID:        docstore.ReadString(doc, "id"),
		ProjectID: docstore.ReadString(doc, "project_id"),
		Name:      docstore.ReadString(doc, "name"),
		Deadline:  docstore.ReadTime(doc, "deadline"),
		Status:    MilestoneStatus(docstore.ReadString(doc, "status")),
		Type:      MilestoneType(docstore.ReadString(doc, "type")),
	}
}
