package models

import (
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type ProjectDuration string

const (
	Duration24h ProjectDuration = "24h"
	Duration48h ProjectDuration = "48h"
)

// Hours returns the hackathon length in hours. Unknown values fall back
// to 24.
func (d ProjectDuration) Hours() float64 {
	if d == Duration48h {
		return 48
	}
	return 24
}

type ProjectStatus string

const (
	ProjectStatusIdeation  ProjectStatus = "ideation"
	ProjectStatusBuilding  ProjectStatus = "building"
	ProjectStatusSubmitted ProjectStatus = "submitted"
)

// Project is a hackathon project. The member set always contains the
// creator. Status transitions are advisory.
type Project struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Duration     ProjectDuration `json:"duration"`
	CreatorID    string          `json:"creator_id"`
	MemberIDs    []string        `json:"member_ids"`
	JoinCode     string          `json:"join_code"`
	Status       ProjectStatus   `json:"status"`
	IdeaAnalysis string          `json:"idea_analysis,omitempty"`
	RepoURL      string          `json:"repo_url,omitempty"`
	DemoURL      string          `json:"demo_url,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (p Project) ToDocument() docstore.Document {
	doc := docstore.Document{
		"id":         p.ID,
		"name":       p.Name,
		"duration":   string(p.Duration),
		"creator_id": p.CreatorID,
		"member_ids": p.MemberIDs,
		"join_code":  p.JoinCode,
		"status":     string(p.Status),
		"created_at": docstore.WriteTime(p.CreatedAt),
	}
	if p.Description != "" {
		doc["description"] = p.Description
	}
	if p.IdeaAnalysis != "" {
		doc["idea_analysis"] = p.IdeaAnalysis
	}
	if p.RepoURL != "" {
		doc["repo_url"] = p.RepoURL
	}
	if p.DemoURL != "" {
		doc["demo_url"] = p.DemoURL
	}
	return doc
}

func ProjectFromDocument(doc docstore.Document) Project {
	return Project{
		ID:           docstore.ReadString(doc, "id"),
		Name:         docstore.ReadString(doc, "name"),
		Description:  docstore.ReadString(doc, "description"),
		Duration:     ProjectDuration(docstore.ReadString(doc, "duration")),
		CreatorID:    docstore.ReadString(doc, "creator_id"),
		MemberIDs:    docstore.ReadStringSlice(doc, "member_ids"),
		JoinCode:     docstore.ReadString(doc, "join_code"),
		Status:       ProjectStatus(docstore.ReadString(doc, "status")),
		IdeaAnalysis: docstore.ReadString(doc, "idea_analysis"),
		RepoURL:      docstore.ReadString(doc, "repo_url"),
		DemoURL:      docstore.ReadString(doc, "demo_url"),
		CreatedAt:    docstore.ReadTime(doc, "created_at"),
	}
}

type ProjectRole string

const (
	RoleAdmin  ProjectRole = "admin"
	RoleMember ProjectRole = "member"
	RoleViewer ProjectRole = "viewer"
)

// ProjectRoleRecord is the per-(project, user) role document, keyed
// `{project_id}_{user_id}` in the project_roles collection.
type ProjectRoleRecord struct {
	ProjectID string      `json:"project_id"`
	UserID    string      `json:"user_id"`
	Role      ProjectRole `json:"role"`
	GrantedAt time.Time   `json:"granted_at"`
}

func (r ProjectRoleRecord) Key() string {
	return CompositeKey(r.ProjectID, r.UserID)
}

func (r ProjectRoleRecord) ToDocument() docstore.Document {
	return docstore.Document{
		"project_id": r.ProjectID,
		"user_id":    r.UserID,
		"role":       string(r.Role),
		"granted_at": docstore.WriteTime(r.GrantedAt),
	}
}

func ProjectRoleFromDocument(doc docstore.Document) ProjectRoleRecord {
	return ProjectRoleRecord{
		ProjectID: docstore.ReadString(doc, "project_id"),
		UserID:    docstore.ReadString(doc, "user_id"),
		Role:      ProjectRole(docstore.ReadString(doc, "role")),
		GrantedAt: docstore.ReadTime(doc, "granted_at"),
	}
}
