package models

import (
	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type TeamRole string

const (
	TeamRoleDeveloper TeamRole = "developer"
	TeamRoleDesigner  TeamRole = "designer"
	TeamRolePM        TeamRole = "pm"
)

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityAway      Availability = "away"
)

// UserProfile is the per-user document in the users collection, keyed
// by user id and shared across projects.
type UserProfile struct {
	UserID       string       `json:"user_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Role         TeamRole     `json:"role"`
	Skills       []string     `json:"skills"`
	Online       bool         `json:"online"`
	Availability Availability `json:"availability"`
}

func (p UserProfile) ToDocument() docstore.Document {
	return docstore.Document{
		"user_id":      p.UserID,
		"name":         p.Name,
		"email":        p.Email,
		"role":         string(p.Role),
		"skills":       p.Skills,
		"online":       p.Online,
		"availability": string(p.Availability),
	}
}

func UserProfileFromDocument(doc docstore.Document) UserProfile {
	return UserProfile{
		UserID:       docstore.ReadString(doc, "user_id"),
		Name:         docstore.ReadString(doc, "name"),
		Email:        docstore.ReadString(doc, "email"),
		Role:         TeamRole(docstore.ReadString(doc, "role")),
		Skills:       docstore.ReadStringSlice(doc, "skills"),
		Online:       docstore.ReadBool(doc, "online"),
		Availability: Availability(docstore.ReadString(doc, "availability")),
	}
}
