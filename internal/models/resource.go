package models

import (
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type ResourceType string

const (
	ResourceTypeLink    ResourceType = "link"
	ResourceTypeFile    ResourceType = "file"
	ResourceTypeSnippet ResourceType = "snippet"
)

// SharedResource is a link, file reference or code snippet shared with
// the team.
type SharedResource struct {
	ID         string       `json:"id"`
	ProjectID  string       `json:"project_id"`
	Type       ResourceType `json:"type"`
	UploaderID string       `json:"uploader_id"`
	Name       string       `json:"name"`
	URL        string       `json:"url,omitempty"`
	Content    string       `json:"content,omitempty"`
	Size       int          `json:"size,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (r SharedResource) ToDocument() docstore.Document {
	doc := docstore.Document{
		"id":          r.ID,
		"project_id":  r.ProjectID,
		"type":        string(r.Type),
		"uploader_id": r.UploaderID,
		"name":        r.Name,
		"created_at":  docstore.WriteTime(r.CreatedAt),
	}
	if r.URL != "" {
		doc["url"] = r.URL
	}
	if r.Content != "" {
		doc["content"] = r.Content
	}
	if r.Size > 0 {
		doc["size"] = r.Size
	}
	return doc
}

func SharedResourceFromDocument(doc docstore.Document) SharedResource {
	return SharedResource{
		ID:         docstore.ReadString(doc, "id"),
		ProjectID:  docstore.ReadString(doc, "project_id"),
		Type:       ResourceType(docstore.ReadString(doc, "type")),
		UploaderID: docstore.ReadString(doc, "uploader_id"),
		Name:       docstore.ReadString(doc, "name"),
		URL:        docstore.ReadString(doc, "url"),
		Content:    docstore.ReadString(doc, "content"),
		Size:       docstore.ReadInt(doc, "size"),
		CreatedAt:  docstore.ReadTime(doc, "created_at"),
	}
}
