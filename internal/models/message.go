package models

import (
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
)

type SenderType string

const (
	SenderUser SenderType = "user"
	SenderAI   SenderType = "ai"
)

// ChatMessage is an append-only team chat entry, ordered by timestamp
// ascending.
type ChatMessage struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	SenderID   string     `json:"sender_id"`
	SenderName string     `json:"sender_name"`
	SenderType SenderType `json:"sender_type"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp"`
}

func (m ChatMessage) ToDocument() docstore.Document {
	return docstore.Document{
		"id":          m.ID,
		"project_id":  m.ProjectID,
		"sender_id":   m.SenderID,
		"sender_name": m.SenderName,
		"sender_type": string(m.SenderType),
		"content":     m.Content,
		"timestamp":   docstore.WriteTime(m.Timestamp),
	}
}

func ChatMessageFromDocument(doc docstore.Document) ChatMessage {
	return ChatMessage{
		ID:         docstore.ReadString(doc, "id"),
		ProjectID:  docstore.ReadString(doc, "project_id"),
		SenderID:   docstore.ReadString(doc, "sender_id"),
		SenderName: docstore.ReadString(doc, "sender_name"),
		SenderType: SenderType(docstore.ReadString(doc, "sender_type")),
		Content:    docstore.ReadString(doc, "content"),
		Timestamp:  docstore.ReadTime(doc, "timestamp"),
	}
}
