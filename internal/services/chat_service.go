package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/google/uuid"
)

var ErrEmptyMessage = errors.New("message content is empty")

// ChatService appends messages to a project's team chat and streams
// ordered snapshots to subscribers.
type ChatService struct {
	store *docstore.Store
}

func NewChatService(store *docstore.Store) *ChatService {
	return &ChatService{store: store}
}

// SendMessage appends a message from a user or the AI assistant.
func (s *ChatService) SendMessage(ctx context.Context, projectID, senderID, senderName string, senderType models.SenderType, content string) (*models.ChatMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}

	message := models.ChatMessage{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		SenderID:   senderID,
		SenderName: senderName,
		SenderType: senderType,
		Content:    content,
		Timestamp:  time.Now(),
	}

	if err := s.store.Set(ctx, models.CollectionMessages, message.ID, message.ToDocument()); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return &message, nil
}

// SubscribeToMessages pushes the project's full message history to fn
// on every change, ordered by timestamp ascending.
func (s *ChatService) SubscribeToMessages(ctx context.Context, projectID string, fn func([]models.ChatMessage)) func() {
	filters := []docstore.Filter{docstore.Where("project_id", projectID)}
	return s.store.Subscribe(ctx, models.CollectionMessages, filters, func(docs []docstore.Document) {
		messages := make([]models.ChatMessage, 0, len(docs))
		for _, doc := range docs {
			messages = append(messages, models.ChatMessageFromDocument(doc))
		}
		sort.Slice(messages, func(i, j int) bool {
			return messages[i].Timestamp.Before(messages[j].Timestamp)
		})
		fn(messages)
	})
}
