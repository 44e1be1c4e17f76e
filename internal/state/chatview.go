package state

import (
	"context"
	"sync"
	"time"

	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/google/uuid"
)

// MessageSender is the slice of the chat service the view needs.
type MessageSender interface {
	SendMessage(ctx context.Context, projectID, senderID, senderName string, senderType models.SenderType, content string) (*models.ChatMessage, error)
}

// ChatView is the chat-screen state holder. Sends are optimistic: the
// message appears locally before the write confirms and is dropped if
// the write fails.
type ChatView struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	sender   MessageSender
}

func NewChatView(sender MessageSender) *ChatView {
	return &ChatView{sender: sender}
}

// Apply replaces the view with a subscription snapshot.
func (v *ChatView) Apply(snapshot []models.ChatMessage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append([]models.ChatMessage(nil), snapshot...)
}

// Messages returns a copy of the current message list.
func (v *ChatView) Messages() []models.ChatMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.ChatMessage(nil), v.messages...)
}

// Send appends a provisional message locally, issues the remote write,
// and removes the provisional copy if the write fails. On success it is
// swapped for the confirmed message; the next snapshot reconciles any
// remaining drift.
func (v *ChatView) Send(ctx context.Context, projectID, senderID, senderName, content string) error {
	provisional := models.ChatMessage{
		ID:         "pending-" + uuid.NewString(),
		ProjectID:  projectID,
		SenderID:   senderID,
		SenderName: senderName,
		SenderType: models.SenderUser,
		Content:    content,
		Timestamp:  time.Now(),
	}

	v.mu.Lock()
	v.messages = append(v.messages, provisional)
	v.mu.Unlock()

	sent, err := v.sender.SendMessage(ctx, projectID, senderID, senderName, models.SenderUser, content)

	v.mu.Lock()
	for i := range v.messages {
		if v.messages[i].ID != provisional.ID {
			continue
		}
		if err != nil {
			v.messages = append(v.messages[:i], v.messages[i+1:]...)
		} else {
			v.messages[i] = *sent
		}
		break
	}
	v.mu.Unlock()

	return err
}
