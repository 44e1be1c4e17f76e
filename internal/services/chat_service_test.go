package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhairnarLokesh/hackmate-ai/internal/docstore"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

func setupChatService(t *testing.T) *ChatService {
	s := miniredis.RunT(t)
	store := docstore.NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { store.Close() })
	return NewChatService(store)
}

func TestSendMessage(t *testing.T) {
	service := setupChatService(t)

	message, err := service.SendMessage(context.Background(), "p1", "u1", "Alice", models.SenderUser, "hello team")
	require.NoError(t, err)
	assert.Equal(t, "p1", message.ProjectID)
	assert.Equal(t, "Alice", message.SenderName)
	assert.Equal(t, models.SenderUser, message.SenderType)
	assert.NotEmpty(t, message.ID)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	service := setupChatService(t)

	_, err := service.SendMessage(context.Background(), "p1", "u1", "Alice", models.SenderUser, "   ")
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSubscribeToMessagesOrdersByTimestamp(t *testing.T) {
	service := setupChatService(t)
	ctx := context.Background()

	_, err := service.SendMessage(ctx, "p1", "u1", "Alice", models.SenderUser, "first")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = service.SendMessage(ctx, "p1", "ai", "HackMate AI", models.SenderAI, "second")
	require.NoError(t, err)
	_, err = service.SendMessage(ctx, "p2", "u1", "Alice", models.SenderUser, "elsewhere")
	require.NoError(t, err)

	snapshots := make(chan []models.ChatMessage, 8)
	unsubscribe := service.SubscribeToMessages(ctx, "p1", func(messages []models.ChatMessage) {
		snapshots <- messages
	})
	defer unsubscribe()

	initial := <-snapshots
	require.Len(t, initial, 2)
	assert.Equal(t, "first", initial[0].Content)
	assert.Equal(t, "second", initial[1].Content)
	assert.Equal(t, models.SenderAI, initial[1].SenderType)

	time.Sleep(5 * time.Millisecond)
	_, err = service.SendMessage(ctx, "p1", "u2", "Bob", models.SenderUser, "third")
	require.NoError(t, err)

	select {
	case next := <-snapshots:
		require.Len(t, next, 3)
		assert.Equal(t, "third", next[2].Content)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message snapshot")
	}
}
