package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
)

func TestPushEncodesSnapshotFrame(t *testing.T) {
	session := NewSession(nil)

	session.push("tasks", []models.Task{{ID: "t1", Title: "Build the demo"}})

	select {
	case frame := <-session.send:
		var snapshot Snapshot
		require.NoError(t, json.Unmarshal(frame, &snapshot))
		assert.Equal(t, "tasks", snapshot.Entity)
		items, ok := snapshot.Items.([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
	default:
		t.Fatal("expected a frame on the send channel")
	}
}

func TestPushDropsFrameWhenBufferFull(t *testing.T) {
	session := NewSession(nil)
	for i := 0; i < sendBufferSize; i++ {
		session.push("activities", nil)
	}

	// Must not block even though the channel is full.
	session.push("activities", nil)

	assert.Len(t, session.send, sendBufferSize)
}
