// Package realtime streams synchronization-layer snapshots to a
// connected client over a WebSocket. Each connection owns its own set
// of subscriptions; closing the connection cancels all of them.
package realtime

import (
	"context"
	"encoding/json"
	"time"

	ws "github.com/coder/websocket"

	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

const (
	sendBufferSize = 32
	pingInterval   = 30 * time.Second
)

// Snapshot is one frame pushed to the client: the full current ordered
// result set for one entity, never a delta.
type Snapshot struct {
	Entity string `json:"entity"`
	Items  any    `json:"items"`
}

// Services bundles the synchronization-layer handles a session needs.
type Services struct {
	Projects      *services.ProjectService
	Tasks         *services.TaskService
	Chat          *services.ChatService
	Members       *services.MemberService
	Milestones    *services.MilestoneService
	Resources     *services.ResourceService
	Activities    *services.ActivityService
	Notifications *services.NotificationService
}

// Session represents a single WebSocket connection.
type Session struct {
	conn *ws.Conn
	send chan []byte
}

func NewSession(conn *ws.Conn) *Session {
	return &Session{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Run opens the project's subscriptions, starts the write pump, and
// blocks until the connection closes. All subscriptions are cancelled
// on return.
func (s *Session) Run(ctx context.Context, svc Services, project models.Project, userID string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unsubscribes := []func(){
		svc.Projects.SubscribeToProject(ctx, project.ID, func(p *models.Project) {
			s.push("project", p)
		}),
		svc.Tasks.SubscribeToTasks(ctx, project.ID, func(tasks []models.Task) {
			s.push("tasks", tasks)
		}),
		svc.Chat.SubscribeToMessages(ctx, project.ID, func(messages []models.ChatMessage) {
			s.push("messages", messages)
		}),
		svc.Members.SubscribeToProjectMembers(ctx, project.MemberIDs, func(members []models.UserProfile) {
			s.push("members", members)
		}),
		svc.Milestones.SubscribeToMilestones(ctx, project.ID, func(milestones []models.Milestone) {
			s.push("milestones", milestones)
		}),
		svc.Resources.SubscribeToResources(ctx, project.ID, func(resources []models.SharedResource) {
			s.push("resources", resources)
		}),
		svc.Activities.SubscribeToActivities(ctx, project.ID, func(activities []models.LiveActivity) {
			s.push("activities", activities)
		}),
		svc.Notifications.SubscribeToNotifications(ctx, project.ID, userID, func(notifications []models.TeamNotification) {
			s.push("notifications", notifications)
		}),
	}
	defer func() {
		for _, unsub := range unsubscribes {
			unsub()
		}
	}()

	go s.writePump(ctx)
	s.readPump(ctx)
}

func (s *Session) push(entity string, items any) {
	data, err := json.Marshal(Snapshot{Entity: entity, Items: items})
	if err != nil {
		return
	}
	select {
	case s.send <- data:
	default:
		// Client buffer full. Drop the frame; the next change
		// carries a full snapshot anyway.
	}
}

// readPump reads and discards incoming messages. It returns on error
// (connection close), which triggers cleanup.
func (s *Session) readPump(ctx context.Context) {
	for {
		if _, _, err := s.conn.Read(ctx); err != nil {
			return
		}
	}
}

// writePump drains the send channel and writes frames to the
// connection, sending periodic pings to detect stale clients.
func (s *Session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.send:
			if err := s.conn.Write(ctx, ws.MessageText, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.conn.Ping(ctx); err != nil {
				return
			}
		}
	}
}
