package handlers

import (
	ws "github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/realtime"
)

// StreamHandler upgrades a project request to a WebSocket and streams
// snapshot frames for every entity the project workspace shows.
type StreamHandler struct {
	services realtime.Services
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(services realtime.Services) *StreamHandler {
	return &StreamHandler{services: services}
}

// Stream handles GET /api/projects/:id/stream.
func (h *StreamHandler) Stream(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	conn, err := ws.Accept(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close(ws.StatusInternalError, "session ended")

	session := realtime.NewSession(conn)
	session.Run(c.Request.Context(), h.services, project, userID)

	conn.Close(ws.StatusNormalClosure, "")
}
