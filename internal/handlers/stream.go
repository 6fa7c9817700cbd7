package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iotsphere/iotsphere-backend/internal/logger"
	"github.com/iotsphere/iotsphere-backend/internal/sse"
)

type StreamHandler struct {
	log *logger.Logger
	hub *sse.Hub
}

func NewStreamHandler(baseLog *logger.Logger, hub *sse.Hub) *StreamHandler {
	return &StreamHandler{
		log: baseLog.With("handler", "StreamHandler"),
		hub: hub,
	}
}

// GET /api/stream?channels=alerts,devices
// Holds the connection open and pushes alert and device events as SSE.
func (h *StreamHandler) Stream(c *gin.Context) {
	channels := strings.Split(c.DefaultQuery("channels", sse.ChannelAlerts), ",")

	client := h.hub.NewClient()
	for _, ch := range channels {
		h.hub.AddChannel(client, ch)
	}
	defer h.hub.CloseClient(client)

	h.log.Debug("SSE stream opened", "clientID", client.ID, "channels", channels)
	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
