package handlers

import (
	"io"
	"net/http"

	"mindhaven/services/room"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RoomHandler exposes consultation rooms and their message threads.
type RoomHandler struct {
	Svc room.RoomService
}

func NewRoomHandler(svc room.RoomService) *RoomHandler {
	return &RoomHandler{Svc: svc}
}

// ListMine handles GET /api/rooms.
func (h *RoomHandler) ListMine(c *gin.Context) {
	rooms, err := h.Svc.GetRoomsForClient(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (h *RoomHandler) GetRoom(c *gin.Context) {
	r, err := h.Svc.GetRoom(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ListMessages handles GET /api/rooms/:id/messages.
func (h *RoomHandler) ListMessages(c *gin.Context) {
	msgs, err := h.Svc.ListMessages(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// SendMessage handles POST /api/rooms/:id/messages.
func (h *RoomHandler) SendMessage(c *gin.Context) {
	var body struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		getLogger(c).Error("SendMessage: invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	msg, err := h.Svc.SendMessage(c.Request.Context(), c.Param("id"), currentUserID(c), body.Content)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// MarkRead handles POST /api/rooms/:id/read.
func (h *RoomHandler) MarkRead(c *gin.Context) {
	n, err := h.Svc.MarkAsRead(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}

// UnreadCount handles GET /api/rooms/:id/unread.
func (h *RoomHandler) UnreadCount(c *gin.Context) {
	n, err := h.Svc.UnreadCount(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

// StreamMessages handles GET /api/rooms/:id/stream. Replays the room
// history as SSE events, then tails live messages until the client
// disconnects.
func (h *RoomHandler) StreamMessages(c *gin.Context) {
	history, live, stop, err := h.Svc.StreamMessages(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer stop()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	for _, msg := range history {
		c.SSEvent("message", msg)
	}
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-live:
			if !ok {
				return false
			}
			c.SSEvent("message", msg)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
