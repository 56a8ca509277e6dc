package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"gemora/internal/infrastructure/notify"
	apperrors "gemora/pkg/errors"
)

// SocketHandler upgrades authenticated clients onto the notification hub.
type SocketHandler struct {
	hub *notify.Hub
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // restrict in production
	},
}

func NewSocketHandler(hub *notify.Hub) *SocketHandler {
	return &SocketHandler{
		hub: hub,
	}
}

func (h *SocketHandler) HandleSocket(c echo.Context) error {
	userID, ok := c.Get("uid").(string)
	if !ok || userID == "" {
		return apperrors.Unauthorized("Authentication required", nil)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return apperrors.Internal("Failed to upgrade connection", err)
	}

	client := &notify.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.hub.Register <- client

	go client.ReadPump(h.hub)
	go client.WritePump()

	return nil
}
