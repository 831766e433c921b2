package handlers

import (
	"net/http"

	wsinfra "auction-pipeline/internal/infrastructure/websocket"
	"auction-pipeline/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// WatchHandler upgrades watchers to a websocket that streams leader changes
// for one item.
type WatchHandler struct {
	connManager *wsinfra.ConnectionManager
	log         logger.Logger
}

func NewWatchHandler(connManager *wsinfra.ConnectionManager, log logger.Logger) *WatchHandler {
	return &WatchHandler{
		connManager: connManager,
		log:         log,
	}
}

func (h *WatchHandler) WatchItem(c echo.Context) error {
	itemID := c.Param("id")
	if itemID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item id required"})
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return err
	}

	wsConn := wsinfra.NewConn(conn)
	h.connManager.Register(itemID, wsConn)

	go h.readLoop(itemID, wsConn, conn)
	return nil
}

// readLoop discards inbound frames; its only job is noticing the disconnect.
func (h *WatchHandler) readLoop(itemID string, wsConn *wsinfra.Conn, conn *websocket.Conn) {
	defer func() {
		h.connManager.Unregister(itemID, wsConn)
		wsConn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
