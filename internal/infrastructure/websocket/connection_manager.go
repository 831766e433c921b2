package websocket

import (
	"encoding/json"
	"sync"

	"auction-pipeline/pkg/logger"

	"github.com/gorilla/websocket"
)

// Conn wraps a gorilla connection with a write lock, since gorilla allows
// only one concurrent writer per connection.
type Conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

func (c *Conn) Send(message []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.ws.WriteMessage(websocket.TextMessage, message)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// ConnectionManager tracks which connections watch which item so leader
// changes can be pushed to exactly the interested watchers.
type ConnectionManager struct {
	watchers map[string]map[*Conn]struct{} // itemID -> connections
	mutex    sync.RWMutex
	log      logger.Logger
}

func NewConnectionManager(log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		watchers: make(map[string]map[*Conn]struct{}),
		log:      log,
	}
}

func (cm *ConnectionManager) Register(itemID string, conn *Conn) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if cm.watchers[itemID] == nil {
		cm.watchers[itemID] = make(map[*Conn]struct{})
	}
	cm.watchers[itemID][conn] = struct{}{}

	cm.log.Info("Watcher registered", "item_id", itemID)
}

func (cm *ConnectionManager) Unregister(itemID string, conn *Conn) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if conns, exists := cm.watchers[itemID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(cm.watchers, itemID)
		}
	}

	cm.log.Info("Watcher unregistered", "item_id", itemID)
}

func (cm *ConnectionManager) BroadcastToItem(itemID string, message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	cm.mutex.RLock()
	conns := make([]*Conn, 0, len(cm.watchers[itemID]))
	for conn := range cm.watchers[itemID] {
		conns = append(conns, conn)
	}
	cm.mutex.RUnlock()

	for _, conn := range conns {
		if err := conn.Send(messageBytes); err != nil {
			cm.log.Error("Failed to send message", "item_id", itemID, "error", err)
			// Continue to other connections
		}
	}

	return nil
}
