package network

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/axon-labs/axonsim/types"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

// WebSocketManager fans the node's notification stream out to every
// connected client.
type WebSocketManager struct {
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	conns map[*websocket.Conn]chan types.Notification
}

func NewWebSocketManager(notifications <-chan types.Notification) *WebSocketManager {
	m := &WebSocketManager{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The REST surface already enforces origins through CORS; the
			// demo stream stays open.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]chan types.Notification),
	}
	go m.broadcast(notifications)
	return m
}

func (m *WebSocketManager) broadcast(notifications <-chan types.Notification) {
	for notification := range notifications {
		m.mu.RLock()
		for _, send := range m.conns {
			select {
			case send <- notification:
			default:
				// Slow client, drop rather than stall the stream.
			}
		}
		m.mu.RUnlock()
	}
}

// NotificationsHandler upgrades the request and streams notifications until
// the client goes away.
func (m *WebSocketManager) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WARN: websocket upgrade failed: %v", err)
		return
	}

	send := make(chan types.Notification, 32)
	m.mu.Lock()
	m.conns[conn] = send
	m.mu.Unlock()
	log.Printf("INFO: notification stream client connected from %s", r.RemoteAddr)

	go m.writePump(conn, send)
	m.readPump(conn)
}

func (m *WebSocketManager) writePump(conn *websocket.Conn, send <-chan types.Notification) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case notification, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(notification); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages; it exists to drive pong handling and to
// detect disconnects.
func (m *WebSocketManager) readPump(conn *websocket.Conn) {
	defer m.drop(conn)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *WebSocketManager) drop(conn *websocket.Conn) {
	m.mu.Lock()
	if send, ok := m.conns[conn]; ok {
		close(send)
		delete(m.conns, conn)
	}
	m.mu.Unlock()
	conn.Close()
	log.Printf("INFO: notification stream client disconnected")
}
