package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pantrysage/v1/internal/domain/inventory"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

// ResultMessage is the wire format pushed to connected browsers
type ResultMessage struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// WebSocketHub pushes result messages to connected WebSocket clients.
// Clients that fail a write are dropped; they are expected to reconnect.
type WebSocketHub struct {
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]bool
	mutex    sync.RWMutex
	logger   *zap.Logger
}

// NewWebSocketHub creates a new notification hub
func NewWebSocketHub(logger *zap.Logger) *WebSocketHub {
	return &WebSocketHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*websocket.Conn]bool),
		logger:  logger.Named("notify-ws"),
	}
}

// HandleWS upgrades an HTTP request to a WebSocket subscription
func (h *WebSocketHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
	h.logger.Debug("Client subscribed", zap.String("remote", conn.RemoteAddr().String()))

	// Reader loop only notices disconnects; clients never send payloads.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Notify broadcasts the result message to all connected clients
func (h *WebSocketHub) Notify(ctx context.Context, kind inventory.Outcome, message string) error {
	msg := ResultMessage{
		Kind:      string(kind),
		Message:   message,
		Timestamp: time.Now().Unix(),
	}

	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			h.logger.Debug("Dropping stale client", zap.Error(err))
			h.drop(conn)
		}
	}
	return nil
}

// Close disconnects all clients
func (h *WebSocketHub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *WebSocketHub) drop(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.clients[conn] {
		conn.Close()
		delete(h.clients, conn)
	}
}
