package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"wizspeek/metrics"
	"wizspeek/models"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type envelope struct {
	userID string
	data   []byte
}

// Manager routes events to the open connections of one user. A user may be
// connected from several devices at once.
type Manager struct {
	clients    map[string]map[*Client]bool
	direct     chan envelope
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	metrics    *metrics.Metrics
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager
	closed  bool // guarded by manager.mu; set before send is closed
}

func NewManager(m *metrics.Metrics) *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]bool),
		direct:     make(chan envelope, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		metrics:    m,
	}
}

func (m *Manager) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(m.done)
			m.closeAll()
			return

		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.userID] == nil {
				m.clients[client.userID] = make(map[*Client]bool)
			}
			m.clients[client.userID][client] = true
			client.send <- welcomeMessage(client.userID)
			total := m.countLocked()
			m.mu.Unlock()
			m.metrics.SetWebSocketConnections(total)
			log.Printf("✅ WebSocket client registered for %s. Total clients: %d", client.userID, total)

		case client := <-m.unregister:
			m.mu.Lock()
			m.removeLocked(client)
			total := m.countLocked()
			m.mu.Unlock()
			m.metrics.SetWebSocketConnections(total)
			log.Printf("❌ WebSocket client unregistered. Total clients: %d", total)

		case msg := <-m.direct:
			m.mu.Lock()
			for client := range m.clients[msg.userID] {
				select {
				case client.send <- msg.data:
				default:
					m.removeLocked(client)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) removeLocked(client *Client) {
	conns, ok := m.clients[client.userID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	client.closed = true
	close(client.send)
	if len(conns) == 0 {
		delete(m.clients, client.userID)
	}
}

func (m *Manager) countLocked() int {
	n := 0
	for _, conns := range m.clients {
		n += len(conns)
	}
	return n
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, conns := range m.clients {
		for client := range conns {
			m.removeLocked(client)
		}
	}
}

// Notify queues an event for every connection of userID. Events for users
// with no open connection are dropped; the next profile fetch is authoritative.
func (m *Manager) Notify(userID primitive.ObjectID, n models.Notification) {
	data, err := json.Marshal(map[string]interface{}{
		"type":    n.Type,
		"payload": n.Payload,
	})
	if err != nil {
		log.Printf("❌ Error marshaling WebSocket message: %v", err)
		return
	}

	select {
	case m.direct <- envelope{userID: userID.Hex(), data: data}:
		m.metrics.ObserveNotification("websocket", nil)
	default:
		log.Printf("⚠️ WebSocket queue full, dropping %s for %s", n.Type, userID.Hex())
	}
}

func (m *Manager) IsOnline(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}

func (m *Manager) GetConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// TokenParser resolves a session token to a user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func WebSocketHandler(manager *Manager, tokens TokenParser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			log.Printf("❌ WebSocket connection rejected: no token provided")
			http.Error(w, "Token required", http.StatusUnauthorized)
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			log.Printf("❌ WebSocket connection rejected: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			userID:  userID,
			send:    make(chan []byte, 256),
			manager: manager,
		}

		select {
		case manager.register <- client:
		case <-manager.done:
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}

// welcomeMessage is the first frame of every connection. send is freshly
// buffered when it is queued, so the write never blocks.
func welcomeMessage(userID string) []byte {
	msg, _ := json.Marshal(map[string]interface{}{
		"type": "connected",
		"payload": map[string]interface{}{
			"userId":  userID,
			"message": "WebSocket connected successfully",
			"time":    time.Now().Unix(),
		},
	})
	return msg
}

// trySend queues msg unless the manager already closed this client or its
// buffer is full.
func (c *Client) trySend(msg []byte) bool {
	c.manager.mu.RLock()
	defer c.manager.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-c.manager.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket read error: %v", err)
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			log.Printf("❌ WebSocket message unmarshal error: %v", err)
			continue
		}

		// clients only talk to keep the connection alive
		if data["type"] == "ping" {
			c.sendPong()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendPong() {
	response := map[string]interface{}{
		"type": "pong",
		"payload": map[string]interface{}{
			"time": time.Now().Unix(),
		},
	}

	msg, err := json.Marshal(response)
	if err != nil {
		log.Printf("❌ Error marshaling pong: %v", err)
		return
	}

	c.trySend(msg)
}
