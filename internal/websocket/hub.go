package websocket

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Message types for real-time updates
const (
	MessageTypeListUpdate = "list_update"
	MessageTypeItemUpdate = "item_update"
)

// WebSocket message structure
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	Time int64       `json:"time"`
}

// Client represents a connected WebSocket client
type Client struct {
	ID   string
	Hub  *Hub
	Conn *websocket.Conn
	Send chan Message
}

// Hub maintains the set of active clients and broadcasts list changes to
// every connected device, so a second phone refetches after a toggle.
type Hub struct {
	// Registered clients
	Clients map[*Client]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// Broadcast channel for sending messages
	Broadcast chan Message

	// Mutex for thread-safe operations
	mutex sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Message),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.Clients[client] = true

	log.Printf("Client %s connected. Total clients: %d", client.ID, len(h.Clients))
}

// unregisterClient removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.Clients[client]; ok {
		delete(h.Clients, client)
		close(client.Send)

		log.Printf("Client %s disconnected. Remaining clients: %d", client.ID, len(h.Clients))
	}
}

// broadcastMessage sends a message to all connected clients. Clients with
// a full send buffer are dropped rather than blocking the hub.
func (h *Hub) broadcastMessage(message Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for client := range h.Clients {
		select {
		case client.Send <- message:
		default:
			close(client.Send)
			delete(h.Clients, client)
		}
	}
}

// BroadcastListUpdate tells clients the computed list changed and should
// be refetched
func (h *Hub) BroadcastListUpdate(data interface{}) {
	h.Broadcast <- Message{
		Type: MessageTypeListUpdate,
		Data: data,
	}
}

// BroadcastItemUpdate tells clients a single item's checked state changed
func (h *Hub) BroadcastItemUpdate(data interface{}) {
	h.Broadcast <- Message{
		Type: MessageTypeItemUpdate,
		Data: data,
	}
}

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// In production, implement proper origin checking
		return true
	},
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:   generateClientID(),
		Hub:  h,
		Conn: conn,
		Send: make(chan Message, 256),
	}

	// Register client with hub
	h.Register <- client

	// Start goroutines for reading and writing
	go client.writePump()
	go client.readPump()
}

// generateClientID creates a unique client ID
func generateClientID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "client_" + hex.EncodeToString(bytes)
}
