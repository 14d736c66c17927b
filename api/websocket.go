package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; restrict in production
	},
}

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// WSMessage is the JSON frame exchanged over the websocket.
type WSMessage struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// WSClient is a connected websocket peer.
type WSClient struct {
	hub  *WSHub
	send chan WSMessage

	mu      sync.Mutex
	closed  bool
	tickers map[string]bool // nil means receive everything
}

// trySend queues a message without blocking. Returns false if the client is
// closed or its buffer is full. All sends go through here: the read pump and
// the hub write concurrently, and the channel must never be written after
// closeSend.
func (c *WSClient) trySend(msg WSMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
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

// closeSend closes the send channel exactly once.
func (c *WSClient) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// subscribe narrows the client to updates for the given tickers.
func (c *WSClient) subscribe(tickers []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tickers == nil {
		c.tickers = make(map[string]bool)
	}
	for _, t := range tickers {
		c.tickers[t] = true
	}
}

// wants reports whether the client should receive a message about ticker.
// Messages without a ticker go to everyone.
func (c *WSClient) wants(ticker string) bool {
	if ticker == "" {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tickers == nil {
		return true
	}
	return c.tickers[ticker]
}

// WSHub routes broadcast messages to connected clients.
type WSHub struct {
	clients    map[*WSClient]bool
	register   chan *WSClient
	unregister chan *WSClient
	broadcast  chan WSMessage
}

// NewWSHub creates an idle hub. Call Run to start it.
func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		broadcast:  make(chan WSMessage, 64),
	}
}

// Run processes hub events until the process exits.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}

		case msg := <-h.broadcast:
			ticker := messageTicker(msg)
			for client := range h.clients {
				if !client.wants(ticker) {
					continue
				}
				if !client.trySend(msg) {
					// Slow consumer, drop it.
					delete(h.clients, client)
					client.closeSend()
				}
			}
		}
	}
}

// Register adds a client to the hub.
func (h *WSHub) Register(c *WSClient) { h.register <- c }

// Unregister removes a client from the hub.
func (h *WSHub) Unregister(c *WSClient) { h.unregister <- c }

// Broadcast queues a message for every subscribed client. Never blocks;
// drops the message if the hub queue is full.
func (h *WSHub) Broadcast(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		log.Printf("websocket broadcast queue full, dropping %s", msg.Type)
	}
}

// messageTicker extracts the ticker from a message payload, if any.
func messageTicker(msg WSMessage) string {
	data, ok := msg.Data.(map[string]any)
	if !ok {
		return ""
	}
	t, _ := data["ticker"].(string)
	return t
}

// handleWebSocket upgrades HTTP connections to WebSocket and streams
// sentiment update events to the client.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &WSClient{
		hub:  s.wsHub,
		send: make(chan WSMessage, 256),
	}

	s.wsHub.Register(client)

	go wsWritePump(conn, client)
	go wsReadPump(conn, client)
}

// wsReadPump pumps messages from the WebSocket connection to the hub.
func wsReadPump(conn *websocket.Conn, client *WSClient) {
	defer func() {
		client.hub.Unregister(client)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "subscribe":
			client.subscribe(subscriptionTickers(msg))
			client.trySend(WSMessage{Type: "subscribed", Data: msg.Data})
		case "ping":
			client.trySend(WSMessage{Type: "pong"})
		}
	}
}

// subscriptionTickers pulls the ticker list out of a subscribe payload.
// Accepts {"tickers": ["TCS.NS", ...]} or {"ticker": "TCS.NS"}.
func subscriptionTickers(msg WSMessage) []string {
	data, ok := msg.Data.(map[string]any)
	if !ok {
		return nil
	}
	if t, ok := data["ticker"].(string); ok && t != "" {
		return []string{t}
	}
	raw, ok := data["tickers"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if t, ok := v.(string); ok && t != "" {
			out = append(out, t)
		}
	}
	return out
}

// wsWritePump pumps messages from the hub to the WebSocket connection.
func wsWritePump(conn *websocket.Conn, client *WSClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("WebSocket marshal error: %v", err)
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Flush queued messages
			n := len(client.send)
			for i := 0; i < n; i++ {
				nextMsg := <-client.send
				nextData, err := json.Marshal(nextMsg)
				if err != nil {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, nextData); err != nil {
					return
				}
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
