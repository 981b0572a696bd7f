// Package menu pushes recents list updates to menu widgets.
//
// Hub is the MenuNotifier used by the server: every connected websocket
// client receives the current list on connect and again after each change.
package menu

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"recents-server/internal/logging"
	"recents-server/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 8
)

// MessageTypeRecents tags list updates sent to clients.
const MessageTypeRecents = "recents"

// Message is the JSON frame sent to menu clients.
type Message struct {
	Type    string   `json:"type"`
	Entries []string `json:"entries"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans list updates out to websocket clients and remembers the last
// list for clients that connect later.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []string
	closed  bool
}

// NewHub creates a hub seeded with the initial list.
func NewHub(initial []string) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[*client]struct{}),
		last:    append([]string{}, initial...),
	}
}

// UpdateRecents records entries as the current list and broadcasts it.
// Clients whose send buffer is full are disconnected.
func (h *Hub) UpdateRecents(entries []string) {
	msg, err := encode(entries)
	if err != nil {
		logging.Error("failed to encode menu update: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = append([]string{}, entries...)
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			logging.Warn("Dropping slow menu client %s", c.conn.RemoteAddr())
			metrics.MenuDroppedClientsTotal.Inc()
			h.removeLocked(c)
		}
	}
	metrics.MenuBroadcastsTotal.Inc()
}

// Current returns a copy of the last published list.
func (h *Hub) Current() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.last...)
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a websocket and streams updates until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		logging.Debug("menu websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.register(c) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	msg, err := encode(h.last)
	if err != nil {
		return false
	}
	h.clients[c] = struct{}{}
	c.send <- msg
	metrics.MenuClients.Set(float64(len(h.clients)))
	logging.Debug("Menu client connected: %s", c.conn.RemoteAddr())
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	metrics.MenuClients.Set(float64(len(h.clients)))
}

// readPump discards client input; it exists to notice disconnects and
// answer pings.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug("menu client read error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.remove(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

func encode(entries []string) ([]byte, error) {
	if entries == nil {
		entries = []string{}
	}
	return json.Marshal(Message{Type: MessageTypeRecents, Entries: entries})
}

// Func adapts a plain function to the MenuNotifier interface.
type Func func(entries []string)

// UpdateRecents calls f.
func (f Func) UpdateRecents(entries []string) {
	f(entries)
}
