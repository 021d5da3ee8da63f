// Package spectate streams game snapshots to read-only watchers over
// WebSocket.
package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Watchers never send payloads, only control frames.
	maxMessageSize = 512

	// Pending frames per watcher before it is dropped.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Watchers are read-only
		return true
	},
}

// Message is the frame sent to watchers.
type Message struct {
	SessionID string          `json:"session_id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub keeps the watchers of every session and fans snapshots out to them.
// All bookkeeping happens on the Run goroutine.
type Hub struct {
	sessions   map[string]map[*client]bool
	last       map[string][]byte // Latest frame per session, replayed to new watchers
	broadcast  chan *Message
	register   chan *client
	unregister chan *client
	end        chan string
	count      chan countReq
	done       chan struct{}
	logger     *log.Logger
}

type countReq struct {
	sessionID string
	reply     chan int
}

// NewHub creates a hub. A nil logger discards log output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		sessions:   make(map[string]map[*client]bool),
		last:       make(map[string][]byte),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		end:        make(chan string),
		count:      make(chan countReq),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub events until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for _, clients := range h.sessions {
				for c := range clients {
					close(c.send)
				}
			}
			h.sessions = make(map[string]map[*client]bool)
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case m := <-h.broadcast:
			h.broadcastMessage(m)

		case id := <-h.end:
			delete(h.last, id)
			for c := range h.sessions[id] {
				h.unregisterClient(c)
			}

		case req := <-h.count:
			req.reply <- len(h.sessions[req.sessionID])
		}
	}
}

// Publish queues v, encoded as JSON, for every watcher of sessionID. It
// never blocks the caller; frames are dropped when the hub falls behind.
func (h *Hub) Publish(sessionID, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Warn("cannot encode frame", "session", sessionID, "err", err)
		return
	}
	select {
	case h.broadcast <- &Message{SessionID: sessionID, Event: event, Data: data}:
	default:
		h.logger.Debug("hub busy, frame dropped", "session", sessionID)
	}
}

// End forgets sessionID and disconnects its watchers.
func (h *Hub) End(sessionID string) {
	select {
	case h.end <- sessionID:
	case <-h.done:
	}
}

// Watchers returns the number of connected watchers for sessionID.
func (h *Hub) Watchers(sessionID string) int {
	reply := make(chan int, 1)
	select {
	case h.count <- countReq{sessionID: sessionID, reply: reply}:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Observer returns a callback that publishes each value as a snapshot event.
func Observer[T any](h *Hub, sessionID string) func(T) {
	return func(v T) {
		h.Publish(sessionID, "snapshot", v)
	}
}

// ServeWS upgrades the request and attaches the connection to sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) registerClient(c *client) {
	if h.sessions[c.sessionID] == nil {
		h.sessions[c.sessionID] = make(map[*client]bool)
	}
	h.sessions[c.sessionID][c] = true
	if frame, ok := h.last[c.sessionID]; ok {
		c.send <- frame
	}
	h.logger.Info("watcher joined", "session", c.sessionID, "watchers", len(h.sessions[c.sessionID]))
}

func (h *Hub) unregisterClient(c *client) {
	clients, ok := h.sessions[c.sessionID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)
	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}
	h.logger.Info("watcher left", "session", c.sessionID, "watchers", len(clients))
}

func (h *Hub) broadcastMessage(m *Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.logger.Warn("cannot encode message", "session", m.SessionID, "err", err)
		return
	}
	h.last[m.SessionID] = data

	for c := range h.sessions[m.SessionID] {
		select {
		case c.send <- data:
		default:
			// Slow watcher
			h.unregisterClient(c)
		}
	}
}

// readPump drains control frames and detects disconnects.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket closed", "session", c.sessionID, "err", err)
			}
			return
		}
	}
}

// writePump sends queued frames and keepalive pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
