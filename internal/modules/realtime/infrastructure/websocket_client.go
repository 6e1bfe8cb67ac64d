package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mesaYaCore/internal/modules/realtime/domain"
)

// Client is one websocket connection owned by an authenticated user.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	userID     string
	sessionID  string
	subscribed map[string]struct{}
	receiveAll bool
	closeOnce  sync.Once

	// sendMu orders queueing against close; the hub broadcasts from a snapshot
	// taken outside its lock, so a detach can race an in-flight send.
	sendMu sync.Mutex
	closed bool
}

// subscribeCommand is the only inbound message clients may send: a request to
// follow an additional topic.
type subscribeCommand struct {
	Action string `json:"action"`
	Topic  string `json:"topic"`
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, sessionID string, buf int) *Client {
	if buf <= 0 {
		buf = 32
	}
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		userID:     strings.TrimSpace(userID),
		sessionID:  strings.TrimSpace(sessionID),
		subscribed: make(map[string]struct{}),
	}
}

func (c *Client) key() string {
	return c.userID + ":" + c.sessionID
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// trySend queues the payload unless the client is already closed or its send
// buffer is full.
func (c *Client) trySend(data []byte) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// SendDomainMessage marshals and queues one event for this client only.
func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	if !c.trySend(data) {
		slog.Warn("websocket send dropped", slog.String("userId", c.userID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(30 * time.Second)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(1 << 16)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd subscribeCommand
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("userId", c.userID), slog.Any("error", err))
			}
			return
		}
		action := strings.TrimSpace(cmd.Action)
		switch {
		case strings.EqualFold(action, "subscribe"):
			if topic := strings.TrimSpace(cmd.Topic); topic != "" {
				c.hub.subscribe(c, topic)
			}
		case action == "":
		default:
			c.SendDomainMessage(&domain.Message{
				Topic:     domain.TopicSystemError,
				Entity:    domain.SystemEntity,
				Action:    domain.ActionError,
				Data:      map[string]string{"error": "unknown action " + action},
				Timestamp: time.Now().UTC(),
			})
		}
	}
}
