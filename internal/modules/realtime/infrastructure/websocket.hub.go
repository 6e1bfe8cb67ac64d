package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"mesaYaCore/internal/modules/realtime/domain"
)

// Hub delivers lifecycle events to connected websocket clients. Clients either
// subscribe to specific topics or receive everything; an event carrying a userId
// in its metadata is additionally narrowed to that user's connections.
type Hub struct {
	topics  map[string]map[*Client]struct{}
	clients map[string]*Client
	global  map[*Client]struct{}
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
		global:  make(map[*Client]struct{}),
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.clients[c.key()]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.key()] = c
	slog.Info("ws client registered", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	delete(h.clients, c.key())
	delete(h.global, c)
	c.close()
	slog.Info("ws client detached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

// AttachClient registers the client on the given topics; with none, the client
// becomes a global subscriber receiving every event.
func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	attached := 0
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
			attached++
		}
	}
	if attached == 0 {
		h.mu.Lock()
		h.global[c] = struct{}{}
		h.mu.Unlock()
	}
	slog.Info("ws client attached", slog.String("userId", c.userID), slog.Any("topics", topics))
}

// Broadcast fans the event out to topic subscribers and global listeners,
// honouring per-user targeting metadata. Slow clients are detached rather than
// blocking the event path.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	subscribers := h.topics[msg.Topic]
	targets := make([]*Client, 0, len(subscribers)+len(h.global))
	seen := make(map[*Client]struct{}, len(subscribers)+len(h.global))
	for c := range subscribers {
		targets = append(targets, c)
		seen[c] = struct{}{}
	}
	for c := range h.global {
		if _, ok := seen[c]; ok {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	targetUser := ""
	if msg.Metadata != nil {
		targetUser = strings.TrimSpace(msg.Metadata["userId"])
	}

	for _, c := range targets {
		if targetUser != "" && !c.receiveAll && c.userID != targetUser {
			continue
		}
		if !c.trySend(data) {
			go h.detachClient(c)
		}
	}
}

// EnableReceiveAll marks a client (manager dashboards) as exempt from per-user
// targeting.
func (h *Hub) EnableReceiveAll(c *Client) {
	h.mu.Lock()
	c.receiveAll = true
	h.mu.Unlock()
}
