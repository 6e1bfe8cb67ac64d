package domain

import (
	"strings"
	"time"
)

// Message is the lifecycle event shape shared by the websocket hub and the kafka
// publisher.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewEvent composes a message with its canonical topic. Empty metadata values
// are dropped so targeting stays unambiguous.
func NewEvent(entity, action, resourceID string, data any, metadata map[string]string, at time.Time) *Message {
	cleaned := make(map[string]string, len(metadata))
	for key, value := range metadata {
		trimmedKey := strings.TrimSpace(key)
		trimmedValue := strings.TrimSpace(value)
		if trimmedKey == "" || trimmedValue == "" {
			continue
		}
		cleaned[trimmedKey] = trimmedValue
	}
	if len(cleaned) == 0 {
		cleaned = nil
	}
	return &Message{
		Topic:      EventTopic(entity, action),
		Entity:     strings.TrimSpace(entity),
		Action:     strings.TrimSpace(action),
		ResourceID: strings.TrimSpace(resourceID),
		Metadata:   cleaned,
		Data:       data,
		Timestamp:  at.UTC(),
	}
}
