package domain

import "strings"

const (
	EntityReservations = "reservations"
	EntityReviews      = "reviews"
	SystemEntity       = "system"

	ActionCreated   = "created"
	ActionCancelled = "cancelled"
	ActionConnected = "connected"
	ActionError     = "error"

	TopicSystemConnected = SystemEntity + "." + ActionConnected
	TopicSystemError     = SystemEntity + "." + ActionError
)

// CreatedTopic returns the canonical created topic for the given entity.
func CreatedTopic(entity string) string {
	return EventTopic(entity, ActionCreated)
}

// CancelledTopic returns the canonical cancelled topic for the given entity.
func CancelledTopic(entity string) string {
	return EventTopic(entity, ActionCancelled)
}

// EventTopic joins entity and action into the canonical dotted topic.
func EventTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
