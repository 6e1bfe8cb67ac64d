package domain

import (
	"testing"
	"time"
)

func TestEventTopic(t *testing.T) {
	if got := EventTopic(EntityReservations, ActionCreated); got != "reservations.created" {
		t.Fatalf("EventTopic = %q, want reservations.created", got)
	}
	if got := CancelledTopic(EntityReservations); got != "reservations.cancelled" {
		t.Fatalf("CancelledTopic = %q, want reservations.cancelled", got)
	}
	if got := EventTopic("", ActionCreated); got != "" {
		t.Fatalf("empty entity should yield no topic, got %q", got)
	}
}

func TestNewEventCleansMetadata(t *testing.T) {
	at := time.Date(2026, 9, 1, 19, 0, 0, 0, time.FixedZone("CET", 3600))
	msg := NewEvent(EntityReviews, ActionCreated, " 42 ", nil, map[string]string{
		" userId ": " 7 ",
		"empty":    "   ",
		"":         "dropped",
	}, at)

	if msg.Topic != "reviews.created" {
		t.Fatalf("topic = %q", msg.Topic)
	}
	if msg.ResourceID != "42" {
		t.Fatalf("resource id = %q, want 42", msg.ResourceID)
	}
	if len(msg.Metadata) != 1 || msg.Metadata["userId"] != "7" {
		t.Fatalf("metadata = %v, want only userId", msg.Metadata)
	}
	if msg.Timestamp.Location() != time.UTC {
		t.Fatal("timestamps should be normalized to UTC")
	}
}

func TestNewEventDropsEmptyMetadata(t *testing.T) {
	msg := NewEvent(EntityReservations, ActionCancelled, "1", nil, map[string]string{"x": " "}, time.Now())
	if msg.Metadata != nil {
		t.Fatalf("all-blank metadata should collapse to nil, got %v", msg.Metadata)
	}
}
