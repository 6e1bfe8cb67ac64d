package port

import (
	"context"

	realtime "mesaYaCore/internal/modules/realtime/domain"
)

// EventPublisher receives lifecycle events after a booking or review commit.
// Publishing happens outside the restaurant's booking lock and never fails the
// originating operation.
type EventPublisher interface {
	Publish(ctx context.Context, msg *realtime.Message)
}
