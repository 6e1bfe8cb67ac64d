package port

import (
	"context"

	"mesaYaCore/internal/modules/realtime/domain"
)

// Broadcaster delivers a lifecycle event to one transport (websocket hub, kafka).
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}
