package usecase

import (
	"context"

	"mesaYaCore/internal/modules/realtime/application/port"
	"mesaYaCore/internal/modules/realtime/domain"
)

// BroadcastUseCase fans one event out to every configured transport. The booking
// and review use cases publish through it after their commit completes.
type BroadcastUseCase struct {
	targets []port.Broadcaster
}

func NewBroadcastUseCase(targets ...port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{targets: targets}
}

func (uc *BroadcastUseCase) Publish(ctx context.Context, msg *domain.Message) {
	if msg == nil {
		return
	}
	for _, target := range uc.targets {
		target.Broadcast(ctx, msg)
	}
}
