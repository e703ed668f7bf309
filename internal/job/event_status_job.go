package job

import (
	"BiuBiuStar/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// EventStatusJob 按时钟推进活动状态，upcoming→ongoing→completed
type EventStatusJob struct {
	eventRepo repository.EventRepo
}

func NewEventStatusJob(eventRepo repository.EventRepo) *EventStatusJob {
	return &EventStatusJob{eventRepo: eventRepo}
}

func (s *EventStatusJob) Run() {
	ctx := context.Background()

	affected, err := s.eventRepo.RollForwardStatus(ctx, time.Now())
	if err != nil {
		log.Error("failed to roll forward event status", "err", err)
		return
	}
	if affected > 0 {
		log.Info("event status job finished", "affected", affected)
	}
}
