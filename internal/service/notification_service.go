package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/car-marketplace/internal/events"
)

const notificationQueueKey = "marketplace:events"

// NotificationService forwards domain events to a Redis list where
// downstream consumers (mailers, analytics) pick them up.
type NotificationService struct {
	dispatcher events.Dispatcher
	cache      Cache
	logger     *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, cache Cache, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, cache: cache, logger: logger}
}

// RegisterHandlers subscribes to the event types worth notifying on.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventUserDeactivated,
		events.EventUserRoleChanged,
		events.EventVehicleListed,
		events.EventVehicleStatusChanged,
		events.EventVehicleRemoved,
	} {
		s.dispatcher.Subscribe(eventType, s.enqueue)
	}
}

func (s *NotificationService) enqueue(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	s.logger.Info("domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("actor_id", event.ActorID),
	)

	if s.cache == nil {
		return nil
	}
	if err := s.cache.RPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		s.logger.Warn("failed to enqueue event", zap.Error(err))
		return err
	}
	return nil
}
