package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"alumniportal/internal/model"
	"alumniportal/pkg/logger"
	"alumniportal/pkg/metrics"
	"alumniportal/pkg/mq"
)

// NotificationStore persists inbox entries.
type NotificationStore interface {
	Insert(ctx context.Context, n *model.Notification) error
	List(ctx context.Context) ([]model.Notification, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) (int64, error)
}

// Broadcaster is the fire-and-forget push channel.
type Broadcaster interface {
	Publish(routingKey string, payload any) error
}

// PendingCounter reports how many employer registrations await moderation.
type PendingCounter interface {
	CountPending(ctx context.Context) (int, error)
}

type NotificationService struct {
	store     NotificationStore
	broadcast Broadcaster
	pending   PendingCounter
	logger    *zap.Logger
}

func NewNotificationService(store NotificationStore, broadcast Broadcaster, pending PendingCounter, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		store:     store,
		broadcast: broadcast,
		pending:   pending,
		logger:    logger,
	}
}

// NotificationCreatedPayload is what connected listeners receive.
type NotificationCreatedPayload struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Emit persists a notification and broadcasts it. The broadcast is
// fire-and-forget: a publish failure is logged and never surfaced.
func (s *NotificationService) Emit(ctx context.Context, name, link, message string) {
	log := logger.WithTrace(ctx, s.logger)

	n := &model.Notification{
		Name:    name,
		Link:    link,
		Message: message,
	}

	if err := s.store.Insert(ctx, n); err != nil {
		log.Error("Failed to persist notification",
			zap.String("name", name),
			zap.Error(err),
		)
		metrics.IncrementNotificationsPublished("failed")
		return
	}

	payload := NotificationCreatedPayload{
		ID:        n.ID,
		Name:      n.Name,
		Link:      n.Link,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	}
	if err := s.broadcast.Publish(mq.RoutingKeyNotificationCreated, payload); err != nil {
		log.Warn("Notification broadcast failed",
			zap.Int64("notification_id", n.ID),
			zap.Error(err),
		)
	}
	metrics.IncrementNotificationsPublished("success")
}

// Inbox returns the persisted notifications, most recent first.
func (s *NotificationService) Inbox(ctx context.Context) ([]model.Notification, error) {
	return s.store.List(ctx)
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	return translateNotFound(s.store.Delete(ctx, id))
}

func (s *NotificationService) Clear(ctx context.Context) (int64, error) {
	return s.store.Clear(ctx)
}

// PendingEmployerCount feeds the admin badge.
func (s *NotificationService) PendingEmployerCount(ctx context.Context) (int, error) {
	return s.pending.CountPending(ctx)
}
