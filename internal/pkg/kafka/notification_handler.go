package kafka

import (
	"context"
	log "log/slog"
	"time"

	"fluxo/internal/model"
	"fluxo/internal/pkg/cache"
	"fluxo/internal/pkg/util"
	"fluxo/internal/repository"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// NotificationHandler 消费通知事件并落库
type NotificationHandler struct {
	notificationRepo repository.NotificationRepo
	viewCache        cache.ViewCache
}

func NewNotificationHandler(notificationRepo repository.NotificationRepo, viewCache cache.ViewCache) *NotificationHandler {
	return &NotificationHandler{
		notificationRepo: notificationRepo,
		viewCache:        viewCache,
	}
}

func (s *NotificationHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer setup")
	return nil
}

func (s *NotificationHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notification consumer cleanup")
	return nil
}

func (s *NotificationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-notification consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-notification process batch error", "err", err)
		return err
	}
	return nil
}

func (s *NotificationHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event NotificationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		// 消息体损坏，重试也救不回来，记录后跳过
		log.ErrorContext(ctx, "unmarshal notification event error", "err", err)
		return nil
	}
	if err := util.ValidateDTO(&event); err != nil {
		log.WarnContext(ctx, "invalid notification event, skipped", "err", err)
		return nil
	}

	// 生产侧已抑制，这里兜底：永不给自己发通知
	if event.ActorID == event.RecipientID {
		return nil
	}

	notification := &model.Notification{
		UserID:    event.RecipientID,
		ActorID:   event.ActorID,
		Type:      event.Type,
		PostID:    event.PostID,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	if err := s.viewCache.Invalidate(ctx, cache.TagNotifications(event.RecipientID)); err != nil {
		log.WarnContext(ctx, "invalidate notification cache failed", "recipient", event.RecipientID, "err", err)
	}

	log.InfoContext(ctx, "notification persisted",
		"type", event.Type, "recipient", event.RecipientID, "actor", event.ActorID)
	return nil
}
