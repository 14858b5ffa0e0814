package kafka

import "context"

// NotificationEvent 通知事件，互动写库成功后投递，由消费组异步落库。
type NotificationEvent struct {
	Type        string  `json:"type" validate:"required,oneof=like comment repost follow"`
	ActorID     uint64  `json:"actor_id" validate:"required"`
	RecipientID uint64  `json:"recipient_id" validate:"required"`
	PostID      *uint64 `json:"post_id,omitempty"`
}

// Publisher 通知事件发布方
type Publisher interface {
	PublishNotification(ctx context.Context, event *NotificationEvent) error
}
