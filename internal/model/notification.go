package model

import "time"

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeRepost  = "repost"
	NotificationTypeFollow  = "follow"
)

// Notification 站内通知，约束：ActorID 不等于 UserID
type Notification struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"userId"` // 接收者
	ActorID   uint64    `gorm:"not null" json:"actorId"`
	Type      string    `gorm:"type:varchar(20);not null" json:"type"`
	PostID    *uint64   `json:"postId"`
	IsRead    bool      `gorm:"type:tinyint(1);not null;default:0" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
