package dto

// NotificationDTO 通知视图
type NotificationDTO struct {
	ID        uint64          `json:"id"`
	Type      string          `json:"type"`
	Actor     *ProfileCardDTO `json:"actor,omitempty"`
	PostID    *uint64         `json:"post_id,omitempty"`
	IsRead    bool            `json:"is_read"`
	CreatedAt string          `json:"created_at"`
}

// UnreadCountDTO 未读数
type UnreadCountDTO struct {
	Count int64 `json:"count"`
}
