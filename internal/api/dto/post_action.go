package dto

// PostActionReq 1-执行 2-撤销
type PostActionReq struct {
	Action int8 `json:"action" binding:"required,oneof=1 2"`
}

// CommentCreateDTO 评论请求
type CommentCreateDTO struct {
	PostID  uint64 `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required,max=500"`
}

// CommentDTO 评论视图
type CommentDTO struct {
	ID        uint64          `json:"id"`
	PostID    uint64          `json:"post_id"`
	UserID    uint64          `json:"user_id"`
	Content   string          `json:"content"`
	Author    *ProfileCardDTO `json:"author,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// ReportCreateDTO 举报请求
type ReportCreateDTO struct {
	Reason string `json:"reason" binding:"required,max=255"`
}
