package dto

// ReportDTO 举报工单视图
type ReportDTO struct {
	ID             uint64          `json:"id"`
	Reporter       *ProfileCardDTO `json:"reporter,omitempty"`
	ReportedPostID *uint64         `json:"reported_post_id,omitempty"`
	ReportedUserID *uint64         `json:"reported_user_id,omitempty"`
	PostSnippet    string          `json:"post_snippet,omitempty"`
	Reason         string          `json:"reason"`
	Status         string          `json:"status"`
	ReviewedBy     *uint64         `json:"reviewed_by,omitempty"`
	ReviewedAt     *string         `json:"reviewed_at,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// ReportStatusDTO 工单状态流转请求
type ReportStatusDTO struct {
	Status string `json:"status" binding:"required,oneof=resolved dismissed"`
}
