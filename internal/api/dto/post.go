package dto

// PostCreateDTO 发帖请求，ImageURL 由图片上传接口预先返回
type PostCreateDTO struct {
	Content  string  `json:"content" binding:"required,max=500"`
	ImageURL *string `json:"image_url"`
	RepostOf *uint64 `json:"repost_of"`
}

// PostDTO 聚合后的帖子视图
type PostDTO struct {
	ID           uint64          `json:"id"`
	UserID       uint64          `json:"user_id"`
	Content      string          `json:"content"`
	ImageURL     *string         `json:"image_url,omitempty"`
	RepostOf     *uint64         `json:"repost_of,omitempty"`
	Author       *ProfileCardDTO `json:"author,omitempty"`
	LikeCount    int64           `json:"like_count"`
	CommentCount int64           `json:"comment_count"`
	RepostCount  int64           `json:"repost_count"`
	IsLiked      bool            `json:"is_liked"`
	CreatedAt    string          `json:"created_at"`
}

// PostImageDTO 帖子图片上传结果
type PostImageDTO struct {
	ImageURL string `json:"image_url"`
}
