package dto

// ProfileCardDTO 嵌在帖子、评论、通知里的作者卡片
type ProfileCardDTO struct {
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
}

// ProfileDTO 个人主页视图
type ProfileDTO struct {
	UserID         uint64  `json:"user_id"`
	Username       string  `json:"username"`
	DisplayName    string  `json:"display_name"`
	Bio            *string `json:"bio"`
	AvatarURL      string  `json:"avatar_url"`
	IsVerified     bool    `json:"is_verified"`
	IsPremium      bool    `json:"is_premium"`
	FollowerCount  int64   `json:"follower_count"`
	FollowingCount int64   `json:"following_count"`
	IsFollowing    bool    `json:"is_following"`
	CreatedAt      string  `json:"created_at"`
}

// ProfileUpdateDTO 资料更新请求
type ProfileUpdateDTO struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=50"`
	Bio         *string `json:"bio" binding:"omitempty,max=160"`
}
