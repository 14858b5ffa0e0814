package dto

// RegisterDTO 注册请求
type RegisterDTO struct {
	Username    string `json:"username" binding:"required,min=3,max=20"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=64"`
	DisplayName string `json:"display_name" binding:"max=50"`
}

// CredentialDTO 登录请求
type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// UserDTO 当前登录用户信息
type UserDTO struct {
	ID          uint64   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Bio         *string  `json:"bio"`
	AvatarURL   string   `json:"avatar_url"`
	IsVerified  bool     `json:"is_verified"`
	IsPremium   bool     `json:"is_premium"`
	Roles       []string `json:"roles,omitempty"`
	CreatedAt   string   `json:"created_at"`
}
