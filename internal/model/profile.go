package model

import "time"

type Profile struct {
	UserID      uint64  `gorm:"primaryKey" json:"userId"`
	Username    string  `gorm:"type:varchar(50);uniqueIndex:idx_profile_username;not null" json:"username"`
	DisplayName string  `gorm:"type:varchar(50);not null" json:"displayName"`
	Bio         *string `gorm:"type:varchar(160)" json:"bio"`
	AvatarURL   string  `gorm:"type:varchar(512);column:avatar_url;default:'default_avatar.png'" json:"avatarUrl"`
	IsVerified  bool    `gorm:"type:tinyint(1);default:0" json:"isVerified"`
	IsPremium   bool    `gorm:"type:tinyint(1);default:0" json:"isPremium"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Profile) TableName() string {
	return "profiles"
}
