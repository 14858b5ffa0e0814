package model

import (
	"time"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Content   string    `gorm:"type:varchar(500);not null" json:"content"`
	ImageURL  *string   `gorm:"type:varchar(512);column:image_url" json:"image_url"`
	RepostOf  *uint64   `gorm:"index:idx_repost_of" json:"repost_of"` // 为空表示原创帖
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
