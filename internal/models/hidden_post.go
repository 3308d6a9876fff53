package models

import (
	"time"
)

// HiddenPost 用户从自己信息流中隐藏的帖子
type HiddenPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_hidden_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_hidden_user_post" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	CreatedAt time.Time `json:"created_at"`
}
