package models

import (
	"time"
)

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Cid        string    `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	Post       Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsAccepted bool      `gorm:"default:false" json:"is_accepted"` // 被帖子作者采纳为答案
	CreatedAt  time.Time `json:"created_at"`
}
