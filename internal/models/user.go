package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FullName string `gorm:"size:100" json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Avatar   string `json:"avatar"`
	Language string `gorm:"size:10;default:'en'" json:"language"` // 界面语言偏好 en/zh

	// 声望与等级。Level 始终由 Reputation 推导（每 100 分升一级），
	// 仅由 services 层写入，不可单独设置。
	Reputation int `gorm:"default:0;index" json:"reputation"`
	Level      int `gorm:"default:1" json:"level"`

	Stats  UserStats    `gorm:"embedded;embeddedPrefix:stat_" json:"stats"`
	Badges []BadgeAward `json:"badges,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserStats 累计行为计数器。与声望相互独立，仅作为勋章判定输入。
type UserStats struct {
	TotalPosts               int `gorm:"default:0" json:"totalPosts"`
	TotalComments            int `gorm:"default:0" json:"totalComments"`
	HelpfulReactionsReceived int `gorm:"default:0" json:"helpfulReactionsReceived"`
	TotalReactionsReceived   int `gorm:"default:0" json:"totalReactionsReceived"`
	AcceptedAnswers          int `gorm:"default:0" json:"acceptedAnswers"`
}

// UserPreview 关联展示用的精简用户信息（作者栏、好友列表等）
type UserPreview struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

func (u *User) Preview() UserPreview {
	return UserPreview{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}
