package models

import (
	"time"
)

// ReputationLog 声望变动明细。正数为增加，负数为扣除。
// 同时用于"每日登录奖励"的当日去重判断。
type ReputationLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Delta     int       `gorm:"not null" json:"delta"`
	CreatedAt time.Time `json:"created_at"`
}
