package models

import (
	"time"
)

// Whitelist 注册白名单。邮箱统一小写存储。
type Whitelist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	AddedBy   string    `gorm:"size:50;default:'admin'" json:"added_by"`
	Note      string    `gorm:"size:200" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
