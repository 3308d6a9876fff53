package models

import (
	"time"
)

// BadgeAward 已颁发的勋章。勋章定义本身在 services 层静态维护，
// 这里只持久化颁发记录。唯一索引保证同一勋章对同一用户最多颁发一次，
// 颁发后永不回收。
type BadgeAward struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_award_user_badge" json:"-"`
	BadgeID     string    `gorm:"size:40;not null;uniqueIndex:idx_award_user_badge" json:"badgeId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:200" json:"description"`
	Icon        string    `gorm:"size:10" json:"icon"`
	EarnedAt    time.Time `json:"earnedAt"`
}
