package models

import (
	"time"
)

// FriendRequest 好友请求，接受或拒绝后删除
type FriendRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FromID    uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair" json:"from_id"`
	From      User      `gorm:"foreignKey:FromID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"from"`
	ToID      uint      `gorm:"not null;uniqueIndex:idx_friend_request_pair;index" json:"to_id"`
	To        User      `gorm:"foreignKey:ToID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Friendship 好友关系。接受请求时双向各写一行，删除好友时双向删除。
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friendship_pair" json:"friend_id"`
	Friend    User      `gorm:"foreignKey:FriendID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"friend"`
	CreatedAt time.Time `json:"created_at"`
}
