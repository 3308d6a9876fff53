package models

import (
	"time"
)

const (
	ReactionLike       = "like"
	ReactionUpvote     = "upvote"
	ReactionHelpful    = "helpful"
	ReactionInsightful = "insightful"
)

// Reaction 帖子反应。唯一索引保证每个用户对一个帖子只保留一条记录，
// 再次提交同类型即取消，不同类型即切换。
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reaction_post_user" json:"post_id"`
	Post      Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reaction_post_user" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Type      string    `gorm:"size:20;default:'like';not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidReactionType 校验客户端提交的反应类型
func ValidReactionType(t string) bool {
	switch t {
	case ReactionLike, ReactionUpvote, ReactionHelpful, ReactionInsightful:
		return true
	}
	return false
}
