package models

import (
	"time"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Attachment 帖子附件（文件名、访问路径、字节大小）
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

type Post struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Pid         string       `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID      uint         `gorm:"not null;index:idx_posts_author_created" json:"user_id"`
	User        User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string       `gorm:"size:200;not null" json:"title"`
	Content     string       `gorm:"type:text;not null" json:"content"`
	ContentType string       `gorm:"size:10;default:'html'" json:"content_type"` // html, markdown, text
	Images      []string     `gorm:"serializer:json" json:"images"`
	Attachments []Attachment `gorm:"serializer:json" json:"attachments"`
	Visibility  string       `gorm:"size:10;default:'public';index" json:"visibility"` // public, private
	Tags        []string     `gorm:"serializer:json" json:"tags"`

	// 冗余计数，由评论/反应写路径维护
	ReactionsCount int `gorm:"default:0" json:"reactions_count"`
	CommentsCount  int `gorm:"default:0" json:"comments_count"`

	CreatedAt time.Time `gorm:"index:idx_posts_author_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，查询时按当前用户填充
	UserReaction string `gorm:"-" json:"user_reaction,omitempty"`
}
