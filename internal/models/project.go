package models

import (
	"time"
)

const (
	ProjectStatusFuture     = "future"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusCompleted  = "completed"
)

type Project struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OwnerID       uint            `gorm:"not null;index" json:"owner_id"`
	Owner         User            `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"owner"`
	Title         string          `gorm:"size:200;not null" json:"title"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Status        string          `gorm:"size:20;default:'future'" json:"status"` // future, in-progress, completed
	Collaborators []User          `gorm:"many2many:project_collaborators;" json:"collaborators"`
	Updates       []ProjectUpdate `json:"updates"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProjectUpdate 项目进展记录
type ProjectUpdate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidProjectStatus 校验项目状态取值
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusFuture, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}
