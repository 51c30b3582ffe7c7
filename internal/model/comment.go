package model

import (
	"time"
)

const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusRejected = "rejected"
)

type Comment struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	PostID      uint64    `gorm:"not null;index:idx_post_status,priority:1" json:"post_id"`
	AuthorID    *uint64   `gorm:"index:idx_author_id" json:"author_id"`
	AuthorName  string    `gorm:"type:varchar(100);not null" json:"author_name"`
	AuthorEmail *string   `gorm:"type:varchar(255)" json:"author_email,omitempty"`
	Content     string    `gorm:"type:varchar(2000);not null" json:"content"`
	Status      string    `gorm:"type:varchar(16);not null;default:'approved';index:idx_post_status,priority:2" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
