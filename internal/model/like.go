package model

import (
	"time"
)

// Like UserID 为空表示匿名点赞
type Like struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_post_user,priority:1" json:"post_id"`
	UserID    *uint64   `gorm:"uniqueIndex:idx_post_user,priority:2;index:idx_user_id" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
