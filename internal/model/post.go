package model

import (
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type Post struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Content       string     `gorm:"type:mediumtext;not null" json:"content"`
	Status        string     `gorm:"type:varchar(16);not null;default:'draft';index:idx_status_published,priority:1;index:idx_author_status,priority:2" json:"status"`
	AuthorID      uint64     `gorm:"not null;index:idx_author_status,priority:1" json:"author_id"`
	Tags          []string   `gorm:"type:json;serializer:json" json:"tags"`
	Category      *string    `gorm:"type:varchar(64)" json:"category"`
	FeaturedImage *string    `gorm:"type:varchar(512)" json:"featured_image"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `gorm:"index:idx_status_published,priority:2" json:"published_at"`
	ScheduledFor  *time.Time `gorm:"index:idx_scheduled_for" json:"scheduled_for"`
	ViewCount     int64      `gorm:"not null;default:0" json:"view_count"`
	LikeCount     int64      `gorm:"not null;default:0" json:"like_count"`
}

func (Post) TableName() string {
	return "posts"
}

// IsPublished publishedAt 与 status 必须同时成立
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished && p.PublishedAt != nil
}
