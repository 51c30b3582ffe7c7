package dto

import "time"

// CreatePostDTO 新建文章，PublishNow 与 ScheduledFor 互斥，都为空时保存为草稿
type CreatePostDTO struct {
	Title         string     `json:"title" binding:"required" validate:"min=1,max=200"`
	Content       string     `json:"content" binding:"required" validate:"min=1"`
	Tags          []string   `json:"tags" validate:"max=10,dive,min=1,max=30"`
	Category      *string    `json:"category" validate:"omitempty,max=50"`
	FeaturedImage *string    `json:"featured_image" validate:"omitempty,url,max=512"`
	PublishNow    bool       `json:"publish_now"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
}

// PostDTO 文章详情
type PostDTO struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	Tags          []string   `json:"tags"`
	Category      *string    `json:"category"`
	FeaturedImage *string    `json:"featured_image"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
	ViewCount     int64      `json:"view_count"`
	LikeCount     int64      `json:"like_count"`
	Author        *AuthorDTO `json:"author,omitempty"`
}

// DailyStatDTO 单日浏览量
type DailyStatDTO struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// PostStatsDTO 文章近 N 天浏览统计
type PostStatsDTO struct {
	PostID     uint64          `json:"post_id"`
	TotalViews int64           `json:"total_views"`
	Days       []*DailyStatDTO `json:"days"`
}
