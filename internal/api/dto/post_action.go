package dto

import "time"

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	PostID  uint64 `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required" validate:"min=1,max=2000"`
}

// CommentDTO 评论返回详情
type CommentDTO struct {
	ID         uint64     `json:"id"`
	PostID     uint64     `json:"post_id"`
	AuthorID   *uint64    `json:"author_id"`
	AuthorName string     `json:"author_name"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"created_at"`
	Author     *AuthorDTO `json:"author,omitempty"`
}

// LikeStateDTO 点赞状态
type LikeStateDTO struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
