package dto

import "time"

// FeedPostDTO 信息流中的文章，正文不下发
type FeedPostDTO struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Excerpt       string     `json:"excerpt"`
	Tags          []string   `json:"tags"`
	Category      *string    `json:"category"`
	FeaturedImage *string    `json:"featured_image"`
	PublishedAt   *time.Time `json:"published_at"`
	ViewCount     int64      `json:"view_count"`
	LikeCount     int64      `json:"like_count"`
	Author        *AuthorDTO `json:"author"`
}

// FeedPageDTO 首页信息流分页
type FeedPageDTO struct {
	Posts      []*FeedPostDTO `json:"posts"`
	HasMore    bool           `json:"has_more"`
	NextCursor *string        `json:"next_cursor"`
}

// FollowingDTO 关注列表项
type FollowingDTO struct {
	ID              uint64     `json:"id"`
	Name            string     `json:"name"`
	Username        *string    `json:"username"`
	ImageURL        *string    `json:"image_url"`
	FollowedAt      time.Time  `json:"followed_at"`
	RecentPostCount int        `json:"recent_post_count"`
	LastPostAt      *time.Time `json:"last_post_at"`
}

// SuggestionPostDTO 推荐用户的代表作
type SuggestionPostDTO struct {
	ID        uint64 `json:"id"`
	Title     string `json:"title"`
	ViewCount int64  `json:"view_count"`
	LikeCount int64  `json:"like_count"`
}

// SuggestionDTO 推荐关注的用户
type SuggestionDTO struct {
	ID              uint64               `json:"id"`
	Name            string               `json:"name"`
	Username        *string              `json:"username"`
	ImageURL        *string              `json:"image_url"`
	FollowerCount   int                  `json:"follower_count"`
	PostCount       int                  `json:"post_count"`
	EngagementScore int64                `json:"engagement_score"`
	LastPostAt      *time.Time           `json:"last_post_at"`
	RecentPosts     []*SuggestionPostDTO `json:"recent_posts"`
}
