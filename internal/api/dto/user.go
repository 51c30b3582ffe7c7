package dto

import "time"

// AuthorDTO 文章作者快照
type AuthorDTO struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Username *string `json:"username"`
	ImageURL *string `json:"image_url"`
}

// CurrentUserDTO 当前登录用户
type CurrentUserDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ImageURL     *string   `json:"image_url"`
	Username     *string   `json:"username"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// PublicProfileDTO 公开主页资料
type PublicProfileDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Username   *string   `json:"username"`
	ImageURL   *string   `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	ExternalID string    `json:"external_id"`
}

// ChangeUsernameDTO 修改用户名，长度与唯一性由服务层校验
type ChangeUsernameDTO struct {
	Username string `json:"username" validate:"username"`
}

// FollowCountDTO 关注/粉丝数
type FollowCountDTO struct {
	Count int64 `json:"count"`
}

// IsFollowDTO 是否已关注
type IsFollowDTO struct {
	IsFollowing bool `json:"is_following"`
}
