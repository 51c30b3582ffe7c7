package service

import (
	"Creatr/internal/model"
	"Creatr/internal/repository"
	"context"
	"time"
)

// SuggestionCandidateSource 推荐用户的候选集，viewerID 为 0 表示匿名
type SuggestionCandidateSource interface {
	Candidates(ctx context.Context, viewerID uint64) ([]*model.User, error)
}

// TrendingCandidateSource 热门帖子的候选集
type TrendingCandidateSource interface {
	Candidates(ctx context.Context, since time.Time) ([]*model.Post, error)
}

// AllUsersSource 除自己以外所有设置了用户名的用户
type AllUsersSource struct {
	userRepo repository.UserRepo
}

func NewAllUsersSource(userRepo repository.UserRepo) *AllUsersSource {
	return &AllUsersSource{userRepo: userRepo}
}

func (s *AllUsersSource) Candidates(ctx context.Context, viewerID uint64) ([]*model.User, error) {
	return s.userRepo.ListUsersWithUsername(ctx, viewerID)
}

// RecentPostsSource 窗口内发布的全部帖子
type RecentPostsSource struct {
	postRepo repository.PostRepo
}

func NewRecentPostsSource(postRepo repository.PostRepo) *RecentPostsSource {
	return &RecentPostsSource{postRepo: postRepo}
}

func (s *RecentPostsSource) Candidates(ctx context.Context, since time.Time) ([]*model.Post, error) {
	return s.postRepo.ListPublished(ctx, repository.PublishedPostQuery{PublishedSince: &since})
}
