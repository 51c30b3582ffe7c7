package service

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/model"
	"Creatr/internal/pkg/consts"
	"Creatr/internal/pkg/metrics"
	"Creatr/internal/pkg/security"
	"Creatr/internal/pkg/util"
	"Creatr/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/samber/lo"
)

const followingPreviewPosts = 3

// FollowingCache 关注 ID 列表缓存
type FollowingCache interface {
	GetFollowingIDs(ctx context.Context, userID uint64) ([]uint64, bool, error)
	SetFollowingIDs(ctx context.Context, userID uint64, ids []uint64) error
	Invalidate(ctx context.Context, userIDs ...uint64) error
}

type UserFollowService interface {
	FollowingOf(ctx context.Context, userID uint64) ([]uint64, error)
	FollowersOf(ctx context.Context, userID uint64) ([]uint64, error)
	GetFollowing(ctx context.Context, identity *security.Identity, limit int) ([]*dto.FollowingDTO, error)
	GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error)
	IsFollowing(ctx context.Context, userID, followingID uint64) (bool, error)
	CreateUserFollow(ctx context.Context, userID, followingID uint64) error
	DeleteUserFollow(ctx context.Context, userID, followingID uint64) error
}

type UserFollowServiceImpl struct {
	userFollowRepo repository.UserFollowRepo
	userRepo       repository.UserRepo
	postRepo       repository.PostRepo
	identity       IdentityService
	cache          FollowingCache
	metrics        metrics.Recorder
}

// NewUserFollowService cache 为 nil 时每次都查库
func NewUserFollowService(
	userFollowRepo repository.UserFollowRepo,
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	identity IdentityService,
	cache FollowingCache,
	recorder metrics.Recorder,
) UserFollowService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &UserFollowServiceImpl{
		userFollowRepo: userFollowRepo,
		userRepo:       userRepo,
		postRepo:       postRepo,
		identity:       identity,
		cache:          cache,
		metrics:        recorder,
	}
}

func (s *UserFollowServiceImpl) FollowingOf(ctx context.Context, userID uint64) ([]uint64, error) {
	if s.cache != nil {
		ids, ok, err := s.cache.GetFollowingIDs(ctx, userID)
		if err != nil {
			log.WarnContext(ctx, "follow cache read failed", "user_id", userID, "err", err)
		} else if ok {
			s.metrics.FollowCacheHit()
			return ids, nil
		}
		s.metrics.FollowCacheMiss()
	}

	ids, err := s.userFollowRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err = s.cache.SetFollowingIDs(ctx, userID, ids); err != nil {
			log.WarnContext(ctx, "follow cache write failed", "user_id", userID, "err", err)
		}
	}
	return ids, nil
}

func (s *UserFollowServiceImpl) FollowersOf(ctx context.Context, userID uint64) ([]uint64, error) {
	return s.userFollowRepo.GetFollowerIDs(ctx, userID)
}

// GetFollowing 当前用户的关注列表，附带每人最近 3 篇已发布文章的数量与时间
func (s *UserFollowServiceImpl) GetFollowing(ctx context.Context, identity *security.Identity, limit int) (out []*dto.FollowingDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRanking(metrics.OpFollowing, time.Since(start), len(out), err) }()

	limit = util.ClampLimit(limit, consts.DefaultFollowingLimit, consts.MaxPageLimit)
	out = make([]*dto.FollowingDTO, 0)

	viewer, err := s.identity.Resolve(ctx, identity)
	if err != nil || viewer == nil {
		return out, err
	}

	follows, err := s.userFollowRepo.GetUserFollowing(ctx, viewer.ID, limit, 0)
	if err != nil {
		return nil, err
	}
	if len(follows) == 0 {
		return out, nil
	}

	users, err := s.userRepo.GetUserByIds(ctx, lo.Map(follows, func(f *model.Follow, _ int) uint64 { return f.FollowingID }))
	if err != nil {
		return nil, err
	}
	userMap := lo.Associate(users, func(u *model.User) (uint64, *model.User) { return u.ID, u })

	for _, f := range follows {
		user, ok := userMap[f.FollowingID]
		if !ok {
			continue
		}

		posts, err := s.postRepo.ListPublished(ctx, repository.PublishedPostQuery{
			AuthorIDs: []uint64{user.ID},
			Limit:     followingPreviewPosts,
		})
		if err != nil {
			return nil, err
		}

		item := &dto.FollowingDTO{
			ID:              user.ID,
			Name:            user.Name,
			Username:        user.Username,
			ImageURL:        user.ImageURL,
			FollowedAt:      f.CreatedAt,
			RecentPostCount: len(posts),
		}
		if len(posts) > 0 {
			item.LastPostAt = posts[0].PublishedAt
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *UserFollowServiceImpl) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.userFollowRepo.GetUserFollowerCount(ctx, userID)
}

func (s *UserFollowServiceImpl) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.userFollowRepo.GetUserFollowingCount(ctx, userID)
}

func (s *UserFollowServiceImpl) IsFollowing(ctx context.Context, userID, followingID uint64) (bool, error) {
	follow, err := s.userFollowRepo.GetUserFollow(ctx, userID, followingID)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

func (s *UserFollowServiceImpl) CreateUserFollow(ctx context.Context, userID, followingID uint64) error {
	if userID == followingID {
		return ErrUserFollowSelf
	}

	target, err := s.userRepo.GetUserById(ctx, followingID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	count, err := s.GetUserFollowingCount(ctx, userID)
	if err != nil {
		return err
	}
	if count >= consts.MaxFollowingCount {
		return ErrUserFollowLimit
	}

	isFollowing, err := s.IsFollowing(ctx, userID, followingID)
	if err != nil {
		return err
	}
	if isFollowing {
		return ErrUserFollowExist
	}

	err = s.userFollowRepo.CreateUserFollow(ctx, &model.Follow{
		FollowerID:  userID,
		FollowingID: followingID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *UserFollowServiceImpl) DeleteUserFollow(ctx context.Context, userID, followingID uint64) error {
	if _, err := s.userFollowRepo.DeleteUserFollow(ctx, userID, followingID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *UserFollowServiceImpl) invalidate(ctx context.Context, userID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		log.WarnContext(ctx, "follow cache invalidate failed", "user_id", userID, "err", err)
	}
}
