package service

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/model"
	"Creatr/internal/pkg/consts"
	"Creatr/internal/pkg/metrics"
	"Creatr/internal/pkg/security"
	"Creatr/internal/pkg/util"
	"Creatr/internal/ranking"
	"Creatr/internal/repository"
	"context"
	"time"

	"github.com/samber/lo"
)

type FeedService interface {
	GetFeed(ctx context.Context, identity *security.Identity, limit int, cursor string) (*dto.FeedPageDTO, error)
}

type FeedServiceImpl struct {
	identity IdentityService
	follows  UserFollowService
	postRepo repository.PostRepo
	userRepo repository.UserRepo
	weights  ranking.Weights
	metrics  metrics.Recorder
}

func NewFeedService(
	identity IdentityService,
	follows UserFollowService,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	weights ranking.Weights,
	recorder metrics.Recorder,
) FeedService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &FeedServiceImpl{
		identity: identity,
		follows:  follows,
		postRepo: postRepo,
		userRepo: userRepo,
		weights:  weights.Normalize(),
		metrics:  recorder,
	}
}

// maxFeedRefills 一页帖子因作者缺失被全部丢弃时，继续向后扫描的最多次数
const maxFeedRefills = 3

// GetFeed 首页信息流
// 有关注时关注作者内容最多占 followedShare，其余由非关注作者的内容补齐；否则按发布时间取最新内容
func (s *FeedServiceImpl) GetFeed(ctx context.Context, identity *security.Identity, limit int, cursor string) (page *dto.FeedPageDTO, err error) {
	start := time.Now()
	defer func() {
		size := 0
		if page != nil {
			size = len(page.Posts)
		}
		s.metrics.ObserveRanking(metrics.OpFeed, time.Since(start), size, err)
	}()

	limit = util.ClampLimit(limit, consts.DefaultFeedLimit, consts.MaxPageLimit)

	var cur feedCursor
	if cursor != "" {
		if cur, err = decodeFeedCursor(cursor); err != nil {
			return nil, err
		}
	}

	viewer, err := s.identity.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	var following []uint64
	if viewer != nil {
		following, err = s.follows.FollowingOf(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
	}

	for round := 0; ; round++ {
		var (
			scan  *feedScan
			items []*dto.FeedPostDTO
		)
		if len(following) > 0 {
			scan, err = s.blended(ctx, viewer.ID, following, cur, limit)
		} else {
			scan, err = s.latest(ctx, cur.latest(), limit)
		}
		if err != nil {
			return nil, err
		}

		items, err = toFeedPosts(ctx, s.userRepo, scan.posts)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 && scan.hasMore && round < maxFeedRefills {
			cur = scan.next
			continue
		}

		page = &dto.FeedPageDTO{Posts: items, HasMore: scan.hasMore && len(items) > 0}
		if len(items) > 0 {
			page.NextCursor = lo.ToPtr(scan.next.encode())
		}
		return page, nil
	}
}

// feedScan 一次扫描得到的帖子以及下一页的起点
type feedScan struct {
	posts   []*model.Post
	next    feedCursor
	hasMore bool
}

func (s *FeedServiceImpl) latest(ctx context.Context, before *repository.PostCursor, limit int) (*feedScan, error) {
	posts, err := s.postRepo.ListPublished(ctx, repository.PublishedPostQuery{
		Before: before,
		Limit:  limit + 1,
	})
	if err != nil {
		return nil, err
	}

	scan := &feedScan{}
	if len(posts) > limit {
		scan.hasMore = true
		posts = posts[:limit]
	}
	ranking.SortByPublishedDesc(posts)
	scan.posts = posts
	if len(posts) > 0 {
		last := cursorOf(posts[len(posts)-1])
		scan.next = feedCursor{followed: last, general: last}
	}
	return scan, nil
}

// blended 关注流与通用流各自从上次贡献的最后一条继续扫描
func (s *FeedServiceImpl) blended(ctx context.Context, viewerID uint64, following []uint64, cur feedCursor, limit int) (*feedScan, error) {
	quota := ranking.FollowedQuota(limit, s.weights.FollowedShare)
	followed, err := s.postRepo.ListPublished(ctx, repository.PublishedPostQuery{
		AuthorIDs: following,
		Before:    cur.followed,
		Limit:     quota + 1,
	})
	if err != nil {
		return nil, err
	}
	followedMore := len(followed) > quota
	if followedMore {
		followed = followed[:quota]
	}

	generalQuery := repository.PublishedPostQuery{
		ExcludeAuthorIDs: append([]uint64{viewerID}, following...),
		Before:           cur.general,
	}
	var (
		general     []*model.Post
		generalMore bool
	)
	remainder := limit - len(followed)
	if remainder > 0 {
		generalQuery.Limit = remainder + 1
		general, err = s.postRepo.ListPublished(ctx, generalQuery)
		generalMore = len(general) > remainder
	} else {
		generalMore, err = s.postRepo.ExistsPublished(ctx, generalQuery)
	}
	if err != nil {
		return nil, err
	}

	followedAuthors := lo.Associate(following, func(id uint64) (uint64, struct{}) { return id, struct{}{} })
	posts := ranking.MergeFeed(followed, general, followedAuthors, remainder)

	next := feedCursor{followed: cur.followed, general: cur.general, blended: true}
	if len(followed) > 0 {
		next.followed = cursorOf(followed[len(followed)-1])
	}
	fromGeneral := lo.Filter(posts, func(p *model.Post, _ int) bool {
		_, ok := followedAuthors[p.AuthorID]
		return !ok
	})
	if len(fromGeneral) > 0 {
		next.general = cursorOf(fromGeneral[len(fromGeneral)-1])
	}

	ranking.SortByPublishedDesc(posts)
	return &feedScan{posts: posts, next: next, hasMore: followedMore || generalMore}, nil
}

// feedCursor 信息流游标
// 混排时关注流与通用流分别记录位置，nil 表示该流尚未开始；单流游标两个位置相同
type feedCursor struct {
	followed *repository.PostCursor
	general  *repository.PostCursor
	blended  bool
}

func decodeFeedCursor(cursor string) (feedCursor, error) {
	positions, err := util.DecodeCursor(cursor)
	if err != nil {
		return feedCursor{}, ErrParamInvalid
	}
	if len(positions) == 1 {
		c := fromPosition(positions[0])
		return feedCursor{followed: c, general: c}, nil
	}
	return feedCursor{
		followed: fromPosition(positions[0]),
		general:  fromPosition(positions[1]),
		blended:  true,
	}, nil
}

func (c feedCursor) encode() string {
	if !c.blended {
		return util.EncodeCursor(toPosition(c.general))
	}
	return util.EncodeCursor(toPosition(c.followed), toPosition(c.general))
}

// latest 单流扫描的起点
// 混排游标取两流中较新的位置，可能重复展示但不会漏掉帖子
func (c feedCursor) latest() *repository.PostCursor {
	if !c.blended {
		return c.general
	}
	if c.followed == nil || c.general == nil {
		return nil
	}
	if c.followed.After(*c.general) {
		return c.followed
	}
	return c.general
}

func fromPosition(p *util.CursorPosition) *repository.PostCursor {
	if p == nil {
		return nil
	}
	return &repository.PostCursor{PublishedAt: p.PublishedAt, ID: p.ID}
}

func toPosition(c *repository.PostCursor) *util.CursorPosition {
	if c == nil {
		return nil
	}
	return &util.CursorPosition{PublishedAt: c.PublishedAt, ID: c.ID}
}

func cursorOf(p *model.Post) *repository.PostCursor {
	c := &repository.PostCursor{ID: p.ID}
	if p.PublishedAt != nil {
		c.PublishedAt = *p.PublishedAt
	}
	return c
}
