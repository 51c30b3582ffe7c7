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
	"golang.org/x/sync/errgroup"
)

const defaultSuggestionFanout = 8

type SuggestionService interface {
	GetSuggestedUsers(ctx context.Context, identity *security.Identity, limit int) ([]*dto.SuggestionDTO, error)
}

type SuggestionServiceImpl struct {
	identity   IdentityService
	follows    UserFollowService
	postRepo   repository.PostRepo
	candidates SuggestionCandidateSource
	weights    ranking.Weights
	fanout     int
	metrics    metrics.Recorder
	now        func() time.Time
}

func NewSuggestionService(
	identity IdentityService,
	follows UserFollowService,
	postRepo repository.PostRepo,
	candidates SuggestionCandidateSource,
	weights ranking.Weights,
	fanout int,
	recorder metrics.Recorder,
) SuggestionService {
	if fanout <= 0 {
		fanout = defaultSuggestionFanout
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &SuggestionServiceImpl{
		identity:   identity,
		follows:    follows,
		postRepo:   postRepo,
		candidates: candidates,
		weights:    weights.Normalize(),
		fanout:     fanout,
		metrics:    recorder,
		now:        time.Now,
	}
}

// GetSuggestedUsers 推荐未关注、有已发布文章的用户
func (s *SuggestionServiceImpl) GetSuggestedUsers(ctx context.Context, identity *security.Identity, limit int) (out []*dto.SuggestionDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRanking(metrics.OpSuggestions, time.Since(start), len(out), err) }()

	limit = util.ClampLimit(limit, consts.DefaultSuggestionLimit, consts.MaxPageLimit)

	viewer, err := s.identity.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	var viewerID uint64
	followed := map[uint64]struct{}{}
	if viewer != nil {
		viewerID = viewer.ID
		ids, err := s.follows.FollowingOf(ctx, viewer.ID)
		if err != nil {
			return nil, err
		}
		followed = lo.Associate(ids, func(id uint64) (uint64, struct{}) { return id, struct{}{} })
	}

	users, err := s.candidates.Candidates(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	users = lo.Filter(users, func(u *model.User, _ int) bool {
		if u == nil || u.ID == viewerID || u.Username == nil || *u.Username == "" {
			return false
		}
		_, ok := followed[u.ID]
		return !ok
	})

	scored := make([]*ranking.SuggestionCandidate, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, u := range users {
		g.Go(func() error {
			posts, err := s.postRepo.ListPublished(gctx, repository.PublishedPostQuery{
				AuthorIDs: []uint64{u.ID},
				Limit:     s.weights.SuggestionPostSample,
			})
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				return nil
			}
			followers, err := s.follows.FollowersOf(gctx, u.ID)
			if err != nil {
				return err
			}
			scored[i] = ranking.NewSuggestionCandidate(u, posts, len(followers), s.weights)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	ranked := ranking.RankSuggestions(scored, s.now(), s.weights, limit)
	return lo.Map(ranked, func(c *ranking.SuggestionCandidate, _ int) *dto.SuggestionDTO {
		return s.toDTO(c)
	}), nil
}

func (s *SuggestionServiceImpl) toDTO(c *ranking.SuggestionCandidate) *dto.SuggestionDTO {
	preview := c.RecentPosts
	if len(preview) > s.weights.SuggestionPreviewSize {
		preview = preview[:s.weights.SuggestionPreviewSize]
	}
	return &dto.SuggestionDTO{
		ID:              c.User.ID,
		Name:            c.User.Name,
		Username:        c.User.Username,
		ImageURL:        c.User.ImageURL,
		FollowerCount:   c.FollowerCount,
		PostCount:       len(c.RecentPosts),
		EngagementScore: c.EngagementScore,
		LastPostAt:      c.LastPostAt,
		RecentPosts: lo.Map(preview, func(p *model.Post, _ int) *dto.SuggestionPostDTO {
			return &dto.SuggestionPostDTO{
				ID:        p.ID,
				Title:     p.Title,
				ViewCount: p.ViewCount,
				LikeCount: p.LikeCount,
			}
		}),
	}
}
