package service

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/model"
	"Creatr/internal/pkg/consts"
	"Creatr/internal/pkg/metrics"
	"Creatr/internal/pkg/util"
	"Creatr/internal/ranking"
	"Creatr/internal/repository"
	"context"
	"time"

	"github.com/samber/lo"
)

type TrendingService interface {
	GetTrendingPosts(ctx context.Context, limit int) ([]*dto.FeedPostDTO, error)
}

type TrendingServiceImpl struct {
	candidates TrendingCandidateSource
	userRepo   repository.UserRepo
	weights    ranking.Weights
	metrics    metrics.Recorder
	now        func() time.Time
}

func NewTrendingService(candidates TrendingCandidateSource, userRepo repository.UserRepo, weights ranking.Weights, recorder metrics.Recorder) TrendingService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &TrendingServiceImpl{
		candidates: candidates,
		userRepo:   userRepo,
		weights:    weights.Normalize(),
		metrics:    recorder,
		now:        time.Now,
	}
}

// GetTrendingPosts 窗口内按热度取前 limit 条，先截断再补作者，作者不存在的帖子被丢弃
func (s *TrendingServiceImpl) GetTrendingPosts(ctx context.Context, limit int) (out []*dto.FeedPostDTO, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveRanking(metrics.OpTrending, time.Since(start), len(out), err) }()

	limit = util.ClampLimit(limit, consts.DefaultTrendingLimit, consts.MaxPageLimit)

	posts, err := s.candidates.Candidates(ctx, ranking.TrendingSince(s.now(), s.weights))
	if err != nil {
		return nil, err
	}

	top := ranking.RankTrending(posts, s.weights, limit)
	return toFeedPosts(ctx, s.userRepo, lo.Map(top, func(sp ranking.ScoredPost, _ int) *model.Post { return sp.Post }))
}
