package ranking

import (
	"Creatr/internal/model"
	"sort"
	"time"

	"github.com/samber/lo"
)

type ScoredPost struct {
	Post  *model.Post
	Score int64
}

// TrendingScore 浏览 + 赞 * 3，窗口内不做时间衰减
func TrendingScore(p *model.Post, w Weights) int64 {
	return p.ViewCount + p.LikeCount*w.TrendingLikeWeight
}

// TrendingSince 热门窗口起点
func TrendingSince(now time.Time, w Weights) time.Time {
	return now.Add(-w.TrendingWindow)
}

// RankTrending 按热度倒序截取前 limit 条，同分按发布时间、ID 倒序保证结果稳定
func RankTrending(posts []*model.Post, w Weights, limit int) []ScoredPost {
	scored := lo.Map(posts, func(p *model.Post, _ int) ScoredPost {
		return ScoredPost{Post: p, Score: TrendingScore(p, w)}
	})

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		ti, tj := publishedAt(scored[i].Post), publishedAt(scored[j].Post)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return scored[i].Post.ID > scored[j].Post.ID
	})

	if limit >= 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
