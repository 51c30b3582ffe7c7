package ranking

import (
	"Creatr/internal/model"
	"sort"
	"time"

	"github.com/samber/lo"
)

// SuggestionCandidate 待推荐的用户及其评分数据
type SuggestionCandidate struct {
	User            *model.User
	RecentPosts     []*model.Post
	FollowerCount   int
	EngagementScore int64
	LastPostAt      *time.Time
}

// NewSuggestionCandidate recentPosts 需按发布时间倒序
func NewSuggestionCandidate(user *model.User, recentPosts []*model.Post, followerCount int, w Weights) *SuggestionCandidate {
	c := &SuggestionCandidate{
		User:            user,
		RecentPosts:     recentPosts,
		FollowerCount:   followerCount,
		EngagementScore: EngagementScore(recentPosts, followerCount, w),
	}
	if len(recentPosts) > 0 {
		c.LastPostAt = recentPosts[0].PublishedAt
	}
	return c
}

// EngagementScore 浏览 + 赞 * 5 + 粉丝 * 10
func EngagementScore(posts []*model.Post, followerCount int, w Weights) int64 {
	views := lo.SumBy(posts, func(p *model.Post) int64 { return p.ViewCount })
	likes := lo.SumBy(posts, func(p *model.Post) int64 { return p.LikeCount })
	return views + likes*w.SuggestionLikeWeight + int64(followerCount)*w.SuggestionFollowWeight
}

// IsRecent t 是否落在 now 之前的 window 内
func IsRecent(t *time.Time, now time.Time, window time.Duration) bool {
	if t == nil {
		return false
	}
	return t.After(now.Add(-window))
}

// RankSuggestions 过滤无帖子的候选人，近期活跃者优先，其次按互动分倒序
func RankSuggestions(candidates []*SuggestionCandidate, now time.Time, w Weights, limit int) []*SuggestionCandidate {
	ranked := lo.Filter(candidates, func(c *SuggestionCandidate, _ int) bool {
		return c != nil && len(c.RecentPosts) > 0
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		ri := IsRecent(ranked[i].LastPostAt, now, w.RecentWindow)
		rj := IsRecent(ranked[j].LastPostAt, now, w.RecentWindow)
		if ri != rj {
			return ri
		}
		if ranked[i].EngagementScore != ranked[j].EngagementScore {
			return ranked[i].EngagementScore > ranked[j].EngagementScore
		}
		return ranked[i].User.ID < ranked[j].User.ID
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
