// Package ranking 提供信息流、推荐用户与热门帖子的纯计算逻辑，不做任何 I/O
package ranking

import "time"

const (
	DefaultFollowedShare          = 0.7
	DefaultSuggestionLikeWeight   = 5
	DefaultSuggestionFollowWeight = 10
	DefaultTrendingLikeWeight     = 3
	DefaultRecentWindow           = 7 * 24 * time.Hour
	DefaultTrendingWindow         = 7 * 24 * time.Hour
	DefaultSuggestionPostSample   = 5
	DefaultSuggestionPreviewSize  = 2
)

// Weights 排序参数
// 一个赞折合 5 次浏览，一个粉丝折合 10 次浏览
type Weights struct {
	FollowedShare          float64
	SuggestionLikeWeight   int64
	SuggestionFollowWeight int64
	TrendingLikeWeight     int64
	RecentWindow           time.Duration
	TrendingWindow         time.Duration
	SuggestionPostSample   int
	SuggestionPreviewSize  int
}

// DefaultWeights 默认排序参数
func DefaultWeights() Weights {
	return Weights{
		FollowedShare:          DefaultFollowedShare,
		SuggestionLikeWeight:   DefaultSuggestionLikeWeight,
		SuggestionFollowWeight: DefaultSuggestionFollowWeight,
		TrendingLikeWeight:     DefaultTrendingLikeWeight,
		RecentWindow:           DefaultRecentWindow,
		TrendingWindow:         DefaultTrendingWindow,
		SuggestionPostSample:   DefaultSuggestionPostSample,
		SuggestionPreviewSize:  DefaultSuggestionPreviewSize,
	}
}

// Normalize 未配置（零值或非法）的字段回退到默认值
func (w Weights) Normalize() Weights {
	d := DefaultWeights()
	if w.FollowedShare <= 0 || w.FollowedShare > 1 {
		w.FollowedShare = d.FollowedShare
	}
	if w.SuggestionLikeWeight <= 0 {
		w.SuggestionLikeWeight = d.SuggestionLikeWeight
	}
	if w.SuggestionFollowWeight <= 0 {
		w.SuggestionFollowWeight = d.SuggestionFollowWeight
	}
	if w.TrendingLikeWeight <= 0 {
		w.TrendingLikeWeight = d.TrendingLikeWeight
	}
	if w.RecentWindow <= 0 {
		w.RecentWindow = d.RecentWindow
	}
	if w.TrendingWindow <= 0 {
		w.TrendingWindow = d.TrendingWindow
	}
	if w.SuggestionPostSample <= 0 {
		w.SuggestionPostSample = d.SuggestionPostSample
	}
	if w.SuggestionPreviewSize <= 0 {
		w.SuggestionPreviewSize = d.SuggestionPreviewSize
	}
	return w
}
