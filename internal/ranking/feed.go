package ranking

import (
	"Creatr/internal/model"
	"math"
	"sort"
	"time"
)

// FollowedQuota 关注作者内容在一页中最多占用的条数
func FollowedQuota(limit int, share float64) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(limit) * share))
}

// MergeFeed 关注内容在前，通用内容补齐剩余条数
// general 中已选中的帖子以及关注作者的帖子会被跳过，保留扫描顺序
func MergeFeed(followed, general []*model.Post, followedAuthors map[uint64]struct{}, remainder int) []*model.Post {
	merged := make([]*model.Post, 0, len(followed)+max(remainder, 0))
	selected := make(map[uint64]struct{}, len(followed)+max(remainder, 0))

	for _, p := range followed {
		if _, ok := selected[p.ID]; ok {
			continue
		}
		selected[p.ID] = struct{}{}
		merged = append(merged, p)
	}

	added := 0
	for _, p := range general {
		if added >= remainder {
			break
		}
		if _, ok := selected[p.ID]; ok {
			continue
		}
		if _, ok := followedAuthors[p.AuthorID]; ok {
			continue
		}
		selected[p.ID] = struct{}{}
		merged = append(merged, p)
		added++
	}

	return merged
}

// SortByPublishedDesc 按发布时间倒序稳定排序，发布时间相同时按 ID 倒序
func SortByPublishedDesc(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, tj := publishedAt(posts[i]), publishedAt(posts[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return posts[i].ID > posts[j].ID
	})
}

func publishedAt(p *model.Post) time.Time {
	if p.PublishedAt == nil {
		return time.Time{}
	}
	return *p.PublishedAt
}
