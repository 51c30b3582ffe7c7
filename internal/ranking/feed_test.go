package ranking

import (
	"Creatr/internal/model"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func post(id, author uint64, ageHours int) *model.Post {
	at := base.Add(-time.Duration(ageHours) * time.Hour)
	return &model.Post{ID: id, AuthorID: author, Status: model.PostStatusPublished, PublishedAt: &at}
}

func ids(posts []*model.Post) []uint64 {
	return lo.Map(posts, func(p *model.Post, _ int) uint64 { return p.ID })
}

func TestFollowedQuota(t *testing.T) {
	require.Equal(t, 7, FollowedQuota(10, 0.7))
	require.Equal(t, 3, FollowedQuota(3, 0.7))
	require.Equal(t, 1, FollowedQuota(1, 0.7))
	require.Equal(t, 14, FollowedQuota(20, 0.7))
	require.Equal(t, 0, FollowedQuota(0, 0.7))
}

func TestMergeFeed_FollowedFirstThenGeneral(t *testing.T) {
	followed := []*model.Post{post(1, 10, 1), post(2, 10, 2)}
	general := []*model.Post{post(3, 20, 0), post(4, 21, 3), post(5, 22, 4)}

	merged := MergeFeed(followed, general, map[uint64]struct{}{10: {}}, 2)

	require.Equal(t, []uint64{1, 2, 3, 4}, ids(merged))
}

func TestMergeFeed_SkipsDuplicatesAndFollowedAuthors(t *testing.T) {
	followed := []*model.Post{post(1, 10, 1)}
	general := []*model.Post{post(1, 10, 1), post(6, 10, 2), post(7, 30, 3)}

	merged := MergeFeed(followed, general, map[uint64]struct{}{10: {}}, 5)

	require.Equal(t, []uint64{1, 7}, ids(merged))
}

func TestMergeFeed_NoRemainder(t *testing.T) {
	followed := []*model.Post{post(1, 10, 1)}
	general := []*model.Post{post(2, 20, 0)}

	require.Equal(t, []uint64{1}, ids(MergeFeed(followed, general, nil, 0)))
}

func TestSortByPublishedDesc(t *testing.T) {
	same := post(8, 1, 5)
	posts := []*model.Post{post(1, 1, 5), post(2, 1, 1), same, {ID: 9}, post(3, 1, 3)}

	SortByPublishedDesc(posts)

	require.Equal(t, []uint64{2, 3, 8, 1, 9}, ids(posts))
}
