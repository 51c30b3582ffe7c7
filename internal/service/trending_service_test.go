package service

import (
	"Creatr/internal/model"
	"Creatr/internal/ranking"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestTrending(m *memStore, source TrendingCandidateSource) TrendingService {
	if source == nil {
		source = NewRecentPostsSource(m)
	}
	svc := NewTrendingService(source, m, ranking.DefaultWeights(), nil).(*TrendingServiceImpl)
	svc.now = func() time.Time { return base }
	return svc
}

func TestGetTrendingPosts_ScoresWithinWindow(t *testing.T) {
	m := newMemStore()
	m.addUser(10, "writer")
	m.addPost(1, 10, hoursAgo(1), 10, 0)    // 10
	m.addPost(2, 10, hoursAgo(2), 1, 5)     // 16
	m.addPost(3, 10, hoursAgo(300), 999, 9) // 窗口外
	m.addPost(4, 10, hoursAgo(3), 16, 0)    // 16，发布更早

	out, err := newTestTrending(m, nil).GetTrendingPosts(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 4, 1}, postIDs(out))
	require.Equal(t, "writer", *out[0].Author.Username)
}

func TestGetTrendingPosts_TruncatesBeforeDroppingOrphans(t *testing.T) {
	m := newMemStore()
	m.addUser(10, "writer")
	m.addPost(1, 99, hoursAgo(1), 100, 0)
	m.addPost(2, 10, hoursAgo(1), 50, 0)
	m.addPost(3, 10, hoursAgo(1), 10, 0)

	out, err := newTestTrending(m, nil).GetTrendingPosts(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, []uint64{2}, postIDs(out))
}

func TestGetTrendingPosts_Idempotent(t *testing.T) {
	m := newMemStore()
	m.addUser(10, "writer")
	for i := 0; i < 20; i++ {
		m.addPost(uint64(i+1), 10, hoursAgo(i%5), int64(i%3), int64(i%2))
	}
	svc := newTestTrending(m, nil)

	first, err := svc.GetTrendingPosts(context.Background(), 10)
	require.NoError(t, err)
	second, err := svc.GetTrendingPosts(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, postIDs(first), postIDs(second))
	require.Len(t, first, 10)
}

type failingPosts struct{ err error }

func (f failingPosts) Candidates(context.Context, time.Time) ([]*model.Post, error) {
	return nil, f.err
}

func TestGetTrendingPosts_SourceError(t *testing.T) {
	boom := errors.New("scan failed")
	_, err := newTestTrending(newMemStore(), failingPosts{boom}).GetTrendingPosts(context.Background(), 10)
	require.ErrorIs(t, err, boom)
}
