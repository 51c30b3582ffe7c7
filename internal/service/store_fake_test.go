package service

import (
	"Creatr/internal/model"
	"Creatr/internal/pkg/security"
	"Creatr/internal/repository"
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"
)

// memStore 内存实现的全部仓储接口
type memStore struct {
	mu sync.Mutex

	users    map[uint64]*model.User
	posts    map[uint64]*model.Post
	follows  []*model.Follow
	likes    map[[2]uint64]bool
	comments map[uint64]*model.Comment
	stats    map[string]*model.DailyStat

	nextID uint64
	fail   map[string]error
	calls  map[string]int
}

var (
	_ repository.UserRepo       = (*memStore)(nil)
	_ repository.UserFollowRepo = (*memStore)(nil)
	_ repository.PostRepo       = (*memStore)(nil)
	_ repository.PostActionRepo = (*memStore)(nil)
	_ repository.DailyStatRepo  = (*memStore)(nil)
)

var base = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func hoursAgo(h int) time.Time {
	return base.Add(-time.Duration(h) * time.Hour)
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint64]*model.User{},
		posts:    map[uint64]*model.Post{},
		likes:    map[[2]uint64]bool{},
		comments: map[uint64]*model.Comment{},
		stats:    map[string]*model.DailyStat{},
		nextID:   1000,
		fail:     map[string]error{},
		calls:    map[string]int{},
	}
}

func (m *memStore) enter(op string) error {
	m.mu.Lock()
	m.calls[op]++
	return m.fail[op]
}

func (m *memStore) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// 测试数据构造

func (m *memStore) addUser(id uint64, username string) *model.User {
	u := &model.User{
		ID:              id,
		Name:            "user-" + username,
		ExternalID:      "ext-" + username,
		TokenIdentifier: "tok-" + username,
		CreatedAt:       base,
		LastActiveAt:    base,
	}
	if username != "" {
		u.Username = &username
	}
	m.users[id] = u
	return u
}

func (m *memStore) addPost(id, author uint64, publishedAt time.Time, views, likes int64) *model.Post {
	at := publishedAt
	p := &model.Post{
		ID:          id,
		Title:       "post",
		Content:     "<p>body</p>",
		Status:      model.PostStatusPublished,
		AuthorID:    author,
		CreatedAt:   at,
		UpdatedAt:   at,
		PublishedAt: &at,
		ViewCount:   views,
		LikeCount:   likes,
	}
	m.posts[id] = p
	return p
}

func (m *memStore) addFollow(follower, following uint64, at time.Time) {
	m.follows = append(m.follows, &model.Follow{ID: m.id(), FollowerID: follower, FollowingID: following, CreatedAt: at})
}

func identityOf(u *model.User) *security.Identity {
	return &security.Identity{Subject: u.ExternalID, TokenIdentifier: u.TokenIdentifier, Name: u.Name}
}

// UserRepo

func (m *memStore) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	if err := m.enter("GetUserById"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *memStore) GetUserByIds(_ context.Context, ids []uint64) ([]*model.User, error) {
	if err := m.enter("GetUserByIds"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memStore) findUser(match func(u *model.User) bool) *model.User {
	for _, u := range m.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func (m *memStore) GetUserByExternalID(_ context.Context, externalID string) (*model.User, error) {
	if err := m.enter("GetUserByExternalID"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.findUser(func(u *model.User) bool { return u.ExternalID == externalID }), nil
}

func (m *memStore) GetUserByToken(_ context.Context, tokenIdentifier string) (*model.User, error) {
	if err := m.enter("GetUserByToken"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.findUser(func(u *model.User) bool { return u.TokenIdentifier == tokenIdentifier }), nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if err := m.enter("GetUserByUsername"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.findUser(func(u *model.User) bool { return u.Username != nil && *u.Username == username }), nil
}

func (m *memStore) ListUsersWithUsername(_ context.Context, excludeID uint64) ([]*model.User, error) {
	if err := m.enter("ListUsersWithUsername"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	out := make([]*model.User, 0)
	for _, u := range m.users {
		if u.ID != excludeID && u.Username != nil {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	if err := m.enter("CreateUser"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	if m.findUser(func(u *model.User) bool { return u.ExternalID == user.ExternalID }) != nil {
		return gorm.ErrDuplicatedKey
	}
	user.ID = m.id()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) UpdateUserProfile(_ context.Context, id uint64, name string, imageURL *string) error {
	if err := m.enter("UpdateUserProfile"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		u.Name = name
		u.ImageURL = imageURL
	}
	return nil
}

func (m *memStore) UpdateUsername(_ context.Context, id uint64, username string) error {
	if err := m.enter("UpdateUsername"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	if m.findUser(func(u *model.User) bool { return u.ID != id && u.Username != nil && *u.Username == username }) != nil {
		return gorm.ErrDuplicatedKey
	}
	if u, ok := m.users[id]; ok {
		name := username
		u.Username = &name
	}
	return nil
}

// UserFollowRepo

func (m *memStore) sortedFollows(match func(f *model.Follow) bool) []*model.Follow {
	out := make([]*model.Follow, 0)
	for _, f := range m.follows {
		if match(f) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (m *memStore) GetUserFollowers(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	if err := m.enter("GetUserFollowers"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return page(m.sortedFollows(func(f *model.Follow) bool { return f.FollowingID == userID }), limit, offset), nil
}

func (m *memStore) GetUserFollowing(_ context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	if err := m.enter("GetUserFollowing"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return page(m.sortedFollows(func(f *model.Follow) bool { return f.FollowerID == userID }), limit, offset), nil
}

func (m *memStore) GetFollowingIDs(_ context.Context, userID uint64) ([]uint64, error) {
	if err := m.enter("GetFollowingIDs"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	ids := make([]uint64, 0)
	for _, f := range m.follows {
		if f.FollowerID == userID {
			ids = append(ids, f.FollowingID)
		}
	}
	return ids, nil
}

func (m *memStore) GetFollowerIDs(_ context.Context, userID uint64) ([]uint64, error) {
	if err := m.enter("GetFollowerIDs"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	ids := make([]uint64, 0)
	for _, f := range m.follows {
		if f.FollowingID == userID {
			ids = append(ids, f.FollowerID)
		}
	}
	return ids, nil
}

func (m *memStore) GetUserFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	ids, err := m.GetFollowerIDs(ctx, userID)
	return int64(len(ids)), err
}

func (m *memStore) GetUserFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	ids, err := m.GetFollowingIDs(ctx, userID)
	return int64(len(ids)), err
}

func (m *memStore) GetUserFollow(_ context.Context, userID uint64, followingID uint64) (*model.Follow, error) {
	if err := m.enter("GetUserFollow"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.FollowerID == userID && f.FollowingID == followingID {
			return f, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateUserFollow(_ context.Context, follow *model.Follow) error {
	if err := m.enter("CreateUserFollow"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	follow.ID = m.id()
	m.follows = append(m.follows, follow)
	return nil
}

func (m *memStore) DeleteUserFollow(_ context.Context, userID uint64, followingID uint64) (int64, error) {
	if err := m.enter("DeleteUserFollow"); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	defer m.mu.Unlock()
	kept := m.follows[:0]
	var removed int64
	for _, f := range m.follows {
		if f.FollowerID == userID && f.FollowingID == followingID {
			removed++
			continue
		}
		kept = append(kept, f)
	}
	m.follows = kept
	return removed, nil
}

// PostRepo

func (m *memStore) CreatePost(_ context.Context, post *model.Post) error {
	if err := m.enter("CreatePost"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	post.ID = m.id()
	m.posts[post.ID] = post
	return nil
}

func (m *memStore) GetPost(_ context.Context, id uint64) (*model.Post, error) {
	if err := m.enter("GetPost"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.posts[id], nil
}

func (m *memStore) GetPostByIds(_ context.Context, ids []uint64) ([]*model.Post, error) {
	if err := m.enter("GetPostByIds"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	out := make([]*model.Post, 0)
	for _, id := range ids {
		if p, ok := m.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func contains(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (m *memStore) scan(q repository.PublishedPostQuery) []*model.Post {
	out := make([]*model.Post, 0)
	for _, p := range m.posts {
		if p.Status != model.PostStatusPublished || p.PublishedAt == nil {
			continue
		}
		if len(q.AuthorIDs) > 0 && !contains(q.AuthorIDs, p.AuthorID) {
			continue
		}
		if contains(q.ExcludeAuthorIDs, p.AuthorID) {
			continue
		}
		if q.PublishedSince != nil && p.PublishedAt.Before(*q.PublishedSince) {
			continue
		}
		if q.Before != nil {
			at := *p.PublishedAt
			if !(at.Before(q.Before.PublishedAt) || (at.Equal(q.Before.PublishedAt) && p.ID < q.Before.ID)) {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(*out[j].PublishedAt) {
			return out[i].PublishedAt.After(*out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func (m *memStore) ListPublished(_ context.Context, q repository.PublishedPostQuery) ([]*model.Post, error) {
	if err := m.enter("ListPublished"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.scan(q), nil
}

func (m *memStore) ExistsPublished(_ context.Context, q repository.PublishedPostQuery) (bool, error) {
	if err := m.enter("ExistsPublished"); err != nil {
		m.mu.Unlock()
		return false, err
	}
	defer m.mu.Unlock()
	q.Limit = 1
	return len(m.scan(q)) > 0, nil
}

func (m *memStore) ListDueScheduled(_ context.Context, now time.Time, limit int) ([]*model.Post, error) {
	if err := m.enter("ListDueScheduled"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	out := make([]*model.Post, 0)
	for _, p := range m.posts {
		if p.Status == model.PostStatusDraft && p.ScheduledFor != nil && !p.ScheduledFor.After(now) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(*out[j].ScheduledFor) })
	return page(out, limit, 0), nil
}

func (m *memStore) PublishPost(_ context.Context, id uint64, publishedAt time.Time) (int64, error) {
	if err := m.enter("PublishPost"); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok || p.Status != model.PostStatusDraft {
		return 0, nil
	}
	p.Status = model.PostStatusPublished
	p.PublishedAt = &publishedAt
	return 1, nil
}

func (m *memStore) RecordView(_ context.Context, id uint64, day string) (int64, error) {
	if err := m.enter("RecordView"); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return 0, nil
	}
	p.ViewCount++
	key := strconv.FormatUint(id, 10) + "#" + day
	st, ok := m.stats[key]
	if !ok {
		st = &model.DailyStat{ID: m.id(), PostID: id, Date: day}
		m.stats[key] = st
	}
	st.Views++
	return 1, nil
}

func (m *memStore) UpdateLikeCount(_ context.Context, id uint64, count int64) error {
	if err := m.enter("UpdateLikeCount"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	if p, ok := m.posts[id]; ok {
		p.LikeCount = count
	}
	return nil
}

// PostActionRepo

func (m *memStore) CheckLikeExists(_ context.Context, userID, postID uint64) (bool, error) {
	if err := m.enter("CheckLikeExists"); err != nil {
		m.mu.Unlock()
		return false, err
	}
	defer m.mu.Unlock()
	return m.likes[[2]uint64{postID, userID}], nil
}

func (m *memStore) ToggleLike(_ context.Context, userID, postID uint64) (bool, error) {
	if err := m.enter("ToggleLike"); err != nil {
		m.mu.Unlock()
		return false, err
	}
	defer m.mu.Unlock()
	key := [2]uint64{postID, userID}
	p := m.posts[postID]
	if m.likes[key] {
		delete(m.likes, key)
		if p != nil && p.LikeCount > 0 {
			p.LikeCount--
		}
		return false, nil
	}
	m.likes[key] = true
	if p != nil {
		p.LikeCount++
	}
	return true, nil
}

func (m *memStore) GetLikeCountByPostID(_ context.Context, postID uint64) (int64, error) {
	if err := m.enter("GetLikeCountByPostID"); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	defer m.mu.Unlock()
	var n int64
	for k := range m.likes {
		if k[0] == postID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateComment(_ context.Context, comment *model.Comment) error {
	if err := m.enter("CreateComment"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	comment.ID = m.id()
	m.comments[comment.ID] = comment
	return nil
}

func (m *memStore) GetCommentByID(_ context.Context, commentID uint64) (*model.Comment, error) {
	if err := m.enter("GetCommentByID"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.comments[commentID], nil
}

func (m *memStore) GetCommentsByPostID(_ context.Context, postID uint64, status string) ([]*model.Comment, error) {
	if err := m.enter("GetCommentsByPostID"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	out := make([]*model.Comment, 0)
	for _, c := range m.comments {
		if c.PostID == postID && c.Status == status {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memStore) DeleteComment(_ context.Context, commentID uint64) error {
	if err := m.enter("DeleteComment"); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()
	delete(m.comments, commentID)
	return nil
}

// DailyStatRepo

func (m *memStore) GetDailyStats(_ context.Context, postID uint64, fromDate, toDate string) ([]*model.DailyStat, error) {
	if err := m.enter("GetDailyStats"); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	out := make([]*model.DailyStat, 0)
	for _, st := range m.stats {
		if st.PostID == postID && st.Date >= fromDate && st.Date <= toDate {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
