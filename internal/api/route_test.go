package api

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/api/handler"
	"Creatr/internal/api/middleware"
	"Creatr/internal/model"
	"Creatr/internal/pkg/security"
	"Creatr/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type fakeFeed struct {
	service.FeedService
	gotIdentity *security.Identity
	gotLimit    int
	gotCursor   string
}

func (f *fakeFeed) GetFeed(_ context.Context, identity *security.Identity, limit int, cursor string) (*dto.FeedPageDTO, error) {
	f.gotIdentity, f.gotLimit, f.gotCursor = identity, limit, cursor
	if cursor == "bad" {
		return nil, service.ErrParamInvalid
	}
	return &dto.FeedPageDTO{Posts: []*dto.FeedPostDTO{{ID: 1, Title: "hello"}}, HasMore: true}, nil
}

type fakeTrending struct{ service.TrendingService }

func (fakeTrending) GetTrendingPosts(context.Context, int) ([]*dto.FeedPostDTO, error) {
	return []*dto.FeedPostDTO{{ID: 9}}, nil
}

type fakeIdentity struct{ service.IdentityService }

func (fakeIdentity) RequireUser(_ context.Context, identity *security.Identity) (*model.User, error) {
	if identity == nil {
		return nil, service.ErrNotAuthenticated
	}
	if identity.Subject == "ghost" {
		return nil, service.ErrUserNotFound
	}
	return &model.User{ID: 1}, nil
}

type fakeFollows struct {
	service.UserFollowService
	followed [][2]uint64
}

func (f *fakeFollows) CreateUserFollow(_ context.Context, userID, followingID uint64) error {
	if userID == followingID {
		return service.ErrUserFollowSelf
	}
	f.followed = append(f.followed, [2]uint64{userID, followingID})
	return nil
}

type fakeActions struct {
	service.PostActionService
	liked map[uint64]bool
}

func (f *fakeActions) ToggleLike(_ context.Context, _ *security.Identity, postID uint64) (*dto.LikeStateDTO, error) {
	f.liked[postID] = !f.liked[postID]
	return &dto.LikeStateDTO{Liked: f.liked[postID]}, nil
}

func (f *fakeActions) HasUserLiked(_ context.Context, identity *security.Identity, postID uint64) (*dto.LikeStateDTO, error) {
	return &dto.LikeStateDTO{Liked: identity != nil && f.liked[postID]}, nil
}

func (f *fakeActions) AddComment(_ context.Context, _ *security.Identity, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	return &dto.CommentDTO{ID: 5, PostID: req.PostID, Content: req.Content}, nil
}

type fakeUsers struct {
	service.UserService
	renamed []string
}

func (f *fakeUsers) UpdateUsername(_ context.Context, _ *security.Identity, username string) (*dto.CurrentUserDTO, error) {
	f.renamed = append(f.renamed, username)
	return &dto.CurrentUserDTO{ID: 1, Username: &username}, nil
}

type testEnv struct {
	router  *gin.Engine
	feed    *fakeFeed
	users   *fakeUsers
	follows *fakeFollows
	actions *fakeActions
}

func newTestEnv(t *testing.T, limiter *middleware.RateLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	security.Setup("route-test-secret", "creatr-test")

	env := &testEnv{
		feed:    &fakeFeed{},
		users:   &fakeUsers{},
		follows: &fakeFollows{},
		actions: &fakeActions{liked: map[uint64]bool{}},
	}
	env.router = SetupRouter(&HandlersGroup{
		FeedHandler:       handler.NewFeedHandler(env.feed, env.follows, nil, fakeTrending{}),
		UserHandler:       handler.NewUserHandler(env.users, nil),
		UserFollowHandler: handler.NewUserFollowHandler(fakeIdentity{}, env.follows),
		PostHandler:       handler.NewPostHandler(nil),
		PostActionHandler: handler.NewPostActionHandler(env.actions),
		ActionLimiter:     limiter,
	})
	return env
}

func token(t *testing.T, subject string) string {
	t.Helper()
	tok, err := security.GenerateToken(&security.Identity{Subject: subject, Name: "Ada"}, time.Hour)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(method, path, bearer, body string) (*httptest.ResponseRecorder, dto.Response) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestPing(t *testing.T) {
	env := newTestEnv(t, nil)
	w, resp := env.do(http.MethodGet, "/api/ping", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pong", resp.Message)
	require.NotEmpty(t, w.Header().Get(middleware.TraceHeader))
}

func TestFeed_AnonymousAndSignedIn(t *testing.T) {
	env := newTestEnv(t, nil)

	_, resp := env.do(http.MethodGet, "/api/feed?limit=5&cursor=abc", "", "")
	require.Equal(t, 200, resp.Code)
	require.Nil(t, env.feed.gotIdentity)
	require.Equal(t, 5, env.feed.gotLimit)
	require.Equal(t, "abc", env.feed.gotCursor)

	_, resp = env.do(http.MethodGet, "/api/feed", token(t, "user-1"), "")
	require.Equal(t, 200, resp.Code)
	require.NotNil(t, env.feed.gotIdentity)
	require.Equal(t, "user-1", env.feed.gotIdentity.Subject)
	require.Equal(t, 0, env.feed.gotLimit)

	// 令牌无效时按匿名处理
	_, resp = env.do(http.MethodGet, "/api/feed", "not-a-token", "")
	require.Equal(t, 200, resp.Code)
	require.Nil(t, env.feed.gotIdentity)
}

func TestFeed_BadParams(t *testing.T) {
	env := newTestEnv(t, nil)

	_, resp := env.do(http.MethodGet, "/api/feed?limit=abc", "", "")
	require.Equal(t, service.BadRequest, resp.Code)

	_, resp = env.do(http.MethodGet, "/api/feed?cursor=bad", "", "")
	require.Equal(t, service.BadRequest, resp.Code)
}

func TestTrending_Public(t *testing.T) {
	env := newTestEnv(t, nil)
	w, resp := env.do(http.MethodGet, "/api/feed/trending", "", "")
	require.Equal(t, 200, resp.Code)
	require.Contains(t, w.Body.String(), `"id":9`)
}

func TestFollow_RequiresAuth(t *testing.T) {
	env := newTestEnv(t, nil)

	_, resp := env.do(http.MethodPost, "/api/user-relation/follow/2", "", "")
	require.Equal(t, service.Unauthorized, resp.Code)
	require.Empty(t, env.follows.followed)

	_, resp = env.do(http.MethodPost, "/api/user-relation/follow/2", token(t, "user-1"), "")
	require.Equal(t, 200, resp.Code)
	require.Equal(t, [][2]uint64{{1, 2}}, env.follows.followed)

	_, resp = env.do(http.MethodPost, "/api/user-relation/follow/1", token(t, "user-1"), "")
	require.Equal(t, service.BadRequest, resp.Code)

	_, resp = env.do(http.MethodPost, "/api/user-relation/follow/0", token(t, "user-1"), "")
	require.Equal(t, service.BadRequest, resp.Code)

	_, resp = env.do(http.MethodPost, "/api/user-relation/follow/2", token(t, "ghost"), "")
	require.Equal(t, service.NotFound, resp.Code)
}

func TestLikes(t *testing.T) {
	env := newTestEnv(t, nil)
	tok := token(t, "user-1")

	_, resp := env.do(http.MethodPost, "/api/post/action/likes/3", "", "")
	require.Equal(t, service.Unauthorized, resp.Code)

	w, resp := env.do(http.MethodPost, "/api/post/action/likes/3", tok, "")
	require.Equal(t, 200, resp.Code)
	require.Contains(t, w.Body.String(), `"liked":true`)

	w, _ = env.do(http.MethodGet, "/api/post/action/likes/3", tok, "")
	require.Contains(t, w.Body.String(), `"liked":true`)

	w, _ = env.do(http.MethodGet, "/api/post/action/likes/3", "", "")
	require.Contains(t, w.Body.String(), `"liked":false`)
}

func TestCreateComment_Validation(t *testing.T) {
	env := newTestEnv(t, nil)
	tok := token(t, "user-1")

	_, resp := env.do(http.MethodPost, "/api/post/action/comments", tok, `{"post_id":3}`)
	require.Equal(t, service.BadRequest, resp.Code)

	_, resp = env.do(http.MethodPost, "/api/post/action/comments", tok, `{"post_id":"x"}`)
	require.Equal(t, service.BadRequest, resp.Code)

	w, resp := env.do(http.MethodPost, "/api/post/action/comments", tok, `{"post_id":3,"content":"nice"}`)
	require.Equal(t, 200, resp.Code)
	require.Contains(t, w.Body.String(), `"content":"nice"`)
}

func TestUpdateUsername_Format(t *testing.T) {
	env := newTestEnv(t, nil)
	tok := token(t, "user-1")

	for _, body := range []string{`{"username":"bad name"}`, `{"username":""}`, `{}`} {
		_, resp := env.do(http.MethodPut, "/api/user/username", tok, body)
		require.Equal(t, service.BadRequest, resp.Code, body)
		require.Equal(t, service.ErrUsernameFormat.Error(), resp.Message, body)
	}
	require.Empty(t, env.users.renamed)

	w, resp := env.do(http.MethodPut, "/api/user/username", tok, `{"username":"ada_l-1"}`)
	require.Equal(t, 200, resp.Code)
	require.Contains(t, w.Body.String(), `"username":"ada_l-1"`)
	require.Equal(t, []string{"ada_l-1"}, env.users.renamed)
}

func TestRateLimitedActions(t *testing.T) {
	env := newTestEnv(t, middleware.NewRateLimiter(1, 1))
	tok := token(t, "user-1")

	w, _ := env.do(http.MethodPost, "/api/post/action/likes/3", tok, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := env.do(http.MethodPost, "/api/post/action/likes/3", tok, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, middleware.TooManyRequests, resp.Code)
	require.Equal(t, "60", w.Header().Get("Retry-After"))

	// 读接口不限流
	w, _ = env.do(http.MethodGet, "/api/post/action/likes/3", tok, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/feed", nil)
	req.Header.Set("Origin", "https://creatr.example")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://creatr.example", w.Header().Get("Access-Control-Allow-Origin"))
}
