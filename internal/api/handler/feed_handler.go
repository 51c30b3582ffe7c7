package handler

import (
	"Creatr/internal/api/middleware"
	"Creatr/internal/pkg/response"
	"Creatr/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc       service.FeedService
	followSvc     service.UserFollowService
	suggestionSvc service.SuggestionService
	trendingSvc   service.TrendingService
}

func NewFeedHandler(
	feedSvc service.FeedService,
	followSvc service.UserFollowService,
	suggestionSvc service.SuggestionService,
	trendingSvc service.TrendingService,
) *FeedHandler {
	return &FeedHandler{
		feedSvc:       feedSvc,
		followSvc:     followSvc,
		suggestionSvc: suggestionSvc,
		trendingSvc:   trendingSvc,
	}
}

// GetFeed 首页信息流，cursor 为上一页返回的 next_cursor
func (s *FeedHandler) GetFeed(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.feedSvc.GetFeed(c.Request.Context(), middleware.GetIdentity(c), limit, c.Query("cursor"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

// GetFollowing 关注的作者及其最近文章
func (s *FeedHandler) GetFollowing(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	following, err := s.followSvc.GetFollowing(c.Request.Context(), middleware.GetIdentity(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, following)
}

// GetSuggested 推荐关注的作者
func (s *FeedHandler) GetSuggested(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	suggestions, err := s.suggestionSvc.GetSuggestedUsers(c.Request.Context(), middleware.GetIdentity(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, suggestions)
}

func (s *FeedHandler) GetTrending(c *gin.Context) {
	limit, err := queryLimit(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.trendingSvc.GetTrendingPosts(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
