package handler

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/api/middleware"
	"Creatr/internal/pkg/response"
	"Creatr/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	identitySvc   service.IdentityService
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(identitySvc service.IdentityService, userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{
		identitySvc:   identitySvc,
		userFollowSvc: userFollowSvc,
	}
}

// currentUserID 当前调用方对应的用户 ID，未同步资料时返回 ErrUserNotFound
func (s *UserFollowHandler) currentUserID(c *gin.Context) (uint64, error) {
	user, err := s.identitySvc.RequireUser(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (s *UserFollowHandler) GetUserFollowersCount(c *gin.Context) {
	userID, err := s.currentUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := s.userFollowSvc.GetUserFollowerCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FollowCountDTO{Count: count})
}

func (s *UserFollowHandler) GetUserFollowingCount(c *gin.Context) {
	userID, err := s.currentUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	count, err := s.userFollowSvc.GetUserFollowingCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.FollowCountDTO{Count: count})
}

func (s *UserFollowHandler) IsFollowing(c *gin.Context) {
	followingID, err := paramID(c, "following_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := s.currentUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	ok, err := s.userFollowSvc.IsFollowing(c.Request.Context(), userID, followingID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.IsFollowDTO{IsFollowing: ok})
}

func (s *UserFollowHandler) Follow(c *gin.Context) {
	followingID, err := paramID(c, "following_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := s.currentUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.userFollowSvc.CreateUserFollow(c.Request.Context(), userID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserFollowHandler) Unfollow(c *gin.Context) {
	followingID, err := paramID(c, "following_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := s.currentUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.userFollowSvc.DeleteUserFollow(c.Request.Context(), userID, followingID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
