package handler

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/api/middleware"
	"Creatr/internal/pkg/response"
	"Creatr/internal/pkg/util"
	"Creatr/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
	postSvc service.PostService
}

func NewUserHandler(userSvc service.UserService, postSvc service.PostService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
		postSvc: postSvc,
	}
}

// Store 登录后同步用户资料，不存在时创建
func (s *UserHandler) Store(c *gin.Context) {
	user, err := s.userSvc.Store(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) GetCurrentUser(c *gin.Context) {
	user, err := s.userSvc.GetCurrentUser(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) UpdateUsername(c *gin.Context) {
	var req dto.ChangeUsernameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, service.ErrUsernameFormat)
		return
	}

	user, err := s.userSvc.UpdateUsername(c.Request.Context(), middleware.GetIdentity(c), req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// GetByUsername 公开主页资料，不存在时 data 为 null
func (s *UserHandler) GetByUsername(c *gin.Context) {
	profile, err := s.userSvc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profile)
}

// GetPostStats 作者查看自己文章最近几天的浏览统计
func (s *UserHandler) GetPostStats(c *gin.Context) {
	postID, err := paramID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		if days, err = strconv.Atoi(raw); err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
	}

	stats, err := s.postSvc.GetPostStats(c.Request.Context(), middleware.GetIdentity(c), postID, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
