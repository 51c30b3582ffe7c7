package handler

import (
	"Creatr/internal/api/dto"
	"Creatr/internal/api/middleware"
	"Creatr/internal/pkg/response"
	"Creatr/internal/pkg/util"
	"Creatr/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	actionSvc service.PostActionService
}

func NewPostActionHandler(actionSvc service.PostActionService) *PostActionHandler {
	return &PostActionHandler{
		actionSvc: actionSvc,
	}
}

// ToggleLike 点赞/取消点赞
func (s *PostActionHandler) ToggleLike(c *gin.Context) {
	postID, err := paramID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	state, err := s.actionSvc.ToggleLike(c.Request.Context(), middleware.GetIdentity(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// HasUserLiked 匿名访问时 liked 为 false
func (s *PostActionHandler) HasUserLiked(c *gin.Context) {
	postID, err := paramID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	state, err := s.actionSvc.HasUserLiked(c.Request.Context(), middleware.GetIdentity(c), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *PostActionHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	comment, err := s.actionSvc.AddComment(c.Request.Context(), middleware.GetIdentity(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *PostActionHandler) GetComments(c *gin.Context) {
	postID, err := paramID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := s.actionSvc.GetPostComments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// DeleteComment 仅评论作者可删除
func (s *PostActionHandler) DeleteComment(c *gin.Context) {
	commentID, err := paramID(c, "comment_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.actionSvc.DeleteComment(c.Request.Context(), middleware.GetIdentity(c), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
